package admin

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"stamet_backend/internals/constants"
	userDTO "stamet_backend/internals/features/users/user/dto"
	"stamet_backend/internals/features/users/user/model"
	userService "stamet_backend/internals/features/users/user/service"
	"stamet_backend/internals/helpers/logger"
)

// SeedAdmin membuat akun ADMIN awal bila email belum terdaftar.
// Email/password kosong = dilewati.
func SeedAdmin(ctx context.Context, db *gorm.DB, email, password string) error {
	email = userDTO.NormalizeEmail(email)
	if email == "" || password == "" {
		logger.Info().Msg("SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD kosong, seed admin dilewati")
		return nil
	}

	_, err := userService.FindByEmail(ctx, db, email)
	if err == nil {
		logger.Info().Str("email", email).Msg("admin sudah ada")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := userService.HashPassword(password)
	if err != nil {
		return err
	}
	now := time.Now()
	u := model.UserModel{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hash,
		Role:         constants.RoleAdmin,
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.WithContext(ctx).Create(&u).Error; err != nil {
		return err
	}
	logger.Info().Str("email", email).Msg("✅ admin awal dibuat")
	return nil
}
