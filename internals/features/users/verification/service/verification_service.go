package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	userModel "stamet_backend/internals/features/users/user/model"
	"stamet_backend/internals/features/users/verification/model"
)

const (
	CodeValidity = 30 * time.Minute
	// Salah kode sebanyak ini mematikan kode; pemohon harus minta kirim ulang.
	MaxAttempts = 5

	codeMin = 100000
	codeMax = 999999
)

// ErrInvalidCode: kode salah, sudah dipakai, atau kedaluwarsa.
var ErrInvalidCode = errors.New("kode verifikasi tidak valid atau sudah kedaluwarsa")

// ErrTooManyAttempts tetap errors.Is(err, ErrInvalidCode).
var ErrTooManyAttempts = fmt.Errorf("%w: terlalu banyak percobaan, minta kode baru", ErrInvalidCode)

// GenerateCode menghasilkan kode 6 digit seragam di [100000, 999999].
func GenerateCode(r io.Reader) (string, error) {
	if r == nil {
		r = rand.Reader
	}
	n, err := rand.Int(r, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}

// Issue membuat kode baru dan mematikan kode lama yang belum dipakai.
func Issue(ctx context.Context, db *gorm.DB, userID uuid.UUID, now time.Time) (*model.EmailVerificationModel, error) {
	code, err := GenerateCode(nil)
	if err != nil {
		return nil, err
	}
	v := &model.EmailVerificationModel{
		ID:        uuid.New(),
		UserID:    userID,
		Code:      code,
		ExpiresAt: now.Add(CodeValidity),
		CreatedAt: now,
	}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.EmailVerificationModel{}).
			Where("user_id = ? AND used = ?", userID, false).
			Update("used", true).Error; err != nil {
			return err
		}
		return tx.Create(v).Error
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Consume memakai kode sekali lalu menandai user terverifikasi.
// Kode aktif terbaru dikunci FOR UPDATE sehingga dua request paralel hanya
// satu yang lolos. Kode salah menambah attempts (tetap di-commit); setelah
// MaxAttempts kode dimatikan.
func Consume(ctx context.Context, db *gorm.DB, userID uuid.UUID, code string, now time.Time) error {
	var outcome error
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var v model.EmailVerificationModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND used = ? AND expires_at > ?", userID, false, now).
			Order("created_at DESC").
			Take(&v).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			outcome = ErrInvalidCode
			return nil
		}
		if err != nil {
			return err
		}

		if subtle.ConstantTimeCompare([]byte(v.Code), []byte(code)) != 1 {
			attempts, exhausted := registerFailure(v.Attempts)
			outcome = ErrInvalidCode
			if exhausted {
				outcome = ErrTooManyAttempts
			}
			return tx.Model(&model.EmailVerificationModel{}).Where("id = ?", v.ID).
				Updates(map[string]any{"attempts": attempts, "used": exhausted}).Error
		}

		if err := tx.Model(&model.EmailVerificationModel{}).Where("id = ?", v.ID).
			Update("used", true).Error; err != nil {
			return err
		}
		return tx.Model(&userModel.UserModel{}).Where("id = ?", userID).
			Updates(map[string]any{"is_verified": true, "updated_at": now}).Error
	})
	if err != nil {
		return err
	}
	return outcome
}

// registerFailure: jumlah percobaan baru dan apakah kode harus dimatikan.
func registerFailure(attempts int) (int, bool) {
	attempts++
	return attempts, attempts >= MaxAttempts
}

// Purge menghapus kode yang sudah dipakai atau kedaluwarsa.
func Purge(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("used = ? OR expires_at < ?", true, now).
		Delete(&model.EmailVerificationModel{})
	return res.RowsAffected, res.Error
}
