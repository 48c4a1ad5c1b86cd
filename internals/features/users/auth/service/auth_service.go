package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stamet_backend/internals/constants"
	activityModel "stamet_backend/internals/features/activity/logs/model"
	activity "stamet_backend/internals/features/activity/logs/service"
	"stamet_backend/internals/features/users/auth/dto"
	userDTO "stamet_backend/internals/features/users/user/dto"
	userModel "stamet_backend/internals/features/users/user/model"
	userService "stamet_backend/internals/features/users/user/service"
	verification "stamet_backend/internals/features/users/verification/service"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
	"stamet_backend/internals/helpers/logger"
)

// Mailer cukup bisa mengirim kode verifikasi.
type Mailer interface {
	SendVerificationCode(to, userName, code string, validFor time.Duration) error
}

type AuthService struct {
	DB          *gorm.DB
	Mailer      Mailer
	Revocations authHelper.Revocations
	Audit       activity.Recorder
	Secret      string
	TTL         time.Duration
	now         func() time.Time
}

type Options struct {
	Mailer      Mailer
	Revocations authHelper.Revocations
	Audit       activity.Recorder
	Secret      string
	TTL         time.Duration
}

func NewAuthService(db *gorm.DB, opts Options) *AuthService {
	if opts.Audit == nil {
		opts.Audit = activity.Discard{}
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &AuthService{
		DB:          db,
		Mailer:      opts.Mailer,
		Revocations: opts.Revocations,
		Audit:       opts.Audit,
		Secret:      opts.Secret,
		TTL:         opts.TTL,
		now:         time.Now,
	}
}

var errBadCredentials = helper.NewUnauthorized("Email atau password salah")

/* ==========================
   REGISTER & VERIFIKASI
========================== */

// Register membuat akun pemohon (USER) yang belum terverifikasi lalu mengirim kode.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest, ip string) (*userModel.UserModel, error) {
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}
	hash, err := userService.HashPassword(req.Password)
	if err != nil {
		return nil, helper.NewInternal(err)
	}

	now := s.now()
	u := &userModel.UserModel{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         constants.RoleUser,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		if helper.IsUniqueViolation(err, userModel.UniqueEmail) {
			return nil, helper.NewConflict("Email sudah terdaftar", err)
		}
		return nil, helper.NewInternal(err)
	}

	s.sendCode(ctx, u)
	s.Audit.Record(activity.Entry{
		UserID:    &u.ID,
		Action:    activityModel.ActionCreate,
		Target:    "Registrasi",
		Details:   fmt.Sprintf("Registrasi pemohon %s", u.Email),
		IPAddress: ip,
	})
	return u, nil
}

// sendCode menerbitkan kode baru; gagal kirim email hanya dicatat karena
// pemohon masih bisa meminta kirim ulang.
func (s *AuthService) sendCode(ctx context.Context, u *userModel.UserModel) {
	v, err := verification.Issue(ctx, s.DB, u.ID, s.now())
	if err != nil {
		logger.Error().Err(err).Str("user_id", u.ID.String()).Msg("gagal membuat kode verifikasi")
		return
	}
	if s.Mailer == nil {
		logger.Warn().Str("user_id", u.ID.String()).Msg("mailer belum diatur, kode verifikasi tidak dikirim")
		return
	}
	if err := s.Mailer.SendVerificationCode(u.Email, u.Name, v.Code, verification.CodeValidity); err != nil {
		logger.Error().Err(err).Str("user_id", u.ID.String()).Msg("gagal mengirim email verifikasi")
	}
}

func (s *AuthService) findTarget(ctx context.Context, userID, email string) (*userModel.UserModel, error) {
	var (
		u   *userModel.UserModel
		err error
	)
	switch {
	case userID != "":
		id, perr := uuid.Parse(userID)
		if perr != nil {
			return nil, helper.NewValidationError("user_id tidak valid")
		}
		u, err = userService.FindByID(ctx, s.DB, id)
	case email != "":
		u, err = userService.FindByEmail(ctx, s.DB, email)
	default:
		return nil, helper.NewValidationError("user_id atau email wajib diisi")
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewNotFound("Akun tidak ditemukan")
		}
		return nil, helper.NewInternal(err)
	}
	return u, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, req dto.VerifyEmailRequest, ip string) (*userModel.UserModel, error) {
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}
	u, err := s.findTarget(ctx, req.UserID, req.Email)
	if err != nil {
		return nil, err
	}
	if u.IsVerified {
		return u, nil
	}

	now := s.now()
	if err := verification.Consume(ctx, s.DB, u.ID, req.Code, now); err != nil {
		if errors.Is(err, verification.ErrInvalidCode) {
			return nil, helper.NewFieldErrors(map[string][]string{"code": {err.Error()}})
		}
		return nil, helper.NewInternal(err)
	}
	u.IsVerified = true
	u.UpdatedAt = now

	s.Audit.Record(activity.Entry{
		UserID:    &u.ID,
		Action:    activityModel.ActionUpdate,
		Target:    "Registrasi",
		Details:   fmt.Sprintf("Verifikasi email %s", u.Email),
		IPAddress: ip,
	})
	return u, nil
}

func (s *AuthService) ResendVerification(ctx context.Context, req dto.ResendVerificationRequest) error {
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return err
	}
	u, err := s.findTarget(ctx, req.UserID, req.Email)
	if err != nil {
		return err
	}
	if u.IsVerified {
		return helper.NewValidationError("Akun sudah terverifikasi")
	}
	s.sendCode(ctx, u)
	return nil
}

/* ==========================
   LOGIN / LOGOUT
========================== */

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest, ip string) (*dto.LoginResponse, error) {
	req.Normalize()
	if req.Channel == "" {
		req.Channel = constants.ChannelInternal
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}

	u, err := userService.FindByEmail(ctx, s.DB, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errBadCredentials
		}
		return nil, helper.NewInternal(err)
	}
	if !userService.CheckPassword(u.PasswordHash, req.Password) {
		return nil, errBadCredentials
	}

	switch authHelper.CheckLogin(req.Channel, u.Role, u.IsVerified) {
	case authHelper.LoginWrongChannel:
		if req.Channel == constants.ChannelPelayanan {
			return nil, helper.NewForbidden("Akun staf harus login melalui halaman internal")
		}
		return nil, helper.NewForbidden("Akun pemohon harus login melalui halaman pelayanan")
	case authHelper.LoginUnverified:
		return nil, helper.NewUnverified(u.ID)
	}

	id := &authHelper.Identity{
		UserID:    u.ID,
		Name:      u.Name,
		Role:      u.Role,
		Channel:   req.Channel,
		StationID: u.StationID,
	}
	token, exp, err := authHelper.IssueAccessToken(s.Secret, id, s.TTL, s.now())
	if err != nil {
		return nil, helper.NewInternal(err)
	}

	s.Audit.Record(activity.Entry{
		UserID:    &u.ID,
		Action:    activityModel.ActionLogin,
		Target:    "Sesi",
		Details:   fmt.Sprintf("Login %s via kanal %s", u.Email, req.Channel),
		IPAddress: ip,
		Metadata:  map[string]any{"role": u.Role, "channel": req.Channel},
	})
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   exp,
		Channel:     req.Channel,
		User:        userDTO.FromModel(*u),
	}, nil
}

// Logout mencabut token sampai masa berlakunya habis. Token yang sudah
// tidak valid dianggap sudah keluar.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	if raw == "" || s.Revocations == nil {
		return nil
	}
	claims, err := authHelper.ParseAccessToken(s.Secret, raw, s.now())
	if err != nil {
		return nil
	}
	if err := s.Revocations.Revoke(ctx, raw, claims.ExpiresAt.Add(time.Minute)); err != nil {
		return helper.NewInternal(err)
	}
	return nil
}

/* ==========================
   AKUN SENDIRI
========================== */

func (s *AuthService) Me(ctx context.Context, actor *authHelper.Identity) (*userModel.UserModel, error) {
	if actor == nil {
		return nil, helper.NewUnauthorized("")
	}
	u, err := userService.FindByID(ctx, s.DB, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewUnauthorized("Akun tidak ditemukan")
		}
		return nil, helper.NewInternal(err)
	}
	return u, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, actor *authHelper.Identity, req dto.ChangePasswordRequest, ip string) error {
	if actor == nil {
		return helper.NewUnauthorized("")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return err
	}
	u, err := s.Me(ctx, actor)
	if err != nil {
		return err
	}
	if !userService.CheckPassword(u.PasswordHash, req.OldPassword) {
		return helper.NewFieldErrors(map[string][]string{"old_password": {"password lama salah"}})
	}
	hash, err := userService.HashPassword(req.NewPassword)
	if err != nil {
		return helper.NewInternal(err)
	}
	if err := s.DB.WithContext(ctx).Model(&userModel.UserModel{}).Where("id = ?", u.ID).
		Updates(map[string]any{"password_hash": hash, "updated_at": s.now()}).Error; err != nil {
		return helper.NewInternal(err)
	}

	s.Audit.Record(activity.Entry{
		UserID:    &u.ID,
		Action:    activityModel.ActionUpdate,
		Target:    "Pengguna",
		Details:   fmt.Sprintf("Mengganti password %s", u.Email),
		IPAddress: ip,
	})
	return nil
}
