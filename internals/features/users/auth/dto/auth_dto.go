package dto

import (
	"strings"
	"time"

	userDTO "stamet_backend/internals/features/users/user/dto"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = userDTO.NormalizeEmail(r.Email)
}

// VerifyEmailRequest: user_id (dari respon login UNVERIFIED) atau email.
type VerifyEmailRequest struct {
	UserID string `json:"user_id" validate:"omitempty,uuid"`
	Email  string `json:"email" validate:"omitempty,email"`
	Code   string `json:"code" validate:"required,len=6,numeric"`
}

func (r *VerifyEmailRequest) Normalize() {
	r.UserID = strings.TrimSpace(r.UserID)
	r.Email = userDTO.NormalizeEmail(r.Email)
	r.Code = strings.TrimSpace(r.Code)
}

type ResendVerificationRequest struct {
	UserID string `json:"user_id" validate:"omitempty,uuid"`
	Email  string `json:"email" validate:"omitempty,email"`
}

func (r *ResendVerificationRequest) Normalize() {
	r.UserID = strings.TrimSpace(r.UserID)
	r.Email = userDTO.NormalizeEmail(r.Email)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	// internal (staf) atau pelayanan (pemohon); default internal.
	Channel string `json:"channel" validate:"omitempty,oneof=internal pelayanan"`
}

func (r *LoginRequest) Normalize() {
	r.Email = userDTO.NormalizeEmail(r.Email)
	r.Channel = strings.ToLower(strings.TrimSpace(r.Channel))
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72,nefield=OldPassword"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresAt   time.Time       `json:"expires_at"`
	Channel     string          `json:"channel"`
	User        userDTO.UserDTO `json:"user"`
}
