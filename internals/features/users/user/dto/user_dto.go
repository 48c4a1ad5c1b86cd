package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"stamet_backend/internals/features/users/user/model"
	"stamet_backend/internals/helpers/dbtime"
)

type UserDTO struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	IsVerified bool       `json:"is_verified"`
	StationID  *uuid.UUID `json:"station_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func FromModel(m model.UserModel) UserDTO {
	return UserDTO{
		ID:         m.ID,
		Name:       m.Name,
		Email:      m.Email,
		Role:       m.Role,
		IsVerified: m.IsVerified,
		StationID:  m.StationID,
		CreatedAt:  dbtime.ToLocal(m.CreatedAt),
		UpdatedAt:  dbtime.ToLocal(m.UpdatedAt),
	}
}

func FromModels(list []model.UserModel) []UserDTO {
	out := make([]UserDTO, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}

// CreateUserRequest dipakai admin; akun buatan admin langsung terverifikasi.
type CreateUserRequest struct {
	Name      string     `json:"name" validate:"required,max=150"`
	Email     string     `json:"email" validate:"required,email,max=255"`
	Password  string     `json:"password" validate:"required,min=8,max=72"`
	Role      string     `json:"role" validate:"required,oneof=ADMIN CONTENT CONTENT_ADMIN DATIN PELAYANAN USER"`
	StationID *uuid.UUID `json:"station_id"`
}

func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
}

type UpdateUserRequest struct {
	Name       *string    `json:"name" validate:"omitempty,max=150"`
	Role       *string    `json:"role" validate:"omitempty,oneof=ADMIN CONTENT CONTENT_ADMIN DATIN PELAYANAN USER"`
	IsVerified *bool      `json:"is_verified"`
	StationID  *uuid.UUID `json:"station_id"`
	// ClearStation melepas ikatan stasiun.
	ClearStation bool `json:"clear_station"`
}

func (r *UpdateUserRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
	if r.Role != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Role))
		r.Role = &v
	}
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
