package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel akun staf internal maupun pemohon layanan.
type UserModel struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string     `gorm:"column:name;type:varchar(150);not null" json:"name"`
	Email        string     `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;type:text;not null" json:"-"`
	Role         string     `gorm:"column:role;type:varchar(20);not null;default:'USER';index:idx_users_role" json:"role"`
	IsVerified   bool       `gorm:"column:is_verified;not null;default:false" json:"is_verified"`
	StationID    *uuid.UUID `gorm:"column:station_id;type:uuid" json:"station_id,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

const UniqueEmail = "uq_users_email"
