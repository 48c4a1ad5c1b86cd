package model

import (
	"time"

	"github.com/google/uuid"

	userModel "stamet_backend/internals/features/users/user/model"
)

type EmailVerificationModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:idx_email_verifications_user" json:"user_id"`
	Code      string    `gorm:"column:code;type:char(6);not null" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index:idx_email_verifications_expires" json:"expires_at"`
	Used      bool      `gorm:"column:used;not null;default:false" json:"used"`
	Attempts  int       `gorm:"column:attempts;not null;default:0" json:"attempts"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`

	User *userModel.UserModel `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (EmailVerificationModel) TableName() string {
	return "email_verifications"
}
