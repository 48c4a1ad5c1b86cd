package model

import (
	"time"

	"github.com/google/uuid"
)

type SkmQuestionModel struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Code       string    `gorm:"column:code;type:varchar(16);not null;uniqueIndex:uq_skm_questions_code" json:"code"`
	Question   string    `gorm:"column:question;type:text;not null" json:"question"`
	Category   string    `gorm:"column:category;type:varchar(100)" json:"category"`
	OrderIndex int       `gorm:"column:order_index;not null;default:0" json:"order_index"`
	IsActive   bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (SkmQuestionModel) TableName() string {
	return "skm_questions"
}
