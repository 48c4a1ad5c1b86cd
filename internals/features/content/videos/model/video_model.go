package model

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
)

func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

type VideoModel struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	YoutubeID   string    `gorm:"column:youtube_id;type:varchar(32);not null" json:"youtube_id"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Status      Status    `gorm:"column:status;type:varchar(16);not null;default:'PUBLISHED'" json:"status"`
	CreatedAt   time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (VideoModel) TableName() string {
	return "videos"
}
