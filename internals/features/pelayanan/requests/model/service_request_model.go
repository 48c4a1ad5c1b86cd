package model

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusRejected   Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// ServiceRequestModel permohonan data/layanan dari pemohon.
// Kolom skm_* terisi sekali saat survei SKM dikirim.
type ServiceRequestModel struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:idx_service_requests_user" json:"user_id"`
	FullName       string     `gorm:"column:full_name;type:varchar(150);not null" json:"full_name"`
	Email          string     `gorm:"column:email;type:varchar(255);not null" json:"email"`
	RequestType    string     `gorm:"column:request_type;type:varchar(100);not null" json:"request_type"`
	Description    string     `gorm:"column:description;type:text" json:"description"`
	Status         Status     `gorm:"column:status;type:varchar(16);not null;default:'PENDING';index:idx_service_requests_status" json:"status"`
	SkmFeedback    *string    `gorm:"column:skm_feedback;type:text" json:"skm_feedback,omitempty"`
	SkmRating      *float64   `gorm:"column:skm_rating;type:numeric(4,2)" json:"skm_rating,omitempty"`
	SkmCompletedAt *time.Time `gorm:"column:skm_completed_at" json:"skm_completed_at,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (ServiceRequestModel) TableName() string {
	return "service_requests"
}
