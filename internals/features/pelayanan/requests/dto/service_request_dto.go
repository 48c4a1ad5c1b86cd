package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"stamet_backend/internals/features/pelayanan/requests/model"
	"stamet_backend/internals/helpers/dbtime"
)

type ServiceRequestDTO struct {
	ID             uuid.UUID    `json:"id"`
	UserID         uuid.UUID    `json:"user_id"`
	FullName       string       `json:"full_name"`
	Email          string       `json:"email"`
	RequestType    string       `json:"request_type"`
	Description    string       `json:"description"`
	Status         model.Status `json:"status"`
	SkmDone        bool         `json:"skm_done"`
	SkmRating      *float64     `json:"skm_rating,omitempty"`
	SkmFeedback    *string      `json:"skm_feedback,omitempty"`
	SkmCompletedAt *time.Time   `json:"skm_completed_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

func FromModel(m model.ServiceRequestModel) ServiceRequestDTO {
	return ServiceRequestDTO{
		ID:             m.ID,
		UserID:         m.UserID,
		FullName:       m.FullName,
		Email:          m.Email,
		RequestType:    m.RequestType,
		Description:    m.Description,
		Status:         m.Status,
		SkmDone:        m.SkmCompletedAt != nil,
		SkmRating:      m.SkmRating,
		SkmFeedback:    m.SkmFeedback,
		SkmCompletedAt: dbtime.ToLocalPtr(m.SkmCompletedAt),
		CreatedAt:      dbtime.ToLocal(m.CreatedAt),
		UpdatedAt:      dbtime.ToLocal(m.UpdatedAt),
	}
}

func FromModels(list []model.ServiceRequestModel) []ServiceRequestDTO {
	out := make([]ServiceRequestDTO, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}

// Nama & email diambil dari akun bila dikosongkan.
type CreateServiceRequestRequest struct {
	FullName    string `json:"full_name" validate:"omitempty,max=150"`
	Email       string `json:"email" validate:"omitempty,email,max=255"`
	RequestType string `json:"request_type" validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
}

func (r *CreateServiceRequestRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.RequestType = strings.TrimSpace(r.RequestType)
	r.Description = strings.TrimSpace(r.Description)
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PROCESSING COMPLETED REJECTED"`
}
