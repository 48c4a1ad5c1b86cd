package dto

import (
	"strings"

	"github.com/google/uuid"

	"stamet_backend/internals/features/skm/questions/model"
)

type SkmQuestionDTO struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	Question   string    `json:"question"`
	Category   string    `json:"category"`
	OrderIndex int       `json:"order_index"`
	IsActive   bool      `json:"is_active"`
}

func FromModel(m model.SkmQuestionModel) SkmQuestionDTO {
	return SkmQuestionDTO{
		ID:         m.ID,
		Code:       m.Code,
		Question:   m.Question,
		Category:   m.Category,
		OrderIndex: m.OrderIndex,
		IsActive:   m.IsActive,
	}
}

func FromModels(list []model.SkmQuestionModel) []SkmQuestionDTO {
	out := make([]SkmQuestionDTO, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}

// OrderIndex nil = ditaruh paling akhir.
type CreateSkmQuestionRequest struct {
	Code       string `json:"code" validate:"required,max=16"`
	Question   string `json:"question" validate:"required"`
	Category   string `json:"category" validate:"omitempty,max=100"`
	OrderIndex *int   `json:"order_index" validate:"omitempty,gte=0"`
	IsActive   *bool  `json:"is_active"`
}

func (r *CreateSkmQuestionRequest) Normalize() {
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.Question = strings.TrimSpace(r.Question)
	r.Category = strings.TrimSpace(r.Category)
}

type UpdateSkmQuestionRequest struct {
	Code       *string `json:"code" validate:"omitempty,max=16"`
	Question   *string `json:"question"`
	Category   *string `json:"category" validate:"omitempty,max=100"`
	OrderIndex *int    `json:"order_index" validate:"omitempty,gte=0"`
	IsActive   *bool   `json:"is_active"`
}

func (r *UpdateSkmQuestionRequest) Normalize() {
	if r.Code != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Code))
		r.Code = &v
	}
	if r.Question != nil {
		v := strings.TrimSpace(*r.Question)
		r.Question = &v
	}
	if r.Category != nil {
		v := strings.TrimSpace(*r.Category)
		r.Category = &v
	}
}
