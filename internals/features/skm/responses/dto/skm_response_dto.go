package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type AnswerInput struct {
	QuestionID uuid.UUID `json:"question_id" validate:"required"`
	Rating     int       `json:"rating" validate:"required,gte=1,lte=5"`
}

// SubmitSkmRequest: satu jawaban per pertanyaan aktif.
type SubmitSkmRequest struct {
	Answers  []AnswerInput `json:"answers" validate:"required,min=1,dive"`
	Feedback string        `json:"feedback" validate:"omitempty,max=2000"`
}

func (r *SubmitSkmRequest) Normalize() {
	r.Feedback = strings.TrimSpace(r.Feedback)
}

type AnswerDTO struct {
	QuestionID uuid.UUID `json:"question_id"`
	Code       string    `json:"code"`
	Rating     int       `json:"rating"`
}

// SurveyDTO satu permohonan yang sudah mengisi SKM.
type SurveyDTO struct {
	RequestID   uuid.UUID   `json:"request_id"`
	FullName    string      `json:"full_name"`
	Email       string      `json:"email"`
	RequestType string      `json:"request_type"`
	Average     *float64    `json:"average"`
	Feedback    *string     `json:"feedback,omitempty"`
	CompletedAt *time.Time  `json:"completed_at"`
	Answers     []AnswerDTO `json:"answers"`
}
