package model

import (
	"time"

	"github.com/google/uuid"

	requestModel "stamet_backend/internals/features/pelayanan/requests/model"
	questionModel "stamet_backend/internals/features/skm/questions/model"
)

// SkmResponseModel satu nilai (1–5) untuk satu pertanyaan pada satu permohonan.
type SkmResponseModel struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RequestID  uuid.UUID `gorm:"column:request_id;type:uuid;not null;uniqueIndex:uq_skm_responses_request_question,priority:1" json:"request_id"`
	QuestionID uuid.UUID `gorm:"column:question_id;type:uuid;not null;uniqueIndex:uq_skm_responses_request_question,priority:2;index:idx_skm_responses_question" json:"question_id"`
	Rating     int       `gorm:"column:rating;not null;check:chk_skm_responses_rating,rating BETWEEN 1 AND 5" json:"rating"`
	CreatedAt  time.Time `gorm:"column:created_at;not null" json:"created_at"`

	Request  *requestModel.ServiceRequestModel `gorm:"foreignKey:RequestID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Question *questionModel.SkmQuestionModel   `gorm:"foreignKey:QuestionID;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (SkmResponseModel) TableName() string {
	return "skm_responses"
}

const UniqueRequestQuestion = "uq_skm_responses_request_question"

const (
	MinRating = 1
	MaxRating = 5
)
