package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"stamet_backend/internals/features/ikm/stations/model"
	"stamet_backend/internals/helpers/dbtime"
)

type IkmStationDTO struct {
	ID          uuid.UUID `json:"id"`
	StationName string    `json:"station_name"`
	IkmValue    float64   `json:"ikm_value"`
	Rating      string    `json:"rating"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromModel(m model.IkmStationModel) IkmStationDTO {
	return IkmStationDTO{
		ID:          m.ID,
		StationName: m.StationName,
		IkmValue:    m.IkmValue,
		Rating:      m.Rating,
		UpdatedAt:   dbtime.ToLocal(m.UpdatedAt),
	}
}

func FromModels(list []model.IkmStationModel) []IkmStationDTO {
	out := make([]IkmStationDTO, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}

// Rating kosong = diturunkan dari ikm_value.
type CreateIkmStationRequest struct {
	StationName string  `json:"station_name" validate:"required,max=150"`
	IkmValue    float64 `json:"ikm_value" validate:"gte=0,lte=100"`
	Rating      string  `json:"rating" validate:"omitempty,max=32"`
}

func (r *CreateIkmStationRequest) Normalize() {
	r.StationName = strings.TrimSpace(r.StationName)
	r.Rating = strings.TrimSpace(r.Rating)
}

type UpdateIkmStationRequest struct {
	StationName *string  `json:"station_name" validate:"omitempty,max=150"`
	IkmValue    *float64 `json:"ikm_value" validate:"omitempty,gte=0,lte=100"`
	Rating      *string  `json:"rating" validate:"omitempty,max=32"`
}

func (r *UpdateIkmStationRequest) Normalize() {
	if r.StationName != nil {
		v := strings.TrimSpace(*r.StationName)
		r.StationName = &v
	}
	if r.Rating != nil {
		v := strings.TrimSpace(*r.Rating)
		r.Rating = &v
	}
}
