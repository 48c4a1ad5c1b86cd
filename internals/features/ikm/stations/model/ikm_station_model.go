package model

import (
	"time"

	"github.com/google/uuid"
)

type IkmStationModel struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StationName string    `gorm:"column:station_name;type:varchar(150);not null;uniqueIndex:uq_ikm_stations_name" json:"station_name"`
	IkmValue    float64   `gorm:"column:ikm_value;type:numeric(5,2);not null;default:0" json:"ikm_value"`
	Rating      string    `gorm:"column:rating;type:varchar(32)" json:"rating"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (IkmStationModel) TableName() string {
	return "ikm_stations"
}

// Batas mutu pelayanan IKM (PermenPANRB 14/2017), skala 25–100.
const (
	ThresholdA = 88.31
	ThresholdB = 76.61
	ThresholdC = 65.00
)

// DeriveRating mengubah nilai IKM jadi label mutu.
func DeriveRating(v float64) string {
	switch {
	case v >= ThresholdA:
		return "A (Sangat Baik)"
	case v >= ThresholdB:
		return "B (Baik)"
	case v >= ThresholdC:
		return "C (Kurang Baik)"
	default:
		return "D (Tidak Baik)"
	}
}
