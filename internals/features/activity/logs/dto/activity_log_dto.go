package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"stamet_backend/internals/features/activity/logs/model"
)

type ActivityLogDTO struct {
	ID        uuid.UUID         `json:"id"`
	UserID    *uuid.UUID        `json:"user_id,omitempty"`
	UserName  *string           `json:"user_name,omitempty"`
	UserEmail *string           `json:"user_email,omitempty"`
	Action    model.Action      `json:"action"`
	Target    string            `json:"target"`
	Details   string            `json:"details"`
	IPAddress *string           `json:"ip_address,omitempty"`
	Metadata  datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
