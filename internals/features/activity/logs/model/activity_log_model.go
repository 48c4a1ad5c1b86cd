package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
	ActionLogin  Action = "LOGIN"
)

func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionLogin:
		return true
	}
	return false
}

// ActivityLogModel append-only; aplikasi tidak pernah update/delete.
type ActivityLogModel struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    *uuid.UUID        `gorm:"column:user_id;type:uuid;index" json:"user_id,omitempty"`
	Action    Action            `gorm:"column:action;type:varchar(16);not null;index" json:"action"`
	Target    string            `gorm:"column:target;type:varchar(100);not null;index" json:"target"`
	Details   string            `gorm:"column:details;type:text" json:"details"`
	IPAddress *string           `gorm:"column:ip_address;type:varchar(64)" json:"ip_address,omitempty"`
	Metadata  datatypes.JSONMap `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (ActivityLogModel) TableName() string {
	return "activity_logs"
}
