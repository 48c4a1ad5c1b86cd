package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stamet_backend/internals/features/activity/logs/dto"
	"stamet_backend/internals/features/activity/logs/model"
)

type ListFilter struct {
	Action model.Action
	Target string
	UserID uuid.UUID
	Q      string
	From   *time.Time
	To     *time.Time
	Offset int
	Limit  int
}

type QueryService struct {
	DB *gorm.DB
}

func NewQueryService(db *gorm.DB) *QueryService {
	return &QueryService{DB: db}
}

// List terbaru dulu, dengan nama user (LEFT JOIN users).
func (s *QueryService) List(ctx context.Context, f ListFilter) ([]dto.ActivityLogDTO, int64, error) {
	q := s.DB.WithContext(ctx).Table("activity_logs AS l")
	if f.Action != "" {
		q = q.Where("l.action = ?", f.Action)
	}
	if t := strings.TrimSpace(f.Target); t != "" {
		q = q.Where("l.target = ?", t)
	}
	if f.UserID != uuid.Nil {
		q = q.Where("l.user_id = ?", f.UserID)
	}
	if term := strings.TrimSpace(f.Q); term != "" {
		q = q.Where("l.details ILIKE ?", "%"+term+"%")
	}
	if f.From != nil {
		q = q.Where("l.created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("l.created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]dto.ActivityLogDTO, 0, f.Limit)
	err := q.Select(`l.id, l.user_id, u.name AS user_name, u.email AS user_email,
			l.action, l.target, l.details, l.ip_address, l.metadata, l.created_at`).
		Joins("LEFT JOIN users u ON u.id = l.user_id").
		Order("l.created_at DESC").
		Offset(f.Offset).Limit(f.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
