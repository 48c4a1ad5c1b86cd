package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	activityModel "stamet_backend/internals/features/activity/logs/model"
	activity "stamet_backend/internals/features/activity/logs/service"
	"stamet_backend/internals/features/content/videos/dto"
	"stamet_backend/internals/features/content/videos/model"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
)

const auditTarget = "Video"

type VideoService struct {
	DB    *gorm.DB
	Audit activity.Recorder
	now   func() time.Time
}

func NewVideoService(db *gorm.DB, audit activity.Recorder) *VideoService {
	if audit == nil {
		audit = activity.Discard{}
	}
	return &VideoService{DB: db, Audit: audit, now: time.Now}
}

func (s *VideoService) List(ctx context.Context, publicOnly bool, status model.Status, q string, offset, limit int) ([]model.VideoModel, int64, error) {
	tx := s.DB.WithContext(ctx).Model(&model.VideoModel{})
	if publicOnly {
		tx = tx.Where("status = ?", model.StatusPublished)
	} else if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if term := strings.TrimSpace(q); term != "" {
		tx = tx.Where("title ILIKE ?", "%"+term+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.VideoModel
	if err := tx.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *VideoService) GetByID(ctx context.Context, id uuid.UUID) (*model.VideoModel, error) {
	var m model.VideoModel
	if err := s.DB.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewNotFound("Video tidak ditemukan")
		}
		return nil, helper.NewInternal(err)
	}
	return &m, nil
}

func (s *VideoService) Create(ctx context.Context, actor *authHelper.Identity, req dto.CreateVideoRequest, ip string) (*model.VideoModel, error) {
	if actor == nil {
		return nil, helper.NewUnauthorized("")
	}
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}
	ytID, err := ExtractYoutubeID(req.YoutubeID)
	if err != nil {
		return nil, helper.NewFieldErrors(map[string][]string{"youtube_id": {err.Error()}})
	}

	now := s.now()
	m := &model.VideoModel{
		ID:          uuid.New(),
		Title:       req.Title,
		YoutubeID:   ytID,
		Description: req.Description,
		Status:      model.Status(req.Status),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if m.Status == "" {
		m.Status = model.StatusPublished
	}
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, helper.NewInternal(err)
	}

	s.record(actor, activityModel.ActionCreate, m, ip, fmt.Sprintf("Menambah video %q (%s)", m.Title, m.YoutubeID))
	return m, nil
}

func (s *VideoService) Update(ctx context.Context, actor *authHelper.Identity, id uuid.UUID, req dto.UpdateVideoRequest, ip string) (*model.VideoModel, error) {
	if actor == nil {
		return nil, helper.NewUnauthorized("")
	}
	req.Normalize()
	if req.Title != nil && *req.Title == "" {
		return nil, helper.NewValidationError("Judul tidak boleh kosong")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}

	m, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.YoutubeID != nil {
		ytID, err := ExtractYoutubeID(*req.YoutubeID)
		if err != nil {
			return nil, helper.NewFieldErrors(map[string][]string{"youtube_id": {err.Error()}})
		}
		m.YoutubeID = ytID
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Status != nil && *req.Status != "" {
		m.Status = model.Status(*req.Status)
	}
	m.UpdatedAt = s.now()

	res := s.DB.WithContext(ctx).Model(&model.VideoModel{}).Where("id = ?", m.ID).Updates(map[string]any{
		"title":       m.Title,
		"youtube_id":  m.YoutubeID,
		"description": m.Description,
		"status":      m.Status,
		"updated_at":  m.UpdatedAt,
	})
	if res.Error != nil {
		return nil, helper.NewInternal(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, helper.NewNotFound("Video tidak ditemukan")
	}

	s.record(actor, activityModel.ActionUpdate, m, ip, fmt.Sprintf("Memperbarui video %q", m.Title))
	return m, nil
}

func (s *VideoService) Delete(ctx context.Context, actor *authHelper.Identity, id uuid.UUID, ip string) error {
	if actor == nil {
		return helper.NewUnauthorized("")
	}
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.VideoModel{})
	if res.Error != nil {
		return helper.NewInternal(res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.NewNotFound("Video tidak ditemukan")
	}
	s.record(actor, activityModel.ActionDelete, m, ip, fmt.Sprintf("Menghapus video %q", m.Title))
	return nil
}

func (s *VideoService) record(actor *authHelper.Identity, action activityModel.Action, m *model.VideoModel, ip, details string) {
	s.Audit.Record(activity.Entry{
		UserID:    actor.UserIDPtr(),
		Action:    action,
		Target:    auditTarget,
		Details:   details,
		IPAddress: ip,
		Metadata:  map[string]any{"id": m.ID.String(), "youtube_id": m.YoutubeID},
	})
}
