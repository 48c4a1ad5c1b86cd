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
	"stamet_backend/internals/features/pelayanan/requests/dto"
	"stamet_backend/internals/features/pelayanan/requests/model"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
)

const auditTarget = "Permohonan Layanan"

// Contact nama & email akun pemohon, dipakai sebagai default.
type Contact struct {
	Name  string
	Email string
}

type ContactLookup func(ctx context.Context, userID uuid.UUID) (Contact, error)

type ServiceRequestService struct {
	DB      *gorm.DB
	Audit   activity.Recorder
	Contact ContactLookup
	now     func() time.Time
}

func NewServiceRequestService(db *gorm.DB, audit activity.Recorder) *ServiceRequestService {
	if audit == nil {
		audit = activity.Discard{}
	}
	s := &ServiceRequestService{DB: db, Audit: audit, now: time.Now}
	s.Contact = s.contactFromUsers
	return s
}

func (s *ServiceRequestService) contactFromUsers(ctx context.Context, userID uuid.UUID) (Contact, error) {
	var c Contact
	err := s.DB.WithContext(ctx).Table("users").Select("name, email").Where("id = ?", userID).Take(&c).Error
	return c, err
}

func (s *ServiceRequestService) Create(ctx context.Context, actor *authHelper.Identity, req dto.CreateServiceRequestRequest, ip string) (*model.ServiceRequestModel, error) {
	if actor == nil {
		return nil, helper.NewUnauthorized("")
	}
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}

	if req.FullName == "" || req.Email == "" {
		c, err := s.Contact(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, helper.NewUnauthorized("Akun tidak ditemukan")
			}
			return nil, helper.NewInternal(err)
		}
		if req.FullName == "" {
			req.FullName = c.Name
		}
		if req.Email == "" {
			req.Email = c.Email
		}
	}

	now := s.now()
	m := &model.ServiceRequestModel{
		ID:          uuid.New(),
		UserID:      actor.UserID,
		FullName:    req.FullName,
		Email:       req.Email,
		RequestType: req.RequestType,
		Description: req.Description,
		Status:      model.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, helper.NewInternal(err)
	}

	s.record(actor, activityModel.ActionCreate, m, ip, fmt.Sprintf("Mengajukan permohonan %q", m.RequestType))
	return m, nil
}

type ListParams struct {
	UserID uuid.UUID
	Status model.Status
	Q      string
	Offset int
	Limit  int
}

// List; UserID != Nil membatasi ke milik pemohon itu.
func (s *ServiceRequestService) List(ctx context.Context, p ListParams) ([]model.ServiceRequestModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.ServiceRequestModel{})
	if p.UserID != uuid.Nil {
		q = q.Where("user_id = ?", p.UserID)
	}
	if p.Status != "" {
		q = q.Where("status = ?", p.Status)
	}
	if term := strings.TrimSpace(p.Q); term != "" {
		like := "%" + term + "%"
		q = q.Where("(full_name ILIKE ? OR email ILIKE ? OR request_type ILIKE ?)", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.ServiceRequestModel
	if err := q.Order("created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// GetForActor: pemohon hanya melihat miliknya; staf melihat semua.
func (s *ServiceRequestService) GetForActor(ctx context.Context, actor *authHelper.Identity, id uuid.UUID, ownerOnly bool) (*model.ServiceRequestModel, error) {
	if actor == nil {
		return nil, helper.NewUnauthorized("")
	}
	q := s.DB.WithContext(ctx).Where("id = ?", id)
	if ownerOnly {
		q = q.Where("user_id = ?", actor.UserID)
	}
	var m model.ServiceRequestModel
	if err := q.Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewNotFound("Permohonan tidak ditemukan")
		}
		return nil, helper.NewInternal(err)
	}
	return &m, nil
}

func (s *ServiceRequestService) UpdateStatus(ctx context.Context, actor *authHelper.Identity, id uuid.UUID, req dto.UpdateStatusRequest, ip string) (*model.ServiceRequestModel, error) {
	if actor == nil {
		return nil, helper.NewUnauthorized("")
	}
	req.Status = strings.ToUpper(strings.TrimSpace(req.Status))
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}

	m, err := s.GetForActor(ctx, actor, id, false)
	if err != nil {
		return nil, err
	}
	old := m.Status
	m.Status = model.Status(req.Status)
	m.UpdatedAt = s.now()

	res := s.DB.WithContext(ctx).Model(&model.ServiceRequestModel{}).Where("id = ?", id).
		Updates(map[string]any{"status": m.Status, "updated_at": m.UpdatedAt})
	if res.Error != nil {
		return nil, helper.NewInternal(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, helper.NewNotFound("Permohonan tidak ditemukan")
	}

	s.record(actor, activityModel.ActionUpdate, m, ip,
		fmt.Sprintf("Mengubah status permohonan %q milik %s: %s -> %s", m.RequestType, m.FullName, old, m.Status))
	return m, nil
}

func (s *ServiceRequestService) record(actor *authHelper.Identity, action activityModel.Action, m *model.ServiceRequestModel, ip, details string) {
	s.Audit.Record(activity.Entry{
		UserID:    actor.UserIDPtr(),
		Action:    action,
		Target:    auditTarget,
		Details:   details,
		IPAddress: ip,
		Metadata:  map[string]any{"id": m.ID.String(), "status": string(m.Status)},
	})
}
