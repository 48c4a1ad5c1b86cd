package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stamet_backend/internals/constants"
	activityModel "stamet_backend/internals/features/activity/logs/model"
	activity "stamet_backend/internals/features/activity/logs/service"
	"stamet_backend/internals/features/ikm/stations/dto"
	"stamet_backend/internals/features/ikm/stations/model"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
)

const (
	auditTarget   = "Stasiun IKM"
	uqStationName = "uq_ikm_stations_name"
)

type IkmStationService struct {
	DB    *gorm.DB
	Audit activity.Recorder
	now   func() time.Time
}

func NewIkmStationService(db *gorm.DB, audit activity.Recorder) *IkmStationService {
	if audit == nil {
		audit = activity.Discard{}
	}
	return &IkmStationService{DB: db, Audit: audit, now: time.Now}
}

func (s *IkmStationService) List(ctx context.Context) ([]model.IkmStationModel, error) {
	var rows []model.IkmStationModel
	err := s.DB.WithContext(ctx).Order("station_name ASC").Find(&rows).Error
	return rows, err
}

func (s *IkmStationService) GetByID(ctx context.Context, id uuid.UUID) (*model.IkmStationModel, error) {
	var m model.IkmStationModel
	if err := s.DB.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewNotFound("Stasiun tidak ditemukan")
		}
		return nil, helper.NewInternal(err)
	}
	return &m, nil
}

// Hanya ADMIN yang boleh menambah/menghapus stasiun.
func (s *IkmStationService) Create(ctx context.Context, actor *authHelper.Identity, req dto.CreateIkmStationRequest, ip string) (*model.IkmStationModel, error) {
	if actor == nil {
		return nil, helper.NewUnauthorized("")
	}
	if !actor.HasRole(constants.RoleAdmin) {
		return nil, helper.NewForbidden(constants.RoleErrorAdmin("tambah stasiun"))
	}
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}

	m := &model.IkmStationModel{
		ID:          uuid.New(),
		StationName: req.StationName,
		IkmValue:    req.IkmValue,
		Rating:      req.Rating,
		UpdatedAt:   s.now(),
	}
	if m.Rating == "" {
		m.Rating = model.DeriveRating(m.IkmValue)
	}
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, s.writeErr(err, m.StationName)
	}

	s.record(actor, activityModel.ActionCreate, m, ip, fmt.Sprintf("Menambah stasiun %q (IKM %.2f)", m.StationName, m.IkmValue))
	return m, nil
}

// Update; DATIN yang terikat stasiun hanya boleh mengubah stasiunnya sendiri.
func (s *IkmStationService) Update(ctx context.Context, actor *authHelper.Identity, id uuid.UUID, req dto.UpdateIkmStationRequest, ip string) (*model.IkmStationModel, error) {
	if actor == nil {
		return nil, helper.NewUnauthorized("")
	}
	if !CanEditStation(actor, id) {
		return nil, helper.NewForbidden("Anda hanya boleh mengubah data stasiun Anda sendiri")
	}
	req.Normalize()
	if req.StationName != nil && *req.StationName == "" {
		return nil, helper.NewValidationError("Nama stasiun tidak boleh kosong")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}

	m, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	old := m.IkmValue
	if req.StationName != nil {
		m.StationName = *req.StationName
	}
	if req.IkmValue != nil {
		m.IkmValue = *req.IkmValue
	}
	switch {
	case req.Rating != nil && *req.Rating != "":
		m.Rating = *req.Rating
	case req.IkmValue != nil || (req.Rating != nil && *req.Rating == ""):
		m.Rating = model.DeriveRating(m.IkmValue)
	}
	m.UpdatedAt = s.now()

	res := s.DB.WithContext(ctx).Model(&model.IkmStationModel{}).Where("id = ?", id).Updates(map[string]any{
		"station_name": m.StationName,
		"ikm_value":    m.IkmValue,
		"rating":       m.Rating,
		"updated_at":   m.UpdatedAt,
	})
	if res.Error != nil {
		return nil, s.writeErr(res.Error, m.StationName)
	}
	if res.RowsAffected == 0 {
		return nil, helper.NewNotFound("Stasiun tidak ditemukan")
	}

	s.record(actor, activityModel.ActionUpdate, m, ip,
		fmt.Sprintf("Memperbarui stasiun %q (IKM %.2f -> %.2f, %s)", m.StationName, old, m.IkmValue, m.Rating))
	return m, nil
}

func (s *IkmStationService) Delete(ctx context.Context, actor *authHelper.Identity, id uuid.UUID, ip string) error {
	if actor == nil {
		return helper.NewUnauthorized("")
	}
	if !actor.HasRole(constants.RoleAdmin) {
		return helper.NewForbidden(constants.RoleErrorAdmin("hapus stasiun"))
	}
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.IkmStationModel{}).Error; err != nil {
		return helper.NewInternal(err)
	}
	s.record(actor, activityModel.ActionDelete, m, ip, fmt.Sprintf("Menghapus stasiun %q", m.StationName))
	return nil
}

// CanEditStation: ADMIN selalu boleh; DATIN boleh bila belum terikat stasiun
// atau stasiunnya sama.
func CanEditStation(actor *authHelper.Identity, stationID uuid.UUID) bool {
	switch {
	case actor == nil:
		return false
	case actor.Role == constants.RoleAdmin:
		return true
	case actor.Role == constants.RoleDatin:
		return actor.StationID == nil || *actor.StationID == stationID
	default:
		return false
	}
}

func (s *IkmStationService) writeErr(err error, name string) error {
	if helper.IsUniqueViolation(err, uqStationName) {
		return helper.NewConflict(fmt.Sprintf("Stasiun %q sudah terdaftar", name), err)
	}
	return helper.NewInternal(err)
}

func (s *IkmStationService) record(actor *authHelper.Identity, action activityModel.Action, m *model.IkmStationModel, ip, details string) {
	s.Audit.Record(activity.Entry{
		UserID:    actor.UserIDPtr(),
		Action:    action,
		Target:    auditTarget,
		Details:   details,
		IPAddress: ip,
		Metadata:  map[string]any{"id": m.ID.String(), "ikm_value": m.IkmValue, "rating": m.Rating},
	})
}
