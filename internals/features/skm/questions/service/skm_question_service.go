package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	activityModel "stamet_backend/internals/features/activity/logs/model"
	activity "stamet_backend/internals/features/activity/logs/service"
	"stamet_backend/internals/features/skm/questions/dto"
	"stamet_backend/internals/features/skm/questions/model"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
)

const (
	auditTarget = "Pertanyaan SKM"
	uqCode      = "uq_skm_questions_code"
)

type SkmQuestionService struct {
	DB    *gorm.DB
	Audit activity.Recorder
	now   func() time.Time
}

func NewSkmQuestionService(db *gorm.DB, audit activity.Recorder) *SkmQuestionService {
	if audit == nil {
		audit = activity.Discard{}
	}
	return &SkmQuestionService{DB: db, Audit: audit, now: time.Now}
}

// ListActive pertanyaan aktif urut order_index; dipakai form survei dan ekspor CSV.
func ListActive(ctx context.Context, db *gorm.DB) ([]model.SkmQuestionModel, error) {
	var rows []model.SkmQuestionModel
	err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("order_index ASC, code ASC").
		Find(&rows).Error
	return rows, err
}

func (s *SkmQuestionService) List(ctx context.Context, activeOnly bool) ([]model.SkmQuestionModel, error) {
	if activeOnly {
		return ListActive(ctx, s.DB)
	}
	var rows []model.SkmQuestionModel
	err := s.DB.WithContext(ctx).Order("order_index ASC, code ASC").Find(&rows).Error
	return rows, err
}

func (s *SkmQuestionService) GetByID(ctx context.Context, id uuid.UUID) (*model.SkmQuestionModel, error) {
	var m model.SkmQuestionModel
	if err := s.DB.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewNotFound("Pertanyaan tidak ditemukan")
		}
		return nil, helper.NewInternal(err)
	}
	return &m, nil
}

func (s *SkmQuestionService) Create(ctx context.Context, actor *authHelper.Identity, req dto.CreateSkmQuestionRequest, ip string) (*model.SkmQuestionModel, error) {
	if actor == nil {
		return nil, helper.NewUnauthorized("")
	}
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}

	now := s.now()
	m := &model.SkmQuestionModel{
		ID:        uuid.New(),
		Code:      req.Code,
		Question:  req.Question,
		Category:  req.Category,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.OrderIndex != nil {
			m.OrderIndex = *req.OrderIndex
		} else {
			var next int
			if err := tx.Model(&model.SkmQuestionModel{}).
				Select("COALESCE(MAX(order_index), 0) + 1").
				Scan(&next).Error; err != nil {
				return err
			}
			m.OrderIndex = next
		}
		// GORM melewatkan false pada kolom ber-default; tulis eksplisit.
		return tx.Select("*").Create(m).Error
	})
	if err != nil {
		return nil, s.writeErr(err, m.Code)
	}

	s.record(actor, activityModel.ActionCreate, m, ip, fmt.Sprintf("Menambah pertanyaan SKM %s", m.Code))
	return m, nil
}

func (s *SkmQuestionService) Update(ctx context.Context, actor *authHelper.Identity, id uuid.UUID, req dto.UpdateSkmQuestionRequest, ip string) (*model.SkmQuestionModel, error) {
	if actor == nil {
		return nil, helper.NewUnauthorized("")
	}
	req.Normalize()
	if (req.Code != nil && *req.Code == "") || (req.Question != nil && *req.Question == "") {
		return nil, helper.NewValidationError("Kode dan pertanyaan tidak boleh kosong")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}

	m, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Code != nil {
		m.Code = *req.Code
	}
	if req.Question != nil {
		m.Question = *req.Question
	}
	if req.Category != nil {
		m.Category = *req.Category
	}
	if req.OrderIndex != nil {
		m.OrderIndex = *req.OrderIndex
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	m.UpdatedAt = s.now()

	res := s.DB.WithContext(ctx).Model(&model.SkmQuestionModel{}).Where("id = ?", id).Updates(map[string]any{
		"code":        m.Code,
		"question":    m.Question,
		"category":    m.Category,
		"order_index": m.OrderIndex,
		"is_active":   m.IsActive,
		"updated_at":  m.UpdatedAt,
	})
	if res.Error != nil {
		return nil, s.writeErr(res.Error, m.Code)
	}
	if res.RowsAffected == 0 {
		return nil, helper.NewNotFound("Pertanyaan tidak ditemukan")
	}

	s.record(actor, activityModel.ActionUpdate, m, ip, fmt.Sprintf("Memperbarui pertanyaan SKM %s", m.Code))
	return m, nil
}

// Delete ditolak bila pertanyaan sudah punya jawaban; nonaktifkan saja.
func (s *SkmQuestionService) Delete(ctx context.Context, actor *authHelper.Identity, id uuid.UUID, ip string) error {
	if actor == nil {
		return helper.NewUnauthorized("")
	}
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// hitung & hapus dalam satu transaksi; FK RESTRICT menangkap jawaban yang masuk di sela-selanya
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var answered int64
		if err := tx.Table("skm_responses").Where("question_id = ?", id).Count(&answered).Error; err != nil {
			return err
		}
		if answered > 0 {
			return answeredConflict(m.Code, answered, nil)
		}
		return tx.Where("id = ?", id).Delete(&model.SkmQuestionModel{}).Error
	})
	if err != nil {
		return deleteErr(err, m.Code)
	}
	s.record(actor, activityModel.ActionDelete, m, ip, fmt.Sprintf("Menghapus pertanyaan SKM %s", m.Code))
	return nil
}

func answeredConflict(code string, answered int64, cause error) error {
	if answered > 0 {
		return helper.NewConflict(fmt.Sprintf("Pertanyaan %s sudah memiliki %d jawaban; nonaktifkan saja", code, answered), cause)
	}
	return helper.NewConflict(fmt.Sprintf("Pertanyaan %s sudah memiliki jawaban; nonaktifkan saja", code), cause)
}

// deleteErr: AppError diteruskan, pelanggaran FK jadi 409, sisanya 500.
func deleteErr(err error, code string) error {
	var ae *helper.AppError
	if errors.As(err, &ae) {
		return ae
	}
	if helper.IsForeignKeyViolation(err) {
		return answeredConflict(code, 0, err)
	}
	return helper.NewInternal(err)
}

func (s *SkmQuestionService) writeErr(err error, code string) error {
	if helper.IsUniqueViolation(err, uqCode) {
		return helper.NewConflict(fmt.Sprintf("Kode %s sudah digunakan", code), err)
	}
	return helper.NewInternal(err)
}

func (s *SkmQuestionService) record(actor *authHelper.Identity, action activityModel.Action, m *model.SkmQuestionModel, ip, details string) {
	s.Audit.Record(activity.Entry{
		UserID:    actor.UserIDPtr(),
		Action:    action,
		Target:    auditTarget,
		Details:   details,
		IPAddress: ip,
		Metadata:  map[string]any{"id": m.ID.String(), "code": m.Code},
	})
}
