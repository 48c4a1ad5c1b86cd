package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	activityModel "stamet_backend/internals/features/activity/logs/model"
	activity "stamet_backend/internals/features/activity/logs/service"
	requestModel "stamet_backend/internals/features/pelayanan/requests/model"
	questionService "stamet_backend/internals/features/skm/questions/service"
	"stamet_backend/internals/features/skm/responses/dto"
	"stamet_backend/internals/features/skm/responses/export"
	"stamet_backend/internals/features/skm/responses/model"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
	"stamet_backend/internals/helpers/dbtime"
)

const auditTarget = "Survei SKM"

type SkmResponseService struct {
	DB    *gorm.DB
	Audit activity.Recorder
	now   func() time.Time
}

func NewSkmResponseService(db *gorm.DB, audit activity.Recorder) *SkmResponseService {
	if audit == nil {
		audit = activity.Discard{}
	}
	return &SkmResponseService{DB: db, Audit: audit, now: time.Now}
}

// ValidateAnswers memastikan tepat satu jawaban per pertanyaan aktif.
// Mengembalikan rata-rata (2 desimal).
func ValidateAnswers(active []uuid.UUID, answers []dto.AnswerInput) (float64, error) {
	want := make(map[uuid.UUID]bool, len(active))
	for _, id := range active {
		want[id] = false
	}

	fields := map[string][]string{}
	sum := 0
	for i, a := range answers {
		key := fmt.Sprintf("answers[%d]", i)
		seen, ok := want[a.QuestionID]
		switch {
		case !ok:
			fields[key] = append(fields[key], "pertanyaan tidak aktif atau tidak dikenal")
		case seen:
			fields[key] = append(fields[key], "pertanyaan dijawab lebih dari sekali")
		}
		if a.Rating < model.MinRating || a.Rating > model.MaxRating {
			fields[key] = append(fields[key], "nilai harus 1 sampai 5")
		}
		if ok {
			want[a.QuestionID] = true
		}
		sum += a.Rating
	}
	missing := 0
	for _, answered := range want {
		if !answered {
			missing++
		}
	}
	if missing > 0 {
		fields["answers"] = append(fields["answers"], fmt.Sprintf("%d pertanyaan belum dijawab", missing))
	}
	if len(fields) > 0 {
		return 0, helper.NewFieldErrors(fields)
	}
	if len(answers) == 0 {
		return 0, helper.NewValidationError("Belum ada pertanyaan SKM aktif")
	}
	avg := float64(sum) / float64(len(answers))
	return math.Round(avg*100) / 100, nil
}

// Submit menyimpan jawaban + rata-rata dalam satu transaksi.
// Permohonan hanya bisa disurvei sekali.
func (s *SkmResponseService) Submit(ctx context.Context, actor *authHelper.Identity, requestID uuid.UUID, req dto.SubmitSkmRequest, ip string) (*requestModel.ServiceRequestModel, error) {
	if actor == nil {
		return nil, helper.NewUnauthorized("")
	}
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}

	var out requestModel.ServiceRequestModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", requestID, actor.UserID).
			Take(&out).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.NewNotFound("Permohonan tidak ditemukan")
			}
			return err
		}
		if out.SkmCompletedAt != nil {
			return helper.NewConflict("Survei untuk permohonan ini sudah diisi", nil)
		}

		active, err := questionService.ListActive(ctx, tx)
		if err != nil {
			return err
		}
		ids := make([]uuid.UUID, 0, len(active))
		for _, q := range active {
			ids = append(ids, q.ID)
		}
		avg, err := ValidateAnswers(ids, req.Answers)
		if err != nil {
			return err
		}

		now := s.now()
		rows := make([]model.SkmResponseModel, 0, len(req.Answers))
		for _, a := range req.Answers {
			rows = append(rows, model.SkmResponseModel{
				ID:         uuid.New(),
				RequestID:  requestID,
				QuestionID: a.QuestionID,
				Rating:     a.Rating,
				CreatedAt:  now,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			if helper.IsUniqueViolation(err, model.UniqueRequestQuestion) {
				return helper.NewConflict("Survei untuk permohonan ini sudah diisi", err)
			}
			return err
		}

		var feedback *string
		if req.Feedback != "" {
			feedback = &req.Feedback
		}
		if err := tx.Model(&requestModel.ServiceRequestModel{}).Where("id = ?", requestID).Updates(map[string]any{
			"skm_rating":       avg,
			"skm_feedback":     feedback,
			"skm_completed_at": now,
			"updated_at":       now,
		}).Error; err != nil {
			return err
		}
		out.SkmRating, out.SkmFeedback, out.SkmCompletedAt, out.UpdatedAt = &avg, feedback, &now, now
		return nil
	})
	if err != nil {
		var ae *helper.AppError
		if errors.As(err, &ae) {
			return nil, ae
		}
		return nil, helper.NewInternal(err)
	}

	s.Audit.Record(activity.Entry{
		UserID:    actor.UserIDPtr(),
		Action:    activityModel.ActionCreate,
		Target:    auditTarget,
		Details:   fmt.Sprintf("Mengisi SKM untuk permohonan %q (rata-rata %.2f)", out.RequestType, *out.SkmRating),
		IPAddress: ip,
		Metadata:  map[string]any{"request_id": requestID.String(), "answers": len(req.Answers)},
	})
	return &out, nil
}

type Period struct {
	From *time.Time
	To   *time.Time
}

func (p Period) apply(q *gorm.DB, col string) *gorm.DB {
	if p.From != nil {
		q = q.Where(col+" >= ?", *p.From)
	}
	if p.To != nil {
		q = q.Where(col+" < ?", *p.To)
	}
	return q
}

// List permohonan yang sudah disurvei beserta jawabannya.
func (s *SkmResponseService) List(ctx context.Context, period Period, offset, limit int) ([]dto.SurveyDTO, int64, error) {
	q := period.apply(
		s.DB.WithContext(ctx).Model(&requestModel.ServiceRequestModel{}).Where("skm_completed_at IS NOT NULL"),
		"skm_completed_at",
	)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var reqs []requestModel.ServiceRequestModel
	if err := q.Order("skm_completed_at DESC").Offset(offset).Limit(limit).Find(&reqs).Error; err != nil {
		return nil, 0, err
	}
	if len(reqs) == 0 {
		return []dto.SurveyDTO{}, total, nil
	}

	ids := make([]uuid.UUID, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.ID)
	}
	type answerRow struct {
		RequestID  uuid.UUID
		QuestionID uuid.UUID
		Code       string
		Rating     int
	}
	var answers []answerRow
	if err := s.DB.WithContext(ctx).
		Table("skm_responses r").
		Select("r.request_id, r.question_id, q.code, r.rating").
		Joins("JOIN skm_questions q ON q.id = r.question_id").
		Where("r.request_id IN ?", ids).
		Order("q.order_index ASC, q.code ASC").
		Scan(&answers).Error; err != nil {
		return nil, 0, err
	}
	byReq := make(map[uuid.UUID][]dto.AnswerDTO, len(reqs))
	for _, a := range answers {
		byReq[a.RequestID] = append(byReq[a.RequestID], dto.AnswerDTO{QuestionID: a.QuestionID, Code: a.Code, Rating: a.Rating})
	}

	out := make([]dto.SurveyDTO, 0, len(reqs))
	for _, r := range reqs {
		list := byReq[r.ID]
		if list == nil {
			list = []dto.AnswerDTO{}
		}
		out = append(out, dto.SurveyDTO{
			RequestID:   r.ID,
			FullName:    r.FullName,
			Email:       r.Email,
			RequestType: r.RequestType,
			Average:     r.SkmRating,
			Feedback:    r.SkmFeedback,
			CompletedAt: dbtime.ToLocalPtr(r.SkmCompletedAt),
			Answers:     list,
		})
	}
	return out, total, nil
}

// BuildReport mengambil jawaban lalu mem-pivot per permohonan.
// Kolom pertanyaan = pertanyaan aktif saat ekspor, urut order_index.
func (s *SkmResponseService) BuildReport(ctx context.Context, period Period) (export.Report, error) {
	active, err := questionService.ListActive(ctx, s.DB)
	if err != nil {
		return export.Report{}, err
	}
	codes := make([]string, 0, len(active))
	for _, q := range active {
		codes = append(codes, q.Code)
	}

	var sources []export.Source
	q := s.DB.WithContext(ctx).
		Table("skm_responses r").
		Select(`r.request_id, sr.full_name, sr.email, sr.request_type,
			q.code AS question_code, r.rating,
			sr.skm_rating, sr.skm_feedback, sr.skm_completed_at`).
		Joins("JOIN service_requests sr ON sr.id = r.request_id").
		Joins("JOIN skm_questions q ON q.id = r.question_id")
	q = period.apply(q, "sr.skm_completed_at")
	if err := q.Order("sr.skm_completed_at ASC, r.request_id ASC, q.order_index ASC").Scan(&sources).Error; err != nil {
		return export.Report{}, err
	}
	return export.Aggregate(codes, sources, dbtime.Location()), nil
}

// Export menulis CSV ke w; mengembalikan nama file laporan.
func (s *SkmResponseService) Export(ctx context.Context, w io.Writer, period Period) (string, error) {
	rep, err := s.BuildReport(ctx, period)
	if err != nil {
		return "", err
	}
	if err := export.WriteCSV(w, rep); err != nil {
		return "", err
	}
	return ReportFilename(s.now()), nil
}

func ReportFilename(now time.Time) string {
	return "skm_report_" + now.In(dbtime.Location()).Format(time.DateOnly) + ".csv"
}
