package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	activityModel "stamet_backend/internals/features/activity/logs/model"
	activity "stamet_backend/internals/features/activity/logs/service"
	"stamet_backend/internals/features/content/posts/dto"
	"stamet_backend/internals/features/content/posts/model"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
	"stamet_backend/internals/helpers/logger"
)

// Insert/update yang kalah balapan slug diulang sekali dengan slug baru.
const slugWriteAttempts = 2

type PostService struct {
	DB         *gorm.DB
	Audit      activity.Recorder
	Collection model.Collection
	now        func() time.Time
}

func NewPostService(db *gorm.DB, audit activity.Recorder, col model.Collection) *PostService {
	if audit == nil {
		audit = activity.Discard{}
	}
	return &PostService{DB: db, Audit: audit, Collection: col, now: time.Now}
}

func (s *PostService) table(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).Table(s.Collection.Table())
}

type ListParams struct {
	Status     model.Status
	Category   string
	Tag        string
	Q          string
	PublicOnly bool
	Offset     int
	Limit      int
}

func (s *PostService) List(ctx context.Context, p ListParams) ([]model.PostModel, int64, error) {
	q := s.table(ctx)
	if p.PublicOnly {
		q = q.Where("status = ?", model.StatusPublished)
	} else if p.Status != "" {
		q = q.Where("status = ?", p.Status)
	}
	if c := strings.TrimSpace(p.Category); c != "" {
		q = q.Where("category = ?", strings.ToUpper(c))
	}
	if t := strings.TrimSpace(p.Tag); t != "" {
		q = q.Where("? = ANY(tags)", strings.ToLower(t))
	}
	if term := strings.TrimSpace(p.Q); term != "" {
		like := "%" + term + "%"
		q = q.Where("(title ILIKE ? OR description ILIKE ?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if p.PublicOnly {
		order = "published_at DESC NULLS LAST, created_at DESC"
	}
	var rows []model.PostModel
	if err := q.Order(order).Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *PostService) GetByID(ctx context.Context, id uuid.UUID) (*model.PostModel, error) {
	var m model.PostModel
	if err := s.table(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return nil, s.lookupErr(err)
	}
	return &m, nil
}

// GetBySlug; publicOnly menyembunyikan yang belum PUBLISHED.
func (s *PostService) GetBySlug(ctx context.Context, slug string, publicOnly bool) (*model.PostModel, error) {
	q := s.table(ctx).Where("slug = ?", strings.TrimSpace(slug))
	if publicOnly {
		q = q.Where("status = ?", model.StatusPublished)
	}
	var m model.PostModel
	if err := q.Take(&m).Error; err != nil {
		return nil, s.lookupErr(err)
	}
	return &m, nil
}

func (s *PostService) Create(ctx context.Context, actor *authHelper.Identity, req dto.CreatePostRequest, ip string) (*model.PostModel, error) {
	if actor == nil {
		return nil, helper.NewUnauthorized("")
	}
	req.Normalize()
	if req.Title == "" || req.Description == "" {
		return nil, helper.NewValidationError("Judul dan deskripsi wajib diisi")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}

	post := req.ToModel(actor.UserID, s.now())
	base := helper.Slugify(post.Title)

	var err error
	for attempt := 1; attempt <= slugWriteAttempts; attempt++ {
		if post.Slug, err = s.resolveSlug(ctx, base, uuid.Nil); err != nil {
			return nil, helper.NewInternal(err)
		}
		err = s.table(ctx).Create(post).Error
		if err == nil || !helper.IsUniqueViolation(err, s.Collection.SlugIndex()) {
			break
		}
		logger.Warn().Str("collection", string(s.Collection)).Str("slug", post.Slug).Int("attempt", attempt).Msg("slug bentrok saat insert")
	}
	if err != nil {
		if helper.IsUniqueViolation(err, "") {
			return nil, helper.NewConflict(fmt.Sprintf("Slug %q sudah digunakan", post.Slug), err)
		}
		return nil, helper.NewInternal(err)
	}

	s.record(actor, activityModel.ActionCreate, post, ip,
		fmt.Sprintf("Membuat %s %q (slug: %s)", strings.ToLower(s.Collection.Label()), post.Title, post.Slug))
	return post, nil
}

// Update; slug hanya dihitung ulang bila judul berubah.
func (s *PostService) Update(ctx context.Context, actor *authHelper.Identity, id uuid.UUID, req dto.UpdatePostRequest, ip string) (*model.PostModel, error) {
	if actor == nil {
		return nil, helper.NewUnauthorized("")
	}
	req.Normalize()
	if (req.Title != nil && *req.Title == "") || (req.Description != nil && *req.Description == "") {
		return nil, helper.NewValidationError("Judul dan deskripsi tidak boleh kosong")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}

	post, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldSlug := post.Slug
	titleChanged := req.Title != nil && *req.Title != post.Title
	req.Apply(post, s.now())

	for attempt := 1; attempt <= slugWriteAttempts; attempt++ {
		if titleChanged {
			if post.Slug, err = s.resolveSlug(ctx, helper.Slugify(post.Title), post.ID); err != nil {
				return nil, helper.NewInternal(err)
			}
		}
		err = s.save(ctx, post)
		if err == nil || !titleChanged || !helper.IsUniqueViolation(err, s.Collection.SlugIndex()) {
			break
		}
	}
	if err != nil {
		if helper.IsKind(err, helper.KindNotFound) {
			return nil, err
		}
		if helper.IsUniqueViolation(err, "") {
			return nil, helper.NewConflict(fmt.Sprintf("Slug %q sudah digunakan", post.Slug), err)
		}
		return nil, helper.NewInternal(err)
	}

	details := fmt.Sprintf("Memperbarui %s %q", strings.ToLower(s.Collection.Label()), post.Title)
	if post.Slug != oldSlug {
		details += fmt.Sprintf(" (slug: %s -> %s)", oldSlug, post.Slug)
	}
	s.record(actor, activityModel.ActionUpdate, post, ip, details)
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, actor *authHelper.Identity, id uuid.UUID, ip string) error {
	if actor == nil {
		return helper.NewUnauthorized("")
	}
	post, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	res := s.table(ctx).Where("id = ?", id).Delete(&model.PostModel{})
	if res.Error != nil {
		return helper.NewInternal(res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.NewNotFound(s.Collection.Label() + " tidak ditemukan")
	}
	s.record(actor, activityModel.ActionDelete, post, ip,
		fmt.Sprintf("Menghapus %s %q (slug: %s)", strings.ToLower(s.Collection.Label()), post.Title, post.Slug))
	return nil
}

func (s *PostService) resolveSlug(ctx context.Context, base string, exclude uuid.UUID) (string, error) {
	return helper.ResolveUniqueSlug(ctx, base, helper.SlugTakenInTable(s.DB, s.Collection.Table(), "slug", exclude))
}

func (s *PostService) save(ctx context.Context, m *model.PostModel) error {
	res := s.table(ctx).Where("id = ?", m.ID).Updates(map[string]any{
		"title":        m.Title,
		"slug":         m.Slug,
		"description":  m.Description,
		"body":         m.Body,
		"image_url":    m.ImageURL,
		"pdf_url":      m.PDFURL,
		"category":     m.Category,
		"status":       m.Status,
		"tags":         m.Tags,
		"published_at": m.PublishedAt,
		"updated_at":   m.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.NewNotFound(s.Collection.Label() + " tidak ditemukan")
	}
	return nil
}

func (s *PostService) lookupErr(err error) error {
	if err == gorm.ErrRecordNotFound {
		return helper.NewNotFound(s.Collection.Label() + " tidak ditemukan")
	}
	return helper.NewInternal(err)
}

func (s *PostService) record(actor *authHelper.Identity, action activityModel.Action, post *model.PostModel, ip, details string) {
	s.Audit.Record(activity.Entry{
		UserID:    actor.UserIDPtr(),
		Action:    action,
		Target:    s.Collection.Label(),
		Details:   details,
		IPAddress: ip,
		Metadata:  map[string]any{"id": post.ID.String(), "slug": post.Slug},
	})
}
