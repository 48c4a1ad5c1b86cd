package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"stamet_backend/internals/features/content/posts/model"
	"stamet_backend/internals/helpers/dbtime"
)

// ============================
// Response DTO
// ============================

type PostDTO struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	Body        string       `json:"body"`
	ImageURL    *string      `json:"image_url,omitempty"`
	PDFURL      *string      `json:"pdf_url,omitempty"`
	Category    string       `json:"category"`
	Status      model.Status `json:"status"`
	Tags        []string     `json:"tags"`
	AuthorID    uuid.UUID    `json:"author_id"`
	AuthorName  string       `json:"author_name,omitempty"`
	PublishedAt *time.Time   `json:"published_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func FromModel(m model.PostModel) PostDTO {
	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}
	return PostDTO{
		ID:          m.ID,
		Title:       m.Title,
		Slug:        m.Slug,
		Description: m.Description,
		Body:        m.Body,
		ImageURL:    m.ImageURL,
		PDFURL:      m.PDFURL,
		Category:    m.Category,
		Status:      m.Status,
		Tags:        tags,
		AuthorID:    m.AuthorID,
		PublishedAt: dbtime.ToLocalPtr(m.PublishedAt),
		CreatedAt:   dbtime.ToLocal(m.CreatedAt),
		UpdatedAt:   dbtime.ToLocal(m.UpdatedAt),
	}
}

func FromModels(list []model.PostModel) []PostDTO {
	out := make([]PostDTO, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}

// ============================
// Create & Update Request DTO
// ============================

type CreatePostRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Description string   `json:"description" validate:"required"`
	Body        string   `json:"body"`
	ImageURL    *string  `json:"image_url"`
	PDFURL      *string  `json:"pdf_url"`
	Category    string   `json:"category" validate:"omitempty,max=50"`
	Status      string   `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	Tags        []string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
}

func (r *CreatePostRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.ToUpper(strings.TrimSpace(r.Category))
	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
	r.ImageURL = trimPtr(r.ImageURL)
	r.PDFURL = trimPtr(r.PDFURL)
	r.Tags = cleanTags(r.Tags)
}

// ToModel mengisi default kategori UMUM dan status DRAFT.
func (r CreatePostRequest) ToModel(authorID uuid.UUID, now time.Time) *model.PostModel {
	m := &model.PostModel{
		ID:          uuid.New(),
		Title:       r.Title,
		Description: r.Description,
		Body:        r.Body,
		ImageURL:    nilIfEmpty(r.ImageURL),
		PDFURL:      nilIfEmpty(r.PDFURL),
		Category:    r.Category,
		Status:      model.Status(r.Status),
		Tags:        r.Tags,
		AuthorID:    authorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if m.Category == "" {
		m.Category = model.DefaultCategory
	}
	if m.Status == "" {
		m.Status = model.StatusDraft
	}
	if m.Status == model.StatusPublished {
		m.PublishedAt = &now
	}
	return m
}

// UpdatePostRequest: field nil = tidak diubah.
type UpdatePostRequest struct {
	Title       *string   `json:"title" validate:"omitempty,max=255"`
	Description *string   `json:"description"`
	Body        *string   `json:"body"`
	ImageURL    *string   `json:"image_url"`
	PDFURL      *string   `json:"pdf_url"`
	Category    *string   `json:"category" validate:"omitempty,max=50"`
	Status      *string   `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	Tags        *[]string `json:"tags"`
}

func (r *UpdatePostRequest) Normalize() {
	r.Title = trimPtr(r.Title)
	r.Description = trimPtr(r.Description)
	if r.Category != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Category))
		r.Category = &v
	}
	if r.Status != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Status))
		r.Status = &v
	}
	if r.Tags != nil {
		v := cleanTags(*r.Tags)
		r.Tags = &v
	}
}

// Apply menyalin field yang dikirim ke m. image_url/pdf_url "" berarti dikosongkan.
func (r UpdatePostRequest) Apply(m *model.PostModel, now time.Time) {
	if r.Title != nil {
		m.Title = *r.Title
	}
	if r.Description != nil {
		m.Description = *r.Description
	}
	if r.Body != nil {
		m.Body = *r.Body
	}
	if r.ImageURL != nil {
		m.ImageURL = emptyToNil(*r.ImageURL)
	}
	if r.PDFURL != nil {
		m.PDFURL = emptyToNil(*r.PDFURL)
	}
	if r.Category != nil {
		m.Category = *r.Category
		if m.Category == "" {
			m.Category = model.DefaultCategory
		}
	}
	if r.Status != nil && *r.Status != "" {
		m.Status = model.Status(*r.Status)
		if m.Status == model.StatusPublished && m.PublishedAt == nil {
			m.PublishedAt = &now
		}
	}
	if r.Tags != nil {
		m.Tags = *r.Tags
	}
	m.UpdatedAt = now
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

func nilIfEmpty(p *string) *string {
	if p == nil {
		return nil
	}
	return emptyToNil(*p)
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func cleanTags(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
