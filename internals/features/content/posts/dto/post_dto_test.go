package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"stamet_backend/internals/features/content/posts/model"
)

func strPtr(s string) *string { return &s }

func TestCreatePostRequestDefaults(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	author := uuid.New()

	req := CreatePostRequest{
		Title:       "  Prakiraan Cuaca  ",
		Description: " Cerah berawan ",
		ImageURL:    strPtr("   "),
		Tags:        []string{" Cuaca ", "cuaca", "", "HUJAN"},
	}
	req.Normalize()
	m := req.ToModel(author, now)

	if m.Title != "Prakiraan Cuaca" || m.Description != "Cerah berawan" {
		t.Fatalf("fields not trimmed: %q %q", m.Title, m.Description)
	}
	if m.Category != model.DefaultCategory {
		t.Fatalf("category = %q, want %q", m.Category, model.DefaultCategory)
	}
	if m.Status != model.StatusDraft {
		t.Fatalf("status = %q, want DRAFT", m.Status)
	}
	if m.PublishedAt != nil {
		t.Fatalf("draft must not carry published_at")
	}
	if m.ImageURL != nil {
		t.Fatalf("blank image_url should become nil, got %q", *m.ImageURL)
	}
	if m.AuthorID != author || m.ID == uuid.Nil {
		t.Fatalf("ids not set: %+v", m)
	}
	if got := []string(m.Tags); len(got) != 2 || got[0] != "cuaca" || got[1] != "hujan" {
		t.Fatalf("tags = %v", got)
	}
}

func TestCreatePostRequestPublishedSetsPublishedAt(t *testing.T) {
	now := time.Now()
	req := CreatePostRequest{Title: "a", Description: "b", Status: "published", Category: "iklim"}
	req.Normalize()
	m := req.ToModel(uuid.New(), now)

	if m.Status != model.StatusPublished || m.PublishedAt == nil || !m.PublishedAt.Equal(now) {
		t.Fatalf("unexpected publish state: %+v", m)
	}
	if m.Category != "IKLIM" {
		t.Fatalf("category = %q", m.Category)
	}
}

func TestUpdatePostRequestApply(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)
	m := &model.PostModel{
		Title:    "Lama",
		Category: "UMUM",
		Status:   model.StatusDraft,
		ImageURL: strPtr("https://cdn/x.webp"),
	}

	req := UpdatePostRequest{
		Title:    strPtr(" Baru "),
		ImageURL: strPtr(""),
		Status:   strPtr("published"),
		Category: strPtr(""),
	}
	req.Normalize()
	req.Apply(m, now)

	if m.Title != "Baru" {
		t.Fatalf("title = %q", m.Title)
	}
	if m.ImageURL != nil {
		t.Fatalf("empty image_url should clear the column")
	}
	if m.Category != model.DefaultCategory {
		t.Fatalf("empty category should reset to default, got %q", m.Category)
	}
	if m.Status != model.StatusPublished || m.PublishedAt == nil || !m.PublishedAt.Equal(now) {
		t.Fatalf("publish not applied: %+v", m)
	}
	if !m.UpdatedAt.Equal(now) {
		t.Fatalf("updated_at = %v", m.UpdatedAt)
	}

	// publish ulang tidak menggeser published_at
	later := now.Add(time.Hour)
	UpdatePostRequest{Status: strPtr("PUBLISHED")}.Apply(m, later)
	if !m.PublishedAt.Equal(now) {
		t.Fatalf("published_at moved to %v", m.PublishedAt)
	}
}

func TestFromModelNeverReturnsNilTags(t *testing.T) {
	d := FromModel(model.PostModel{})
	if d.Tags == nil {
		t.Fatal("tags should serialise as []")
	}
}
