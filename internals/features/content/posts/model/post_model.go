package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Collection: artikel dan berita memakai skema yang sama di tabel terpisah.
type Collection string

const (
	CollectionArticles Collection = "articles"
	CollectionNews     Collection = "news"
)

var Collections = []Collection{CollectionArticles, CollectionNews}

func (c Collection) Table() string { return string(c) }

// SlugIndex nama unique index slug per tabel.
func (c Collection) SlugIndex() string { return "uq_" + string(c) + "_slug" }

func (c Collection) Label() string {
	if c == CollectionNews {
		return "Berita"
	}
	return "Artikel"
}

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusArchived  Status = "ARCHIVED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

const DefaultCategory = "UMUM"

// PostModel tidak punya tag index: index dibuat per tabel saat migrasi.
type PostModel struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string         `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Slug        string         `gorm:"column:slug;type:text;not null" json:"slug"`
	Description string         `gorm:"column:description;type:text;not null" json:"description"`
	Body        string         `gorm:"column:body;type:text" json:"body"`
	ImageURL    *string        `gorm:"column:image_url;type:text" json:"image_url,omitempty"`
	PDFURL      *string        `gorm:"column:pdf_url;type:text" json:"pdf_url,omitempty"`
	Category    string         `gorm:"column:category;type:varchar(50);not null;default:'UMUM'" json:"category"`
	Status      Status         `gorm:"column:status;type:varchar(16);not null;default:'DRAFT'" json:"status"`
	Tags        pq.StringArray `gorm:"column:tags;type:text[]" json:"tags"`
	AuthorID    uuid.UUID      `gorm:"column:author_id;type:uuid;not null" json:"author_id"`
	PublishedAt *time.Time     `gorm:"column:published_at" json:"published_at,omitempty"`
	CreatedAt   time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (PostModel) TableName() string {
	return "articles"
}
