package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"stamet_backend/internals/features/content/videos/model"
	"stamet_backend/internals/helpers/dbtime"
)

type VideoDTO struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	YoutubeID    string       `json:"youtube_id"`
	EmbedURL     string       `json:"embed_url"`
	ThumbnailURL string       `json:"thumbnail_url"`
	Description  string       `json:"description"`
	Status       model.Status `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func FromModel(m model.VideoModel) VideoDTO {
	return VideoDTO{
		ID:           m.ID,
		Title:        m.Title,
		YoutubeID:    m.YoutubeID,
		EmbedURL:     "https://www.youtube.com/embed/" + m.YoutubeID,
		ThumbnailURL: "https://i.ytimg.com/vi/" + m.YoutubeID + "/hqdefault.jpg",
		Description:  m.Description,
		Status:       m.Status,
		CreatedAt:    dbtime.ToLocal(m.CreatedAt),
		UpdatedAt:    dbtime.ToLocal(m.UpdatedAt),
	}
}

func FromModels(list []model.VideoModel) []VideoDTO {
	out := make([]VideoDTO, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}

// youtube_id boleh berupa id polos atau URL watch/shorts/embed/youtu.be.
type CreateVideoRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	YoutubeID   string `json:"youtube_id" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
}

func (r *CreateVideoRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.YoutubeID = strings.TrimSpace(r.YoutubeID)
	r.Description = strings.TrimSpace(r.Description)
	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
}

type UpdateVideoRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	YoutubeID   *string `json:"youtube_id"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
}

func (r *UpdateVideoRequest) Normalize() {
	for _, p := range []**string{&r.Title, &r.YoutubeID, &r.Description} {
		if *p != nil {
			v := strings.TrimSpace(**p)
			*p = &v
		}
	}
	if r.Status != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Status))
		r.Status = &v
	}
}
