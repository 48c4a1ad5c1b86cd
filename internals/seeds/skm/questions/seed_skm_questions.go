package questions

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stamet_backend/internals/features/skm/questions/model"
	"stamet_backend/internals/helpers/logger"
)

//go:embed data_skm_questions.json
var defaultQuestions []byte

type questionSeed struct {
	Code     string `json:"code"`
	Category string `json:"category"`
	Question string `json:"question"`
}

// SeedDefaultQuestions mengisi sembilan unsur SKM (U1–U9). Kode yang sudah
// ada tidak disentuh, jadi aman dijalankan tiap start.
func SeedDefaultQuestions(ctx context.Context, db *gorm.DB) error {
	var seeds []questionSeed
	if err := json.Unmarshal(defaultQuestions, &seeds); err != nil {
		return fmt.Errorf("decode skm questions: %w", err)
	}

	now := time.Now()
	rows := make([]model.SkmQuestionModel, 0, len(seeds))
	for i, s := range seeds {
		rows = append(rows, model.SkmQuestionModel{
			Code:       s.Code,
			Question:   s.Question,
			Category:   s.Category,
			OrderIndex: i + 1,
			IsActive:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&rows)
	if res.Error != nil {
		return fmt.Errorf("insert skm questions: %w", res.Error)
	}
	logger.Info().Int64("inserted", res.RowsAffected).Msg("seed pertanyaan SKM")
	return nil
}
