package database

import (
	"fmt"

	"gorm.io/gorm"

	logModel "stamet_backend/internals/features/activity/logs/model"
	postModel "stamet_backend/internals/features/content/posts/model"
	videoModel "stamet_backend/internals/features/content/videos/model"
	stationModel "stamet_backend/internals/features/ikm/stations/model"
	requestModel "stamet_backend/internals/features/pelayanan/requests/model"
	questionModel "stamet_backend/internals/features/skm/questions/model"
	responseModel "stamet_backend/internals/features/skm/responses/model"
	authModel "stamet_backend/internals/features/users/auth/model"
	userModel "stamet_backend/internals/features/users/user/model"
	verificationModel "stamet_backend/internals/features/users/verification/model"
	"stamet_backend/internals/helpers/logger"
)

// Migrate membuat/menyesuaikan skema. Urutan mengikuti foreign key.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		// gen_random_uuid() sudah bawaan di PG13+, jadi cukup warning
		logger.Warn().Err(err).Msg("extension pgcrypto")
	}

	models := []any{
		&userModel.UserModel{},
		&verificationModel.EmailVerificationModel{},
		&authModel.TokenBlacklist{},
		&logModel.ActivityLogModel{},
		&videoModel.VideoModel{},
		&stationModel.IkmStationModel{},
		&questionModel.SkmQuestionModel{},
		&requestModel.ServiceRequestModel{},
		&responseModel.SkmResponseModel{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("migrate %T: %w", m, err)
		}
	}

	// articles & news berbagi struct yang sama, beda tabel
	for _, col := range postModel.Collections {
		t := col.Table()
		if err := db.Table(t).AutoMigrate(&postModel.PostModel{}); err != nil {
			return fmt.Errorf("migrate %s: %w", t, err)
		}
		stmts := []string{
			fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (slug)`, col.SlugIndex(), t),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_status_published ON %s (status, published_at DESC)`, t, t),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_created_at ON %s (created_at DESC)`, t, t),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_category ON %s (category)`, t, t),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_tags_gin ON %s USING GIN (tags)`, t, t),
		}
		for _, q := range stmts {
			if err := db.Exec(q).Error; err != nil {
				return fmt.Errorf("index %s: %w", t, err)
			}
		}
	}

	extra := []string{
		`CREATE INDEX IF NOT EXISTS idx_service_requests_user_created ON service_requests (user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_service_requests_skm_completed ON service_requests (skm_completed_at) WHERE skm_completed_at IS NOT NULL`,
	}
	for _, q := range extra {
		if err := db.Exec(q).Error; err != nil {
			return fmt.Errorf("index: %w", err)
		}
	}

	logger.Info().Msg("migrasi selesai")
	return nil
}
