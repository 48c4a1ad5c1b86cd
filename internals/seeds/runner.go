package seeds

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stamet_backend/internals/configs"
	"stamet_backend/internals/helpers/logger"
	skmQuestions "stamet_backend/internals/seeds/skm/questions"
	adminSeed "stamet_backend/internals/seeds/users/admin"
)

// RunAllSeeds idempoten; kegagalan dicatat tanpa menghentikan server.
func RunAllSeeds(db *gorm.DB) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	//* User
	if err := adminSeed.SeedAdmin(ctx, db,
		configs.GetEnv("SEED_ADMIN_EMAIL"),
		configs.GetEnv("SEED_ADMIN_PASSWORD"),
	); err != nil {
		logger.Error().Err(err).Msg("❌ seed admin")
	}

	//* SKM
	if err := skmQuestions.SeedDefaultQuestions(ctx, db); err != nil {
		logger.Error().Err(err).Msg("❌ seed pertanyaan SKM")
	}
}
