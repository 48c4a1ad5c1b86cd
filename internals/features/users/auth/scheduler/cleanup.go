package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"stamet_backend/internals/features/users/auth/session"
	verification "stamet_backend/internals/features/users/verification/service"
	"stamet_backend/internals/helpers/logger"
)

const DefaultSchedule = "15 2 * * *"

// Task satu langkah pembersihan; mengembalikan jumlah baris terhapus.
type Task struct {
	Name string
	Run  func(ctx context.Context, db *gorm.DB, now time.Time) (int64, error)
}

var DefaultTasks = []Task{
	{Name: "token_blacklist", Run: session.PurgeBlacklist},
	{Name: "email_verifications", Run: verification.Purge},
}

// RunCleanup menjalankan semua task; kegagalan satu task tidak menghentikan yang lain.
func RunCleanup(ctx context.Context, db *gorm.DB, now time.Time, tasks []Task) {
	for _, t := range tasks {
		n, err := t.Run(ctx, db, now)
		if err != nil {
			logger.Error().Err(err).Str("task", t.Name).Msg("[CLEANUP] gagal")
			continue
		}
		logger.Info().Str("task", t.Name).Int64("deleted", n).Msg("[CLEANUP] selesai")
	}
}

// StartCleanupCron: panggil dari main.go; Stop() saat shutdown.
func StartCleanupCron(db *gorm.DB, schedule string) (*cron.Cron, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		RunCleanup(ctx, db, time.Now(), DefaultTasks)
	})
	if err != nil {
		return nil, err
	}
	logger.Info().Str("schedule", schedule).Msg("[CLEANUP] cron dimulai")
	c.Start()
	return c, nil
}
