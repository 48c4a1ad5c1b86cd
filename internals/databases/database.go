package database

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"stamet_backend/internals/configs"
	"stamet_backend/internals/helpers/logger"
)

var DB *gorm.DB

// DSN dari DATABASE_URL, atau dirakit dari DB_* (statement_timeout 3 detik).
func DSN() string {
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		return v
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=stamet&options=%s",
		url.QueryEscape(configs.GetEnv("DB_USER", "postgres")),
		url.QueryEscape(configs.GetEnv("DB_PASSWORD")),
		configs.GetEnv("DB_HOST", "localhost"),
		configs.GetEnv("DB_PORT", "5432"),
		configs.GetEnv("DB_NAME", "stamet"),
		configs.GetEnv("DB_SSLMODE", "disable"),
		url.QueryEscape("-c statement_timeout="+configs.GetEnv("DB_STATEMENT_TIMEOUT_MS", "3000")),
	)
}

// Open membuka koneksi GORM dengan logger zerolog.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
}

func ConnectDB() error {
	logger.Info().Msg("koneksi ke PostgreSQL...")
	db, err := Open(DSN())
	if err != nil {
		return fmt.Errorf("konek DB: %w", err)
	}
	DB = db
	logger.Info().Msg("DB connected")
	return nil
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		logger.Warn().Err(err).Msg("pool tune")
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := Ping(ctx, DB); err != nil {
			logger.Warn().Err(err).Msg("warm-up ping")
		}
	}()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
