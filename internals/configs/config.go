package configs

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"

	"stamet_backend/internals/helpers/logger"
)

var (
	JWTSecret      string
	AccessTokenTTL time.Duration
	AppPublicURL   string
	RedisURL       string
	CORSOrigins    string
	// CIDR/IP proxy yang boleh mengisi X-Forwarded-For; kosong = tidak ada.
	TrustedProxies []string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			logger.Info().Msg("tidak menemukan .env, pakai ENV dari sistem")
		} else {
			logger.Info().Msg(".env dimuat")
		}
	}

	logger.Init(logger.Config{
		Level:  GetEnv("LOG_LEVEL", "info"),
		Format: GetEnv("LOG_FORMAT", "json"),
	})

	JWTSecret = GetEnv("JWT_SECRET")
	AccessTokenTTL = GetEnvDuration("ACCESS_TOKEN_TTL", 24*time.Hour)
	AppPublicURL = strings.TrimRight(GetEnv("APP_PUBLIC_URL", "http://localhost:3000"), "/")
	RedisURL = GetEnv("REDIS_URL")
	CORSOrigins = GetEnv("CORS_ORIGINS", "http://localhost:3000")
	TrustedProxies = GetEnvList("TRUSTED_PROXIES")

	if JWTSecret == "" {
		logger.Warn().Msg("JWT_SECRET belum diset")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || strings.TrimSpace(value) == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return strings.TrimSpace(value)
}

// GetEnvList memecah nilai dipisah koma; item kosong dibuang.
func GetEnvList(key string) []string {
	var out []string
	for _, v := range strings.Split(GetEnv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func GetEnvInt(key string, def int) int {
	if n, err := strconv.Atoi(GetEnv(key)); err == nil {
		return n
	}
	return def
}

// GetEnvDuration menerima "90m", "24h", atau angka detik.
func GetEnvDuration(key string, def time.Duration) time.Duration {
	v := GetEnv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

// =======================
// GORM LOGGER (zerolog)
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	switch strings.ToLower(GetEnv("GORM_LOG_LEVEL")) {
	case "silent":
		level = gormLogger.Silent
	case "error":
		level = gormLogger.Error
	case "info":
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		logger.Info().Msgf(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		logger.Warn().Msgf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		logger.Error().Msgf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.LogLevel >= gormLogger.Error:
		logger.Error().Err(err).Str("file", file).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("sql error")
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		logger.Warn().Str("file", file).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("slow sql")
	case l.LogLevel >= gormLogger.Info:
		logger.Debug().Str("file", file).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("sql")
	}
}
