package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"stamet_backend/internals/configs"
	"stamet_backend/internals/constants"
	database "stamet_backend/internals/databases"
	activity "stamet_backend/internals/features/activity/logs/service"
	scheduler "stamet_backend/internals/features/users/auth/scheduler"
	authService "stamet_backend/internals/features/users/auth/service"
	"stamet_backend/internals/features/users/auth/session"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
	"stamet_backend/internals/helpers/email"
	"stamet_backend/internals/helpers/logger"
	ossHelper "stamet_backend/internals/helpers/oss"
	middlewares "stamet_backend/internals/middlewares"
	logMiddleware "stamet_backend/internals/middlewares/logger"
	routes "stamet_backend/internals/route"
	routeDetails "stamet_backend/internals/route/details"
	"stamet_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	// 🔌 DB connect + pool + migrasi
	if err := database.ConnectDB(); err != nil {
		logger.Fatal().Err(err).Msg("DB")
	}
	database.TunePool()
	if err := database.Migrate(database.DB); err != nil {
		logger.Fatal().Err(err).Msg("migrasi")
	}
	seeds.RunAllSeeds(database.DB)
	database.WarmUpQueries()

	// 📝 audit log async
	auditCfg := activity.DefaultConfig()
	auditCfg.BufferSize = configs.GetEnvInt("AUDIT_BUFFER_SIZE", auditCfg.BufferSize)
	audit := activity.NewLogger(activity.GormStore{DB: database.DB}, auditCfg)

	// 🔒 revocation: Redis bila ada, fallback tabel token_blacklist
	var revocations authHelper.Revocations = session.NewGormRevocations(database.DB, configs.JWTSecret)
	if configs.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := session.NewRedisClient(ctx, configs.RedisURL)
		cancel()
		if err != nil {
			logger.Warn().Err(err).Msg("Redis tidak tersedia, pakai token_blacklist di DB")
		} else {
			revocations = session.NewRedisRevocations(client, configs.JWTSecret)
			defer client.Close()
		}
	}

	// ✉️ SMTP
	mailer := email.NewService(email.Config{
		Host:     configs.GetEnv("SMTP_HOST"),
		Port:     configs.GetEnv("SMTP_PORT", "587"),
		Username: configs.GetEnv("SMTP_USERNAME"),
		Password: configs.GetEnv("SMTP_PASSWORD"),
		From:     configs.GetEnv("SMTP_FROM"),
		FromName: configs.GetEnv("SMTP_FROM_NAME", "Stasiun Meteorologi"),
		AppName:  configs.GetEnv("APP_NAME", "Stasiun Meteorologi"),
	})
	if !mailer.IsConfigured() {
		logger.Warn().Msg("SMTP belum lengkap, kode verifikasi hanya dicatat di log")
	}

	auth := authService.NewAuthService(database.DB, authService.Options{
		Mailer:      mailer,
		Revocations: revocations,
		Audit:       audit,
		Secret:      configs.JWTSecret,
		TTL:         configs.AccessTokenTTL,
	})

	// 📁 blob store: OSS bila env lengkap, selain itu disk lokal
	deps := routeDetails.Deps{
		DB:          database.DB,
		Audit:       audit,
		Auth:        auth,
		Revocations: revocations,
		Secret:      configs.JWTSecret,
	}
	if cfg := ossHelper.OSSConfigFromEnv(); cfg.Complete() {
		store, err := ossHelper.NewOSSStore(cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("OSS")
		}
		deps.Uploader = ossHelper.NewUploader(store, "stamet")
	} else {
		dir := configs.GetEnv("UPLOAD_DIR", "./uploads")
		store, err := ossHelper.NewLocalStore(dir, configs.GetEnv("UPLOAD_PUBLIC_BASE", configs.AppPublicURL+"/uploads"))
		if err != nil {
			logger.Fatal().Err(err).Msg("upload dir")
		}
		deps.Uploader = ossHelper.NewUploader(store, "")
		deps.UploadDir = dir
	}

	// ⏱ scheduler setelah DB siap
	cleanup, err := scheduler.StartCleanupCron(database.DB, configs.GetEnv("CLEANUP_CRON", scheduler.DefaultSchedule))
	if err != nil {
		logger.Fatal().Err(err).Msg("cron")
	}

	app := fiber.New(middlewares.ProxyConfig(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		BodyLimit:             int(constants.MaxUploadBytes) + 1<<20, // sisa untuk field multipart
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return helper.FromError(c, err)
		},
	}, configs.TrustedProxies))

	// ⚙️ middleware dasar + performa
	app.Use(middlewares.RecoveryMiddleware())
	app.Use(middlewares.RequestID(configs.GetEnvDuration("REQUEST_TIMEOUT", 15*time.Second)))
	app.Use(logMiddleware.LoggerMiddleware())
	app.Use(middlewares.CorsMiddleware(configs.CORSOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(middlewares.GlobalRateLimiter())

	// ✅ Routes
	routes.SetupRoutes(app, deps)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 60 * time.Second
	app.Server().WriteTimeout = 60 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	go func() {
		logger.Info().Str("port", port).Msg("✅ listening")
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown: server → cron → audit → pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	<-cleanup.Stop().Done()
	audit.Close()

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
