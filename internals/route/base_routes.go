package routes

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	database "stamet_backend/internals/databases"
	routeDetails "stamet_backend/internals/route/details"
)

func BaseRoutes(app *fiber.App, deps routeDetails.Deps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Stamet backend running 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if deps.DB == nil || database.Ping(ctx, deps.DB) != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    os.Getenv("RAILWAY_ENVIRONMENT"),
		})
	})

	// 📁 berkas upload (hanya saat blob store = disk lokal)
	if deps.UploadDir != "" {
		app.Static("/uploads", deps.UploadDir, fiber.Static{
			ByteRange: true,
			MaxAge:    86400,
		})
	}
}
