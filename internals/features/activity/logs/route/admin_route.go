package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"stamet_backend/internals/features/activity/logs/controller"
	"stamet_backend/internals/features/activity/logs/service"
)

// Dipasang di bawah grup /api/a yang sudah dijaga role ADMIN.
func ActivityLogAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewActivityLogController(service.NewQueryService(db))

	logs := router.Group("/activity-logs")
	logs.Get("/", ctrl.List)
}
