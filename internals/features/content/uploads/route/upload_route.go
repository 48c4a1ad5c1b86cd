package route

import (
	"github.com/gofiber/fiber/v2"

	activity "stamet_backend/internals/features/activity/logs/service"
	"stamet_backend/internals/features/content/uploads/controller"
	ossHelper "stamet_backend/internals/helpers/oss"
)

// Grup /api/a dengan ContentRoles.
func UploadRoutes(router fiber.Router, up *ossHelper.Uploader, audit activity.Recorder) {
	ctrl := controller.NewUploadController(up, audit)
	router.Post("/uploads", ctrl.Upload)
}
