package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activity "stamet_backend/internals/features/activity/logs/service"
	"stamet_backend/internals/features/skm/responses/controller"
	"stamet_backend/internals/features/skm/responses/service"
)

// Grup /api/u (pemohon).
func SkmSubmitRoutes(router fiber.Router, db *gorm.DB, audit activity.Recorder) {
	ctrl := controller.NewSkmResponseController(service.NewSkmResponseService(db, audit))
	router.Post("/service-requests/:id/skm", ctrl.Submit)
}

func SkmResponseAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSkmResponseController(service.NewSkmResponseService(db, nil))

	g := router.Group("/skm-responses")
	g.Get("/", ctrl.List)
	g.Get("/export", ctrl.Export)
}
