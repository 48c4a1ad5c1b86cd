package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activity "stamet_backend/internals/features/activity/logs/service"
	"stamet_backend/internals/features/pelayanan/requests/controller"
	"stamet_backend/internals/features/pelayanan/requests/service"
)

// Grup /api/u: pemohon kanal pelayanan.
func ServiceRequestUserRoutes(router fiber.Router, db *gorm.DB, audit activity.Recorder) {
	ctrl := controller.NewServiceRequestController(service.NewServiceRequestService(db, audit))

	g := router.Group("/service-requests")
	g.Get("/", ctrl.ListMine)
	g.Post("/", ctrl.Create)
	g.Get("/:id", ctrl.GetMine)
}

// Grup /api/a dengan ServiceRoles.
func ServiceRequestAdminRoutes(router fiber.Router, db *gorm.DB, audit activity.Recorder) {
	ctrl := controller.NewServiceRequestController(service.NewServiceRequestService(db, audit))

	g := router.Group("/service-requests")
	g.Get("/", ctrl.ListAll)
	g.Get("/:id", ctrl.GetAny)
	g.Patch("/:id/status", ctrl.UpdateStatus)
}
