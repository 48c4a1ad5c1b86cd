package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activity "stamet_backend/internals/features/activity/logs/service"
	"stamet_backend/internals/features/ikm/stations/controller"
	"stamet_backend/internals/features/ikm/stations/service"
)

func IkmStationPublicRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewIkmStationController(service.NewIkmStationService(db, nil))
	router.Get("/ikm-stations", ctrl.List)
}

// Grup pemanggil sudah dibatasi StationRoles; aturan per stasiun ada di service.
func IkmStationAdminRoutes(router fiber.Router, db *gorm.DB, audit activity.Recorder) {
	ctrl := controller.NewIkmStationController(service.NewIkmStationService(db, audit))

	g := router.Group("/ikm-stations")
	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Create)
	g.Put("/:id", ctrl.Update)
	g.Patch("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
