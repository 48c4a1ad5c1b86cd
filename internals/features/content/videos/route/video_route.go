package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activity "stamet_backend/internals/features/activity/logs/service"
	"stamet_backend/internals/features/content/videos/controller"
	"stamet_backend/internals/features/content/videos/service"
)

func VideoPublicRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewVideoController(service.NewVideoService(db, nil))
	router.Get("/videos", ctrl.ListPublic)
}

func VideoAdminRoutes(router fiber.Router, db *gorm.DB, audit activity.Recorder) {
	ctrl := controller.NewVideoController(service.NewVideoService(db, audit))

	v := router.Group("/videos")
	v.Get("/", ctrl.ListAdmin)
	v.Get("/:id", ctrl.GetByID)
	v.Post("/", ctrl.Create)
	v.Put("/:id", ctrl.Update)
	v.Patch("/:id", ctrl.Update)
	v.Delete("/:id", ctrl.Delete)
}
