package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activity "stamet_backend/internals/features/activity/logs/service"
	"stamet_backend/internals/features/skm/questions/controller"
	"stamet_backend/internals/features/skm/questions/service"
)

func SkmQuestionPublicRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSkmQuestionController(service.NewSkmQuestionService(db, nil))
	router.Get("/skm-questions", ctrl.ListActive)
}

func SkmQuestionAdminRoutes(router fiber.Router, db *gorm.DB, audit activity.Recorder) {
	ctrl := controller.NewSkmQuestionController(service.NewSkmQuestionService(db, audit))

	g := router.Group("/skm-questions")
	g.Get("/", ctrl.ListAll)
	g.Post("/", ctrl.Create)
	g.Put("/:id", ctrl.Update)
	g.Patch("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
