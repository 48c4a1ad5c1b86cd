package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activity "stamet_backend/internals/features/activity/logs/service"
	"stamet_backend/internals/features/users/user/controller"
	"stamet_backend/internals/features/users/user/service"
)

// Grup /api/a dengan AdminOnly.
func UserAdminRoutes(router fiber.Router, db *gorm.DB, audit activity.Recorder) {
	ctrl := controller.NewUserController(service.NewUserService(db, audit))

	g := router.Group("/users")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.Get)
	g.Post("/", ctrl.Create)
	g.Patch("/:id", ctrl.Update)
	g.Post("/:id/reset-password", ctrl.ResetPassword)
	g.Delete("/:id", ctrl.Delete)
}
