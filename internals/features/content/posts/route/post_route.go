package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activity "stamet_backend/internals/features/activity/logs/service"
	"stamet_backend/internals/features/content/posts/controller"
	"stamet_backend/internals/features/content/posts/model"
	"stamet_backend/internals/features/content/posts/service"
)

// PostPublicRoutes: GET /articles, /articles/:slug, /news, /news/:slug
func PostPublicRoutes(router fiber.Router, db *gorm.DB) {
	for _, col := range model.Collections {
		ctrl := controller.NewPostController(service.NewPostService(db, nil, col))

		g := router.Group("/" + col.Table())
		g.Get("/", ctrl.ListPublic)
		g.Get("/:slug", ctrl.GetBySlug)
	}
}

// PostAdminRoutes dipasang di grup yang sudah dijaga ContentRoles.
func PostAdminRoutes(router fiber.Router, db *gorm.DB, audit activity.Recorder) {
	for _, col := range model.Collections {
		ctrl := controller.NewPostController(service.NewPostService(db, audit, col))

		g := router.Group("/" + col.Table())
		g.Get("/", ctrl.ListAdmin)    // 📄 semua status
		g.Get("/:id", ctrl.GetByID)   // 🔍 detail by id
		g.Post("/", ctrl.Create)      // ➕ buat
		g.Put("/:id", ctrl.Update)    // 🔄 ubah
		g.Patch("/:id", ctrl.Update)  // 🔄 ubah sebagian
		g.Delete("/:id", ctrl.Delete) // 🗑️ hapus
	}
}
