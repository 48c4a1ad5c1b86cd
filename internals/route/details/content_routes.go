package details

import (
	"github.com/gofiber/fiber/v2"

	"stamet_backend/internals/constants"
	postRoute "stamet_backend/internals/features/content/posts/route"
	uploadRoute "stamet_backend/internals/features/content/uploads/route"
	videoRoute "stamet_backend/internals/features/content/videos/route"
	authMiddleware "stamet_backend/internals/middlewares/auth"
)

func ContentPublicRoutes(public fiber.Router, deps Deps) {
	postRoute.PostPublicRoutes(public, deps.DB)
	videoRoute.VideoPublicRoutes(public, deps.DB)
}

// 🔐 ADMIN, CONTENT, CONTENT_ADMIN
func ContentAdminRoutes(admin fiber.Router, deps Deps) {
	gate(admin,
		authMiddleware.OnlyRoles(constants.RoleErrorContent("konten"), constants.ContentRoles),
		"/articles", "/news", "/videos", "/uploads",
	)

	postRoute.PostAdminRoutes(admin, deps.DB, deps.Audit)
	videoRoute.VideoAdminRoutes(admin, deps.DB, deps.Audit)
	if deps.Uploader != nil {
		uploadRoute.UploadRoutes(admin, deps.Uploader, deps.Audit)
	}
}
