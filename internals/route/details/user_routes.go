package details

import (
	"github.com/gofiber/fiber/v2"

	"stamet_backend/internals/constants"
	logRoute "stamet_backend/internals/features/activity/logs/route"
	userRoute "stamet_backend/internals/features/users/user/route"
	authMiddleware "stamet_backend/internals/middlewares/auth"
)

// 🔐 ADMIN saja
func UserAdminRoutes(admin fiber.Router, deps Deps) {
	gate(admin,
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("pengguna"), constants.AdminOnly),
		"/users", "/activity-logs",
	)

	userRoute.UserAdminRoutes(admin, deps.DB, deps.Audit)
	logRoute.ActivityLogAdminRoutes(admin, deps.DB)
}
