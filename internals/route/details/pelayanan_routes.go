package details

import (
	"github.com/gofiber/fiber/v2"

	"stamet_backend/internals/constants"
	requestRoute "stamet_backend/internals/features/pelayanan/requests/route"
	questionRoute "stamet_backend/internals/features/skm/questions/route"
	responseRoute "stamet_backend/internals/features/skm/responses/route"
	authMiddleware "stamet_backend/internals/middlewares/auth"
)

func PelayananPublicRoutes(public fiber.Router, deps Deps) {
	questionRoute.SkmQuestionPublicRoutes(public, deps.DB)
}

// 👤 pemohon terverifikasi (kanal pelayanan)
func PelayananUserRoutes(user fiber.Router, deps Deps) {
	requestRoute.ServiceRequestUserRoutes(user, deps.DB, deps.Audit)
	responseRoute.SkmSubmitRoutes(user, deps.DB, deps.Audit)
}

// 🔐 ADMIN, PELAYANAN
func PelayananAdminRoutes(admin fiber.Router, deps Deps) {
	gate(admin,
		authMiddleware.OnlyRoles(constants.RoleErrorService("pelayanan"), constants.ServiceRoles),
		"/service-requests", "/skm-questions", "/skm-responses",
	)

	requestRoute.ServiceRequestAdminRoutes(admin, deps.DB, deps.Audit)
	questionRoute.SkmQuestionAdminRoutes(admin, deps.DB, deps.Audit)
	responseRoute.SkmResponseAdminRoutes(admin, deps.DB)
}
