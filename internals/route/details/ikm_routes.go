package details

import (
	"github.com/gofiber/fiber/v2"

	"stamet_backend/internals/constants"
	stationRoute "stamet_backend/internals/features/ikm/stations/route"
	authMiddleware "stamet_backend/internals/middlewares/auth"
)

func IkmPublicRoutes(public fiber.Router, deps Deps) {
	stationRoute.IkmStationPublicRoutes(public, deps.DB)
}

// 🔐 ADMIN, DATIN (DATIN dibatasi ke stasiunnya sendiri di service)
func IkmAdminRoutes(admin fiber.Router, deps Deps) {
	gate(admin,
		authMiddleware.OnlyRoles(constants.RoleErrorDatin("stasiun IKM"), constants.StationRoles),
		"/ikm-stations",
	)
	stationRoute.IkmStationAdminRoutes(admin, deps.DB, deps.Audit)
}
