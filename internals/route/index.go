package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"stamet_backend/internals/constants"
	"stamet_backend/internals/helpers/logger"
	authMiddleware "stamet_backend/internals/middlewares/auth"
	routeDetails "stamet_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, deps routeDetails.Deps) {
	startTime = time.Now()

	BaseRoutes(app, deps)

	// ===================== AUTH =====================
	// Wajib sebelum grup /api/a: middleware grup dicocokkan per prefix string,
	// jadi "/api/a" juga cocok dengan "/api/auth/...".
	logger.Info().Msg("setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, deps)

	// ===================== GROUPS =====================

	// PUBLIC → tanpa login
	public := app.Group("/api/public")

	// USER → pemohon (kanal pelayanan)
	user := app.Group("/api/u",
		deps.Protected(),
		authMiddleware.RequireChannel(constants.ChannelPelayanan, "Silakan login lewat portal pelayanan."),
		authMiddleware.OnlyRoles(constants.RoleErrorApplicant("pelayanan"), constants.ApplicantOnly),
	)

	// ADMIN → staf (kanal internal); role per fitur dipasang di details
	admin := app.Group("/api/a",
		deps.Protected(),
		authMiddleware.RequireChannel(constants.ChannelInternal, "Silakan login lewat halaman internal."),
		authMiddleware.OnlyRoles("Akun ini tidak punya akses backoffice.", constants.StaffRoles),
	)

	// ===================== MOUNT ROUTES =====================

	logger.Info().Msg("mounting Content routes...")
	routeDetails.ContentPublicRoutes(public, deps)
	routeDetails.ContentAdminRoutes(admin, deps)

	logger.Info().Msg("mounting IKM routes...")
	routeDetails.IkmPublicRoutes(public, deps)
	routeDetails.IkmAdminRoutes(admin, deps)

	logger.Info().Msg("mounting Pelayanan routes...")
	routeDetails.PelayananPublicRoutes(public, deps)
	routeDetails.PelayananUserRoutes(user, deps)
	routeDetails.PelayananAdminRoutes(admin, deps)

	logger.Info().Msg("mounting User routes...")
	routeDetails.UserAdminRoutes(admin, deps)
}
