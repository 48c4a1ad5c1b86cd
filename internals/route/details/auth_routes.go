package details

import (
	"github.com/gofiber/fiber/v2"

	authRoute "stamet_backend/internals/features/users/auth/route"
)

func AuthRoutes(app *fiber.App, deps Deps) {
	api := app.Group("/api/auth")
	authRoute.AuthRoutes(api, deps.Auth, deps.Protected())
}
