package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
)

// OnlyRoles meneruskan request hanya bila role pemanggil ada di allowedRoles.
// message dipakai untuk respon 403.
func OnlyRoles(message string, allowedRoles []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := authHelper.FromCtx(c)
		switch authHelper.Authorize(id, allowedRoles) {
		case authHelper.Allow:
			return c.Next()
		case authHelper.DenyUnauthenticated:
			return helper.FromError(c, helper.NewUnauthorized(""))
		default:
			return helper.FromError(c, helper.NewForbidden(message))
		}
	}
}

// RequireChannel menolak token yang diterbitkan lewat kanal login lain.
func RequireChannel(channel, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := authHelper.FromCtx(c)
		if !ok {
			return helper.FromError(c, helper.NewUnauthorized(""))
		}
		if id.Channel != channel {
			return helper.FromError(c, helper.NewForbidden(message))
		}
		return c.Next()
	}
}
