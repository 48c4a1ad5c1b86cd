package middlewares

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"stamet_backend/internals/helpers/logger"
)

// RecoveryMiddleware menangkap panic; stack trace ke log, klien dapat 500.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			logger.Error().
				Interface("panic", e).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
		},
	})
}
