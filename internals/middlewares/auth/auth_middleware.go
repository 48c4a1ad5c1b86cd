package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
	"stamet_backend/internals/helpers/logger"
)

type Options struct {
	Secret      string
	Revocations authHelper.Revocations
	// Optional: request tanpa token tetap lanjut sebagai anonim.
	Optional bool
	Now      func() time.Time
	// Refresh: role & station diambil ulang dari DB supaya perubahan
	// oleh admin langsung berlaku tanpa menunggu token kedaluwarsa.
	Refresh authHelper.IdentityRefresher
}

// AuthMiddleware memverifikasi JWT dari header/cookie lalu menaruh
// *Identity di c.Locals(authHelper.LocIdentity).
func AuthMiddleware(opts Options) fiber.Handler {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return func(c *fiber.Ctx) error {
		raw := helper.GetRawAccessToken(c)
		if raw == "" {
			if opts.Optional {
				return c.Next()
			}
			return helper.FromError(c, helper.NewUnauthorized("Token tidak ditemukan"))
		}

		if opts.Secret == "" {
			logger.Error().Msg("JWT_SECRET kosong")
			return helper.FromError(c, helper.NewInternal(nil))
		}

		claims, err := authHelper.ParseAccessToken(opts.Secret, raw, now())
		if err != nil {
			logger.Debug().Err(err).Str("path", c.Path()).Msg("token ditolak")
			return helper.FromError(c, helper.NewUnauthorized("Sesi tidak valid atau sudah kedaluwarsa"))
		}

		if opts.Revocations != nil {
			revoked, err := opts.Revocations.IsRevoked(c.UserContext(), raw)
			if err != nil {
				return helper.FromError(c, helper.NewInternal(err))
			}
			if revoked {
				return helper.FromError(c, helper.NewUnauthorized("Sesi sudah keluar. Silakan login lagi."))
			}
		}

		id, err := claims.Identity()
		if err != nil {
			return helper.FromError(c, helper.NewUnauthorized("Sesi tidak valid"))
		}

		if opts.Refresh != nil {
			fresh, err := opts.Refresh(c.UserContext(), id)
			if errors.Is(err, authHelper.ErrIdentityGone) {
				return helper.FromError(c, helper.NewUnauthorized("Akun sudah tidak aktif"))
			}
			if err != nil {
				return helper.FromError(c, helper.NewInternal(err))
			}
			id = fresh
		}

		c.Locals(authHelper.LocIdentity, id)
		c.Locals(helper.LocRawToken, raw)
		return c.Next()
	}
}
