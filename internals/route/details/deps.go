package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activity "stamet_backend/internals/features/activity/logs/service"
	authService "stamet_backend/internals/features/users/auth/service"
	userService "stamet_backend/internals/features/users/user/service"
	authHelper "stamet_backend/internals/helpers/auth"
	ossHelper "stamet_backend/internals/helpers/oss"
	authMiddleware "stamet_backend/internals/middlewares/auth"
)

// Deps: semua dependency yang dibutuhkan saat mount route.
type Deps struct {
	DB          *gorm.DB
	Audit       activity.Recorder
	Auth        *authService.AuthService
	Uploader    *ossHelper.Uploader
	Revocations authHelper.Revocations
	Secret      string
	// UploadDir diisi bila blob store = disk lokal; disajikan di /uploads.
	UploadDir string
}

// Protected: JWT wajib (header Bearer atau cookie access_token).
// Role & stasiun dibaca ulang dari DB tiap request.
func (d Deps) Protected() fiber.Handler {
	opts := authMiddleware.Options{
		Secret:      d.Secret,
		Revocations: d.Revocations,
	}
	if d.DB != nil {
		opts.Refresh = userService.IdentityRefresher(d.DB)
	}
	return authMiddleware.AuthMiddleware(opts)
}

// gate memasang handler role untuk beberapa prefix sekaligus.
// Group("", mw) di Fiber berlaku ke seluruh prefix induk, makanya pakai Use per prefix.
func gate(r fiber.Router, h fiber.Handler, prefixes ...string) {
	for _, p := range prefixes {
		r.Use(p, h)
	}
}
