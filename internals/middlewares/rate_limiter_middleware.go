package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "stamet_backend/internals/helpers"
)

// ProxyConfig: X-Forwarded-For hanya dipercaya dari proxy di trusted.
// Tanpa daftar, c.IP() selalu alamat peer TCP sehingga limiter per IP
// tidak bisa diakali dengan header palsu.
func ProxyConfig(cfg fiber.Config, trusted []string) fiber.Config {
	cfg.EnableTrustedProxyCheck = true
	cfg.TrustedProxies = trusted
	cfg.EnableIPValidation = true
	cfg.ProxyHeader = ""
	if len(trusted) > 0 {
		cfg.ProxyHeader = fiber.HeaderXForwardedFor
	}
	return cfg
}

func ipLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter() fiber.Handler {
	return ipLimiter(100, time.Minute, "Terlalu banyak permintaan. Silakan coba lagi nanti.")
}

func LoginRateLimiter() fiber.Handler {
	return ipLimiter(5, time.Minute, "Terlalu banyak percobaan login. Coba beberapa saat lagi.")
}

func RegisterRateLimiter() fiber.Handler {
	return ipLimiter(3, 5*time.Minute, "Terlalu banyak percobaan pendaftaran. Tunggu beberapa menit.")
}

// Verifikasi & kirim ulang kode
func VerificationRateLimiter() fiber.Handler {
	return ipLimiter(5, 10*time.Minute, "Terlalu banyak permintaan verifikasi. Silakan coba lagi dalam 10 menit.")
}
