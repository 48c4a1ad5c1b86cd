package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Simpan raw JWT di Locals dari middleware supaya logout tidak parse ulang.
const LocRawToken = "raw_token"

// GetRawAccessToken: Authorization Bearer lebih dulu, lalu cookie access_token,
// lalu Locals yang diisi middleware.
func GetRawAccessToken(c *fiber.Ctx) string {
	const p = "bearer "
	if h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); len(h) > len(p) && strings.EqualFold(h[:len(p)], p) {
		return strings.TrimSpace(h[len(p):])
	}
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v
	}
	if v, ok := c.Locals(LocRawToken).(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// ClientIP mengikuti ProxyHeader di fiber.Config.
func ClientIP(c *fiber.Ctx) string {
	return strings.TrimSpace(c.IP())
}
