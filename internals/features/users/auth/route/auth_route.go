package route

import (
	"github.com/gofiber/fiber/v2"

	"stamet_backend/internals/features/users/auth/controller"
	"stamet_backend/internals/features/users/auth/service"
	"stamet_backend/internals/middlewares"
)

// AuthRoutes: /register, /verify-email, /resend-verification, /login publik;
// /logout, /me, /change-password butuh token (protected).
func AuthRoutes(router fiber.Router, svc *service.AuthService, protected fiber.Handler) {
	ctrl := controller.NewAuthController(svc)

	router.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	router.Post("/verify-email", middlewares.VerificationRateLimiter(), ctrl.VerifyEmail)
	router.Post("/resend-verification", middlewares.VerificationRateLimiter(), ctrl.ResendVerification)
	router.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)

	router.Post("/logout", ctrl.Logout)
	router.Get("/me", protected, ctrl.Me)
	router.Post("/change-password", protected, ctrl.ChangePassword)
}
