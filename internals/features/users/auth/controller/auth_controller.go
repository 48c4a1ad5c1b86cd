package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"stamet_backend/internals/features/users/auth/dto"
	"stamet_backend/internals/features/users/auth/service"
	userDTO "stamet_backend/internals/features/users/user/dto"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
)

const accessCookie = "access_token"

type AuthController struct {
	Svc *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Svc: svc}
}

// POST /api/auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var body dto.RegisterRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.FromError(c, helper.NewValidationError("Body request tidak valid"))
	}
	u, err := ac.Svc.Register(c.UserContext(), body, helper.ClientIP(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Registrasi berhasil. Kode verifikasi sudah dikirim ke email Anda.", userDTO.FromModel(*u))
}

// POST /api/auth/verify-email
func (ac *AuthController) VerifyEmail(c *fiber.Ctx) error {
	var body dto.VerifyEmailRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.FromError(c, helper.NewValidationError("Body request tidak valid"))
	}
	u, err := ac.Svc.VerifyEmail(c.UserContext(), body, helper.ClientIP(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Email berhasil diverifikasi. Silakan login.", userDTO.FromModel(*u))
}

// POST /api/auth/resend-verification
func (ac *AuthController) ResendVerification(c *fiber.Ctx) error {
	var body dto.ResendVerificationRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.FromError(c, helper.NewValidationError("Body request tidak valid"))
	}
	if err := ac.Svc.ResendVerification(c.UserContext(), body); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Kode verifikasi baru sudah dikirim", nil)
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var body dto.LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.FromError(c, helper.NewValidationError("Body request tidak valid"))
	}
	res, err := ac.Svc.Login(c.UserContext(), body, helper.ClientIP(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     accessCookie,
		Value:    res.AccessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  res.ExpiresAt,
	})
	return helper.JsonOK(c, "Login berhasil", res)
}

// POST /api/auth/logout (idempoten)
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Svc.Logout(c.UserContext(), helper.GetRawAccessToken(c)); err != nil {
		return helper.FromError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     accessCookie,
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
	})
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	actor, _ := authHelper.FromCtx(c)
	u, err := ac.Svc.Me(c.UserContext(), actor)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Profil pengguna", fiber.Map{
		"user":    userDTO.FromModel(*u),
		"channel": actor.Channel,
	})
}

// POST /api/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	actor, _ := authHelper.FromCtx(c)
	var body dto.ChangePasswordRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.FromError(c, helper.NewValidationError("Body request tidak valid"))
	}
	if err := ac.Svc.ChangePassword(c.UserContext(), actor, body, helper.ClientIP(c)); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Password berhasil diganti", nil)
}
