package controller

import (
	"github.com/gofiber/fiber/v2"

	"stamet_backend/internals/features/users/user/dto"
	"stamet_backend/internals/features/users/user/service"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
)

type UserController struct {
	Svc *service.UserService
}

func NewUserController(svc *service.UserService) *UserController {
	return &UserController{Svc: svc}
}

// GET /api/a/users?q=&role=
func (ctrl *UserController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctrl.Svc.List(c.UserContext(), service.ListParams{
		Q:      c.Query("q"),
		Role:   c.Query("role"),
		Offset: p.Offset,
		Limit:  p.Limit,
	})
	if err != nil {
		return helper.FromError(c, helper.NewInternal(err))
	}
	data := dto.FromModels(rows)
	return helper.JsonList(c, "Daftar pengguna", data, helper.BuildPagination(total, p, data))
}

func (ctrl *UserController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	u, err := ctrl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Detail pengguna", dto.FromModel(*u))
}

func (ctrl *UserController) Create(c *fiber.Ctx) error {
	actor, _ := authHelper.FromCtx(c)
	var body dto.CreateUserRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.FromError(c, helper.NewValidationError("Body request tidak valid"))
	}
	u, err := ctrl.Svc.Create(c.UserContext(), actor, body, helper.ClientIP(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Pengguna berhasil dibuat", dto.FromModel(*u))
}

func (ctrl *UserController) Update(c *fiber.Ctx) error {
	actor, _ := authHelper.FromCtx(c)
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var body dto.UpdateUserRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.FromError(c, helper.NewValidationError("Body request tidak valid"))
	}
	u, err := ctrl.Svc.Update(c.UserContext(), actor, id, body, helper.ClientIP(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Pengguna berhasil diperbarui", dto.FromModel(*u))
}

// POST /api/a/users/:id/reset-password
func (ctrl *UserController) ResetPassword(c *fiber.Ctx) error {
	actor, _ := authHelper.FromCtx(c)
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var body dto.ResetPasswordRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.FromError(c, helper.NewValidationError("Body request tidak valid"))
	}
	if err := ctrl.Svc.ResetPassword(c.UserContext(), actor, id, body, helper.ClientIP(c)); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Password berhasil direset", fiber.Map{"id": id})
}

func (ctrl *UserController) Delete(c *fiber.Ctx) error {
	actor, _ := authHelper.FromCtx(c)
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := ctrl.Svc.Delete(c.UserContext(), actor, id, helper.ClientIP(c)); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Pengguna berhasil dihapus", fiber.Map{"id": id})
}
