package controller

import (
	"github.com/gofiber/fiber/v2"

	"stamet_backend/internals/features/skm/questions/dto"
	"stamet_backend/internals/features/skm/questions/service"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
)

type SkmQuestionController struct {
	Svc *service.SkmQuestionService
}

func NewSkmQuestionController(svc *service.SkmQuestionService) *SkmQuestionController {
	return &SkmQuestionController{Svc: svc}
}

// GET /api/public/skm-questions (hanya aktif)
func (ctrl *SkmQuestionController) ListActive(c *fiber.Ctx) error {
	rows, err := ctrl.Svc.List(c.UserContext(), true)
	if err != nil {
		return helper.FromError(c, helper.NewInternal(err))
	}
	return helper.JsonOK(c, "Daftar pertanyaan SKM", dto.FromModels(rows))
}

// GET /api/a/skm-questions (termasuk nonaktif)
func (ctrl *SkmQuestionController) ListAll(c *fiber.Ctx) error {
	rows, err := ctrl.Svc.List(c.UserContext(), c.QueryBool("active_only", false))
	if err != nil {
		return helper.FromError(c, helper.NewInternal(err))
	}
	return helper.JsonOK(c, "Daftar pertanyaan SKM", dto.FromModels(rows))
}

func (ctrl *SkmQuestionController) Create(c *fiber.Ctx) error {
	actor, _ := authHelper.FromCtx(c)
	var body dto.CreateSkmQuestionRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.FromError(c, helper.NewValidationError("Body request tidak valid"))
	}
	m, err := ctrl.Svc.Create(c.UserContext(), actor, body, helper.ClientIP(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Pertanyaan berhasil ditambahkan", dto.FromModel(*m))
}

func (ctrl *SkmQuestionController) Update(c *fiber.Ctx) error {
	actor, _ := authHelper.FromCtx(c)
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var body dto.UpdateSkmQuestionRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.FromError(c, helper.NewValidationError("Body request tidak valid"))
	}
	m, err := ctrl.Svc.Update(c.UserContext(), actor, id, body, helper.ClientIP(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Pertanyaan berhasil diperbarui", dto.FromModel(*m))
}

func (ctrl *SkmQuestionController) Delete(c *fiber.Ctx) error {
	actor, _ := authHelper.FromCtx(c)
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := ctrl.Svc.Delete(c.UserContext(), actor, id, helper.ClientIP(c)); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Pertanyaan berhasil dihapus", fiber.Map{"id": id})
}
