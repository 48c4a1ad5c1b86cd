package controller

import (
	"github.com/gofiber/fiber/v2"

	"stamet_backend/internals/features/ikm/stations/dto"
	"stamet_backend/internals/features/ikm/stations/service"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
)

type IkmStationController struct {
	Svc *service.IkmStationService
}

func NewIkmStationController(svc *service.IkmStationService) *IkmStationController {
	return &IkmStationController{Svc: svc}
}

// GET /ikm-stations
func (ctrl *IkmStationController) List(c *fiber.Ctx) error {
	rows, err := ctrl.Svc.List(c.UserContext())
	if err != nil {
		return helper.FromError(c, helper.NewInternal(err))
	}
	return helper.JsonOK(c, "Daftar stasiun IKM", dto.FromModels(rows))
}

func (ctrl *IkmStationController) Create(c *fiber.Ctx) error {
	actor, _ := authHelper.FromCtx(c)
	var body dto.CreateIkmStationRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.FromError(c, helper.NewValidationError("Body request tidak valid"))
	}
	m, err := ctrl.Svc.Create(c.UserContext(), actor, body, helper.ClientIP(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Stasiun berhasil ditambahkan", dto.FromModel(*m))
}

func (ctrl *IkmStationController) Update(c *fiber.Ctx) error {
	actor, _ := authHelper.FromCtx(c)
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var body dto.UpdateIkmStationRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.FromError(c, helper.NewValidationError("Body request tidak valid"))
	}
	m, err := ctrl.Svc.Update(c.UserContext(), actor, id, body, helper.ClientIP(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Data stasiun diperbarui", dto.FromModel(*m))
}

func (ctrl *IkmStationController) Delete(c *fiber.Ctx) error {
	actor, _ := authHelper.FromCtx(c)
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := ctrl.Svc.Delete(c.UserContext(), actor, id, helper.ClientIP(c)); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Stasiun berhasil dihapus", fiber.Map{"id": id})
}
