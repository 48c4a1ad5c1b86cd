package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"stamet_backend/internals/features/pelayanan/requests/dto"
	"stamet_backend/internals/features/pelayanan/requests/model"
	"stamet_backend/internals/features/pelayanan/requests/service"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
)

type ServiceRequestController struct {
	Svc *service.ServiceRequestService
}

func NewServiceRequestController(svc *service.ServiceRequestService) *ServiceRequestController {
	return &ServiceRequestController{Svc: svc}
}

// =============================
// 👤 Pemohon
// =============================

// POST /api/u/service-requests
func (ctrl *ServiceRequestController) Create(c *fiber.Ctx) error {
	actor, _ := authHelper.FromCtx(c)
	var body dto.CreateServiceRequestRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.FromError(c, helper.NewValidationError("Body request tidak valid"))
	}
	m, err := ctrl.Svc.Create(c.UserContext(), actor, body, helper.ClientIP(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Permohonan berhasil diajukan", dto.FromModel(*m))
}

// GET /api/u/service-requests
func (ctrl *ServiceRequestController) ListMine(c *fiber.Ctx) error {
	actor, ok := authHelper.FromCtx(c)
	if !ok {
		return helper.FromError(c, helper.NewUnauthorized(""))
	}
	return ctrl.list(c, service.ListParams{UserID: actor.UserID})
}

// GET /api/u/service-requests/:id
func (ctrl *ServiceRequestController) GetMine(c *fiber.Ctx) error {
	return ctrl.get(c, true)
}

// =============================
// 🔐 Staf pelayanan
// =============================

// GET /api/a/service-requests?status=&q=
func (ctrl *ServiceRequestController) ListAll(c *fiber.Ctx) error {
	return ctrl.list(c, service.ListParams{Q: c.Query("q")})
}

// GET /api/a/service-requests/:id
func (ctrl *ServiceRequestController) GetAny(c *fiber.Ctx) error {
	return ctrl.get(c, false)
}

// PATCH /api/a/service-requests/:id/status
func (ctrl *ServiceRequestController) UpdateStatus(c *fiber.Ctx) error {
	actor, _ := authHelper.FromCtx(c)
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var body dto.UpdateStatusRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.FromError(c, helper.NewValidationError("Body request tidak valid"))
	}
	m, err := ctrl.Svc.UpdateStatus(c.UserContext(), actor, id, body, helper.ClientIP(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Status permohonan diperbarui", dto.FromModel(*m))
}

func (ctrl *ServiceRequestController) list(c *fiber.Ctx, params service.ListParams) error {
	p := helper.ResolvePaging(c, 20, 100)
	params.Offset, params.Limit = p.Offset, p.Limit
	if st := model.Status(strings.ToUpper(strings.TrimSpace(c.Query("status")))); st != "" {
		if !st.Valid() {
			return helper.FromError(c, helper.NewValidationError("status tidak valid"))
		}
		params.Status = st
	}
	rows, total, err := ctrl.Svc.List(c.UserContext(), params)
	if err != nil {
		return helper.FromError(c, helper.NewInternal(err))
	}
	data := dto.FromModels(rows)
	return helper.JsonList(c, "Daftar permohonan", data, helper.BuildPagination(total, p, data))
}

func (ctrl *ServiceRequestController) get(c *fiber.Ctx, ownerOnly bool) error {
	actor, _ := authHelper.FromCtx(c)
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	m, err := ctrl.Svc.GetForActor(c.UserContext(), actor, id, ownerOnly)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Detail permohonan", dto.FromModel(*m))
}
