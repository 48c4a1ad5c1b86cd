package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"stamet_backend/internals/features/content/videos/dto"
	"stamet_backend/internals/features/content/videos/model"
	"stamet_backend/internals/features/content/videos/service"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
)

type VideoController struct {
	Svc *service.VideoService
}

func NewVideoController(svc *service.VideoService) *VideoController {
	return &VideoController{Svc: svc}
}

// GET /api/public/videos?q=
func (ctrl *VideoController) ListPublic(c *fiber.Ctx) error {
	return ctrl.list(c, true)
}

// GET /api/a/videos?status=&q=
func (ctrl *VideoController) ListAdmin(c *fiber.Ctx) error {
	return ctrl.list(c, false)
}

func (ctrl *VideoController) list(c *fiber.Ctx, public bool) error {
	p := helper.ResolvePaging(c, 12, 100)
	var status model.Status
	if !public {
		status = model.Status(strings.ToUpper(strings.TrimSpace(c.Query("status"))))
		if status != "" && !status.Valid() {
			return helper.FromError(c, helper.NewValidationError("status tidak valid"))
		}
	}
	rows, total, err := ctrl.Svc.List(c.UserContext(), public, status, c.Query("q"), p.Offset, p.Limit)
	if err != nil {
		return helper.FromError(c, helper.NewInternal(err))
	}
	data := dto.FromModels(rows)
	return helper.JsonList(c, "Daftar video", data, helper.BuildPagination(total, p, data))
}

func (ctrl *VideoController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	m, err := ctrl.Svc.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Detail video", dto.FromModel(*m))
}

func (ctrl *VideoController) Create(c *fiber.Ctx) error {
	actor, _ := authHelper.FromCtx(c)
	var body dto.CreateVideoRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.FromError(c, helper.NewValidationError("Body request tidak valid"))
	}
	m, err := ctrl.Svc.Create(c.UserContext(), actor, body, helper.ClientIP(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Video berhasil ditambahkan", dto.FromModel(*m))
}

func (ctrl *VideoController) Update(c *fiber.Ctx) error {
	actor, _ := authHelper.FromCtx(c)
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var body dto.UpdateVideoRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.FromError(c, helper.NewValidationError("Body request tidak valid"))
	}
	m, err := ctrl.Svc.Update(c.UserContext(), actor, id, body, helper.ClientIP(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Video berhasil diperbarui", dto.FromModel(*m))
}

func (ctrl *VideoController) Delete(c *fiber.Ctx) error {
	actor, _ := authHelper.FromCtx(c)
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := ctrl.Svc.Delete(c.UserContext(), actor, id, helper.ClientIP(c)); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Video berhasil dihapus", fiber.Map{"id": id})
}
