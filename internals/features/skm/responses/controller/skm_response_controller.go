package controller

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	requestDTO "stamet_backend/internals/features/pelayanan/requests/dto"
	"stamet_backend/internals/features/skm/responses/dto"
	"stamet_backend/internals/features/skm/responses/export"
	"stamet_backend/internals/features/skm/responses/service"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
	"stamet_backend/internals/helpers/dbtime"
)

type SkmResponseController struct {
	Svc *service.SkmResponseService
}

func NewSkmResponseController(svc *service.SkmResponseService) *SkmResponseController {
	return &SkmResponseController{Svc: svc}
}

// POST /api/u/service-requests/:id/skm
func (ctrl *SkmResponseController) Submit(c *fiber.Ctx) error {
	actor, _ := authHelper.FromCtx(c)
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var body dto.SubmitSkmRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.FromError(c, helper.NewValidationError("Body request tidak valid"))
	}
	m, err := ctrl.Svc.Submit(c.UserContext(), actor, id, body, helper.ClientIP(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Terima kasih, survei berhasil dikirim", requestDTO.FromModel(*m))
}

// GET /api/a/skm-responses?from=YYYY-MM-DD&to=YYYY-MM-DD
func (ctrl *SkmResponseController) List(c *fiber.Ctx) error {
	period, err := parsePeriod(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	p := helper.ResolvePaging(c, 20, 200)
	rows, total, err := ctrl.Svc.List(c.UserContext(), period, p.Offset, p.Limit)
	if err != nil {
		return helper.FromError(c, helper.NewInternal(err))
	}
	return helper.JsonList(c, "Daftar hasil SKM", rows, helper.BuildPagination(total, p, rows))
}

// GET /api/a/skm-responses/export
func (ctrl *SkmResponseController) Export(c *fiber.Ctx) error {
	period, err := parsePeriod(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var buf bytes.Buffer
	name, err := ctrl.Svc.Export(c.UserContext(), &buf, period)
	if err != nil {
		return helper.FromError(c, helper.NewInternal(err))
	}

	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(buf.Bytes())
}

// to bersifat inklusif per hari (WIB).
func parsePeriod(c *fiber.Ctx) (service.Period, error) {
	var p service.Period
	parse := func(key string, addDays int) (*time.Time, error) {
		raw := strings.TrimSpace(c.Query(key))
		if raw == "" {
			return nil, nil
		}
		t, err := time.ParseInLocation(time.DateOnly, raw, dbtime.Location())
		if err != nil {
			return nil, helper.NewValidationError(key + " harus berformat YYYY-MM-DD")
		}
		t = t.AddDate(0, 0, addDays)
		return &t, nil
	}
	var err error
	if p.From, err = parse("from", 0); err != nil {
		return p, err
	}
	if p.To, err = parse("to", 1); err != nil {
		return p, err
	}
	return p, nil
}
