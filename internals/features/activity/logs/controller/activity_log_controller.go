package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"stamet_backend/internals/features/activity/logs/model"
	"stamet_backend/internals/features/activity/logs/service"
	helper "stamet_backend/internals/helpers"
	"stamet_backend/internals/helpers/dbtime"
)

type ActivityLogController struct {
	Query *service.QueryService
}

func NewActivityLogController(q *service.QueryService) *ActivityLogController {
	return &ActivityLogController{Query: q}
}

// GET /api/a/activity-logs?action=&target=&user_id=&q=&from=2024-01-01&to=2024-01-31
func (ctrl *ActivityLogController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 25, 200)
	f := service.ListFilter{
		Target: c.Query("target"),
		Q:      c.Query("q"),
		Offset: p.Offset,
		Limit:  p.Limit,
	}

	if a := model.Action(strings.ToUpper(strings.TrimSpace(c.Query("action")))); a != "" {
		if !a.Valid() {
			return helper.FromError(c, helper.NewValidationError("action tidak valid"))
		}
		f.Action = a
	}
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.FromError(c, helper.NewValidationError("user_id tidak valid"))
		}
		f.UserID = id
	}
	var err error
	if f.From, err = parseDay(c.Query("from"), 0); err != nil {
		return helper.FromError(c, err)
	}
	if f.To, err = parseDay(c.Query("to"), 1); err != nil {
		return helper.FromError(c, err)
	}

	rows, total, err := ctrl.Query.List(c.Context(), f)
	if err != nil {
		return helper.FromError(c, helper.NewInternal(err))
	}
	return helper.JsonList(c, "Daftar aktivitas", rows, helper.BuildPagination(total, p, rows))
}

// parseDay "YYYY-MM-DD" dalam WIB; addDays=1 untuk batas atas eksklusif.
func parseDay(raw string, addDays int) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, dbtime.Location())
	if err != nil {
		return nil, helper.NewValidationError("format tanggal harus YYYY-MM-DD")
	}
	t = t.AddDate(0, 0, addDays)
	return &t, nil
}
