package controller

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	activityModel "stamet_backend/internals/features/activity/logs/model"
	activity "stamet_backend/internals/features/activity/logs/service"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
	"stamet_backend/internals/helpers/logger"
	ossHelper "stamet_backend/internals/helpers/oss"
)

// Folder yang boleh dipilih klien; kosong = ditentukan dari jenis file.
var AllowedFolders = []string{"articles", "news", "videos", "stations", "documents", "images", "pdf"}

type UploadController struct {
	Uploader *ossHelper.Uploader
	Audit    activity.Recorder
}

func NewUploadController(up *ossHelper.Uploader, audit activity.Recorder) *UploadController {
	if audit == nil {
		audit = activity.Discard{}
	}
	return &UploadController{Uploader: up, Audit: audit}
}

// POST /api/a/uploads (multipart: file, folder?)
func (ctrl *UploadController) Upload(c *fiber.Ctx) error {
	actor, _ := authHelper.FromCtx(c)

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.FromError(c, helper.NewFieldErrors(map[string][]string{"file": {"wajib diisi"}}))
	}
	folder := strings.ToLower(strings.TrimSpace(c.FormValue("folder")))
	if folder != "" && !slices.Contains(AllowedFolders, folder) {
		return helper.FromError(c, helper.NewValidationError("folder tidak dikenal"))
	}

	obj, err := ctrl.Uploader.Put(c.UserContext(), folder, fh)
	switch {
	case errors.Is(err, ossHelper.ErrTooLarge):
		return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, ossHelper.ErrEmptyFile), errors.Is(err, ossHelper.ErrUnsupportedImage):
		return helper.FromError(c, helper.NewValidationError(err.Error()))
	case err != nil:
		logger.Error().Err(err).Str("filename", fh.Filename).Msg("upload gagal")
		return helper.FromError(c, helper.NewInternal(err))
	}

	ctrl.Audit.Record(activity.Entry{
		UserID:    actor.UserIDPtr(),
		Action:    activityModel.ActionCreate,
		Target:    "Berkas",
		Details:   fmt.Sprintf("Mengunggah %s (%s, %d byte)", fh.Filename, obj.Kind, obj.Size),
		IPAddress: helper.ClientIP(c),
		Metadata:  map[string]any{"key": obj.Key, "content_type": obj.ContentType},
	})
	return helper.JsonCreated(c, "File berhasil diunggah", obj)
}
