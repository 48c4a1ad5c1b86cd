package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"stamet_backend/internals/features/content/posts/dto"
	"stamet_backend/internals/features/content/posts/model"
	"stamet_backend/internals/features/content/posts/service"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
)

type PostController struct {
	Svc *service.PostService
}

func NewPostController(svc *service.PostService) *PostController {
	return &PostController{Svc: svc}
}

func (ctrl *PostController) label() string {
	return ctrl.Svc.Collection.Label()
}

// =============================
// 📄 Public
// =============================

// GET /api/public/{articles|news}?category=&tag=&q=&page=&per_page=
func (ctrl *PostController) ListPublic(c *fiber.Ctx) error {
	return ctrl.list(c, true)
}

// GET /api/public/{articles|news}/:slug
func (ctrl *PostController) GetBySlug(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	if slug == "" {
		return helper.FromError(c, helper.NewValidationError("slug wajib diisi"))
	}
	post, err := ctrl.Svc.GetBySlug(c.UserContext(), slug, true)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Detail "+strings.ToLower(ctrl.label()), dto.FromModel(*post))
}

// =============================
// 🔐 Admin
// =============================

// GET /api/a/{articles|news}?status=&category=&tag=&q=
func (ctrl *PostController) ListAdmin(c *fiber.Ctx) error {
	return ctrl.list(c, false)
}

// GET /api/a/{articles|news}/:id
func (ctrl *PostController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	post, err := ctrl.Svc.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Detail "+strings.ToLower(ctrl.label()), dto.FromModel(*post))
}

// POST /api/a/{articles|news}
func (ctrl *PostController) Create(c *fiber.Ctx) error {
	actor, _ := authHelper.FromCtx(c)

	var body dto.CreatePostRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.FromError(c, helper.NewValidationError("Body request tidak valid"))
	}
	post, err := ctrl.Svc.Create(c.UserContext(), actor, body, helper.ClientIP(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, ctrl.label()+" berhasil dibuat", dto.FromModel(*post))
}

// PUT/PATCH /api/a/{articles|news}/:id
func (ctrl *PostController) Update(c *fiber.Ctx) error {
	actor, _ := authHelper.FromCtx(c)
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	var body dto.UpdatePostRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.FromError(c, helper.NewValidationError("Body request tidak valid"))
	}
	post, err := ctrl.Svc.Update(c.UserContext(), actor, id, body, helper.ClientIP(c))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, ctrl.label()+" berhasil diperbarui", dto.FromModel(*post))
}

// DELETE /api/a/{articles|news}/:id
func (ctrl *PostController) Delete(c *fiber.Ctx) error {
	actor, _ := authHelper.FromCtx(c)
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := ctrl.Svc.Delete(c.UserContext(), actor, id, helper.ClientIP(c)); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, ctrl.label()+" berhasil dihapus", fiber.Map{"id": id})
}

func (ctrl *PostController) list(c *fiber.Ctx, public bool) error {
	p := helper.ResolvePaging(c, 10, 100)
	params := service.ListParams{
		Category:   c.Query("category"),
		Tag:        c.Query("tag"),
		Q:          c.Query("q"),
		PublicOnly: public,
		Offset:     p.Offset,
		Limit:      p.Limit,
	}
	if !public {
		if st := model.Status(strings.ToUpper(strings.TrimSpace(c.Query("status")))); st != "" {
			if !st.Valid() {
				return helper.FromError(c, helper.NewValidationError("status tidak valid"))
			}
			params.Status = st
		}
	}

	rows, total, err := ctrl.Svc.List(c.UserContext(), params)
	if err != nil {
		return helper.FromError(c, helper.NewInternal(err))
	}
	data := dto.FromModels(rows)
	return helper.JsonList(c, "Daftar "+strings.ToLower(ctrl.label()), data, helper.BuildPagination(total, p, data))
}
