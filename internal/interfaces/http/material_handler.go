package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/inventario-console/internal/application/console"
	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

const (
	materialsTitle    = "Raw Materials"
	materialsSubtitle = "Track quantities, units and unit prices."
)

// MaterialHandler panel de materias primas.
type MaterialHandler struct {
	log *logger.Logger
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(log *logger.Logger) *MaterialHandler {
	return &MaterialHandler{log: log}
}

// List GET /dashboard/materials?edit=<id>
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	ws, err := GetWorkspace(c)
	if err != nil {
		return err
	}
	if err := ws.Materials.Mount(c.UserContext()); ws.IsSessionEnded(err) {
		return domain.ErrUnauthorized
	}
	view := page(c, materialsTitle, materialsSubtitle)
	materialView(view, ws, c.Query("edit"))
	return c.Render("views/materials", view, layout)
}

// Create POST /dashboard/materials
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	ws, err := GetWorkspace(c)
	if err != nil {
		return err
	}
	var in dto.MaterialForm
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}

	created, err := ws.Materials.Create(c.UserContext(), in)
	if ws.IsSessionEnded(err) {
		return domain.ErrUnauthorized
	}
	if err != nil {
		return h.rejected(c, ws, err, func(view fiber.Map) { view["MaterialForm"] = in })
	}

	h.log.Info().Str("material_id", created.ID).Msg("materia prima creada")
	return c.Redirect(returnTo(c, "/dashboard/materials"), fiber.StatusSeeOther)
}

// Update POST /dashboard/materials/update
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	ws, err := GetWorkspace(c)
	if err != nil {
		return err
	}
	var in dto.MaterialForm
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}
	id := utils.CopyString(c.FormValue("id")) // se guarda en la colección

	updated, err := ws.Materials.Update(c.UserContext(), id, in)
	if ws.IsSessionEnded(err) {
		return domain.ErrUnauthorized
	}
	if err != nil {
		return h.rejected(c, ws, err, func(view fiber.Map) {
			view["EditID"] = id
			view["EditForm"] = in
		})
	}

	h.log.Info().Str("material_id", updated.ID).Msg("materia prima actualizada")
	return c.Redirect(returnTo(c, "/dashboard/materials")+"?edit="+updated.ID, fiber.StatusSeeOther)
}

// rejected vuelve a mostrar la página con lo ingresado y el mensaje de error.
func (h *MaterialHandler) rejected(c *fiber.Ctx, ws *console.Workspace, err error, keep func(fiber.Map)) error {
	view := page(c, materialsTitle, materialsSubtitle)
	materialView(view, ws, "")
	keep(view)
	view["MaterialStatus"] = failureStatus(ws.Materials, err)
	return c.Status(fiber.StatusUnprocessableEntity).Render("views/materials", view, layout)
}
