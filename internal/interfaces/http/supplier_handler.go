package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

const (
	suppliersTitle    = "Suppliers"
	suppliersSubtitle = "Add partners and keep their contact details at hand."
)

// SupplierHandler panel de proveedores.
type SupplierHandler struct {
	log *logger.Logger
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(log *logger.Logger) *SupplierHandler {
	return &SupplierHandler{log: log}
}

// List GET /dashboard/suppliers
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	ws, err := GetWorkspace(c)
	if err != nil {
		return err
	}
	if err := ws.Suppliers.Mount(c.UserContext()); ws.IsSessionEnded(err) {
		return domain.ErrUnauthorized
	}
	view := page(c, suppliersTitle, suppliersSubtitle)
	supplierView(view, ws)
	return c.Render("views/suppliers", view, layout)
}

// Create POST /dashboard/suppliers
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	ws, err := GetWorkspace(c)
	if err != nil {
		return err
	}
	var in dto.SupplierForm
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}

	created, err := ws.Suppliers.Create(c.UserContext(), in)
	if ws.IsSessionEnded(err) {
		return domain.ErrUnauthorized
	}
	if err != nil {
		view := page(c, suppliersTitle, suppliersSubtitle)
		supplierView(view, ws)
		view["SupplierForm"] = in
		view["SupplierStatus"] = failureStatus(ws.Suppliers, err)
		return c.Status(fiber.StatusUnprocessableEntity).Render("views/suppliers", view, layout)
	}

	h.log.Info().Str("supplier_id", created.ID).Msg("proveedor creado")
	return c.Redirect(returnTo(c, "/dashboard/suppliers"), fiber.StatusSeeOther)
}
