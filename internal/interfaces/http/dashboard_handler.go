package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-console/pkg/logger"
)

// DashboardHandler vista general: tarjetas de módulos y la sala de control con los tres paneles.
type DashboardHandler struct {
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{log: log}
}

// Overview monta el espacio de trabajo completo y lo renderiza.
// GET /dashboard
//
// Las fallas de carga se muestran como estado de error de cada panel; solo
// un 401 corta la página.
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	ws, err := GetWorkspace(c)
	if err != nil {
		return err
	}
	if err := ws.Mount(c.UserContext()); err != nil {
		return err
	}

	view := page(c, "Overview", "Suppliers, raw materials and stock movements at a glance.")
	supplierView(view, ws)
	materialView(view, ws, c.Query("edit"))
	movementView(view, ws)
	view["SupplierCount"] = len(ws.Suppliers.Items())
	view["MaterialCount"] = len(ws.Materials.Items())
	view["MovementCount"] = len(ws.Movements.StockIns()) + len(ws.Movements.StockOuts())

	h.log.Debug().Str("path", c.Path()).Str("user", GetUser(c).DisplayName()).Msg("dashboard renderizado")
	return c.Render("views/dashboard", view, layout)
}

// Vault entrada heredada: lleva al dashboard con sesión y a /login sin ella.
// GET /vault
func (h *DashboardHandler) Vault(c *fiber.Ctx) error {
	if GetStore(c).Read().Authenticated() {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

// Index página de bienvenida.
// GET /
func (h *DashboardHandler) Index(c *fiber.Ctx) error {
	view := publicPage("Welcome")
	view["SignedIn"] = GetStore(c).Read().Authenticated()
	return c.Render("views/index", view, layout)
}

