package http

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-console/internal/application/console"
	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

const (
	movementsTitle    = "Stock Movements"
	movementsSubtitle = "Record stock-in and stock-out against your suppliers."
)

// MovementHandler panel de entradas y salidas de stock.
type MovementHandler struct {
	log *logger.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(log *logger.Logger) *MovementHandler {
	return &MovementHandler{log: log}
}

// List GET /dashboard/movements
// Monta los movimientos y las referencias de los desplegables en paralelo.
func (h *MovementHandler) List(c *fiber.Ctx) error {
	ws, err := GetWorkspace(c)
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	var g errgroup.Group
	g.Go(func() error { return ws.Movements.Mount(ctx) })
	g.Go(func() error { return ws.MountReferences(ctx) })
	if err := g.Wait(); ws.IsSessionEnded(err) {
		return domain.ErrUnauthorized
	}

	view := page(c, movementsTitle, movementsSubtitle)
	movementView(view, ws)
	return c.Render("views/movements", view, layout)
}

// StockIn POST /dashboard/movements/in
func (h *MovementHandler) StockIn(c *fiber.Ctx) error {
	return h.record(c, entity.DirectionIn)
}

// StockOut POST /dashboard/movements/out
func (h *MovementHandler) StockOut(c *fiber.Ctx) error {
	return h.record(c, entity.DirectionOut)
}

func (h *MovementHandler) record(c *fiber.Ctx, direction string) error {
	ws, err := GetWorkspace(c)
	if err != nil {
		return err
	}
	var in dto.MovementForm
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}

	var created entity.StockMovement
	if direction == entity.DirectionOut {
		created, err = ws.Movements.RecordStockOut(c.UserContext(), in)
	} else {
		created, err = ws.Movements.RecordStockIn(c.UserContext(), in)
	}
	if ws.IsSessionEnded(err) {
		return domain.ErrUnauthorized
	}
	if err != nil {
		return h.rejected(c, ws, err, direction, in)
	}

	h.log.Info().Str("movement_id", created.ID).Str("direction", direction).Msg("movimiento registrado")
	return c.Redirect(returnTo(c, "/dashboard/movements"), fiber.StatusSeeOther)
}

func (h *MovementHandler) rejected(c *fiber.Ctx, ws *console.Workspace, err error, direction string, in dto.MovementForm) error {
	view := page(c, movementsTitle, movementsSubtitle)
	movementView(view, ws)
	if direction == entity.DirectionOut {
		view["OutForm"] = in
	} else {
		view["InForm"] = in
	}
	view["MovementStatus"] = failureStatus(ws.Movements, err)
	return c.Status(fiber.StatusUnprocessableEntity).Render("views/movements", view, layout)
}
