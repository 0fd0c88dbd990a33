package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-console/internal/application/console"
	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/pkg/numfmt"
)

// movementRow fila de las tablas de movimientos recientes.
type movementRow struct {
	Material string
	Supplier string
	Quantity string
}

// supplierView agrega al mapa los datos del panel de proveedores.
// Consume el mensaje pendiente del panel.
func supplierView(view fiber.Map, ws *console.Workspace) {
	view["Suppliers"] = ws.Suppliers.Items()
	view["SupplierForm"] = dto.SupplierForm{}
	view["SupplierStatus"] = ws.Suppliers.TakeStatus()
}

// materialView agrega los datos del panel de materias primas; editID
// selecciona la fila que rellena el formulario de actualización.
func materialView(view fiber.Map, ws *console.Workspace, editID string) {
	view["Materials"] = ws.Materials.Items()
	view["MaterialForm"] = dto.MaterialForm{}
	view["MaterialStatus"] = ws.Materials.TakeStatus()

	form, ok := ws.Materials.Edit(editID)
	if !ok {
		editID = ""
	}
	view["EditID"] = editID
	view["EditForm"] = form
}

// movementView agrega los datos del panel de movimientos y los desplegables
// alimentados por las referencias compartidas.
func movementView(view fiber.Map, ws *console.Workspace) {
	refs := ws.References()
	view["RefSuppliers"] = refs.Suppliers
	view["RefMaterials"] = refs.Materials
	view["StockIns"] = movementRows(ws.Movements.Recent(entity.DirectionIn, console.RecentLimit), refs)
	view["StockOuts"] = movementRows(ws.Movements.Recent(entity.DirectionOut, console.RecentLimit), refs)
	view["InForm"] = dto.MovementForm{}
	view["OutForm"] = dto.MovementForm{}
	view["MovementStatus"] = ws.Movements.TakeStatus()
}

func movementRows(list []entity.StockMovement, refs console.References) []movementRow {
	rows := make([]movementRow, 0, len(list))
	for _, m := range list {
		material := m.Material.Name
		if material == "" {
			material = refs.MaterialName(m.Material.ID)
		}
		supplier := m.Supplier.Name
		if supplier == "" {
			supplier = refs.SupplierName(m.Supplier.ID)
		}
		rows = append(rows, movementRow{
			Material: material,
			Supplier: supplier,
			Quantity: numfmt.Quantity(m.Quantity),
		})
	}
	return rows
}

type statusTaker interface {
	TakeStatus() console.Status
}

// failureStatus mensaje a mostrar tras un envío fallido. Si el panel no dejó
// mensaje (envío concurrente rechazado) se deriva del error.
func failureStatus(p statusTaker, err error) console.Status {
	if st := p.TakeStatus(); !st.IsZero() {
		return st
	}
	return console.Status{Kind: console.StatusError, Message: domain.MessageOf(err)}
}

// returnTo página a la que vuelve un POST exitoso; solo se aceptan rutas del dashboard.
func returnTo(c *fiber.Ctx, fallback string) string {
	r := c.FormValue("return")
	if r == "/dashboard" || strings.HasPrefix(r, "/dashboard/") {
		return r
	}
	return fallback
}
