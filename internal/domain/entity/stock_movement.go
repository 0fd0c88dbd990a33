package entity

import "encoding/json"

// Direcciones de movimiento de stock.
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// StockMovement entrada (/stockIn) o salida (/stockOut) de stock.
// Quantity es siempre positiva; la dirección indica el signo.
type StockMovement struct {
	ID        string
	Direction string
	Material  Ref
	Supplier  Ref
	Quantity  float64
}

// StockMovementID devuelve el identificador asignado por la API.
func StockMovementID(m StockMovement) string { return m.ID }

type stockMovementWire struct {
	ID               string   `json:"_id"`
	MaterialID       Ref      `json:"materialId"`
	SupplierID       Ref      `json:"supplierId"`
	StockInQuantity  *float64 `json:"stockInQuantity"`
	StockOutQuantity *float64 `json:"stockOutQuantity"`
}

// UnmarshalJSON acepta tanto el formato de /stockIn como el de /stockOut.
func (m *StockMovement) UnmarshalJSON(data []byte) error {
	var w stockMovementWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*m = StockMovement{ID: w.ID, Material: w.MaterialID, Supplier: w.SupplierID}
	switch {
	case w.StockInQuantity != nil:
		m.Direction = DirectionIn
		m.Quantity = *w.StockInQuantity
	case w.StockOutQuantity != nil:
		m.Direction = DirectionOut
		m.Quantity = *w.StockOutQuantity
	}
	return nil
}
