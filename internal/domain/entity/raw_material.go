package entity

import "github.com/shopspring/decimal"

// RawMaterial materia prima (/rawMaterial). Quantity y UnitPrice son >= 0
// según la API; la consola no lo vuelve a verificar al leer.
type RawMaterial struct {
	ID        string          `json:"_id"`
	Name      string          `json:"MaterialName"`
	Quantity  float64         `json:"Quantity"`
	Unit      string          `json:"Unit"`
	UnitPrice decimal.Decimal `json:"UnitPrice"`
}

// RawMaterialID devuelve el identificador asignado por la API.
func RawMaterialID(m RawMaterial) string { return m.ID }
