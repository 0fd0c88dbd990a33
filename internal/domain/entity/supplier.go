package entity

// Supplier proveedor tal como lo devuelve la API (/suppliers).
type Supplier struct {
	ID          string `json:"_id"`
	Name        string `json:"SupplierName"`
	PhoneNumber string `json:"phoneNumber"`
}

// SupplierID devuelve el identificador asignado por la API.
func SupplierID(s Supplier) string { return s.ID }
