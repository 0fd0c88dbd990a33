package dto

import (
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

// MovementForm formulario de entrada o salida de stock.
type MovementForm struct {
	MaterialID string `form:"materialId" json:"materialId"`
	SupplierID string `form:"supplierId" json:"supplierId"`
	Quantity   string `form:"quantity" json:"quantity"`
}

func (f *MovementForm) Validate() error {
	return asValidationError(validation.ValidateStruct(
		f,
		validation.Field(&f.MaterialID, validation.Required.Error("pick a material")),
		validation.Field(&f.SupplierID, validation.Required.Error("pick a supplier")),
		validation.Field(&f.Quantity, validation.Required.Error("is required"), positiveInteger),
	))
}

// StockInRequest body para POST /stockIn.
type StockInRequest struct {
	MaterialID      string `json:"materialId"`
	SupplierID      string `json:"supplierId"`
	StockInQuantity int    `json:"stockInQuantity"`
}

// StockOutRequest body para POST /stockOut.
type StockOutRequest struct {
	MaterialID       string `json:"materialId"`
	SupplierID       string `json:"supplierId"`
	StockOutQuantity int    `json:"stockOutQuantity"`
}

func (f MovementForm) StockIn() StockInRequest {
	return StockInRequest{
		MaterialID:      strings.TrimSpace(f.MaterialID),
		SupplierID:      strings.TrimSpace(f.SupplierID),
		StockInQuantity: parseInt(f.Quantity),
	}
}

func (f MovementForm) StockOut() StockOutRequest {
	return StockOutRequest{
		MaterialID:       strings.TrimSpace(f.MaterialID),
		SupplierID:       strings.TrimSpace(f.SupplierID),
		StockOutQuantity: parseInt(f.Quantity),
	}
}

func formatFloat(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
