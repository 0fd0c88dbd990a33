package dto

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// MaterialForm formulario de alta/edición de materia prima. Los numéricos se
// conservan como texto para volver a mostrarlos si la validación falla.
type MaterialForm struct {
	MaterialName string `form:"MaterialName" json:"MaterialName"`
	Quantity     string `form:"Quantity" json:"Quantity"`
	Unit         string `form:"Unit" json:"Unit"`
	UnitPrice    string `form:"UnitPrice" json:"UnitPrice"`
}

// MaterialFormFrom rellena el formulario de edición a partir de una entrada en caché.
func MaterialFormFrom(m entity.RawMaterial) MaterialForm {
	return MaterialForm{
		MaterialName: m.Name,
		Quantity:     formatFloat(m.Quantity),
		Unit:         m.Unit,
		UnitPrice:    m.UnitPrice.String(),
	}
}

func (f *MaterialForm) Validate() error {
	return asValidationError(validation.ValidateStruct(
		f,
		validation.Field(&f.MaterialName, validation.Required.Error("is required")),
		validation.Field(&f.Quantity, validation.Required.Error("is required"), nonNegativeNumber),
		validation.Field(&f.Unit, validation.Required.Error("is required")),
		validation.Field(&f.UnitPrice, validation.Required.Error("is required"), nonNegativeDecimal),
	))
}

// MaterialRequest body para POST /rawMaterial y PUT /rawMaterial/{id}.
type MaterialRequest struct {
	MaterialName string  `json:"MaterialName"`
	Quantity     float64 `json:"Quantity"`
	Unit         string  `json:"Unit"`
	UnitPrice    float64 `json:"UnitPrice"`
}

// Payload convierte un formulario ya validado; el precio viaja como número JSON.
func (f MaterialForm) Payload() MaterialRequest {
	return MaterialRequest{
		MaterialName: strings.TrimSpace(f.MaterialName),
		Quantity:     parseFloat(f.Quantity),
		Unit:         strings.TrimSpace(f.Unit),
		UnitPrice:    parseDecimal(f.UnitPrice).InexactFloat64(),
	}
}
