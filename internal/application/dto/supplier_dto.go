package dto

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

// SupplierForm formulario de alta de proveedor.
type SupplierForm struct {
	SupplierName string `form:"SupplierName" json:"SupplierName"`
	PhoneNumber  string `form:"phoneNumber" json:"phoneNumber"`
}

func (f *SupplierForm) Validate() error {
	return asValidationError(validation.ValidateStruct(
		f,
		validation.Field(&f.SupplierName, validation.Required.Error("is required")),
	))
}

// CreateSupplierRequest body para POST /suppliers.
type CreateSupplierRequest struct {
	SupplierName string `json:"SupplierName"`
	PhoneNumber  string `json:"phoneNumber"`
}

// Payload construye el body con los campos recortados.
func (f SupplierForm) Payload() CreateSupplierRequest {
	return CreateSupplierRequest{
		SupplierName: strings.TrimSpace(f.SupplierName),
		PhoneNumber:  strings.TrimSpace(f.PhoneNumber),
	}
}
