package dto_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

func TestMaterialForm_PayloadConvierteNumeros(t *testing.T) {
	form := dto.MaterialForm{MaterialName: "  Steel ", Quantity: "10", Unit: " kg", UnitPrice: "5.50"}
	require.NoError(t, form.Validate())

	got := form.Payload()

	assert.Equal(t, dto.MaterialRequest{MaterialName: "Steel", Quantity: 10, Unit: "kg", UnitPrice: 5.5}, got)
}

func TestMaterialForm_RechazaNumerosInvalidos(t *testing.T) {
	cases := map[string]dto.MaterialForm{
		"cantidad negativa": {MaterialName: "Steel", Quantity: "-1", Unit: "kg", UnitPrice: "1"},
		"cantidad no num":   {MaterialName: "Steel", Quantity: "diez", Unit: "kg", UnitPrice: "1"},
		"cantidad infinita": {MaterialName: "Steel", Quantity: "Inf", Unit: "kg", UnitPrice: "1"},
		"precio negativo":   {MaterialName: "Steel", Quantity: "1", Unit: "kg", UnitPrice: "-0.01"},
		"sin nombre":        {Quantity: "1", Unit: "kg", UnitPrice: "1"},
	}
	for name, form := range cases {
		t.Run(name, func(t *testing.T) {
			err := form.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			assert.NotEqual(t, domain.GenericFailureMessage, domain.MessageOf(err))
		})
	}
}

func TestMaterialFormFrom_RellenaEdicion(t *testing.T) {
	form := dto.MaterialFormFrom(entity.RawMaterial{
		ID: "m1", Name: "Steel", Quantity: 2.5, Unit: "kg", UnitPrice: decimal.RequireFromString("7.25"),
	})

	assert.Equal(t, dto.MaterialForm{MaterialName: "Steel", Quantity: "2.5", Unit: "kg", UnitPrice: "7.25"}, form)
}

func TestMovementForm_CantidadEnteraPositiva(t *testing.T) {
	ok := dto.MovementForm{MaterialID: "m1", SupplierID: "s1", Quantity: "4"}
	require.NoError(t, ok.Validate())
	assert.Equal(t, dto.StockInRequest{MaterialID: "m1", SupplierID: "s1", StockInQuantity: 4}, ok.StockIn())
	assert.Equal(t, 4, ok.StockOut().StockOutQuantity)

	for _, q := range []string{"0", "-3", "1.5", "x"} {
		bad := dto.MovementForm{MaterialID: "m1", SupplierID: "s1", Quantity: q}
		assert.Error(t, bad.Validate(), "cantidad %q", q)
	}

	missing := dto.MovementForm{Quantity: "1"}
	assert.Error(t, missing.Validate())
}

func TestAuthForms_NormalizeYValidate(t *testing.T) {
	login := dto.LoginForm{Email: "  nova@example.com ", Password: " secreto "}.Normalize()
	assert.Equal(t, "nova@example.com", login.Email)
	assert.Equal(t, " secreto ", login.Password, "la contraseña no se recorta")
	assert.NoError(t, login.Validate())

	reg := dto.RegisterForm{Username: " nova ", Email: "no-es-email", Password: "x"}.Normalize()
	assert.Equal(t, "nova", reg.Username)
	assert.Error(t, reg.Validate())
}

func TestSupplierForm_Payload(t *testing.T) {
	form := dto.SupplierForm{SupplierName: " Acme ", PhoneNumber: " 555 "}
	require.NoError(t, form.Validate())
	assert.Equal(t, dto.CreateSupplierRequest{SupplierName: "Acme", PhoneNumber: "555"}, form.Payload())

	empty := dto.SupplierForm{}
	assert.Error(t, empty.Validate())
}
