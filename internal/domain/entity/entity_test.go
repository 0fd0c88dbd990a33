package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

func TestRef_AceptaIDPlanoYObjetoPoblado(t *testing.T) {
	var plain, populated, empty entity.Ref

	require.NoError(t, json.Unmarshal([]byte(`"m1"`), &plain))
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"m2","MaterialName":"Steel"}`), &populated))
	require.NoError(t, json.Unmarshal([]byte(`null`), &empty))

	assert.Equal(t, entity.Ref{ID: "m1"}, plain)
	assert.Equal(t, "m1", plain.Label(), "sin nombre poblado se muestra el id")
	assert.Equal(t, "Steel", populated.Label())
	assert.Equal(t, entity.Ref{}, empty)
}

func TestStockMovement_DetectaDireccion(t *testing.T) {
	var in, out entity.StockMovement
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"s1","materialId":"m1","supplierId":{"_id":"p1","SupplierName":"Acme"},"stockInQuantity":4}`), &in))
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"s2","materialId":"m1","supplierId":"p1","stockOutQuantity":2}`), &out))

	assert.Equal(t, entity.DirectionIn, in.Direction)
	assert.Equal(t, 4.0, in.Quantity)
	assert.Equal(t, "Acme", in.Supplier.Label())
	assert.Equal(t, entity.DirectionOut, out.Direction)
	assert.Equal(t, 2.0, out.Quantity)
}

func TestRawMaterial_DecodificaPrecioNumerico(t *testing.T) {
	var m entity.RawMaterial
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"m1","MaterialName":"Steel","Quantity":10,"Unit":"kg","UnitPrice":5.5}`), &m))

	assert.Equal(t, "m1", m.ID)
	assert.Equal(t, "5.5", m.UnitPrice.String())
}

func TestProfile_DisplayName(t *testing.T) {
	assert.Equal(t, "nova", entity.Profile{"username": "nova", "email": "a@b.com"}.DisplayName())
	assert.Equal(t, "a@b.com", entity.Profile{"email": "a@b.com"}.DisplayName())
	assert.Equal(t, "User", entity.Profile(nil).DisplayName())
}
