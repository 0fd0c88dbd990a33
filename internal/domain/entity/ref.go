package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ref referencia a otra entidad dentro de un movimiento. La API la envía como
// id plano ("m1") o como objeto poblado ({"_id":"m1","MaterialName":"Steel"}).
type Ref struct {
	ID   string
	Name string
}

// Label devuelve el nombre poblado o, si no hay, el id.
func (r Ref) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Ref{}
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}
	var obj struct {
		ID           string `json:"_id"`
		MaterialName string `json:"MaterialName"`
		SupplierName string `json:"SupplierName"`
		Name         string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("ref: formato no soportado: %w", err)
	}
	name := obj.MaterialName
	if name == "" {
		name = obj.SupplierName
	}
	if name == "" {
		name = obj.Name
	}
	*r = Ref{ID: obj.ID, Name: name}
	return nil
}

func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}
