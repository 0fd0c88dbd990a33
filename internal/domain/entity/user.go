package entity

import "reflect"

// Profile perfil de usuario opaco devuelto por /auth/login y /auth/register.
// La consola solo lee username y email para mostrarlos.
type Profile map[string]any

// DisplayName devuelve username, si no email, si no "User".
func (p Profile) DisplayName() string {
	for _, key := range []string{"username", "email"} {
		if s, ok := p[key].(string); ok && s != "" {
			return s
		}
	}
	return "User"
}

// Equal compara perfiles en profundidad.
func (p Profile) Equal(other Profile) bool {
	return reflect.DeepEqual(p, other)
}
