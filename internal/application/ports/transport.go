package ports

import (
	"context"
	"encoding/json"
)

// Request describe una llamada al API de inventario. Headers puede ser nil;
// Body se serializa como JSON cuando no es nil.
type Request struct {
	Method  string
	Headers map[string]string
	Body    any
}

// Transport define el puerto de salida hacia el API REST de inventario.
// Cualquier adaptador (cliente HTTP real, cliente autorizado, fake de tests)
// debe implementar esta interfaz.
type Transport interface {
	// Do ejecuta la llamada contra path (relativo a la URL base) y devuelve el
	// cuerpo JSON de una respuesta 2xx; nil cuando el cuerpo está vacío o no es JSON.
	// Las respuestas no 2xx llegan como *domain.APIError.
	Do(ctx context.Context, path string, req Request) (json.RawMessage, error)
}

// TransportFunc adapta una función a Transport.
type TransportFunc func(ctx context.Context, path string, req Request) (json.RawMessage, error)

func (f TransportFunc) Do(ctx context.Context, path string, req Request) (json.RawMessage, error) {
	return f(ctx, path, req)
}
