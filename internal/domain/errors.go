package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Errores de dominio de la consola (sin dependencias externas).
var (
	ErrUnauthorized    = errors.New("sesión no autorizada")
	ErrBusy            = errors.New("another submission is in progress")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrNoSession       = errors.New("no hay sesión activa")
	ErrWorkspaceClosed = errors.New("el espacio de trabajo fue cerrado")
)

// GenericFailureMessage es el mensaje que se muestra cuando la API no envía
// message ni error, o cuando la falla es de red.
const GenericFailureMessage = "Request failed. Please retry."

// APIError falla tipada de la API remota: respuesta no 2xx con su status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: HTTP %d: %s", e.Status, e.Message)
}

// Is permite errors.Is(err, ErrUnauthorized) para cualquier 401.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// IsUnauthorized indica si err (o algo que envuelve) es una falla de autorización.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// MessageOf devuelve el texto a mostrar en línea para una falla.
// Fallas de red u otras no tipadas caen en GenericFailureMessage.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	if errors.Is(err, ErrBusy) {
		return "Another submission is in progress."
	}
	return GenericFailureMessage
}

// ValidationError envuelve errores de validación de formularios; su texto
// se muestra tal cual al usuario.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un ValidationError a partir de msg.
func NewValidationError(msg string) error {
	return &ValidationError{Err: errors.New(msg)}
}
