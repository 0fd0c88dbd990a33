package dto

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// LoginForm formulario de inicio de sesión (POST /auth/login).
type LoginForm struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Normalize recorta espacios; la contraseña se envía tal cual.
func (f LoginForm) Normalize() LoginForm {
	f.Email = strings.TrimSpace(f.Email)
	return f
}

func (f *LoginForm) Validate() error {
	return asValidationError(validation.ValidateStruct(
		f,
		validation.Field(&f.Email, validation.Required),
		validation.Field(&f.Password, validation.Required),
	))
}

// RegisterForm formulario de registro (POST /auth/register).
type RegisterForm struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

func (f RegisterForm) Normalize() RegisterForm {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	return f
}

func (f *RegisterForm) Validate() error {
	return asValidationError(validation.ValidateStruct(
		f,
		validation.Field(&f.Username, validation.Required),
		validation.Field(&f.Email, validation.Required, is.Email),
		validation.Field(&f.Password, validation.Required),
	))
}

// AuthResult respuesta de /auth/login y /auth/register.
type AuthResult struct {
	Token   string         `json:"token"`
	User    entity.Profile `json:"user"`
	Message string         `json:"message"`
}
