package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/internal/application/session"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// AuthForm inicio de sesión y registro. Usa el transporte sin token, así que
// un 401 del API se muestra en línea como cualquier otra falla.
type AuthForm struct {
	panel
	transport ports.Transport
	store     *session.Store
}

// NewAuthForm crea el formulario sobre store.
func NewAuthForm(transport ports.Transport, store *session.Store, log *logger.Logger) *AuthForm {
	if log == nil {
		log = logger.Nop()
	}
	a := &AuthForm{transport: transport, store: store}
	a.init("auth", log)
	return a
}

// Login envía POST /auth/login y guarda la sesión.
func (a *AuthForm) Login(ctx context.Context, form dto.LoginForm) (*dto.AuthResult, error) {
	form = form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, a.fail("login", err)
	}
	return a.submit(ctx, "login", "/auth/login", map[string]string{
		"email":    form.Email,
		"password": form.Password,
	})
}

// Register envía POST /auth/register y guarda la sesión.
func (a *AuthForm) Register(ctx context.Context, form dto.RegisterForm) (*dto.AuthResult, error) {
	form = form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, a.fail("registro", err)
	}
	return a.submit(ctx, "registro", "/auth/register", map[string]string{
		"username": form.Username,
		"email":    form.Email,
		"password": form.Password,
	})
}

func (a *AuthForm) submit(ctx context.Context, op, path string, body map[string]string) (*dto.AuthResult, error) {
	if err := a.begin(); err != nil {
		return nil, err
	}
	defer a.end()

	data, err := a.transport.Do(ctx, path, ports.Request{Method: http.MethodPost, Body: body})
	if err != nil {
		return nil, a.authFail(op, err)
	}
	var result dto.AuthResult
	if data == nil || json.Unmarshal(data, &result) != nil || result.Token == "" {
		return nil, a.authFail(op, errors.New("respuesta de autenticación sin token"))
	}
	if err := a.store.Write(result.Token, result.User); err != nil {
		return nil, a.authFail(op, err)
	}

	msg := result.Message
	if msg == "" {
		msg = "Welcome."
	}
	a.succeed(ctx, msg)
	return &result, nil
}

// authFail a diferencia de los paneles, un 401 aquí es un error en línea.
func (a *AuthForm) authFail(op string, err error) error {
	a.log.Warn().Err(err).Str("op", op).Msg("autenticación fallida")
	a.setStatus(Status{Kind: StatusError, Message: domain.MessageOf(err)})
	return fmt.Errorf("auth: %s: %w", op, err)
}
