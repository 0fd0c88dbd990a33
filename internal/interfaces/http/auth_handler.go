package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-console/internal/application/console"
	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// AuthHandler inicio de sesión, registro y cierre de sesión.
type AuthHandler struct {
	client   ports.Transport
	registry *console.Registry
	log      *logger.Logger
}

// NewAuthHandler construye el handler; client es el transporte sin token.
func NewAuthHandler(client ports.Transport, registry *console.Registry, log *logger.Logger) *AuthHandler {
	return &AuthHandler{client: client, registry: registry, log: log}
}

// LoginPage GET /login
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if GetStore(c).Read().Authenticated() {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}
	return h.render(c, fiber.StatusOK, "views/login", "Log in", dto.LoginForm{}, console.Status{})
}

// Login POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginForm
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}

	form := console.NewAuthForm(h.client, GetStore(c), h.log)
	result, err := form.Login(c.UserContext(), in)
	if err != nil {
		// la contraseña no se vuelve a mostrar
		return h.render(c, fiber.StatusUnprocessableEntity, "views/login", "Log in",
			dto.LoginForm{Email: in.Email}, form.TakeStatus())
	}

	h.log.Info().Str("user", result.User.DisplayName()).Msg("sesión iniciada")
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// RegisterPage GET /register
func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	if GetStore(c).Read().Authenticated() {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}
	return h.render(c, fiber.StatusOK, "views/register", "Register", dto.RegisterForm{}, console.Status{})
}

// Register POST /register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterForm
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}

	form := console.NewAuthForm(h.client, GetStore(c), h.log)
	result, err := form.Register(c.UserContext(), in)
	if err != nil {
		return h.render(c, fiber.StatusUnprocessableEntity, "views/register", "Register",
			dto.RegisterForm{Username: in.Username, Email: in.Email}, form.TakeStatus())
	}

	h.log.Info().Str("user", result.User.DisplayName()).Msg("usuario registrado")
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// Logout POST /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return endSession(c, h.registry)
}

func (h *AuthHandler) render(c *fiber.Ctx, status int, name, title string, form any, st console.Status) error {
	view := publicPage(title)
	view["Form"] = form
	view["Status"] = st
	return c.Status(status).Render(name, view, layout)
}
