package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-console/internal/application/console"
	"github.com/jhoicas/inventario-console/internal/application/session"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// Locals keys para la sesión del request en Fiber.
const (
	LocalStore     = "session_store"
	LocalWorkspace = "workspace"
	LocalUser      = "user"
)

// SessionMiddleware adjunta a cada request un session.Store sobre sus cookies.
func SessionMiddleware(opts CookieOptions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalStore, session.NewStore(NewCookieStorage(c, opts)))
		return c.Next()
	}
}

// RequireSession guarda de las páginas protegidas: sin token redirige a
// /login; con token adjunta el Workspace de la sesión y el perfil.
func RequireSession(registry *console.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := GetStore(c).Read()
		if !sess.Authenticated() {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		c.Locals(LocalWorkspace, registry.Get(sess.Token))
		c.Locals(LocalUser, sess.User)
		return c.Next()
	}
}

// GetStore devuelve el store del request (después de SessionMiddleware).
func GetStore(c *fiber.Ctx) *session.Store {
	s, _ := c.Locals(LocalStore).(*session.Store)
	return s
}

// GetWorkspace devuelve el Workspace del request (después de RequireSession).
func GetWorkspace(c *fiber.Ctx) (*console.Workspace, error) {
	ws, ok := c.Locals(LocalWorkspace).(*console.Workspace)
	if !ok || ws == nil {
		return nil, domain.ErrNoSession
	}
	return ws, nil
}

// GetUser devuelve el perfil de la sesión (nil si no hay).
func GetUser(c *fiber.Ctx) entity.Profile {
	u, _ := c.Locals(LocalUser).(entity.Profile)
	return u
}

// endSession limpia las cookies, desaloja el espacio de trabajo y vuelve a /login.
func endSession(c *fiber.Ctx, registry *console.Registry) error {
	store := GetStore(c)
	if store != nil {
		if token := store.Read().Token; token != "" {
			registry.Evict(token)
		}
		if err := store.Clear(); err != nil {
			return err
		}
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}
