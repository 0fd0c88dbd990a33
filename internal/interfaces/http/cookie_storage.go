package http

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/inventario-console/internal/application/session"
)

// Verificar en tiempo de compilación que CookieStorage implementa session.Storage.
var _ session.Storage = (*CookieStorage)(nil)

// CookieOptions atributos de las cookies de sesión. El cifrado lo hace el
// middleware encryptcookie registrado en la app.
type CookieOptions struct {
	MaxAge int  // segundos
	Secure bool // solo HTTPS (production)
}

// CookieStorage almacenamiento de sesión en cookies del navegador. Los valores
// viajan con escape de URL; las escrituras se ven en el mismo request gracias
// a un overlay local.
type CookieStorage struct {
	c       *fiber.Ctx
	opts    CookieOptions
	overlay map[string]*string // nil = borrada en este request
}

// NewCookieStorage crea el almacenamiento para el request c.
func NewCookieStorage(c *fiber.Ctx, opts CookieOptions) *CookieStorage {
	return &CookieStorage{c: c, opts: opts, overlay: make(map[string]*string)}
}

func (s *CookieStorage) Get(key string) (string, bool) {
	if v, ok := s.overlay[key]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	// Copia: c.Cookies apunta al buffer de fasthttp, que se reutiliza entre
	// requests, y el token queda guardado en el registro de workspaces.
	raw := utils.CopyString(s.c.Cookies(key))
	if raw == "" {
		return "", false
	}
	v, err := url.QueryUnescape(raw)
	if err != nil {
		return "", false
	}
	return v, true
}

func (s *CookieStorage) Set(key, value string) error {
	s.c.Cookie(&fiber.Cookie{
		Name:     key,
		Value:    url.QueryEscape(value), // el perfil es JSON: comillas y comas no son válidas en una cookie
		Path:     "/",
		MaxAge:   s.opts.MaxAge,
		Secure:   s.opts.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	s.overlay[key] = &value
	return nil
}

func (s *CookieStorage) Delete(key string) error {
	s.c.Cookie(&fiber.Cookie{
		Name:     key,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   s.opts.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	s.overlay[key] = nil
	return nil
}
