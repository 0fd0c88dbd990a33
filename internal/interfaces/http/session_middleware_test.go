package http_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
	apphttp "github.com/jhoicas/inventario-console/internal/interfaces/http"
)

// buildSessionApp app mínima con SessionMiddleware y rutas que usan el store.
func buildSessionApp() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(apphttp.SessionMiddleware(apphttp.CookieOptions{MaxAge: 60}))

	app.Get("/write", func(c *fiber.Ctx) error {
		store := apphttp.GetStore(c)
		if err := store.Write("tok-1", entity.Profile{"username": "nova"}); err != nil {
			return err
		}
		// la escritura se ve en el mismo request
		return c.SendString(store.Read().Token)
	})
	app.Get("/clear", func(c *fiber.Ctx) error {
		store := apphttp.GetStore(c)
		if err := store.Clear(); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"authenticated": store.Read().Authenticated()})
	})
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(apphttp.GetStore(c).Read().User.DisplayName())
	})
	return app
}

func cookieNamed(resp *http.Response, name string) *http.Cookie {
	for _, ck := range resp.Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestCookieStorage_WriteEsVisibleEnElMismoRequest(t *testing.T) {
	app := buildSessionApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/write", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "tok-1", readBody(t, resp))
	token := cookieNamed(resp, "token")
	require.NotNil(t, token)
	assert.Equal(t, "tok-1", token.Value)
	assert.True(t, token.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, token.SameSite)
	assert.Equal(t, 60, token.MaxAge)
	assert.NotNil(t, cookieNamed(resp, "user"))
}

func TestCookieStorage_ClearBorraAmbasCookies(t *testing.T) {
	app := buildSessionApp()
	req := httptest.NewRequest(http.MethodGet, "/clear", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "tok-1"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.JSONEq(t, `{"authenticated":false}`, readBody(t, resp))
	for _, name := range []string{"token", "user"} {
		ck := cookieNamed(resp, name)
		require.NotNil(t, ck, name)
		assert.Empty(t, ck.Value, name)
	}
}

func TestCookieStorage_UsuarioMalformadoSeLeeComoAusente(t *testing.T) {
	app := buildSessionApp()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "tok-1"})
	req.AddCookie(&http.Cookie{Name: "user", Value: "no-es-json"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "User", readBody(t, resp))
}

func TestCookieStorage_TokenLeidoNoCambiaConRequestsPosteriores(t *testing.T) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(apphttp.SessionMiddleware(apphttp.CookieOptions{MaxAge: 60}))
	var kept []string
	app.Get("/keep", func(c *fiber.Ctx) error {
		kept = append(kept, apphttp.GetStore(c).Read().Token)
		return c.SendStatus(fiber.StatusNoContent)
	})

	var sent []string
	for i := 0; i < 50; i++ {
		tok := fmt.Sprintf("tok-%04d-abcdefghijklmnop", i)
		sent = append(sent, tok)
		req := httptest.NewRequest(http.MethodGet, "/keep", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: tok})
		resp, err := app.Test(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	assert.Equal(t, sent, kept)
}
