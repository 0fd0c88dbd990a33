package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-console/internal/application/console"
	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/internal/infrastructure/apiclient"
	"github.com/jhoicas/inventario-console/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/inventario-console/internal/interfaces/http"
	"github.com/jhoicas/inventario-console/internal/testsupport/fakeapi"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUsername = "nova"
	testEmail    = "nova@example.com"
	testPassword = "secret123"
)

// browser consola completa contra un API falso, con un jar de cookies que
// imita al navegador entre requests.
type browser struct {
	t        *testing.T
	api      *fakeapi.Server
	app      *fiber.App
	registry *console.Registry
	jar      map[string]*http.Cookie
}

// newBrowser arma la app igual que cmd/console: cookies cifradas, vistas
// embebidas, ErrorHandler y métricas.
func newBrowser(t *testing.T) *browser {
	t.Helper()
	api := fakeapi.New(t)
	log := logger.Nop()

	reg := prometheus.NewRegistry()
	collector := metrics.New(reg)
	client := apiclient.New(api.URL, apiclient.WithMetrics(collector))
	authorize := func(token string, onUnauthorized func()) ports.Transport {
		return apiclient.Authorize(client, token, onUnauthorized)
	}
	registry := console.NewRegistry(authorize, console.RegistryConfig{
		IdleTimeout: time.Minute,
		Panels:      console.Config{TTL: 30 * time.Second, Log: log},
		Gauge:       collector,
	})

	// Sin Immutable, como el default de fiber: los valores que sobreviven al
	// request (token, ids) tienen que copiarse en los handlers.
	app := fiber.New(fiber.Config{
		Views:                 apphttp.NewViews(),
		ErrorHandler:          apphttp.ErrorHandler(registry, log),
		DisableStartupMessage: true,
	})
	app.Use(encryptcookie.New(encryptcookie.Config{Key: encryptcookie.GenerateKey()}))
	apphttp.Router(app, apphttp.RouterDeps{
		Registry:   registry,
		AuthClient: client,
		Cookie:     apphttp.CookieOptions{MaxAge: 3600},
		Log:        log,
		Metrics:    metrics.Handler(reg),
	})

	return &browser{t: t, api: api, app: app, registry: registry, jar: make(map[string]*http.Cookie)}
}

func (b *browser) get(target string) *http.Response {
	b.t.Helper()
	return b.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (b *browser) post(target string, form url.Values) *http.Response {
	b.t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) do(req *http.Request) *http.Response {
	b.t.Helper()
	for _, ck := range b.jar {
		req.AddCookie(ck)
	}
	resp, err := b.app.Test(req, -1)
	require.NoError(b.t, err)
	b.t.Cleanup(func() { _ = resp.Body.Close() })

	for _, ck := range resp.Cookies() {
		if ck.MaxAge < 0 || (!ck.Expires.IsZero() && ck.Expires.Before(time.Now())) {
			delete(b.jar, ck.Name)
			continue
		}
		b.jar[ck.Name] = ck
	}
	return resp
}

// login registra al usuario de prueba en el API falso e inicia sesión.
func (b *browser) login() {
	b.t.Helper()
	b.api.RegisterUser(testUsername, testEmail, testPassword)
	resp := b.post("/login", url.Values{"email": {testEmail}, "password": {testPassword}})
	require.Equal(b.t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(b.t, "/dashboard", resp.Header.Get("Location"))
}

func (b *browser) hasCookie(name string) bool {
	_, ok := b.jar[name]
	return ok
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}
