package console_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/inventario-console/internal/application/console"
	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/internal/infrastructure/apiclient"
	"github.com/jhoicas/inventario-console/internal/testsupport/fakeapi"
)

// fakeClock reloj controlable para la ventana de frescura.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

const testTTL = 30 * time.Second

// authorizerFor construye el Authorizer real (apiclient.Authorize) contra el API falso.
func authorizerFor(api *fakeapi.Server) console.Authorizer {
	client := apiclient.New(api.URL)
	return func(token string, onUnauthorized func()) ports.Transport {
		return apiclient.Authorize(client, token, onUnauthorized)
	}
}

// fixture espacio de trabajo autenticado contra un API falso.
type fixture struct {
	api   *fakeapi.Server
	token string
	clock *fakeClock
	ws    *console.Workspace
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	api := fakeapi.New(t)
	clock := newClock()
	token := api.Token()
	ws := console.NewWorkspace(authorizerFor(api), token, console.Config{TTL: testTTL, Now: clock.Now})
	return &fixture{api: api, token: token, clock: clock, ws: ws}
}

// stubAuthorizer Authorizer sobre una función, sin red.
func stubAuthorizer(fn func(ctx context.Context, path string, req ports.Request) (json.RawMessage, error)) console.Authorizer {
	return func(_ string, _ func()) ports.Transport {
		return ports.TransportFunc(fn)
	}
}
