package console_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-console/internal/application/console"
	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/internal/application/session"
	"github.com/jhoicas/inventario-console/internal/infrastructure/apiclient"
	"github.com/jhoicas/inventario-console/internal/infrastructure/sessionstore"
	"github.com/jhoicas/inventario-console/internal/testsupport/fakeapi"
)

func newAuthForm(t *testing.T) (*console.AuthForm, *session.Store, *fakeapi.Server) {
	t.Helper()
	api := fakeapi.New(t)
	store := session.NewStore(sessionstore.NewMemoryStorage())
	return console.NewAuthForm(apiclient.New(api.URL), store, nil), store, api
}

func TestAuthForm_LoginGuardaSesion(t *testing.T) {
	form, store, api := newAuthForm(t)
	api.RegisterUser("nova", "nova@example.com", "secret")

	result, err := form.Login(ctx, dto.LoginForm{Email: " nova@example.com ", Password: "secret"})

	require.NoError(t, err)
	sess := store.Read()
	assert.Equal(t, result.Token, sess.Token)
	assert.Equal(t, "nova", sess.User.DisplayName())
	assert.Equal(t, console.Status{Kind: console.StatusSuccess, Message: "Login successful"}, form.TakeStatus())
}

func TestAuthForm_Login401EsErrorEnLinea(t *testing.T) {
	form, store, api := newAuthForm(t)
	api.RegisterUser("nova", "nova@example.com", "secret")

	_, err := form.Login(ctx, dto.LoginForm{Email: "nova@example.com", Password: "mal"})

	require.Error(t, err)
	assert.Equal(t, console.Status{Kind: console.StatusError, Message: "Invalid credentials"}, form.TakeStatus())
	assert.False(t, store.Read().Authenticated())
}

func TestAuthForm_RegisterYDuplicado(t *testing.T) {
	form, store, _ := newAuthForm(t)
	in := dto.RegisterForm{Username: " nova ", Email: "nova@example.com", Password: "secret"}

	_, err := form.Register(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "nova", store.Read().User.DisplayName())
	form.TakeStatus()

	_, err = form.Register(ctx, in)
	require.Error(t, err)
	assert.Equal(t, "Email already registered", form.TakeStatus().Message)
}

func TestAuthForm_SinMensajeUsaWelcome(t *testing.T) {
	store := session.NewStore(sessionstore.NewMemoryStorage())
	transport := ports.TransportFunc(func(context.Context, string, ports.Request) (json.RawMessage, error) {
		return json.RawMessage(`{"token":"t-1","user":{"email":"a@b.com"}}`), nil
	})
	form := console.NewAuthForm(transport, store, nil)

	_, err := form.Login(ctx, dto.LoginForm{Email: "a@b.com", Password: "x"})

	require.NoError(t, err)
	assert.Equal(t, "Welcome.", form.TakeStatus().Message)
	assert.Equal(t, "a@b.com", store.Read().User.DisplayName())
}

func TestAuthForm_RespuestaSinTokenNoGuarda(t *testing.T) {
	store := session.NewStore(sessionstore.NewMemoryStorage())
	transport := ports.TransportFunc(func(context.Context, string, ports.Request) (json.RawMessage, error) {
		return nil, nil
	})
	form := console.NewAuthForm(transport, store, nil)

	_, err := form.Login(ctx, dto.LoginForm{Email: "a@b.com", Password: "x"})

	require.Error(t, err)
	assert.True(t, form.TakeStatus().IsError())
	assert.False(t, store.Read().Authenticated())
}
