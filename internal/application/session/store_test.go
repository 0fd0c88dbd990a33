package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-console/internal/application/session"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/internal/infrastructure/sessionstore"
)

func newStore(t *testing.T) (*session.Store, *sessionstore.MemoryStorage) {
	t.Helper()
	storage := sessionstore.NewMemoryStorage()
	return session.NewStore(storage), storage
}

func TestStore_WriteLuegoRead(t *testing.T) {
	store, _ := newStore(t)
	user := entity.Profile{"username": "nova", "email": "nova@example.com"}

	require.NoError(t, store.Write("tok-1", user))

	got := store.Read()
	assert.Equal(t, "tok-1", got.Token)
	assert.True(t, user.Equal(got.User))
	assert.True(t, got.Authenticated())
}

func TestStore_ClearDejaSesionVacia(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Write("tok-1", entity.Profile{"username": "nova"}))

	require.NoError(t, store.Clear())

	got := store.Read()
	assert.Empty(t, got.Token)
	assert.Nil(t, got.User)
	assert.False(t, got.Authenticated())
}

func TestStore_UsuarioCorruptoSeLeeComoNil(t *testing.T) {
	store, storage := newStore(t)
	require.NoError(t, storage.Set(session.KeyToken, "tok"))
	require.NoError(t, storage.Set(session.KeyUser, "{roto"))

	got := store.Read()
	assert.Equal(t, "tok", got.Token)
	assert.Nil(t, got.User)
}

func TestStore_SinNadaPersistido(t *testing.T) {
	store, _ := newStore(t)

	got := store.Read()
	assert.Empty(t, got.Token)
	assert.Nil(t, got.User)
}

func TestStore_SuscriptoresRecibenCambios(t *testing.T) {
	store, _ := newStore(t)
	var seen []session.Session
	unsubscribe := store.Subscribe(func(s session.Session) { seen = append(seen, s) })

	require.NoError(t, store.Write("tok", entity.Profile{"email": "a@b.com"}))
	require.NoError(t, store.Clear())
	unsubscribe()
	require.NoError(t, store.Write("otro", nil))

	require.Len(t, seen, 2)
	assert.Equal(t, "tok", seen[0].Token)
	assert.False(t, seen[1].Authenticated())
}
