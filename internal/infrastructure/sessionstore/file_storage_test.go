package sessionstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-console/internal/infrastructure/sessionstore"
)

func TestFileStorage_SobreviveNuevaInstancia(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	first := sessionstore.NewFileStorage(path)
	require.NoError(t, first.Set("token", "abc"))
	require.NoError(t, first.Set("user", `{"username":"nova"}`))

	second := sessionstore.NewFileStorage(path)
	token, ok := second.Get("token")
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStorage_DeleteYArchivoCorrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	fs := sessionstore.NewFileStorage(path)

	require.NoError(t, fs.Set("token", "abc"))
	require.NoError(t, fs.Delete("token"))
	_, ok := fs.Get("token")
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte("{no es json"), 0o600))
	_, ok = fs.Get("token")
	assert.False(t, ok, "un archivo corrupto se lee como vacío")
	require.NoError(t, fs.Set("token", "nuevo"))
	token, _ := fs.Get("token")
	assert.Equal(t, "nuevo", token)
}

func TestMemoryStorage_GetSetDelete(t *testing.T) {
	m := sessionstore.NewMemoryStorage()
	_, ok := m.Get("token")
	assert.False(t, ok)

	require.NoError(t, m.Set("token", "t"))
	v, ok := m.Get("token")
	assert.True(t, ok)
	assert.Equal(t, "t", v)

	require.NoError(t, m.Delete("token"))
	_, ok = m.Get("token")
	assert.False(t, ok)
}
