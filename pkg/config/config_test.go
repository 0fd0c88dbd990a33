package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-console/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	chdir(t, t.TempDir()) // sin .env en el directorio
	for _, key := range []string{"APP_ENV", "API_BASE_URL", "HTTP_PORT", "CACHE_TTL", "WORKSPACE_IDLE_TIMEOUT", "METRICS_ENABLED", "COOKIE_SECRET"} {
		t.Setenv(key, "")
	}
	t.Setenv("SESSION_FILE", "/tmp/invctl.json")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "http://localhost:5000/api", cfg.API.BaseURL)
	assert.Equal(t, "0.0.0.0:3000", cfg.HTTP.Addr())
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 30*time.Minute, cfg.Cache.WorkspaceIdleTimeout)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 30*24*60*60, cfg.Cookie.MaxAge())
	assert.Equal(t, "/tmp/invctl.json", cfg.CLI.SessionFile)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("API_BASE_URL", "https://inv.example.com/api/")
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("CACHE_TTL", "5")
	t.Setenv("WORKSPACE_IDLE_TIMEOUT", "2m")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, "https://inv.example.com/api", cfg.API.BaseURL, "se recorta la barra final")
	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 2*time.Minute, cfg.Cache.WorkspaceIdleTimeout)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_DuracionInvalida(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CACHE_TTL", "pronto")

	_, err := config.Load()
	assert.Error(t, err)
}

// chdir cambia el directorio de trabajo durante el test y lo restaura al terminar.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
