package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la consola (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	API     APIConfig
	HTTP    HTTPConfig
	Cookie  CookieConfig
	Cache   CacheConfig
	Metrics MetricsConfig
	CLI     CLIConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// IsProduction indica si las cookies deben marcarse Secure.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// APIConfig dirección base del API de inventario (todas las rutas son relativas a ella).
type APIConfig struct {
	BaseURL string
}

// HTTPConfig configuración del servidor HTTP de la consola.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CookieConfig cookies cifradas donde vive la sesión del navegador.
// Secret vacío = se genera una clave al arrancar (las sesiones no sobreviven reinicios).
type CookieConfig struct {
	Secret     string
	MaxAgeDays int
}

// MaxAge devuelve la duración de la cookie en segundos.
func (c CookieConfig) MaxAge() int {
	return c.MaxAgeDays * 24 * 60 * 60
}

// CacheConfig ventana de frescura de las colecciones y expiración de espacios de trabajo.
type CacheConfig struct {
	TTL                  time.Duration
	WorkspaceIdleTimeout time.Duration
}

// MetricsConfig exposición de /metrics.
type MetricsConfig struct {
	Enabled bool
}

// CLIConfig opciones de invctl.
type CLIConfig struct {
	SessionFile string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, HTTP_PORT, COOKIE_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return build(v)
}

func build(v *viper.Viper) (*Config, error) {
	ttl, err := getDuration(v, "CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	idle, err := getDuration(v, "WORKSPACE_IDLE_TIMEOUT", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventory-console"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getString(v, "API_BASE_URL", "http://localhost:5000/api"), "/"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		Cookie: CookieConfig{
			Secret:     getString(v, "COOKIE_SECRET", ""),
			MaxAgeDays: getInt(v, "COOKIE_MAX_AGE_DAYS", 30),
		},
		Cache: CacheConfig{
			TTL:                  ttl,
			WorkspaceIdleTimeout: idle,
		},
		Metrics: MetricsConfig{
			Enabled: getBool(v, "METRICS_ENABLED", true),
		},
		CLI: CLIConfig{
			SessionFile: expandHome(getString(v, "SESSION_FILE", "~/.invctl/session.json")),
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("config: API_BASE_URL vacío")
	}
	if cfg.HTTP.Port <= 0 {
		return nil, fmt.Errorf("config: HTTP_PORT inválido: %d", cfg.HTTP.Port)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}

// getDuration acepta "45s", "10m" o un entero en segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) (time.Duration, error) {
	if !v.IsSet(key) {
		return def, nil
	}
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s inválido %q: %w", key, raw, err)
	}
	return d, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
