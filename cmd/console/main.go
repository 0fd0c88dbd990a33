package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/inventario-console/internal/application/console"
	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/internal/infrastructure/apiclient"
	"github.com/jhoicas/inventario-console/internal/infrastructure/metrics"
	httpRouter "github.com/jhoicas/inventario-console/internal/interfaces/http"
	"github.com/jhoicas/inventario-console/pkg/config"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Msg("iniciando consola")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.New(reg)

	client := apiclient.New(cfg.API.BaseURL,
		apiclient.WithLogger(log),
		apiclient.WithMetrics(collector),
	)
	authorize := func(token string, onUnauthorized func()) ports.Transport {
		return apiclient.Authorize(client, token, onUnauthorized)
	}
	registry := console.NewRegistry(authorize, console.RegistryConfig{
		IdleTimeout: cfg.Cache.WorkspaceIdleTimeout,
		Panels:      console.Config{TTL: cfg.Cache.TTL, Log: log},
		Gauge:       collector,
	})

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go registry.Run(ctx, time.Minute)

	cookieKey := cfg.Cookie.Secret
	if cookieKey == "" {
		cookieKey = encryptcookie.GenerateKey()
		log.Warn().Msg("COOKIE_SECRET vacío: se generó una clave, las sesiones no sobreviven un reinicio")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Immutable:    true,
		Views:        httpRouter.NewViews(),
		ErrorHandler: httpRouter.ErrorHandler(registry, log.Named("http")),
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${status} ${method} ${path} ${latency}\n",
		Output: log.Zerolog(),
	}))
	app.Use(encryptcookie.New(encryptcookie.Config{Key: cookieKey}))

	deps := httpRouter.RouterDeps{
		Registry:   registry,
		AuthClient: client,
		Cookie: httpRouter.CookieOptions{
			MaxAge: cfg.Cookie.MaxAge(),
			Secure: cfg.App.IsProduction(),
		},
		Log: log,
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = metrics.Handler(reg)
	}
	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("consola detenida")
}
