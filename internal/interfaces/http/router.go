package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/inventario-console/internal/application/console"
	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Registry   *console.Registry
	AuthClient ports.Transport // transporte sin token para /auth/*
	Cookie     CookieOptions
	Log        *logger.Logger
	Metrics    nethttp.Handler // nil = sin /metrics
}

// Router registra las rutas de la consola.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "workspaces": deps.Registry.Len()})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	web := app.Group("/", SessionMiddleware(deps.Cookie))

	// Público
	dashboardHandler := NewDashboardHandler(deps.Log.Named("dashboard"))
	web.Get("/", dashboardHandler.Index)
	web.Get("/vault", dashboardHandler.Vault)

	authHandler := NewAuthHandler(deps.AuthClient, deps.Registry, deps.Log.Named("auth"))
	web.Get("/login", authHandler.LoginPage)
	web.Post("/login", authHandler.Login)
	web.Get("/register", authHandler.RegisterPage)
	web.Post("/register", authHandler.Register)
	web.Post("/logout", authHandler.Logout)

	// Rutas protegidas (requieren sesión)
	protected := web.Group("/dashboard", RequireSession(deps.Registry))
	protected.Get("/", dashboardHandler.Overview)

	supplierHandler := NewSupplierHandler(deps.Log.Named("suppliers"))
	protected.Get("/suppliers", supplierHandler.List)
	protected.Post("/suppliers", supplierHandler.Create)

	materialHandler := NewMaterialHandler(deps.Log.Named("materials"))
	protected.Get("/materials", materialHandler.List)
	protected.Post("/materials", materialHandler.Create)
	protected.Post("/materials/update", materialHandler.Update)

	movementHandler := NewMovementHandler(deps.Log.Named("movements"))
	protected.Get("/movements", movementHandler.List)
	protected.Post("/movements/in", movementHandler.StockIn)
	protected.Post("/movements/out", movementHandler.StockOut)
}
