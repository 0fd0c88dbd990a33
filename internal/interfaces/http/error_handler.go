package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-console/internal/application/console"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// ErrorHandler último recurso de la app: una sesión terminada limpia las
// cookies y vuelve a /login; el resto se muestra como página de error.
func ErrorHandler(registry *console.Registry, log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if domain.IsUnauthorized(err) || errors.Is(err, domain.ErrNoSession) || errors.Is(err, domain.ErrWorkspaceClosed) {
			log.Info().Str("path", c.Path()).Msg("sesión terminada, redirigiendo a /login")
			return endSession(c, registry)
		}

		code := fiber.StatusInternalServerError
		message := domain.GenericFailureMessage
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			if code == fiber.StatusNotFound {
				message = "Page not found."
			}
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Int("status", code).Msg("error no controlado")
		} else {
			log.Debug().Err(err).Str("path", c.Path()).Int("status", code).Msg("request rechazado")
		}

		view := publicPage("Error")
		view["Code"] = code
		view["Message"] = message
		if rerr := c.Status(code).Render("views/error", view, layout); rerr != nil {
			return c.Status(code).SendString(message)
		}
		return nil
	}
}
