package http

import (
	"embed"
	"html/template"
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-console/internal/application/console"
	"github.com/jhoicas/inventario-console/pkg/numfmt"
)

//go:embed views
var viewsFS embed.FS

const layout = "views/layouts/main"

// navItem entrada del menú de las páginas protegidas.
type navItem struct {
	Href  string
	Label string
}

var navItems = []navItem{
	{Href: "/dashboard", Label: "Overview"},
	{Href: "/dashboard/suppliers", Label: "Suppliers"},
	{Href: "/dashboard/materials", Label: "Materials"},
	{Href: "/dashboard/movements", Label: "Movements"},
}

// NewViews motor de plantillas con las vistas embebidas en el binario.
func NewViews() *html.Engine {
	engine := html.NewFileSystem(nethttp.FS(viewsFS), ".html")
	engine.AddFuncMap(template.FuncMap{
		// activeClass resalta la entrada del menú de la página actual
		"activeClass": func(current, href string) string {
			if current == href {
				return "nav-active"
			}
			return ""
		},
		"statusClass": func(s console.Status) string {
			if s.IsError() {
				return "status-error"
			}
			return "status-success"
		},
		"qty": numfmt.Quantity,
		"money": func(d decimal.Decimal) string {
			return numfmt.Money(d)
		},
	})
	return engine
}

// page datos del shell protegido para la página actual.
func page(c *fiber.Ctx, title, subtitle string) fiber.Map {
	return fiber.Map{
		"Title":     title,
		"Subtitle":  subtitle,
		"Path":      c.Path(),
		"Protected": true,
		"Nav":       navItems,
		"User":      GetUser(c).DisplayName(),
	}
}

// publicPage datos de las páginas sin sesión (landing, login, registro, error).
func publicPage(title string) fiber.Map {
	return fiber.Map{"Title": title, "Protected": false}
}
