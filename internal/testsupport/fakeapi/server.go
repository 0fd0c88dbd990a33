// Package fakeapi implementa en memoria el API REST de inventario para tests:
// emite tokens HS256, guarda proveedores, materias primas y movimientos, y
// permite inyectar fallas y revocar tokens.
package fakeapi

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"

	pkgjwt "github.com/jhoicas/inventario-console/pkg/jwt"
)

const (
	secret = "fakeapi-secret"
	issuer = "fakeapi"
)

type user struct {
	ID       string
	Username string
	Email    string
	Password string
}

func (u user) profile() fiber.Map {
	return fiber.Map{"_id": u.ID, "username": u.Username, "email": u.Email}
}

type supplier struct {
	ID          string `json:"_id"`
	Name        string `json:"SupplierName"`
	PhoneNumber string `json:"phoneNumber"`
}

type material struct {
	ID        string  `json:"_id"`
	Name      string  `json:"MaterialName"`
	Quantity  float64 `json:"Quantity"`
	Unit      string  `json:"Unit"`
	UnitPrice float64 `json:"UnitPrice"`
}

type movement struct {
	ID         string
	MaterialID string
	SupplierID string
	Quantity   int
}

type failure struct {
	status int
	body   fiber.Map
}

// Server API falso servido por httptest.
type Server struct {
	// URL base equivalente a API_BASE_URL (termina en /api).
	URL string

	srv *httptest.Server

	mu        sync.Mutex
	seq       map[string]int
	users     map[string]user
	suppliers []supplier
	materials []material
	stockIns  []movement
	stockOuts []movement
	revoked   map[string]bool
	failures  map[string]failure
	calls     map[string]int
}

// New arranca el servidor y lo cierra al terminar el test.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		seq:      make(map[string]int),
		users:    make(map[string]user),
		revoked:  make(map[string]bool),
		failures: make(map[string]failure),
		calls:    make(map[string]int),
	}
	s.srv = httptest.NewServer(adaptor.FiberApp(s.app()))
	s.URL = s.srv.URL + "/api"
	t.Cleanup(s.srv.Close)
	return s
}

func (s *Server) app() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	api := app.Group("/api", s.record)

	api.Post("/auth/register", s.register)
	api.Post("/auth/login", s.login)

	protected := api.Group("", s.requireToken)
	protected.Get("/suppliers", s.listSuppliers)
	protected.Post("/suppliers", s.createSupplier)
	protected.Get("/rawMaterial", s.listMaterials)
	protected.Post("/rawMaterial", s.createMaterial)
	protected.Put("/rawMaterial/:id", s.updateMaterial)
	protected.Get("/stockIn", s.listMovements(true))
	protected.Post("/stockIn", s.createMovement(true))
	protected.Get("/stockOut", s.listMovements(false))
	protected.Post("/stockOut", s.createMovement(false))
	return app
}

func callKey(method, path string) string {
	return method + " " + path
}

// record cuenta la llamada y aplica las fallas inyectadas.
func (s *Server) record(c *fiber.Ctx) error {
	path := strings.TrimPrefix(c.Path(), "/api")
	key := callKey(c.Method(), path)

	s.mu.Lock()
	s.calls[key]++
	f, failing := s.failures[key]
	s.mu.Unlock()

	if failing {
		if f.body == nil {
			return c.SendStatus(f.status)
		}
		return c.Status(f.status).JSON(f.body)
	}
	return c.Next()
}

func (s *Server) requireToken(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "No token provided"})
	}
	token := strings.TrimSpace(parts[1])
	if _, err := pkgjwt.Parse(secret, token); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}
	s.mu.Lock()
	revoked := s.revoked[token]
	s.mu.Unlock()
	if revoked {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Token expired"})
	}
	return c.Next()
}

func (s *Server) nextID(prefix string) string {
	s.seq[prefix]++
	return fmt.Sprintf("%s%d", prefix, s.seq[prefix])
}

// ─── Control desde los tests ─────────────────────────────────────────────────

// RegisterUser crea un usuario y devuelve un token válido para él.
func (s *Server) RegisterUser(username, email, password string) string {
	s.mu.Lock()
	u := user{ID: uuid.NewString(), Username: username, Email: email, Password: password}
	s.users[email] = u
	s.mu.Unlock()
	return s.issue(u)
}

// Token devuelve un token válido para un usuario nuevo.
func (s *Server) Token() string {
	return s.RegisterUser("tester", uuid.NewString()+"@example.com", "secret")
}

func (s *Server) issue(u user) string {
	tok, err := pkgjwt.Generate(secret, u.ID, u.Email, issuer, time.Hour)
	if err != nil {
		panic(err)
	}
	return tok
}

// Revoke hace que token reciba 401 en las rutas protegidas.
func (s *Server) Revoke(token string) {
	s.mu.Lock()
	s.revoked[token] = true
	s.mu.Unlock()
}

// Fail hace que method+path responda status con {"message": message}; message
// vacío = respuesta sin cuerpo. Persiste hasta ClearFailures.
func (s *Server) Fail(method, path string, status int, message string) {
	f := failure{status: status}
	if message != "" {
		f.body = fiber.Map{"message": message}
	}
	s.mu.Lock()
	s.failures[callKey(method, path)] = f
	s.mu.Unlock()
}

// ClearFailures elimina las fallas inyectadas.
func (s *Server) ClearFailures() {
	s.mu.Lock()
	s.failures = make(map[string]failure)
	s.mu.Unlock()
}

// Calls número de llamadas recibidas a method+path.
func (s *Server) Calls(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[callKey(method, path)]
}

// SeedSupplier crea un proveedor directamente y devuelve su id.
func (s *Server) SeedSupplier(name, phone string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	sup := supplier{ID: s.nextID("s"), Name: name, PhoneNumber: phone}
	s.suppliers = append([]supplier{sup}, s.suppliers...)
	return sup.ID
}

// SeedMaterial crea una materia prima directamente y devuelve su id.
func (s *Server) SeedMaterial(name string, quantity float64, unit string, price float64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := material{ID: s.nextID("m"), Name: name, Quantity: quantity, Unit: unit, UnitPrice: price}
	s.materials = append([]material{m}, s.materials...)
	return m.ID
}

// Material estado actual de una materia prima (false si no existe).
func (s *Server) Material(id string) (name string, quantity float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.materials {
		if m.ID == id {
			return m.Name, m.Quantity, true
		}
	}
	return "", 0, false
}
