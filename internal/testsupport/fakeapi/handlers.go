package fakeapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type authRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) register(c *fiber.Ctx) error {
	var req authRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "All fields are required"})
	}
	s.mu.Lock()
	if _, taken := s.users[req.Email]; taken {
		s.mu.Unlock()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Email already registered"})
	}
	u := user{ID: uuid.NewString(), Username: req.Username, Email: req.Email, Password: req.Password}
	s.users[req.Email] = u
	s.mu.Unlock()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"token":   s.issue(u),
		"user":    u.profile(),
	})
}

func (s *Server) login(c *fiber.Ctx) error {
	var req authRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Malformed body"})
	}
	s.mu.Lock()
	u, ok := s.users[req.Email]
	s.mu.Unlock()
	if !ok || u.Password != req.Password {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
	}
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   s.issue(u),
		"user":    u.profile(),
	})
}

// ─── Proveedores ─────────────────────────────────────────────────────────────

func (s *Server) listSuppliers(c *fiber.Ctx) error {
	s.mu.Lock()
	out := append([]supplier{}, s.suppliers...)
	s.mu.Unlock()
	return c.JSON(out)
}

func (s *Server) createSupplier(c *fiber.Ctx) error {
	var req supplier
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "SupplierName is required"})
	}
	s.mu.Lock()
	req.ID = s.nextID("s")
	s.suppliers = append([]supplier{req}, s.suppliers...)
	s.mu.Unlock()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Supplier created", "supplier": req})
}

// ─── Materias primas ─────────────────────────────────────────────────────────

func (s *Server) listMaterials(c *fiber.Ctx) error {
	s.mu.Lock()
	out := append([]material{}, s.materials...)
	s.mu.Unlock()
	return c.JSON(out)
}

func (s *Server) createMaterial(c *fiber.Ctx) error {
	var req material
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "MaterialName is required"})
	}
	if req.Quantity < 0 || req.UnitPrice < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Quantity and UnitPrice must be positive"})
	}
	s.mu.Lock()
	req.ID = s.nextID("m")
	s.materials = append([]material{req}, s.materials...)
	s.mu.Unlock()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"rawMaterial": req})
}

func (s *Server) updateMaterial(c *fiber.Ctx) error {
	var req material
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Malformed body"})
	}
	id := c.Params("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.materials {
		if s.materials[i].ID == id {
			req.ID = id
			s.materials[i] = req
			return c.JSON(fiber.Map{"message": "Raw material updated", "rawMaterial": req})
		}
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Raw material not found"})
}

// ─── Movimientos ─────────────────────────────────────────────────────────────

type movementRequest struct {
	MaterialID       string `json:"materialId"`
	SupplierID       string `json:"supplierId"`
	StockInQuantity  int    `json:"stockInQuantity"`
	StockOutQuantity int    `json:"stockOutQuantity"`
}

func quantityKey(in bool) string {
	if in {
		return "stockInQuantity"
	}
	return "stockOutQuantity"
}

// listMovements devuelve las referencias pobladas, como un populate de Mongo.
func (s *Server) listMovements(in bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		list := s.stockOuts
		if in {
			list = s.stockIns
		}
		out := make([]fiber.Map, 0, len(list))
		for _, mv := range list {
			out = append(out, fiber.Map{
				"_id":            mv.ID,
				"materialId":     s.populateMaterial(mv.MaterialID),
				"supplierId":     s.populateSupplier(mv.SupplierID),
				quantityKey(in): mv.Quantity,
			})
		}
		return c.JSON(out)
	}
}

func (s *Server) populateMaterial(id string) any {
	for _, m := range s.materials {
		if m.ID == id {
			return fiber.Map{"_id": m.ID, "MaterialName": m.Name}
		}
	}
	return id
}

func (s *Server) populateSupplier(id string) any {
	for _, sup := range s.suppliers {
		if sup.ID == id {
			return fiber.Map{"_id": sup.ID, "SupplierName": sup.Name}
		}
	}
	return id
}

func (s *Server) createMovement(in bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req movementRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Malformed body"})
		}
		qty := req.StockOutQuantity
		if in {
			qty = req.StockInQuantity
		}
		if qty <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Quantity must be positive"})
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		idx := -1
		for i := range s.materials {
			if s.materials[i].ID == req.MaterialID {
				idx = i
			}
		}
		if idx < 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Material not found"})
		}
		if !s.hasSupplier(req.SupplierID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Supplier not found"})
		}

		key := "stockOut"
		if in {
			key = "stockIn"
			s.materials[idx].Quantity += float64(qty)
		} else {
			if s.materials[idx].Quantity < float64(qty) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Insufficient stock"})
			}
			s.materials[idx].Quantity -= float64(qty)
		}

		mv := movement{ID: s.nextID(key), MaterialID: req.MaterialID, SupplierID: req.SupplierID, Quantity: qty}
		if in {
			s.stockIns = append([]movement{mv}, s.stockIns...)
		} else {
			s.stockOuts = append([]movement{mv}, s.stockOuts...)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{key: fiber.Map{
			"_id":            mv.ID,
			"materialId":     mv.MaterialID,
			"supplierId":     mv.SupplierID,
			quantityKey(in): mv.Quantity,
		}})
	}
}

func (s *Server) hasSupplier(id string) bool {
	for _, sup := range s.suppliers {
		if sup.ID == id {
			return true
		}
	}
	return false
}
