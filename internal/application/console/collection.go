package console

import (
	"sync"
	"time"
)

// Collection caché en memoria de una colección del API. Nunca es la fuente de
// verdad: las mezclas locales (Prepend, ReplaceByID) son optimistas y el
// siguiente ReplaceAll las reconcilia.
type Collection[T any] struct {
	mu        sync.RWMutex
	items     []T
	fetchedAt time.Time
	idOf      func(T) string
}

// NewCollection crea una colección vacía; idOf extrae el id asignado por el API.
func NewCollection[T any](idOf func(T) string) *Collection[T] {
	return &Collection[T]{idOf: idOf}
}

// ReplaceAll reemplaza el contenido con una lectura completa del API.
func (c *Collection[T]) ReplaceAll(items []T, at time.Time) {
	cp := make([]T, len(items))
	copy(cp, items)
	c.mu.Lock()
	c.items = cp
	c.fetchedAt = at
	c.mu.Unlock()
}

// Prepend inserta item al inicio.
func (c *Collection[T]) Prepend(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, 0, len(c.items)+1)
	items = append(items, item)
	c.items = append(items, c.items...)
}

// ReplaceByID sustituye en su lugar la entrada con el mismo id; el orden y el
// resto de entradas no cambian. Devuelve false si no había ninguna.
func (c *Collection[T]) ReplaceByID(item T) bool {
	id := c.idOf(item)
	c.mu.Lock()
	defer c.mu.Unlock()
	found := false
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			c.items[i] = item
			found = true
		}
	}
	return found
}

// Find busca por id.
func (c *Collection[T]) Find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if c.idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Snapshot copia del contenido actual.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cp := make([]T, len(c.items))
	copy(cp, c.items)
	return cp
}

// Head primeras n entradas; n negativo equivale a 0.
func (c *Collection[T]) Head(n int) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if n < 0 {
		n = 0
	}
	if n > len(c.items) {
		n = len(c.items)
	}
	cp := make([]T, n)
	copy(cp, c.items[:n])
	return cp
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// FetchedAt momento de la última lectura completa (cero = nunca).
func (c *Collection[T]) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

// Stale indica si hay que volver a leer: nunca leída o más vieja que ttl.
func (c *Collection[T]) Stale(now time.Time, ttl time.Duration) bool {
	at := c.FetchedAt()
	return at.IsZero() || now.Sub(at) >= ttl
}
