package console

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/jhoicas/inventario-console/pkg/logger"
)

// Gauge recibe el número de espacios de trabajo vivos (métricas).
type Gauge interface {
	SetWorkspaces(n int)
}

// RegistryConfig parámetros del registro.
type RegistryConfig struct {
	IdleTimeout time.Duration
	Panels      Config
	Gauge       Gauge
}

// Registry asocia cada token de sesión con su Workspace. Las claves son el
// hash del token; el token en claro solo vive en el transporte autorizado.
type Registry struct {
	authorize Authorizer
	cfg       RegistryConfig
	log       *logger.Logger

	mu    sync.Mutex
	items map[string]*Workspace
}

// NewRegistry crea un registro vacío.
func NewRegistry(authorize Authorizer, cfg RegistryConfig) *Registry {
	cfg.Panels = cfg.Panels.withDefaults()
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 30 * time.Minute
	}
	return &Registry{
		authorize: authorize,
		cfg:       cfg,
		log:       cfg.Panels.Log.Named("registry"),
		items:     make(map[string]*Workspace),
	}
}

func keyOf(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Get devuelve el espacio de trabajo de token, creándolo en la primera carga
// protegida. Uno cerrado por 401 se reemplaza.
func (r *Registry) Get(token string) *Workspace {
	key := keyOf(token)
	r.mu.Lock()
	defer r.mu.Unlock()

	if w, ok := r.items[key]; ok && !w.Closed() {
		w.Touch()
		return w
	}
	w := NewWorkspace(r.authorize, token, r.cfg.Panels)
	w.OnUnauthorized(func() { r.evictIf(key, w) })
	r.items[key] = w
	r.publish()
	r.log.Debug().Int("workspaces", len(r.items)).Msg("espacio de trabajo creado")
	return w
}

// Evict cierra y elimina el espacio de trabajo de token (logout).
func (r *Registry) Evict(token string) {
	key := keyOf(token)
	r.mu.Lock()
	w, ok := r.items[key]
	delete(r.items, key)
	r.publish()
	r.mu.Unlock()
	if ok {
		w.Logout()
	}
}

func (r *Registry) evictIf(key string, w *Workspace) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.items[key]; ok && current == w {
		delete(r.items, key)
		r.publish()
	}
}

// Len número de espacios de trabajo vivos.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Sweep elimina los espacios de trabajo cerrados o inactivos desde hace más
// de IdleTimeout. Devuelve cuántos eliminó.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for key, w := range r.items {
		if w.Closed() || now.Sub(w.LastUsed()) > r.cfg.IdleTimeout {
			w.Logout()
			delete(r.items, key)
			removed++
		}
	}
	if removed > 0 {
		r.publish()
		r.log.Debug().Int("removed", removed).Int("workspaces", len(r.items)).Msg("barrido de espacios de trabajo")
	}
	return removed
}

// Run barre periódicamente hasta que ctx se cancela.
func (r *Registry) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(r.cfg.Panels.Now())
		}
	}
}

// publish debe llamarse con r.mu tomado.
func (r *Registry) publish() {
	if r.cfg.Gauge != nil {
		r.cfg.Gauge.SetWorkspaces(len(r.items))
	}
}
