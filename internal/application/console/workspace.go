package console

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// Authorizer envuelve el transporte base con el token bearer e invoca
// onUnauthorized cuando una llamada autenticada responde 401.
type Authorizer func(token string, onUnauthorized func()) ports.Transport

// References copia compartida de proveedores y materias primas que usan los
// desplegables del panel de movimientos.
type References struct {
	Suppliers []entity.Supplier
	Materials []entity.RawMaterial
	FetchedAt time.Time
}

// SupplierName nombre del proveedor con ese id, o el id si no está en caché.
func (r References) SupplierName(id string) string {
	for _, s := range r.Suppliers {
		if s.ID == id && s.Name != "" {
			return s.Name
		}
	}
	return id
}

// MaterialName nombre de la materia prima con ese id, o el id.
func (r References) MaterialName(id string) string {
	for _, m := range r.Materials {
		if m.ID == id && m.Name != "" {
			return m.Name
		}
	}
	return id
}

// Workspace composición de los tres paneles de una sesión. Todos comparten un
// único transporte autorizado y un único handler de 401; cada mutación exitosa
// dispara exactamente un Refresh de las referencias.
type Workspace struct {
	Suppliers *SuppliersPanel
	Materials *MaterialsPanel
	Movements *MovementsPanel

	transport ports.Transport
	cfg       Config
	log       *logger.Logger

	refMu sync.RWMutex
	refs  References

	closed   atomic.Bool
	lastUsed atomic.Int64

	hookMu sync.Mutex
	hooks  []func()
}

// NewWorkspace arma el espacio de trabajo para token.
func NewWorkspace(authorize Authorizer, token string, cfg Config) *Workspace {
	cfg = cfg.withDefaults()
	w := &Workspace{cfg: cfg, log: cfg.Log.Named("workspace")}
	w.transport = authorize(token, w.handleUnauthorized)

	w.Suppliers = NewSuppliersPanel(w.transport, cfg)
	w.Materials = NewMaterialsPanel(w.transport, cfg)
	w.Movements = NewMovementsPanel(w.transport, cfg)

	refresh := func(ctx context.Context) { _ = w.Refresh(ctx) }
	w.Suppliers.OnChange(refresh)
	w.Materials.OnChange(refresh)
	w.Movements.OnChange(refresh)

	w.Touch()
	return w
}

// OnUnauthorized registra fn para ejecutarse una sola vez cuando la sesión se cierra por 401.
func (w *Workspace) OnUnauthorized(fn func()) {
	w.hookMu.Lock()
	w.hooks = append(w.hooks, fn)
	w.hookMu.Unlock()
}

// handleUnauthorized handler compartido de 401: cierra el espacio de trabajo
// y ejecuta los hooks. Idempotente.
func (w *Workspace) handleUnauthorized() {
	if !w.closed.CompareAndSwap(false, true) {
		return
	}
	w.log.Info().Msg("401 del API: se cierra la sesión")
	w.hookMu.Lock()
	hooks := w.hooks
	w.hooks = nil
	w.hookMu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}

// Logout cierra el espacio de trabajo sin ejecutar los hooks de 401.
func (w *Workspace) Logout() {
	w.closed.Store(true)
}

// Closed indica si la sesión terminó (logout o 401).
func (w *Workspace) Closed() bool { return w.closed.Load() }

// Touch marca actividad para el barrido por inactividad.
func (w *Workspace) Touch() { w.lastUsed.Store(w.cfg.Now().UnixNano()) }

// LastUsed última actividad registrada.
func (w *Workspace) LastUsed() time.Time { return time.Unix(0, w.lastUsed.Load()) }

// References copia de las referencias compartidas.
func (w *Workspace) References() References {
	w.refMu.RLock()
	defer w.refMu.RUnlock()
	return References{
		Suppliers: append([]entity.Supplier(nil), w.refs.Suppliers...),
		Materials: append([]entity.RawMaterial(nil), w.refs.Materials...),
		FetchedAt: w.refs.FetchedAt,
	}
}

// Refresh relee /suppliers y /rawMaterial en paralelo y reemplaza ambas copias
// a la vez. Las fallas distintas de 401 se registran y se ignoran; un 401 ya
// cerró la sesión vía el interceptor y se devuelve como domain.ErrUnauthorized.
func (w *Workspace) Refresh(ctx context.Context) error {
	if w.Closed() {
		return domain.ErrWorkspaceClosed
	}
	var (
		suppliers []entity.Supplier
		materials []entity.RawMaterial
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := w.transport.Do(gctx, "/suppliers", ports.Request{Method: http.MethodGet})
		if err != nil {
			return err
		}
		suppliers, err = decodeList[entity.Supplier](data)
		return err
	})
	g.Go(func() error {
		data, err := w.transport.Do(gctx, "/rawMaterial", ports.Request{Method: http.MethodGet})
		if err != nil {
			return err
		}
		materials, err = decodeList[entity.RawMaterial](data)
		return err
	})
	if err := g.Wait(); err != nil {
		if domain.IsUnauthorized(err) {
			return domain.ErrUnauthorized
		}
		w.log.Warn().Err(err).Msg("no se pudieron refrescar las referencias")
		return nil
	}

	w.refMu.Lock()
	w.refs = References{Suppliers: suppliers, Materials: materials, FetchedAt: w.cfg.Now()}
	w.refMu.Unlock()
	return nil
}

// MountReferences refresca las referencias si nunca se leyeron o están viejas.
func (w *Workspace) MountReferences(ctx context.Context) error {
	w.refMu.RLock()
	at := w.refs.FetchedAt
	w.refMu.RUnlock()
	if !at.IsZero() && w.cfg.Now().Sub(at) < w.cfg.TTL {
		return nil
	}
	return w.Refresh(ctx)
}

// Mount prepara la sala de control completa: los tres paneles y las referencias.
// Las fallas de carga quedan como estado de error de cada panel; solo un 401
// se devuelve.
func (w *Workspace) Mount(ctx context.Context) error {
	w.Touch()
	var g errgroup.Group
	for _, mount := range []func(context.Context) error{
		w.Suppliers.Mount,
		w.Materials.Mount,
		w.Movements.Mount,
		w.MountReferences,
	} {
		mount := mount
		g.Go(func() error { return mount(ctx) })
	}
	err := g.Wait()
	if w.Closed() || domain.IsUnauthorized(err) {
		return domain.ErrUnauthorized
	}
	return nil
}

// IsSessionEnded true si err o el estado del espacio de trabajo indican fin de sesión.
func (w *Workspace) IsSessionEnded(err error) bool {
	return w.Closed() || domain.IsUnauthorized(err) || errors.Is(err, domain.ErrWorkspaceClosed)
}
