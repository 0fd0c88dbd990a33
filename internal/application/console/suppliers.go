package console

import (
	"context"
	"net/http"
	"time"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// SuppliersPanel panel de proveedores (/suppliers).
type SuppliersPanel struct {
	panel
	transport ports.Transport
	cfg       Config
	items     *Collection[entity.Supplier]
}

// NewSuppliersPanel transport debe ser el cliente autorizado del espacio de trabajo.
func NewSuppliersPanel(transport ports.Transport, cfg Config) *SuppliersPanel {
	cfg = cfg.withDefaults()
	p := &SuppliersPanel{
		transport: transport,
		cfg:       cfg,
		items:     NewCollection(entity.SupplierID),
	}
	p.init("suppliers", cfg.Log)
	return p
}

// Items copia de los proveedores en caché.
func (p *SuppliersPanel) Items() []entity.Supplier { return p.items.Snapshot() }

// FetchedAt momento de la última lectura completa.
func (p *SuppliersPanel) FetchedAt() time.Time { return p.items.FetchedAt() }

// Mount carga la lista si nunca se leyó o está fuera de la ventana de frescura.
func (p *SuppliersPanel) Mount(ctx context.Context) error {
	if !p.items.Stale(p.cfg.Now(), p.cfg.TTL) {
		return nil
	}
	return p.Load(ctx)
}

// Load lee GET /suppliers y reemplaza la caché.
func (p *SuppliersPanel) Load(ctx context.Context) error {
	p.beginLoad()
	defer p.endLoad()

	data, err := p.transport.Do(ctx, "/suppliers", ports.Request{Method: http.MethodGet})
	if err != nil {
		return p.fail("listar", err)
	}
	items, err := decodeList[entity.Supplier](data)
	if err != nil {
		return p.fail("listar", err)
	}
	p.items.ReplaceAll(items, p.cfg.Now())
	return nil
}

// Create envía POST /suppliers y antepone el proveedor creado.
func (p *SuppliersPanel) Create(ctx context.Context, form dto.SupplierForm) (entity.Supplier, error) {
	var created entity.Supplier
	if err := p.begin(); err != nil {
		return created, err
	}
	defer p.end()

	if err := form.Validate(); err != nil {
		return created, p.fail("crear", err)
	}
	data, err := p.transport.Do(ctx, "/suppliers", ports.Request{Method: http.MethodPost, Body: form.Payload()})
	if err != nil {
		return created, p.fail("crear", err)
	}
	created, err = decodeWrapped[entity.Supplier](data, "supplier")
	if err != nil {
		return created, p.fail("crear", err)
	}

	p.items.Prepend(created)
	p.succeed(ctx, "Supplier created.")
	return created, nil
}
