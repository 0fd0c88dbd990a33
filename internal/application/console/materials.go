package console

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// MaterialsPanel panel de materias primas (/rawMaterial).
type MaterialsPanel struct {
	panel
	transport ports.Transport
	cfg       Config
	items     *Collection[entity.RawMaterial]
}

func NewMaterialsPanel(transport ports.Transport, cfg Config) *MaterialsPanel {
	cfg = cfg.withDefaults()
	p := &MaterialsPanel{
		transport: transport,
		cfg:       cfg,
		items:     NewCollection(entity.RawMaterialID),
	}
	p.init("materials", cfg.Log)
	return p
}

func (p *MaterialsPanel) Items() []entity.RawMaterial { return p.items.Snapshot() }

func (p *MaterialsPanel) FetchedAt() time.Time { return p.items.FetchedAt() }

func (p *MaterialsPanel) Mount(ctx context.Context) error {
	if !p.items.Stale(p.cfg.Now(), p.cfg.TTL) {
		return nil
	}
	return p.Load(ctx)
}

// Load lee GET /rawMaterial y reemplaza la caché.
func (p *MaterialsPanel) Load(ctx context.Context) error {
	p.beginLoad()
	defer p.endLoad()

	data, err := p.transport.Do(ctx, "/rawMaterial", ports.Request{Method: http.MethodGet})
	if err != nil {
		return p.fail("listar", err)
	}
	items, err := decodeList[entity.RawMaterial](data)
	if err != nil {
		return p.fail("listar", err)
	}
	p.items.ReplaceAll(items, p.cfg.Now())
	return nil
}

// Edit devuelve el formulario de actualización relleno con la entrada en caché.
func (p *MaterialsPanel) Edit(id string) (dto.MaterialForm, bool) {
	m, ok := p.items.Find(id)
	if !ok {
		return dto.MaterialForm{}, false
	}
	return dto.MaterialFormFrom(m), true
}

// Create envía POST /rawMaterial y antepone la materia prima creada.
func (p *MaterialsPanel) Create(ctx context.Context, form dto.MaterialForm) (entity.RawMaterial, error) {
	var created entity.RawMaterial
	if err := p.begin(); err != nil {
		return created, err
	}
	defer p.end()

	if err := form.Validate(); err != nil {
		return created, p.fail("crear", err)
	}
	data, err := p.transport.Do(ctx, "/rawMaterial", ports.Request{Method: http.MethodPost, Body: form.Payload()})
	if err != nil {
		return created, p.fail("crear", err)
	}
	created, err = decodeWrapped[entity.RawMaterial](data, "rawMaterial")
	if err != nil {
		return created, p.fail("crear", err)
	}

	p.items.Prepend(created)
	p.succeed(ctx, "Raw material created.")
	return created, nil
}

// Update envía PUT /rawMaterial/{id} y reemplaza la entrada en su lugar.
func (p *MaterialsPanel) Update(ctx context.Context, id string, form dto.MaterialForm) (entity.RawMaterial, error) {
	var updated entity.RawMaterial
	if err := p.begin(); err != nil {
		return updated, err
	}
	defer p.end()

	if id == "" {
		return updated, p.fail("actualizar", domain.NewValidationError("Pick a material first."))
	}
	if err := form.Validate(); err != nil {
		return updated, p.fail("actualizar", err)
	}
	data, err := p.transport.Do(ctx, "/rawMaterial/"+url.PathEscape(id), ports.Request{Method: http.MethodPut, Body: form.Payload()})
	if err != nil {
		return updated, p.fail("actualizar", err)
	}
	updated, err = decodeWrapped[entity.RawMaterial](data, "rawMaterial")
	if err != nil {
		return updated, p.fail("actualizar", err)
	}
	if updated.ID == "" {
		updated.ID = id
	}

	p.items.ReplaceByID(updated)
	p.succeed(ctx, "Raw material updated.")
	return updated, nil
}
