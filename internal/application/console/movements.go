package console

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// RecentLimit filas de cada lista que muestra el panel de movimientos.
const RecentLimit = 6

// MovementsPanel panel de entradas (/stockIn) y salidas (/stockOut) de stock.
type MovementsPanel struct {
	panel
	transport ports.Transport
	cfg       Config
	ins       *Collection[entity.StockMovement]
	outs      *Collection[entity.StockMovement]
}

func NewMovementsPanel(transport ports.Transport, cfg Config) *MovementsPanel {
	cfg = cfg.withDefaults()
	p := &MovementsPanel{
		transport: transport,
		cfg:       cfg,
		ins:       NewCollection(entity.StockMovementID),
		outs:      NewCollection(entity.StockMovementID),
	}
	p.init("movements", cfg.Log)
	return p
}

func (p *MovementsPanel) StockIns() []entity.StockMovement  { return p.ins.Snapshot() }
func (p *MovementsPanel) StockOuts() []entity.StockMovement { return p.outs.Snapshot() }

// Recent primeras n filas de la lista de la dirección indicada.
func (p *MovementsPanel) Recent(direction string, n int) []entity.StockMovement {
	if direction == entity.DirectionOut {
		return p.outs.Head(n)
	}
	return p.ins.Head(n)
}

// FetchedAt la más antigua de las dos lecturas.
func (p *MovementsPanel) FetchedAt() time.Time {
	in, out := p.ins.FetchedAt(), p.outs.FetchedAt()
	if in.Before(out) {
		return in
	}
	return out
}

func (p *MovementsPanel) Mount(ctx context.Context) error {
	now := p.cfg.Now()
	if !p.ins.Stale(now, p.cfg.TTL) && !p.outs.Stale(now, p.cfg.TTL) {
		return nil
	}
	return p.Load(ctx)
}

// Load lee /stockIn y /stockOut en paralelo; solo actualiza si ambas lecturas tienen éxito.
func (p *MovementsPanel) Load(ctx context.Context) error {
	p.beginLoad()
	defer p.endLoad()

	var ins, outs []entity.StockMovement
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ins, err = p.fetch(gctx, "/stockIn", entity.DirectionIn)
		return err
	})
	g.Go(func() error {
		var err error
		outs, err = p.fetch(gctx, "/stockOut", entity.DirectionOut)
		return err
	})
	if err := g.Wait(); err != nil {
		return p.fail("listar", err)
	}

	now := p.cfg.Now()
	p.ins.ReplaceAll(ins, now)
	p.outs.ReplaceAll(outs, now)
	return nil
}

func (p *MovementsPanel) fetch(ctx context.Context, path, direction string) ([]entity.StockMovement, error) {
	data, err := p.transport.Do(ctx, path, ports.Request{Method: http.MethodGet})
	if err != nil {
		return nil, err
	}
	items, err := decodeList[entity.StockMovement](data)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Direction = direction
	}
	return items, nil
}

// RecordStockIn envía POST /stockIn y antepone la entrada creada.
func (p *MovementsPanel) RecordStockIn(ctx context.Context, form dto.MovementForm) (entity.StockMovement, error) {
	return p.record(ctx, form, entity.DirectionIn)
}

// RecordStockOut envía POST /stockOut y antepone la salida creada.
func (p *MovementsPanel) RecordStockOut(ctx context.Context, form dto.MovementForm) (entity.StockMovement, error) {
	return p.record(ctx, form, entity.DirectionOut)
}

func (p *MovementsPanel) record(ctx context.Context, form dto.MovementForm, direction string) (entity.StockMovement, error) {
	var created entity.StockMovement
	if err := p.begin(); err != nil {
		return created, err
	}
	defer p.end()

	op := "registrar " + direction
	if err := form.Validate(); err != nil {
		return created, p.fail(op, err)
	}

	path, key, msg, target := "/stockIn", "stockIn", "Stock-in recorded.", p.ins
	var body any = form.StockIn()
	if direction == entity.DirectionOut {
		path, key, msg, target = "/stockOut", "stockOut", "Stock-out recorded.", p.outs
		body = form.StockOut()
	}

	data, err := p.transport.Do(ctx, path, ports.Request{Method: http.MethodPost, Body: body})
	if err != nil {
		return created, p.fail(op, err)
	}
	created, err = decodeWrapped[entity.StockMovement](data, key)
	if err != nil {
		return created, p.fail(op, err)
	}
	created.Direction = direction

	target.Prepend(created)
	p.succeed(ctx, msg)
	return created, nil
}
