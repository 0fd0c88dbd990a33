package console

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// State ciclo de vida de un panel: idle -> loading -> success|error -> idle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// StatusKind tipo de mensaje en línea.
type StatusKind string

const (
	StatusNone    StatusKind = ""
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status mensaje en línea de un panel o del formulario de acceso.
type Status struct {
	Kind    StatusKind
	Message string
}

func (s Status) IsZero() bool  { return s.Kind == StatusNone }
func (s Status) IsError() bool { return s.Kind == StatusError }

// Config parámetros compartidos por los paneles de un espacio de trabajo.
type Config struct {
	TTL time.Duration    // ventana de frescura de Mount
	Now func() time.Time // reloj; time.Now si es nil
	Log *logger.Logger
}

func (c Config) withDefaults() Config {
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Log == nil {
		c.Log = logger.Nop()
	}
	if c.TTL <= 0 {
		c.TTL = 30 * time.Second
	}
	return c
}

// panel estado común: flag de ocupado, lecturas en curso, estado flash y
// callback OnChange.
type panel struct {
	name    string
	log     *logger.Logger
	busy    atomic.Bool
	loading atomic.Int32

	mu       sync.Mutex
	status   Status
	onChange func(context.Context)
}

func (p *panel) init(name string, log *logger.Logger) {
	p.name = name
	p.log = log.Named(name)
}

// State deriva el estado actual del panel.
func (p *panel) State() State {
	if p.busy.Load() || p.loading.Load() > 0 {
		return StateLoading
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.status.Kind {
	case StatusSuccess:
		return StateSuccess
	case StatusError:
		return StateError
	default:
		return StateIdle
	}
}

// TakeStatus devuelve el mensaje pendiente y deja el panel en idle.
func (p *panel) TakeStatus() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.status
	p.status = Status{}
	return s
}

// OnChange registra el callback que se invoca una vez tras cada mutación exitosa.
func (p *panel) OnChange(fn func(context.Context)) {
	p.mu.Lock()
	p.onChange = fn
	p.mu.Unlock()
}

func (p *panel) setStatus(s Status) {
	p.mu.Lock()
	p.status = s
	p.mu.Unlock()
}

// begin reserva el panel para un envío; rechaza envíos concurrentes.
func (p *panel) begin() error {
	if !p.busy.CompareAndSwap(false, true) {
		return domain.ErrBusy
	}
	p.setStatus(Status{})
	return nil
}

func (p *panel) end() { p.busy.Store(false) }

func (p *panel) beginLoad() { p.loading.Add(1) }
func (p *panel) endLoad()   { p.loading.Add(-1) }

// succeed fija el mensaje de éxito y notifica OnChange.
func (p *panel) succeed(ctx context.Context, msg string) {
	p.setStatus(Status{Kind: StatusSuccess, Message: msg})
	p.mu.Lock()
	fn := p.onChange
	p.mu.Unlock()
	if fn != nil {
		fn(ctx)
	}
}

// fail clasifica err: un 401 no deja mensaje en línea (lo maneja el handler
// compartido); cualquier otra falla queda como estado de error.
func (p *panel) fail(op string, err error) error {
	if domain.IsUnauthorized(err) {
		p.log.Info().Str("panel", p.name).Str("op", op).Msg("sesión no autorizada")
		return fmt.Errorf("%s: %s: %w", p.name, op, err)
	}
	p.log.Warn().Err(err).Str("panel", p.name).Str("op", op).Msg("operación fallida")
	p.setStatus(Status{Kind: StatusError, Message: domain.MessageOf(err)})
	return fmt.Errorf("%s: %s: %w", p.name, op, err)
}

// decodeList interpreta una respuesta de listado; null es lista vacía.
func decodeList[T any](data json.RawMessage) ([]T, error) {
	if data == nil {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("respuesta de listado inesperada: %w", err)
	}
	return items, nil
}

// decodeWrapped toma data[key] si existe; si no, el cuerpo completo.
func decodeWrapped[T any](data json.RawMessage, key string) (T, error) {
	var zero T
	if data == nil {
		return zero, fmt.Errorf("respuesta vacía")
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err == nil {
		if inner, ok := envelope[key]; ok && len(inner) > 0 && string(inner) != "null" {
			data = inner
		}
	}
	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return zero, fmt.Errorf("respuesta inesperada: %w", err)
	}
	return item, nil
}
