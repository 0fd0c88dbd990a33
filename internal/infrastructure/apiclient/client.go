package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-console/internal/application/ports"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/infrastructure/metrics"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa Transport.
var _ ports.Transport = (*Client)(nil)

const (
	headerRequestID = "X-Request-ID"
	maxBodyBytes    = 4 << 20
)

// Client adaptador HTTP del API de inventario. Todas las rutas son relativas a
// una única URL base. Sin reintentos ni timeout propio: solo el contexto del llamador.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
	metrics    *metrics.Collector
}

// Option configura un Client.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (tests con httptest).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger registra cada llamada en nivel debug.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l.Named("apiclient") }
}

// WithMetrics cuenta y mide cada llamada.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *Client) { c.metrics = m }
}

// New construye el cliente para baseURL (ej. http://localhost:5000/api).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL dirección base configurada.
func (c *Client) BaseURL() string { return c.baseURL }

// Do ejecuta una llamada. Respuesta 2xx: cuerpo JSON (nil si vacío o inválido).
// No 2xx: *domain.APIError con el message/error del cuerpo o el mensaje genérico.
// Falla de red: error envuelto que no es *domain.APIError.
func (c *Client) Do(ctx context.Context, path string, req ports.Request) (json.RawMessage, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("apiclient: serializar body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: crear request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	requestID := httpReq.Header.Get(headerRequestID)
	if requestID == "" {
		requestID = uuid.NewString()
		httpReq.Header.Set(headerRequestID, requestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.ObserveAPICall(method, path, 0, time.Since(start))
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Str("request_id", requestID).Msg("llamada al API fallida")
		if ctx.Err() != nil {
			return nil, fmt.Errorf("apiclient: %s %s cancelada: %w", method, path, ctx.Err())
		}
		return nil, fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	elapsed := time.Since(start)
	c.metrics.ObserveAPICall(method, path, resp.StatusCode, elapsed)
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Str("request_id", requestID).
		Msg("llamada al API")
	if err != nil {
		return nil, fmt.Errorf("apiclient: leer respuesta: %w", err)
	}

	data := parseBody(rawBody)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.APIError{Status: resp.StatusCode, Message: failureMessage(data)}
	}
	return data, nil
}

// parseBody devuelve nil para cuerpos vacíos o que no son JSON.
func parseBody(raw []byte) json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || !json.Valid(raw) {
		return nil
	}
	return json.RawMessage(raw)
}

func failureMessage(data json.RawMessage) string {
	var payload struct {
		Message any `json:"message"`
		Error   any `json:"error"`
	}
	if data == nil || json.Unmarshal(data, &payload) != nil {
		return domain.GenericFailureMessage
	}
	for _, candidate := range []any{payload.Message, payload.Error} {
		if s := messageText(candidate); s != "" {
			return s
		}
	}
	return domain.GenericFailureMessage
}

// messageText texto de un campo message/error. Los valores no string (listas
// de errores de validación, objetos) se muestran como su JSON; los vacíos,
// false, 0 y null no cuentan.
func messageText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
	case float64:
		if t == 0 {
			return ""
		}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(raw)
}

// WithAuth devuelve una copia de req con Authorization: Bearer <token>.
// El mapa de headers del llamador no se modifica.
func WithAuth(token string, req ports.Request) ports.Request {
	headers := make(map[string]string, len(req.Headers)+1)
	for k, v := range req.Headers {
		headers[k] = v
	}
	headers["Authorization"] = "Bearer " + token
	req.Headers = headers
	return req
}

// Authorize envuelve base: adjunta el token a cada llamada e invoca
// onUnauthorized cuando una de ellas responde 401.
func Authorize(base ports.Transport, token string, onUnauthorized func()) ports.Transport {
	return ports.TransportFunc(func(ctx context.Context, path string, req ports.Request) (json.RawMessage, error) {
		data, err := base.Do(ctx, path, WithAuth(token, req))
		if err != nil && domain.IsUnauthorized(err) && onUnauthorized != nil {
			onUnauthorized()
		}
		return data, err
	})
}
