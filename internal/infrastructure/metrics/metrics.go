package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector métricas de la consola: llamadas al API de inventario y
// espacios de trabajo vivos. Un *Collector nil no registra nada.
type Collector struct {
	apiRequests *prometheus.CounterVec
	apiDuration *prometheus.HistogramVec
	workspaces  prometheus.Gauge
}

// New registra las métricas en reg (prometheus.DefaultRegisterer si es nil).
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_console_api_requests_total",
			Help: "Llamadas al API de inventario por método, ruta y status.",
		}, []string{"method", "route", "status"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "inventory_console_api_request_duration_seconds",
			Help:    "Duración de las llamadas al API de inventario.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		workspaces: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "inventory_console_workspaces_active",
			Help: "Espacios de trabajo (sesiones) vivos en el registro.",
		}),
	}
	reg.MustRegister(c.apiRequests, c.apiDuration, c.workspaces)
	return c
}

// ObserveAPICall registra una llamada. status 0 = falla de red.
func (c *Collector) ObserveAPICall(method, path string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	route := Route(path)
	label := "network_error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	c.apiRequests.WithLabelValues(method, route, label).Inc()
	c.apiDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// SetWorkspaces fija el número de espacios de trabajo vivos.
func (c *Collector) SetWorkspaces(n int) {
	if c == nil {
		return
	}
	c.workspaces.Set(float64(n))
}

// Route reduce path a una etiqueta de baja cardinalidad: /auth/* se conserva,
// el resto queda en su primer segmento (/rawMaterial/m1 -> /rawMaterial).
func Route(path string) string {
	path = strings.SplitN(path, "?", 2)[0]
	if strings.HasPrefix(path, "/auth/") {
		return path
	}
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return "/" + trimmed
}

// Handler expone las métricas de g en formato Prometheus.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
