package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-console/internal/infrastructure/metrics"
)

func TestRoute_BajaCardinalidad(t *testing.T) {
	assert.Equal(t, "/rawMaterial", metrics.Route("/rawMaterial/m1"))
	assert.Equal(t, "/suppliers", metrics.Route("/suppliers"))
	assert.Equal(t, "/auth/login", metrics.Route("/auth/login"))
	assert.Equal(t, "/stockIn", metrics.Route("/stockIn?limit=5"))
}

func TestCollector_CuentaLlamadas(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.New(reg)

	c.ObserveAPICall("GET", "/suppliers", 200, 10*time.Millisecond)
	c.ObserveAPICall("GET", "/suppliers", 200, 10*time.Millisecond)
	c.ObserveAPICall("POST", "/stockIn", 0, time.Millisecond)
	c.SetWorkspaces(3)

	assert.Equal(t, 3, testutil.CollectAndCount(reg, "inventory_console_api_requests_total")+
		testutil.CollectAndCount(reg, "inventory_console_workspaces_active"))
}

func TestCollector_NilNoFalla(t *testing.T) {
	var c *metrics.Collector
	assert.NotPanics(t, func() {
		c.ObserveAPICall("GET", "/x", 500, time.Second)
		c.SetWorkspaces(1)
	})
}
