package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-console/pkg/logger"
)

func TestNew_JSONFueraDeDevelopment(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "debug", Out: &buf})

	log.Named("apiclient").Debug().Str("path", "/suppliers").Msg("llamada")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "apiclient", line["component"])
	assert.Equal(t, "/suppliers", line["path"])
	assert.Equal(t, "debug", line["level"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})

	log.Info().Msg("no se escribe")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("sí se escribe")
	assert.NotZero(t, buf.Len())
}
