package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/inventario-console/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u1", "nova@example.com", "fake-api", time.Hour)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "nova@example.com", claims.Email)
	assert.Equal(t, "fake-api", claims.Issuer)
}

func TestParse_FirmaIncorrectaOExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u1", "a@b.com", "fake-api", time.Hour)
	require.NoError(t, err)
	_, err = pkgjwt.Parse("otro-secreto", tok)
	assert.Error(t, err)

	expired, err := pkgjwt.Generate(testSecret, "u1", "a@b.com", "fake-api", -time.Minute)
	require.NoError(t, err)
	_, err = pkgjwt.Parse(testSecret, expired)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "u1", "a@b.com", "x", time.Hour)
	assert.Error(t, err)
}
