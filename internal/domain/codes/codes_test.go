package codes_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kivo-shop/kivo-api/internal/domain/codes"
)

var (
	rePurchaseCode = regexp.MustCompile(`^KIVO-[0-9A-F]{8}$`)
	reFichaToken   = regexp.MustCompile(`^[0-9a-f]{32}$`)
)

func TestNewPurchaseCode_Formato(t *testing.T) {
	code, err := codes.NewPurchaseCode()
	require.NoError(t, err)
	assert.Regexp(t, rePurchaseCode, code,
		"el código de compra debe ser KIVO- seguido de 8 hex mayúsculas")
}

func TestNewPurchaseCode_NoRepite(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code, err := codes.NewPurchaseCode()
		require.NoError(t, err)
		assert.False(t, seen[code], "código repetido en 1000 generaciones: %s", code)
		seen[code] = true
	}
}

func TestNewFichaToken_Formato(t *testing.T) {
	tok, err := codes.NewFichaToken()
	require.NoError(t, err)
	assert.Regexp(t, reFichaToken, tok,
		"el token debe ser 32 hex minúsculas (128 bits)")
}

// Vector conocido: sha256("abc") — verifica que el digest de auditoría
// es SHA-256 estándar en hex.
func TestHashToken_VectorConocido(t *testing.T) {
	assert.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		codes.HashToken("abc"))
}

func TestHashToken_Determinista(t *testing.T) {
	tok, err := codes.NewFichaToken()
	require.NoError(t, err)
	assert.Equal(t, codes.HashToken(tok), codes.HashToken(tok))
	assert.Len(t, codes.HashToken(tok), 64)
}
