package qr

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDataURL(t *testing.T) {
	enc := NewEncoder()

	dataURL, err := enc.EncodeDataURL([]byte(`{"cod_ficha":"abc","cod_compra":"KIVO-00000000"}`), 150)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, "data:image/png;base64,"))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 150, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}

func TestEncodeDataURLEmptyPayload(t *testing.T) {
	enc := NewEncoder()

	dataURL, err := enc.EncodeDataURL([]byte("x"), 150)
	require.NoError(t, err)
	assert.NotEmpty(t, dataURL)
}
