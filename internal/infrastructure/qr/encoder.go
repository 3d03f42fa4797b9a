package qr

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"

	"github.com/kivo-shop/kivo-api/internal/application/loyalty"
)

var _ loyalty.QREncoder = (*Encoder)(nil)

// Encoder genera códigos QR como data URL PNG en base64, listos para
// incrustar en un atributo src de imagen.
type Encoder struct{}

// NewEncoder construye el generador de QR.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// EncodeDataURL codifica el payload en un QR cuadrado de sizePx píxeles.
func (e *Encoder) EncodeDataURL(payload []byte, sizePx int) (string, error) {
	code, err := qr.Encode(string(payload), qr.M, qr.Auto)
	if err != nil {
		return "", fmt.Errorf("codificar qr: %w", err)
	}
	scaled, err := barcode.Scale(code, sizePx, sizePx)
	if err != nil {
		return "", fmt.Errorf("escalar qr: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return "", fmt.Errorf("serializar qr: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
