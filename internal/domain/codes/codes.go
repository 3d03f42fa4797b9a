// Package codes: generación de códigos de compra y tokens de ficha.
// Ambos salen de crypto/rand; el token se acompaña de su digest SHA-256
// para auditoría.
package codes

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// PurchaseCodePrefix prefijo legible de los códigos de compra.
	PurchaseCodePrefix = "KIVO-"

	purchaseCodeBytes = 4  // 8 dígitos hex
	fichaTokenBytes   = 16 // 128 bits de entropía
)

// NewPurchaseCode genera un código de compra KIVO-XXXXXXXX (8 hex mayúsculas).
// La probabilidad de colisión es despreciable; la unicidad la garantiza el
// constraint UNIQUE de la tabla pedidos.
func NewPurchaseCode() (string, error) {
	b := make([]byte, purchaseCodeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("codes: generar código de compra: %w", err)
	}
	return PurchaseCodePrefix + strings.ToUpper(hex.EncodeToString(b)), nil
}

// NewFichaToken genera el secreto de una ficha: 32 caracteres hex en
// minúscula (128 bits). Es el valor que viaja dentro del QR.
func NewFichaToken() (string, error) {
	b := make([]byte, fichaTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("codes: generar token de ficha: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashToken devuelve el digest SHA-256 en hex del token en claro.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
