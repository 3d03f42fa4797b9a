package dto

import "time"

// FichaCodeRequest cuerpo común de validar/canjear/generar: el código de compra.
type FichaCodeRequest struct {
	PurchaseCode string `json:"codigo_compra"`
}

// FichaResponse salida de una ficha.
type FichaResponse struct {
	ID           string     `json:"id"`
	PurchaseCode string     `json:"codigo_compra"`
	Token        string     `json:"token"`
	TokenHash    string     `json:"token_encriptado"`
	Status       string     `json:"estado"`
	ExpiresAt    time.Time  `json:"fecha_expiracion"`
	CreatedAt    time.Time  `json:"creado_en"`
	RedeemedAt   *time.Time `json:"canjeado_en,omitempty"`
}

// GenerateFichaResponse ficha emitida + imagen QR como data URL PNG.
type GenerateFichaResponse struct {
	Ficha   FichaResponse `json:"ficha"`
	QRImage string        `json:"qrImage"`
}

// RedeemFichaResponse resultado de un canje: descuento plano del 10%.
type RedeemFichaResponse struct {
	Message         string `json:"message"`
	DiscountApplied int    `json:"descuento_aplicado"`
}

// FichaHistoryRequest filtros del historial de fichas.
type FichaHistoryRequest struct {
	Status string `query:"estado"`
	Date   string `query:"fecha"`
	Search string `query:"busqueda"`
}

// FichaHistoryEntryResponse pedido con su ficha (null si no fue emitida).
type FichaHistoryEntryResponse struct {
	Order OrderResponse  `json:"pedido"`
	Ficha *FichaResponse `json:"ficha"`
}
