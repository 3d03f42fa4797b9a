package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePromotionRequest entrada para crear una promoción.
type CreatePromotionRequest struct {
	ProductID       string          `json:"producto_id"`
	Name            string          `json:"nombre"`
	DiscountPercent decimal.Decimal `json:"porcentaje_descuento"`
	StartsAt        time.Time       `json:"fecha_inicio"`
	EndsAt          time.Time       `json:"fecha_fin"`
	Active          *bool           `json:"activa"`
}

// UpdatePromotionRequest entrada para actualización parcial.
type UpdatePromotionRequest struct {
	Name            *string          `json:"nombre"`
	DiscountPercent *decimal.Decimal `json:"porcentaje_descuento"`
	StartsAt        *time.Time       `json:"fecha_inicio"`
	EndsAt          *time.Time       `json:"fecha_fin"`
	Active          *bool            `json:"activa"`
}

// PromotionResponse salida de una promoción.
type PromotionResponse struct {
	ID              string           `json:"id"`
	ProductID       string           `json:"producto_id"`
	Name            string           `json:"nombre"`
	DiscountPercent decimal.Decimal  `json:"porcentaje_descuento"`
	StartsAt        time.Time        `json:"fecha_inicio"`
	EndsAt          time.Time        `json:"fecha_fin"`
	Active          bool             `json:"activa"`
	CreatedAt       time.Time        `json:"creado_en"`
	Product         *ProductResponse `json:"producto,omitempty"`
}
