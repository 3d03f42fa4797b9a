package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest entrada para crear un pedido desde el carrito de la sesión.
type CreateOrderRequest struct {
	SessionID       string `json:"sesion_id"`
	CustomerName    string `json:"nombre_cliente"`
	CustomerEmail   string `json:"email_cliente"`
	CustomerPhone   string `json:"telefono_cliente"`
	CustomerAddress string `json:"direccion_cliente"`
}

// OrderItemResponse línea de pedido con precio congelado.
type OrderItemResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"producto_id"`
	Quantity        int             `json:"cantidad"`
	UnitPrice       decimal.Decimal `json:"precio_unitario"`
	DiscountApplied decimal.Decimal `json:"descuento_aplicado"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID              string              `json:"id"`
	PurchaseCode    string              `json:"codigo_compra"`
	CustomerName    string              `json:"nombre_cliente"`
	CustomerEmail   string              `json:"email_cliente"`
	CustomerPhone   string              `json:"telefono_cliente"`
	CustomerAddress string              `json:"direccion_cliente"`
	Total           decimal.Decimal     `json:"total"`
	Status          string              `json:"estado"`
	CreatedAt       time.Time           `json:"creado_en"`
	Items           []OrderItemResponse `json:"detalles,omitempty"`
}
