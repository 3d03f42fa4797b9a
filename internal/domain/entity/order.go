package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido.
const (
	OrderPending    = "pendiente"
	OrderProcessing = "procesando"
	OrderShipped    = "enviado"
	OrderDelivered  = "entregado"
	OrderCancelled  = "cancelado"
)

// Order pedido inmutable creado desde un carrito. Total y los precios de las
// líneas son instantáneas al momento de la creación: cambios de precio
// posteriores no lo alteran.
type Order struct {
	ID              string
	PurchaseCode    string // KIVO-XXXXXXXX, único
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	Total           decimal.Decimal
	Status          string
	CreatedAt       time.Time
}

// OrderItem línea de pedido con precio unitario congelado.
// DiscountApplied queda en 0 en el flujo base: el descuento de promociones
// no se propaga al pedido.
type OrderItem struct {
	ID              string
	OrderID         string
	ProductID       string
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountApplied decimal.Decimal
}
