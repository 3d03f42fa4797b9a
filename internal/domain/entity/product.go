package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del catálogo.
// Stock es informativo: no se reserva ni se descuenta al crear pedidos.
// El borrado de listados públicos es lógico vía Active; el endpoint de
// eliminación del admin sí borra la fila.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  string
	Active      bool
	CreatedAt   time.Time
}

// ProductImage imagen asociada a un producto. IsMain marca la portada.
type ProductImage struct {
	ID        string
	ProductID string
	URL       string
	IsMain    bool
	CreatedAt time.Time
}
