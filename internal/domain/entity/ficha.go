package entity

import "time"

// Estados de una ficha. Canjeado y expirado son terminales.
const (
	FichaActive   = "activo"
	FichaRedeemed = "canjeado"
	FichaExpired  = "expirado"
)

// Ficha token de fidelidad ligado a un código de compra. Se emite una sola
// por pedido (UNIQUE sobre PurchaseCode), se canjea exactamente una vez y
// expira 30 días después de la emisión.
//
// Token es el secreto en claro que viaja dentro del QR; TokenHash es su
// digest sha256, almacenado para auditoría (la búsqueda sigue siendo por
// código de compra).
type Ficha struct {
	ID           string
	PurchaseCode string
	Token        string
	TokenHash    string
	Status       string
	ExpiresAt    time.Time
	CreatedAt    time.Time
	RedeemedAt   *time.Time
}

// Expired indica si la ficha ya pasó su fecha de expiración.
func (f *Ficha) Expired(now time.Time) bool {
	return now.After(f.ExpiresAt)
}
