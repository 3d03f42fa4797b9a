package entity

import "time"

// CartItem línea de carrito de un comprador anónimo.
// SessionID es un token opaco generado por el cliente; no hay cuenta asociada.
// Invariante: Quantity > 0 — una línea que llegaría a cero se elimina.
type CartItem struct {
	ID        string
	SessionID string
	ProductID string
	Quantity  int
	CreatedAt time.Time
}
