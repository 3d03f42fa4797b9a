package entity

import "time"

// User representa una cuenta del panel de administración.
// Los compradores no tienen cuenta: el carrito se identifica por sesión.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	IsAdmin      bool
	CreatedAt    time.Time
}
