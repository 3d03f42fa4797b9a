package repository

import "github.com/kivo-shop/kivo-api/internal/domain/entity"

// CartRepository puerto de persistencia para las líneas de carrito.
type CartRepository interface {
	Create(item *entity.CartItem) error
	GetByID(id string) (*entity.CartItem, error)
	GetBySessionAndProduct(sessionID, productID string) (*entity.CartItem, error)
	ListBySession(sessionID string) ([]*entity.CartItem, error)
	UpdateQuantity(id string, quantity int) error
	// Delete es idempotente: borrar una línea inexistente no es error.
	Delete(id string) error
	ClearSession(sessionID string) error
}
