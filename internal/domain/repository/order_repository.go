package repository

import "github.com/kivo-shop/kivo-api/internal/domain/entity"

// OrderRepository puerto de persistencia para pedidos y sus líneas.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByCode(purchaseCode string) (*entity.Order, error)
	ListItems(orderID string) ([]*entity.OrderItem, error)
}
