package checkout

import (
	"context"

	"github.com/kivo-shop/kivo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que leer el carrito, insertar el
// pedido con sus líneas y vaciar el carrito sea atómico: un fallo a mitad de
// camino no deja un pedido sin líneas ni un carrito sin limpiar.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		cartRepo repository.CartRepository,
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error) error
}
