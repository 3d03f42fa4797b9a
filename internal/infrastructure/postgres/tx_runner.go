package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kivo-shop/kivo-api/internal/application/checkout"
	"github.com/kivo-shop/kivo-api/internal/domain/repository"
)

// Ensure TxRunner implements checkout.TxRunner.
var _ checkout.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Lo usa el checkout para que carrito → pedido → limpieza
// sea un único paso atómico.
func (r *TxRunner) Run(ctx context.Context, fn func(
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cartRepo := NewCartRepository(tx)
	orderRepo := NewOrderRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(cartRepo, orderRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
