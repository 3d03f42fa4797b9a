package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kivo-shop/kivo-api/internal/domain/entity"
	"github.com/kivo-shop/kivo-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación del puerto CartRepository sobre PostgreSQL (usable con pool o tx).
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

const cartColumns = `id, sesion_id, producto_id, cantidad, creado_en`

// Create persiste una línea de carrito.
func (r *CartRepo) Create(item *entity.CartItem) error {
	query := `
		INSERT INTO carrito (id, sesion_id, producto_id, cantidad, creado_en)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SessionID, item.ProductID, item.Quantity, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert linea carrito: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID.
func (r *CartRepo) GetByID(id string) (*entity.CartItem, error) {
	return r.scanOne(`SELECT `+cartColumns+` FROM carrito WHERE id = $1`, id)
}

// GetBySessionAndProduct obtiene la línea de (sesión, producto) si existe.
func (r *CartRepo) GetBySessionAndProduct(sessionID, productID string) (*entity.CartItem, error) {
	return r.scanOne(`
		SELECT `+cartColumns+` FROM carrito
		WHERE sesion_id = $1 AND producto_id = $2 LIMIT 1`, sessionID, productID)
}

// ListBySession líneas de la sesión, más recientes primero.
func (r *CartRepo) ListBySession(sessionID string) ([]*entity.CartItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT `+cartColumns+` FROM carrito
		WHERE sesion_id = $1 ORDER BY creado_en DESC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list carrito: %w", err)
	}
	defer rows.Close()
	var list []*entity.CartItem
	for rows.Next() {
		var item entity.CartItem
		if err := rows.Scan(&item.ID, &item.SessionID, &item.ProductID, &item.Quantity, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan linea carrito: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// UpdateQuantity sobreescribe la cantidad de una línea.
func (r *CartRepo) UpdateQuantity(id string, quantity int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE carrito SET cantidad = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update cantidad: %w", err)
	}
	return nil
}

// Delete elimina una línea. Idempotente: cero filas afectadas no es error.
func (r *CartRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM carrito WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete linea carrito: %w", err)
	}
	return nil
}

// ClearSession vacía el carrito de la sesión.
func (r *CartRepo) ClearSession(sessionID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM carrito WHERE sesion_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("clear carrito: %w", err)
	}
	return nil
}

func (r *CartRepo) scanOne(query string, args ...any) (*entity.CartItem, error) {
	var item entity.CartItem
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&item.ID, &item.SessionID, &item.ProductID, &item.Quantity, &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get linea carrito: %w", err)
	}
	return &item, nil
}
