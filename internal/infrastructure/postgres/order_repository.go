package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kivo-shop/kivo-api/internal/domain"
	"github.com/kivo-shop/kivo-api/internal/domain/entity"
	"github.com/kivo-shop/kivo-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste un pedido. La unicidad del código de compra la garantiza
// la restricción UNIQUE de la tabla.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO pedidos (id, codigo_compra, nombre_cliente, email_cliente, telefono_cliente, direccion_cliente, total, estado, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.PurchaseCode, order.CustomerName, order.CustomerEmail,
		order.CustomerPhone, order.CustomerAddress, order.Total, order.Status, order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pedido: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de pedido.
func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	query := `
		INSERT INTO detalles_pedidos (id, pedido_id, producto_id, cantidad, precio_unitario, descuento_aplicado)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.DiscountApplied,
	)
	if err != nil {
		return fmt.Errorf("insert detalle pedido: %w", err)
	}
	return nil
}

// GetByCode obtiene un pedido por su código de compra.
func (r *OrderRepo) GetByCode(purchaseCode string) (*entity.Order, error) {
	query := `
		SELECT id, codigo_compra, nombre_cliente, email_cliente, telefono_cliente, direccion_cliente, total, estado, creado_en
		FROM pedidos WHERE codigo_compra = $1`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, purchaseCode).Scan(
		&o.ID, &o.PurchaseCode, &o.CustomerName, &o.CustomerEmail,
		&o.CustomerPhone, &o.CustomerAddress, &o.Total, &o.Status, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	return &o, nil
}

// ListItems líneas de un pedido.
func (r *OrderRepo) ListItems(orderID string) ([]*entity.OrderItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, pedido_id, producto_id, cantidad, precio_unitario, descuento_aplicado
		FROM detalles_pedidos WHERE pedido_id = $1`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list detalles pedido: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var item entity.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.DiscountApplied); err != nil {
			return nil, fmt.Errorf("scan detalle pedido: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}
