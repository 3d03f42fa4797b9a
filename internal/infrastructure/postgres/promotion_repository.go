package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kivo-shop/kivo-api/internal/domain/entity"
	"github.com/kivo-shop/kivo-api/internal/domain/repository"
)

var _ repository.PromotionRepository = (*PromotionRepo)(nil)

// PromotionRepo implementación del puerto PromotionRepository sobre PostgreSQL.
type PromotionRepo struct {
	q Querier
}

// NewPromotionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPromotionRepository(q Querier) *PromotionRepo {
	return &PromotionRepo{q: q}
}

const promotionColumns = `id, COALESCE(producto_id::text, ''), nombre, porcentaje_descuento, fecha_inicio, fecha_fin, activa, creado_en`

// Create persiste una promoción.
func (r *PromotionRepo) Create(promo *entity.Promotion) error {
	query := `
		INSERT INTO promociones (id, producto_id, nombre, porcentaje_descuento, fecha_inicio, fecha_fin, activa, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		promo.ID, promo.ProductID, promo.Name, promo.DiscountPercent,
		promo.StartsAt, promo.EndsAt, promo.Active, promo.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert promocion: %w", err)
	}
	return nil
}

// GetByID obtiene una promoción por ID.
func (r *PromotionRepo) GetByID(id string) (*entity.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promociones WHERE id = $1`
	var p entity.Promotion
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.ProductID, &p.Name, &p.DiscountPercent, &p.StartsAt, &p.EndsAt, &p.Active, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get promocion: %w", err)
	}
	return &p, nil
}

// ListAll todas las promociones, más recientes primero (administración).
func (r *PromotionRepo) ListAll() ([]*entity.Promotion, error) {
	return r.scanMany(`SELECT ` + promotionColumns + ` FROM promociones ORDER BY creado_en DESC`)
}

// ListEffectiveByProduct promociones vigentes de un producto. El orden define
// el desempate cuando varias se solapan: mayor porcentaje primero y, a igual
// porcentaje, la que vence antes.
func (r *PromotionRepo) ListEffectiveByProduct(productID string, now time.Time) ([]*entity.Promotion, error) {
	query := `
		SELECT ` + promotionColumns + `
		FROM promociones
		WHERE producto_id = $1 AND activa AND fecha_inicio <= $2 AND fecha_fin >= $2
		ORDER BY porcentaje_descuento DESC, fecha_fin ASC`
	return r.scanMany(query, productID, now)
}

// Update actualiza una promoción.
func (r *PromotionRepo) Update(promo *entity.Promotion) error {
	query := `
		UPDATE promociones
		SET nombre = $2, porcentaje_descuento = $3, fecha_inicio = $4, fecha_fin = $5, activa = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		promo.ID, promo.Name, promo.DiscountPercent, promo.StartsAt, promo.EndsAt, promo.Active,
	)
	if err != nil {
		return fmt.Errorf("update promocion: %w", err)
	}
	return nil
}

// Delete elimina una promoción.
func (r *PromotionRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM promociones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete promocion: %w", err)
	}
	return nil
}

func (r *PromotionRepo) scanMany(query string, args ...any) ([]*entity.Promotion, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list promociones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Promotion
	for rows.Next() {
		var p entity.Promotion
		if err := rows.Scan(&p.ID, &p.ProductID, &p.Name, &p.DiscountPercent, &p.StartsAt, &p.EndsAt, &p.Active, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan promocion: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
