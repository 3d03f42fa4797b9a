package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kivo-shop/kivo-api/internal/domain"
	"github.com/kivo-shop/kivo-api/internal/domain/entity"
	"github.com/kivo-shop/kivo-api/internal/domain/repository"
)

var _ repository.FichaRepository = (*FichaRepo)(nil)

// FichaRepo implementación del puerto FichaRepository sobre PostgreSQL.
type FichaRepo struct {
	q Querier
}

// NewFichaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFichaRepository(q Querier) *FichaRepo {
	return &FichaRepo{q: q}
}

const fichaColumns = `id, codigo_compra, token, token_hash, estado, fecha_expiracion, creado_en, canjeado_en`

// Create persiste una ficha. La restricción UNIQUE sobre codigo_compra es la
// que decide si ya existía una: no hay chequeo previo, el conflicto se
// traduce a domain.ErrDuplicate.
func (r *FichaRepo) Create(ficha *entity.Ficha) error {
	query := `
		INSERT INTO fichas (id, codigo_compra, token, token_hash, estado, fecha_expiracion, creado_en, canjeado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		ficha.ID, ficha.PurchaseCode, ficha.Token, ficha.TokenHash,
		ficha.Status, ficha.ExpiresAt, ficha.CreatedAt, ficha.RedeemedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert ficha: %w", err)
	}
	return nil
}

// GetByPurchaseCode obtiene la ficha asociada a un código de compra.
func (r *FichaRepo) GetByPurchaseCode(purchaseCode string) (*entity.Ficha, error) {
	query := `SELECT ` + fichaColumns + ` FROM fichas WHERE codigo_compra = $1`
	var f entity.Ficha
	err := r.q.QueryRow(context.Background(), query, purchaseCode).Scan(
		&f.ID, &f.PurchaseCode, &f.Token, &f.TokenHash,
		&f.Status, &f.ExpiresAt, &f.CreatedAt, &f.RedeemedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ficha: %w", err)
	}
	return &f, nil
}

// SetStatus cambia el estado de una ficha. redeemedAt solo viene al canjear;
// al expirar queda en NULL.
func (r *FichaRepo) SetStatus(id, status string, redeemedAt *time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE fichas SET estado = $2, canjeado_en = $3 WHERE id = $1`,
		id, status, redeemedAt)
	if err != nil {
		return fmt.Errorf("update estado ficha: %w", err)
	}
	return nil
}

// History pedidos con su ficha (si existe), más recientes primero. Los
// filtros se combinan con AND; estado filtra sobre la ficha, fecha y
// búsqueda sobre el pedido.
func (r *FichaRepo) History(f repository.FichaHistoryFilter) ([]*repository.FichaHistoryEntry, error) {
	query := `
		SELECT p.id, p.codigo_compra, p.nombre_cliente, p.email_cliente, p.telefono_cliente, p.direccion_cliente, p.total, p.estado, p.creado_en,
			f.id, f.codigo_compra, f.token, f.token_hash, f.estado, f.fecha_expiracion, f.creado_en, f.canjeado_en
		FROM pedidos p
		LEFT JOIN fichas f ON f.codigo_compra = p.codigo_compra
		WHERE true`
	args := []any{}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND f.estado = $%d", len(args))
	}
	if f.Date != "" {
		args = append(args, f.Date)
		query += fmt.Sprintf(" AND p.creado_en::date = $%d::date", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" AND (p.codigo_compra ILIKE $%d OR p.nombre_cliente ILIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY p.creado_en DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("historial fichas: %w", err)
	}
	defer rows.Close()

	var list []*repository.FichaHistoryEntry
	for rows.Next() {
		var entry repository.FichaHistoryEntry
		var fichaID, fichaCode, token, tokenHash, status *string
		var expiresAt, createdAt, redeemedAt *time.Time
		err := rows.Scan(
			&entry.Order.ID, &entry.Order.PurchaseCode, &entry.Order.CustomerName,
			&entry.Order.CustomerEmail, &entry.Order.CustomerPhone, &entry.Order.CustomerAddress,
			&entry.Order.Total, &entry.Order.Status, &entry.Order.CreatedAt,
			&fichaID, &fichaCode, &token, &tokenHash, &status, &expiresAt, &createdAt, &redeemedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan historial: %w", err)
		}
		if fichaID != nil {
			entry.Ficha = &entity.Ficha{
				ID:           *fichaID,
				PurchaseCode: *fichaCode,
				Token:        *token,
				TokenHash:    *tokenHash,
				Status:       *status,
				ExpiresAt:    *expiresAt,
				CreatedAt:    *createdAt,
				RedeemedAt:   redeemedAt,
			}
		}
		list = append(list, &entry)
	}
	return list, rows.Err()
}
