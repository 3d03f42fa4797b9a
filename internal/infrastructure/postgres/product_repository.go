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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, nombre, descripcion, precio, stock, COALESCE(categoria_id::text, ''), activo, creado_en`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO productos (id, nombre, descripcion, precio, stock, categoria_id, activo, creado_en)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Price, product.Stock,
		product.CategoryID, product.Active, product.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID, &p.Active, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// List listado público: solo activos, con filtros y orden opcionales.
func (r *ProductRepo) List(f repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE activo`
	args := []any{}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" AND nombre ILIKE $%d", len(args))
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		query += fmt.Sprintf(" AND categoria_id = $%d", len(args))
	}
	switch f.Sort {
	case repository.SortPriceAsc:
		query += " ORDER BY precio ASC"
	case repository.SortPriceDesc:
		query += " ORDER BY precio DESC"
	case repository.SortNameAsc:
		query += " ORDER BY nombre ASC"
	case repository.SortNameDesc:
		query += " ORDER BY nombre DESC"
	default:
		query += " ORDER BY creado_en DESC"
	}
	return r.scanMany(query, args...)
}

// ListOnSale productos activos con alguna promoción vigente en now.
func (r *ProductRepo) ListOnSale(now time.Time) ([]*entity.Product, error) {
	query := `
		SELECT DISTINCT p.id, p.nombre, p.descripcion, p.precio, p.stock,
			COALESCE(p.categoria_id::text, ''), p.activo, p.creado_en
		FROM productos p
		JOIN promociones pr ON pr.producto_id = p.id
		WHERE p.activo AND pr.activa AND pr.fecha_inicio <= $1 AND pr.fecha_fin >= $1`
	return r.scanMany(query, now)
}

// ListAll todos los productos, incluidos inactivos (administración).
func (r *ProductRepo) ListAll() ([]*entity.Product, error) {
	return r.scanMany(`SELECT ` + productColumns + ` FROM productos ORDER BY creado_en DESC`)
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE productos
		SET nombre = $2, descripcion = $3, precio = $4, stock = $5, categoria_id = NULLIF($6, '')::uuid, activo = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Price, product.Stock,
		product.CategoryID, product.Active,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID (borrado duro del admin).
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	return nil
}

// ListImages imágenes de un producto, la principal primero.
func (r *ProductRepo) ListImages(productID string) ([]*entity.ProductImage, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, producto_id, url_imagen, es_principal, creado_en
		FROM imagenes_productos WHERE producto_id = $1
		ORDER BY es_principal DESC, creado_en ASC`, productID)
	if err != nil {
		return nil, fmt.Errorf("list imagenes: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductImage
	for rows.Next() {
		var img entity.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.IsMain, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan imagen: %w", err)
		}
		list = append(list, &img)
	}
	return list, rows.Err()
}

func (r *ProductRepo) scanMany(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID, &p.Active, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
