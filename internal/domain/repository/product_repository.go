package repository

import (
	"time"

	"github.com/kivo-shop/kivo-api/internal/domain/entity"
)

// Ordenamientos aceptados en listados públicos de productos.
const (
	SortPriceAsc  = "precio_asc"
	SortPriceDesc = "precio_desc"
	SortNameAsc   = "nombre_asc"
	SortNameDesc  = "nombre_desc"
)

// ProductFilter filtros del listado público (solo productos activos).
type ProductFilter struct {
	Search     string // coincidencia parcial sobre nombre
	CategoryID string
	Sort       string // Sort* o vacío (más recientes primero)
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List(f ProductFilter) ([]*entity.Product, error)
	// ListOnSale devuelve productos activos con al menos una promoción efectiva en now.
	ListOnSale(now time.Time) ([]*entity.Product, error)
	// ListAll incluye inactivos (vista de administración).
	ListAll() ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	ListImages(productID string) ([]*entity.ProductImage, error)
}
