package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	CategoryID  string          `json:"categoria_id"`
	Active      *bool           `json:"activo"`
}

// UpdateProductRequest entrada para actualización parcial de un producto.
type UpdateProductRequest struct {
	Name        *string          `json:"nombre"`
	Description *string          `json:"descripcion"`
	Price       *decimal.Decimal `json:"precio"`
	Stock       *int             `json:"stock"`
	CategoryID  *string          `json:"categoria_id"`
	Active      *bool            `json:"activo"`
}

// ProductImageResponse imagen asociada a un producto.
type ProductImageResponse struct {
	ID     string `json:"id"`
	URL    string `json:"url_imagen"`
	IsMain bool   `json:"es_principal"`
}

// ProductResponse salida de un producto con imágenes y promociones vigentes.
// El precio es el actual del catálogo, no una instantánea.
type ProductResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"nombre"`
	Description string                 `json:"descripcion"`
	Price       decimal.Decimal        `json:"precio"`
	Stock       int                    `json:"stock"`
	CategoryID  string                 `json:"categoria_id,omitempty"`
	Active      bool                   `json:"activo"`
	CreatedAt   time.Time              `json:"creado_en"`
	Images      []ProductImageResponse `json:"imagenes_productos"`
	Promotions  []PromotionResponse    `json:"promociones"`
}

// ListProductsRequest filtros del listado público.
type ListProductsRequest struct {
	Search     string `query:"busqueda"`
	CategoryID string `query:"categoria"`
	Sort       string `query:"ordenar"`
}
