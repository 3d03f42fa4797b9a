package dto

import "github.com/shopspring/decimal"

// AddCartItemRequest entrada para agregar al carrito. Si ya existe una línea
// para (sesión, producto), la cantidad se incrementa.
type AddCartItemRequest struct {
	SessionID string `json:"sesion_id"`
	ProductID string `json:"producto_id"`
	Quantity  int    `json:"cantidad"`
}

// UpdateCartItemRequest entrada para fijar la cantidad de una línea.
type UpdateCartItemRequest struct {
	Quantity int `json:"cantidad"`
}

// CartItemResponse línea de carrito con el producto actual adjunto.
type CartItemResponse struct {
	ID        string           `json:"id"`
	SessionID string           `json:"sesion_id"`
	ProductID string           `json:"producto_id"`
	Quantity  int              `json:"cantidad"`
	Product   *ProductResponse `json:"producto,omitempty"`
}

// CartResponse carrito completo con total derivado de precios vigentes.
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}
