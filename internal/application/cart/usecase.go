package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kivo-shop/kivo-api/internal/application/dto"
	"github.com/kivo-shop/kivo-api/internal/domain"
	"github.com/kivo-shop/kivo-api/internal/domain/entity"
	"github.com/kivo-shop/kivo-api/internal/domain/repository"
)

// CartUseCase carrito anónimo por sesión. Los precios mostrados y el total
// son siempre los vigentes del catálogo: el carrito no congela precios
// (eso ocurre recién al crear el pedido).
type CartUseCase struct {
	items    repository.CartRepository
	products repository.ProductRepository
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(items repository.CartRepository, products repository.ProductRepository) *CartUseCase {
	return &CartUseCase{items: items, products: products}
}

// Add agrega cantidad de un producto al carrito de la sesión. Si ya hay una
// línea para (sesión, producto) incrementa su cantidad; si no, crea la línea.
// No valida contra stock: el stock es informativo, no se reserva.
func (uc *CartUseCase) Add(in dto.AddCartItemRequest) (*dto.CartItemResponse, error) {
	if in.SessionID == "" || in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, domain.ErrNotFound
	}

	existing, err := uc.items.GetBySessionAndProduct(in.SessionID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Quantity += in.Quantity
		if err := uc.items.UpdateQuantity(existing.ID, existing.Quantity); err != nil {
			return nil, err
		}
		resp := toCartItemResponse(existing, nil)
		return &resp, nil
	}

	item := &entity.CartItem{
		ID:        uuid.New().String(),
		SessionID: in.SessionID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		CreatedAt: time.Now(),
	}
	if err := uc.items.Create(item); err != nil {
		return nil, err
	}
	resp := toCartItemResponse(item, nil)
	return &resp, nil
}

// SetQuantity fija la cantidad de una línea. Cantidad <= 0 elimina la línea:
// una línea nunca queda con cantidad cero.
func (uc *CartUseCase) SetQuantity(lineID string, quantity int) (*dto.CartItemResponse, error) {
	item, err := uc.items.GetByID(lineID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if quantity <= 0 {
		if err := uc.items.Delete(lineID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err := uc.items.UpdateQuantity(lineID, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	resp := toCartItemResponse(item, nil)
	return &resp, nil
}

// Remove elimina una línea. Idempotente: una línea inexistente es no-op.
func (uc *CartUseCase) Remove(lineID string) error {
	return uc.items.Delete(lineID)
}

// Clear vacía el carrito de una sesión.
func (uc *CartUseCase) Clear(sessionID string) error {
	return uc.items.ClearSession(sessionID)
}

// List devuelve las líneas de la sesión con el producto actual adjunto y el
// total derivado (precio vigente × cantidad, sumado).
func (uc *CartUseCase) List(sessionID string) (*dto.CartResponse, error) {
	items, err := uc.items.ListBySession(sessionID)
	if err != nil {
		return nil, err
	}
	out := &dto.CartResponse{Items: make([]dto.CartItemResponse, 0, len(items)), Total: decimal.Zero}
	for _, item := range items {
		product, err := uc.products.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		var productResp *dto.ProductResponse
		if product != nil {
			images, err := uc.products.ListImages(product.ID)
			if err != nil {
				return nil, err
			}
			imgs := make([]dto.ProductImageResponse, 0, len(images))
			for _, img := range images {
				imgs = append(imgs, dto.ProductImageResponse{ID: img.ID, URL: img.URL, IsMain: img.IsMain})
			}
			productResp = &dto.ProductResponse{
				ID:          product.ID,
				Name:        product.Name,
				Description: product.Description,
				Price:       product.Price,
				Stock:       product.Stock,
				CategoryID:  product.CategoryID,
				Active:      product.Active,
				CreatedAt:   product.CreatedAt,
				Images:      imgs,
				Promotions:  []dto.PromotionResponse{},
			}
			out.Total = out.Total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		out.Items = append(out.Items, toCartItemResponse(item, productResp))
	}
	return out, nil
}

// Total suma precio vigente × cantidad de todas las líneas de la sesión.
// Derivado, nunca almacenado.
func (uc *CartUseCase) Total(sessionID string) (decimal.Decimal, error) {
	items, err := uc.items.ListBySession(sessionID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, item := range items {
		product, err := uc.products.GetByID(item.ProductID)
		if err != nil {
			return decimal.Zero, err
		}
		if product == nil {
			continue
		}
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total, nil
}

func toCartItemResponse(item *entity.CartItem, product *dto.ProductResponse) dto.CartItemResponse {
	return dto.CartItemResponse{
		ID:        item.ID,
		SessionID: item.SessionID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Product:   product,
	}
}
