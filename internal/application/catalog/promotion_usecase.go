package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kivo-shop/kivo-api/internal/application/dto"
	"github.com/kivo-shop/kivo-api/internal/domain"
	"github.com/kivo-shop/kivo-api/internal/domain/entity"
	"github.com/kivo-shop/kivo-api/internal/domain/repository"
)

var percentMax = decimal.NewFromInt(100)

// PromotionUseCase CRUD de promociones (administración) y selección de la
// promoción vigente de un producto.
type PromotionUseCase struct {
	promotions repository.PromotionRepository
	products   repository.ProductRepository
}

// NewPromotionUseCase construye el caso de uso.
func NewPromotionUseCase(promotions repository.PromotionRepository, products repository.ProductRepository) *PromotionUseCase {
	return &PromotionUseCase{promotions: promotions, products: products}
}

// Create crea una promoción. El porcentaje debe estar en [0, 100] y el
// producto debe existir.
func (uc *PromotionUseCase) Create(in dto.CreatePromotionRequest) (*dto.PromotionResponse, error) {
	if in.Name == "" || in.ProductID == "" || !in.EndsAt.After(in.StartsAt) {
		return nil, domain.ErrInvalidInput
	}
	if in.DiscountPercent.IsNegative() || in.DiscountPercent.GreaterThan(percentMax) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	promo := &entity.Promotion{
		ID:              uuid.New().String(),
		ProductID:       in.ProductID,
		Name:            in.Name,
		DiscountPercent: in.DiscountPercent,
		StartsAt:        in.StartsAt,
		EndsAt:          in.EndsAt,
		Active:          active,
		CreatedAt:       time.Now(),
	}
	if err := uc.promotions.Create(promo); err != nil {
		return nil, err
	}
	resp := toPromotionResponse(promo, nil)
	return &resp, nil
}

// Update actualización parcial de una promoción.
func (uc *PromotionUseCase) Update(id string, in dto.UpdatePromotionRequest) (*dto.PromotionResponse, error) {
	promo, err := uc.promotions.GetByID(id)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, nil
	}
	if in.Name != nil {
		promo.Name = *in.Name
	}
	if in.DiscountPercent != nil {
		if in.DiscountPercent.IsNegative() || in.DiscountPercent.GreaterThan(percentMax) {
			return nil, domain.ErrInvalidInput
		}
		promo.DiscountPercent = *in.DiscountPercent
	}
	if in.StartsAt != nil {
		promo.StartsAt = *in.StartsAt
	}
	if in.EndsAt != nil {
		promo.EndsAt = *in.EndsAt
	}
	if in.Active != nil {
		promo.Active = *in.Active
	}
	if !promo.EndsAt.After(promo.StartsAt) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.promotions.Update(promo); err != nil {
		return nil, err
	}
	resp := toPromotionResponse(promo, nil)
	return &resp, nil
}

// Delete borra una promoción.
func (uc *PromotionUseCase) Delete(id string) error {
	return uc.promotions.Delete(id)
}

// ListAdmin todas las promociones con su producto adjunto.
func (uc *PromotionUseCase) ListAdmin() ([]dto.PromotionResponse, error) {
	items, err := uc.promotions.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]dto.PromotionResponse, 0, len(items))
	for _, promo := range items {
		var productResp *dto.ProductResponse
		if product, err := uc.products.GetByID(promo.ProductID); err == nil && product != nil {
			r := toProductResponse(product, nil, nil)
			productResp = &r
		}
		out = append(out, toPromotionResponse(promo, productResp))
	}
	return out, nil
}

// CurrentForProduct devuelve la promoción que aplica a un producto en este
// instante, o nil si no hay ninguna vigente. Cuando varias se solapan gana la
// de mayor porcentaje; a igual porcentaje, la que vence primero (desempate
// explícito, el orden lo impone el repositorio).
func (uc *PromotionUseCase) CurrentForProduct(productID string) (*dto.PromotionResponse, error) {
	promos, err := uc.promotions.ListEffectiveByProduct(productID, time.Now())
	if err != nil {
		return nil, err
	}
	if len(promos) == 0 {
		return nil, nil
	}
	resp := toPromotionResponse(promos[0], nil)
	return &resp, nil
}

func toPromotionResponse(p *entity.Promotion, product *dto.ProductResponse) dto.PromotionResponse {
	return dto.PromotionResponse{
		ID:              p.ID,
		ProductID:       p.ProductID,
		Name:            p.Name,
		DiscountPercent: p.DiscountPercent,
		StartsAt:        p.StartsAt,
		EndsAt:          p.EndsAt,
		Active:          p.Active,
		CreatedAt:       p.CreatedAt,
		Product:         product,
	}
}
