package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/kivo-shop/kivo-api/internal/application/dto"
	"github.com/kivo-shop/kivo-api/internal/domain"
	"github.com/kivo-shop/kivo-api/internal/domain/entity"
	"github.com/kivo-shop/kivo-api/internal/domain/repository"
)

// ProductUseCase catálogo de productos: listados públicos con imágenes y
// promociones vigentes, y CRUD de administración.
type ProductUseCase struct {
	products   repository.ProductRepository
	promotions repository.PromotionRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, promotions repository.PromotionRepository) *ProductUseCase {
	return &ProductUseCase{products: products, promotions: promotions}
}

// List listado público: solo activos, con búsqueda/categoría/orden opcionales.
func (uc *ProductUseCase) List(in dto.ListProductsRequest) ([]dto.ProductResponse, error) {
	items, err := uc.products.List(repository.ProductFilter{
		Search:     in.Search,
		CategoryID: in.CategoryID,
		Sort:       in.Sort,
	})
	if err != nil {
		return nil, err
	}
	return uc.attachDetails(items)
}

// ListOnSale productos activos con al menos una promoción vigente.
func (uc *ProductUseCase) ListOnSale() ([]dto.ProductResponse, error) {
	items, err := uc.products.ListOnSale(time.Now())
	if err != nil {
		return nil, err
	}
	return uc.attachDetails(items)
}

// ListAdmin todos los productos, incluidos inactivos, sin adornos de promoción.
func (uc *ProductUseCase) ListAdmin() ([]dto.ProductResponse, error) {
	items, err := uc.products.ListAll()
	if err != nil {
		return nil, err
	}
	return uc.attachDetails(items)
}

// GetByID obtiene un producto con sus detalles.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	out, err := uc.attachDetails([]*entity.Product{p})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// Create crea un producto. Activo por defecto.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Price.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	p := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
		Active:      active,
		CreatedAt:   time.Now(),
	}
	if err := uc.products.Create(p); err != nil {
		return nil, err
	}
	resp := toProductResponse(p, nil, nil)
	return &resp, nil
}

// Update actualización parcial de un producto.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		p.Stock = *in.Stock
	}
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	if err := uc.products.Update(p); err != nil {
		return nil, err
	}
	out, err := uc.attachDetails([]*entity.Product{p})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// Delete borra la fila del producto (el endpoint del admin es borrado duro;
// el borrado lógico de listados es vía Active).
func (uc *ProductUseCase) Delete(id string) error {
	return uc.products.Delete(id)
}

// attachDetails adjunta imágenes y promociones vigentes a cada producto.
func (uc *ProductUseCase) attachDetails(items []*entity.Product) ([]dto.ProductResponse, error) {
	now := time.Now()
	out := make([]dto.ProductResponse, 0, len(items))
	for _, p := range items {
		images, err := uc.products.ListImages(p.ID)
		if err != nil {
			return nil, err
		}
		promos, err := uc.promotions.ListEffectiveByProduct(p.ID, now)
		if err != nil {
			return nil, err
		}
		out = append(out, toProductResponse(p, images, promos))
	}
	return out, nil
}

func toProductResponse(p *entity.Product, images []*entity.ProductImage, promos []*entity.Promotion) dto.ProductResponse {
	imgs := make([]dto.ProductImageResponse, 0, len(images))
	for _, img := range images {
		imgs = append(imgs, dto.ProductImageResponse{ID: img.ID, URL: img.URL, IsMain: img.IsMain})
	}
	prs := make([]dto.PromotionResponse, 0, len(promos))
	for _, pr := range promos {
		prs = append(prs, toPromotionResponse(pr, nil))
	}
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		Images:      imgs,
		Promotions:  prs,
	}
}
