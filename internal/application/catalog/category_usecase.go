package catalog

import (
	"github.com/kivo-shop/kivo-api/internal/application/dto"
	"github.com/kivo-shop/kivo-api/internal/domain/repository"
)

// CategoryUseCase listado público de categorías activas.
type CategoryUseCase struct {
	categories repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categories repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categories: categories}
}

// ListActive categorías activas ordenadas por nombre.
func (uc *CategoryUseCase) ListActive() ([]dto.CategoryResponse, error) {
	items, err := uc.categories.ListActive()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(items))
	for _, c := range items {
		out = append(out, dto.CategoryResponse{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Active:      c.Active,
		})
	}
	return out, nil
}
