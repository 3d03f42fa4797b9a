package repository

import "github.com/kivo-shop/kivo-api/internal/domain/entity"

// CategoryRepository puerto de persistencia para Category.
type CategoryRepository interface {
	ListActive() ([]*entity.Category, error)
	GetByID(id string) (*entity.Category, error)
}
