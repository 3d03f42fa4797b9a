package repository

import (
	"time"

	"github.com/kivo-shop/kivo-api/internal/domain/entity"
)

// PromotionRepository puerto de persistencia para Promotion.
type PromotionRepository interface {
	Create(promo *entity.Promotion) error
	GetByID(id string) (*entity.Promotion, error)
	ListAll() ([]*entity.Promotion, error)
	// ListEffectiveByProduct devuelve las promociones vigentes para un producto
	// (activa y now dentro de [inicio, fin]), ordenadas por porcentaje
	// descendente y fecha_fin ascendente: la primera es la que aplica.
	ListEffectiveByProduct(productID string, now time.Time) ([]*entity.Promotion, error)
	Update(promo *entity.Promotion) error
	Delete(id string) error
}
