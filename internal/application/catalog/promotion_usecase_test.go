package catalog_test

import (
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kivo-shop/kivo-api/internal/application/catalog"
	"github.com/kivo-shop/kivo-api/internal/application/dto"
	"github.com/kivo-shop/kivo-api/internal/domain"
	"github.com/kivo-shop/kivo-api/internal/domain/entity"
	"github.com/kivo-shop/kivo-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memPromotionRepo struct {
	byID map[string]*entity.Promotion
}

func newMemPromotionRepo() *memPromotionRepo {
	return &memPromotionRepo{byID: map[string]*entity.Promotion{}}
}

func (r *memPromotionRepo) Create(p *entity.Promotion) error {
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *memPromotionRepo) GetByID(id string) (*entity.Promotion, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *memPromotionRepo) ListAll() ([]*entity.Promotion, error) {
	var out []*entity.Promotion
	for _, p := range r.byID {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

// ListEffectiveByProduct replica el contrato del adaptador real: vigentes,
// mayor porcentaje primero y a igual porcentaje la que vence antes.
func (r *memPromotionRepo) ListEffectiveByProduct(productID string, now time.Time) ([]*entity.Promotion, error) {
	var out []*entity.Promotion
	for _, p := range r.byID {
		if p.ProductID == productID && p.EffectiveAt(now) {
			clone := *p
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DiscountPercent.Equal(out[j].DiscountPercent) {
			return out[i].DiscountPercent.GreaterThan(out[j].DiscountPercent)
		}
		return out[i].EndsAt.Before(out[j].EndsAt)
	})
	return out, nil
}

func (r *memPromotionRepo) Update(p *entity.Promotion) error {
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *memPromotionRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

type memProductRepo struct {
	byID map[string]*entity.Product
}

func newMemProductRepo(products ...*entity.Product) *memProductRepo {
	r := &memProductRepo{byID: map[string]*entity.Product{}}
	for _, p := range products {
		clone := *p
		r.byID[p.ID] = &clone
	}
	return r
}

func (r *memProductRepo) Create(p *entity.Product) error {
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *memProductRepo) List(f repository.ProductFilter) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) ListOnSale(now time.Time) ([]*entity.Product, error)        { return nil, nil }
func (r *memProductRepo) ListAll() ([]*entity.Product, error)                        { return nil, nil }

func (r *memProductRepo) Update(p *entity.Product) error {
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

func (r *memProductRepo) ListImages(productID string) ([]*entity.ProductImage, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func seedProduct() *entity.Product {
	return &entity.Product{
		ID:        uuid.New().String(),
		Name:      "Producto",
		Price:     decimal.RequireFromString("100.00"),
		Active:    true,
		CreatedAt: time.Now(),
	}
}

func seedPromotion(t *testing.T, repo *memPromotionRepo, productID, percent string, endsIn time.Duration) *entity.Promotion {
	t.Helper()
	promo := &entity.Promotion{
		ID:              uuid.New().String(),
		ProductID:       productID,
		Name:            "Promo " + percent,
		DiscountPercent: decimal.RequireFromString(percent),
		StartsAt:        time.Now().Add(-time.Hour),
		EndsAt:          time.Now().Add(endsIn),
		Active:          true,
		CreatedAt:       time.Now(),
	}
	require.NoError(t, repo.Create(promo))
	return promo
}

// ──────────────────────────────────────────────────────────────────────────────
// Create / Update — validación de porcentaje y fechas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePromotion_PorcentajeFueraDeRango(t *testing.T) {
	p := seedProduct()
	uc := catalog.NewPromotionUseCase(newMemPromotionRepo(), newMemProductRepo(p))

	base := dto.CreatePromotionRequest{
		ProductID: p.ID,
		Name:      "Promo",
		StartsAt:  time.Now(),
		EndsAt:    time.Now().Add(24 * time.Hour),
	}

	base.DiscountPercent = decimal.RequireFromString("101")
	_, err := uc.Create(base)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	base.DiscountPercent = decimal.RequireFromString("-1")
	_, err = uc.Create(base)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	base.DiscountPercent = decimal.RequireFromString("100")
	_, err = uc.Create(base)
	assert.NoError(t, err, "100 es el límite superior permitido")
}

func TestCreatePromotion_FechasIncoherentes(t *testing.T) {
	p := seedProduct()
	uc := catalog.NewPromotionUseCase(newMemPromotionRepo(), newMemProductRepo(p))

	_, err := uc.Create(dto.CreatePromotionRequest{
		ProductID:       p.ID,
		Name:            "Promo",
		DiscountPercent: decimal.RequireFromString("10"),
		StartsAt:        time.Now().Add(24 * time.Hour),
		EndsAt:          time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreatePromotion_ProductoInexistente(t *testing.T) {
	uc := catalog.NewPromotionUseCase(newMemPromotionRepo(), newMemProductRepo())

	_, err := uc.Create(dto.CreatePromotionRequest{
		ProductID:       uuid.New().String(),
		Name:            "Promo",
		DiscountPercent: decimal.RequireFromString("10"),
		StartsAt:        time.Now(),
		EndsAt:          time.Now().Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// CurrentForProduct — desempate entre promociones solapadas
// ──────────────────────────────────────────────────────────────────────────────

func TestCurrentForProduct_GanaElMayorPorcentaje(t *testing.T) {
	p := seedProduct()
	promos := newMemPromotionRepo()
	seedPromotion(t, promos, p.ID, "10", 48*time.Hour)
	winner := seedPromotion(t, promos, p.ID, "25", 72*time.Hour)
	uc := catalog.NewPromotionUseCase(promos, newMemProductRepo(p))

	out, err := uc.CurrentForProduct(p.ID)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, winner.ID, out.ID)
}

func TestCurrentForProduct_EmpateGanaLaQueVencePrimero(t *testing.T) {
	p := seedProduct()
	promos := newMemPromotionRepo()
	winner := seedPromotion(t, promos, p.ID, "20", 24*time.Hour)
	seedPromotion(t, promos, p.ID, "20", 72*time.Hour)
	uc := catalog.NewPromotionUseCase(promos, newMemProductRepo(p))

	out, err := uc.CurrentForProduct(p.ID)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, winner.ID, out.ID,
		"a igual porcentaje gana la promoción con fecha_fin más próxima")
}

func TestCurrentForProduct_IgnoraVencidasEInactivas(t *testing.T) {
	p := seedProduct()
	promos := newMemPromotionRepo()
	seedPromotion(t, promos, p.ID, "50", -time.Hour) // vencida
	inactive := seedPromotion(t, promos, p.ID, "40", 24*time.Hour)
	inactive.Active = false
	require.NoError(t, promos.Update(inactive))
	uc := catalog.NewPromotionUseCase(promos, newMemProductRepo(p))

	out, err := uc.CurrentForProduct(p.ID)
	require.NoError(t, err)
	assert.Nil(t, out, "sin promociones vigentes no hay ganadora")
}
