package loyalty_test

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kivo-shop/kivo-api/internal/application/cart"
	"github.com/kivo-shop/kivo-api/internal/application/checkout"
	"github.com/kivo-shop/kivo-api/internal/application/dto"
	"github.com/kivo-shop/kivo-api/internal/application/loyalty"
	"github.com/kivo-shop/kivo-api/internal/domain"
	"github.com/kivo-shop/kivo-api/internal/domain/entity"
	"github.com/kivo-shop/kivo-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeFichaRepo struct {
	byCode map[string]*entity.Ficha
}

func newFakeFichaRepo() *fakeFichaRepo {
	return &fakeFichaRepo{byCode: map[string]*entity.Ficha{}}
}

func (r *fakeFichaRepo) Create(f *entity.Ficha) error {
	if _, ok := r.byCode[f.PurchaseCode]; ok {
		return domain.ErrDuplicate
	}
	clone := *f
	r.byCode[f.PurchaseCode] = &clone
	return nil
}

func (r *fakeFichaRepo) GetByPurchaseCode(code string) (*entity.Ficha, error) {
	f, ok := r.byCode[code]
	if !ok {
		return nil, nil
	}
	clone := *f
	return &clone, nil
}

func (r *fakeFichaRepo) SetStatus(id, status string, redeemedAt *time.Time) error {
	for _, f := range r.byCode {
		if f.ID == id {
			f.Status = status
			f.RedeemedAt = redeemedAt
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeFichaRepo) History(filter repository.FichaHistoryFilter) ([]*repository.FichaHistoryEntry, error) {
	return nil, nil
}

type fakeOrderRepo struct {
	byCode map[string]*entity.Order
	items  map[string][]*entity.OrderItem
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{byCode: map[string]*entity.Order{}, items: map[string][]*entity.OrderItem{}}
}

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	if _, ok := r.byCode[o.PurchaseCode]; ok {
		return domain.ErrDuplicate
	}
	clone := *o
	r.byCode[o.PurchaseCode] = &clone
	return nil
}

func (r *fakeOrderRepo) CreateItem(i *entity.OrderItem) error {
	clone := *i
	r.items[i.OrderID] = append(r.items[i.OrderID], &clone)
	return nil
}

func (r *fakeOrderRepo) GetByCode(code string) (*entity.Order, error) {
	o, ok := r.byCode[code]
	if !ok {
		return nil, nil
	}
	clone := *o
	return &clone, nil
}

func (r *fakeOrderRepo) ListItems(orderID string) ([]*entity.OrderItem, error) {
	return r.items[orderID], nil
}

// fakeQR registra el payload recibido y devuelve un data URL fijo.
type fakeQR struct {
	lastPayload []byte
	lastSize    int
}

func (q *fakeQR) EncodeDataURL(payload []byte, sizePx int) (string, error) {
	q.lastPayload = payload
	q.lastSize = sizePx
	return "data:image/png;base64,ZmFrZQ==", nil
}

type fakeProductRepo struct {
	byID map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{byID: map[string]*entity.Product{}}
	for _, p := range products {
		clone := *p
		r.byID[p.ID] = &clone
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProductRepo) List(f repository.ProductFilter) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) ListOnSale(now time.Time) ([]*entity.Product, error)        { return nil, nil }
func (r *fakeProductRepo) ListAll() ([]*entity.Product, error)                        { return nil, nil }

func (r *fakeProductRepo) Update(p *entity.Product) error {
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeProductRepo) ListImages(productID string) ([]*entity.ProductImage, error) {
	return nil, nil
}

type fakeCartRepo struct {
	byID map[string]*entity.CartItem
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{byID: map[string]*entity.CartItem{}}
}

func (r *fakeCartRepo) Create(item *entity.CartItem) error {
	clone := *item
	r.byID[item.ID] = &clone
	return nil
}

func (r *fakeCartRepo) GetByID(id string) (*entity.CartItem, error) {
	item, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	clone := *item
	return &clone, nil
}

func (r *fakeCartRepo) GetBySessionAndProduct(sessionID, productID string) (*entity.CartItem, error) {
	for _, item := range r.byID {
		if item.SessionID == sessionID && item.ProductID == productID {
			clone := *item
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeCartRepo) ListBySession(sessionID string) ([]*entity.CartItem, error) {
	var out []*entity.CartItem
	for _, item := range r.byID {
		if item.SessionID == sessionID {
			clone := *item
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeCartRepo) UpdateQuantity(id string, quantity int) error {
	if item, ok := r.byID[id]; ok {
		item.Quantity = quantity
	}
	return nil
}

func (r *fakeCartRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeCartRepo) ClearSession(sessionID string) error {
	for id, item := range r.byID {
		if item.SessionID == sessionID {
			delete(r.byID, id)
		}
	}
	return nil
}

// fakeTxRunner ejecuta el callback directo sobre los fakes, sin transacción.
type fakeTxRunner struct {
	carts    repository.CartRepository
	orders   repository.OrderRepository
	products repository.ProductRepository
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(repository.CartRepository, repository.OrderRepository, repository.ProductRepository) error) error {
	return fn(t.carts, t.orders, t.products)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func seedOrder(t *testing.T, orders *fakeOrderRepo, code string) *entity.Order {
	t.Helper()
	order := &entity.Order{
		ID:           uuid.New().String(),
		PurchaseCode: code,
		CustomerName: "Cliente Prueba",
		Total:        decimal.RequireFromString("100.00"),
		Status:       entity.OrderPending,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, orders.Create(order))
	return order
}

func newUseCase(fichas *fakeFichaRepo, orders *fakeOrderRepo, qr *fakeQR) *loyalty.FichaUseCase {
	return loyalty.NewFichaUseCase(fichas, orders, qr)
}

// ──────────────────────────────────────────────────────────────────────────────
// Generate
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_PedidoInexistente(t *testing.T) {
	uc := newUseCase(newFakeFichaRepo(), newFakeOrderRepo(), &fakeQR{})

	_, err := uc.Generate("KIVO-DEADBEEF")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerate_CodigoVacio(t *testing.T) {
	uc := newUseCase(newFakeFichaRepo(), newFakeOrderRepo(), &fakeQR{})

	_, err := uc.Generate("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerate_EmiteFichaConTokenYQR(t *testing.T) {
	fichas := newFakeFichaRepo()
	orders := newFakeOrderRepo()
	qr := &fakeQR{}
	seedOrder(t, orders, "KIVO-AAAA1111")
	uc := newUseCase(fichas, orders, qr)

	out, err := uc.Generate("KIVO-AAAA1111")
	require.NoError(t, err)

	assert.Equal(t, entity.FichaActive, out.Ficha.Status)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}$`), out.Ficha.Token,
		"el token debe ser 16 bytes aleatorios en hex")
	assert.Len(t, out.Ficha.TokenHash, 64, "el digest sha256 en hex tiene 64 caracteres")
	assert.Equal(t, "data:image/png;base64,ZmFrZQ==", out.QRImage)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), out.Ficha.ExpiresAt, time.Minute,
		"la ficha expira 30 días después de su emisión")

	// El payload del QR lleva el token en claro y el código de compra.
	var payload map[string]string
	require.NoError(t, json.Unmarshal(qr.lastPayload, &payload))
	assert.Equal(t, out.Ficha.Token, payload["cod_ficha"])
	assert.Equal(t, "KIVO-AAAA1111", payload["cod_compra"])
	assert.Equal(t, loyalty.QRSizePx, qr.lastSize)
}

func TestGenerate_SegundaVezConflicto(t *testing.T) {
	fichas := newFakeFichaRepo()
	orders := newFakeOrderRepo()
	seedOrder(t, orders, "KIVO-BBBB2222")
	uc := newUseCase(fichas, orders, &fakeQR{})

	_, err := uc.Generate("KIVO-BBBB2222")
	require.NoError(t, err)

	_, err = uc.Generate("KIVO-BBBB2222")
	assert.ErrorIs(t, err, domain.ErrDuplicate,
		"solo puede emitirse una ficha por pedido")
}

// ──────────────────────────────────────────────────────────────────────────────
// Validate
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_FichaActiva(t *testing.T) {
	fichas := newFakeFichaRepo()
	orders := newFakeOrderRepo()
	seedOrder(t, orders, "KIVO-CCCC3333")
	uc := newUseCase(fichas, orders, &fakeQR{})

	_, err := uc.Generate("KIVO-CCCC3333")
	require.NoError(t, err)

	out, err := uc.Validate("KIVO-CCCC3333")
	require.NoError(t, err)
	assert.Equal(t, entity.FichaActive, out.Status)
}

func TestValidate_FichaInexistente(t *testing.T) {
	uc := newUseCase(newFakeFichaRepo(), newFakeOrderRepo(), &fakeQR{})

	_, err := uc.Validate("KIVO-00000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestValidate_ExpiradaTransicionaPerezosa(t *testing.T) {
	fichas := newFakeFichaRepo()
	ficha := &entity.Ficha{
		ID:           uuid.New().String(),
		PurchaseCode: "KIVO-DDDD4444",
		Token:        "0123456789abcdef0123456789abcdef",
		Status:       entity.FichaActive,
		ExpiresAt:    time.Now().Add(-time.Hour),
		CreatedAt:    time.Now().Add(-31 * 24 * time.Hour),
	}
	require.NoError(t, fichas.Create(ficha))
	uc := newUseCase(fichas, newFakeOrderRepo(), &fakeQR{})

	_, err := uc.Validate("KIVO-DDDD4444")
	assert.ErrorIs(t, err, domain.ErrFichaExpired)

	// La transición quedó persistida: lecturas posteriores ya la ven expirada.
	stored, err := fichas.GetByPurchaseCode("KIVO-DDDD4444")
	require.NoError(t, err)
	assert.Equal(t, entity.FichaExpired, stored.Status)

	_, err = uc.Validate("KIVO-DDDD4444")
	assert.ErrorIs(t, err, domain.ErrFichaUsed)
	_, err = uc.Redeem("KIVO-DDDD4444")
	assert.ErrorIs(t, err, domain.ErrFichaUsed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Redeem
// ──────────────────────────────────────────────────────────────────────────────

func TestRedeem_ExactamenteUnaVez(t *testing.T) {
	fichas := newFakeFichaRepo()
	orders := newFakeOrderRepo()
	seedOrder(t, orders, "KIVO-EEEE5555")
	uc := newUseCase(fichas, orders, &fakeQR{})

	_, err := uc.Generate("KIVO-EEEE5555")
	require.NoError(t, err)

	out, err := uc.Redeem("KIVO-EEEE5555")
	require.NoError(t, err)
	assert.Equal(t, "Ficha canjeada exitosamente", out.Message)
	assert.Equal(t, loyalty.RedeemDiscountPercent, out.DiscountApplied)

	stored, err := fichas.GetByPurchaseCode("KIVO-EEEE5555")
	require.NoError(t, err)
	assert.Equal(t, entity.FichaRedeemed, stored.Status)
	require.NotNil(t, stored.RedeemedAt, "el canje debe registrar canjeado_en")

	// El estado canjeado es terminal.
	_, err = uc.Redeem("KIVO-EEEE5555")
	assert.ErrorIs(t, err, domain.ErrFichaUsed)
	_, err = uc.Validate("KIVO-EEEE5555")
	assert.ErrorIs(t, err, domain.ErrFichaUsed)
}

func TestRedeem_ExpiradaNoBarrida(t *testing.T) {
	// Ficha vencida que nadie validó: sigue "activo" en la tabla pero el canje
	// debe expirarla y rechazarla.
	fichas := newFakeFichaRepo()
	ficha := &entity.Ficha{
		ID:           uuid.New().String(),
		PurchaseCode: "KIVO-FFFF6666",
		Token:        "fedcba9876543210fedcba9876543210",
		Status:       entity.FichaActive,
		ExpiresAt:    time.Now().Add(-time.Minute),
		CreatedAt:    time.Now().Add(-31 * 24 * time.Hour),
	}
	require.NoError(t, fichas.Create(ficha))
	uc := newUseCase(fichas, newFakeOrderRepo(), &fakeQR{})

	_, err := uc.Redeem("KIVO-FFFF6666")
	assert.ErrorIs(t, err, domain.ErrFichaExpired)

	stored, err := fichas.GetByPurchaseCode("KIVO-FFFF6666")
	require.NoError(t, err)
	assert.Equal(t, entity.FichaExpired, stored.Status)
	assert.Nil(t, stored.RedeemedAt)
}

func TestRedeemManual_MensajePropio(t *testing.T) {
	fichas := newFakeFichaRepo()
	orders := newFakeOrderRepo()
	seedOrder(t, orders, "KIVO-ABAB7777")
	uc := newUseCase(fichas, orders, &fakeQR{})

	_, err := uc.Generate("KIVO-ABAB7777")
	require.NoError(t, err)

	out, err := uc.RedeemManual("KIVO-ABAB7777")
	require.NoError(t, err)
	assert.Equal(t, "Ficha canjeada manualmente", out.Message)
	assert.Equal(t, loyalty.RedeemDiscountPercent, out.DiscountApplied)
}

func TestRedeem_FichaInexistente(t *testing.T) {
	uc := newUseCase(newFakeFichaRepo(), newFakeOrderRepo(), &fakeQR{})

	_, err := uc.Redeem("KIVO-12345678")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo: carrito → pedido → ficha → canje
// ──────────────────────────────────────────────────────────────────────────────

func TestEscenarioCompleto_CarritoPedidoFichaCanje(t *testing.T) {
	productRepo := newFakeProductRepo(&entity.Product{
		ID:        uuid.New().String(),
		Name:      "Audífonos",
		Price:     decimal.RequireFromString("100.00"),
		Stock:     10,
		Active:    true,
		CreatedAt: time.Now(),
	})
	var productID string
	for id := range productRepo.byID {
		productID = id
	}
	cartRepo := newFakeCartRepo()
	orderRepo := newFakeOrderRepo()
	fichaRepo := newFakeFichaRepo()

	cartUC := cart.NewCartUseCase(cartRepo, productRepo)
	checkoutUC := checkout.NewCheckoutUseCase(
		&fakeTxRunner{carts: cartRepo, orders: orderRepo, products: productRepo},
		orderRepo,
	)
	fichaUC := loyalty.NewFichaUseCase(fichaRepo, orderRepo, &fakeQR{})

	// Dos unidades al carrito.
	_, err := cartUC.Add(dto.AddCartItemRequest{SessionID: "sesion-1", ProductID: productID, Quantity: 2})
	require.NoError(t, err)

	total, err := cartUC.Total("sesion-1")
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("200.00")), "total esperado 200.00, fue %s", total)

	// Pedido con total 200.00 y carrito vaciado.
	order, err := checkoutUC.CreateOrder(context.Background(), dto.CreateOrderRequest{
		SessionID:    "sesion-1",
		CustomerName: "María",
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^KIVO-[0-9A-F]{8}$`), order.PurchaseCode)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("200.00")), "total esperado 200.00, fue %s", order.Total)

	remaining, err := cartRepo.ListBySession("sesion-1")
	require.NoError(t, err)
	assert.Empty(t, remaining, "el carrito queda vacío tras crear el pedido")

	// Emisión, validación y canje de la ficha.
	gen, err := fichaUC.Generate(order.PurchaseCode)
	require.NoError(t, err)
	assert.Equal(t, entity.FichaActive, gen.Ficha.Status)

	validated, err := fichaUC.Validate(order.PurchaseCode)
	require.NoError(t, err)
	assert.Equal(t, entity.FichaActive, validated.Status)

	redeemed, err := fichaUC.Redeem(order.PurchaseCode)
	require.NoError(t, err)
	assert.Equal(t, 10, redeemed.DiscountApplied)

	// Un segundo canje debe fallar.
	_, err = fichaUC.Redeem(order.PurchaseCode)
	assert.ErrorIs(t, err, domain.ErrFichaUsed)
}
