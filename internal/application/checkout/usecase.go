package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kivo-shop/kivo-api/internal/application/dto"
	"github.com/kivo-shop/kivo-api/internal/domain"
	"github.com/kivo-shop/kivo-api/internal/domain/codes"
	"github.com/kivo-shop/kivo-api/internal/domain/entity"
	"github.com/kivo-shop/kivo-api/internal/domain/repository"
)

// CheckoutUseCase convierte el carrito de una sesión en un pedido inmutable
// con código de compra KIVO-XXXXXXXX, dentro de una sola transacción.
type CheckoutUseCase struct {
	txRunner TxRunner
	orders   repository.OrderRepository
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(txRunner TxRunner, orders repository.OrderRepository) *CheckoutUseCase {
	return &CheckoutUseCase{txRunner: txRunner, orders: orders}
}

// CreateOrder crea el pedido desde el carrito de la sesión. En una única
// transacción: lee el carrito (vacío → ErrEmptyCart), congela precio unitario
// por línea, suma el total, inserta pedido + líneas y vacía el carrito.
// descuento_aplicado queda en 0: las promociones no se propagan al pedido.
func (uc *CheckoutUseCase) CreateOrder(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.SessionID == "" || in.CustomerName == "" {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.OrderResponse
	err := uc.txRunner.Run(ctx, func(
		cartRepo repository.CartRepository,
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error {
		lines, err := cartRepo.ListBySession(in.SessionID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyCart
		}

		code, err := codes.NewPurchaseCode()
		if err != nil {
			return err
		}

		type snapshot struct {
			line  *entity.CartItem
			price decimal.Decimal
		}
		snapshots := make([]snapshot, 0, len(lines))
		total := decimal.Zero
		for _, line := range lines {
			product, err := productRepo.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			snapshots = append(snapshots, snapshot{line: line, price: product.Price})
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		order := &entity.Order{
			ID:              uuid.New().String(),
			PurchaseCode:    code,
			CustomerName:    in.CustomerName,
			CustomerEmail:   in.CustomerEmail,
			CustomerPhone:   in.CustomerPhone,
			CustomerAddress: in.CustomerAddress,
			Total:           total,
			Status:          entity.OrderPending,
			CreatedAt:       time.Now(),
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}

		items := make([]dto.OrderItemResponse, 0, len(snapshots))
		for _, s := range snapshots {
			item := &entity.OrderItem{
				ID:              uuid.New().String(),
				OrderID:         order.ID,
				ProductID:       s.line.ProductID,
				Quantity:        s.line.Quantity,
				UnitPrice:       s.price,
				DiscountApplied: decimal.Zero,
			}
			if err := orderRepo.CreateItem(item); err != nil {
				return err
			}
			items = append(items, toOrderItemResponse(item))
		}

		if err := cartRepo.ClearSession(in.SessionID); err != nil {
			return err
		}

		resp := toOrderResponse(order)
		resp.Items = items
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByCode busca un pedido por su código de compra.
func (uc *CheckoutUseCase) GetByCode(purchaseCode string) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByCode(purchaseCode)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	items, err := uc.orders.ListItems(order.ID)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	for _, item := range items {
		resp.Items = append(resp.Items, toOrderItemResponse(item))
	}
	return &resp, nil
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:              o.ID,
		PurchaseCode:    o.PurchaseCode,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		Total:           o.Total,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
	}
}

func toOrderItemResponse(i *entity.OrderItem) dto.OrderItemResponse {
	return dto.OrderItemResponse{
		ID:              i.ID,
		ProductID:       i.ProductID,
		Quantity:        i.Quantity,
		UnitPrice:       i.UnitPrice,
		DiscountApplied: i.DiscountApplied,
	}
}
