package loyalty

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/kivo-shop/kivo-api/internal/application/dto"
	"github.com/kivo-shop/kivo-api/internal/domain"
	"github.com/kivo-shop/kivo-api/internal/domain/codes"
	"github.com/kivo-shop/kivo-api/internal/domain/entity"
	"github.com/kivo-shop/kivo-api/internal/domain/repository"
)

const (
	// FichaValidity ventana de validez de una ficha desde su emisión.
	FichaValidity = 30 * 24 * time.Hour

	// RedeemDiscountPercent descuento plano que otorga todo canje. Es una
	// constante del negocio: no se deriva de la ficha ni del pedido, y no se
	// integra con las promociones del catálogo.
	RedeemDiscountPercent = 10

	// QRSizePx lado en píxeles de la imagen QR emitida.
	QRSizePx = 150
)

// qrPayload contenido escaneable del QR de una ficha.
type qrPayload struct {
	Token        string `json:"cod_ficha"`
	PurchaseCode string `json:"cod_compra"`
}

// FichaUseCase máquina de estados de la ficha de fidelidad:
//
//	activo → canjeado (exactamente una vez, vía Redeem/RedeemManual)
//	activo → expirado (perezoso: la primera lectura que observa la
//	                   expiración vencida persiste la transición)
//
// Canjeado y expirado son terminales.
type FichaUseCase struct {
	fichas repository.FichaRepository
	orders repository.OrderRepository
	qr     QREncoder
}

// NewFichaUseCase construye el caso de uso.
func NewFichaUseCase(fichas repository.FichaRepository, orders repository.OrderRepository, qr QREncoder) *FichaUseCase {
	return &FichaUseCase{fichas: fichas, orders: orders, qr: qr}
}

// Generate emite la ficha de un pedido (solo admin). El pedido debe existir;
// la unicidad por código de compra la garantiza el constraint UNIQUE de la
// tabla: un duplicado llega como domain.ErrDuplicate desde el repositorio,
// sin chequeo previo que pueda correr en paralelo.
func (uc *FichaUseCase) Generate(purchaseCode string) (*dto.GenerateFichaResponse, error) {
	if purchaseCode == "" {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orders.GetByCode(purchaseCode)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	token, err := codes.NewFichaToken()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	ficha := &entity.Ficha{
		ID:           uuid.New().String(),
		PurchaseCode: purchaseCode,
		Token:        token,
		TokenHash:    codes.HashToken(token),
		Status:       entity.FichaActive,
		ExpiresAt:    now.Add(FichaValidity),
		CreatedAt:    now,
	}
	if err := uc.fichas.Create(ficha); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(qrPayload{Token: token, PurchaseCode: purchaseCode})
	if err != nil {
		return nil, err
	}
	qrImage, err := uc.qr.EncodeDataURL(payload, QRSizePx)
	if err != nil {
		return nil, err
	}

	return &dto.GenerateFichaResponse{
		Ficha:   toFichaResponse(ficha),
		QRImage: qrImage,
	}, nil
}

// Validate consulta la ficha de un código de compra. No es de solo lectura:
// si la ficha sigue "activo" pero su expiración ya pasó, aquí se persiste la
// transición a "expirado" antes de rechazarla.
func (uc *FichaUseCase) Validate(purchaseCode string) (*dto.FichaResponse, error) {
	ficha, err := uc.fichas.GetByPurchaseCode(purchaseCode)
	if err != nil {
		return nil, err
	}
	if ficha == nil {
		return nil, domain.ErrNotFound
	}
	if ficha.Status != entity.FichaActive {
		return nil, domain.ErrFichaUsed
	}
	if ficha.Expired(time.Now()) {
		if err := uc.fichas.SetStatus(ficha.ID, entity.FichaExpired, nil); err != nil {
			return nil, err
		}
		return nil, domain.ErrFichaExpired
	}
	resp := toFichaResponse(ficha)
	return &resp, nil
}

// Redeem canjea la ficha (público, vía QR). Devuelve el descuento plano.
func (uc *FichaUseCase) Redeem(purchaseCode string) (*dto.RedeemFichaResponse, error) {
	if err := uc.redeem(purchaseCode); err != nil {
		return nil, err
	}
	return &dto.RedeemFichaResponse{
		Message:         "Ficha canjeada exitosamente",
		DiscountApplied: RedeemDiscountPercent,
	}, nil
}

// RedeemManual canje desde el panel de administración (mismas reglas).
func (uc *FichaUseCase) RedeemManual(purchaseCode string) (*dto.RedeemFichaResponse, error) {
	if err := uc.redeem(purchaseCode); err != nil {
		return nil, err
	}
	return &dto.RedeemFichaResponse{
		Message:         "Ficha canjeada manualmente",
		DiscountApplied: RedeemDiscountPercent,
	}, nil
}

// redeem aplica activo → canjeado. Reverifica la expiración aquí mismo: una
// ficha vencida que nadie validó (y sigue "activo" en la tabla) no se puede
// canjear; se expira en el acto y se rechaza.
func (uc *FichaUseCase) redeem(purchaseCode string) error {
	ficha, err := uc.fichas.GetByPurchaseCode(purchaseCode)
	if err != nil {
		return err
	}
	if ficha == nil {
		return domain.ErrNotFound
	}
	if ficha.Status != entity.FichaActive {
		return domain.ErrFichaUsed
	}
	now := time.Now()
	if ficha.Expired(now) {
		if err := uc.fichas.SetStatus(ficha.ID, entity.FichaExpired, nil); err != nil {
			return err
		}
		return domain.ErrFichaExpired
	}
	return uc.fichas.SetStatus(ficha.ID, entity.FichaRedeemed, &now)
}

// History pedidos con su ficha (si existe), con filtros de estado, fecha y
// búsqueda por código o nombre de cliente (vista de administración).
func (uc *FichaUseCase) History(in dto.FichaHistoryRequest) ([]dto.FichaHistoryEntryResponse, error) {
	entries, err := uc.fichas.History(repository.FichaHistoryFilter{
		Status: in.Status,
		Date:   in.Date,
		Search: in.Search,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.FichaHistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		entry := dto.FichaHistoryEntryResponse{
			Order: dto.OrderResponse{
				ID:              e.Order.ID,
				PurchaseCode:    e.Order.PurchaseCode,
				CustomerName:    e.Order.CustomerName,
				CustomerEmail:   e.Order.CustomerEmail,
				CustomerPhone:   e.Order.CustomerPhone,
				CustomerAddress: e.Order.CustomerAddress,
				Total:           e.Order.Total,
				Status:          e.Order.Status,
				CreatedAt:       e.Order.CreatedAt,
			},
		}
		if e.Ficha != nil {
			f := toFichaResponse(e.Ficha)
			entry.Ficha = &f
		}
		out = append(out, entry)
	}
	return out, nil
}

func toFichaResponse(f *entity.Ficha) dto.FichaResponse {
	return dto.FichaResponse{
		ID:           f.ID,
		PurchaseCode: f.PurchaseCode,
		Token:        f.Token,
		TokenHash:    f.TokenHash,
		Status:       f.Status,
		ExpiresAt:    f.ExpiresAt,
		CreatedAt:    f.CreatedAt,
		RedeemedAt:   f.RedeemedAt,
	}
}
