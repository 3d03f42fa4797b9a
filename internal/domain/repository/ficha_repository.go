package repository

import (
	"time"

	"github.com/kivo-shop/kivo-api/internal/domain/entity"
)

// FichaHistoryFilter filtros del historial de fichas del admin.
type FichaHistoryFilter struct {
	Status string // activo | canjeado | expirado
	Date   string // YYYY-MM-DD sobre la fecha de creación del pedido
	Search string // parcial sobre código de compra o nombre del cliente
}

// FichaHistoryEntry un pedido con su ficha (si fue emitida).
type FichaHistoryEntry struct {
	Order entity.Order
	Ficha *entity.Ficha
}

// FichaRepository puerto de persistencia para fichas.
// Create debe devolver domain.ErrDuplicate cuando ya existe una ficha para el
// mismo código de compra: la unicidad la garantiza la base de datos, no un
// chequeo previo.
type FichaRepository interface {
	Create(ficha *entity.Ficha) error
	GetByPurchaseCode(purchaseCode string) (*entity.Ficha, error)
	// SetStatus cambia el estado; redeemedAt solo se escribe al canjear.
	SetStatus(id, status string, redeemedAt *time.Time) error
	History(f FichaHistoryFilter) ([]*FichaHistoryEntry, error)
}
