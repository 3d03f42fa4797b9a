package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promotion descuento porcentual sobre un producto, acotado en el tiempo.
type Promotion struct {
	ID              string
	ProductID       string
	Name            string
	DiscountPercent decimal.Decimal // 0–100
	StartsAt        time.Time
	EndsAt          time.Time
	Active          bool
	CreatedAt       time.Time
}

// EffectiveAt indica si la promoción aplica en el instante dado:
// activa y now dentro de [StartsAt, EndsAt].
func (p *Promotion) EffectiveAt(now time.Time) bool {
	return p.Active && !now.Before(p.StartsAt) && !now.After(p.EndsAt)
}
