package domain

import (
	"time"

	"github.com/samber/lo"
	"golang.org/x/text/currency"
)

// Order is the materialized result of one checkout. Items and totals are
// fixed at creation, only Status changes afterwards.
type Order struct {
	ID             int64
	UserID         string
	Status         OrderStatus
	TotalCents     int64
	Currency       currency.Unit
	IdempotencyKey string // empty when the client sent none
	Items          []OrderItem

	CreatedAt time.Time
}

// OrderItem is a priced snapshot of a product taken at checkout time.
type OrderItem struct {
	ProductID      int64
	SKU            string
	Name           string
	Quantity       int
	UnitPriceCents int64
	LineTotalCents int64
}

func NewOrderItem(p Product, quantity int) OrderItem {
	return OrderItem{
		ProductID:      p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		Quantity:       quantity,
		UnitPriceCents: p.PriceCents,
		LineTotalCents: p.PriceCents * int64(quantity),
	}
}

func (o Order) Total() Money {
	return MoneyFromMinor(o.TotalCents, o.Currency)
}

// ItemsTotal sums line totals, it must equal TotalCents for a well-formed order.
func (o Order) ItemsTotal() int64 {
	return lo.SumBy(o.Items, func(item OrderItem) int64 {
		return item.LineTotalCents
	})
}
