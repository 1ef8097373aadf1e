package domain

import (
	"time"

	"golang.org/x/text/currency"
)

type Product struct {
	ID          int64
	SKU         string
	Name        string
	Description string
	PriceCents  int64
	Currency    currency.Unit
	StockQty    int
	IsActive    bool

	CreatedAt time.Time
}

type ProductFilter struct {
	Query      string
	ActiveOnly bool
	Limit      int
	Offset     int
}
