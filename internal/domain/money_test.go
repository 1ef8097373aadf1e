package domain_test

import (
	"testing"

	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
)

func TestMoneyFromMinor(t *testing.T) {
	tests := []struct {
		name       string
		minor      int64
		currency   currency.Unit
		wantAmount string
		wantString string
	}{
		{name: "usd", minor: 1998, currency: currency.USD, wantAmount: "19.98", wantString: "19.98"},
		{name: "usd whole", minor: 500, currency: currency.USD, wantAmount: "5", wantString: "5.00"},
		{name: "jpy has no minor unit", minor: 500, currency: currency.JPY, wantAmount: "500", wantString: "500"},
		{name: "zero", minor: 0, currency: currency.EUR, wantAmount: "0", wantString: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := domain.MoneyFromMinor(tt.minor, tt.currency)

			assert.True(t, m.Amount.Equal(decimal.RequireFromString(tt.wantAmount)), m.Amount.String())
			assert.Equal(t, tt.wantString, m.String())
			assert.Equal(t, tt.minor, m.Minor())
		})
	}
}

func TestOrder_ItemsTotal(t *testing.T) {
	p := domain.Product{ID: 7, SKU: "AMZL-USB-C-01", Name: "USB-C Cable 1m", PriceCents: 999, Currency: currency.USD}

	item := domain.NewOrderItem(p, 2)
	assert.Equal(t, int64(1998), item.LineTotalCents)

	order := domain.Order{
		TotalCents: 1998,
		Currency:   currency.USD,
		Items:      []domain.OrderItem{item},
	}
	assert.Equal(t, order.TotalCents, order.ItemsTotal())
	assert.Equal(t, "19.98", order.Total().String())
}
