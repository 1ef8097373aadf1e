package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
)

func randomOrder() domain.Order {
	currencyUnit := randomCurrency() // it has to be the same for all items

	var (
		items []domain.OrderItem
		total int64
	)
	for i := 0; i < gofakeit.Number(1, 5); i++ {
		item := domain.NewOrderItem(randomProduct(currencyUnit), gofakeit.Number(1, 10))
		item.ProductID = int64(gofakeit.Number(1, 1_000_000))
		total += item.LineTotalCents
		items = append(items, item)
	}

	return domain.Order{
		UserID:         gofakeit.UUID(),
		TotalCents:     total,
		Currency:       currencyUnit,
		IdempotencyKey: gofakeit.UUID(),
		Items:          items,
	}
}

func randomProduct(currencyUnit currency.Unit) domain.Product {
	return domain.Product{
		SKU:         gofakeit.Regex(`[A-Z]{4}-[A-Z0-9]{6}`),
		Name:        gofakeit.ProductName(),
		Description: gofakeit.ProductDescription(),
		PriceCents:  int64(gofakeit.Number(1, 100_000)),
		Currency:    currencyUnit,
		StockQty:    gofakeit.Number(0, 500),
	}
}

func randomCurrency() currency.Unit {
	var (
		result currency.Unit
		err    error
	)

	for {
		// tag is not a recognized currency
		result, err = currency.ParseISO(gofakeit.CurrencyShort())
		if err == nil {
			break
		}
	}

	return result
}

var currencyComparer = cmp.Comparer(func(x, y currency.Unit) bool {
	return x.String() == y.String()
})

var decimalComparer = cmp.Comparer(func(x, y decimal.Decimal) bool {
	return x.Equal(y)
})

func assertOrder(t *testing.T, expected, actual domain.Order) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Order{}, "ID", "Status", "CreatedAt"),
		cmpopts.EquateEmpty(),
		currencyComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.NotZero(t, actual.ID)
	assert.False(t, actual.CreatedAt.IsZero())
}

func assertPayment(t *testing.T, expected, actual domain.Payment) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Payment{}, "ID", "CreatedAt"),
		currencyComparer,
		decimalComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.NotZero(t, actual.ID)
	assert.False(t, actual.CreatedAt.IsZero())
}
