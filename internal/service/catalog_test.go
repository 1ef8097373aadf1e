package service_test

import (
	"errors"
	"testing"

	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestCatalog_GetProductReadsThrough(t *testing.T) {
	products := newFakeProducts(cable)
	cache := newFakeCache()
	svc := service.NewCatalog(products, cache, discardLogger())

	got, err := svc.GetProduct(t.Context(), cable.ID)
	require.NoError(t, err)
	assert.Equal(t, cable, got)
	assert.Equal(t, 1, products.getCalls)

	got, err = svc.GetProduct(t.Context(), cable.ID)
	require.NoError(t, err)
	assert.Equal(t, cable, got)
	assert.Equal(t, 1, products.getCalls, "second read is served from cache")

	_, err = svc.GetProduct(t.Context(), 404)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCatalog_GetProductCacheFailures(t *testing.T) {
	products := newFakeProducts(cable)
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	svc := service.NewCatalog(products, cache, discardLogger())

	got, err := svc.GetProduct(t.Context(), cable.ID)
	require.NoError(t, err)
	assert.Equal(t, cable, got)
}

func TestCatalog_CreateProduct(t *testing.T) {
	svc := service.NewCatalog(newFakeProducts(cable), newFakeCache(), discardLogger())

	created, err := svc.CreateProduct(t.Context(), domain.Product{
		SKU:        "NEW-1",
		Name:       "New thing",
		PriceCents: 100,
		Currency:   currency.USD,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.IsActive)

	_, err = svc.CreateProduct(t.Context(), domain.Product{
		SKU:        cable.SKU,
		Name:       "dup",
		PriceCents: 100,
		Currency:   currency.USD,
	})
	require.ErrorIs(t, err, domain.ErrDuplicateSKU)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	_, err = svc.CreateProduct(t.Context(), domain.Product{PriceCents: -1})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.EqualError(t, err, "sku is empty, name is empty, price_cents is negative, currency is empty")
}

func TestCatalog_SeedIsRepeatable(t *testing.T) {
	products := newFakeProducts()
	svc := service.NewCatalog(products, newFakeCache(), discardLogger())

	inserted, err := svc.Seed(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 3, inserted)

	inserted, err = svc.Seed(t.Context())
	require.NoError(t, err)
	assert.Zero(t, inserted)

	list, total, err := svc.ListProducts(t.Context(), domain.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 3)
}

func TestCatalog_ListProductsValidation(t *testing.T) {
	svc := service.NewCatalog(newFakeProducts(), newFakeCache(), discardLogger())

	_, _, err := svc.ListProducts(t.Context(), domain.ProductFilter{Limit: service.MaxProductListLimit + 1})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, _, err = svc.ListProducts(t.Context(), domain.ProductFilter{Offset: -1})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}
