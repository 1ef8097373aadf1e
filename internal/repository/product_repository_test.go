package repository_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/port"
	"github.com/nikolayk812/shopcheckout/internal/repository"
	"github.com/nikolayk812/shopcheckout/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"go.uber.org/goleak"
	"golang.org/x/text/currency"
)

type productRepositorySuite struct {
	suite.Suite

	repo      port.ProductRepository
	pool      *pgxpool.Pool
	container testcontainers.Container
}

// entry point to run the tests in the suite
func TestProductRepositorySuite(t *testing.T) {
	defer goleak.VerifyNone(t)

	suite.Run(t, new(productRepositorySuite))
}

// before all tests in the suite
func (suite *productRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var err error

	suite.container, suite.pool, err = testutil.StartPostgres(ctx)
	suite.Require().NoError(err)

	suite.repo = repository.NewProduct(suite.pool)
}

// after all tests in the suite
func (suite *productRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(suite.T().Context()))
	}
}

func (suite *productRepositorySuite) TestInsertAndGetProduct() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	product := randomProduct(currency.USD)

	inserted, err := suite.repo.InsertProduct(ctx, product)
	require.NoError(t, err)
	assert.True(t, inserted.IsActive)

	actual, err := suite.repo.GetProduct(ctx, inserted.ID)
	require.NoError(t, err)

	assertProduct(t, product, actual)

	_, err = suite.repo.GetProduct(ctx, inserted.ID+1000)
	require.ErrorIs(t, err, port.ErrNotFound)
}

func (suite *productRepositorySuite) TestInsertProduct_DuplicateSKU() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	product := randomProduct(currency.EUR)
	_, err := suite.repo.InsertProduct(ctx, product)
	require.NoError(t, err)

	duplicate := randomProduct(currency.EUR)
	duplicate.SKU = product.SKU

	_, err = suite.repo.InsertProduct(ctx, duplicate)
	require.ErrorIs(t, err, port.ErrUniqueViolation)
	assert.ErrorContains(t, err, "uq_products_sku")
}

func (suite *productRepositorySuite) TestListProducts() {
	defer suite.deleteAll()

	ctx := suite.T().Context()

	cable := randomProduct(currency.USD)
	cable.SKU = "AMZL-USB-C-01"
	cable.Name = "USB-C Cable 1m"

	mouse := randomProduct(currency.USD)
	mouse.SKU = "AMZL-MOUSE-02"
	mouse.Name = "Wireless Mouse"

	for _, p := range []domain.Product{cable, mouse} {
		_, err := suite.repo.InsertProduct(ctx, p)
		suite.Require().NoError(err)
	}

	tests := []struct {
		name      string
		filter    domain.ProductFilter
		wantSKUs  []string
		wantTotal int64
		wantError string
	}{
		{
			name:      "all, newest first",
			filter:    domain.ProductFilter{Limit: 10, ActiveOnly: true},
			wantSKUs:  []string{mouse.SKU, cable.SKU},
			wantTotal: 2,
		},
		{
			name:      "query matches name case-insensitively",
			filter:    domain.ProductFilter{Limit: 10, Query: "cable"},
			wantSKUs:  []string{cable.SKU},
			wantTotal: 1,
		},
		{
			name:      "query matches sku",
			filter:    domain.ProductFilter{Limit: 10, Query: "MOUSE"},
			wantSKUs:  []string{mouse.SKU},
			wantTotal: 1,
		},
		{
			name:      "offset pages, total stays",
			filter:    domain.ProductFilter{Limit: 1, Offset: 1},
			wantSKUs:  []string{cable.SKU},
			wantTotal: 2,
		},
		{
			name:      "no limit: error",
			filter:    domain.ProductFilter{},
			wantError: "limit must be positive",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			products, total, err := suite.repo.ListProducts(t.Context(), tt.filter)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			var skus []string
			for _, p := range products {
				skus = append(skus, p.SKU)
			}

			assert.Equal(t, tt.wantSKUs, skus)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}

func (suite *productRepositorySuite) deleteAll() {
	suite.NoError(testutil.TruncateAll(suite.T().Context(), suite.pool))
}

func assertProduct(t *testing.T, expected, actual domain.Product) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Product{}, "ID", "IsActive", "CreatedAt"),
		currencyComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.NotZero(t, actual.ID)
	assert.True(t, actual.IsActive)
	assert.False(t, actual.CreatedAt.IsZero())
}
