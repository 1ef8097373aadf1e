package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/port"
	"golang.org/x/text/currency"
)

const (
	DefaultProductListLimit = 20
	MaxProductListLimit     = 100
)

type Catalog struct {
	products port.ProductRepository
	cache    port.ProductCache
	logger   *slog.Logger
}

func NewCatalog(products port.ProductRepository, cache port.ProductCache, logger *slog.Logger) *Catalog {
	return &Catalog{
		products: products,
		cache:    cache,
		logger:   logger.With("component", "catalog"),
	}
}

// GetProduct reads through the cache. Cache failures only cost a database read.
func (s *Catalog) GetProduct(ctx context.Context, productID int64) (domain.Product, error) {
	cached, ok, err := s.cache.Get(ctx, productID)
	if err != nil {
		s.logger.WarnContext(ctx, "product cache read failed", "method", "GetProduct", "product_id", productID, "error", err)
	}
	if ok {
		return cached, nil
	}

	product, err := s.products.GetProduct(ctx, productID)
	if errors.Is(err, port.ErrNotFound) {
		return domain.Product{}, fmt.Errorf("product[%d]: %w", productID, domain.ErrProductNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.GetProduct: %w", err)
	}

	bestEffort(ctx, s.logger, "cache product", func(ctx context.Context) error {
		return s.cache.Set(ctx, product)
	})

	return product, nil
}

func (s *Catalog) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	if filter.Limit == 0 {
		filter.Limit = DefaultProductListLimit
	}
	if filter.Limit < 1 || filter.Limit > MaxProductListLimit || filter.Offset < 0 {
		return nil, 0, &domain.Error{
			Kind:    domain.KindValidation,
			Code:    "invalid_page",
			Message: fmt.Sprintf("limit must be between 1 and %d and offset must not be negative", MaxProductListLimit),
		}
	}
	filter.Query = strings.TrimSpace(filter.Query)
	filter.ActiveOnly = true

	products, total, err := s.products.ListProducts(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("products.ListProducts: %w", err)
	}

	return products, total, nil
}

func (s *Catalog) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := validateProduct(product); err != nil {
		return domain.Product{}, err
	}

	created, err := s.products.InsertProduct(ctx, product)
	if errors.Is(err, port.ErrUniqueViolation) {
		return domain.Product{}, fmt.Errorf("sku[%s]: %w", product.SKU, domain.ErrDuplicateSKU)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.InsertProduct: %w", err)
	}

	s.logger.InfoContext(ctx, "product created", "method", "CreateProduct", "product_id", created.ID, "sku", created.SKU)

	return created, nil
}

// Seed inserts the sample products that are not present yet and returns how many were added.
func (s *Catalog) Seed(ctx context.Context) (int, error) {
	inserted := 0

	for _, p := range seedProducts() {
		_, err := s.CreateProduct(ctx, p)
		if errors.Is(err, domain.ErrDuplicateSKU) {
			continue
		}
		if err != nil {
			return inserted, fmt.Errorf("s.CreateProduct[%s]: %w", p.SKU, err)
		}
		inserted++
	}

	return inserted, nil
}

func seedProducts() []domain.Product {
	return []domain.Product{
		{SKU: "AMZL-USB-C-01", Name: "USB-C Cable 1m", Description: "Fast charge USB-C cable", PriceCents: 999, Currency: currency.USD, StockQty: 120},
		{SKU: "AMZL-MOUSE-02", Name: "Wireless Mouse", Description: "Ergonomic wireless mouse", PriceCents: 2499, Currency: currency.USD, StockQty: 45},
		{SKU: "AMZL-KB-03", Name: "Mechanical Keyboard", Description: "Compact mechanical keyboard", PriceCents: 6999, Currency: currency.USD, StockQty: 18},
	}
}

func validateProduct(p domain.Product) error {
	var problems []string

	if strings.TrimSpace(p.SKU) == "" {
		problems = append(problems, "sku is empty")
	}
	if strings.TrimSpace(p.Name) == "" {
		problems = append(problems, "name is empty")
	}
	if p.PriceCents < 0 {
		problems = append(problems, "price_cents is negative")
	}
	if p.StockQty < 0 {
		problems = append(problems, "stock_qty is negative")
	}
	if p.Currency == (currency.Unit{}) {
		problems = append(problems, "currency is empty")
	}

	if len(problems) == 0 {
		return nil
	}

	return &domain.Error{
		Kind:    domain.KindValidation,
		Code:    "invalid_product",
		Message: strings.Join(problems, ", "),
	}
}
