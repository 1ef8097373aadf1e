package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcheckout/internal/db"
	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/port"
	"github.com/samber/lo"
	"golang.org/x/text/currency"
)

type productRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{
		q: db.New(pool),
	}
}

func (r *productRepository) GetProduct(ctx context.Context, productID int64) (domain.Product, error) {
	row, err := r.q.GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.GetProduct: %w", mapReadError(err))
	}

	product, err := mapDBProductToDomain(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("mapDBProductToDomain: %w", err)
	}

	return product, nil
}

func (r *productRepository) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	if filter.Limit <= 0 {
		return nil, 0, errors.New("limit must be positive")
	}

	var pattern string
	if filter.Query != "" {
		pattern = "%" + filter.Query + "%"
	}

	rows, err := r.q.ListProducts(ctx, db.ListProductsParams{
		ActiveOnly: filter.ActiveOnly,
		Pattern:    pattern,
		RowLimit:   int32(filter.Limit),
		RowOffset:  int32(filter.Offset),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("q.ListProducts: %w", err)
	}

	total, err := r.q.CountProducts(ctx, db.CountProductsParams{
		ActiveOnly: filter.ActiveOnly,
		Pattern:    pattern,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("q.CountProducts: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		product, err := mapDBProductToDomain(row)
		if err != nil {
			return nil, 0, fmt.Errorf("mapDBProductToDomain: %w", err)
		}
		products = append(products, product)
	}

	return products, total, nil
}

func (r *productRepository) InsertProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.SKU == "" {
		return domain.Product{}, errors.New("sku is empty")
	}
	if product.PriceCents < 0 {
		return domain.Product{}, fmt.Errorf("price[%d] is negative", product.PriceCents)
	}

	row, err := r.q.InsertProduct(ctx, db.InsertProductParams{
		Sku:         product.SKU,
		Name:        product.Name,
		Description: lo.EmptyableToPtr(product.Description),
		PriceCents:  product.PriceCents,
		Currency:    product.Currency.String(),
		StockQty:    int32(product.StockQty),
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.InsertProduct: %w", mapWriteError(err))
	}

	result := product
	result.ID = row.ID
	result.IsActive = row.IsActive
	result.CreatedAt = row.CreatedAt

	return result, nil
}

func mapDBProductToDomain(row db.Product) (domain.Product, error) {
	parsedCurrency, err := currency.ParseISO(row.Currency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", row.Currency, err)
	}

	return domain.Product{
		ID:          row.ID,
		SKU:         row.Sku,
		Name:        row.Name,
		Description: lo.FromPtr(row.Description),
		PriceCents:  row.PriceCents,
		Currency:    parsedCurrency,
		StockQty:    int(row.StockQty),
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
	}, nil
}
