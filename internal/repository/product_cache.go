package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/port"
	"github.com/redis/go-redis/v9"
	"golang.org/x/text/currency"
)

type productCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProductCache(client *redis.Client, ttl time.Duration) port.ProductCache {
	return &productCache{
		client: client,
		ttl:    ttl,
	}
}

type cachedProduct struct {
	ID          int64     `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Currency    string    `json:"currency"`
	StockQty    int       `json:"stock_qty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *productCache) Get(ctx context.Context, productID int64) (domain.Product, bool, error) {
	raw, err := c.client.Get(ctx, productKey(productID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("client.Get: %w", err)
	}

	var cp cachedProduct
	if err := json.Unmarshal(raw, &cp); err != nil {
		return domain.Product{}, false, fmt.Errorf("json.Unmarshal: %w", err)
	}

	parsedCurrency, err := currency.ParseISO(cp.Currency)
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("currency[%s] is not valid: %w", cp.Currency, err)
	}

	return domain.Product{
		ID:          cp.ID,
		SKU:         cp.SKU,
		Name:        cp.Name,
		Description: cp.Description,
		PriceCents:  cp.PriceCents,
		Currency:    parsedCurrency,
		StockQty:    cp.StockQty,
		IsActive:    cp.IsActive,
		CreatedAt:   cp.CreatedAt,
	}, true, nil
}

func (c *productCache) Set(ctx context.Context, p domain.Product) error {
	payload, err := json.Marshal(cachedProduct{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Currency:    p.Currency.String(),
		StockQty:    p.StockQty,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := c.client.Set(ctx, productKey(p.ID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

func productKey(productID int64) string {
	return "product:" + strconv.FormatInt(productID, 10)
}
