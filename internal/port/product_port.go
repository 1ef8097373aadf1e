package port

import (
	"context"

	"github.com/nikolayk812/shopcheckout/internal/domain"
)

type ProductRepository interface {
	GetProduct(ctx context.Context, productID int64) (domain.Product, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error)
	InsertProduct(ctx context.Context, product domain.Product) (domain.Product, error)
}

type ProductCache interface {
	Get(ctx context.Context, productID int64) (domain.Product, bool, error)
	Set(ctx context.Context, product domain.Product) error
}
