package port

import (
	"context"

	"github.com/nikolayk812/shopcheckout/internal/domain"
)

type CartRepository interface {
	GetCart(ctx context.Context, userID string) (domain.Cart, error)
	AddItem(ctx context.Context, userID string, productID int64, qty int) (domain.Cart, error)
	SetItemQty(ctx context.Context, userID string, productID int64, qty int) (domain.Cart, error)
	Clear(ctx context.Context, userID string) error
}
