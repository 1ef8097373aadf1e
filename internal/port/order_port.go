package port

import (
	"context"

	"github.com/nikolayk812/shopcheckout/internal/domain"
)

type OrderRepository interface {
	GetOrder(ctx context.Context, orderID int64) (domain.Order, error)
	GetOrderByIdempotencyKey(ctx context.Context, userID, key string) (domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)

	// InsertOrder persists the header and all items in one transaction.
	// A duplicate (user, idempotency key) fails with ErrUniqueViolation.
	InsertOrder(ctx context.Context, order domain.Order) (domain.Order, error)

	// CancelOrder moves a CREATED order owned by userID to CANCELLED.
	// It fails with ErrStatusConflict when the order is in any other status.
	CancelOrder(ctx context.Context, orderID int64, userID string) (domain.Order, error)

	DeleteOrder(ctx context.Context, orderID int64) error
}
