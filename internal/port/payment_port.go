package port

import (
	"context"

	"github.com/nikolayk812/shopcheckout/internal/domain"
)

type PaymentRepository interface {
	GetPayment(ctx context.Context, paymentID int64) (domain.Payment, error)
	GetPaymentByIdempotencyKey(ctx context.Context, orderID int64, key string) (domain.Payment, error)

	// InsertPayment stores the payment and, when it SUCCEEDED, flips the order
	// from CREATED to PAID in the same transaction.
	// A duplicate (order, idempotency key) fails with ErrUniqueViolation,
	// an order no longer CREATED fails with ErrStatusConflict.
	InsertPayment(ctx context.Context, payment domain.Payment) (domain.Payment, error)
}

// Authorizer is the payment gateway capability.
type Authorizer interface {
	Name() string
	Authorize(ctx context.Context, req AuthorizationRequest) (Authorization, error)
}

type AuthorizationRequest struct {
	OrderID        int64
	Amount         domain.Money
	IdempotencyKey string
}

type Authorization struct {
	Approved  bool
	Reference string
	Reason    string
}
