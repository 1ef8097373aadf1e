package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/port"
	"go.opentelemetry.io/otel/attribute"
)

type PaymentResult struct {
	Payment domain.Payment
	Outcome domain.Outcome
}

type Payments struct {
	orders     port.OrderRepository
	payments   port.PaymentRepository
	authorizer port.Authorizer
	events     port.EventPublisher
	logger     *slog.Logger
}

func NewPayments(
	orders port.OrderRepository,
	payments port.PaymentRepository,
	authorizer port.Authorizer,
	events port.EventPublisher,
	logger *slog.Logger,
) *Payments {
	return &Payments{
		orders:     orders,
		payments:   payments,
		authorizer: authorizer,
		events:     events,
		logger:     logger.With("component", "payments"),
	}
}

// Pay settles an order at most once per (orderID, key). The key lookup runs
// before any order state check, so a retry returns the original payment even
// after the order moved on.
func (s *Payments) Pay(ctx context.Context, orderID int64, key string) (_ PaymentResult, err error) {
	ctx, span := tracer.Start(ctx, "Payments.Pay")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.Int64("order.id", orderID))

	if key == "" {
		return PaymentResult{}, domain.ErrMissingIdempotencyKey
	}

	existing, found, err := s.findByKey(ctx, orderID, key)
	if err != nil {
		return PaymentResult{}, err
	}
	if found {
		s.logger.InfoContext(ctx, "payment replayed", "method", "Pay", "payment_id", existing.ID, "outcome", domain.OutcomeReplayed)
		return PaymentResult{Payment: existing, Outcome: domain.OutcomeReplayed}, nil
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if errors.Is(err, port.ErrNotFound) {
		return PaymentResult{}, fmt.Errorf("order[%d]: %w", orderID, domain.ErrOrderNotFound)
	}
	if err != nil {
		return PaymentResult{}, fmt.Errorf("orders.GetOrder: %w", err)
	}

	if err := payableStatusError(order); err != nil {
		return PaymentResult{}, err
	}

	amount := order.Total()

	auth, err := s.authorizer.Authorize(ctx, port.AuthorizationRequest{
		OrderID:        order.ID,
		Amount:         amount,
		IdempotencyKey: key,
	})
	if err != nil {
		return PaymentResult{}, fmt.Errorf("authorizer.Authorize: %w", err)
	}

	pending := domain.Payment{
		OrderID:        order.ID,
		Status:         domain.PaymentStatusSucceeded,
		Amount:         amount,
		Provider:       s.authorizer.Name(),
		ProviderRef:    auth.Reference,
		IdempotencyKey: key,
	}
	if !auth.Approved {
		pending.Status = domain.PaymentStatusFailed
		s.logger.WarnContext(ctx, "payment declined", "method", "Pay", "order_id", order.ID, "reason", auth.Reason)
	}

	lookup := func(ctx context.Context) (domain.Payment, error) {
		return s.payments.GetPaymentByIdempotencyKey(ctx, orderID, key)
	}

	payment, outcome, err := createOrResolve(ctx, func(ctx context.Context) (domain.Payment, error) {
		return s.payments.InsertPayment(ctx, pending)
	}, lookup)
	if errors.Is(err, port.ErrStatusConflict) {
		return s.resolveStatusConflict(ctx, orderID, key, err)
	}
	if err != nil {
		return PaymentResult{}, fmt.Errorf("payments.InsertPayment: %w", err)
	}

	span.SetAttributes(
		attribute.Int64("payment.id", payment.ID),
		attribute.String("payment.outcome", string(outcome)),
	)
	s.logger.InfoContext(ctx, "payment completed", "method", "Pay",
		"order_id", order.ID, "payment_id", payment.ID, "status", payment.Status, "outcome", outcome)

	if outcome == domain.OutcomeCreated && payment.Status == domain.PaymentStatusSucceeded {
		bestEffort(ctx, s.logger, "publish order.paid", func(ctx context.Context) error {
			event := domain.NewOrderEvent(domain.EventOrderPaid, order)
			event.PaymentID = payment.ID
			return s.events.Publish(ctx, event)
		})
	}

	return PaymentResult{Payment: payment, Outcome: outcome}, nil
}

func (s *Payments) GetPayment(ctx context.Context, paymentID int64) (domain.Payment, error) {
	payment, err := s.payments.GetPayment(ctx, paymentID)
	if errors.Is(err, port.ErrNotFound) {
		return domain.Payment{}, fmt.Errorf("payment[%d]: %w", paymentID, domain.ErrPaymentNotFound)
	}
	if err != nil {
		return domain.Payment{}, fmt.Errorf("payments.GetPayment: %w", err)
	}
	return payment, nil
}

func (s *Payments) findByKey(ctx context.Context, orderID int64, key string) (domain.Payment, bool, error) {
	payment, err := s.payments.GetPaymentByIdempotencyKey(ctx, orderID, key)
	if errors.Is(err, port.ErrNotFound) {
		return domain.Payment{}, false, nil
	}
	if err != nil {
		return domain.Payment{}, false, fmt.Errorf("payments.GetPaymentByIdempotencyKey: %w", err)
	}
	return payment, true, nil
}

// resolveStatusConflict runs after the guarded PAID flip matched no row and the
// payment was rolled back: another pay or a cancel committed first.
func (s *Payments) resolveStatusConflict(ctx context.Context, orderID int64, key string, cause error) (PaymentResult, error) {
	existing, found, err := s.findByKey(ctx, orderID, key)
	if err != nil {
		return PaymentResult{}, errors.Join(cause, err)
	}
	if found {
		return PaymentResult{Payment: existing, Outcome: domain.OutcomeRaceResolved}, nil
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return PaymentResult{}, errors.Join(cause, fmt.Errorf("orders.GetOrder: %w", err))
	}

	if err := payableStatusError(order); err != nil {
		return PaymentResult{}, err
	}

	return PaymentResult{}, fmt.Errorf("payments.InsertPayment: %w", cause)
}

func payableStatusError(order domain.Order) error {
	switch order.Status {
	case domain.OrderStatusCancelled:
		return fmt.Errorf("order[%d]: %w", order.ID, domain.ErrOrderCancelled)
	case domain.OrderStatusPaid:
		return fmt.Errorf("order[%d]: %w", order.ID, domain.ErrOrderAlreadyPaid)
	default:
		return nil
	}
}
