package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/port"
)

type Orders struct {
	orders port.OrderRepository
	events port.EventPublisher
	logger *slog.Logger
}

func NewOrders(orders port.OrderRepository, events port.EventPublisher, logger *slog.Logger) *Orders {
	return &Orders{
		orders: orders,
		events: events,
		logger: logger.With("component", "orders"),
	}
}

// GetOrder hides orders of other users behind ErrOrderNotFound.
func (s *Orders) GetOrder(ctx context.Context, orderID int64, userID string) (domain.Order, error) {
	if userID == "" {
		return domain.Order{}, domain.ErrInvalidUserID
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if errors.Is(err, port.ErrNotFound) {
		return domain.Order{}, fmt.Errorf("order[%d]: %w", orderID, domain.ErrOrderNotFound)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
	}

	if order.UserID != userID {
		return domain.Order{}, fmt.Errorf("order[%d]: %w", orderID, domain.ErrOrderNotFound)
	}

	return order, nil
}

func (s *Orders) ListOrders(ctx context.Context, userID string, limit int) ([]domain.Order, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}
	if limit == 0 {
		limit = domain.DefaultOrderListLimit
	}
	if limit < 1 || limit > domain.MaxOrderListLimit {
		return nil, &domain.Error{
			Kind:    domain.KindValidation,
			Code:    "invalid_limit",
			Message: fmt.Sprintf("limit must be between 1 and %d", domain.MaxOrderListLimit),
		}
	}

	orders, err := s.orders.ListOrders(ctx, domain.OrderFilter{
		UserID: userID,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("orders.ListOrders: %w", err)
	}

	return orders, nil
}

// CancelOrder is a no-op for an already cancelled order and a conflict for a paid one.
func (s *Orders) CancelOrder(ctx context.Context, orderID int64, userID string) (_ domain.Order, err error) {
	ctx, span := tracer.Start(ctx, "Orders.CancelOrder")
	defer func() { endSpan(span, err) }()

	order, err := s.GetOrder(ctx, orderID, userID)
	if err != nil {
		return domain.Order{}, err
	}

	if order.Status == domain.OrderStatusCancelled {
		return order, nil
	}
	if !order.Status.CanTransitionTo(domain.OrderStatusCancelled) {
		return domain.Order{}, fmt.Errorf("order[%d]: %w", orderID, domain.ErrOrderAlreadyPaid)
	}

	cancelled, err := s.orders.CancelOrder(ctx, orderID, userID)
	switch {
	case errors.Is(err, port.ErrNotFound):
		return domain.Order{}, fmt.Errorf("order[%d]: %w", orderID, domain.ErrOrderNotFound)
	case errors.Is(err, port.ErrStatusConflict):
		// lost to a concurrent pay or cancel, decide on the committed status
		current, getErr := s.GetOrder(ctx, orderID, userID)
		if getErr != nil {
			return domain.Order{}, errors.Join(err, getErr)
		}
		if current.Status == domain.OrderStatusCancelled {
			return current, nil
		}
		return domain.Order{}, fmt.Errorf("order[%d]: %w", orderID, domain.ErrOrderAlreadyPaid)
	case err != nil:
		return domain.Order{}, fmt.Errorf("orders.CancelOrder: %w", err)
	}

	s.logger.InfoContext(ctx, "order cancelled", "method", "CancelOrder", "order_id", orderID)

	bestEffort(ctx, s.logger, "publish order.cancelled", func(ctx context.Context) error {
		return s.events.Publish(ctx, domain.NewOrderEvent(domain.EventOrderCancelled, cancelled))
	})

	return cancelled, nil
}
