// Package service holds the checkout and payment orchestrators and the
// catalog, cart and order operations exposed over HTTP.
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

type CheckoutResult struct {
	Order   domain.Order
	Outcome domain.Outcome
}

type Checkout struct {
	orders   port.OrderRepository
	products port.ProductRepository
	carts    port.CartRepository
	events   port.EventPublisher
	logger   *slog.Logger
}

func NewCheckout(
	orders port.OrderRepository,
	products port.ProductRepository,
	carts port.CartRepository,
	events port.EventPublisher,
	logger *slog.Logger,
) *Checkout {
	return &Checkout{
		orders:   orders,
		products: products,
		carts:    carts,
		events:   events,
		logger:   logger.With("component", "checkout"),
	}
}

// Checkout turns the user's cart into an order. With a non-empty key the call
// is idempotent per (userID, key): replays and lost races return the first order.
func (s *Checkout) Checkout(ctx context.Context, userID, key string) (_ CheckoutResult, err error) {
	ctx, span := tracer.Start(ctx, "Checkout.Checkout")
	defer func() { endSpan(span, err) }()

	if userID == "" {
		return CheckoutResult{}, domain.ErrInvalidUserID
	}

	if key != "" {
		existing, found, err := s.findByKey(ctx, userID, key)
		if err != nil {
			return CheckoutResult{}, err
		}
		if found {
			s.logger.InfoContext(ctx, "checkout replayed", "method", "Checkout", "order_id", existing.ID, "outcome", domain.OutcomeReplayed)
			return CheckoutResult{Order: existing, Outcome: domain.OutcomeReplayed}, nil
		}
	}

	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("carts.GetCart: %w", err)
	}
	if cart.IsEmpty() {
		// a concurrent request with the same key may have committed and cleared the cart
		if key != "" {
			winner, found, err := s.findByKey(ctx, userID, key)
			if err != nil {
				return CheckoutResult{}, err
			}
			if found {
				return CheckoutResult{Order: winner, Outcome: domain.OutcomeRaceResolved}, nil
			}
		}
		return CheckoutResult{}, domain.ErrEmptyCart
	}

	pending, err := s.priceCart(ctx, cart)
	if err != nil {
		return CheckoutResult{}, err
	}
	pending.IdempotencyKey = key

	var lookup func(context.Context) (domain.Order, error)
	if key != "" {
		lookup = func(ctx context.Context) (domain.Order, error) {
			return s.orders.GetOrderByIdempotencyKey(ctx, userID, key)
		}
	}

	order, outcome, err := createOrResolve(ctx, func(ctx context.Context) (domain.Order, error) {
		return s.orders.InsertOrder(ctx, pending)
	}, lookup)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("orders.InsertOrder: %w", err)
	}

	span.SetAttributes(
		attribute.Int64("order.id", order.ID),
		attribute.String("checkout.outcome", string(outcome)),
	)
	s.logger.InfoContext(ctx, "checkout completed", "method", "Checkout", "order_id", order.ID, "total_cents", order.TotalCents, "outcome", outcome)

	if outcome == domain.OutcomeCreated {
		bestEffort(ctx, s.logger, "clear cart", func(ctx context.Context) error {
			return s.carts.Clear(ctx, userID)
		})
		bestEffort(ctx, s.logger, "publish order.created", func(ctx context.Context) error {
			return s.events.Publish(ctx, domain.NewOrderEvent(domain.EventOrderCreated, order))
		})
	}

	return CheckoutResult{Order: order, Outcome: outcome}, nil
}

func (s *Checkout) findByKey(ctx context.Context, userID, key string) (domain.Order, bool, error) {
	order, err := s.orders.GetOrderByIdempotencyKey(ctx, userID, key)
	if errors.Is(err, port.ErrNotFound) {
		return domain.Order{}, false, nil
	}
	if err != nil {
		return domain.Order{}, false, fmt.Errorf("orders.GetOrderByIdempotencyKey: %w", err)
	}
	return order, true, nil
}

// priceCart snapshots current product prices. Any unknown product aborts the whole checkout.
func (s *Checkout) priceCart(ctx context.Context, cart domain.Cart) (domain.Order, error) {
	order := domain.Order{
		UserID: cart.UserID,
		Status: domain.OrderStatusCreated,
	}

	for i, productID := range cart.ProductIDs() {
		qty := cart.Items[productID]
		if qty < 1 || qty > domain.MaxCartItemQty {
			return domain.Order{}, fmt.Errorf("product[%d] qty[%d]: %w", productID, qty, domain.ErrInvalidQuantity)
		}

		product, err := s.products.GetProduct(ctx, productID)
		if errors.Is(err, port.ErrNotFound) {
			return domain.Order{}, fmt.Errorf("product[%d]: %w", productID, domain.ErrProductNotFound)
		}
		if err != nil {
			return domain.Order{}, fmt.Errorf("products.GetProduct: %w", err)
		}

		if i == 0 {
			order.Currency = product.Currency
		} else if product.Currency != order.Currency {
			return domain.Order{}, fmt.Errorf("product[%d] currency[%s] order currency[%s]: %w",
				productID, product.Currency, order.Currency, domain.ErrCurrencyMismatch)
		}

		item := domain.NewOrderItem(product, qty)
		order.Items = append(order.Items, item)
		order.TotalCents += item.LineTotalCents
	}

	return order, nil
}
