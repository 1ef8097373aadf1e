// Package httpx exposes the shop over HTTP with chi.
package httpx

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/service"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	// HeaderIdempotentReplay is set to "true" when the response was served from an earlier request.
	HeaderIdempotentReplay = "Idempotent-Replayed"

	maxIdempotencyKeyLen = 128
	maxUserIDLen         = 64
)

type CheckoutService interface {
	Checkout(ctx context.Context, userID, key string) (service.CheckoutResult, error)
}

type PaymentService interface {
	Pay(ctx context.Context, orderID int64, key string) (service.PaymentResult, error)
	GetPayment(ctx context.Context, paymentID int64) (domain.Payment, error)
}

type OrderService interface {
	GetOrder(ctx context.Context, orderID int64, userID string) (domain.Order, error)
	ListOrders(ctx context.Context, userID string, limit int) ([]domain.Order, error)
	CancelOrder(ctx context.Context, orderID int64, userID string) (domain.Order, error)
}

type CatalogService interface {
	GetProduct(ctx context.Context, productID int64) (domain.Product, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error)
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	Seed(ctx context.Context) (int, error)
}

type CartService interface {
	GetCart(ctx context.Context, userID string) (domain.Cart, error)
	AddItem(ctx context.Context, userID string, productID int64, qty int) (domain.Cart, error)
	SetItemQty(ctx context.Context, userID string, productID int64, qty int) (domain.Cart, error)
	Clear(ctx context.Context, userID string) error
}

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

type Handler struct {
	checkout CheckoutService
	payments PaymentService
	orders   OrderService
	catalog  CatalogService
	carts    CartService
	checks   map[string]HealthCheck
}

func NewHandler(
	checkout CheckoutService,
	payments PaymentService,
	orders OrderService,
	catalog CatalogService,
	carts CartService,
	checks map[string]HealthCheck,
) *Handler {
	return &Handler{
		checkout: checkout,
		payments: payments,
		orders:   orders,
		catalog:  catalog,
		carts:    carts,
		checks:   checks,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{OK: true, Checks: map[string]string{}}

	for name, check := range h.checks {
		if err := check(r.Context()); err != nil {
			resp.OK = false
			resp.Checks[name] = err.Error()
			continue
		}
		resp.Checks[name] = "ok"
	}

	status := http.StatusOK
	if !resp.OK {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

func userIDParam(r *http.Request) (string, error) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		return "", domain.ErrInvalidUserID
	}
	if len(userID) > maxUserIDLen {
		return "", &domain.Error{Kind: domain.KindValidation, Code: "invalid_user_id", Message: "user_id is too long"}
	}
	return userID, nil
}

func idempotencyKeyHeader(r *http.Request) (string, error) {
	key := strings.TrimSpace(r.Header.Get(HeaderIdempotencyKey))
	if len(key) > maxIdempotencyKeyLen {
		return "", &domain.Error{
			Kind:    domain.KindValidation,
			Code:    "invalid_idempotency_key",
			Message: "Idempotency-Key must be at most 128 characters",
		}
	}
	return key, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	return parseID(chi.URLParam(r, name), name)
}

func queryID(r *http.Request, name string) (int64, error) {
	return parseID(r.URL.Query().Get(name), name)
}

func parseID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, &domain.Error{Kind: domain.KindValidation, Code: "invalid_" + name, Message: name + " must be a positive integer"}
	}
	return id, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &domain.Error{Kind: domain.KindValidation, Code: "invalid_" + name, Message: name + " must be an integer"}
	}
	return n, nil
}

func markReplay(w http.ResponseWriter, outcome domain.Outcome) {
	if outcome != domain.OutcomeCreated {
		w.Header().Set(HeaderIdempotentReplay, "true")
	}
}
