package httpx

import (
	"time"

	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/samber/lo"
	"golang.org/x/text/currency"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type ProductResponse struct {
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

type ProductListResponse struct {
	Items  []ProductResponse `json:"items"`
	Total  int64             `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

type CreateProductRequest struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Currency    string `json:"currency"`
	StockQty    int    `json:"stock_qty"`
}

type SeedResponse struct {
	Inserted int `json:"inserted"`
}

type CartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Qty       int   `json:"qty"`
}

type CartItemResponse struct {
	ProductID int64 `json:"product_id"`
	Qty       int   `json:"qty"`
}

type CartResponse struct {
	UserID string             `json:"user_id"`
	Items  []CartItemResponse `json:"items"`
}

type OrderItemResponse struct {
	ProductID      int64  `json:"product_id"`
	SKU            string `json:"sku"`
	Name           string `json:"name"`
	Qty            int    `json:"qty"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	LineTotalCents int64  `json:"line_total_cents"`
}

type OrderResponse struct {
	ID             int64               `json:"id"`
	UserID         string              `json:"user_id"`
	Status         string              `json:"status"`
	TotalCents     int64               `json:"total_cents"`
	Currency       string              `json:"currency"`
	IdempotencyKey string              `json:"idempotency_key,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	Items          []OrderItemResponse `json:"items"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

type PaymentResponse struct {
	PaymentID      int64     `json:"payment_id"`
	OrderID        int64     `json:"order_id"`
	Provider       string    `json:"provider"`
	Status         string    `json:"status"`
	Amount         string    `json:"amount"`
	Currency       string    `json:"currency"`
	IdempotencyKey string    `json:"idempotency_key"`
	CreatedAt      time.Time `json:"created_at"`
}

type HealthResponse struct {
	OK     bool              `json:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (r CreateProductRequest) toDomain() (domain.Product, error) {
	cur, err := currency.ParseISO(r.Currency)
	if err != nil {
		return domain.Product{}, &domain.Error{
			Kind:    domain.KindValidation,
			Code:    "invalid_currency",
			Message: "currency must be an ISO 4217 code",
		}
	}

	return domain.Product{
		SKU:         r.SKU,
		Name:        r.Name,
		Description: r.Description,
		PriceCents:  r.PriceCents,
		Currency:    cur,
		StockQty:    r.StockQty,
	}, nil
}

func mapProductToResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Currency:    p.Currency.String(),
		StockQty:    p.StockQty,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

func mapCartToResponse(c domain.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for _, productID := range c.ProductIDs() {
		items = append(items, CartItemResponse{ProductID: productID, Qty: c.Items[productID]})
	}

	return CartResponse{
		UserID: c.UserID,
		Items:  items,
	}
}

func mapOrderToResponse(o domain.Order) OrderResponse {
	return OrderResponse{
		ID:             o.ID,
		UserID:         o.UserID,
		Status:         string(o.Status),
		TotalCents:     o.TotalCents,
		Currency:       o.Currency.String(),
		IdempotencyKey: o.IdempotencyKey,
		CreatedAt:      o.CreatedAt,
		Items: lo.Map(o.Items, func(it domain.OrderItem, _ int) OrderItemResponse {
			return OrderItemResponse{
				ProductID:      it.ProductID,
				SKU:            it.SKU,
				Name:           it.Name,
				Qty:            it.Quantity,
				UnitPriceCents: it.UnitPriceCents,
				LineTotalCents: it.LineTotalCents,
			}
		}),
	}
}

func mapPaymentToResponse(p domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:      p.ID,
		OrderID:        p.OrderID,
		Provider:       p.Provider,
		Status:         string(p.Status),
		Amount:         p.Amount.String(),
		Currency:       p.Amount.Currency.String(),
		IdempotencyKey: p.IdempotencyKey,
		CreatedAt:      p.CreatedAt,
	}
}
