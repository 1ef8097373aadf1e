package httpx

import (
	"net/http"

	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/samber/lo"
)

// Checkout answers replays with the same status and body as the first call.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	key, err := idempotencyKeyHeader(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	result, err := h.checkout.Checkout(r.Context(), userID, key)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	markReplay(w, result.Outcome)
	writeJSON(w, http.StatusOK, mapOrderToResponse(result.Order))
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	orders, err := h.orders.ListOrders(r.Context(), userID, limit)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, OrderListResponse{
		Orders: lo.Map(orders, func(o domain.Order, _ int) OrderResponse {
			return mapOrderToResponse(o)
		}),
	})
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	userID, err := userIDParam(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	order, err := h.orders.GetOrder(r.Context(), orderID, userID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapOrderToResponse(order))
}

func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	userID, err := userIDParam(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	order, err := h.orders.CancelOrder(r.Context(), orderID, userID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapOrderToResponse(order))
}
