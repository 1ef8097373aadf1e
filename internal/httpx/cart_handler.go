package httpx

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nikolayk812/shopcheckout/internal/domain"
)

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	cart, err := h.carts.GetCart(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapCartToResponse(cart))
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	h.updateCart(w, r, h.carts.AddItem)
}

func (h *Handler) SetCartItemQty(w http.ResponseWriter, r *http.Request) {
	h.updateCart(w, r, h.carts.SetItemQty)
}

func (h *Handler) updateCart(w http.ResponseWriter, r *http.Request, update func(ctx context.Context, userID string, productID int64, qty int) (domain.Cart, error)) {
	userID, err := userIDParam(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var req CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	cart, err := update(r.Context(), userID, req.ProductID, req.Qty)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapCartToResponse(cart))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := h.carts.Clear(r.Context(), userID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
