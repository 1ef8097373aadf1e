package httpx

import (
	"net/http"

	"github.com/nikolayk812/shopcheckout/internal/domain"
)

func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	orderID, err := queryID(r, "order_id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	key, err := idempotencyKeyHeader(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if key == "" {
		writeDomainError(w, r, domain.ErrMissingIdempotencyKey)
		return
	}

	result, err := h.payments.Pay(r.Context(), orderID, key)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	markReplay(w, result.Outcome)
	writeJSON(w, http.StatusOK, mapPaymentToResponse(result.Payment))
}

func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	paymentID, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	payment, err := h.payments.GetPayment(r.Context(), paymentID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapPaymentToResponse(payment))
}
