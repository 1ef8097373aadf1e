package domain

import (
	"errors"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is a client-facing failure. None of them leave state behind.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrInvalidUserID         = &Error{Kind: KindValidation, Code: "invalid_user_id", Message: "user id is empty"}
	ErrEmptyCart             = &Error{Kind: KindValidation, Code: "empty_cart", Message: "cart is empty"}
	ErrInvalidQuantity       = &Error{Kind: KindValidation, Code: "invalid_quantity", Message: "quantity is out of range"}
	ErrCurrencyMismatch      = &Error{Kind: KindValidation, Code: "currency_mismatch", Message: "cart mixes currencies"}
	ErrMissingIdempotencyKey = &Error{Kind: KindValidation, Code: "missing_idempotency_key", Message: "Idempotency-Key header is required"}

	ErrProductNotFound = &Error{Kind: KindNotFound, Code: "product_not_found", Message: "product not found"}
	ErrOrderNotFound   = &Error{Kind: KindNotFound, Code: "order_not_found", Message: "order not found"}
	ErrPaymentNotFound = &Error{Kind: KindNotFound, Code: "payment_not_found", Message: "payment not found"}

	ErrOrderCancelled   = &Error{Kind: KindConflict, Code: "order_cancelled", Message: "order is cancelled"}
	ErrOrderAlreadyPaid = &Error{Kind: KindConflict, Code: "order_already_paid", Message: "order is already paid"}
	ErrDuplicateSKU     = &Error{Kind: KindConflict, Code: "duplicate_sku", Message: "sku already exists"}
)

// AsError extracts the domain error from a wrapped chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

func KindOf(err error) ErrorKind {
	if de, ok := AsError(err); ok {
		return de.Kind
	}
	return KindUnknown
}
