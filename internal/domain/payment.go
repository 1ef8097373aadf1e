package domain

import (
	"time"
)

type Payment struct {
	ID             int64
	OrderID        int64
	Status         PaymentStatus
	Amount         Money
	Provider       string
	ProviderRef    string
	IdempotencyKey string

	CreatedAt time.Time
}
