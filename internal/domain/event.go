package domain

import "time"

type EventType string

const (
	EventOrderCreated   EventType = "order.created"
	EventOrderPaid      EventType = "order.paid"
	EventOrderCancelled EventType = "order.cancelled"
)

type Event struct {
	Type       EventType `json:"type"`
	OrderID    int64     `json:"order_id"`
	UserID     string    `json:"user_id,omitempty"`
	PaymentID  int64     `json:"payment_id,omitempty"`
	TotalCents int64     `json:"total_cents"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewOrderEvent(t EventType, o Order) Event {
	return Event{
		Type:       t,
		OrderID:    o.ID,
		UserID:     o.UserID,
		TotalCents: o.TotalCents,
		Currency:   o.Currency.String(),
		OccurredAt: time.Now().UTC(),
	}
}
