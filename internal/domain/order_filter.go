package domain

import (
	"errors"
	"fmt"
)

const (
	DefaultOrderListLimit = 20
	MaxOrderListLimit     = 100
)

// OrderFilter has AND semantics across fields, OR semantics within Statuses
type OrderFilter struct {
	UserID   string
	Statuses []OrderStatus
	Limit    int
}

func (f OrderFilter) Validate() error {
	if f.UserID == "" {
		return errors.New("userID is empty")
	}

	if f.Limit < 1 || f.Limit > MaxOrderListLimit {
		return fmt.Errorf("limit[%d] is out of range [1, %d]", f.Limit, MaxOrderListLimit)
	}

	for _, status := range f.Statuses {
		if _, err := ToOrderStatus(string(status)); err != nil {
			return fmt.Errorf("statuses: %w", err)
		}
	}

	return nil
}
