// Package gateway holds payment authorizers.
package gateway

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcheckout/internal/port"
	"github.com/shopspring/decimal"
)

const MockProvider = "mock"

// MockAuthorizer approves every request unless a decline limit is set.
type MockAuthorizer struct {
	declineAbove *decimal.Decimal
}

type MockOption func(*MockAuthorizer)

// WithDeclineAbove declines authorizations whose amount exceeds limit.
func WithDeclineAbove(limit decimal.Decimal) MockOption {
	return func(m *MockAuthorizer) {
		m.declineAbove = &limit
	}
}

func NewMock(opts ...MockOption) *MockAuthorizer {
	m := &MockAuthorizer{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MockAuthorizer) Name() string {
	return MockProvider
}

func (m *MockAuthorizer) Authorize(ctx context.Context, req port.AuthorizationRequest) (port.Authorization, error) {
	if err := ctx.Err(); err != nil {
		return port.Authorization{}, fmt.Errorf("ctx.Err: %w", err)
	}

	if req.IdempotencyKey == "" {
		return port.Authorization{}, fmt.Errorf("idempotency key is empty")
	}

	if m.declineAbove != nil && req.Amount.Amount.GreaterThan(*m.declineAbove) {
		return port.Authorization{
			Approved: false,
			Reason:   fmt.Sprintf("amount %s exceeds limit %s", req.Amount, m.declineAbove.String()),
		}, nil
	}

	return port.Authorization{
		Approved:  true,
		Reference: "mock_" + uuid.NewString(),
	}, nil
}
