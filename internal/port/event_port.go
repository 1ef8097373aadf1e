package port

import (
	"context"

	"github.com/nikolayk812/shopcheckout/internal/domain"
)

type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
	Close() error
}
