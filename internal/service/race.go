package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/port"
)

// createOrResolve attempts insert and, when it loses a unique-key race, returns
// the committed winner found by lookup instead. A nil lookup means the request
// carried no natural key and the violation is returned as is.
func createOrResolve[T any](
	ctx context.Context,
	insert func(context.Context) (T, error),
	lookup func(context.Context) (T, error),
) (T, domain.Outcome, error) {
	var zero T

	created, err := insert(ctx)
	if err == nil {
		return created, domain.OutcomeCreated, nil
	}

	if !errors.Is(err, port.ErrUniqueViolation) || lookup == nil {
		return zero, "", err
	}

	winner, lookupErr := lookup(ctx)
	if lookupErr != nil {
		return zero, "", errors.Join(err, fmt.Errorf("lookup after unique violation: %w", lookupErr))
	}

	return winner, domain.OutcomeRaceResolved, nil
}
