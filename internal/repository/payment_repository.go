package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcheckout/internal/db"
	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/port"
	"github.com/samber/lo"
	"golang.org/x/text/currency"
)

type paymentRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewPayment(pool *pgxpool.Pool) port.PaymentRepository {
	return &paymentRepository{
		q:    db.New(pool),
		dbtx: pool,
	}
}

func NewPaymentWithTx(tx pgx.Tx) port.PaymentRepository {
	return &paymentRepository{
		q:    db.New(tx),
		dbtx: tx,
	}
}

func (r *paymentRepository) GetPayment(ctx context.Context, paymentID int64) (domain.Payment, error) {
	dbPayment, err := r.q.GetPayment(ctx, paymentID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("q.GetPayment: %w", mapReadError(err))
	}

	payment, err := mapDBPaymentToDomain(dbPayment)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("mapDBPaymentToDomain: %w", err)
	}

	return payment, nil
}

func (r *paymentRepository) GetPaymentByIdempotencyKey(ctx context.Context, orderID int64, key string) (domain.Payment, error) {
	if key == "" {
		return domain.Payment{}, errors.New("idempotency key is empty")
	}

	dbPayment, err := r.q.GetPaymentByIdempotencyKey(ctx, db.GetPaymentByIdempotencyKeyParams{
		OrderID:        orderID,
		IdempotencyKey: &key,
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("q.GetPaymentByIdempotencyKey: %w", mapReadError(err))
	}

	payment, err := mapDBPaymentToDomain(dbPayment)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("mapDBPaymentToDomain: %w", err)
	}

	return payment, nil
}

func (r *paymentRepository) InsertPayment(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	if payment.OrderID == 0 {
		return domain.Payment{}, errors.New("orderID is empty")
	}
	if payment.Amount.Amount.IsNegative() {
		return domain.Payment{}, fmt.Errorf("amount[%s] is negative", payment.Amount.Amount)
	}
	if _, err := domain.ToPaymentStatus(string(payment.Status)); err != nil {
		return domain.Payment{}, fmt.Errorf("domain.ToPaymentStatus: %w", err)
	}

	inserted, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Payment, error) {
		row, err := q.InsertPayment(ctx, db.InsertPaymentParams{
			OrderID:        payment.OrderID,
			Status:         string(payment.Status),
			Amount:         payment.Amount.Amount,
			Currency:       payment.Amount.Currency.String(),
			Provider:       payment.Provider,
			ProviderRef:    lo.EmptyableToPtr(payment.ProviderRef),
			IdempotencyKey: lo.EmptyableToPtr(payment.IdempotencyKey),
		})
		// no row: the order is no longer CREATED
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Payment{}, fmt.Errorf("q.InsertPayment: %w", port.ErrStatusConflict)
		}
		if err != nil {
			return domain.Payment{}, fmt.Errorf("q.InsertPayment: %w", mapWriteError(err))
		}

		// a declined payment is recorded but leaves the order CREATED
		if payment.Status == domain.PaymentStatusSucceeded {
			rowsAffected, err := q.MarkOrderPaid(ctx, payment.OrderID)
			if err != nil {
				return domain.Payment{}, fmt.Errorf("q.MarkOrderPaid: %w", err)
			}

			if rowsAffected == 0 {
				return domain.Payment{}, fmt.Errorf("q.MarkOrderPaid: %w", port.ErrStatusConflict)
			}
		}

		result := payment
		result.ID = row.ID
		result.CreatedAt = row.CreatedAt

		return result, nil
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("withTx: %w", err)
	}

	return inserted, nil
}

func mapDBPaymentToDomain(row db.Payment) (domain.Payment, error) {
	var p domain.Payment

	status, err := domain.ToPaymentStatus(row.Status)
	if err != nil {
		return p, fmt.Errorf("domain.ToPaymentStatus[%s]: %w", row.Status, err)
	}

	parsedCurrency, err := currency.ParseISO(row.Currency)
	if err != nil {
		return p, fmt.Errorf("currency[%s] is not valid: %w", row.Currency, err)
	}

	return domain.Payment{
		ID:             row.ID,
		OrderID:        row.OrderID,
		Status:         status,
		Amount:         domain.Money{Amount: row.Amount, Currency: parsedCurrency},
		Provider:       row.Provider,
		ProviderRef:    lo.FromPtr(row.ProviderRef),
		IdempotencyKey: lo.FromPtr(row.IdempotencyKey),
		CreatedAt:      row.CreatedAt,
	}, nil
}
