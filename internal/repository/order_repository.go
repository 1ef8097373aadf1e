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

type orderRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		dbtx: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		dbtx: tx, // use provided transaction instead
	}
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	order, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Order, error) {
		dbOrder, err := q.GetOrder(ctx, orderID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.GetOrder: %w", mapReadError(err))
		}

		return getOrderWithItems(ctx, q, dbOrder)
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func (r *orderRepository) GetOrderByIdempotencyKey(ctx context.Context, userID, key string) (domain.Order, error) {
	if userID == "" {
		return domain.Order{}, errors.New("userID is empty")
	}
	if key == "" {
		return domain.Order{}, errors.New("idempotency key is empty")
	}

	order, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Order, error) {
		dbOrder, err := q.GetOrderByIdempotencyKey(ctx, db.GetOrderByIdempotencyKeyParams{
			UserID:         userID,
			IdempotencyKey: &key,
		})
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.GetOrderByIdempotencyKey: %w", mapReadError(err))
		}

		return getOrderWithItems(ctx, q, dbOrder)
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter.Validate: %w", err)
	}

	orders, err := withTx(ctx, r.dbtx, func(q *db.Queries) ([]domain.Order, error) {
		dbOrders, err := q.ListOrders(ctx, db.ListOrdersParams{
			UserID: filter.UserID,
			Statuses: lo.Map(filter.Statuses, func(s domain.OrderStatus, _ int) string {
				return string(s)
			}),
			RowLimit: int32(filter.Limit),
		})
		if err != nil {
			return nil, fmt.Errorf("q.ListOrders: %w", err)
		}

		if len(dbOrders) == 0 {
			return nil, nil
		}

		ids := lo.Map(dbOrders, func(o db.Order, _ int) int64 { return o.ID })

		dbItems, err := q.GetOrderItems(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("q.GetOrderItems: %w", err)
		}

		itemsByOrder := lo.GroupBy(dbItems, func(row db.GetOrderItemsRow) int64 { return row.OrderID })

		result := make([]domain.Order, 0, len(dbOrders))
		for _, dbOrder := range dbOrders {
			order, err := mapDBOrderToDomain(dbOrder, itemsByOrder[dbOrder.ID])
			if err != nil {
				return nil, fmt.Errorf("mapDBOrderToDomain: %w", err)
			}
			result = append(result, order)
		}

		return result, nil
	})
	if err != nil {
		return nil, fmt.Errorf("withTx: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.UserID == "" {
		return domain.Order{}, errors.New("userID is empty")
	}
	if len(order.Items) == 0 {
		return domain.Order{}, errors.New("no items in order")
	}
	if itemsTotal := order.ItemsTotal(); itemsTotal != order.TotalCents {
		return domain.Order{}, fmt.Errorf("order total[%d] does not match items total[%d]", order.TotalCents, itemsTotal)
	}

	inserted, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Order, error) {
		row, err := q.InsertOrder(ctx, db.InsertOrderParams{
			UserID:         order.UserID,
			TotalCents:     order.TotalCents,
			Currency:       order.Currency.String(),
			IdempotencyKey: lo.EmptyableToPtr(order.IdempotencyKey),
		})
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.InsertOrder: %w", mapWriteError(err))
		}

		// TODO: switch to CopyFrom once carts grow beyond a handful of lines
		for _, item := range order.Items {
			arg := db.InsertOrderItemParams{
				OrderID:        row.ID,
				ProductID:      item.ProductID,
				Sku:            item.SKU,
				Name:           item.Name,
				Qty:            int32(item.Quantity),
				UnitPriceCents: item.UnitPriceCents,
				LineTotalCents: item.LineTotalCents,
			}
			if err := q.InsertOrderItem(ctx, arg); err != nil {
				return domain.Order{}, fmt.Errorf("q.InsertOrderItem: %w", mapWriteError(err))
			}
		}

		status, err := domain.ToOrderStatus(row.Status)
		if err != nil {
			return domain.Order{}, fmt.Errorf("domain.ToOrderStatus: %w", err)
		}

		result := order
		result.ID = row.ID
		result.Status = status
		result.CreatedAt = row.CreatedAt

		return result, nil
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("withTx: %w", err)
	}

	return inserted, nil
}

func (r *orderRepository) CancelOrder(ctx context.Context, orderID int64, userID string) (domain.Order, error) {
	if userID == "" {
		return domain.Order{}, errors.New("userID is empty")
	}

	order, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Order, error) {
		rowsAffected, err := q.CancelOrder(ctx, db.CancelOrderParams{ID: orderID, UserID: userID})
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.CancelOrder: %w", err)
		}

		dbOrder, err := q.GetOrder(ctx, orderID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.GetOrder: %w", mapReadError(err))
		}

		if dbOrder.UserID != userID {
			return domain.Order{}, fmt.Errorf("q.GetOrder: %w", port.ErrNotFound)
		}

		if rowsAffected == 0 {
			return domain.Order{}, fmt.Errorf("q.CancelOrder: order status[%s]: %w", dbOrder.Status, port.ErrStatusConflict)
		}

		return getOrderWithItems(ctx, q, dbOrder)
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func (r *orderRepository) DeleteOrder(ctx context.Context, orderID int64) error {
	if orderID == 0 {
		return fmt.Errorf("orderID is empty")
	}

	// items and payments go with the order through ON DELETE CASCADE
	cmdTag, err := r.q.DeleteOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("q.DeleteOrder: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.DeleteOrder: %w", port.ErrNotFound)
	}

	return nil
}

func getOrderWithItems(ctx context.Context, q *db.Queries, dbOrder db.Order) (domain.Order, error) {
	dbItems, err := q.GetOrderItems(ctx, []int64{dbOrder.ID})
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetOrderItems: %w", err)
	}

	order, err := mapDBOrderToDomain(dbOrder, dbItems)
	if err != nil {
		return domain.Order{}, fmt.Errorf("mapDBOrderToDomain: %w", err)
	}

	return order, nil
}

func mapDBOrderToDomain(dbOrder db.Order, dbItems []db.GetOrderItemsRow) (domain.Order, error) {
	var o domain.Order

	status, err := domain.ToOrderStatus(dbOrder.Status)
	if err != nil {
		return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", dbOrder.Status, err)
	}

	parsedCurrency, err := currency.ParseISO(dbOrder.Currency)
	if err != nil {
		return o, fmt.Errorf("currency[%s] is not valid: %w", dbOrder.Currency, err)
	}

	return domain.Order{
		ID:             dbOrder.ID,
		UserID:         dbOrder.UserID,
		Status:         status,
		TotalCents:     dbOrder.TotalCents,
		Currency:       parsedCurrency,
		IdempotencyKey: lo.FromPtr(dbOrder.IdempotencyKey),
		Items:          lo.Map(dbItems, mapGetOrderItemsRowToDomain),
		CreatedAt:      dbOrder.CreatedAt,
	}, nil
}

func mapGetOrderItemsRowToDomain(row db.GetOrderItemsRow, _ int) domain.OrderItem {
	return domain.OrderItem{
		ProductID:      row.ProductID,
		SKU:            row.Sku,
		Name:           row.Name,
		Quantity:       int(row.Qty),
		UnitPriceCents: row.UnitPriceCents,
		LineTotalCents: row.LineTotalCents,
	}
}
