package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/port"
	"github.com/redis/go-redis/v9"
)

// each failed WATCH means another writer committed, so this bounds the number of concurrent writers per cart
const cartUpdateRetries = 16

// cartRepository keeps each cart as one JSON object {"<productID>": qty} under cart:<userID>.
type cartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCart(client *redis.Client, ttl time.Duration) port.CartRepository {
	return &cartRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *cartRepository) GetCart(ctx context.Context, userID string) (domain.Cart, error) {
	if userID == "" {
		return domain.Cart{}, errors.New("userID is empty")
	}

	raw, err := r.client.Get(ctx, cartKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return domain.Cart{}, fmt.Errorf("client.Get: %w", err)
	}

	items, err := decodeCartItems(raw)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("decodeCartItems: %w", err)
	}

	return domain.Cart{
		UserID: userID,
		Items:  items,
	}, nil
}

func (r *cartRepository) AddItem(ctx context.Context, userID string, productID int64, qty int) (domain.Cart, error) {
	if qty < 1 || qty > domain.MaxCartItemQty {
		return domain.Cart{}, fmt.Errorf("qty[%d]: %w", qty, domain.ErrInvalidQuantity)
	}

	cart, err := r.update(ctx, userID, func(items map[int64]int) {
		items[productID] = min(items[productID]+qty, domain.MaxCartItemQty)
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("r.update: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) SetItemQty(ctx context.Context, userID string, productID int64, qty int) (domain.Cart, error) {
	if qty < 0 || qty > domain.MaxCartItemQty {
		return domain.Cart{}, fmt.Errorf("qty[%d]: %w", qty, domain.ErrInvalidQuantity)
	}

	cart, err := r.update(ctx, userID, func(items map[int64]int) {
		if qty == 0 {
			delete(items, productID)
			return
		}
		items[productID] = qty
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("r.update: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New("userID is empty")
	}

	if err := r.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("client.Del: %w", err)
	}

	return nil
}

// update applies fn under WATCH so concurrent writers to one cart do not lose increments.
func (r *cartRepository) update(ctx context.Context, userID string, fn func(items map[int64]int)) (domain.Cart, error) {
	if userID == "" {
		return domain.Cart{}, errors.New("userID is empty")
	}

	key := cartKey(userID)

	var items map[int64]int

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("tx.Get: %w", err)
		}

		items, err = decodeCartItems(raw)
		if err != nil {
			return fmt.Errorf("decodeCartItems: %w", err)
		}

		fn(items)

		payload, err := encodeCartItems(items)
		if err != nil {
			return fmt.Errorf("encodeCartItems: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if len(items) == 0 {
				pipe.Del(ctx, key)
				return nil
			}
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < cartUpdateRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return domain.Cart{UserID: userID, Items: items}, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return domain.Cart{}, fmt.Errorf("client.Watch: %w", err)
	}

	return domain.Cart{}, fmt.Errorf("cart[%s] update retries exhausted", userID)
}

func cartKey(userID string) string {
	return "cart:" + userID
}

func decodeCartItems(raw string) (map[int64]int, error) {
	items := make(map[int64]int)
	if raw == "" {
		return items, nil
	}

	var stored map[string]int
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	for k, qty := range stored {
		productID, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("productID[%s] is not valid: %w", k, err)
		}
		items[productID] = qty
	}

	return items, nil
}

func encodeCartItems(items map[int64]int) ([]byte, error) {
	stored := make(map[string]int, len(items))
	for productID, qty := range items {
		stored[strconv.FormatInt(productID, 10)] = qty
	}

	return json.Marshal(stored)
}
