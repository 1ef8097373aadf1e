package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/port"
)

type Carts struct {
	carts    port.CartRepository
	products port.ProductRepository
}

func NewCarts(carts port.CartRepository, products port.ProductRepository) *Carts {
	return &Carts{
		carts:    carts,
		products: products,
	}
}

func (s *Carts) GetCart(ctx context.Context, userID string) (domain.Cart, error) {
	if userID == "" {
		return domain.Cart{}, domain.ErrInvalidUserID
	}

	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.GetCart: %w", err)
	}
	return cart, nil
}

// AddItem adds qty to the current quantity, the product must exist.
func (s *Carts) AddItem(ctx context.Context, userID string, productID int64, qty int) (domain.Cart, error) {
	if userID == "" {
		return domain.Cart{}, domain.ErrInvalidUserID
	}
	if qty < 1 || qty > domain.MaxCartItemQty {
		return domain.Cart{}, fmt.Errorf("qty[%d]: %w", qty, domain.ErrInvalidQuantity)
	}
	if err := s.ensureProduct(ctx, productID); err != nil {
		return domain.Cart{}, err
	}

	cart, err := s.carts.AddItem(ctx, userID, productID, qty)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.AddItem: %w", err)
	}
	return cart, nil
}

// SetItemQty replaces the quantity, zero removes the item.
func (s *Carts) SetItemQty(ctx context.Context, userID string, productID int64, qty int) (domain.Cart, error) {
	if userID == "" {
		return domain.Cart{}, domain.ErrInvalidUserID
	}
	if qty < 0 || qty > domain.MaxCartItemQty {
		return domain.Cart{}, fmt.Errorf("qty[%d]: %w", qty, domain.ErrInvalidQuantity)
	}
	if err := s.ensureProduct(ctx, productID); err != nil {
		return domain.Cart{}, err
	}

	cart, err := s.carts.SetItemQty(ctx, userID, productID, qty)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.SetItemQty: %w", err)
	}
	return cart, nil
}

func (s *Carts) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrInvalidUserID
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		return fmt.Errorf("carts.Clear: %w", err)
	}
	return nil
}

func (s *Carts) ensureProduct(ctx context.Context, productID int64) error {
	_, err := s.products.GetProduct(ctx, productID)
	if errors.Is(err, port.ErrNotFound) {
		return fmt.Errorf("product[%d]: %w", productID, domain.ErrProductNotFound)
	}
	if err != nil {
		return fmt.Errorf("products.GetProduct: %w", err)
	}
	return nil
}
