package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/port"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type orderKey struct {
	userID string
	key    string
}

type fakeOrders struct {
	mu     sync.Mutex
	nextID int64
	orders map[int64]domain.Order
	// beforeInsert runs without the lock held, tests use it to commit a competing order
	beforeInsert func(order domain.Order)
	insertCalls  int
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: map[int64]domain.Order{}}
}

func (f *fakeOrders) GetOrder(_ context.Context, orderID int64) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	o, ok := f.orders[orderID]
	if !ok {
		return domain.Order{}, fmt.Errorf("q.GetOrder: %w", port.ErrNotFound)
	}
	return o, nil
}

func (f *fakeOrders) GetOrderByIdempotencyKey(_ context.Context, userID, key string) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, o := range f.orders {
		if o.UserID == userID && o.IdempotencyKey == key {
			return o, nil
		}
	}
	return domain.Order{}, fmt.Errorf("q.GetOrderByIdempotencyKey: %w", port.ErrNotFound)
}

func (f *fakeOrders) ListOrders(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []domain.Order
	for _, id := range slices.Backward(slices.Sorted(maps.Keys(f.orders))) {
		if o := f.orders[id]; o.UserID == filter.UserID && len(result) < filter.Limit {
			result = append(result, o)
		}
	}
	return result, nil
}

func (f *fakeOrders) InsertOrder(_ context.Context, order domain.Order) (domain.Order, error) {
	if f.beforeInsert != nil {
		f.beforeInsert(order)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.insertCalls++
	return f.insertLocked(order)
}

func (f *fakeOrders) insertLocked(order domain.Order) (domain.Order, error) {
	if order.IdempotencyKey != "" {
		for _, o := range f.orders {
			if o.UserID == order.UserID && o.IdempotencyKey == order.IdempotencyKey {
				return domain.Order{}, fmt.Errorf("q.InsertOrder: %w[uq_orders_user_id_idempotency_key]", port.ErrUniqueViolation)
			}
		}
	}

	f.nextID++
	order.ID = f.nextID
	order.Status = domain.OrderStatusCreated
	order.CreatedAt = time.Now().UTC()
	f.orders[order.ID] = order

	return order, nil
}

// commit stores an order directly, as a concurrent request would.
func (f *fakeOrders) commit(order domain.Order) domain.Order {
	f.mu.Lock()
	defer f.mu.Unlock()

	inserted, err := f.insertLocked(order)
	if err != nil {
		panic(err)
	}
	return inserted
}

func (f *fakeOrders) setStatus(orderID int64, status domain.OrderStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()

	o := f.orders[orderID]
	o.Status = status
	f.orders[orderID] = o
}

func (f *fakeOrders) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

func (f *fakeOrders) CancelOrder(_ context.Context, orderID int64, userID string) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	o, ok := f.orders[orderID]
	if !ok || o.UserID != userID {
		return domain.Order{}, fmt.Errorf("q.GetOrder: %w", port.ErrNotFound)
	}
	if o.Status != domain.OrderStatusCreated {
		return domain.Order{}, fmt.Errorf("q.CancelOrder: %w", port.ErrStatusConflict)
	}

	o.Status = domain.OrderStatusCancelled
	f.orders[orderID] = o
	return o, nil
}

func (f *fakeOrders) DeleteOrder(_ context.Context, orderID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.orders[orderID]; !ok {
		return fmt.Errorf("q.DeleteOrder: %w", port.ErrNotFound)
	}
	delete(f.orders, orderID)
	return nil
}

type fakePayments struct {
	mu       sync.Mutex
	orders   *fakeOrders
	nextID   int64
	payments map[int64]domain.Payment
	// beforeInsert runs without the lock held, tests use it to commit a competing payment or cancel
	beforeInsert func(payment domain.Payment)
}

func newFakePayments(orders *fakeOrders) *fakePayments {
	return &fakePayments{
		orders:   orders,
		payments: map[int64]domain.Payment{},
	}
}

func (f *fakePayments) GetPayment(_ context.Context, paymentID int64) (domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.payments[paymentID]
	if !ok {
		return domain.Payment{}, fmt.Errorf("q.GetPayment: %w", port.ErrNotFound)
	}
	return p, nil
}

func (f *fakePayments) GetPaymentByIdempotencyKey(_ context.Context, orderID int64, key string) (domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.payments {
		if p.OrderID == orderID && p.IdempotencyKey == key {
			return p, nil
		}
	}
	return domain.Payment{}, fmt.Errorf("q.GetPaymentByIdempotencyKey: %w", port.ErrNotFound)
}

func (f *fakePayments) InsertPayment(_ context.Context, payment domain.Payment) (domain.Payment, error) {
	if f.beforeInsert != nil {
		f.beforeInsert(payment)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return f.insertLocked(payment)
}

func (f *fakePayments) insertLocked(payment domain.Payment) (domain.Payment, error) {
	f.orders.mu.Lock()
	defer f.orders.mu.Unlock()

	o := f.orders.orders[payment.OrderID]
	if o.Status != domain.OrderStatusCreated {
		return domain.Payment{}, fmt.Errorf("q.InsertPayment: %w", port.ErrStatusConflict)
	}

	for _, p := range f.payments {
		if p.OrderID == payment.OrderID && p.IdempotencyKey == payment.IdempotencyKey {
			return domain.Payment{}, fmt.Errorf("q.InsertPayment: %w[uq_payments_order_id_idempotency_key]", port.ErrUniqueViolation)
		}
	}

	if payment.Status == domain.PaymentStatusSucceeded {
		o.Status = domain.OrderStatusPaid
		f.orders.orders[payment.OrderID] = o
	}

	f.nextID++
	payment.ID = f.nextID
	payment.CreatedAt = time.Now().UTC()
	f.payments[payment.ID] = payment

	return payment, nil
}

func (f *fakePayments) commit(payment domain.Payment) domain.Payment {
	f.mu.Lock()
	defer f.mu.Unlock()

	inserted, err := f.insertLocked(payment)
	if err != nil {
		panic(err)
	}
	return inserted
}

func (f *fakePayments) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payments)
}

type fakeProducts struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]domain.Product
	getErr   error
	getCalls int
}

func newFakeProducts(products ...domain.Product) *fakeProducts {
	f := &fakeProducts{products: map[int64]domain.Product{}}
	for _, p := range products {
		f.products[p.ID] = p
		f.nextID = max(f.nextID, p.ID)
	}
	return f
}

func (f *fakeProducts) GetProduct(_ context.Context, productID int64) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.getCalls++
	if f.getErr != nil {
		return domain.Product{}, f.getErr
	}

	p, ok := f.products[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("q.GetProduct: %w", port.ErrNotFound)
	}
	return p, nil
}

func (f *fakeProducts) ListProducts(_ context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []domain.Product
	for _, id := range slices.Backward(slices.Sorted(maps.Keys(f.products))) {
		result = append(result, f.products[id])
	}
	total := int64(len(result))

	result = result[min(filter.Offset, len(result)):]
	result = result[:min(filter.Limit, len(result))]

	return result, total, nil
}

func (f *fakeProducts) InsertProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.products {
		if p.SKU == product.SKU {
			return domain.Product{}, fmt.Errorf("q.InsertProduct: %w[products_sku_key]", port.ErrUniqueViolation)
		}
	}

	f.nextID++
	product.ID = f.nextID
	product.IsActive = true
	product.CreatedAt = time.Now().UTC()
	f.products[product.ID] = product

	return product, nil
}

type fakeCache struct {
	mu       sync.Mutex
	products map[int64]domain.Product
	getErr   error
	setErr   error
}

func newFakeCache() *fakeCache {
	return &fakeCache{products: map[int64]domain.Product{}}
}

func (f *fakeCache) Get(_ context.Context, productID int64) (domain.Product, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return domain.Product{}, false, f.getErr
	}
	p, ok := f.products[productID]
	return p, ok, nil
}

func (f *fakeCache) Set(_ context.Context, product domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setErr != nil {
		return f.setErr
	}
	f.products[product.ID] = product
	return nil
}

type fakeCarts struct {
	mu       sync.Mutex
	carts    map[string]map[int64]int
	clearErr error
	getCalls int
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{carts: map[string]map[int64]int{}}
}

func (f *fakeCarts) GetCart(_ context.Context, userID string) (domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.getCalls++
	return domain.Cart{UserID: userID, Items: maps.Clone(f.carts[userID])}, nil
}

func (f *fakeCarts) AddItem(_ context.Context, userID string, productID int64, qty int) (domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.carts[userID] == nil {
		f.carts[userID] = map[int64]int{}
	}
	next := f.carts[userID][productID] + qty
	if next > domain.MaxCartItemQty {
		return domain.Cart{}, fmt.Errorf("qty[%d]: %w", next, domain.ErrInvalidQuantity)
	}
	f.carts[userID][productID] = next

	return domain.Cart{UserID: userID, Items: maps.Clone(f.carts[userID])}, nil
}

func (f *fakeCarts) SetItemQty(_ context.Context, userID string, productID int64, qty int) (domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.carts[userID] == nil {
		f.carts[userID] = map[int64]int{}
	}
	if qty == 0 {
		delete(f.carts[userID], productID)
	} else {
		f.carts[userID][productID] = qty
	}

	return domain.Cart{UserID: userID, Items: maps.Clone(f.carts[userID])}, nil
}

func (f *fakeCarts) Clear(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.clearErr != nil {
		return f.clearErr
	}
	delete(f.carts, userID)
	return nil
}

func (f *fakeCarts) put(userID string, items map[int64]int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.carts[userID] = maps.Clone(items)
}

type fakeEvents struct {
	mu         sync.Mutex
	events     []domain.Event
	publishErr error
}

func (f *fakeEvents) Publish(_ context.Context, event domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.publishErr != nil {
		return f.publishErr
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEvents) Close() error { return nil }

func (f *fakeEvents) types() []domain.EventType {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []domain.EventType
	for _, e := range f.events {
		result = append(result, e.Type)
	}
	return result
}

type failingAuthorizer struct{}

func (failingAuthorizer) Name() string { return "broken" }

func (failingAuthorizer) Authorize(context.Context, port.AuthorizationRequest) (port.Authorization, error) {
	return port.Authorization{}, errors.New("gateway timeout")
}
