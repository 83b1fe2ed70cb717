package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/cfg"
	"github.com/DRSN-tech/storefront-backend/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

// fakeCartRepo — потокобезопасное in-memory хранилище снапшотов.
type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart

	getErr error
	setErr error
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*domain.Cart)}
}

func (f *fakeCartRepo) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.carts[sessionID], nil
}

func (f *fakeCartRepo) Set(_ context.Context, cart *domain.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setErr != nil {
		return f.setErr
	}
	f.carts[cart.SessionID] = cart
	return nil
}

type fakeObserver struct {
	mu    sync.Mutex
	calls []observedChange
}

type observedChange struct {
	sessionID string
	userID    string
	cart      *domain.Cart
}

func (f *fakeObserver) CartChanged(sessionID, userID string, cart *domain.Cart) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, observedChange{sessionID: sessionID, userID: userID, cart: cart})
}

func (f *fakeObserver) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeGateway struct {
	mu        sync.Mutex
	calls     int
	createFn  func(ctx context.Context, req *CreateOrderReq) (*CreateOrderRes, error)
	lastReq   *CreateOrderReq
	callDelay time.Duration
}

func (f *fakeGateway) CreateOrder(ctx context.Context, req *CreateOrderReq) (*CreateOrderRes, error) {
	f.mu.Lock()
	f.calls++
	f.lastReq = req
	delay := f.callDelay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	return f.createFn(ctx, req)
}

func (f *fakeGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []*domain.Order
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, order)
	return nil
}

type fakeProducer struct {
	mu     sync.Mutex
	events []*CheckoutEventReq
}

func (f *fakeProducer) WriteCheckoutEvent(_ context.Context, req *CheckoutEventReq) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, req)
	return nil
}

func testPricingCfg() *cfg.PricingCfg {
	return &cfg.PricingCfg{
		Currency:              "INR",
		FreeShippingThreshold: 500_000,
		FlatShippingFee:       20_000,
	}
}

func testPromoCfg() *cfg.PromoCfg {
	return &cfg.PromoCfg{Rules: []cfg.PromoRule{
		{Code: "SAVE20", Kind: "PERCENTAGE", Value: 20},
		{Code: "FLAT500", Kind: "FIXED", Value: 50_000, MinSubtotal: 200_000},
	}}
}

func testPromoEngine(t interface{ Fatalf(string, ...any) }) *PromoEngine {
	engine, err := NewPromoEngine(testPromoCfg())
	if err != nil {
		t.Fatalf("NewPromoEngine: %v", err)
	}
	return engine
}

func testItem(variantID string, price int64, qty int) domain.CartItem {
	return domain.CartItem{
		VariantID: variantID,
		ProductID: "p-" + variantID,
		Title:     "Item " + variantID,
		UnitPrice: domain.NewMoney(price, "INR"),
		Quantity:  qty,
	}
}
