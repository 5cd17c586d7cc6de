package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"wardrobe-storefront/internal/cart"
	"wardrobe-storefront/internal/domain"
	sessionrepo "wardrobe-storefront/internal/repository/session"
)

type stubSessionRepo struct {
	session   *sessionrepo.Session
	getErr    error
	updateErr error
	updates   int
}

func (s *stubSessionRepo) Get(_ context.Context, id string) (*sessionrepo.Session, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.session == nil || s.session.ID != id {
		return nil, domain.ErrNotFound
	}
	cp := *s.session
	return &cp, nil
}

func (s *stubSessionRepo) Update(_ context.Context, id string, fn func(*sessionrepo.Session) error) (*sessionrepo.Session, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	if s.session == nil || s.session.ID != id {
		return nil, domain.ErrNotFound
	}
	cp := *s.session
	if err := fn(&cp); err != nil {
		return nil, err
	}
	s.updates++
	s.session = &cp
	out := cp
	return &out, nil
}

type stubProductRepo struct {
	products map[string]domain.Product
	lastID   string
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	s.lastID = id
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

type stubOrderRepo struct {
	lastOrder domain.Order
	createErr error
	calls     int
	onCreate  func()
}

func (s *stubOrderRepo) Create(_ context.Context, o domain.Order) (*domain.Order, error) {
	s.calls++
	s.lastOrder = o
	if hook := s.onCreate; hook != nil {
		s.onCreate = nil
		hook()
	}
	if s.createErr != nil {
		return nil, s.createErr
	}
	o.ID = "order-1"
	o.Total = decimal.Zero
	for _, l := range o.Lines {
		o.Total = o.Total.Add(l.Total)
	}
	return &o, nil
}

func (s *stubOrderRepo) GetByID(_ context.Context, sessionID, id string) (*domain.Order, error) {
	if s.lastOrder.SessionID != sessionID || id != "order-1" {
		return nil, domain.ErrNotFound
	}
	o := s.lastOrder
	o.ID = id
	return &o, nil
}

func (s *stubOrderRepo) ListBySession(_ context.Context, sessionID string) ([]domain.Order, error) {
	if s.calls == 0 || s.lastOrder.SessionID != sessionID {
		return []domain.Order{}, nil
	}
	o := s.lastOrder
	o.ID = "order-1"
	return []domain.Order{o}, nil
}

func gown() domain.Product {
	return domain.Product{
		ID:              "1",
		Name:            "Designer Evening Gown",
		BuyPrice:        domain.Price(decimal.NewFromInt(15000)),
		RentPrice:       domain.Price(decimal.NewFromInt(2500)),
		SecurityDeposit: domain.Price(decimal.NewFromInt(5000)),
		RentalType:      domain.RentalBoth,
		Availability:    domain.AvailabilityAvailable,
	}
}

func newTestService() (*Service, *stubSessionRepo, *stubOrderRepo) {
	sessions := &stubSessionRepo{session: &sessionrepo.Session{ID: "s1"}}
	orders := &stubOrderRepo{}
	sold := gown()
	sold.ID = "2"
	sold.Availability = domain.AvailabilitySold
	products := &stubProductRepo{products: map[string]domain.Product{"1": gown(), "2": sold}}
	svc := New(sessions, products, orders, "INR")
	svc.now = func() time.Time { return time.Date(2023, 12, 30, 10, 0, 0, 0, time.UTC) }
	return svc, sessions, orders
}

func TestServiceAddItemRentAndBuy(t *testing.T) {
	svc, sessions, _ := newTestService()
	ctx := context.Background()

	state, err := svc.AddItem(ctx, "s1", "1", cart.Request{Type: "rent", DeliveryDate: "2024-01-01", ReturnDate: "2024-01-04"})
	if err != nil {
		t.Fatalf("AddItem rent: %v", err)
	}
	if len(state.Entries) != 1 || state.Entries[0].RentDays != 2 {
		t.Fatalf("unexpected cart %+v", state)
	}
	if got := state.Totals().Amount; !got.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("expected 10000, got %s", got)
	}

	state, err = svc.AddItem(ctx, "s1", "1", cart.Request{Type: "buy", Quantity: 2})
	if err != nil {
		t.Fatalf("AddItem buy: %v", err)
	}
	if got := state.Totals().Amount; !got.Equal(decimal.NewFromInt(40000)) {
		t.Fatalf("expected 40000, got %s", got)
	}
	if sessions.session.Notifications.UnreadCount != 2 {
		t.Fatalf("expected a notification per add, got %+v", sessions.session.Notifications)
	}
}

func TestServiceAddItemValidation(t *testing.T) {
	svc, sessions, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", " ", cart.Request{Type: "buy", Quantity: 1}); err == nil || err.Error() != "productId required" {
		t.Fatalf("expected productId error, got %v", err)
	}
	if _, err := svc.AddItem(ctx, "s1", "1", cart.Request{Type: "buy", Quantity: 0}); err == nil || err.Error() != "quantity must be positive" {
		t.Fatalf("expected quantity error, got %v", err)
	}
	if _, err := svc.AddItem(ctx, "s1", "1", cart.Request{Type: "rent", DeliveryDate: "2024-01-01", ReturnDate: "2024-01-02"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected window error, got %v", err)
	}
	if _, err := svc.AddItem(ctx, "s1", "2", cart.Request{Type: "buy", Quantity: 1}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict for sold product, got %v", err)
	}
	if _, err := svc.AddItem(ctx, "s1", "404", cart.Request{Type: "buy", Quantity: 1}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if sessions.updates != 0 {
		t.Fatalf("rejected adds must not touch the session")
	}
}

func TestServiceSetQuantityAndRemove(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", "1", cart.Request{Type: "buy", Quantity: 2}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	state, err := svc.SetQuantity(ctx, "s1", "1", "buy", 5)
	if err != nil || state.Entries[0].Quantity != 5 {
		t.Fatalf("SetQuantity: %+v %v", state, err)
	}
	if _, err := svc.SetQuantity(ctx, "s1", "1", "rent", 2); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for missing line, got %v", err)
	}
	if _, err := svc.SetQuantity(ctx, "s1", "1", "lease", 2); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid type, got %v", err)
	}

	state, err = svc.SetQuantity(ctx, "s1", "1", "buy", 0)
	if err != nil || len(state.Entries) != 0 {
		t.Fatalf("SetQuantity 0 should remove: %+v %v", state, err)
	}

	if _, err := svc.RemoveItem(ctx, "s1", "1", "buy"); err != nil {
		t.Fatalf("RemoveItem on missing line should succeed: %v", err)
	}
}

func TestServiceCheckout(t *testing.T) {
	svc, sessions, orders := newTestService()
	ctx := context.Background()

	if _, err := svc.Checkout(ctx, "s1", CheckoutInput{DeliveryAddress: "Goa"}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected empty cart conflict, got %v", err)
	}
	if _, err := svc.Checkout(ctx, "s1", CheckoutInput{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected address error, got %v", err)
	}

	if _, err := svc.AddItem(ctx, "s1", "1", cart.Request{Type: "rent", DeliveryDate: "2024-01-01", ReturnDate: "2024-01-04"}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := svc.AddItem(ctx, "s1", "1", cart.Request{Type: "buy", Quantity: 1}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	order, err := svc.Checkout(ctx, "s1", CheckoutInput{DeliveryAddress: " 12 Marine Drive "})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if order.Status != domain.OrderPending || order.Currency != "INR" || order.DeliveryAddress != "12 Marine Drive" {
		t.Fatalf("unexpected order %+v", order)
	}
	if !order.Total.Equal(decimal.NewFromInt(25000)) {
		t.Fatalf("expected total 25000, got %s", order.Total)
	}
	rent := orders.lastOrder.Lines[0]
	if rent.Type != domain.TransactionRent || !rent.UnitPrice.Equal(decimal.NewFromInt(2500)) || !rent.Deposit.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("unexpected rent line %+v", rent)
	}
	if rent.Snapshot["productName"] != "Designer Evening Gown" {
		t.Fatalf("missing snapshot %+v", rent.Snapshot)
	}
	if len(sessions.session.Cart.Entries) != 0 {
		t.Fatalf("cart should be empty after checkout, got %+v", sessions.session.Cart)
	}
	if sessions.session.Notifications.Notifications[0].Title != "Order placed" {
		t.Fatalf("expected order notification first, got %+v", sessions.session.Notifications.Notifications[0])
	}
}

func TestServiceCheckoutBlocksIncompleteRental(t *testing.T) {
	svc, sessions, orders := newTestService()
	sessions.session.Cart = cart.Reduce(cart.State{}, cart.AddItem{Entry: cart.Entry{Product: gown(), Type: domain.TransactionRent}})

	if _, err := svc.Checkout(context.Background(), "s1", CheckoutInput{DeliveryAddress: "Goa"}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if orders.calls != 0 {
		t.Fatalf("no order should be created")
	}
}

func TestServiceCheckoutOrderErrorKeepsCart(t *testing.T) {
	svc, sessions, orders := newTestService()
	orders.createErr = errors.New("db down")
	if _, err := svc.AddItem(context.Background(), "s1", "1", cart.Request{Type: "buy", Quantity: 1}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if _, err := svc.Checkout(context.Background(), "s1", CheckoutInput{DeliveryAddress: "Goa"}); err == nil || err.Error() != "db down" {
		t.Fatalf("expected repo error, got %v", err)
	}
	if len(sessions.session.Cart.Entries) != 1 {
		t.Fatalf("cart must survive a failed checkout")
	}
}

func TestServiceCheckoutKeepsItemsAddedMeanwhile(t *testing.T) {
	svc, sessions, orders := newTestService()
	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "s1", "1", cart.Request{Type: "buy", Quantity: 1}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	orders.onCreate = func() {
		if _, err := svc.AddItem(ctx, "s1", "1", cart.Request{Type: "buy", Quantity: 3}); err != nil {
			t.Fatalf("AddItem during checkout: %v", err)
		}
	}

	if _, err := svc.Checkout(ctx, "s1", CheckoutInput{DeliveryAddress: "Goa"}); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if got := orders.lastOrder.Lines[0].Quantity; got != 1 {
		t.Fatalf("expected 1 unit ordered, got %d", got)
	}
	entries := sessions.session.Cart.Entries
	if len(entries) != 1 || entries[0].Quantity != 3 {
		t.Fatalf("units added during checkout must stay in the cart, got %+v", entries)
	}
}

func TestServiceCheckoutTwiceOrdersOnce(t *testing.T) {
	svc, _, orders := newTestService()
	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "s1", "1", cart.Request{Type: "buy", Quantity: 1}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	var second error
	orders.onCreate = func() {
		_, second = svc.Checkout(ctx, "s1", CheckoutInput{DeliveryAddress: "Goa"})
	}

	if _, err := svc.Checkout(ctx, "s1", CheckoutInput{DeliveryAddress: "Goa"}); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if !errors.Is(second, domain.ErrConflict) {
		t.Fatalf("expected the overlapping checkout to find an empty cart, got %v", second)
	}
	if orders.calls != 1 {
		t.Fatalf("expected one order, got %d", orders.calls)
	}
}

func TestServiceCheckoutFailureMergesBack(t *testing.T) {
	svc, sessions, orders := newTestService()
	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "s1", "1", cart.Request{Type: "buy", Quantity: 1}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	orders.createErr = errors.New("db down")
	orders.onCreate = func() {
		if _, err := svc.AddItem(ctx, "s1", "1", cart.Request{Type: "buy", Quantity: 3}); err != nil {
			t.Fatalf("AddItem during checkout: %v", err)
		}
	}

	if _, err := svc.Checkout(ctx, "s1", CheckoutInput{DeliveryAddress: "Goa"}); err == nil {
		t.Fatalf("expected checkout error")
	}
	entries := sessions.session.Cart.Entries
	if len(entries) != 1 || entries[0].Quantity != 4 {
		t.Fatalf("expected restored and new units together, got %+v", entries)
	}
}

func TestServiceOrderHistory(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	list, err := svc.Orders(ctx, "s1")
	if err != nil || len(list) != 0 {
		t.Fatalf("expected no orders, got %v %v", list, err)
	}

	if _, err := svc.AddItem(ctx, "s1", "1", cart.Request{Type: "buy", Quantity: 2}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := svc.Checkout(ctx, "s1", CheckoutInput{DeliveryAddress: "Goa"}); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	list, err = svc.Orders(ctx, "s1")
	if err != nil || len(list) != 1 || list[0].ID != "order-1" {
		t.Fatalf("unexpected orders %+v %v", list, err)
	}
	got, err := svc.Order(ctx, "s1", "order-1")
	if err != nil || len(got.Lines) != 1 || got.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected order %+v %v", got, err)
	}
	if _, err := svc.Order(ctx, "someone-else", "order-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another session, got %v", err)
	}
}

func TestServiceClear(t *testing.T) {
	svc, sessions, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", "1", cart.Request{Type: "buy", Quantity: 1}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	state, err := svc.Clear(ctx, "s1")
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if len(state.Entries) != 0 || len(sessions.session.Cart.Entries) != 0 {
		t.Fatalf("expected empty cart, got %+v", state)
	}
	if sessions.session.Notifications.Notifications[0].Title != "Cart cleared" {
		t.Fatalf("expected clear notification, got %+v", sessions.session.Notifications.Notifications[0])
	}

	before := len(sessions.session.Notifications.Notifications)
	if _, err := svc.Clear(ctx, "s1"); err != nil {
		t.Fatalf("Clear empty cart: %v", err)
	}
	if len(sessions.session.Notifications.Notifications) != before {
		t.Fatalf("clearing an empty cart should not notify")
	}
}
