package cart

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"wardrobe-storefront/internal/cart"
	"wardrobe-storefront/internal/domain"
	"wardrobe-storefront/internal/notification"
	sessionrepo "wardrobe-storefront/internal/repository/session"
)

type Service struct {
	sessions    sessionRepo
	productRepo productRepo
	orders      orderRepo
	currency    string
	now         func() time.Time
}

type sessionRepo interface {
	Get(ctx context.Context, id string) (*sessionrepo.Session, error)
	Update(ctx context.Context, id string, fn func(*sessionrepo.Session) error) (*sessionrepo.Session, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, sessionID, id string) (*domain.Order, error)
	ListBySession(ctx context.Context, sessionID string) ([]domain.Order, error)
}

func New(sessions sessionRepo, productRepo productRepo, orders orderRepo, currency string) *Service {
	return &Service{
		sessions:    sessions,
		productRepo: productRepo,
		orders:      orders,
		currency:    currency,
		now:         time.Now,
	}
}

type CheckoutInput struct {
	DeliveryAddress string `json:"deliveryAddress"`
}

func (s *Service) Get(ctx context.Context, sessionID string) (cart.State, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return cart.State{}, err
	}
	return sess.Cart, nil
}

// AddItem validates the request against the current listing and adds it to
// the session cart. Buying again adds to the quantity; renting again
// replaces the rental window.
func (s *Service) AddItem(ctx context.Context, sessionID, productID string, req cart.Request) (cart.State, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return cart.State{}, domain.Invalid("productId required")
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return cart.State{}, err
	}
	entry, err := req.Entry(*product, s.now())
	if err != nil {
		return cart.State{}, err
	}

	sess, err := s.sessions.Update(ctx, sessionID, func(sess *sessionrepo.Session) error {
		sess.Cart = cart.Reduce(sess.Cart, cart.AddItem{Entry: entry})
		s.notify(sess, notification.KindSuccess, "Added to cart", addedMessage(entry))
		return nil
	})
	if err != nil {
		return cart.State{}, err
	}
	return sess.Cart, nil
}

// SetQuantity changes a buy line's quantity; zero or less removes the line.
// Rental lines keep quantity 1.
func (s *Service) SetQuantity(ctx context.Context, sessionID, productID, txType string, quantity int) (cart.State, error) {
	t, ok := domain.ParseTransactionType(txType)
	if !ok {
		return cart.State{}, domain.Invalid("type must be buy or rent")
	}
	key := cart.Key{ProductID: productID, Type: t}
	sess, err := s.sessions.Update(ctx, sessionID, func(sess *sessionrepo.Session) error {
		if _, ok := sess.Cart.Find(key); !ok {
			return domain.ErrNotFound
		}
		sess.Cart = cart.Reduce(sess.Cart, cart.SetQuantity{ProductID: productID, Type: t, Quantity: quantity})
		return nil
	})
	if err != nil {
		return cart.State{}, err
	}
	return sess.Cart, nil
}

// RemoveItem drops a line. Removing a line that is not there is not an error.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID, txType string) (cart.State, error) {
	t, ok := domain.ParseTransactionType(txType)
	if !ok {
		return cart.State{}, domain.Invalid("type must be buy or rent")
	}
	sess, err := s.sessions.Update(ctx, sessionID, func(sess *sessionrepo.Session) error {
		entry, found := sess.Cart.Find(cart.Key{ProductID: productID, Type: t})
		sess.Cart = cart.Reduce(sess.Cart, cart.RemoveItem{ProductID: productID, Type: t})
		if found {
			s.notify(sess, notification.KindInfo, "Removed from cart", fmt.Sprintf("%s removed from your cart", entry.Product.Name))
		}
		return nil
	})
	if err != nil {
		return cart.State{}, err
	}
	return sess.Cart, nil
}

// Clear empties the session cart.
func (s *Service) Clear(ctx context.Context, sessionID string) (cart.State, error) {
	sess, err := s.sessions.Update(ctx, sessionID, func(sess *sessionrepo.Session) error {
		if len(sess.Cart.Entries) > 0 {
			s.notify(sess, notification.KindInfo, "Cart cleared", "All items were removed from your cart")
		}
		sess.Cart = cart.Reduce(sess.Cart, cart.Clear{})
		return nil
	})
	if err != nil {
		return cart.State{}, err
	}
	return sess.Cart, nil
}

// Checkout turns a ready cart into a pending order. The ordered lines leave
// the cart in the same session update that reads them; if the order cannot
// be stored they are merged back. Payment is not collected here.
func (s *Service) Checkout(ctx context.Context, sessionID string, in CheckoutInput) (*domain.Order, error) {
	address := strings.TrimSpace(in.DeliveryAddress)
	if address == "" {
		return nil, domain.Invalid("deliveryAddress required")
	}

	var taken cart.State
	_, err := s.sessions.Update(ctx, sessionID, func(cur *sessionrepo.Session) error {
		totals := cur.Cart.Totals()
		switch {
		case totals.Entries == 0:
			return domain.Conflict("cart is empty")
		case totals.Incomplete > 0:
			return domain.Conflict("every rental needs a delivery and return date covering at least one day")
		}
		taken = cur.Cart
		cur.Cart = cart.Reduce(cur.Cart, cart.Clear{})
		return nil
	})
	if err != nil {
		return nil, err
	}

	order := domain.Order{
		SessionID:       sessionID,
		Status:          domain.OrderPending,
		Currency:        s.currency,
		DeliveryAddress: address,
		Lines:           make([]domain.OrderLine, 0, len(taken.Entries)),
	}
	for _, e := range taken.Entries {
		order.Lines = append(order.Lines, orderLine(e))
	}
	created, err := s.orders.Create(ctx, order)
	if err != nil {
		if _, rerr := s.sessions.Update(ctx, sessionID, func(cur *sessionrepo.Session) error {
			cur.Cart = restore(taken, cur.Cart)
			return nil
		}); rerr != nil {
			return nil, errors.Wrapf(rerr, "restore cart after failed order: %v", err)
		}
		return nil, err
	}

	_, err = s.sessions.Update(ctx, sessionID, func(cur *sessionrepo.Session) error {
		s.notify(cur, notification.KindSuccess, "Order placed", fmt.Sprintf("Order %s for %s %s is pending confirmation", created.ID, created.Total.StringFixed(2), created.Currency))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// restore puts taken lines back ahead of whatever was added since. Newer buy
// quantities add up; a newer rental window wins.
func restore(taken, cur cart.State) cart.State {
	out := taken
	for _, e := range cur.Entries {
		out = cart.Reduce(out, cart.AddItem{Entry: e})
	}
	return out
}

// Orders lists the session's placed orders, newest first.
func (s *Service) Orders(ctx context.Context, sessionID string) ([]domain.Order, error) {
	return s.orders.ListBySession(ctx, sessionID)
}

// Order returns one of the session's orders with its lines.
func (s *Service) Order(ctx context.Context, sessionID, orderID string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, sessionID, orderID)
}

func (s *Service) notify(sess *sessionrepo.Session, kind notification.Kind, title, message string) {
	n := notification.New(kind, title, message, s.now())
	sess.Notifications = notification.Reduce(sess.Notifications, notification.Add{Notification: n})
}

func addedMessage(e cart.Entry) string {
	if e.Type == domain.TransactionRent {
		return fmt.Sprintf("%s added for rental (%d days)", e.Product.Name, e.RentDays)
	}
	return fmt.Sprintf("%s added for purchase", e.Product.Name)
}

func orderLine(e cart.Entry) domain.OrderLine {
	line := domain.OrderLine{
		ProductID:    e.Product.ID,
		Type:         e.Type,
		Quantity:     e.Quantity,
		DeliveryDate: e.DeliveryDate,
		ReturnDate:   e.ReturnDate,
		RentDays:     e.RentDays,
		Deposit:      decimal.Zero,
		Total:        cart.EntryTotal(e),
		Snapshot:     snapshotFromProduct(e.Product),
	}
	if e.Type == domain.TransactionRent {
		line.UnitPrice = domain.PriceOrZero(e.Product.RentPrice)
		line.Deposit = domain.PriceOrZero(e.Product.SecurityDeposit)
	} else {
		line.UnitPrice = domain.PriceOrZero(e.Product.BuyPrice)
	}
	return line
}

func snapshotFromProduct(p domain.Product) map[string]interface{} {
	snap := map[string]interface{}{
		"productName": p.Name,
		"category":    p.Category,
		"vendor":      p.Vendor,
		"vendorId":    p.VendorID,
		"location":    p.Location,
	}
	if len(p.Images) > 0 {
		snap["image"] = p.Images[0]
	}
	return snap
}
