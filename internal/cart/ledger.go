// Package cart implements the shopping cart ledger as a pure reducer.
//
// Entries are keyed by (product id, transaction type). Buying the same
// product again adds to the quantity; renting it again replaces the rental
// window. A rent entry whose window bills zero days is incomplete: it stays
// in the cart but does not count toward the amount and blocks checkout.
package cart

import (
	"slices"
	"time"

	"wardrobe-storefront/internal/domain"
	"wardrobe-storefront/internal/rental"
)

// Key identifies a cart entry.
type Key struct {
	ProductID string
	Type      domain.TransactionType
}

// Entry is one cart line. Product is the snapshot taken when it was added.
type Entry struct {
	Product      domain.Product         `json:"product"`
	Type         domain.TransactionType `json:"type"`
	Quantity     int                    `json:"quantity"`
	DeliveryDate *time.Time             `json:"deliveryDate,omitempty"`
	ReturnDate   *time.Time             `json:"returnDate,omitempty"`
	RentDays     int                    `json:"rentDays,omitempty"`
}

func (e Entry) Key() Key {
	return Key{ProductID: e.Product.ID, Type: e.Type}
}

// Complete reports whether the entry may be checked out.
func (e Entry) Complete() bool {
	if e.Type != domain.TransactionRent {
		return true
	}
	return e.DeliveryDate != nil && e.ReturnDate != nil && e.RentDays > 0
}

// BuyEntry builds a purchase line.
func BuyEntry(p domain.Product, quantity int) Entry {
	return Entry{Product: p, Type: domain.TransactionBuy, Quantity: quantity}
}

// RentEntry builds a rental line with its billable days derived from the window.
func RentEntry(p domain.Product, delivery, ret time.Time) Entry {
	d, r := rental.Date(delivery), rental.Date(ret)
	return Entry{
		Product:      p,
		Type:         domain.TransactionRent,
		Quantity:     1,
		DeliveryDate: &d,
		ReturnDate:   &r,
		RentDays:     rental.RentDays(d, r),
	}
}

// State is the ledger contents in insertion order.
type State struct {
	Entries []Entry `json:"entries"`
}

func (s State) index(k Key) int {
	return slices.IndexFunc(s.Entries, func(e Entry) bool { return e.Key() == k })
}

// Find returns the entry stored under k.
func (s State) Find(k Key) (Entry, bool) {
	if i := s.index(k); i >= 0 {
		return s.Entries[i], true
	}
	return Entry{}, false
}

// Action is a ledger transition.
type Action interface {
	isAction()
}

type AddItem struct {
	Entry Entry
}

type SetQuantity struct {
	ProductID string
	Type      domain.TransactionType
	Quantity  int
}

type RemoveItem struct {
	ProductID string
	Type      domain.TransactionType
}

type Clear struct{}

func (AddItem) isAction()     {}
func (SetQuantity) isAction() {}
func (RemoveItem) isAction()  {}
func (Clear) isAction()       {}

// Reduce applies a to s and returns the next state. s is never modified.
// Every action is total: inputs the ledger cannot apply leave the state as is.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case AddItem:
		return add(s, act.Entry)
	case SetQuantity:
		return setQuantity(s, Key{ProductID: act.ProductID, Type: act.Type}, act.Quantity)
	case RemoveItem:
		return remove(s, Key{ProductID: act.ProductID, Type: act.Type})
	case Clear:
		return State{}
	default:
		return s
	}
}

func add(s State, e Entry) State {
	if !e.Product.Offers(e.Type) {
		return s
	}
	switch e.Type {
	case domain.TransactionBuy:
		if e.Quantity <= 0 {
			return s
		}
		e.DeliveryDate, e.ReturnDate, e.RentDays = nil, nil, 0
	case domain.TransactionRent:
		e.Quantity = 1
		e.RentDays = 0
		if e.DeliveryDate != nil && e.ReturnDate != nil {
			e.RentDays = rental.RentDays(*e.DeliveryDate, *e.ReturnDate)
		}
	}

	entries := slices.Clone(s.Entries)
	i := s.index(e.Key())
	switch {
	case i < 0:
		entries = append(entries, e)
	case e.Type == domain.TransactionBuy:
		entries[i].Quantity += e.Quantity
	default:
		entries[i] = e
	}
	return State{Entries: entries}
}

func setQuantity(s State, k Key, quantity int) State {
	i := s.index(k)
	if i < 0 {
		return s
	}
	if quantity <= 0 {
		return remove(s, k)
	}
	if k.Type != domain.TransactionBuy {
		return s
	}
	entries := slices.Clone(s.Entries)
	entries[i].Quantity = quantity
	return State{Entries: entries}
}

func remove(s State, k Key) State {
	i := s.index(k)
	if i < 0 {
		return s
	}
	entries := slices.Clone(s.Entries)
	return State{Entries: slices.Delete(entries, i, i+1)}
}

// Ledger is a mutable holder around State for callers that do not need
// the reducer directly.
type Ledger struct {
	state State
}

func NewLedger(s State) *Ledger {
	return &Ledger{state: s}
}

func (l *Ledger) Dispatch(a Action) {
	l.state = Reduce(l.state, a)
}

func (l *Ledger) AddItem(e Entry) {
	l.Dispatch(AddItem{Entry: e})
}

func (l *Ledger) SetQuantity(productID string, t domain.TransactionType, quantity int) {
	l.Dispatch(SetQuantity{ProductID: productID, Type: t, Quantity: quantity})
}

func (l *Ledger) RemoveItem(productID string, t domain.TransactionType) {
	l.Dispatch(RemoveItem{ProductID: productID, Type: t})
}

func (l *Ledger) Totals() Totals {
	return l.state.Totals()
}

func (l *Ledger) State() State {
	return l.state
}
