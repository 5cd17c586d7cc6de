package cart

import (
	"fmt"
	"strings"
	"time"

	"wardrobe-storefront/internal/domain"
	"wardrobe-storefront/internal/rental"
)

// Request is an add-to-cart or price-quote request as it arrives from a
// client. Dates use rental.DateLayout.
type Request struct {
	Type         string `json:"type" binding:"required"`
	Quantity     int    `json:"quantity"`
	DeliveryDate string `json:"deliveryDate"`
	ReturnDate   string `json:"returnDate"`
}

// Entry builds the cart line for r like Price, and also requires the
// listing to be available. Errors match domain.ErrInvalidInput, or
// domain.ErrConflict when the listing is rented out or sold.
func (r Request) Entry(p domain.Product, now time.Time) (Entry, error) {
	e, err := r.Price(p, now)
	if err != nil {
		return Entry{}, err
	}
	if p.Availability != domain.AvailabilityAvailable {
		return Entry{}, domain.Conflict(fmt.Sprintf("product %s is %s", p.ID, p.Availability))
	}
	return e, nil
}

// Price validates r against p and the rental calendar at now and builds the
// line it would price to. Availability is not checked.
func (r Request) Price(p domain.Product, now time.Time) (Entry, error) {
	t, ok := domain.ParseTransactionType(r.Type)
	if !ok {
		return Entry{}, domain.Invalid("type must be buy or rent")
	}
	if !p.Offers(t) {
		return Entry{}, domain.Invalid(fmt.Sprintf("product %s cannot be %s", p.ID, pastTense(t)))
	}

	if t == domain.TransactionBuy {
		if r.Quantity <= 0 {
			return Entry{}, domain.Invalid("quantity must be positive")
		}
		return BuyEntry(p, r.Quantity), nil
	}

	if strings.TrimSpace(r.DeliveryDate) == "" || strings.TrimSpace(r.ReturnDate) == "" {
		return Entry{}, domain.Invalid(rental.ErrMissingDates.Error())
	}
	delivery, err := rental.ParseDate(r.DeliveryDate)
	if err != nil {
		return Entry{}, domain.Invalid(err.Error())
	}
	ret, err := rental.ParseDate(r.ReturnDate)
	if err != nil {
		return Entry{}, domain.Invalid(err.Error())
	}
	if err := rental.ValidateWindow(now, delivery, ret); err != nil {
		return Entry{}, domain.Invalid(err.Error())
	}
	e := RentEntry(p, delivery, ret)
	if e.RentDays <= 0 {
		return Entry{}, domain.Invalid("rental must cover at least one billable day")
	}
	return e, nil
}

func pastTense(t domain.TransactionType) string {
	if t == domain.TransactionRent {
		return "rented"
	}
	return "bought"
}
