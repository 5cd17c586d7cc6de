package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RentalType describes which transactions a listing supports.
type RentalType string

const (
	RentalBuyOnly  RentalType = "buy-only"
	RentalRentOnly RentalType = "rent-only"
	RentalBoth     RentalType = "both"
)

// Availability is the stock state of a listing.
type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityRented    Availability = "rented"
	AvailabilitySold      Availability = "sold"
)

// TransactionType is how a shopper takes a product: buy it or rent it.
type TransactionType string

const (
	TransactionBuy  TransactionType = "buy"
	TransactionRent TransactionType = "rent"
)

// ParseTransactionType accepts "buy" or "rent" in any case.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch TransactionType(strings.ToLower(strings.TrimSpace(s))) {
	case TransactionBuy:
		return TransactionBuy, true
	case TransactionRent:
		return TransactionRent, true
	default:
		return "", false
	}
}

// Product is a catalog listing. Prices are optional: an invalid NullDecimal
// means the product is not offered that way.
type Product struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	Images          []string            `json:"images"`
	Category        string              `json:"category"`
	BuyPrice        decimal.NullDecimal `json:"buyPrice"`
	RentPrice       decimal.NullDecimal `json:"rentPrice"`
	SecurityDeposit decimal.NullDecimal `json:"securityDeposit"`
	Vendor          string              `json:"vendor"`
	VendorID        string              `json:"vendorId"`
	Rating          float64             `json:"rating"`
	Reviews         int                 `json:"reviews"`
	Tags            []string            `json:"tags"`
	Availability    Availability        `json:"availability"`
	Location        string              `json:"location"`
	RentalType      RentalType          `json:"rentalType"`
	Position        int                 `json:"-"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// Offers reports whether the product carries a price for t.
func (p Product) Offers(t TransactionType) bool {
	switch t {
	case TransactionBuy:
		return p.BuyPrice.Valid
	case TransactionRent:
		return p.RentPrice.Valid
	default:
		return false
	}
}

// Validate checks the listing invariants: rental type agrees with the
// present prices, prices are non-negative and rating is within [0,5].
func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return Invalid("product id required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return Invalid(fmt.Sprintf("product %s: name required", p.ID))
	}
	for name, price := range map[string]decimal.NullDecimal{
		"buyPrice":        p.BuyPrice,
		"rentPrice":       p.RentPrice,
		"securityDeposit": p.SecurityDeposit,
	} {
		if price.Valid && price.Decimal.IsNegative() {
			return Invalid(fmt.Sprintf("product %s: %s must not be negative", p.ID, name))
		}
	}
	switch p.RentalType {
	case RentalBuyOnly:
		if !p.BuyPrice.Valid || p.RentPrice.Valid {
			return Invalid(fmt.Sprintf("product %s: buy-only listing needs a buy price and no rent price", p.ID))
		}
	case RentalRentOnly:
		if !p.RentPrice.Valid || p.BuyPrice.Valid {
			return Invalid(fmt.Sprintf("product %s: rent-only listing needs a rent price and no buy price", p.ID))
		}
	case RentalBoth:
		if !p.BuyPrice.Valid || !p.RentPrice.Valid {
			return Invalid(fmt.Sprintf("product %s: listing offered both ways needs buy and rent prices", p.ID))
		}
	default:
		return Invalid(fmt.Sprintf("product %s: unknown rental type %q", p.ID, p.RentalType))
	}
	switch p.Availability {
	case AvailabilityAvailable, AvailabilityRented, AvailabilitySold:
	default:
		return Invalid(fmt.Sprintf("product %s: unknown availability %q", p.ID, p.Availability))
	}
	if p.Rating < 0 || p.Rating > 5 {
		return Invalid(fmt.Sprintf("product %s: rating must be within 0..5", p.ID))
	}
	if p.Reviews < 0 {
		return Invalid(fmt.Sprintf("product %s: reviews must not be negative", p.ID))
	}
	return nil
}

// Price wraps v as a present optional price.
func Price(v decimal.Decimal) decimal.NullDecimal {
	return decimal.NewNullDecimal(v)
}

// PriceOrZero unwraps an optional price, treating absence as zero.
func PriceOrZero(p decimal.NullDecimal) decimal.Decimal {
	if p.Valid {
		return p.Decimal
	}
	return decimal.Zero
}
