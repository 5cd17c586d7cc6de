package domain

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gown() Product {
	return Product{
		ID:              "1",
		Name:            "Designer Evening Gown",
		BuyPrice:        Price(decimal.NewFromInt(15000)),
		RentPrice:       Price(decimal.NewFromInt(2500)),
		SecurityDeposit: Price(decimal.NewFromInt(5000)),
		Rating:          4.8,
		Reviews:         24,
		Availability:    AvailabilityAvailable,
		RentalType:      RentalBoth,
	}
}

func TestProductValidate(t *testing.T) {
	require.NoError(t, gown().Validate())

	cases := map[string]func(p *Product){
		"missing id":             func(p *Product) { p.ID = "" },
		"both without rent":      func(p *Product) { p.RentPrice = decimal.NullDecimal{} },
		"rent-only with buy":     func(p *Product) { p.RentalType = RentalRentOnly },
		"buy-only with rent":     func(p *Product) { p.RentalType = RentalBuyOnly },
		"negative deposit":       func(p *Product) { p.SecurityDeposit = Price(decimal.NewFromInt(-1)) },
		"rating above five":      func(p *Product) { p.Rating = 5.1 },
		"unknown rental type":    func(p *Product) { p.RentalType = "lease" },
		"unknown availability":   func(p *Product) { p.Availability = "lost" },
		"negative review counts": func(p *Product) { p.Reviews = -3 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := gown()
			mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestProductOffers(t *testing.T) {
	p := gown()
	assert.True(t, p.Offers(TransactionBuy))
	assert.True(t, p.Offers(TransactionRent))

	p.BuyPrice = decimal.NullDecimal{}
	assert.False(t, p.Offers(TransactionBuy))
	assert.False(t, p.Offers("swap"))
}

func TestParseTransactionType(t *testing.T) {
	got, ok := ParseTransactionType(" Rent ")
	require.True(t, ok)
	assert.Equal(t, TransactionRent, got)

	_, ok = ParseTransactionType("lease")
	assert.False(t, ok)
}

func TestInvalidKeepsMessage(t *testing.T) {
	err := Invalid("quantity must be positive")
	assert.Equal(t, "quantity must be positive", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(Conflict("taken"), ErrConflict))
}
