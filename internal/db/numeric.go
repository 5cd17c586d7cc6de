package db

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Repositories select NUMERIC columns as ::text and convert them here, so
// money never passes through float64.

// NullNumeric converts a nullable NUMERIC text value.
func NullNumeric(s *string) (decimal.NullDecimal, error) {
	if s == nil {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return decimal.NullDecimal{}, errors.Wrapf(err, "parse numeric %q", *s)
	}
	return decimal.NewNullDecimal(d), nil
}

// Numeric converts a NOT NULL NUMERIC text value.
func Numeric(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(err, "parse numeric %q", s)
	}
	return d, nil
}
