// Package rental computes billable rental days and checks rental windows.
//
// A rental is billed per night: the delivery day itself is free, so a return
// on the next day bills nothing and a return two days later bills one day.
package rental

import (
	"math"
	"strings"
	"time"

	"github.com/go-faster/errors"
)

// DateLayout is the calendar date format accepted on the wire.
const DateLayout = "2006-01-02"

// MinWindowDays is the shortest delivery-to-return gap that bills a day.
const MinWindowDays = 2

const day = 24 * time.Hour

var (
	ErrMissingDates    = errors.New("delivery and return dates required")
	ErrInvalidDate     = errors.New("dates must use YYYY-MM-DD")
	ErrDeliveryTooSoon = errors.New("delivery date must be tomorrow or later")
	ErrReturnTooSoon   = errors.New("return date must be at least 2 days after delivery")
)

// Date truncates t to its calendar day in UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate reads a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, errors.Wrap(ErrInvalidDate, s)
	}
	return t, nil
}

// RentDays returns ceil((ret-delivery)/1 day) - 1, never below zero.
// Zero means the window bills nothing and must not be checked out.
func RentDays(delivery, ret time.Time) int {
	if delivery.IsZero() || ret.IsZero() {
		return 0
	}
	days := int(math.Ceil(float64(ret.Sub(delivery))/float64(day))) - 1
	if days < 0 {
		return 0
	}
	return days
}

// EarliestDelivery is the first selectable delivery date: tomorrow.
func EarliestDelivery(now time.Time) time.Time {
	return Date(now).AddDate(0, 0, 1)
}

// EarliestReturn is the first selectable return date for a delivery.
func EarliestReturn(delivery time.Time) time.Time {
	return Date(delivery).AddDate(0, 0, MinWindowDays)
}

// ValidateWindow applies the date picker limits to a delivery/return pair.
func ValidateWindow(now, delivery, ret time.Time) error {
	if delivery.IsZero() || ret.IsZero() {
		return ErrMissingDates
	}
	if Date(delivery).Before(EarliestDelivery(now)) {
		return ErrDeliveryTooSoon
	}
	if Date(ret).Before(EarliestReturn(delivery)) {
		return ErrReturnTooSoon
	}
	return nil
}
