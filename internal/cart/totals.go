package cart

import (
	"github.com/shopspring/decimal"

	"wardrobe-storefront/internal/domain"
)

// Totals summarizes a ledger.
type Totals struct {
	Amount     decimal.Decimal `json:"amount"`
	Deposits   decimal.Decimal `json:"deposits"`
	ItemCount  int             `json:"itemCount"`
	Entries    int             `json:"entries"`
	Incomplete int             `json:"incomplete"`
}

// Ready reports whether the cart can be handed to checkout.
func (t Totals) Ready() bool {
	return t.Entries > 0 && t.Incomplete == 0
}

// EntryTotal prices one entry: buy price times quantity, or rent days times
// rent price plus one security deposit. Missing prices count as zero.
func EntryTotal(e Entry) decimal.Decimal {
	switch e.Type {
	case domain.TransactionBuy:
		return domain.PriceOrZero(e.Product.BuyPrice).Mul(decimal.NewFromInt(int64(e.Quantity)))
	case domain.TransactionRent:
		rent := domain.PriceOrZero(e.Product.RentPrice).Mul(decimal.NewFromInt(int64(e.RentDays)))
		return rent.Add(domain.PriceOrZero(e.Product.SecurityDeposit))
	default:
		return decimal.Zero
	}
}

// Totals sums complete entries into Amount and counts every entry's quantity.
func (s State) Totals() Totals {
	t := Totals{Amount: decimal.Zero, Deposits: decimal.Zero, Entries: len(s.Entries)}
	for _, e := range s.Entries {
		t.ItemCount += e.Quantity
		if !e.Complete() {
			t.Incomplete++
			continue
		}
		t.Amount = t.Amount.Add(EntryTotal(e))
		if e.Type == domain.TransactionRent {
			t.Deposits = t.Deposits.Add(domain.PriceOrZero(e.Product.SecurityDeposit))
		}
	}
	return t
}
