// Package catalog holds the product browse pipeline: filtering, sorting,
// search suggestions and the bundled sample catalog.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"wardrobe-storefront/internal/domain"
)

const (
	AllCategories = "All Categories"
	AllLocations  = "All Locations"
)

// SortKey orders a filtered listing.
type SortKey string

const (
	SortLatest    SortKey = "latest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortReviews   SortKey = "reviews"
)

// ParseSortKey maps unknown keys to SortLatest.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortPriceLow, SortPriceHigh, SortRating, SortReviews:
		return k
	default:
		return SortLatest
	}
}

// TypeFilter restricts a listing to products offered for buy or rent.
type TypeFilter string

const (
	TypeAll  TypeFilter = "all"
	TypeBuy  TypeFilter = "buy"
	TypeRent TypeFilter = "rent"
)

// ParseTypeFilter maps unknown values to TypeAll.
func ParseTypeFilter(s string) TypeFilter {
	switch f := TypeFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case TypeBuy, TypeRent:
		return f
	default:
		return TypeAll
	}
}

// DefaultMaxPrice is the upper bound of the storefront price slider.
var DefaultMaxPrice = decimal.NewFromInt(50000)

// FilterSpec is one browse query. An empty Category or Location behaves
// like its "All" sentinel.
type FilterSpec struct {
	Search    string
	Category  string
	Location  string
	MinPrice  decimal.Decimal
	MaxPrice  decimal.Decimal
	Type      TypeFilter
	MinRating float64
	Sort      SortKey
}

// DefaultFilterSpec matches everything in the default price band, in catalog order.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		Category: AllCategories,
		Location: AllLocations,
		MinPrice: decimal.Zero,
		MaxPrice: DefaultMaxPrice,
		Type:     TypeAll,
		Sort:     SortLatest,
	}
}

// EffectivePrice is the buy price, else the rent price, else zero.
func EffectivePrice(p domain.Product) decimal.Decimal {
	if p.BuyPrice.Valid {
		return p.BuyPrice.Decimal
	}
	if p.RentPrice.Valid {
		return p.RentPrice.Decimal
	}
	return decimal.Zero
}

// FilterAndSort returns the products matching spec in a stable order. The
// input slice is left untouched. A price band with min > max matches nothing.
func FilterAndSort(products []domain.Product, spec FilterSpec) []domain.Product {
	term := strings.ToLower(spec.Search)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(p, spec, term) {
			out = append(out, p)
		}
	}
	sortProducts(out, spec.Sort)
	return out
}

func matches(p domain.Product, spec FilterSpec, term string) bool {
	if !matchesSearch(p, term) {
		return false
	}
	if spec.Category != "" && spec.Category != AllCategories && p.Category != spec.Category {
		return false
	}
	if spec.Location != "" && spec.Location != AllLocations && p.Location != spec.Location {
		return false
	}
	price := EffectivePrice(p)
	if price.LessThan(spec.MinPrice) || price.GreaterThan(spec.MaxPrice) {
		return false
	}
	switch spec.Type {
	case TypeBuy:
		if !p.BuyPrice.Valid {
			return false
		}
	case TypeRent:
		if !p.RentPrice.Valid {
			return false
		}
	}
	return p.Rating >= spec.MinRating
}

func matchesSearch(p domain.Product, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), term) || strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func sortProducts(products []domain.Product, key SortKey) {
	switch key {
	case SortPriceLow:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return EffectivePrice(a).Cmp(EffectivePrice(b))
		})
	case SortPriceHigh:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return EffectivePrice(b).Cmp(EffectivePrice(a))
		})
	case SortRating:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case SortReviews:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(b.Reviews, a.Reviews)
		})
	}
}
