package catalog

import (
	_ "embed"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"wardrobe-storefront/internal/domain"
)

//go:embed sample.yaml
var sampleYAML []byte

// Facets lists the selectable browse values, sentinels first.
type Facets struct {
	Categories []string `json:"categories"`
	Locations  []string `json:"locations"`
}

// Seed is a decoded catalog file: facet lists plus products in catalog order.
type Seed struct {
	Categories []string
	Locations  []string
	Products   []domain.Product
}

type seedFile struct {
	Categories []string      `yaml:"categories"`
	Locations  []string      `yaml:"locations"`
	Products   []seedProduct `yaml:"products"`
}

type seedProduct struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Images          []string `yaml:"images"`
	Category        string   `yaml:"category"`
	BuyPrice        *float64 `yaml:"buyPrice"`
	RentPrice       *float64 `yaml:"rentPrice"`
	SecurityDeposit *float64 `yaml:"securityDeposit"`
	Vendor          string   `yaml:"vendor"`
	VendorID        string   `yaml:"vendorId"`
	Rating          float64  `yaml:"rating"`
	Reviews         int      `yaml:"reviews"`
	Tags            []string `yaml:"tags"`
	Availability    string   `yaml:"availability"`
	Location        string   `yaml:"location"`
	RentalType      string   `yaml:"rentalType"`
}

// Sample decodes the bundled storefront catalog.
func Sample() (*Seed, error) {
	return Decode(sampleYAML)
}

// Decode parses a catalog YAML document and validates every product.
func Decode(raw []byte) (*Seed, error) {
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	seed := &Seed{
		Categories: f.Categories,
		Locations:  f.Locations,
		Products:   make([]domain.Product, 0, len(f.Products)),
	}
	seen := make(map[string]struct{}, len(f.Products))
	for i, sp := range f.Products {
		p := sp.toProduct(i)
		if err := p.Validate(); err != nil {
			return nil, errors.Wrapf(err, "catalog entry %d", i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, errors.Wrapf(domain.ErrAlreadyExists, "catalog entry %d: product id %s", i, p.ID)
		}
		seen[p.ID] = struct{}{}
		seed.Products = append(seed.Products, p)
	}
	return seed, nil
}

// NewFacets prepends the "All" sentinels to stored browse lists.
func NewFacets(categories, locations []string) Facets {
	return Facets{
		Categories: append([]string{AllCategories}, categories...),
		Locations:  append([]string{AllLocations}, locations...),
	}
}

// Facets returns the seed's browse lists with the sentinels prepended.
func (s *Seed) Facets() Facets {
	return NewFacets(s.Categories, s.Locations)
}

func (sp seedProduct) toProduct(position int) domain.Product {
	return domain.Product{
		ID:              sp.ID,
		Name:            sp.Name,
		Description:     sp.Description,
		Images:          sp.Images,
		Category:        sp.Category,
		BuyPrice:        optionalPrice(sp.BuyPrice),
		RentPrice:       optionalPrice(sp.RentPrice),
		SecurityDeposit: optionalPrice(sp.SecurityDeposit),
		Vendor:          sp.Vendor,
		VendorID:        sp.VendorID,
		Rating:          sp.Rating,
		Reviews:         sp.Reviews,
		Tags:            sp.Tags,
		Availability:    domain.Availability(sp.Availability),
		Location:        sp.Location,
		RentalType:      domain.RentalType(sp.RentalType),
		Position:        position,
	}
}

func optionalPrice(v *float64) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return domain.Price(decimal.NewFromFloat(*v))
}
