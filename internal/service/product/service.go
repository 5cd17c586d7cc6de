package product

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"wardrobe-storefront/internal/cart"
	"wardrobe-storefront/internal/catalog"
	"wardrobe-storefront/internal/domain"
)

type productRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type facetRepo interface {
	List(ctx context.Context, kind domain.FacetKind) ([]domain.Facet, error)
}

type Service struct {
	repo   productRepo
	facets facetRepo
	now    func() time.Time
}

func New(repo productRepo, facets facetRepo) *Service {
	return &Service{repo: repo, facets: facets, now: time.Now}
}

// List returns the catalog filtered and sorted by spec.
func (s *Service) List(ctx context.Context, spec catalog.FilterSpec) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.FilterAndSort(products, spec), nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Suggest returns search-as-you-type product names for query.
func (s *Service) Suggest(ctx context.Context, query string) ([]string, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Suggest(products, query, catalog.SuggestLimit), nil
}

// Facets returns the stored category and location lists. When none are
// stored the lists are derived from the catalog in first-seen order.
func (s *Service) Facets(ctx context.Context) (catalog.Facets, error) {
	categories, err := s.facetNames(ctx, domain.FacetCategory)
	if err != nil {
		return catalog.Facets{}, err
	}
	locations, err := s.facetNames(ctx, domain.FacetLocation)
	if err != nil {
		return catalog.Facets{}, err
	}
	if len(categories) == 0 || len(locations) == 0 {
		products, err := s.repo.List(ctx)
		if err != nil {
			return catalog.Facets{}, err
		}
		if len(categories) == 0 {
			categories = distinct(products, func(p domain.Product) string { return p.Category })
		}
		if len(locations) == 0 {
			locations = distinct(products, func(p domain.Product) string { return p.Location })
		}
	}
	return catalog.NewFacets(categories, locations), nil
}

func (s *Service) facetNames(ctx context.Context, kind domain.FacetKind) ([]string, error) {
	if s.facets == nil {
		return nil, nil
	}
	facets, err := s.facets.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(facets))
	for _, f := range facets {
		names = append(names, f.Name)
	}
	return names, nil
}

func distinct(products []domain.Product, field func(domain.Product) string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range products {
		v := field(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Quote is the price preview shown on a product page.
type Quote struct {
	ProductID    string                 `json:"productId"`
	Type         domain.TransactionType `json:"type"`
	Quantity     int                    `json:"quantity"`
	DeliveryDate *time.Time             `json:"deliveryDate,omitempty"`
	ReturnDate   *time.Time             `json:"returnDate,omitempty"`
	RentDays     int                    `json:"rentDays,omitempty"`
	UnitPrice    decimal.Decimal        `json:"unitPrice"`
	Deposit      decimal.Decimal        `json:"securityDeposit"`
	Total        decimal.Decimal        `json:"total"`
}

// Quote prices a prospective cart line without touching any cart. Listings
// that are rented out or sold still get a preview.
func (s *Service) Quote(ctx context.Context, id string, req cart.Request) (*Quote, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e, err := req.Price(*p, s.now())
	if err != nil {
		return nil, err
	}
	q := &Quote{
		ProductID:    p.ID,
		Type:         e.Type,
		Quantity:     e.Quantity,
		DeliveryDate: e.DeliveryDate,
		ReturnDate:   e.ReturnDate,
		RentDays:     e.RentDays,
		Deposit:      decimal.Zero,
		Total:        cart.EntryTotal(e),
	}
	if e.Type == domain.TransactionRent {
		q.UnitPrice = domain.PriceOrZero(p.RentPrice)
		q.Deposit = domain.PriceOrZero(p.SecurityDeposit)
	} else {
		q.UnitPrice = domain.PriceOrZero(p.BuyPrice)
	}
	return q, nil
}
