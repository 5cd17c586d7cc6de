// Package seed loads a catalog document into the product and facet tables.
package seed

import (
	"context"

	"github.com/go-faster/errors"

	"wardrobe-storefront/internal/catalog"
	"wardrobe-storefront/internal/domain"
)

type productWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type facetWriter interface {
	Upsert(ctx context.Context, f domain.Facet) (*domain.Facet, error)
}

// Result counts what Apply wrote.
type Result struct {
	Products int
	Facets   int
}

// Apply upserts every product and facet of s in catalog order. It is
// idempotent: products are keyed by id and facets by kind and name.
func Apply(ctx context.Context, s *catalog.Seed, products productWriter, facets facetWriter) (Result, error) {
	var res Result
	for i, name := range s.Categories {
		if _, err := facets.Upsert(ctx, domain.Facet{Kind: domain.FacetCategory, Name: name, Position: i}); err != nil {
			return res, errors.Wrapf(err, "upsert category %q", name)
		}
		res.Facets++
	}
	for i, name := range s.Locations {
		if _, err := facets.Upsert(ctx, domain.Facet{Kind: domain.FacetLocation, Name: name, Position: i}); err != nil {
			return res, errors.Wrapf(err, "upsert location %q", name)
		}
		res.Facets++
	}
	for _, p := range s.Products {
		if _, err := products.Upsert(ctx, p); err != nil {
			return res, errors.Wrapf(err, "upsert product %s", p.ID)
		}
		res.Products++
	}
	return res, nil
}
