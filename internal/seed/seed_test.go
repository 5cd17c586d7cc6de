package seed

import (
	"context"
	"errors"
	"testing"

	"wardrobe-storefront/internal/catalog"
	"wardrobe-storefront/internal/domain"
)

type stubProducts struct {
	items []domain.Product
	err   error
}

func (s *stubProducts) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.items = append(s.items, p)
	return &p, nil
}

type stubFacets struct {
	items []domain.Facet
}

func (s *stubFacets) Upsert(_ context.Context, f domain.Facet) (*domain.Facet, error) {
	s.items = append(s.items, f)
	return &f, nil
}

func TestApply_Sample(t *testing.T) {
	s, err := catalog.Sample()
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	products, facets := &stubProducts{}, &stubFacets{}

	res, err := Apply(context.Background(), s, products, facets)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Products != len(s.Products) || len(products.items) != len(s.Products) {
		t.Fatalf("expected %d products, got %+v", len(s.Products), res)
	}
	if res.Facets != len(s.Categories)+len(s.Locations) {
		t.Fatalf("unexpected facet count %+v", res)
	}
	first := facets.items[0]
	if first.Kind != domain.FacetCategory || first.Name != s.Categories[0] || first.Position != 0 {
		t.Fatalf("unexpected first facet %+v", first)
	}
	for i, p := range products.items {
		if p.ID != s.Products[i].ID {
			t.Fatalf("product %d out of order: %s", i, p.ID)
		}
	}
}

func TestApply_StopsOnError(t *testing.T) {
	s := &catalog.Seed{Products: []domain.Product{{ID: "1"}, {ID: "2"}}}
	products := &stubProducts{err: errors.New("db down")}

	res, err := Apply(context.Background(), s, products, &stubFacets{})
	if err == nil || res.Products != 0 {
		t.Fatalf("expected failure before any product, got %+v %v", res, err)
	}
}
