package facet

import (
	"context"

	"wardrobe-storefront/internal/domain"
)

type Repository interface {
	List(ctx context.Context, kind domain.FacetKind) ([]domain.Facet, error)
	Upsert(ctx context.Context, f domain.Facet) (*domain.Facet, error)
}
