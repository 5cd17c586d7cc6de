package inquiry

import (
	"context"

	"wardrobe-storefront/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, in domain.Inquiry) (*domain.Inquiry, error)
}
