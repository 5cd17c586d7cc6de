package session

import (
	"context"
	"time"

	"wardrobe-storefront/internal/cart"
	"wardrobe-storefront/internal/notification"
	"wardrobe-storefront/internal/theme"
)

// Session is the per-shopper storefront state: cart, toast feed and theme.
type Session struct {
	ID            string             `json:"id"`
	Cart          cart.State         `json:"cart"`
	Notifications notification.State `json:"notifications"`
	Theme         theme.State        `json:"theme"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// Repository stores sessions. Update applies fn to the latest stored
// version; a concurrent writer makes it retry rather than overwrite.
type Repository interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)
	Delete(ctx context.Context, id string) error
}
