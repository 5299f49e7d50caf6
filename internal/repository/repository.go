package repository

import (
	"context"

	"github.com/AmanPardeshi01/Revcart-Microservice/internal/domain"
)

// WishlistRepository persists per-user wishlists. Get returns an empty
// wishlist when none is stored; a corrupt stored value is treated the
// same way so a bad record can never lock a user out of their wishlist.
type WishlistRepository interface {
	Get(ctx context.Context, userID string) (*domain.Wishlist, error)
	Save(ctx context.Context, wishlist *domain.Wishlist) error
	Delete(ctx context.Context, userID string) error
}

// CheckoutRepository persists checkout sessions. TransitionStatus performs
// an atomic compare-and-set on the session status and reports whether the
// transition was applied, which is how concurrent submissions are fenced.
// Update is optimistic for the same reason: it only writes while the stored
// status still equals fromStatus, so a write based on a stale read cannot
// clobber a session another request has since moved on.
type CheckoutRepository interface {
	Create(ctx context.Context, session *domain.CheckoutSession) error
	GetByID(ctx context.Context, id string) (*domain.CheckoutSession, error)
	Update(ctx context.Context, session *domain.CheckoutSession, fromStatus string) error
	TransitionStatus(ctx context.Context, id, from, to string) (bool, error)
	GetActiveByUserID(ctx context.Context, userID string) (*domain.CheckoutSession, error)
}
