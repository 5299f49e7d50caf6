package memory

import (
	"context"
	"sync"

	"github.com/AmanPardeshi01/Revcart-Microservice/internal/domain"
)

// WishlistRepository is an in-process wishlist store used when no Redis
// instance is configured. Contents do not survive a restart.
type WishlistRepository struct {
	mu    sync.RWMutex
	lists map[string][]domain.ProductRef
}

// NewWishlistRepository creates an empty in-memory wishlist repository.
func NewWishlistRepository() *WishlistRepository {
	return &WishlistRepository{
		lists: make(map[string][]domain.ProductRef),
	}
}

// Get loads the wishlist for a user, empty when none exists.
func (r *WishlistRepository) Get(ctx context.Context, userID string) (*domain.Wishlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.lists[userID]
	if !ok {
		return domain.NewWishlist(userID), nil
	}

	products := make([]domain.ProductRef, len(stored))
	copy(products, stored)
	return &domain.Wishlist{UserID: userID, Products: products}, nil
}

// Save replaces the stored wishlist for a user.
func (r *WishlistRepository) Save(ctx context.Context, wishlist *domain.Wishlist) error {
	products := make([]domain.ProductRef, len(wishlist.Products))
	copy(products, wishlist.Products)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists[wishlist.UserID] = products
	return nil
}

// Delete removes the stored wishlist for a user.
func (r *WishlistRepository) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lists, userID)
	return nil
}
