package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/AmanPardeshi01/Revcart-Microservice/internal/domain"
)

const wishlistKeyPrefix = "wishlist:"

// WishlistRepository stores each user's wishlist as a single JSON value
// under wishlist:<userID>. Entries have no TTL; the wishlist is durable.
type WishlistRepository struct {
	client *redis.Client
	logger *slog.Logger
}

// NewWishlistRepository creates a Redis-backed wishlist repository.
func NewWishlistRepository(client *redis.Client, logger *slog.Logger) *WishlistRepository {
	return &WishlistRepository{
		client: client,
		logger: logger,
	}
}

func wishlistKey(userID string) string {
	return wishlistKeyPrefix + userID
}

// Get loads the wishlist for a user. A missing key yields an empty
// wishlist. A value that fails to decode also yields an empty wishlist
// with a warning logged, never an error.
func (r *WishlistRepository) Get(ctx context.Context, userID string) (*domain.Wishlist, error) {
	raw, err := r.client.Get(ctx, wishlistKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.NewWishlist(userID), nil
		}
		return nil, fmt.Errorf("get wishlist from redis: %w", err)
	}

	var products []domain.ProductRef
	if err := json.Unmarshal(raw, &products); err != nil {
		r.logger.WarnContext(ctx, "discarding malformed wishlist value",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return domain.NewWishlist(userID), nil
	}

	return &domain.Wishlist{UserID: userID, Products: products}, nil
}

// Save writes the full wishlist, replacing any previous value.
func (r *WishlistRepository) Save(ctx context.Context, wishlist *domain.Wishlist) error {
	data, err := json.Marshal(wishlist.Products)
	if err != nil {
		return fmt.Errorf("marshal wishlist: %w", err)
	}

	if err := r.client.Set(ctx, wishlistKey(wishlist.UserID), data, 0).Err(); err != nil {
		return fmt.Errorf("save wishlist to redis: %w", err)
	}

	return nil
}

// Delete removes the stored wishlist for a user.
func (r *WishlistRepository) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, wishlistKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete wishlist from redis: %w", err)
	}
	return nil
}
