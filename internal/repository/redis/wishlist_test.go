package redis

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmanPardeshi01/Revcart-Microservice/internal/domain"
)

func setupTestRedis(t *testing.T) (*WishlistRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewWishlistRepository(client, logger), mr
}

func sampleProducts() []domain.ProductRef {
	return []domain.ProductRef{
		{ID: "p1", Name: "Running Shoe", Price: 4999, ImageURL: "https://img.example.com/shoe.jpg", ImageAlt: "shoe"},
		{ID: "p2", Name: "Backpack", Price: 2999},
	}
}

func TestWishlistRepository_Get_Success(t *testing.T) {
	repo, mr := setupTestRedis(t)

	data, err := json.Marshal(sampleProducts())
	require.NoError(t, err)
	require.NoError(t, mr.Set("wishlist:user-001", string(data)))

	wishlist, err := repo.Get(context.Background(), "user-001")
	require.NoError(t, err)
	assert.Equal(t, "user-001", wishlist.UserID)
	require.Len(t, wishlist.Products, 2)
	assert.Equal(t, "Running Shoe", wishlist.Products[0].Name)
	assert.Equal(t, int64(4999), wishlist.Products[0].Price)
}

func TestWishlistRepository_Get_MissingKeyIsEmpty(t *testing.T) {
	repo, _ := setupTestRedis(t)

	wishlist, err := repo.Get(context.Background(), "user-001")
	require.NoError(t, err)
	assert.Equal(t, "user-001", wishlist.UserID)
	assert.Empty(t, wishlist.Products)
}

func TestWishlistRepository_Get_MalformedValueIsEmpty(t *testing.T) {
	repo, mr := setupTestRedis(t)

	require.NoError(t, mr.Set("wishlist:user-001", "{not json"))

	wishlist, err := repo.Get(context.Background(), "user-001")
	require.NoError(t, err)
	assert.Empty(t, wishlist.Products)
}

func TestWishlistRepository_SaveRoundTrip(t *testing.T) {
	repo, mr := setupTestRedis(t)

	wishlist := &domain.Wishlist{UserID: "user-001", Products: sampleProducts()}
	require.NoError(t, repo.Save(context.Background(), wishlist))

	assert.True(t, mr.Exists("wishlist:user-001"))

	loaded, err := repo.Get(context.Background(), "user-001")
	require.NoError(t, err)
	assert.Equal(t, wishlist.Products, loaded.Products)
}

func TestWishlistRepository_Delete(t *testing.T) {
	repo, mr := setupTestRedis(t)

	require.NoError(t, repo.Save(context.Background(), &domain.Wishlist{UserID: "user-001", Products: sampleProducts()}))
	require.NoError(t, repo.Delete(context.Background(), "user-001"))

	assert.False(t, mr.Exists("wishlist:user-001"))

	// Deleting a missing wishlist is not an error.
	assert.NoError(t, repo.Delete(context.Background(), "user-001"))
}
