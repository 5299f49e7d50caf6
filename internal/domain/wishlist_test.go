package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWishlistAdd(t *testing.T) {
	w := NewWishlist("u1")

	assert.True(t, w.Add(ProductRef{ID: "p1", Name: "Shoe", Price: 4999}))
	assert.Equal(t, 1, w.Count())

	// Duplicate adds leave the list untouched.
	assert.False(t, w.Add(ProductRef{ID: "p1", Name: "Shoe", Price: 4999}))
	assert.Equal(t, 1, w.Count())

	assert.True(t, w.Add(ProductRef{ID: "p2", Name: "Bag", Price: 2999}))
	assert.Equal(t, 2, w.Count())
}

func TestWishlistRemove(t *testing.T) {
	w := NewWishlist("u1")
	w.Add(ProductRef{ID: "p1"})
	w.Add(ProductRef{ID: "p2"})

	assert.True(t, w.Remove("p1"))
	assert.Equal(t, 1, w.Count())
	assert.False(t, w.Contains("p1"))
	assert.True(t, w.Contains("p2"))

	// Removing an absent product is a no-op.
	assert.False(t, w.Remove("p1"))
	assert.Equal(t, 1, w.Count())
}

func TestWishlistContains(t *testing.T) {
	w := NewWishlist("u1")
	assert.False(t, w.Contains("p1"))

	w.Add(ProductRef{ID: "p1"})
	assert.True(t, w.Contains("p1"))
}
