package domain

// Wishlist is an ordered collection of product references, unique by product
// ID, owned by a single user.
type Wishlist struct {
	UserID   string       `json:"user_id"`
	Products []ProductRef `json:"products"`
}

// NewWishlist returns an empty wishlist for the user.
func NewWishlist(userID string) *Wishlist {
	return &Wishlist{
		UserID:   userID,
		Products: []ProductRef{},
	}
}

// Contains reports whether the product is in the wishlist.
func (w *Wishlist) Contains(productID string) bool {
	for _, p := range w.Products {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// Add appends product unless its ID is already present. Returns true when the
// wishlist changed.
func (w *Wishlist) Add(product ProductRef) bool {
	if w.Contains(product.ID) {
		return false
	}
	w.Products = append(w.Products, product)
	return true
}

// Remove drops every entry matching productID (at most one given the
// uniqueness invariant). Returns true when the wishlist changed.
func (w *Wishlist) Remove(productID string) bool {
	kept := w.Products[:0]
	removed := false
	for _, p := range w.Products {
		if p.ID == productID {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	w.Products = kept
	return removed
}

// Count returns the number of saved products.
func (w *Wishlist) Count() int {
	return len(w.Products)
}
