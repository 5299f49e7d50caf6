package domain

// ProductRef is a catalog product as referenced by the wishlist. The catalog
// service owns the product; the wishlist stores a value copy and treats it as
// immutable.
type ProductRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"image_url,omitempty"`
	ImageAlt string `json:"image_alt,omitempty"`
}
