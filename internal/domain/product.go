package domain

import (
	"time"
)

// Product represents a sellable software item in the catalog.
type Product struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Version          string    `json:"version"`
	ShortDescription string    `json:"shortDescription"`
	LongDescription  string    `json:"longDescription"`
	Price            Price     `json:"price"`
	InStock          bool      `json:"inStock"`
	Images           []Image   `json:"images,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	Reviews          []Review  `json:"reviews"`

	// Rating is the computed aggregate of Reviews. It is attached by the
	// catalog service on read paths and never persisted.
	Rating *RatingSummary `json:"rating,omitempty"`
}

// Price holds the product's price points in cents. Discount is a percentage
// and only present when a discount applies.
type Price struct {
	Reseller int64 `json:"reseller"`
	UVP      int64 `json:"uvp"`
	Discount *int  `json:"discount,omitempty"`
}

// Image is a product image reference.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// RatingSummary returns the product's aggregate rating computed from its
// loaded reviews.
func (p *Product) RatingSummary() RatingSummary {
	return SummarizeRatings(p.Reviews)
}
