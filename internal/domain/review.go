package domain

import (
	"time"
)

// Review represents a rating and comment left against one product.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Rating    int       `json:"rating"`
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`

	// Product is the parent product, populated on list and create paths.
	Product *Product `json:"product,omitempty"`
}
