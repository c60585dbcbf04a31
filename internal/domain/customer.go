package domain

import (
	"time"
)

// Customer exists in seed data only; no endpoint serves it.
type Customer struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Birth time.Time `json:"birth"`
}
