package domain

import (
	"math"
)

// RatingSummary contains aggregate review statistics for a product.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// SummarizeRatings computes the average rating and count for a review set.
// The average is 0 for an empty set, otherwise the arithmetic mean rounded
// to one decimal place, half away from zero.
func SummarizeRatings(reviews []Review) RatingSummary {
	if len(reviews) == 0 {
		return RatingSummary{}
	}
	mean := MeanRating(reviews)
	return RatingSummary{
		Average: math.Round(mean*10) / 10,
		Count:   len(reviews),
	}
}

// MeanRating returns the unrounded mean rating, 0 for an empty set. Used as
// the sort key when ranking products so rounding does not reorder ties.
func MeanRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
