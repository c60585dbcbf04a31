package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func reviewsWithRatings(ratings ...int) []Review {
	reviews := make([]Review, len(ratings))
	for i, r := range ratings {
		reviews[i] = Review{ID: NewID(), Rating: r}
	}
	return reviews
}

func TestSummarizeRatings_Empty(t *testing.T) {
	summary := SummarizeRatings(nil)
	assert.Equal(t, 0.0, summary.Average)
	assert.Equal(t, 0, summary.Count)

	summary = SummarizeRatings([]Review{})
	assert.Equal(t, 0.0, summary.Average)
	assert.Equal(t, 0, summary.Count)
}

func TestSummarizeRatings_SingleReview(t *testing.T) {
	summary := SummarizeRatings(reviewsWithRatings(4))
	assert.Equal(t, 4.0, summary.Average)
	assert.Equal(t, 1, summary.Count)
}

func TestSummarizeRatings_RoundsToOneDecimal(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"mean 4.0", []int{5, 3}, 4.0},
		{"mean 4.333 rounds down", []int{5, 4, 4}, 4.3},
		{"mean 4.666 rounds up", []int{5, 5, 4}, 4.7},
		{"mean 3.5 exact", []int{3, 4}, 3.5},
		{"mean 2.25 half rounds away from zero", []int{1, 2, 3, 3}, 2.3},
		{"all fives", []int{5, 5, 5}, 5.0},
		{"all ones", []int{1, 1}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := SummarizeRatings(reviewsWithRatings(tt.ratings...))
			assert.Equal(t, tt.want, summary.Average)
			assert.Equal(t, len(tt.ratings), summary.Count)
			assert.GreaterOrEqual(t, summary.Average, 0.0)
			assert.LessOrEqual(t, summary.Average, 5.0)
		})
	}
}

func TestMeanRating_Unrounded(t *testing.T) {
	assert.Equal(t, 0.0, MeanRating(nil))
	assert.InDelta(t, 4.333333, MeanRating(reviewsWithRatings(5, 4, 4)), 0.0001)
}

func TestProduct_RatingSummary(t *testing.T) {
	p := Product{Reviews: reviewsWithRatings(5, 3)}
	summary := p.RatingSummary()
	assert.Equal(t, 4.0, summary.Average)
	assert.Equal(t, 2, summary.Count)
}
