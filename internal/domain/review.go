package domain

import (
	"math"
	"time"
)

// Review is a customer rating for a single product. Ratings run from 1 to 5
// in half-point steps.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserName  string    `json:"userName"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsValidRating reports whether r is within [1, 5] on a half-point step.
func IsValidRating(r float64) bool {
	if r < 1 || r > 5 {
		return false
	}
	doubled := r * 2
	return doubled == math.Trunc(doubled)
}

// RoundRating rounds an average rating to one decimal place, half away
// from zero.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
