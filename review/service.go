// Package review records reader ratings and keeps each book's derived
// rating aggregates in step with them.
package review

import (
	"context"

	"librastore/store"
)

// Review is a stored review hydrated with a sanitized copy of its author.
type Review struct {
	store.Review
	User *store.User `json:"user,omitempty"`
}

// Service defines the interface for the review service.
type Service interface {
	// AddReview inserts a review and recomputes the owning book's average
	// rating and review count.
	AddReview(ctx context.Context, bookID, userID string, rating int, comment string) (store.Review, error)

	// ListReviews returns a book's reviews newest-first, hydrated with their
	// authors. An empty book id yields an empty result.
	ListReviews(ctx context.Context, bookID string) ([]Review, error)
}
