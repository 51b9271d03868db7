package review

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"librastore/store"
)

// service implements the Service interface.
type service struct {
	store *store.Store
}

// NewService creates a new review service instance.
func NewService(st *store.Store) Service {
	return &service{store: st}
}

// AddReview validates the references and the rating range, prepends the
// review, and recomputes the book's aggregates by a full rescan of its
// reviews.
func (s *service) AddReview(ctx context.Context, bookID, userID string, rating int, comment string) (store.Review, error) {
	if rating < 1 || rating > 5 {
		return store.Review{}, fmt.Errorf("rating %d: %w", rating, store.ErrInvalidRating)
	}

	var created store.Review
	err := s.store.Update(ctx, func(state *store.State) error {
		book := state.FindBook(bookID)
		if book == nil {
			return fmt.Errorf("book %s: %w", bookID, store.ErrNotFound)
		}
		if state.FindUser(userID) == nil {
			return fmt.Errorf("user %s: %w", userID, store.ErrNotFound)
		}

		created = store.Review{
			ID:        uuid.NewString(),
			UserID:    userID,
			BookID:    bookID,
			Rating:    rating,
			Comment:   comment,
			CreatedAt: s.store.Now(),
		}
		state.Reviews = append([]store.Review{created}, state.Reviews...)

		related := state.ReviewsForBook(bookID)
		var sum int
		for _, r := range related {
			sum += r.Rating
		}
		book.AvgRating = store.Round2(float64(sum) / float64(len(related)))
		book.ReviewCount = len(related)
		return nil
	})
	if err != nil {
		return store.Review{}, err
	}
	return created, nil
}

// ListReviews is a pure read.
func (s *service) ListReviews(ctx context.Context, bookID string) ([]Review, error) {
	if bookID == "" {
		return []Review{}, nil
	}

	state, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	reviews := make([]Review, 0)
	for _, r := range state.ReviewsForBook(bookID) {
		hydrated := Review{Review: r}
		if user := state.FindUser(r.UserID); user != nil {
			u := user.Sanitized()
			hydrated.User = &u
		}
		reviews = append(reviews, hydrated)
	}

	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}
