package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"librastore/store"
)

// service implements the Service interface.
type service struct {
	store *store.Store
}

// NewService creates a new catalog service instance.
func NewService(st *store.Store) Service {
	return &service{store: st}
}

// ListBooks answers a filtered, sorted, paginated query. It is a pure read:
// the total always reflects the filter, never the page.
func (s *service) ListBooks(ctx context.Context, filters Filters, page Page) (BookPage, error) {
	state, err := s.store.Load(ctx)
	if err != nil {
		return BookPage{}, err
	}

	results := filterBooks(state.Books, filters)
	sortBooks(results, filters.Sort, filters.Order)

	total := len(results)
	return BookPage{Books: paginate(results, page), Total: total}, nil
}

// GetBook retrieves a single book by id.
func (s *service) GetBook(ctx context.Context, id string) (store.Book, error) {
	state, err := s.store.Load(ctx)
	if err != nil {
		return store.Book{}, err
	}
	book := state.FindBook(id)
	if book == nil {
		return store.Book{}, fmt.Errorf("book %s: %w", id, store.ErrNotFound)
	}
	return *book, nil
}

// CreateBook adds a new book to the catalog with a fresh id and zeroed
// rating aggregates.
func (s *service) CreateBook(ctx context.Context, payload Payload) (store.Book, error) {
	var created store.Book
	err := s.store.Update(ctx, func(state *store.State) error {
		now := s.store.Now()
		created = store.Book{
			ID:        uuid.NewString(),
			CreatedAt: now,
			UpdatedAt: now,
		}
		applyPayload(&created, payload)
		state.Books = append(state.Books, created)
		return nil
	})
	if err != nil {
		return store.Book{}, err
	}
	return created, nil
}

// UpdateBook merges the payload into an existing book.
func (s *service) UpdateBook(ctx context.Context, id string, payload Payload) (store.Book, error) {
	var updated store.Book
	err := s.store.Update(ctx, func(state *store.State) error {
		book := state.FindBook(id)
		if book == nil {
			return fmt.Errorf("book %s: %w", id, store.ErrNotFound)
		}
		applyPayload(book, payload)
		book.UpdatedAt = s.store.Now()
		updated = *book
		return nil
	})
	if err != nil {
		return store.Book{}, err
	}
	return updated, nil
}

// DeleteBook removes a book and cascades the deletion to every review and
// borrow record referencing it.
func (s *service) DeleteBook(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(state *store.State) error {
		if state.FindBook(id) == nil {
			return fmt.Errorf("book %s: %w", id, store.ErrNotFound)
		}

		books := state.Books[:0]
		for _, b := range state.Books {
			if b.ID != id {
				books = append(books, b)
			}
		}
		state.Books = books

		reviews := state.Reviews[:0]
		for _, r := range state.Reviews {
			if r.BookID != id {
				reviews = append(reviews, r)
			}
		}
		state.Reviews = reviews

		records := state.BorrowRecords[:0]
		for _, rec := range state.BorrowRecords {
			if rec.BookID != id {
				records = append(records, rec)
			}
		}
		state.BorrowRecords = records

		return nil
	})
}

func applyPayload(book *store.Book, payload Payload) {
	book.Title = payload.Title
	book.Author = payload.Author
	book.ISBN = payload.ISBN
	book.Publisher = payload.Publisher
	book.PublishDate = payload.PublishDate
	book.Category = payload.Category
	book.Description = payload.Description
	book.Stock = payload.Stock
	book.Available = store.ClampAvailable(payload.Available, payload.Stock)
	book.CoverImage = payload.CoverImage
}
