package circulation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"librastore/store"
)

const maxRenewals = 2

// service implements the Service interface.
type service struct {
	store *store.Store
}

// NewService creates a new circulation service instance.
func NewService(st *store.Store) Service {
	return &service{store: st}
}

// Borrow lends one copy of the book to the user: availability drops by one
// and a fresh record with the full loan period appears at the head of the
// collection.
func (s *service) Borrow(ctx context.Context, bookID, userID string) (Record, error) {
	var created store.BorrowRecord
	err := s.store.Update(ctx, func(state *store.State) error {
		book := state.FindBook(bookID)
		if book == nil {
			return fmt.Errorf("book %s: %w", bookID, store.ErrNotFound)
		}
		if state.FindUser(userID) == nil {
			return fmt.Errorf("user %s: %w", userID, store.ErrNotFound)
		}
		if book.Available <= 0 {
			return fmt.Errorf("book %s: %w", bookID, store.ErrOutOfStock)
		}

		now := s.store.Now()
		created = store.BorrowRecord{
			ID:         uuid.NewString(),
			UserID:     userID,
			BookID:     bookID,
			BorrowDate: now,
			DueDate:    now.Add(s.store.LoanPeriod()),
			Status:     store.StatusBorrowed,
			CreatedAt:  now,
		}

		book.Available = store.ClampAvailable(book.Available-1, book.Stock)
		state.BorrowRecords = append([]store.BorrowRecord{created}, state.BorrowRecords...)
		return nil
	})
	if err != nil {
		return Record{}, err
	}
	return Record{BorrowRecord: created}, nil
}

// Renew extends the loan by a full period, clearing an overdue status. At
// most two renewals are allowed per record.
func (s *service) Renew(ctx context.Context, recordID string) (Record, error) {
	var renewed store.BorrowRecord
	err := s.store.Update(ctx, func(state *store.State) error {
		rec := state.FindBorrowRecord(recordID)
		if rec == nil {
			return fmt.Errorf("borrow record %s: %w", recordID, store.ErrNotFound)
		}
		if rec.RenewCount >= maxRenewals {
			return fmt.Errorf("borrow record %s: %w", recordID, store.ErrRenewLimitExceeded)
		}
		if rec.Status != store.StatusBorrowed && rec.Status != store.StatusOverdue {
			return fmt.Errorf("renew %s record: %w", rec.Status, store.ErrInvalidState)
		}

		rec.DueDate = s.store.Now().Add(s.store.LoanPeriod())
		rec.RenewCount++
		rec.Status = store.StatusBorrowed
		renewed = *rec
		return nil
	})
	if err != nil {
		return Record{}, err
	}
	return Record{BorrowRecord: renewed}, nil
}

// Return closes the loan and hands the copy back: the record becomes
// terminal and the book's availability rises by one, capped at stock.
func (s *service) Return(ctx context.Context, recordID, bookID string) (Record, error) {
	var returned store.BorrowRecord
	err := s.store.Update(ctx, func(state *store.State) error {
		rec := state.FindBorrowRecord(recordID)
		if rec == nil {
			return fmt.Errorf("borrow record %s: %w", recordID, store.ErrNotFound)
		}
		if rec.Status == store.StatusReturned {
			return fmt.Errorf("record already returned: %w", store.ErrInvalidState)
		}
		book := state.FindBook(bookID)
		if book == nil {
			return fmt.Errorf("book %s: %w", bookID, store.ErrNotFound)
		}

		now := s.store.Now()
		rec.ReturnDate = &now
		rec.Status = store.StatusReturned
		book.Available = store.ClampAvailable(book.Available+1, book.Stock)
		returned = *rec
		return nil
	})
	if err != nil {
		return Record{}, err
	}
	return Record{BorrowRecord: returned}, nil
}

// ListRecords returns hydrated records newest-first. Any record whose due
// date has passed is transitioned to overdue and persisted before the read
// returns; when nothing is due the read stays pure.
func (s *service) ListRecords(ctx context.Context, userID string) ([]Record, error) {
	state, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.store.Now()
	if sweepNeeded(state, now) {
		if err := s.store.Update(ctx, func(st *store.State) error {
			applySweep(st, now)
			return nil
		}); err != nil {
			return nil, err
		}
		state, err = s.store.Load(ctx)
		if err != nil {
			return nil, err
		}
	}

	records := make([]Record, 0, len(state.BorrowRecords))
	for _, rec := range state.BorrowRecords {
		if userID != "" && rec.UserID != userID {
			continue
		}
		hydrated := Record{BorrowRecord: rec}
		if book := state.FindBook(rec.BookID); book != nil {
			b := *book
			hydrated.Book = &b
		}
		if user := state.FindUser(rec.UserID); user != nil {
			u := user.Sanitized()
			hydrated.User = &u
		}
		records = append(records, hydrated)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func sweepNeeded(state store.State, now time.Time) bool {
	for _, rec := range state.BorrowRecords {
		if DeriveStatus(rec, now) != rec.Status {
			return true
		}
	}
	return false
}

func applySweep(state *store.State, now time.Time) {
	for i := range state.BorrowRecords {
		state.BorrowRecords[i].Status = DeriveStatus(state.BorrowRecords[i], now)
	}
}
