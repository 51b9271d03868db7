// Package circulation drives the borrowing lifecycle: borrow, renew, and
// return, with availability accounting and lazy overdue detection. A
// record's availability mutation and status mutation always land in the same
// persist, never as two separate writes.
package circulation

import (
	"time"

	"librastore/store"
)

// Record is a borrow record hydrated with copies of the referenced book and
// the (sanitized) user, the shape the presentation layer renders.
type Record struct {
	store.BorrowRecord
	Book *store.Book `json:"book,omitempty"`
	User *store.User `json:"user,omitempty"`
}

// DeriveStatus is the ground truth for time-based state: a still-borrowed
// record whose due date has passed is overdue. The persisted status is only
// an optimization over this function.
func DeriveStatus(rec store.BorrowRecord, now time.Time) store.BorrowStatus {
	if rec.Status == store.StatusBorrowed && rec.ReturnDate == nil && rec.DueDate.Before(now) {
		return store.StatusOverdue
	}
	return rec.Status
}
