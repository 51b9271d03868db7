package store

import "errors"

var (
	// ErrNotFound is returned when a referenced book, user, or borrow record
	// does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrOutOfStock is returned when a borrow is attempted with zero
	// available copies.
	ErrOutOfStock = errors.New("no copies available")

	// ErrRenewLimitExceeded is returned when a record has already been
	// renewed twice.
	ErrRenewLimitExceeded = errors.New("renew limit exceeded")

	// ErrInvalidState is returned when a renew or return is attempted on a
	// record whose status disallows it.
	ErrInvalidState = errors.New("operation not allowed in current state")

	// ErrDuplicateEmail is returned when registering with an email already
	// on file.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials is returned on login with an unknown email or a
	// mismatched password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidRating is returned when a review rating falls outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)
