package store

import (
	"errors"
	"time"
)

// Logger receives operational messages from the store: re-seeds, invalid
// persisted state, persistence failures. The zero configuration discards
// everything, so embedding applications opt in with whatever logging backend
// they already run.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

var (
	ErrEmptyStorageKey   = errors.New("storage key must not be empty")
	ErrInvalidMinBooks   = errors.New("minimum book count must not be negative")
	ErrInvalidLoanPeriod = errors.New("loan period must be positive")
	ErrNilClock          = errors.New("clock function must not be nil")
)

// Option configures a Store.
type Option func(*Store) error

// WithStorageKey overrides the key the document is persisted under.
func WithStorageKey(key string) Option {
	return func(st *Store) error {
		if key == "" {
			return ErrEmptyStorageKey
		}
		st.key = key
		return nil
	}
}

// WithMinBooks overrides the re-seed threshold on the book collection.
func WithMinBooks(n int) Option {
	return func(st *Store) error {
		if n < 0 {
			return ErrInvalidMinBooks
		}
		st.minBooks = n
		return nil
	}
}

// WithLoanPeriod overrides the fixed loan period used for due dates.
func WithLoanPeriod(d time.Duration) Option {
	return func(st *Store) error {
		if d <= 0 {
			return ErrInvalidLoanPeriod
		}
		st.loanPeriod = d
		return nil
	}
}

// WithClock replaces the wall clock, pinning "now" for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(st *Store) error {
		if now == nil {
			return ErrNilClock
		}
		st.now = now
		return nil
	}
}

// WithLogger sets the logger for the store.
func WithLogger(logger Logger) Option {
	return func(st *Store) error {
		st.logger = logger
		return nil
	}
}
