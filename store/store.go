package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"librastore/storage"
)

const (
	// DefaultStorageKey is the fixed key the serialized document is stored
	// under.
	DefaultStorageKey = "library-local-db"

	// DefaultMinBooks is the minimum book count below which the persisted
	// state is treated as corrupt and replaced with a fresh seed.
	DefaultMinBooks = 50

	// DefaultLoanPeriod is the fixed loan period applied on borrow and renew.
	DefaultLoanPeriod = 30 * 24 * time.Hour
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// SeedFunc produces a fresh, referentially consistent dataset relative to
// now. The store calls it when nothing usable is persisted and on Reset.
type SeedFunc func(now time.Time) State

// Store mediates every read and write of the library state. Each operation
// is a read-modify-write sequence against an in-process cached snapshot plus
// the durable backend; the mutex serializes those sequences so no two
// mutations interleave mid-operation.
type Store struct {
	mu         sync.Mutex
	backend    storage.Backend
	seed       SeedFunc
	key        string
	minBooks   int
	loanPeriod time.Duration
	now        func() time.Time
	logger     Logger
	tracer     trace.Tracer
	cached     *State
}

// New creates a store over the given backend and seed function.
func New(backend storage.Backend, seed SeedFunc, opts ...Option) (*Store, error) {
	st := &Store{
		backend:    backend,
		seed:       seed,
		key:        DefaultStorageKey,
		minBooks:   DefaultMinBooks,
		loanPeriod: DefaultLoanPeriod,
		now:        time.Now,
		logger:     nopLogger{},
		tracer:     otel.Tracer("librastore/store"),
	}
	for _, opt := range opts {
		if err := opt(st); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// Now returns the store's current time. Tests pin it via WithClock.
func (st *Store) Now() time.Time {
	return st.now()
}

// LoanPeriod returns the configured loan period.
func (st *Store) LoanPeriod() time.Duration {
	return st.loanPeriod
}

// Load returns an independent snapshot of the current state. When nothing is
// persisted, the persisted bytes do not decode, or the book collection has
// fewer than the minimum number of entries, the state is replaced with a
// fresh seed and persisted before being returned.
func (st *Store) Load(ctx context.Context) (State, error) {
	ctx, span := st.tracer.Start(ctx, "store.load")
	defer span.End()

	st.mu.Lock()
	defer st.mu.Unlock()

	state, err := st.loadLocked(ctx)
	if err != nil {
		return State{}, err
	}
	span.SetAttributes(attribute.Int("books.count", len(state.Books)))
	return state.Clone(), nil
}

// Save replaces the persisted state wholesale and updates the cached copy.
func (st *Store) Save(ctx context.Context, state State) error {
	ctx, span := st.tracer.Start(ctx, "store.save")
	defer span.End()

	st.mu.Lock()
	defer st.mu.Unlock()

	next := state.Clone()
	st.cached = &next
	return st.persistLocked(ctx)
}

// Update runs fn against a working copy of the state and persists the result
// in a single write. When fn fails, nothing is persisted and the cached
// state is untouched, so validation errors never leave a partial mutation
// behind.
func (st *Store) Update(ctx context.Context, fn func(*State) error) error {
	ctx, span := st.tracer.Start(ctx, "store.update")
	defer span.End()

	st.mu.Lock()
	defer st.mu.Unlock()

	current, err := st.loadLocked(ctx)
	if err != nil {
		return err
	}
	working := current.Clone()
	if err := fn(&working); err != nil {
		return err
	}
	st.cached = &working
	return st.persistLocked(ctx)
}

// Reset discards all state and re-creates the seed dataset.
func (st *Store) Reset(ctx context.Context) (State, error) {
	ctx, span := st.tracer.Start(ctx, "store.reset")
	defer span.End()

	st.mu.Lock()
	defer st.mu.Unlock()

	if err := st.reseedLocked(ctx); err != nil {
		return State{}, err
	}
	return st.cached.Clone(), nil
}

// loadLocked populates the cache from the backend, falling back to the seed
// when the persisted document is missing, invalid, or under-populated.
// Callers must hold st.mu.
func (st *Store) loadLocked(ctx context.Context) (*State, error) {
	if st.cached != nil {
		return st.cached, nil
	}

	data, ok, err := st.backend.Get(st.key)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	if ok && jsonCodec.Valid(data) {
		var state State
		if err := jsonCodec.Unmarshal(data, &state); err == nil && len(state.Books) >= st.minBooks {
			st.cached = &state
			return st.cached, nil
		}
		st.logger.Warn("persisted state invalid or under-populated, reseeding", "key", st.key)
	}

	if err := st.reseedLocked(ctx); err != nil {
		return nil, err
	}
	return st.cached, nil
}

// reseedLocked replaces the cache with a fresh seed and persists it. Callers
// must hold st.mu.
func (st *Store) reseedLocked(ctx context.Context) error {
	state := st.seed(st.now())
	st.cached = &state
	st.logger.Info("seeded library state",
		"books", len(state.Books),
		"users", len(state.Users),
		"reviews", len(state.Reviews),
	)
	return st.persistLocked(ctx)
}

// persistLocked serializes the cache into the backend. Callers must hold
// st.mu.
func (st *Store) persistLocked(ctx context.Context) error {
	_, span := st.tracer.Start(ctx, "store.persist",
		trace.WithAttributes(attribute.String("storage.key", st.key)))
	defer span.End()

	data, err := jsonCodec.Marshal(st.cached)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := st.backend.Put(st.key, data); err != nil {
		st.logger.Error("persist failed", "key", st.key, "error", err)
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}
