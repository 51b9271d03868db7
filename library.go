// Package librastore is an embedded library-catalog database: books, users,
// borrow records, and reviews persisted as a single JSON document in local
// key-value storage, with filtering, sorting, pagination, borrowing
// lifecycle rules, and rating aggregation on top. It is the backend a
// presentation layer talks to directly; there is no server in between.
package librastore

import (
	"time"

	"librastore/catalog"
	"librastore/circulation"
	"librastore/membership"
	"librastore/review"
	"librastore/seed"
	"librastore/stats"
	"librastore/storage"
	"librastore/store"
)

// Library bundles the record store and every service over it. One Library
// per storage location; all services share the same store instance so every
// operation observes the same state.
type Library struct {
	Store       *store.Store
	Catalog     catalog.Service
	Membership  membership.Service
	Circulation circulation.Service
	Reviews     review.Service
	Stats       stats.Service

	// FallbackErr is non-nil when the configured directory was unusable and
	// the library silently degraded to in-memory storage.
	FallbackErr error
}

// Open wires a Library from the configuration. An empty Dir selects
// in-memory storage outright; an unusable Dir degrades to in-memory storage
// with the cause recorded in FallbackErr.
func Open(cfg Config, opts ...store.Option) (*Library, error) {
	var backend storage.Backend
	var fallbackErr error
	if cfg.Dir == "" {
		backend = storage.NewMemoryBackend()
	} else {
		backend, fallbackErr = storage.Open(cfg.Dir)
	}

	storeOpts := make([]store.Option, 0, len(opts)+3)
	if cfg.StorageKey != "" {
		storeOpts = append(storeOpts, store.WithStorageKey(cfg.StorageKey))
	}
	if cfg.MinBooks > 0 {
		storeOpts = append(storeOpts, store.WithMinBooks(cfg.MinBooks))
	}
	if cfg.LoanDays > 0 {
		storeOpts = append(storeOpts, store.WithLoanPeriod(time.Duration(cfg.LoanDays)*24*time.Hour))
	}
	storeOpts = append(storeOpts, opts...)

	st, err := store.New(backend, seed.Generator(cfg.ExtraBooks), storeOpts...)
	if err != nil {
		return nil, err
	}

	return &Library{
		Store:       st,
		Catalog:     catalog.NewService(st),
		Membership:  membership.NewService(st),
		Circulation: circulation.NewService(st),
		Reviews:     review.NewService(st),
		Stats:       stats.NewService(st),
		FallbackErr: fallbackErr,
	}, nil
}
