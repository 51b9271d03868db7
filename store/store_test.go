package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librastore/storage"
	"librastore/store"
)

var testNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

// testSeed builds a minimal dataset with a known number of books.
func testSeed(bookCount int) store.SeedFunc {
	return func(now time.Time) store.State {
		books := make([]store.Book, bookCount)
		for i := range books {
			books[i] = store.Book{
				ID:        fmt.Sprintf("book-%d", i),
				Title:     fmt.Sprintf("Title %d", i),
				Author:    "Author",
				Category:  "分类",
				Stock:     3,
				Available: 3,
				CreatedAt: now,
				UpdatedAt: now,
			}
		}
		returned := now.AddDate(0, 0, -1)
		return store.State{
			Users: []store.User{{ID: "u1", Email: "u1@example.com", Name: "Reader", Role: store.RoleUser}},
			Books: books,
			BorrowRecords: []store.BorrowRecord{{
				ID: "r1", UserID: "u1", BookID: "book-0",
				BorrowDate: now.AddDate(0, 0, -10), DueDate: now.AddDate(0, 0, 20),
				ReturnDate: &returned, Status: store.StatusReturned, CreatedAt: now.AddDate(0, 0, -10),
			}},
			Reviews: []store.Review{{ID: "rev1", UserID: "u1", BookID: "book-0", Rating: 4, CreatedAt: now}},
		}
	}
}

func newTestStore(t *testing.T, backend storage.Backend, bookCount int) *store.Store {
	t.Helper()
	st, err := store.New(backend, testSeed(bookCount),
		store.WithMinBooks(bookCount),
		store.WithClock(func() time.Time { return testNow }),
	)
	require.NoError(t, err)
	return st
}

func TestLoadSeedsEmptyBackend(t *testing.T) {
	backend := storage.NewMemoryBackend()
	st := newTestStore(t, backend, 3)

	state, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, state.Books, 3)

	// Seeding must have persisted the document too.
	data, ok, err := backend.Get(store.DefaultStorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEmpty(t, data)
}

func TestLoadReseedsCorruptDocument(t *testing.T) {
	backend := storage.NewMemoryBackend()
	require.NoError(t, backend.Put(store.DefaultStorageKey, []byte("{not json")))

	st := newTestStore(t, backend, 3)
	state, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, state.Books, 3)
}

func TestLoadReseedsUnderPopulatedDocument(t *testing.T) {
	backend := storage.NewMemoryBackend()
	require.NoError(t, backend.Put(store.DefaultStorageKey,
		[]byte(`{"users":[],"books":[{"id":"only-one"}],"borrowRecords":[],"reviews":[]}`)))

	st := newTestStore(t, backend, 5)
	state, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, state.Books, 5)
	assert.Nil(t, state.FindBook("only-one"))
}

func TestLoadKeepsValidPersistedDocument(t *testing.T) {
	backend := storage.NewMemoryBackend()

	first := newTestStore(t, backend, 3)
	require.NoError(t, first.Update(context.Background(), func(s *store.State) error {
		s.Books[0].Title = "Edited"
		return nil
	}))

	// A second store over the same backend reads the edit, not a new seed.
	second := newTestStore(t, backend, 3)
	state, err := second.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Edited", state.Books[0].Title)
}

func TestLoadReturnsDefensiveCopies(t *testing.T) {
	st := newTestStore(t, storage.NewMemoryBackend(), 3)
	ctx := context.Background()

	state, err := st.Load(ctx)
	require.NoError(t, err)
	state.Books[0].Title = "Mutated"
	*state.BorrowRecords[0].ReturnDate = state.BorrowRecords[0].ReturnDate.AddDate(10, 0, 0)

	fresh, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Title 0", fresh.Books[0].Title)
	assert.Equal(t, testNow.AddDate(0, 0, -1), *fresh.BorrowRecords[0].ReturnDate)
}

func TestUpdateDiscardsMutationOnError(t *testing.T) {
	st := newTestStore(t, storage.NewMemoryBackend(), 3)
	ctx := context.Background()

	boom := errors.New("validation failed")
	err := st.Update(ctx, func(s *store.State) error {
		s.Books[0].Available = -99
		s.Books = s.Books[:1]
		return boom
	})
	require.ErrorIs(t, err, boom)

	state, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, state.Books, 3)
	assert.Equal(t, 3, state.Books[0].Available)
}

func TestSaveReplacesStateWholesale(t *testing.T) {
	st := newTestStore(t, storage.NewMemoryBackend(), 3)
	ctx := context.Background()

	state, err := st.Load(ctx)
	require.NoError(t, err)
	state.Users = append(state.Users, store.User{ID: "u2", Email: "u2@example.com"})
	require.NoError(t, st.Save(ctx, state))

	fresh, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh.Users, 2)
}

func TestResetRestoresSeed(t *testing.T) {
	st := newTestStore(t, storage.NewMemoryBackend(), 3)
	ctx := context.Background()

	require.NoError(t, st.Update(ctx, func(s *store.State) error {
		s.Books = nil
		s.Reviews = nil
		return nil
	}))

	state, err := st.Reset(ctx)
	require.NoError(t, err)
	assert.Len(t, state.Books, 3)
	assert.Len(t, state.Reviews, 1)
}

func TestOptionValidation(t *testing.T) {
	backend := storage.NewMemoryBackend()

	_, err := store.New(backend, testSeed(1), store.WithStorageKey(""))
	assert.ErrorIs(t, err, store.ErrEmptyStorageKey)

	_, err = store.New(backend, testSeed(1), store.WithMinBooks(-1))
	assert.ErrorIs(t, err, store.ErrInvalidMinBooks)

	_, err = store.New(backend, testSeed(1), store.WithLoanPeriod(0))
	assert.ErrorIs(t, err, store.ErrInvalidLoanPeriod)

	_, err = store.New(backend, testSeed(1), store.WithClock(nil))
	assert.ErrorIs(t, err, store.ErrNilClock)
}

func TestClampAvailable(t *testing.T) {
	assert.Equal(t, 0, store.ClampAvailable(-1, 5))
	assert.Equal(t, 5, store.ClampAvailable(9, 5))
	assert.Equal(t, 3, store.ClampAvailable(3, 5))
	assert.Equal(t, 0, store.ClampAvailable(2, -1))
}
