package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librastore/catalog"
	"librastore/seed"
	"librastore/storage"
	"librastore/store"
)

func newSeededStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(storage.NewMemoryBackend(), seed.Generator(0),
		store.WithClock(func() time.Time { return queryNow }),
	)
	require.NoError(t, err)
	return st
}

func TestGetBook(t *testing.T) {
	svc := catalog.NewService(newSeededStore(t))
	ctx := context.Background()

	book, err := svc.GetBook(ctx, "book-ai")
	require.NoError(t, err)
	assert.Equal(t, "人工智能导论", book.Title)

	_, err = svc.GetBook(ctx, "no-such-book")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateBookClampsAvailability(t *testing.T) {
	st := newSeededStore(t)
	svc := catalog.NewService(st)
	ctx := context.Background()

	created, err := svc.CreateBook(ctx, catalog.Payload{
		Title: "新书", Author: "测试作者", ISBN: "9780000099999",
		Category: "计算机", Stock: 3, Available: 7,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 3, created.Available)
	assert.Zero(t, created.AvgRating)
	assert.Zero(t, created.ReviewCount)
	assert.Equal(t, queryNow, created.CreatedAt)

	stored, err := svc.GetBook(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, stored)
}

func TestUpdateBook(t *testing.T) {
	svc := catalog.NewService(newSeededStore(t))
	ctx := context.Background()

	updated, err := svc.UpdateBook(ctx, "book-ai", catalog.Payload{
		Title: "人工智能导论（第二版）", Author: "李明", ISBN: "9787302486325",
		Category: "计算机", Stock: 10, Available: -2,
	})
	require.NoError(t, err)
	assert.Equal(t, "人工智能导论（第二版）", updated.Title)
	assert.Equal(t, 0, updated.Available)
	assert.Equal(t, queryNow, updated.UpdatedAt)

	_, err = svc.UpdateBook(ctx, "no-such-book", catalog.Payload{})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteBookCascades(t *testing.T) {
	st := newSeededStore(t)
	svc := catalog.NewService(st)
	ctx := context.Background()

	// book-ai is referenced by seed reviews and an active borrow record.
	require.NoError(t, svc.DeleteBook(ctx, "book-ai"))

	_, err := svc.GetBook(ctx, "book-ai")
	assert.ErrorIs(t, err, store.ErrNotFound)

	state, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.ReviewsForBook("book-ai"))
	for _, rec := range state.BorrowRecords {
		assert.NotEqual(t, "book-ai", rec.BookID)
	}

	assert.ErrorIs(t, svc.DeleteBook(ctx, "book-ai"), store.ErrNotFound)
}
