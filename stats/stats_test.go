package stats_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librastore/stats"
	"librastore/storage"
	"librastore/store"
)

var statsNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func at(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 9, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

// statsFixture spreads borrow activity across the six-month window and
// places one record well outside it.
func statsFixture(now time.Time) store.State {
	return store.State{
		Users: []store.User{
			{ID: "u1", Email: "one@example.com", Name: "张读者", Role: store.RoleUser},
			{ID: "u2", Email: "two@example.com", Name: "李读者", Role: store.RoleUser},
		},
		Books: []store.Book{
			{ID: "b1", Title: "机器学习实战", Category: "计算机",
				Stock: 3, Available: 1, AvgRating: 4.0, ReviewCount: 2},
			{ID: "b2", Title: "算法导论", Category: "计算机",
				Stock: 2, Available: 2, AvgRating: 5.0, ReviewCount: 0},
			{ID: "b3", Title: "无类之书", Category: "  ",
				Stock: 1, Available: 0, AvgRating: 3.0, ReviewCount: 1},
		},
		BorrowRecords: []store.BorrowRecord{
			{ID: "r1", UserID: "u1", BookID: "b1", Status: store.StatusReturned,
				BorrowDate: at(2024, time.May, 2), DueDate: at(2024, time.June, 1),
				ReturnDate: ptr(at(2024, time.May, 5)), CreatedAt: at(2024, time.May, 2)},
			{ID: "r2", UserID: "u2", BookID: "b1", Status: store.StatusBorrowed,
				BorrowDate: at(2024, time.March, 15), DueDate: at(2024, time.April, 14),
				CreatedAt: at(2024, time.March, 15)},
			{ID: "r3", UserID: "u1", BookID: "b3", Status: store.StatusReturned,
				BorrowDate: at(2023, time.December, 20), DueDate: at(2024, time.January, 19),
				ReturnDate: ptr(at(2024, time.January, 3)), CreatedAt: at(2023, time.December, 20)},
			{ID: "r4", UserID: "ghost", BookID: "ghost-book", Status: store.StatusReturned,
				BorrowDate: at(2023, time.June, 1), DueDate: at(2023, time.July, 1),
				ReturnDate: ptr(at(2023, time.July, 1)), CreatedAt: at(2023, time.June, 1)},
		},
	}
}

func newStatsService(t *testing.T, seed store.SeedFunc) stats.Service {
	t.Helper()
	st, err := store.New(storage.NewMemoryBackend(), seed,
		store.WithMinBooks(0),
		store.WithClock(func() time.Time { return statsNow }),
	)
	require.NoError(t, err)
	return stats.NewService(st)
}

func TestLibraryStats(t *testing.T) {
	svc := newStatsService(t, statsFixture)

	got, err := svc.LibraryStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, got.TotalTitles)
	assert.Equal(t, 6, got.TotalCopies)
	assert.Equal(t, 2, got.RegisteredUsers)
	assert.Equal(t, 3, got.ActiveBorrowRecords)
	// Weighted by review count: (4.0*2 + 3.0*1) / 3.
	assert.Equal(t, 3.67, got.AverageRating)
}

func TestLibraryStatsUnweightedFallback(t *testing.T) {
	svc := newStatsService(t, func(now time.Time) store.State {
		return store.State{
			Books: []store.Book{
				{ID: "b1", Stock: 1, Available: 1, AvgRating: 4.0},
				{ID: "b2", Stock: 1, Available: 1, AvgRating: 3.0},
			},
		}
	})

	got, err := svc.LibraryStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3.5, got.AverageRating)
}

func TestBorrowTrendBucketsSixMonths(t *testing.T) {
	svc := newStatsService(t, statsFixture)

	data, err := svc.DashboardData(context.Background())
	require.NoError(t, err)
	require.Len(t, data.BorrowTrend, 6)

	labels := make([]string, len(data.BorrowTrend))
	for i, p := range data.BorrowTrend {
		labels[i] = p.Label
	}
	assert.Equal(t, []string{"12月", "1月", "2月", "3月", "4月", "5月"}, labels)

	assert.Equal(t, stats.TrendPoint{Label: "12月", Borrowed: 1}, data.BorrowTrend[0])
	assert.Equal(t, stats.TrendPoint{Label: "1月", Returned: 1}, data.BorrowTrend[1])
	assert.Equal(t, stats.TrendPoint{Label: "3月", Borrowed: 1}, data.BorrowTrend[3])
	assert.Equal(t, stats.TrendPoint{Label: "5月", Borrowed: 1, Returned: 1}, data.BorrowTrend[5])
}

func TestRecentActivitiesNewestFirstCapped(t *testing.T) {
	svc := newStatsService(t, statsFixture)

	data, err := svc.DashboardData(context.Background())
	require.NoError(t, err)
	require.Len(t, data.RecentActivities, 6)

	ids := make([]string, len(data.RecentActivities))
	for i, a := range data.RecentActivities {
		ids[i] = a.ID
	}
	// r4-borrow is the seventh-newest event and falls off the feed.
	assert.Equal(t, []string{"r1-return", "r1-borrow", "r2-borrow", "r3-return", "r3-borrow", "r4-return"}, ids)

	assert.Equal(t, stats.ActionReturn, data.RecentActivities[0].Action)
	assert.Equal(t, "张读者", data.RecentActivities[0].UserName)
	assert.Equal(t, "机器学习实战", data.RecentActivities[0].BookTitle)

	// Dangling references fall back to placeholders.
	last := data.RecentActivities[5]
	assert.Equal(t, "未知用户", last.UserName)
	assert.Equal(t, "未知图书", last.BookTitle)
}

func TestCategoryDistribution(t *testing.T) {
	svc := newStatsService(t, statsFixture)

	data, err := svc.DashboardData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []stats.CategoryCount{
		{Name: "计算机", Value: 2},
		{Name: "未分类", Value: 1},
	}, data.CategoryDistribution)
}
