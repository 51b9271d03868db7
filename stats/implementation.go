package stats

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"librastore/store"
)

const (
	trendMonths      = 6
	recentActivities = 6

	unknownUser     = "未知用户"
	unknownBook     = "未知图书"
	uncategorized   = "未分类"
)

// service implements the Service interface.
type service struct {
	store *store.Store
}

// NewService creates a new statistics service instance.
func NewService(st *store.Store) Service {
	return &service{store: st}
}

// LibraryStats scans the store once for the site-wide headline numbers.
// Active loans are derived from availability, and the average rating is
// weighted by each book's review count when any reviews exist.
func (s *service) LibraryStats(ctx context.Context) (LibraryStats, error) {
	state, err := s.store.Load(ctx)
	if err != nil {
		return LibraryStats{}, err
	}

	out := LibraryStats{
		TotalTitles:     len(state.Books),
		RegisteredUsers: len(state.Users),
	}

	var weightedScore float64
	var weightedCount int
	var ratingSum float64
	for _, book := range state.Books {
		out.TotalCopies += book.Stock
		if active := book.Stock - book.Available; active > 0 {
			out.ActiveBorrowRecords += active
		}
		if book.ReviewCount > 0 {
			weightedScore += book.AvgRating * float64(book.ReviewCount)
			weightedCount += book.ReviewCount
		}
		ratingSum += book.AvgRating
	}

	switch {
	case weightedCount > 0:
		out.AverageRating = store.Round2(weightedScore / float64(weightedCount))
	case len(state.Books) > 0:
		out.AverageRating = store.Round2(ratingSum / float64(len(state.Books)))
	}
	return out, nil
}

// DashboardData assembles the admin dashboard: a six-month borrow/return
// trend, the six most recent activities, and the category distribution.
func (s *service) DashboardData(ctx context.Context) (DashboardData, error) {
	state, err := s.store.Load(ctx)
	if err != nil {
		return DashboardData{}, err
	}
	now := s.store.Now()

	return DashboardData{
		BorrowTrend:          borrowTrend(state, now),
		RecentActivities:     recentFeed(state),
		CategoryDistribution: categoryDistribution(state),
	}, nil
}

type monthKey struct {
	year  int
	month time.Month
}

// borrowTrend buckets borrows and returns by calendar month over the last
// six months, oldest first, labeled by month number.
func borrowTrend(state store.State, now time.Time) []TrendPoint {
	points := make([]TrendPoint, trendMonths)
	index := make(map[monthKey]int, trendMonths)
	for i := 0; i < trendMonths; i++ {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
			AddDate(0, i-(trendMonths-1), 0)
		points[i] = TrendPoint{Label: fmt.Sprintf("%d月", int(month.Month()))}
		index[monthKey{month.Year(), month.Month()}] = i
	}

	for _, rec := range state.BorrowRecords {
		if i, ok := index[monthKey{rec.BorrowDate.Year(), rec.BorrowDate.Month()}]; ok {
			points[i].Borrowed++
		}
		if rec.ReturnDate != nil {
			if i, ok := index[monthKey{rec.ReturnDate.Year(), rec.ReturnDate.Month()}]; ok {
				points[i].Returned++
			}
		}
	}
	return points
}

// recentFeed emits one entry per borrow and one per completed return,
// newest first, capped at six.
func recentFeed(state store.State) []Activity {
	activities := make([]Activity, 0, len(state.BorrowRecords))
	for _, rec := range state.BorrowRecords {
		userName := unknownUser
		if user := state.FindUser(rec.UserID); user != nil {
			userName = user.Name
		}
		bookTitle := unknownBook
		if book := state.FindBook(rec.BookID); book != nil {
			bookTitle = book.Title
		}

		activities = append(activities, Activity{
			ID:        rec.ID + "-borrow",
			Action:    ActionBorrow,
			UserName:  userName,
			BookTitle: bookTitle,
			Timestamp: rec.BorrowDate,
		})
		if rec.ReturnDate != nil {
			activities = append(activities, Activity{
				ID:        rec.ID + "-return",
				Action:    ActionReturn,
				UserName:  userName,
				BookTitle: bookTitle,
				Timestamp: *rec.ReturnDate,
			})
		}
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	if len(activities) > recentActivities {
		activities = activities[:recentActivities]
	}
	return activities
}

// categoryDistribution counts titles per category, grouping unclassified
// books under a placeholder, most populous first.
func categoryDistribution(state store.State) []CategoryCount {
	counts := make(map[string]int)
	for _, book := range state.Books {
		name := strings.TrimSpace(book.Category)
		if name == "" {
			name = uncategorized
		}
		counts[name]++
	}

	distribution := make([]CategoryCount, 0, len(counts))
	for name, value := range counts {
		distribution = append(distribution, CategoryCount{Name: name, Value: value})
	}
	sort.Slice(distribution, func(i, j int) bool {
		if distribution[i].Value != distribution[j].Value {
			return distribution[i].Value > distribution[j].Value
		}
		return distribution[i].Name < distribution[j].Name
	})
	return distribution
}
