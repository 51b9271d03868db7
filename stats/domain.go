// Package stats computes library-wide metrics and the admin dashboard data
// by scanning the record store.
package stats

import "time"

// LibraryStats are the headline numbers shown across the site.
type LibraryStats struct {
	TotalTitles         int     `json:"totalTitles"`
	TotalCopies         int     `json:"totalCopies"`
	RegisteredUsers     int     `json:"registeredUsers"`
	ActiveBorrowRecords int     `json:"activeBorrowRecords"`
	AverageRating       float64 `json:"averageRating"`
}

// TrendPoint is one calendar month of borrow/return activity.
type TrendPoint struct {
	Label    string `json:"label"`
	Borrowed int    `json:"borrowed"`
	Returned int    `json:"returned"`
}

// ActivityAction distinguishes dashboard activity entries.
type ActivityAction string

const (
	ActionBorrow ActivityAction = "borrow"
	ActionReturn ActivityAction = "return"
)

// Activity is one dashboard feed entry: a borrow or a return.
type Activity struct {
	ID        string         `json:"id"`
	Action    ActivityAction `json:"action"`
	UserName  string         `json:"userName"`
	BookTitle string         `json:"bookTitle"`
	Timestamp time.Time      `json:"timestamp"`
}

// CategoryCount is the number of titles in one category.
type CategoryCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DashboardData is everything the admin dashboard renders.
type DashboardData struct {
	BorrowTrend          []TrendPoint    `json:"borrowTrend"`
	RecentActivities     []Activity      `json:"recentActivities"`
	CategoryDistribution []CategoryCount `json:"categoryDistribution"`
}
