package stats

import "context"

// Service defines the interface for the statistics service.
type Service interface {
	LibraryStats(ctx context.Context) (LibraryStats, error)
	DashboardData(ctx context.Context) (DashboardData, error)
}
