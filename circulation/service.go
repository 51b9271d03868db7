package circulation

import "context"

// Service defines the interface for the circulation service.
type Service interface {
	Borrow(ctx context.Context, bookID, userID string) (Record, error)
	Renew(ctx context.Context, recordID string) (Record, error)
	Return(ctx context.Context, recordID, bookID string) (Record, error)

	// ListRecords returns hydrated borrow records newest-first, all of them
	// when userID is empty. Reading sweeps overdue transitions into the
	// store first.
	ListRecords(ctx context.Context, userID string) ([]Record, error)
}
