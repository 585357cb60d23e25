package attendance

import (
	"context"
)

// UserAttendanceRepository defines data access for attendance aggregates.
// ListByUser can return more than one aggregate for the same user: the store
// has no unique constraint on (user_id, batch_id), and concurrent first marks
// can race. The service layer reconciles duplicates on read.
type UserAttendanceRepository interface {
	// ListByUser retrieves all aggregates for a user, optionally narrowed to
	// one batch (batchID == "" matches any batch).
	ListByUser(ctx context.Context, userID string, batchID string) ([]UserAttendance, error)

	// ListByBatch retrieves all aggregates of a batch.
	ListByBatch(ctx context.Context, batchID string) ([]UserAttendance, error)

	// ListByUsers retrieves the aggregates of a set of users.
	ListByUsers(ctx context.Context, userIDs []string) ([]UserAttendance, error)

	// Create inserts a brand-new aggregate document.
	Create(ctx context.Context, aggregate UserAttendance) (UserAttendance, error)

	// UpdateRecords replaces the full record set of an existing aggregate in a
	// single write.
	UpdateRecords(ctx context.Context, id string, records []Record) error

	// Delete removes an aggregate document (used by duplicate reconciliation).
	Delete(ctx context.Context, id string) error
}
