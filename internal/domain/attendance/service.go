package attendance

import (
	"context"
)

// AttendanceService is the attendance domain core: geofenced check-in,
// upsert-by-date marking, duplicate-aggregate reconciliation and statistics.
type AttendanceService interface {
	// GetUserAttendance returns the single aggregate for (userID, batchID).
	// Reads can repair the store: duplicate aggregates for the same user are
	// reconciled (most complete wins) and the losers deleted.
	GetUserAttendance(ctx context.Context, userID string, batchID string) (UserAttendance, error)

	// MarkUserAttendance merges the request records into the user's aggregate,
	// creating it on first mark. Date collisions are won by the new records.
	MarkUserAttendance(ctx context.Context, req MarkAttendanceRequest) (UserAttendance, error)

	// MarkBatchAttendance fans out one independent mark per student.
	MarkBatchAttendance(ctx context.Context, req MarkBatchAttendanceRequest) (BatchMarkResult, error)

	// CheckIn marks the caller Present for today after geofence and
	// time-window checks against the batch.
	CheckIn(ctx context.Context, req CheckInRequest) (UserAttendance, error)

	// CheckOut stamps the out time on today's Present record.
	CheckOut(ctx context.Context) (UserAttendance, error)

	// GetBatchAttendance returns every aggregate of a batch.
	GetBatchAttendance(ctx context.Context, batchID string) ([]UserAttendance, error)

	// GetStudentsAttendance returns the aggregates of a set of users.
	GetStudentsAttendance(ctx context.Context, userIDs []string) ([]UserAttendance, error)

	// GetUserStats rolls the user's records up into a StatsSummary.
	GetUserStats(ctx context.Context, userID string, batchID string) (StatsSummary, error)
}
