package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/classtrack/institute-backend-go/internal/domain/attendance"
	"github.com/classtrack/institute-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type userAttendanceRepository struct {
	db *database.DB
}

// encodeRecords serializes each record individually into a text[] element.
// The reference store keeps records as opaque JSON strings inside an array
// field; this boundary is preserved for wire compatibility.
func encodeRecords(records []attendance.Record) ([]string, error) {
	encoded := make([]string, 0, len(records))
	for _, rec := range records {
		raw, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("failed to encode attendance record: %w", err)
		}
		encoded = append(encoded, string(raw))
	}
	return encoded, nil
}

func decodeRecords(encoded []string) ([]attendance.Record, error) {
	records := make([]attendance.Record, 0, len(encoded))
	for _, raw := range encoded {
		var rec attendance.Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode attendance record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func scanAggregates(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.UserAttendance, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query user attendances: %w", err)
	}
	defer rows.Close()

	var aggregates []attendance.UserAttendance
	for rows.Next() {
		var ua attendance.UserAttendance
		var encoded []string
		err := rows.Scan(
			&ua.ID, &ua.UserID, &ua.UserName, &ua.BatchID,
			&encoded, &ua.CreatedAt, &ua.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user attendance: %w", err)
		}
		ua.Records, err = decodeRecords(encoded)
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, ua)
	}

	return aggregates, nil
}

const aggregateColumns = `id, user_id, user_name, batch_id, attendance_records, created_at, updated_at`

// ListByUser implements attendance.UserAttendanceRepository.
func (r *userAttendanceRepository) ListByUser(ctx context.Context, userID string, batchID string) ([]attendance.UserAttendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + aggregateColumns + `
		FROM user_attendances
		WHERE user_id = $1
		ORDER BY created_at ASC
	`
	args := []interface{}{userID}

	if batchID != "" {
		query = `
			SELECT ` + aggregateColumns + `
			FROM user_attendances
			WHERE user_id = $1 AND batch_id = $2
			ORDER BY created_at ASC
		`
		args = append(args, batchID)
	}

	return scanAggregates(ctx, q, query, args...)
}

// ListByBatch implements attendance.UserAttendanceRepository.
func (r *userAttendanceRepository) ListByBatch(ctx context.Context, batchID string) ([]attendance.UserAttendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + aggregateColumns + `
		FROM user_attendances
		WHERE batch_id = $1
		ORDER BY user_name ASC
	`

	return scanAggregates(ctx, q, query, batchID)
}

// ListByUsers implements attendance.UserAttendanceRepository.
func (r *userAttendanceRepository) ListByUsers(ctx context.Context, userIDs []string) ([]attendance.UserAttendance, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + aggregateColumns + `
		FROM user_attendances
		WHERE user_id = ANY($1)
		ORDER BY user_name ASC
	`

	return scanAggregates(ctx, q, query, userIDs)
}

// Create implements attendance.UserAttendanceRepository.
func (r *userAttendanceRepository) Create(ctx context.Context, aggregate attendance.UserAttendance) (attendance.UserAttendance, error) {
	q := GetQuerier(ctx, r.db)

	encoded, err := encodeRecords(aggregate.Records)
	if err != nil {
		return attendance.UserAttendance{}, err
	}

	if aggregate.ID == "" {
		aggregate.ID = uuid.NewString()
	}

	query := `
		INSERT INTO user_attendances (id, user_id, user_name, batch_id, attendance_records)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		aggregate.ID,
		aggregate.UserID,
		aggregate.UserName,
		aggregate.BatchID,
		encoded,
	).Scan(&aggregate.CreatedAt, &aggregate.UpdatedAt)

	if err != nil {
		return attendance.UserAttendance{}, fmt.Errorf("failed to create user attendance: %w", err)
	}

	return aggregate, nil
}

// UpdateRecords implements attendance.UserAttendanceRepository.
func (r *userAttendanceRepository) UpdateRecords(ctx context.Context, id string, records []attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	encoded, err := encodeRecords(records)
	if err != nil {
		return err
	}

	query := `
		UPDATE user_attendances
		SET attendance_records = $1, updated_at = $2
		WHERE id = $3
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, encoded, time.Now(), id).Scan(&updatedID); err != nil {
		return fmt.Errorf("failed to update user attendance records: %w", err)
	}

	return nil
}

// Delete implements attendance.UserAttendanceRepository.
func (r *userAttendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM user_attendances WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user attendance: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

func NewUserAttendanceRepository(db *database.DB) attendance.UserAttendanceRepository {
	return &userAttendanceRepository{db: db}
}
