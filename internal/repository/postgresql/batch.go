package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/classtrack/institute-backend-go/internal/domain/batch"
	"github.com/classtrack/institute-backend-go/internal/pkg/database"
	"github.com/classtrack/institute-backend-go/internal/pkg/geo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type batchRepository struct {
	db *database.DB
}

// Create implements batch.BatchRepository.
func (r *batchRepository) Create(ctx context.Context, b batch.Batch) (batch.Batch, error) {
	q := GetQuerier(ctx, r.db)

	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	var lat, lon *float64
	if b.Location != nil {
		lat, lon = &b.Location.Latitude, &b.Location.Longitude
	}

	query := `
		INSERT INTO batches (
			id, name, latitude, longitude, circle_radius,
			attendance_start, attendance_end, can_mark_previous, start_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		b.ID, b.Name, lat, lon, b.CircleRadius,
		b.AttendanceStart, b.AttendanceEnd, b.CanMarkPrevious, b.StartDate,
	).Scan(&b.CreatedAt, &b.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "batches_name_key") {
			return batch.Batch{}, batch.ErrBatchNameExists
		}
		return batch.Batch{}, fmt.Errorf("failed to create batch: %w", err)
	}

	return b, nil
}

func scanBatch(row pgx.Row) (batch.Batch, error) {
	var b batch.Batch
	var lat, lon *float64
	err := row.Scan(
		&b.ID, &b.Name, &lat, &lon, &b.CircleRadius,
		&b.AttendanceStart, &b.AttendanceEnd, &b.CanMarkPrevious, &b.StartDate,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return batch.Batch{}, err
	}
	if lat != nil && lon != nil {
		b.Location = &geo.Point{Latitude: *lat, Longitude: *lon}
	}
	return b, nil
}

const batchColumns = `id, name, latitude, longitude, circle_radius,
	attendance_start, attendance_end, can_mark_previous, start_date,
	created_at, updated_at`

// GetByID implements batch.BatchRepository.
func (r *batchRepository) GetByID(ctx context.Context, id string) (batch.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`

	b, err := scanBatch(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return batch.Batch{}, batch.ErrBatchNotFound
		}
		return batch.Batch{}, fmt.Errorf("failed to get batch by ID: %w", err)
	}

	return b, nil
}

// List implements batch.BatchRepository.
func (r *batchRepository) List(ctx context.Context) ([]batch.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + batchColumns + ` FROM batches ORDER BY name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	var batches []batch.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		batches = append(batches, b)
	}

	return batches, nil
}

// Update implements batch.BatchRepository.
func (r *batchRepository) Update(ctx context.Context, b batch.Batch) error {
	q := GetQuerier(ctx, r.db)

	var lat, lon *float64
	if b.Location != nil {
		lat, lon = &b.Location.Latitude, &b.Location.Longitude
	}

	query := `
		UPDATE batches
		SET name = $1, latitude = $2, longitude = $3, circle_radius = $4,
			attendance_start = $5, attendance_end = $6, can_mark_previous = $7,
			start_date = $8, updated_at = $9
		WHERE id = $10
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		b.Name, lat, lon, b.CircleRadius,
		b.AttendanceStart, b.AttendanceEnd, b.CanMarkPrevious,
		b.StartDate, time.Now(), b.ID,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return batch.ErrBatchNotFound
		}
		return fmt.Errorf("failed to update batch: %w", err)
	}

	return nil
}

// Delete implements batch.BatchRepository.
func (r *batchRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM batches WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete batch: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return batch.ErrBatchNotFound
	}

	return nil
}

func NewBatchRepository(db *database.DB) batch.BatchRepository {
	return &batchRepository{db: db}
}
