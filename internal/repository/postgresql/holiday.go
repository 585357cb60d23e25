package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/classtrack/institute-backend-go/internal/domain/holiday"
	"github.com/classtrack/institute-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type holidayRepository struct {
	db *database.DB
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	if h.ID == "" {
		h.ID = uuid.NewString()
	}

	query := `
		INSERT INTO holidays (id, batch_id, date, holiday_text)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query, h.ID, h.BatchID, h.Date, h.HolidayText).Scan(&h.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "holidays_batch_id_date_key") {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return h, nil
}

// GetByBatchAndDate implements holiday.HolidayRepository.
func (r *holidayRepository) GetByBatchAndDate(ctx context.Context, batchID string, date string) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, batch_id, date, holiday_text, created_at
		FROM holidays
		WHERE batch_id = $1 AND date = $2
	`

	var h holiday.Holiday
	err := q.QueryRow(ctx, query, batchID, date).Scan(
		&h.ID, &h.BatchID, &h.Date, &h.HolidayText, &h.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.Holiday{}, holiday.ErrHolidayNotFound
		}
		return holiday.Holiday{}, fmt.Errorf("failed to get holiday by batch and date: %w", err)
	}

	return h, nil
}

// ListByBatch implements holiday.HolidayRepository.
func (r *holidayRepository) ListByBatch(ctx context.Context, batchID string) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, batch_id, date, holiday_text, created_at
		FROM holidays
		WHERE batch_id = $1
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.BatchID, &h.Date, &h.HolidayText, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}

	return holidays, nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM holidays WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}

	return nil
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}
