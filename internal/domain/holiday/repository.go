package holiday

import (
	"context"
)

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)

	// GetByBatchAndDate returns ErrHolidayNotFound when the date is not a
	// holiday for the batch; the marking guard treats that as the normal case.
	GetByBatchAndDate(ctx context.Context, batchID string, date string) (Holiday, error)

	ListByBatch(ctx context.Context, batchID string) ([]Holiday, error)
	Delete(ctx context.Context, id string) error
}
