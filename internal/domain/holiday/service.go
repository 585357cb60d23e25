package holiday

import (
	"context"
)

type HolidayService interface {
	Create(ctx context.Context, req CreateHolidayRequest) (Holiday, error)
	ListByBatch(ctx context.Context, batchID string) ([]Holiday, error)
	Delete(ctx context.Context, id string) error
}
