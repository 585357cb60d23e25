package batch

import (
	"context"
)

type BatchService interface {
	Create(ctx context.Context, req CreateBatchRequest) (Batch, error)
	GetByID(ctx context.Context, id string) (Batch, error)
	List(ctx context.Context) ([]Batch, error)
	Update(ctx context.Context, req UpdateBatchRequest) (Batch, error)
	Delete(ctx context.Context, id string) error
}
