package batch

import (
	"context"
)

type BatchRepository interface {
	Create(ctx context.Context, b Batch) (Batch, error)
	GetByID(ctx context.Context, id string) (Batch, error)
	List(ctx context.Context) ([]Batch, error)
	Update(ctx context.Context, b Batch) error
	Delete(ctx context.Context, id string) error
}
