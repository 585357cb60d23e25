package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/classtrack/institute-backend-go/internal/domain/batch"
	"github.com/classtrack/institute-backend-go/internal/pkg/database"
	"github.com/classtrack/institute-backend-go/internal/repository/postgresql"
)

type BatchServiceImpl struct {
	db *database.DB
	batch.BatchRepository
}

func NewBatchService(db *database.DB, batchRepo batch.BatchRepository) batch.BatchService {
	return &BatchServiceImpl{
		db:              db,
		BatchRepository: batchRepo,
	}
}

// Create implements batch.BatchService.
func (s *BatchServiceImpl) Create(ctx context.Context, req batch.CreateBatchRequest) (batch.Batch, error) {
	if err := req.Validate(); err != nil {
		return batch.Batch{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)

	created, err := s.BatchRepository.Create(ctx, batch.Batch{
		Name:            req.Name,
		Location:        req.Location,
		CircleRadius:    req.CircleRadius,
		AttendanceStart: req.AttendanceStart,
		AttendanceEnd:   req.AttendanceEnd,
		CanMarkPrevious: req.CanMarkPrevious,
		StartDate:       startDate,
	})
	if err != nil {
		return batch.Batch{}, fmt.Errorf("failed to create batch: %w", err)
	}

	return created, nil
}

// GetByID implements batch.BatchService.
func (s *BatchServiceImpl) GetByID(ctx context.Context, id string) (batch.Batch, error) {
	b, err := s.BatchRepository.GetByID(ctx, id)
	if err != nil {
		return batch.Batch{}, err
	}
	return b, nil
}

// List implements batch.BatchService.
func (s *BatchServiceImpl) List(ctx context.Context) ([]batch.Batch, error) {
	batches, err := s.BatchRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	return batches, nil
}

// Update implements batch.BatchService.
func (s *BatchServiceImpl) Update(ctx context.Context, req batch.UpdateBatchRequest) (batch.Batch, error) {
	if err := req.Validate(); err != nil {
		return batch.Batch{}, err
	}

	var b batch.Batch
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		b, err = s.BatchRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			b.Name = *req.Name
		}
		if req.Location != nil {
			b.Location = req.Location
		}
		if req.CircleRadius != nil {
			b.CircleRadius = *req.CircleRadius
		}
		if req.AttendanceStart != nil {
			b.AttendanceStart = req.AttendanceStart
		}
		if req.AttendanceEnd != nil {
			b.AttendanceEnd = req.AttendanceEnd
		}
		if req.CanMarkPrevious != nil {
			b.CanMarkPrevious = *req.CanMarkPrevious
		}
		if req.StartDate != nil {
			startDate, _ := time.Parse("2006-01-02", *req.StartDate)
			b.StartDate = startDate
		}

		if err := s.BatchRepository.Update(txCtx, b); err != nil {
			return fmt.Errorf("failed to update batch: %w", err)
		}
		return nil
	})
	if err != nil {
		return batch.Batch{}, err
	}

	return b, nil
}

// Delete implements batch.BatchService.
func (s *BatchServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.BatchRepository.Delete(ctx, id); err != nil {
		return err
	}
	return nil
}
