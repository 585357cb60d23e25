package holiday

import (
	"context"
	"errors"
	"fmt"

	"github.com/classtrack/institute-backend-go/internal/domain/batch"
	"github.com/classtrack/institute-backend-go/internal/domain/holiday"
	"github.com/classtrack/institute-backend-go/internal/pkg/database"
	"github.com/classtrack/institute-backend-go/internal/repository/postgresql"
)

type HolidayServiceImpl struct {
	db *database.DB
	holiday.HolidayRepository
	batch.BatchRepository
}

func NewHolidayService(db *database.DB, holidayRepo holiday.HolidayRepository, batchRepo batch.BatchRepository) holiday.HolidayService {
	return &HolidayServiceImpl{
		db:                db,
		HolidayRepository: holidayRepo,
		BatchRepository:   batchRepo,
	}
}

// Create implements holiday.HolidayService.
func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.Holiday, error) {
	if err := req.Validate(); err != nil {
		return holiday.Holiday{}, err
	}

	if _, err := s.BatchRepository.GetByID(ctx, req.BatchID); err != nil {
		return holiday.Holiday{}, err
	}

	var created holiday.Holiday
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		_, err := s.HolidayRepository.GetByBatchAndDate(txCtx, req.BatchID, req.Date)
		if err == nil {
			return holiday.ErrHolidayExists
		}
		if !errors.Is(err, holiday.ErrHolidayNotFound) {
			return fmt.Errorf("failed to check existing holiday: %w", err)
		}

		created, err = s.HolidayRepository.Create(txCtx, holiday.Holiday{
			BatchID:     req.BatchID,
			Date:        req.Date,
			HolidayText: req.HolidayText,
		})
		if err != nil {
			return fmt.Errorf("failed to create holiday: %w", err)
		}
		return nil
	})
	if err != nil {
		return holiday.Holiday{}, err
	}

	return created, nil
}

// ListByBatch implements holiday.HolidayService.
func (s *HolidayServiceImpl) ListByBatch(ctx context.Context, batchID string) ([]holiday.Holiday, error) {
	holidays, err := s.HolidayRepository.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	return holidays, nil
}

// Delete implements holiday.HolidayService.
func (s *HolidayServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.HolidayRepository.Delete(ctx, id); err != nil {
		return err
	}
	return nil
}
