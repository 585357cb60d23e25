package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/classtrack/institute-backend-go/internal/domain/attendance"
	"github.com/classtrack/institute-backend-go/internal/domain/batch"
	"github.com/classtrack/institute-backend-go/internal/domain/holiday"
	"github.com/classtrack/institute-backend-go/internal/pkg/database"
	"github.com/classtrack/institute-backend-go/internal/pkg/geo"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/sync/errgroup"
)

// markBatchConcurrency bounds the fan-out of bulk batch marking.
const markBatchConcurrency = 8

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.UserAttendanceRepository
	batch.BatchRepository
	holiday.HolidayRepository

	now func() time.Time
}

func NewAttendanceService(
	db *database.DB,
	userAttendanceRepo attendance.UserAttendanceRepository,
	batchRepo batch.BatchRepository,
	holidayRepo holiday.HolidayRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                       db,
		UserAttendanceRepository: userAttendanceRepo,
		BatchRepository:          batchRepo,
		HolidayRepository:        holidayRepo,
		now:                      time.Now,
	}
}

func claimString(claims map[string]interface{}, key string) (string, error) {
	value, ok := claims[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%s claim is missing or invalid", key)
	}
	return value, nil
}

// GetUserAttendance implements attendance.AttendanceService.
//
// This is a read with a repair side effect: the store cannot guarantee a
// single aggregate per (user, batch) under concurrent first marks, so
// duplicates found here are reconciled and the losers deleted.
func (s *AttendanceServiceImpl) GetUserAttendance(ctx context.Context, userID string, batchID string) (attendance.UserAttendance, error) {
	aggregates, err := s.UserAttendanceRepository.ListByUser(ctx, userID, batchID)
	if err != nil {
		return attendance.UserAttendance{}, fmt.Errorf("failed to list user attendance: %w", err)
	}

	switch len(aggregates) {
	case 0:
		return attendance.UserAttendance{}, attendance.ErrAttendanceNotFound
	case 1:
		return aggregates[0], nil
	}

	return s.reconcileDuplicates(ctx, aggregates)
}

// reconcileDuplicates keeps the aggregate with the most records (first in
// store order wins ties) and deletes the rest. Delete failures are logged,
// not surfaced: the next read retries the repair.
func (s *AttendanceServiceImpl) reconcileDuplicates(ctx context.Context, aggregates []attendance.UserAttendance) (attendance.UserAttendance, error) {
	canonical := aggregates[0]
	for _, candidate := range aggregates[1:] {
		if len(candidate.Records) > len(canonical.Records) {
			canonical = candidate
		}
	}

	slog.Warn("reconciling duplicate attendance aggregates",
		"user_id", canonical.UserID,
		"batch_id", canonical.BatchID,
		"duplicates", len(aggregates)-1,
	)

	for _, aggregate := range aggregates {
		if aggregate.ID == canonical.ID {
			continue
		}
		if err := s.UserAttendanceRepository.Delete(ctx, aggregate.ID); err != nil {
			slog.Warn("failed to delete duplicate attendance aggregate",
				"aggregate_id", aggregate.ID, "error", err)
		}
	}

	return canonical, nil
}

// mergeRecords upserts incoming records into existing by date: existing
// records whose date collides with an incoming one are dropped, every other
// date is preserved, then the incoming records are appended. The result never
// holds two records for the same date.
func mergeRecords(existing, incoming []attendance.Record) []attendance.Record {
	incomingDates := make(map[string]struct{}, len(incoming))
	for _, rec := range incoming {
		incomingDates[rec.Date] = struct{}{}
	}

	merged := make([]attendance.Record, 0, len(existing)+len(incoming))
	for _, rec := range existing {
		if _, collides := incomingDates[rec.Date]; collides {
			continue
		}
		merged = append(merged, rec)
	}

	return append(merged, incoming...)
}

// validateBatchRules rejects records the batch policy does not allow: dates
// before the batch start, past dates when the batch forbids back-marking, and
// dates that are batch holidays.
func (s *AttendanceServiceImpl) validateBatchRules(ctx context.Context, b batch.Batch, records []attendance.Record) error {
	today := s.now().Format(attendance.DateLayout)
	startDate := b.StartDate.Format(attendance.DateLayout)

	for _, rec := range records {
		if rec.Date < startDate {
			return attendance.ErrBeforeBatchStart
		}
		if rec.Date < today && !b.CanMarkPrevious {
			return attendance.ErrPastDateLocked
		}

		_, err := s.HolidayRepository.GetByBatchAndDate(ctx, b.ID, rec.Date)
		if err == nil {
			return attendance.ErrHolidayDate
		}
		if !errors.Is(err, holiday.ErrHolidayNotFound) {
			return fmt.Errorf("failed to check holiday: %w", err)
		}
	}

	return nil
}

// MarkUserAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkUserAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.UserAttendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.UserAttendance{}, err
	}

	b, err := s.BatchRepository.GetByID(ctx, req.BatchID)
	if err != nil {
		return attendance.UserAttendance{}, fmt.Errorf("failed to get batch: %w", err)
	}

	if err := s.validateBatchRules(ctx, b, req.Records); err != nil {
		return attendance.UserAttendance{}, err
	}

	existing, err := s.GetUserAttendance(ctx, req.UserID, req.BatchID)
	if err != nil {
		if !errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.UserAttendance{}, err
		}

		// First mark for this (user, batch): create the aggregate.
		created, err := s.UserAttendanceRepository.Create(ctx, attendance.UserAttendance{
			UserID:   req.UserID,
			UserName: req.UserName,
			BatchID:  req.BatchID,
			Records:  req.Records,
		})
		if err != nil {
			return attendance.UserAttendance{}, fmt.Errorf("failed to create attendance aggregate: %w", err)
		}
		return created, nil
	}

	merged := req.Records
	if req.ShouldKeepPrevious() {
		merged = mergeRecords(existing.Records, req.Records)
	}

	if err := s.UserAttendanceRepository.UpdateRecords(ctx, existing.ID, merged); err != nil {
		return attendance.UserAttendance{}, fmt.Errorf("failed to update attendance records: %w", err)
	}

	existing.Records = merged
	return existing, nil
}

// MarkBatchAttendance implements attendance.AttendanceService.
//
// One independent write per student: a failed mark does not roll back the
// others, matching the per-document store model.
func (s *AttendanceServiceImpl) MarkBatchAttendance(ctx context.Context, req attendance.MarkBatchAttendanceRequest) (attendance.BatchMarkResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.BatchMarkResult{}, err
	}

	var (
		mu     sync.Mutex
		result = attendance.BatchMarkResult{Errors: make(map[string]string)}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(markBatchConcurrency)

	for _, entry := range req.Entries {
		entry := entry
		g.Go(func() error {
			markReq := attendance.MarkAttendanceRequest{
				UserID:   entry.UserID,
				UserName: entry.UserName,
				BatchID:  req.BatchID,
				Records: []attendance.Record{{
					Date:   req.Date,
					Status: entry.Status,
					Reason: entry.Reason,
				}},
			}

			_, err := s.MarkUserAttendance(gctx, markReq)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				result.Errors[entry.UserID] = err.Error()
				return nil
			}
			result.Marked++
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return attendance.BatchMarkResult{}, err
	}

	if result.Failed == 0 {
		result.Errors = nil
	}
	return result, nil
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.UserAttendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.UserAttendance{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return attendance.UserAttendance{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, err := claimString(claims, "user_id")
	if err != nil {
		return attendance.UserAttendance{}, err
	}
	userName, err := claimString(claims, "user_name")
	if err != nil {
		return attendance.UserAttendance{}, err
	}
	batchID, err := claimString(claims, "batch_id")
	if err != nil {
		return attendance.UserAttendance{}, err
	}

	b, err := s.BatchRepository.GetByID(ctx, batchID)
	if err != nil {
		return attendance.UserAttendance{}, fmt.Errorf("failed to get batch: %w", err)
	}

	distance := geo.Distance(&geo.Point{Latitude: req.Latitude, Longitude: req.Longitude}, b.Location)
	if !geo.WithinRadius(distance, b.CircleRadius) {
		return attendance.UserAttendance{}, attendance.ErrOutsideAllowedRadius
	}

	now := s.now()
	clock := now.Format(attendance.ClockLayout)
	if !b.Window().Contains(clock) {
		return attendance.UserAttendance{}, attendance.ErrOutsideAttendanceWindow
	}

	return s.MarkUserAttendance(ctx, attendance.MarkAttendanceRequest{
		UserID:   userID,
		UserName: userName,
		BatchID:  batchID,
		Records: []attendance.Record{{
			Date:   now.Format(attendance.DateLayout),
			Status: attendance.StatusPresent,
			InTime: clock,
		}},
	})
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.UserAttendance, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return attendance.UserAttendance{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, err := claimString(claims, "user_id")
	if err != nil {
		return attendance.UserAttendance{}, err
	}
	batchID, err := claimString(claims, "batch_id")
	if err != nil {
		return attendance.UserAttendance{}, err
	}

	aggregate, err := s.GetUserAttendance(ctx, userID, batchID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.UserAttendance{}, attendance.ErrNotCheckedIn
		}
		return attendance.UserAttendance{}, err
	}

	now := s.now()
	today := now.Format(attendance.DateLayout)

	rec, ok := aggregate.RecordForDate(today)
	if !ok || rec.Status != attendance.StatusPresent {
		return attendance.UserAttendance{}, attendance.ErrNotCheckedIn
	}

	rec.OutTime = now.Format(attendance.ClockLayout)
	merged := mergeRecords(aggregate.Records, []attendance.Record{rec})

	if err := s.UserAttendanceRepository.UpdateRecords(ctx, aggregate.ID, merged); err != nil {
		return attendance.UserAttendance{}, fmt.Errorf("failed to update attendance records: %w", err)
	}

	aggregate.Records = merged
	return aggregate, nil
}

// GetBatchAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetBatchAttendance(ctx context.Context, batchID string) ([]attendance.UserAttendance, error) {
	aggregates, err := s.UserAttendanceRepository.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list batch attendance: %w", err)
	}
	return aggregates, nil
}

// GetStudentsAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetStudentsAttendance(ctx context.Context, userIDs []string) ([]attendance.UserAttendance, error) {
	aggregates, err := s.UserAttendanceRepository.ListByUsers(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list students attendance: %w", err)
	}
	return aggregates, nil
}

// GetUserStats implements attendance.AttendanceService. A user with no
// aggregate yet gets the zeroed summary, not an error.
func (s *AttendanceServiceImpl) GetUserStats(ctx context.Context, userID string, batchID string) (attendance.StatsSummary, error) {
	aggregate, err := s.GetUserAttendance(ctx, userID, batchID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return ComputeStats(nil), nil
		}
		return attendance.StatsSummary{}, err
	}

	return ComputeStats(aggregate.Records), nil
}
