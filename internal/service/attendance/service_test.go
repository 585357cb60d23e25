package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/classtrack/institute-backend-go/internal/domain/attendance"
	"github.com/classtrack/institute-backend-go/internal/domain/batch"
	"github.com/classtrack/institute-backend-go/internal/domain/holiday"
	"github.com/classtrack/institute-backend-go/internal/pkg/geo"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== in-memory fakes =====

type fakeUserAttendanceRepo struct {
	mu         sync.Mutex
	aggregates []attendance.UserAttendance
	failUserID string // Create fails for this user
}

func (f *fakeUserAttendanceRepo) ListByUser(_ context.Context, userID string, batchID string) ([]attendance.UserAttendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.UserAttendance
	for _, ua := range f.aggregates {
		if ua.UserID == userID && (batchID == "" || ua.BatchID == batchID) {
			out = append(out, ua)
		}
	}
	return out, nil
}

func (f *fakeUserAttendanceRepo) ListByBatch(_ context.Context, batchID string) ([]attendance.UserAttendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.UserAttendance
	for _, ua := range f.aggregates {
		if ua.BatchID == batchID {
			out = append(out, ua)
		}
	}
	return out, nil
}

func (f *fakeUserAttendanceRepo) ListByUsers(_ context.Context, userIDs []string) ([]attendance.UserAttendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		ids[id] = struct{}{}
	}
	var out []attendance.UserAttendance
	for _, ua := range f.aggregates {
		if _, ok := ids[ua.UserID]; ok {
			out = append(out, ua)
		}
	}
	return out, nil
}

func (f *fakeUserAttendanceRepo) Create(_ context.Context, aggregate attendance.UserAttendance) (attendance.UserAttendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUserID != "" && aggregate.UserID == f.failUserID {
		return attendance.UserAttendance{}, assert.AnError
	}
	aggregate.ID = uuid.NewString()
	aggregate.CreatedAt = time.Now()
	aggregate.UpdatedAt = aggregate.CreatedAt
	f.aggregates = append(f.aggregates, aggregate)
	return aggregate, nil
}

func (f *fakeUserAttendanceRepo) UpdateRecords(_ context.Context, id string, records []attendance.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.aggregates {
		if f.aggregates[i].ID == id {
			f.aggregates[i].Records = records
			f.aggregates[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (f *fakeUserAttendanceRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.aggregates {
		if f.aggregates[i].ID == id {
			f.aggregates = append(f.aggregates[:i], f.aggregates[i+1:]...)
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

type fakeBatchRepo struct {
	batch batch.Batch
}

func (f *fakeBatchRepo) Create(_ context.Context, b batch.Batch) (batch.Batch, error) { return b, nil }
func (f *fakeBatchRepo) GetByID(_ context.Context, id string) (batch.Batch, error) {
	if id != f.batch.ID {
		return batch.Batch{}, batch.ErrBatchNotFound
	}
	return f.batch, nil
}
func (f *fakeBatchRepo) List(_ context.Context) ([]batch.Batch, error) {
	return []batch.Batch{f.batch}, nil
}
func (f *fakeBatchRepo) Update(_ context.Context, b batch.Batch) error { return nil }
func (f *fakeBatchRepo) Delete(_ context.Context, id string) error     { return nil }

type fakeHolidayRepo struct {
	holidays map[string]holiday.Holiday // batchID+"|"+date
}

func (f *fakeHolidayRepo) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	if f.holidays == nil {
		f.holidays = make(map[string]holiday.Holiday)
	}
	f.holidays[h.BatchID+"|"+h.Date] = h
	return h, nil
}

func (f *fakeHolidayRepo) GetByBatchAndDate(_ context.Context, batchID string, date string) (holiday.Holiday, error) {
	if h, ok := f.holidays[batchID+"|"+date]; ok {
		return h, nil
	}
	return holiday.Holiday{}, holiday.ErrHolidayNotFound
}

func (f *fakeHolidayRepo) ListByBatch(_ context.Context, batchID string) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range f.holidays {
		if h.BatchID == batchID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHolidayRepo) Delete(_ context.Context, id string) error { return nil }

// ===== helpers =====

const testBatchID = "batch-1"

func testBatch() batch.Batch {
	return batch.Batch{
		ID:              testBatchID,
		Name:            "Morning Batch",
		Location:        &geo.Point{Latitude: 12.9716, Longitude: 77.5946},
		CircleRadius:    150,
		CanMarkPrevious: true,
		StartDate:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestService(repo *fakeUserAttendanceRepo, b batch.Batch, holidays *fakeHolidayRepo) *AttendanceServiceImpl {
	if holidays == nil {
		holidays = &fakeHolidayRepo{}
	}
	return &AttendanceServiceImpl{
		UserAttendanceRepository: repo,
		BatchRepository:          &fakeBatchRepo{batch: b},
		HolidayRepository:        holidays,
		now: func() time.Time {
			return time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
		},
	}
}

func markRequest(userID string, records ...attendance.Record) attendance.MarkAttendanceRequest {
	return attendance.MarkAttendanceRequest{
		UserID:   userID,
		UserName: "Student " + userID,
		BatchID:  testBatchID,
		Records:  records,
	}
}

func claimsContext(t *testing.T, claims map[string]interface{}) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(claims)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func studentContext(t *testing.T, userID string) context.Context {
	return claimsContext(t, map[string]interface{}{
		"user_id":   userID,
		"user_name": "Student " + userID,
		"batch_id":  testBatchID,
	})
}

// ===== mark / merge =====

func TestMarkUserAttendance_CreatesAggregateOnFirstMark(t *testing.T) {
	repo := &fakeUserAttendanceRepo{}
	svc := newTestService(repo, testBatch(), nil)

	rec := attendance.Record{Date: "2025-03-10", Status: attendance.StatusPresent, InTime: "09:05"}
	aggregate, err := svc.MarkUserAttendance(context.Background(), markRequest("u1", rec))

	require.NoError(t, err)
	assert.NotEmpty(t, aggregate.ID)
	assert.Equal(t, "u1", aggregate.UserID)
	require.Len(t, aggregate.Records, 1)
	assert.Equal(t, rec, aggregate.Records[0])
}

func TestMarkUserAttendance_MergeIsIdempotent(t *testing.T) {
	repo := &fakeUserAttendanceRepo{}
	svc := newTestService(repo, testBatch(), nil)
	ctx := context.Background()

	records := []attendance.Record{
		{Date: "2025-03-10", Status: attendance.StatusPresent},
		{Date: "2025-03-11", Status: attendance.StatusAbsent, Reason: "sick"},
	}

	first, err := svc.MarkUserAttendance(ctx, markRequest("u1", records...))
	require.NoError(t, err)

	second, err := svc.MarkUserAttendance(ctx, markRequest("u1", records...))
	require.NoError(t, err)

	assert.ElementsMatch(t, first.Records, second.Records)
	assert.Len(t, second.Records, 2)
}

func TestMarkUserAttendance_UpsertByDateNewestWins(t *testing.T) {
	repo := &fakeUserAttendanceRepo{}
	svc := newTestService(repo, testBatch(), nil)
	ctx := context.Background()

	_, err := svc.MarkUserAttendance(ctx, markRequest("u1",
		attendance.Record{Date: "2025-03-10", Status: attendance.StatusAbsent},
		attendance.Record{Date: "2025-03-11", Status: attendance.StatusPresent},
	))
	require.NoError(t, err)

	// Re-mark 03-10; 03-11 must survive untouched.
	aggregate, err := svc.MarkUserAttendance(ctx, markRequest("u1",
		attendance.Record{Date: "2025-03-10", Status: attendance.StatusPresent, InTime: "09:12"},
	))
	require.NoError(t, err)

	require.Len(t, aggregate.Records, 2)
	dates := map[string]attendance.Record{}
	for _, rec := range aggregate.Records {
		_, dup := dates[rec.Date]
		require.False(t, dup, "duplicate date %s in aggregate", rec.Date)
		dates[rec.Date] = rec
	}
	assert.Equal(t, attendance.StatusPresent, dates["2025-03-10"].Status)
	assert.Equal(t, "09:12", dates["2025-03-10"].InTime)
	assert.Equal(t, attendance.StatusPresent, dates["2025-03-11"].Status)
}

func TestMarkUserAttendance_DateUniquenessOverSequence(t *testing.T) {
	repo := &fakeUserAttendanceRepo{}
	svc := newTestService(repo, testBatch(), nil)
	ctx := context.Background()

	marks := [][]attendance.Record{
		{{Date: "2025-03-10", Status: attendance.StatusPresent}},
		{{Date: "2025-03-10", Status: attendance.StatusAbsent}, {Date: "2025-03-11", Status: attendance.StatusPresent}},
		{{Date: "2025-03-11", Status: attendance.StatusLeave, Reason: "travel"}},
		{{Date: "2025-03-12", Status: attendance.StatusPresent}},
	}

	var aggregate attendance.UserAttendance
	for _, records := range marks {
		var err error
		aggregate, err = svc.MarkUserAttendance(ctx, markRequest("u1", records...))
		require.NoError(t, err)

		seen := map[string]bool{}
		for _, rec := range aggregate.Records {
			require.False(t, seen[rec.Date], "duplicate date %s", rec.Date)
			seen[rec.Date] = true
		}
	}

	require.Len(t, aggregate.Records, 3)
	rec, ok := aggregate.RecordForDate("2025-03-11")
	require.True(t, ok)
	assert.Equal(t, attendance.StatusLeave, rec.Status)
}

func TestMarkUserAttendance_ReplaceWhenKeepPreviousFalse(t *testing.T) {
	repo := &fakeUserAttendanceRepo{}
	svc := newTestService(repo, testBatch(), nil)
	ctx := context.Background()

	_, err := svc.MarkUserAttendance(ctx, markRequest("u1",
		attendance.Record{Date: "2025-03-10", Status: attendance.StatusPresent},
		attendance.Record{Date: "2025-03-11", Status: attendance.StatusPresent},
	))
	require.NoError(t, err)

	keep := false
	req := markRequest("u1", attendance.Record{Date: "2025-03-12", Status: attendance.StatusAbsent})
	req.KeepPrevious = &keep

	aggregate, err := svc.MarkUserAttendance(ctx, req)
	require.NoError(t, err)

	require.Len(t, aggregate.Records, 1)
	assert.Equal(t, "2025-03-12", aggregate.Records[0].Date)
}

func TestMarkUserAttendance_RejectsHolidayDate(t *testing.T) {
	repo := &fakeUserAttendanceRepo{}
	holidays := &fakeHolidayRepo{}
	_, err := holidays.Create(context.Background(), holiday.Holiday{
		ID: "h1", BatchID: testBatchID, Date: "2025-03-10", HolidayText: "Founders Day",
	})
	require.NoError(t, err)
	svc := newTestService(repo, testBatch(), holidays)

	_, err = svc.MarkUserAttendance(context.Background(), markRequest("u1",
		attendance.Record{Date: "2025-03-10", Status: attendance.StatusPresent},
	))

	assert.ErrorIs(t, err, attendance.ErrHolidayDate)
	assert.Empty(t, repo.aggregates)
}

func TestMarkUserAttendance_RejectsDateBeforeBatchStart(t *testing.T) {
	repo := &fakeUserAttendanceRepo{}
	svc := newTestService(repo, testBatch(), nil)

	_, err := svc.MarkUserAttendance(context.Background(), markRequest("u1",
		attendance.Record{Date: "2025-02-28", Status: attendance.StatusPresent},
	))

	assert.ErrorIs(t, err, attendance.ErrBeforeBatchStart)
}

func TestMarkUserAttendance_RejectsPastDateWhenLocked(t *testing.T) {
	b := testBatch()
	b.CanMarkPrevious = false
	repo := &fakeUserAttendanceRepo{}
	svc := newTestService(repo, b, nil)

	_, err := svc.MarkUserAttendance(context.Background(), markRequest("u1",
		attendance.Record{Date: "2025-03-10", Status: attendance.StatusPresent},
	))
	assert.ErrorIs(t, err, attendance.ErrPastDateLocked)

	// Today is still markable.
	_, err = svc.MarkUserAttendance(context.Background(), markRequest("u1",
		attendance.Record{Date: "2025-03-15", Status: attendance.StatusPresent},
	))
	assert.NoError(t, err)
}

// ===== read / reconcile =====

func TestGetUserAttendance_NotFound(t *testing.T) {
	svc := newTestService(&fakeUserAttendanceRepo{}, testBatch(), nil)

	_, err := svc.GetUserAttendance(context.Background(), "ghost", testBatchID)

	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestGetUserAttendance_ReconcilesDuplicates(t *testing.T) {
	recs := func(n int) []attendance.Record {
		out := make([]attendance.Record, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, attendance.Record{
				Date:   dateInMarch(i + 1),
				Status: attendance.StatusPresent,
			})
		}
		return out
	}

	repo := &fakeUserAttendanceRepo{aggregates: []attendance.UserAttendance{
		{ID: "a", UserID: "u1", BatchID: testBatchID, Records: recs(2)},
		{ID: "b", UserID: "u1", BatchID: testBatchID, Records: recs(5)},
		{ID: "c", UserID: "u1", BatchID: testBatchID, Records: recs(3)},
	}}
	svc := newTestService(repo, testBatch(), nil)

	aggregate, err := svc.GetUserAttendance(context.Background(), "u1", testBatchID)
	require.NoError(t, err)
	assert.Equal(t, "b", aggregate.ID)
	assert.Len(t, aggregate.Records, 5)

	// The losers are gone; a subsequent read returns only the kept one.
	assert.Len(t, repo.aggregates, 1)
	again, err := svc.GetUserAttendance(context.Background(), "u1", testBatchID)
	require.NoError(t, err)
	assert.Equal(t, "b", again.ID)
}

func TestGetUserAttendance_EqualCountsKeepFirstInStoreOrder(t *testing.T) {
	recs := []attendance.Record{{Date: "2025-03-10", Status: attendance.StatusPresent}}
	repo := &fakeUserAttendanceRepo{aggregates: []attendance.UserAttendance{
		{ID: "first", UserID: "u1", BatchID: testBatchID, Records: recs},
		{ID: "second", UserID: "u1", BatchID: testBatchID, Records: recs},
	}}
	svc := newTestService(repo, testBatch(), nil)

	aggregate, err := svc.GetUserAttendance(context.Background(), "u1", testBatchID)

	require.NoError(t, err)
	assert.Equal(t, "first", aggregate.ID)
	assert.Len(t, repo.aggregates, 1)
}

// ===== check-in / check-out =====

func TestCheckIn_MarksPresentInsideGeofenceAndWindow(t *testing.T) {
	repo := &fakeUserAttendanceRepo{}
	svc := newTestService(repo, testBatch(), nil)
	ctx := studentContext(t, "u1")

	aggregate, err := svc.CheckIn(ctx, attendance.CheckInRequest{
		Latitude: 12.9716, Longitude: 77.5946, // at the geofence center
	})

	require.NoError(t, err)
	rec, ok := aggregate.RecordForDate("2025-03-15")
	require.True(t, ok)
	assert.Equal(t, attendance.StatusPresent, rec.Status)
	assert.Equal(t, "10:00", rec.InTime)
}

func TestCheckIn_RejectsOutsideRadius(t *testing.T) {
	b := testBatch()
	b.CircleRadius = 100
	svc := newTestService(&fakeUserAttendanceRepo{}, b, nil)
	ctx := studentContext(t, "u1")

	// ~111 meters north of the center.
	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{
		Latitude: 12.9726, Longitude: 77.5946,
	})

	assert.ErrorIs(t, err, attendance.ErrOutsideAllowedRadius)
}

func TestCheckIn_DistanceEqualToRadiusIsEligible(t *testing.T) {
	b := testBatch()
	b.CircleRadius = 0 // distance 0 == radius 0, boundary inclusive
	svc := newTestService(&fakeUserAttendanceRepo{}, b, nil)
	ctx := studentContext(t, "u1")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{
		Latitude: 12.9716, Longitude: 77.5946,
	})

	assert.NoError(t, err)
}

func TestCheckIn_WindowBoundaries(t *testing.T) {
	cases := []struct {
		clock   time.Time
		wantErr error
	}{
		{time.Date(2025, 3, 15, 8, 59, 0, 0, time.UTC), attendance.ErrOutsideAttendanceWindow},
		{time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC), nil},
		{time.Date(2025, 3, 15, 17, 0, 0, 0, time.UTC), nil},
		{time.Date(2025, 3, 15, 17, 1, 0, 0, time.UTC), attendance.ErrOutsideAttendanceWindow},
	}

	for _, c := range cases {
		svc := newTestService(&fakeUserAttendanceRepo{}, testBatch(), nil)
		svc.now = func() time.Time { return c.clock }
		ctx := studentContext(t, "u1")

		_, err := svc.CheckIn(ctx, attendance.CheckInRequest{
			Latitude: 12.9716, Longitude: 77.5946,
		})

		if c.wantErr != nil {
			assert.ErrorIs(t, err, c.wantErr, "at %s", c.clock.Format("15:04"))
		} else {
			assert.NoError(t, err, "at %s", c.clock.Format("15:04"))
		}
	}
}

func TestCheckOut_StampsOutTime(t *testing.T) {
	repo := &fakeUserAttendanceRepo{}
	svc := newTestService(repo, testBatch(), nil)
	ctx := studentContext(t, "u1")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{
		Latitude: 12.9716, Longitude: 77.5946,
	})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2025, 3, 15, 16, 45, 0, 0, time.UTC) }

	aggregate, err := svc.CheckOut(ctx)
	require.NoError(t, err)

	rec, ok := aggregate.RecordForDate("2025-03-15")
	require.True(t, ok)
	assert.Equal(t, "10:00", rec.InTime)
	assert.Equal(t, "16:45", rec.OutTime)
	require.Len(t, aggregate.Records, 1)
}

func TestCheckOut_WithoutCheckInFails(t *testing.T) {
	svc := newTestService(&fakeUserAttendanceRepo{}, testBatch(), nil)
	ctx := studentContext(t, "u1")

	_, err := svc.CheckOut(ctx)

	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

// ===== bulk marking =====

func TestMarkBatchAttendance_AllSucceed(t *testing.T) {
	repo := &fakeUserAttendanceRepo{}
	svc := newTestService(repo, testBatch(), nil)

	result, err := svc.MarkBatchAttendance(context.Background(), attendance.MarkBatchAttendanceRequest{
		BatchID: testBatchID,
		Date:    "2025-03-15",
		Entries: []attendance.BatchMarkEntry{
			{UserID: "u1", UserName: "Asha", Status: attendance.StatusPresent},
			{UserID: "u2", UserName: "Bilal", Status: attendance.StatusAbsent, Reason: "sick"},
			{UserID: "u3", UserName: "Chen", Status: attendance.StatusLeave, Reason: "travel"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 3, result.Marked)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Errors)
	assert.Len(t, repo.aggregates, 3)
}

func TestMarkBatchAttendance_PartialFailureIsNotRolledBack(t *testing.T) {
	repo := &fakeUserAttendanceRepo{failUserID: "u2"}
	svc := newTestService(repo, testBatch(), nil)

	result, err := svc.MarkBatchAttendance(context.Background(), attendance.MarkBatchAttendanceRequest{
		BatchID: testBatchID,
		Date:    "2025-03-15",
		Entries: []attendance.BatchMarkEntry{
			{UserID: "u1", Status: attendance.StatusPresent},
			{UserID: "u2", Status: attendance.StatusPresent},
			{UserID: "u3", Status: attendance.StatusPresent},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Marked)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, result.Errors, "u2")
	assert.Len(t, repo.aggregates, 2)
}

// ===== stats via service =====

func TestGetUserStats_NoProfileYieldsZeroSummary(t *testing.T) {
	svc := newTestService(&fakeUserAttendanceRepo{}, testBatch(), nil)

	summary, err := svc.GetUserStats(context.Background(), "ghost", testBatchID)

	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalDays)
	assert.Equal(t, 0.0, summary.AttendancePercentage)
	assert.Empty(t, summary.MonthlyAttendance)
}
