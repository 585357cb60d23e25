package attendance

import (
	"github.com/classtrack/institute-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

var validStatuses = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusLeave),
	string(StatusHoliday),
}

// MarkAttendanceRequest merges one or more records (typically just today's)
// into a user's aggregate. KeepPrevious=false replaces the whole record set,
// used by bulk overwrite flows.
type MarkAttendanceRequest struct {
	UserID       string   `json:"user_id"`
	UserName     string   `json:"user_name"`
	BatchID      string   `json:"batch_id"`
	Records      []Record `json:"records"`
	KeepPrevious *bool    `json:"keep_previous,omitempty"`
}

// ShouldKeepPrevious defaults to true when the flag is omitted.
func (r *MarkAttendanceRequest) ShouldKeepPrevious() bool {
	return r.KeepPrevious == nil || *r.KeepPrevious
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if validator.IsEmpty(r.BatchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "batch_id",
			Message: "batch_id is required",
		})
	}

	if len(r.Records) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "records",
			Message: "at least one record is required",
		})
	}

	for _, rec := range r.Records {
		if _, ok := validator.IsValidDate(rec.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "records.date",
				Message: "date must be in YYYY-MM-DD format",
			})
			continue
		}
		if !validator.IsInSlice(string(rec.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "records.attendanceStatus",
				Message: "attendanceStatus must be one of: Present, Absent, Leave, Holiday",
			})
		}
		if rec.InTime != "" && !validator.IsValidClockTime(rec.InTime) {
			errs = append(errs, validator.ValidationError{
				Field:   "records.inTime",
				Message: "inTime must be in HH:mm format",
			})
		}
		if rec.OutTime != "" && !validator.IsValidClockTime(rec.OutTime) {
			errs = append(errs, validator.ValidationError{
				Field:   "records.outTime",
				Message: "outTime must be in HH:mm format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CheckInRequest is a geofenced self check-in from a student device.
type CheckInRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BatchMarkEntry is one student's mark within a bulk batch marking request.
type BatchMarkEntry struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Status   Status `json:"attendanceStatus"`
	Reason   string `json:"reason,omitempty"`
}

// MarkBatchAttendanceRequest marks a whole batch for one date. Each entry is
// an independent write: partial success is possible and not rolled back.
type MarkBatchAttendanceRequest struct {
	BatchID string           `json:"batch_id"`
	Date    string           `json:"date"`
	Entries []BatchMarkEntry `json:"entries"`
}

func (r *MarkBatchAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BatchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "batch_id",
			Message: "batch_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(r.Entries) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "entries",
			Message: "at least one entry is required",
		})
	}

	for _, e := range r.Entries {
		if validator.IsEmpty(e.UserID) {
			errs = append(errs, validator.ValidationError{
				Field:   "entries.user_id",
				Message: "user_id is required",
			})
		}
		if !validator.IsInSlice(string(e.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "entries.attendanceStatus",
				Message: "attendanceStatus must be one of: Present, Absent, Leave, Holiday",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BatchMarkResult reports the per-student outcome of a bulk mark.
type BatchMarkResult struct {
	Marked int               `json:"marked"`
	Failed int               `json:"failed"`
	Errors map[string]string `json:"errors,omitempty"` // userID -> failure message
}

// RecordResponse is a Record plus the derived IsMarked flag.
type RecordResponse struct {
	Record
	IsMarked bool `json:"isMarked"`
}

type UserAttendanceResponse struct {
	ID       string           `json:"id"`
	UserID   string           `json:"user_id"`
	UserName string           `json:"user_name"`
	BatchID  string           `json:"batch_id"`
	Records  []RecordResponse `json:"attendanceRecords"`
}

// NewUserAttendanceResponse maps an aggregate to its API shape.
func NewUserAttendanceResponse(ua UserAttendance) UserAttendanceResponse {
	records := make([]RecordResponse, 0, len(ua.Records))
	for _, rec := range ua.Records {
		records = append(records, RecordResponse{Record: rec, IsMarked: true})
	}
	return UserAttendanceResponse{
		ID:       ua.ID,
		UserID:   ua.UserID,
		UserName: ua.UserName,
		BatchID:  ua.BatchID,
		Records:  records,
	}
}
