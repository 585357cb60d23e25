package response

import (
	"errors"
	"net/http"

	"github.com/classtrack/institute-backend-go/internal/domain/attendance"
	"github.com/classtrack/institute-backend-go/internal/domain/batch"
	"github.com/classtrack/institute-backend-go/internal/domain/holiday"
	"github.com/classtrack/institute-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance profile not found")
	case errors.Is(err, attendance.ErrOutsideAllowedRadius):
		Forbidden(w, "You are outside the allowed radius")
	case errors.Is(err, attendance.ErrOutsideAttendanceWindow):
		Forbidden(w, "Attendance window is closed")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "You have not checked in today", nil)
	case errors.Is(err, attendance.ErrHolidayDate):
		Conflict(w, "Cannot mark attendance on a holiday")
	case errors.Is(err, attendance.ErrBeforeBatchStart):
		BadRequest(w, "Date is before the batch start date", nil)
	case errors.Is(err, attendance.ErrPastDateLocked):
		Forbidden(w, "Marking previous dates is not allowed for this batch")
	case errors.Is(err, attendance.ErrNoRecords):
		BadRequest(w, "No attendance records to mark", nil)

	// Batch domain errors
	case errors.Is(err, batch.ErrBatchNotFound):
		NotFound(w, "Batch not found")
	case errors.Is(err, batch.ErrBatchNameExists):
		Conflict(w, "A batch with this name already exists")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "A holiday already exists on this date")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
