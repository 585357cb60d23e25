package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrOutsideAllowedRadius    = errors.New("you are outside the allowed radius")
	ErrOutsideAttendanceWindow = errors.New("attendance window is closed")
	ErrNotCheckedIn            = errors.New("you have not checked in today")

	// Marking errors
	ErrHolidayDate      = errors.New("cannot mark attendance on a holiday")
	ErrBeforeBatchStart = errors.New("date is before the batch start date")
	ErrPastDateLocked   = errors.New("marking previous dates is not allowed for this batch")
	ErrNoRecords        = errors.New("no attendance records to mark")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance profile not found")
)
