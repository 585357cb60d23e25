package attendance

import (
	"time"
)

// Status is the per-day attendance state of a student.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusLeave   Status = "Leave"
	StatusHoliday Status = "Holiday"
)

// DateLayout is the calendar-date key format used throughout the domain.
const DateLayout = "2006-01-02"

// ClockLayout is the wall-clock format for in/out times.
const ClockLayout = "15:04"

// MonthLayout keys monthly statistics, e.g. "March 2025".
const MonthLayout = "January 2006"

// Record is one attendance entry for a single calendar date. Within one
// aggregate no two records share the same Date.
type Record struct {
	Date        string `json:"date"`
	Status      Status `json:"attendanceStatus"`
	InTime      string `json:"inTime,omitempty"`
	OutTime     string `json:"outTime,omitempty"`
	Reason      string `json:"reason,omitempty"`
	IsHoliday   bool   `json:"isHoliday,omitempty"`
	HolidayText string `json:"holidayText,omitempty"`
}

// UserAttendance is the aggregate document holding all attendance records of
// one user in one batch. The backing store gives no uniqueness guarantee on
// (UserID, BatchID), so duplicates can exist and are reconciled on read.
type UserAttendance struct {
	ID        string
	UserID    string
	UserName  string
	BatchID   string
	Records   []Record
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordForDate returns the record for the given date, if any.
func (ua *UserAttendance) RecordForDate(date string) (Record, bool) {
	for _, r := range ua.Records {
		if r.Date == date {
			return r, true
		}
	}
	return Record{}, false
}

// MonthlyStat is the per-month day-kind breakdown.
type MonthlyStat struct {
	PresentDays int `json:"presentDays"`
	AbsentDays  int `json:"absentDays"`
	HolidayDays int `json:"holidayDays"`
}

// StatsSummary is the rollup of a user's full record set. TotalDays counts
// working days only (records not flagged as holiday); Leave days stay out of
// the present/absent buckets but still count as working days, so they lower
// the percentage.
type StatsSummary struct {
	TotalDays            int                    `json:"totalDays"`
	PresentDays          int                    `json:"presentDays"`
	AbsentDays           int                    `json:"absentDays"`
	LeaveDays            int                    `json:"leaveDays"`
	HolidayDays          int                    `json:"holidayDays"`
	AttendancePercentage float64                `json:"attendancePercentage"`
	MonthlyAttendance    map[string]MonthlyStat `json:"monthlyAttendance"`
}
