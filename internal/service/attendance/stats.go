package attendance

import (
	"math"
	"time"

	"github.com/classtrack/institute-backend-go/internal/domain/attendance"
)

// ComputeStats rolls a record set up into day-kind counters and a monthly
// breakdown. Pure and deterministic; an empty input yields the zeroed summary.
//
// Working days are the records not flagged as holiday; they form the
// percentage denominator. Leave days count as working days without joining
// the present or absent buckets, so they pull the percentage down.
func ComputeStats(records []attendance.Record) attendance.StatsSummary {
	summary := attendance.StatsSummary{
		MonthlyAttendance: make(map[string]attendance.MonthlyStat),
	}

	for _, rec := range records {
		monthKey := ""
		if date, err := time.Parse(attendance.DateLayout, rec.Date); err == nil {
			monthKey = date.Format(attendance.MonthLayout)
		}
		month := summary.MonthlyAttendance[monthKey]

		if rec.IsHoliday {
			summary.HolidayDays++
			month.HolidayDays++
		} else {
			summary.TotalDays++
			switch rec.Status {
			case attendance.StatusPresent:
				summary.PresentDays++
				month.PresentDays++
			case attendance.StatusAbsent:
				summary.AbsentDays++
				month.AbsentDays++
			case attendance.StatusLeave:
				summary.LeaveDays++
			}
		}

		if monthKey != "" {
			summary.MonthlyAttendance[monthKey] = month
		}
	}

	if summary.TotalDays > 0 {
		percentage := float64(summary.PresentDays) / float64(summary.TotalDays) * 100
		summary.AttendancePercentage = math.Round(percentage*100) / 100
	}

	return summary
}
