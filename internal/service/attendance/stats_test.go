package attendance

import (
	"fmt"
	"testing"

	"github.com/classtrack/institute-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func TestComputeStats_EmptyRecords(t *testing.T) {
	summary := ComputeStats(nil)

	assert.Equal(t, 0, summary.TotalDays)
	assert.Equal(t, 0, summary.PresentDays)
	assert.Equal(t, 0, summary.AbsentDays)
	assert.Equal(t, 0, summary.LeaveDays)
	assert.Equal(t, 0, summary.HolidayDays)
	assert.Equal(t, 0.0, summary.AttendancePercentage)
	assert.Empty(t, summary.MonthlyAttendance)
}

func TestComputeStats_PercentageOverWorkingDays(t *testing.T) {
	var records []attendance.Record
	for day := 1; day <= 20; day++ {
		records = append(records, attendance.Record{
			Date:   dateInMarch(day),
			Status: attendance.StatusPresent,
		})
	}
	for day := 21; day <= 25; day++ {
		records = append(records, attendance.Record{
			Date:   dateInMarch(day),
			Status: attendance.StatusAbsent,
		})
	}

	summary := ComputeStats(records)

	assert.Equal(t, 25, summary.TotalDays)
	assert.Equal(t, 20, summary.PresentDays)
	assert.Equal(t, 5, summary.AbsentDays)
	assert.Equal(t, 0, summary.HolidayDays)
	assert.Equal(t, 80.00, summary.AttendancePercentage)
}

func TestComputeStats_HolidaysExcludedFromWorkingDays(t *testing.T) {
	records := []attendance.Record{
		{Date: "2025-03-03", Status: attendance.StatusPresent},
		{Date: "2025-03-04", Status: attendance.StatusHoliday, IsHoliday: true, HolidayText: "Founders Day"},
		{Date: "2025-03-05", Status: attendance.StatusAbsent},
	}

	summary := ComputeStats(records)

	assert.Equal(t, 2, summary.TotalDays)
	assert.Equal(t, 1, summary.PresentDays)
	assert.Equal(t, 1, summary.AbsentDays)
	assert.Equal(t, 1, summary.HolidayDays)
	assert.Equal(t, 50.00, summary.AttendancePercentage)
}

func TestComputeStats_LeaveCountsAsWorkingDay(t *testing.T) {
	records := []attendance.Record{
		{Date: "2025-03-03", Status: attendance.StatusPresent},
		{Date: "2025-03-04", Status: attendance.StatusLeave, Reason: "medical"},
		{Date: "2025-03-05", Status: attendance.StatusPresent},
		{Date: "2025-03-06", Status: attendance.StatusPresent},
	}

	summary := ComputeStats(records)

	// Leave stays out of present/absent but still dilutes the percentage.
	assert.Equal(t, 4, summary.TotalDays)
	assert.Equal(t, 3, summary.PresentDays)
	assert.Equal(t, 0, summary.AbsentDays)
	assert.Equal(t, 1, summary.LeaveDays)
	assert.Equal(t, 75.00, summary.AttendancePercentage)
}

func TestComputeStats_MonthlyGrouping(t *testing.T) {
	records := []attendance.Record{
		{Date: "2025-02-27", Status: attendance.StatusPresent},
		{Date: "2025-02-28", Status: attendance.StatusAbsent},
		{Date: "2025-03-03", Status: attendance.StatusPresent},
		{Date: "2025-03-04", IsHoliday: true, HolidayText: "Term break"},
	}

	summary := ComputeStats(records)

	assert.Len(t, summary.MonthlyAttendance, 2)

	feb := summary.MonthlyAttendance["February 2025"]
	assert.Equal(t, 1, feb.PresentDays)
	assert.Equal(t, 1, feb.AbsentDays)
	assert.Equal(t, 0, feb.HolidayDays)

	mar := summary.MonthlyAttendance["March 2025"]
	assert.Equal(t, 1, mar.PresentDays)
	assert.Equal(t, 0, mar.AbsentDays)
	assert.Equal(t, 1, mar.HolidayDays)
}

func TestComputeStats_PercentageRoundsToTwoDecimals(t *testing.T) {
	records := []attendance.Record{
		{Date: "2025-03-03", Status: attendance.StatusPresent},
		{Date: "2025-03-04", Status: attendance.StatusPresent},
		{Date: "2025-03-05", Status: attendance.StatusAbsent},
	}

	summary := ComputeStats(records)

	// 2/3 -> 66.666... -> 66.67
	assert.Equal(t, 66.67, summary.AttendancePercentage)
}

func dateInMarch(day int) string {
	return fmt.Sprintf("2025-03-%02d", day)
}
