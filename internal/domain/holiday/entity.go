package holiday

import (
	"time"
)

// Holiday is a batch-scoped calendar annotation. It blocks attendance marking
// on its date and is rendered on calendars; it is not a per-user status.
type Holiday struct {
	ID          string
	BatchID     string
	Date        string // yyyy-MM-dd
	HolidayText string
	CreatedAt   time.Time
}
