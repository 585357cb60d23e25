package batch

import (
	"time"

	"github.com/classtrack/institute-backend-go/internal/pkg/geo"
)

// Default attendance window applied when a batch has none configured.
const (
	DefaultWindowStart = "09:00"
	DefaultWindowEnd   = "17:00"
)

// Window is a same-day wall-clock interval, both ends "HH:mm" zero-padded.
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Contains reports whether the clock time hhmm falls inside the window,
// boundaries inclusive. Lexicographic comparison on zero-padded HH:mm is
// equivalent to time comparison within a single day.
func (w Window) Contains(hhmm string) bool {
	return w.Start <= hhmm && hhmm <= w.End
}

// Batch is a class section: it owns the geofence, the attendance window and
// the marking policy its students are checked against.
type Batch struct {
	ID           string
	Name         string
	Location     *geo.Point
	CircleRadius float64 // meters
	// Attendance window, both optional; Window() applies the default.
	AttendanceStart *string
	AttendanceEnd   *string
	CanMarkPrevious bool
	StartDate       time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Window returns the configured attendance window, falling back to the
// 09:00-17:00 default when either end is missing.
func (b *Batch) Window() Window {
	w := Window{Start: DefaultWindowStart, End: DefaultWindowEnd}
	if b.AttendanceStart != nil && *b.AttendanceStart != "" {
		w.Start = *b.AttendanceStart
	}
	if b.AttendanceEnd != nil && *b.AttendanceEnd != "" {
		w.End = *b.AttendanceEnd
	}
	return w
}
