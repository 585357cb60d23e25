package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestWindow_DefaultWhenUnset(t *testing.T) {
	b := &Batch{}

	w := b.Window()

	assert.Equal(t, "09:00", w.Start)
	assert.Equal(t, "17:00", w.End)
}

func TestWindow_PartialConfigFallsBack(t *testing.T) {
	b := &Batch{AttendanceStart: strPtr("07:30")}

	w := b.Window()

	assert.Equal(t, "07:30", w.Start)
	assert.Equal(t, "17:00", w.End)
}

func TestWindow_ContainsBoundaryInclusive(t *testing.T) {
	w := Window{Start: "09:00", End: "17:00"}

	assert.False(t, w.Contains("08:59"))
	assert.True(t, w.Contains("09:00"))
	assert.True(t, w.Contains("12:30"))
	assert.True(t, w.Contains("17:00"))
	assert.False(t, w.Contains("17:01"))
}
