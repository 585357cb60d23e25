package batch

import (
	"github.com/classtrack/institute-backend-go/internal/pkg/geo"
	"github.com/classtrack/institute-backend-go/internal/pkg/validator"
)

type CreateBatchRequest struct {
	Name            string     `json:"name"`
	Location        *geo.Point `json:"location"`
	CircleRadius    float64    `json:"circle_radius"`
	AttendanceStart *string    `json:"attendance_start,omitempty"`
	AttendanceEnd   *string    `json:"attendance_end,omitempty"`
	CanMarkPrevious bool       `json:"can_mark_previous"`
	StartDate       string     `json:"start_date"`
}

func (r *CreateBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.Location != nil && !r.Location.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location must be a valid lat/lon pair",
		})
	}

	if r.CircleRadius < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "circle_radius",
			Message: "circle_radius must not be negative",
		})
	}

	if r.AttendanceStart != nil && !validator.IsValidClockTime(*r.AttendanceStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_start",
			Message: "attendance_start must be in HH:mm format",
		})
	}
	if r.AttendanceEnd != nil && !validator.IsValidClockTime(*r.AttendanceEnd) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_end",
			Message: "attendance_end must be in HH:mm format",
		})
	}

	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateBatchRequest struct {
	ID              string     `json:"-"`
	Name            *string    `json:"name,omitempty"`
	Location        *geo.Point `json:"location,omitempty"`
	CircleRadius    *float64   `json:"circle_radius,omitempty"`
	AttendanceStart *string    `json:"attendance_start,omitempty"`
	AttendanceEnd   *string    `json:"attendance_end,omitempty"`
	CanMarkPrevious *bool      `json:"can_mark_previous,omitempty"`
	StartDate       *string    `json:"start_date,omitempty"`
}

func (r *UpdateBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.Location != nil && !r.Location.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location must be a valid lat/lon pair",
		})
	}

	if r.CircleRadius != nil && *r.CircleRadius < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "circle_radius",
			Message: "circle_radius must not be negative",
		})
	}

	if r.AttendanceStart != nil && !validator.IsValidClockTime(*r.AttendanceStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_start",
			Message: "attendance_start must be in HH:mm format",
		})
	}
	if r.AttendanceEnd != nil && !validator.IsValidClockTime(*r.AttendanceEnd) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_end",
			Message: "attendance_end must be in HH:mm format",
		})
	}

	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BatchResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Location        *geo.Point `json:"location,omitempty"`
	CircleRadius    float64    `json:"circle_radius"`
	AttendanceStart string     `json:"attendance_start"`
	AttendanceEnd   string     `json:"attendance_end"`
	CanMarkPrevious bool       `json:"can_mark_previous"`
	StartDate       string     `json:"start_date"`
}

// NewBatchResponse maps a batch to its API shape with the window default
// already applied.
func NewBatchResponse(b Batch) BatchResponse {
	w := b.Window()
	return BatchResponse{
		ID:              b.ID,
		Name:            b.Name,
		Location:        b.Location,
		CircleRadius:    b.CircleRadius,
		AttendanceStart: w.Start,
		AttendanceEnd:   w.End,
		CanMarkPrevious: b.CanMarkPrevious,
		StartDate:       b.StartDate.Format("2006-01-02"),
	}
}
