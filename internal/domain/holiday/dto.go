package holiday

import (
	"github.com/classtrack/institute-backend-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	BatchID     string `json:"-"`
	Date        string `json:"date"`
	HolidayText string `json:"holidayText"`
}

func (r *CreateHolidayRequest) Validate() error {
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

	if validator.IsEmpty(r.HolidayText) {
		errs = append(errs, validator.ValidationError{
			Field:   "holidayText",
			Message: "holidayText is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HolidayResponse struct {
	ID          string `json:"id"`
	BatchID     string `json:"batch_id"`
	Date        string `json:"date"`
	HolidayText string `json:"holidayText"`
}

func NewHolidayResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID,
		BatchID:     h.BatchID,
		Date:        h.Date,
		HolidayText: h.HolidayText,
	}
}
