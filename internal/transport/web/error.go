package web

import (
	"errors"
	"net/http"

	"github.com/avstrong/meetingrooms/internal/booking"
)

var ErrPanic = errors.New("panic recovered")

const (
	codeMissingField      = "missing_field"
	codeInvalidTimeFormat = "invalid_time_format"
	codeInvalidDateFormat = "invalid_date_format"
	codeInvalidTimeRange  = "invalid_time_range"
	codeInvalidRoom       = "invalid_room"
	codeBadRequest        = "bad_request"
	codeOverlap           = "overlap"
	codeNotFound          = "not_found"
	codeInternal          = "internal"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// classify maps a manager error onto an HTTP status and response body.
// Anything it does not recognise is a server fault.
func classify(err error) (int, errorResponse) {
	if validationErr := booking.IsValidationError(err); validationErr != nil {
		code := codeBadRequest

		switch {
		case errors.Is(err, booking.ErrMissingField):
			code = codeMissingField
		case errors.Is(err, booking.ErrInvalidTimeFormat):
			code = codeInvalidTimeFormat
		case errors.Is(err, booking.ErrInvalidDateFormat):
			code = codeInvalidDateFormat
		case errors.Is(err, booking.ErrInvalidTimeRange):
			code = codeInvalidTimeRange
		}

		return http.StatusBadRequest, errorResponse{
			Code:    code,
			Message: validationErr.Error(),
			Field:   validationErr.Field(),
		}
	}

	if overlapErr := booking.IsOverlapError(err); overlapErr != nil {
		//nolint:exhaustruct
		return http.StatusConflict, errorResponse{
			Code:    codeOverlap,
			Message: "Booking overlaps with an existing booking.",
		}
	}

	if errors.Is(err, booking.ErrNotFound) {
		//nolint:exhaustruct
		return http.StatusNotFound, errorResponse{
			Code:    codeNotFound,
			Message: "Booking not found.",
		}
	}

	//nolint:exhaustruct
	return http.StatusInternalServerError, errorResponse{
		Code:    codeInternal,
		Message: http.StatusText(http.StatusInternalServerError),
	}
}
