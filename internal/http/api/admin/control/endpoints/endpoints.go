package endpoints

import (
	"errors"
	"net/http"

	"github.com/harborlight/carecal/internal/http/api"
	"github.com/harborlight/carecal/internal/schedule"
)

const (
	dateLayout    = "2006-01-02"
	startAtLayout = "2006-01-02T15:04"
)

// engineError maps the series engine's failure taxonomy onto response
// codes: validation and resolution problems are the caller's fault,
// missing rows are 404, anything else is an opaque storage failure.
func engineError(err error) *api.APIError {
	switch {
	case errors.Is(err, schedule.ErrShiftNotFound):
		return &api.APIError{Code: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, schedule.ErrEndNotAfterStart),
		errors.Is(err, schedule.ErrInvalidWeekday),
		errors.Is(err, schedule.ErrNoWeekdays),
		errors.Is(err, schedule.ErrEmployeeUnresolved):
		return &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	default:
		return &api.APIError{Code: http.StatusInternalServerError, Message: "storage failure"}
	}
}
