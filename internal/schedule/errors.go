package schedule

import "errors"

// Sentinel errors returned by the series engine. Callers classify them
// with errors.Is to pick a response code; anything else is a storage
// failure and is propagated opaquely.
var (
	// validation failures: rejected before any write
	ErrEndNotAfterStart = errors.New("end time must be after start time")
	ErrInvalidWeekday   = errors.New("weekday index must be between 0 (Monday) and 6 (Sunday)")
	ErrNoWeekdays       = errors.New("at least one weekday is required")

	// resolution failure: a series replacement could not infer which
	// employee to regenerate for
	ErrEmployeeUnresolved = errors.New("could not infer employee for this series")

	// not-found failures
	ErrShiftNotFound = errors.New("shift not found")
)
