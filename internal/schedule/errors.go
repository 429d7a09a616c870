package schedule

import "errors"

var (
	// ErrMalformedDate is returned for dates that are not a valid DD.MM.YYYY calendar day
	ErrMalformedDate = errors.New("malformed date")
	// ErrMalformedTime is returned for clock values that are not a valid HH:MM
	ErrMalformedTime = errors.New("malformed time")
	// ErrInvalidTimeRange is returned when an event does not start before it ends
	ErrInvalidTimeRange = errors.New("invalid time range")
	// ErrInvalidDateFormat is returned when an ISO YYYY-MM-DD date cannot be converted
	ErrInvalidDateFormat = errors.New("invalid date format")
	// ErrDanglingPersonReference marks a responsible person id with no registry entry
	ErrDanglingPersonReference = errors.New("dangling person reference")
	// ErrPersistenceFailure wraps every failure of the storage collaborator
	ErrPersistenceFailure = errors.New("persistence failure")

	// ErrEmptyTitle is returned for an event without a title
	ErrEmptyTitle = errors.New("title is required")
	// ErrUnknownType is returned for an event type outside AllEventTypes
	ErrUnknownType = errors.New("unknown event type")
	// ErrUnknownStatus is returned for a status outside AllStatuses
	ErrUnknownStatus = errors.New("unknown event status")
	// ErrInvalidReminder is returned for reminder minutes other than 5, 15, 30, 60 or 120
	ErrInvalidReminder = errors.New("invalid reminder")
	// ErrInvalidTransition is returned when an explicit action does not apply to the current status
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrNotFound is returned when no event or person has the requested id
	ErrNotFound = errors.New("not found")
)

// IsInvalidInput reports whether err rejects user input rather than signals
// a storage or system failure
func IsInvalidInput(err error) bool {
	for _, target := range []error{
		ErrMalformedDate, ErrMalformedTime, ErrInvalidTimeRange, ErrInvalidDateFormat,
		ErrEmptyTitle, ErrUnknownType, ErrUnknownStatus, ErrInvalidReminder, ErrInvalidTransition,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
