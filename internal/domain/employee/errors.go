package employee

import "errors"

var (
	ErrUnknownAction = errors.New("unknown profile action")
	ErrRowOutOfRange = errors.New("nested row index out of range")
	ErrTooManyRows   = errors.New("too many nested rows")
)

// LoadFailedMessage is shown when the employee list or a profile cannot load.
const LoadFailedMessage = "Failed to load employee data."

// RequiredFieldsMessage is shown when a profile save fails validation.
const RequiredFieldsMessage = "All fields marked as required must be filled."
