package crud

import "errors"

var (
	ErrNotConfirmed = errors.New("delete not confirmed")
	ErrNoSelection  = errors.New("no record selected for edit")
	ErrNotPermitted = errors.New("action not permitted for this list")
	ErrMissingID    = errors.New("record id is required")
)

// SaveFailedMessage is shown in the dialog when the backend rejects a save.
const SaveFailedMessage = "Could not save. Please try again."
