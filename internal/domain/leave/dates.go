package leave

import (
	"github.com/cmlabs-hris/personnel-web/internal/pkg/validator"
)

// CheckDateOrder returns ErrEndBeforeStart when both dates parse and end is
// before start. Unparseable or missing dates are left to presence checks.
func CheckDateOrder(start, end string) error {
	s, ok := validator.ParseISO(start)
	if !ok {
		return nil
	}
	e, ok := validator.ParseISO(end)
	if !ok {
		return nil
	}
	if e.Before(s) {
		return ErrEndBeforeStart
	}
	return nil
}
