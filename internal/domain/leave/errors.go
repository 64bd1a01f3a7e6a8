package leave

import "errors"

var ErrEndBeforeStart = errors.New("end date is before start date")
