package equipment

import "errors"

var ErrCategoriesUnavailable = errors.New("equipment categories unavailable")
