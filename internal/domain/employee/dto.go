package employee

import (
	"github.com/cmlabs-hris/personnel-web/internal/pkg/validator"
)

// UpdateProfileRequest is the editable part of the profile screen.
type UpdateProfileRequest struct {
	Name         string
	Phone        string
	RegimentalNo string
	Role         string
	Rank         string
	DOB          string
	DOJ          string
	Courses      []Course
	Equipment    []Equipment
}

// Validate checks the fields the profile screen marks as required.
func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	required := []struct {
		field, label, value string
	}{
		{"name", "Name", r.Name},
		{"role", "Role", r.Role},
		{"rank", "Rank", r.Rank},
		{"dob", "Date of Birth", r.DOB},
		{"doj", "Date of Joining", r.DOJ},
	}
	for _, f := range required {
		if validator.IsEmpty(f.value) {
			errs = append(errs, validator.ValidationError{
				Field:   f.field,
				Message: f.label + " is required",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
