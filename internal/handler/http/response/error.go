package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/personnel-web/internal/crud"
	"github.com/cmlabs-hris/personnel-web/internal/domain/auth"
	"github.com/cmlabs-hris/personnel-web/internal/domain/equipment"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/apiclient"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/validator"
	"github.com/cmlabs-hris/personnel-web/internal/service/lookup"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Session errors
	case errors.Is(err, auth.ErrSessionNotFound),
		errors.Is(err, auth.ErrSessionExpired),
		errors.Is(err, apiclient.ErrUnauthorized):
		Unauthorized(w, "Session expired. Please sign in again.")
	case errors.Is(err, apiclient.ErrForbidden):
		Forbidden(w, "You do not have access to this resource")

	// Lookup errors
	case errors.Is(err, lookup.ErrUnknownLookup):
		NotFound(w, "Lookup not found")
	case errors.Is(err, equipment.ErrCategoriesUnavailable):
		BadGateway(w, "Equipment categories are unavailable")

	// Engine errors
	case errors.Is(err, crud.ErrNotPermitted):
		Forbidden(w, "Action not permitted")
	case errors.Is(err, apiclient.ErrNotFound):
		NotFound(w, "Record not found")
	case errors.Is(err, apiclient.ErrBadRequest):
		BadRequest(w, "The backend rejected the request", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
