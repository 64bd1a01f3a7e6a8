package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/personnel-web/internal/handler/http/response"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/latest"
	"github.com/cmlabs-hris/personnel-web/internal/service/lookup"
)

type LookupHandler interface {
	Search(w http.ResponseWriter, r *http.Request)
}

type LookupHandlerImpl struct {
	*Console
	lookupService *lookup.Service
}

func NewLookupHandler(console *Console, lookupService *lookup.Service) LookupHandler {
	return &LookupHandlerImpl{Console: console, lookupService: lookupService}
}

// Search implements LookupHandler. A search replaced by a newer one from the
// same field answers 204 so the page keeps the newer result.
func (l *LookupHandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	q := r.URL.Query()
	key := l.sessionID(r) + "|" + q.Get("field")

	opts, err := l.lookupService.Search(r.Context(), l.backend(r), name, key, q.Get("search"))
	if err != nil {
		if errors.Is(err, latest.ErrSuperseded) {
			response.NoContent(w)
			return
		}
		slog.Error("Lookup search error", "lookup", name, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, opts)
}
