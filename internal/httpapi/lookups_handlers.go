package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"jobboard-engine/internal/store"
)

// LookupsHandler serves the value lists behind the UI's filter dropdowns.
type LookupsHandler struct {
	Store JobStore
	Log   *zap.Logger
}

func (h LookupsHandler) Locations(w http.ResponseWriter, r *http.Request) {
	h.distinct(w, r, store.FieldLocation)
}

func (h LookupsHandler) JobTypes(w http.ResponseWriter, r *http.Request) {
	h.distinct(w, r, store.FieldJobType)
}

func (h LookupsHandler) distinct(w http.ResponseWriter, r *http.Request, field string) {
	values, err := h.Store.DistinctValues(r.Context(), field)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	WriteJSON(w, http.StatusOK, values)
}
