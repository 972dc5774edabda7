package api

import (
	"net/http"

	"github.com/jakechorley/ilford-attendance/pkg/core/services"
)

// ServeRoster handles GET /roster.
//
// Returns the volunteers the caller can mark today. A caller who leads no
// group gets an empty, ineligible roster.
func (h *Handler) ServeRoster(w http.ResponseWriter, r *http.Request) {
	caller, _ := CurrentCaller(r)

	roster, err := services.TodayRoster(r.Context(), h.Store, h.Log, caller, h.now())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toRosterJSON(roster))
}
