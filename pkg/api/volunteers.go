package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jakechorley/ilford-attendance/pkg/core/services"
	"github.com/jakechorley/ilford-attendance/pkg/db"
)

type historyBody struct {
	Present   int    `json:"present"`
	Late      int    `json:"late"`
	Absent    int    `json:"absent"`
	StartDate string `json:"startDate"`
}

type historyJSON struct {
	Success     bool             `json:"success"`
	Created     int              `json:"created"`
	Attendances []attendanceJSON `json:"attendances"`
}

// ServeSeedHistory handles POST /volunteers/{id}/history.
//
// Backfills consecutive days of attendance from startDate. Admin only.
func (h *Handler) ServeSeedHistory(w http.ResponseWriter, r *http.Request) {
	caller, _ := CurrentCaller(r)

	var body historyBody
	if err := decodeBody(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Solicitud inválida")
		return
	}

	result, err := services.SeedInitialHistory(r.Context(), h.Store, h.Log, caller, h.now().Location(), h.SeedSource, services.SeedRequest{
		VolunteerID: chi.URLParam(r, "id"),
		Present:     body.Present,
		Late:        body.Late,
		Absent:      body.Absent,
		StartDate:   body.StartDate,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := historyJSON{
		Success:     true,
		Created:     len(result.Attendances),
		Attendances: make([]attendanceJSON, 0, len(result.Attendances)),
	}
	for _, a := range result.Attendances {
		resp.Attendances = append(resp.Attendances, toAttendanceJSON(a))
	}
	writeJSON(w, http.StatusCreated, resp)
}

type roleBody struct {
	Role    string `json:"role"`
	GroupID string `json:"groupId,omitempty"`
}

type roleJSON struct {
	Success     bool   `json:"success"`
	UserID      string `json:"userId"`
	VolunteerID string `json:"volunteerId"`
	Role        string `json:"role"`
	GroupID     string `json:"groupId,omitempty"`
}

// ServeUpdateRole handles PUT /volunteers/{id}/role. Admin only.
func (h *Handler) ServeUpdateRole(w http.ResponseWriter, r *http.Request) {
	caller, _ := CurrentCaller(r)

	var body roleBody
	if err := decodeBody(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Solicitud inválida")
		return
	}

	change, err := services.UpdateVolunteerRole(r.Context(), h.Store, h.Log, caller, services.RoleUpdate{
		VolunteerID: chi.URLParam(r, "id"),
		Role:        db.Role(body.Role),
		GroupID:     body.GroupID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, roleJSON{
		Success:     true,
		UserID:      change.UserID,
		VolunteerID: change.VolunteerID,
		Role:        string(change.Role),
		GroupID:     change.GroupID,
	})
}

type summaryJSON struct {
	Volunteer volunteerJSON  `json:"volunteer"`
	Counts    map[string]int `json:"counts"`
	Total     int            `json:"total"`
}

// ServeSummary handles GET /volunteers/{id}/summary.
//
// Volunteers may only read their own summary; managers and admins may read any.
func (h *Handler) ServeSummary(w http.ResponseWriter, r *http.Request) {
	caller, _ := CurrentCaller(r)
	volunteerID := chi.URLParam(r, "id")

	if caller.Role.Rank() < db.RoleManager.Rank() && caller.VolunteerID != volunteerID {
		writeMessage(w, http.StatusForbidden, services.MsgForbidden)
		return
	}

	result, err := services.AttendanceSummary(r.Context(), h.Store, h.Log, volunteerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := summaryJSON{
		Volunteer: toVolunteerJSON(result.Volunteer),
		Counts:    make(map[string]int, len(result.Counts)),
		Total:     result.Total,
	}
	for status, n := range result.Counts {
		resp.Counts[string(status)] = n
	}
	writeJSON(w, http.StatusOK, resp)
}
