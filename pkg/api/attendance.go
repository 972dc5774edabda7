package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/ilford-attendance/pkg/core/services"
	"github.com/jakechorley/ilford-attendance/pkg/db"
)

type materializeJSON struct {
	Success bool   `json:"success"`
	GroupID string `json:"groupId"`
	Created int    `json:"created"`
	Holiday bool   `json:"holiday"`
}

// ServeMaterialize handles POST /attendance/materialize.
//
// Creates today's ABSENT records for the group the caller leads.
func (h *Handler) ServeMaterialize(w http.ResponseWriter, r *http.Request) {
	caller, _ := CurrentCaller(r)

	result, err := services.MaterializeToday(r.Context(), h.Store, h.Log, h.Holidays, caller.VolunteerID, h.now())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, materializeJSON{
		Success: true,
		GroupID: result.GroupID,
		Created: result.CreatedCount,
		Holiday: result.Holiday,
	})
}

type freeDayJSON struct {
	Enabled    bool            `json:"enabled"`
	Volunteers []volunteerJSON `json:"volunteers"`
}

// ServeFreeDay handles GET /free-day?exclude=<id>&exclude=<id>.
//
// Lists active volunteers without an attendance today, minus the excluded ids.
func (h *Handler) ServeFreeDay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	enabled, err := services.FreeDayEnabled(ctx, h.Store)
	if err != nil {
		h.Log.Error("failed to read free-day setting", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, services.MsgInternal)
		return
	}

	volunteers, err := services.VolunteersEligibleForFreeDay(ctx, h.Store, h.Log, r.URL.Query()["exclude"], h.now())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := freeDayJSON{Enabled: enabled, Volunteers: make([]volunteerJSON, 0, len(volunteers))}
	for _, v := range volunteers {
		resp.Volunteers = append(resp.Volunteers, toVolunteerJSON(v))
	}
	writeJSON(w, http.StatusOK, resp)
}

type markBody struct {
	VolunteerID string `json:"volunteerId"`
	Status      string `json:"status"`
	Date        string `json:"date,omitempty"`
}

type markJSON struct {
	Success    bool           `json:"success"`
	Attendance attendanceJSON `json:"attendance"`
}

// ServeMarkFreeDay handles POST /free-day/attendance.
//
// Records an attendance on behalf of the caller for a volunteer outside
// their group. Responds 409 if the volunteer is already marked that day.
func (h *Handler) ServeMarkFreeDay(w http.ResponseWriter, r *http.Request) {
	caller, _ := CurrentCaller(r)

	var body markBody
	if err := decodeBody(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Solicitud inválida")
		return
	}

	date := h.now()
	if body.Date != "" {
		d, err := time.ParseInLocation(dateLayout, body.Date, date.Location())
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Fecha inválida")
			return
		}
		date = d
	}

	attendance, err := services.MarkAttendanceOfVolunteerByEmail(r.Context(), h.Store, h.Log, date.Location(), h.FreeDayNote, services.MarkRequest{
		ActorEmail:  caller.Email,
		VolunteerID: body.VolunteerID,
		Status:      db.AttendanceStatus(body.Status),
		Date:        date,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, markJSON{Success: true, Attendance: toAttendanceJSON(*attendance)})
}
