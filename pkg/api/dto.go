package api

import (
	"time"

	"github.com/jakechorley/ilford-attendance/pkg/core/model"
	"github.com/jakechorley/ilford-attendance/pkg/db"
)

type attendanceJSON struct {
	ID          string `json:"id"`
	VolunteerID string `json:"volunteerId,omitempty"`
	Date        string `json:"date"`
	Status      string `json:"status"`
	Label       string `json:"label,omitempty"`
	Source      string `json:"source,omitempty"`
	Note        string `json:"note,omitempty"`
}

type rosterEntryJSON struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Status          string          `json:"status"`
	Avatar          *string         `json:"avatar"`
	AttendanceToday *attendanceJSON `json:"attendanceToday"`
}

type rosterJSON struct {
	Eligible   bool              `json:"eligible"`
	Day        string            `json:"day,omitempty"`
	GroupIDs   []string          `json:"groupIds"`
	Volunteers []rosterEntryJSON `json:"volunteers"`
}

type volunteerJSON struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Status string  `json:"status"`
	Avatar *string `json:"avatar"`
}

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func avatarOf(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toRosterJSON(r *model.Roster) rosterJSON {
	out := rosterJSON{
		GroupIDs:   []string{},
		Volunteers: []rosterEntryJSON{},
	}
	if r == nil {
		return out
	}

	out.Eligible = r.Eligible
	out.Day = string(r.Day)
	if r.GroupIDs != nil {
		out.GroupIDs = r.GroupIDs
	}
	for _, e := range r.Entries {
		entry := rosterEntryJSON{
			ID:     e.ID,
			Name:   e.Name,
			Email:  e.Email,
			Status: string(e.Status),
			Avatar: e.Avatar,
		}
		if s := e.AttendanceToday; s != nil {
			entry.AttendanceToday = &attendanceJSON{
				ID:     s.ID,
				Date:   formatDate(s.Date),
				Status: string(s.Status),
				Label:  string(s.Label),
				Source: s.Source,
			}
		}
		out.Volunteers = append(out.Volunteers, entry)
	}
	return out
}

func toVolunteerJSON(v db.Volunteer) volunteerJSON {
	return volunteerJSON{
		ID:     v.ID,
		Name:   v.Name,
		Email:  v.Email,
		Status: string(v.Status),
		Avatar: avatarOf(v.Avatar),
	}
}

func toAttendanceJSON(a db.Attendance) attendanceJSON {
	return attendanceJSON{
		ID:          a.ID,
		VolunteerID: a.VolunteerID,
		Date:        formatDate(a.Date),
		Status:      string(a.Status),
		Source:      a.Source,
		Note:        a.Note,
	}
}
