package services

import (
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jakechorley/ilford-attendance/pkg/core/model"
	"github.com/jakechorley/ilford-attendance/pkg/db"
)

var validate = validator.New()

// getVolunteerIDs extracts volunteer IDs
func getVolunteerIDs(volunteers []db.Volunteer) []string {
	ids := make([]string, len(volunteers))
	for i, v := range volunteers {
		ids[i] = v.ID
	}
	return ids
}

// firstAttendanceByVolunteer keeps the earliest record per volunteer
func firstAttendanceByVolunteer(attendances []db.Attendance) map[string]db.Attendance {
	byVolunteer := make(map[string]db.Attendance, len(attendances))
	for _, a := range attendances {
		existing, exists := byVolunteer[a.VolunteerID]
		if !exists || a.Date.Before(existing.Date) {
			byVolunteer[a.VolunteerID] = a
		}
	}
	return byVolunteer
}

// sortEntriesByName sorts roster entries case-insensitively by name, then ID
func sortEntriesByName(entries []model.RosterEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := strings.ToLower(entries[i].Name), strings.ToLower(entries[j].Name)
		if a != b {
			return a < b
		}
		return entries[i].ID < entries[j].ID
	})
}

// toSet builds a lookup set from a list of IDs
func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
