package api

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jakechorley/ilford-attendance/pkg/core/calendar"
	"github.com/jakechorley/ilford-attendance/pkg/db"
)

// fakeStore is an in-memory Store for handler tests
type fakeStore struct {
	users       []db.User
	volunteers  []db.Volunteer
	groups      []db.Group
	leaders     map[string][]string // volunteer id -> led group ids
	members     map[string][]string // group id -> member volunteer ids
	attendances []db.Attendance
	settings    map[string]string
	roleChange  *db.RoleChange
	pingErr     error
}

func (s *fakeStore) Ping(ctx context.Context) error {
	return s.pingErr
}

func (s *fakeStore) GetUserByEmail(ctx context.Context, email string) (*db.User, error) {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) GetUserByVolunteerID(ctx context.Context, volunteerID string) (*db.User, error) {
	for _, u := range s.users {
		if u.VolunteerID != "" && u.VolunteerID == volunteerID {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) GetGroup(ctx context.Context, id string) (*db.Group, error) {
	for _, g := range s.groups {
		if g.ID == id {
			group := g
			return &group, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) GetLedGroups(ctx context.Context, volunteerID string) ([]db.Group, error) {
	var result []db.Group
	for _, id := range s.leaders[volunteerID] {
		g, _ := s.GetGroup(ctx, id)
		if g != nil {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (s *fakeStore) GetGroupsByDay(ctx context.Context, day db.DayOfWeek) ([]db.Group, error) {
	var result []db.Group
	for _, g := range s.groups {
		if g.DayOfWeek == day {
			result = append(result, g)
		}
	}
	return result, nil
}

func (s *fakeStore) GetVolunteer(ctx context.Context, id string) (*db.Volunteer, error) {
	for _, v := range s.volunteers {
		if v.ID == id {
			vol := v
			return &vol, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) GetRosterVolunteers(ctx context.Context, groupIDs []string) ([]db.Volunteer, error) {
	seen := make(map[string]bool)
	var result []db.Volunteer
	for _, gid := range groupIDs {
		for _, vid := range s.members[gid] {
			if seen[vid] {
				continue
			}
			seen[vid] = true
			v, _ := s.GetVolunteer(ctx, vid)
			if v != nil && v.Status == db.VolunteerActive {
				result = append(result, *v)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *fakeStore) GetActiveGroupMembers(ctx context.Context, groupID string) ([]db.Volunteer, error) {
	return s.GetRosterVolunteers(ctx, []string{groupID})
}

func (s *fakeStore) GetFreeDayCandidates(ctx context.Context, excludedIDs []string, from, to time.Time) ([]db.Volunteer, error) {
	excluded := make(map[string]bool)
	for _, id := range excludedIDs {
		excluded[id] = true
	}

	var result []db.Volunteer
	for _, v := range s.volunteers {
		if excluded[v.ID] || v.Status != db.VolunteerActive {
			continue
		}
		marked, _ := s.GetAttendancesInRange(ctx, []string{v.ID}, from, to)
		if len(marked) == 0 {
			result = append(result, v)
		}
	}
	return result, nil
}

func (s *fakeStore) GetSetting(ctx context.Context, key string) (*db.Setting, error) {
	value, ok := s.settings[key]
	if !ok {
		return nil, nil
	}
	return &db.Setting{Key: key, Value: value}, nil
}

func (s *fakeStore) GetAttendancesInRange(ctx context.Context, volunteerIDs []string, from, to time.Time) ([]db.Attendance, error) {
	wanted := make(map[string]bool)
	for _, id := range volunteerIDs {
		wanted[id] = true
	}

	var result []db.Attendance
	for _, a := range s.attendances {
		if wanted[a.VolunteerID] && !a.Date.Before(from) && !a.Date.After(to) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (s *fakeStore) hasRecordOn(volunteerID string, day time.Time) bool {
	for _, a := range s.attendances {
		if a.VolunteerID == volunteerID && calendar.SameDay(day, a.Date) {
			return true
		}
	}
	return false
}

func (s *fakeStore) InsertAttendances(ctx context.Context, attendances []db.Attendance) error {
	for _, a := range attendances {
		if s.hasRecordOn(a.VolunteerID, a.Date) {
			return db.ErrDuplicateAttendance
		}
	}
	s.attendances = append(s.attendances, attendances...)
	return nil
}

func (s *fakeStore) InsertMissingAttendances(ctx context.Context, attendances []db.Attendance) (int, error) {
	created := 0
	for _, a := range attendances {
		if s.hasRecordOn(a.VolunteerID, a.Date) {
			continue
		}
		s.attendances = append(s.attendances, a)
		created++
	}
	return created, nil
}

func (s *fakeStore) CountAttendanceByStatus(ctx context.Context, volunteerID string) (map[db.AttendanceStatus]int, error) {
	counts := make(map[db.AttendanceStatus]int)
	for _, a := range s.attendances {
		if a.VolunteerID == volunteerID {
			counts[a.Status]++
		}
	}
	return counts, nil
}

func (s *fakeStore) ReassignRole(ctx context.Context, change db.RoleChange) error {
	s.roleChange = &change
	return nil
}
