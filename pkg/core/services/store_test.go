package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jakechorley/ilford-attendance/pkg/db"
)

// memStore is an in-memory implementation of the service store interfaces
type memStore struct {
	volunteers  []db.Volunteer
	users       []db.User
	groups      []db.Group
	members     []db.GroupMember
	attendances []db.Attendance
	settings    map[string]string

	failWith   error // returned by every read when set
	insertErr  error // returned by inserts when set
	roleChange *db.RoleChange
}

func (m *memStore) GetUserByEmail(ctx context.Context, email string) (*db.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetUserByVolunteerID(ctx context.Context, volunteerID string) (*db.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, u := range m.users {
		if u.VolunteerID == volunteerID {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetVolunteer(ctx context.Context, id string) (*db.Volunteer, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, v := range m.volunteers {
		if v.ID == id && v.DeletedAt == nil {
			v := v
			return &v, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetGroup(ctx context.Context, id string) (*db.Group, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, g := range m.groups {
		if g.ID == id && g.DeletedAt == nil {
			g := g
			return &g, nil
		}
	}
	return nil, nil
}

func (m *memStore) group(id string) *db.Group {
	for _, g := range m.groups {
		if g.ID == id && g.DeletedAt == nil {
			g := g
			return &g
		}
	}
	return nil
}

func (m *memStore) GetLedGroups(ctx context.Context, volunteerID string) ([]db.Group, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var result []db.Group
	for _, gm := range m.members {
		if gm.VolunteerID != volunteerID || gm.Role != db.MemberLeader || gm.DeletedAt != nil {
			continue
		}
		if g := m.group(gm.GroupID); g != nil {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (m *memStore) GetGroupsByDay(ctx context.Context, day db.DayOfWeek) ([]db.Group, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var result []db.Group
	for _, g := range m.groups {
		if g.DayOfWeek == day && g.DeletedAt == nil {
			result = append(result, g)
		}
	}
	return result, nil
}

func (m *memStore) isAdminOwned(volunteerID string) bool {
	for _, u := range m.users {
		if u.VolunteerID == volunteerID && u.Role == db.RoleAdmin {
			return true
		}
	}
	return false
}

func (m *memStore) memberOf(volunteerID string, groupIDs map[string]bool) bool {
	for _, gm := range m.members {
		if gm.VolunteerID == volunteerID && gm.DeletedAt == nil && groupIDs[gm.GroupID] && m.group(gm.GroupID) != nil {
			return true
		}
	}
	return false
}

func sortVolunteers(volunteers []db.Volunteer) {
	sort.Slice(volunteers, func(i, j int) bool {
		return volunteers[i].Name < volunteers[j].Name
	})
}

func (m *memStore) GetRosterVolunteers(ctx context.Context, groupIDs []string) ([]db.Volunteer, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	ids := toSet(groupIDs)
	var result []db.Volunteer
	for _, v := range m.volunteers {
		if v.Status != db.VolunteerActive || v.DeletedAt != nil || m.isAdminOwned(v.ID) {
			continue
		}
		if m.memberOf(v.ID, ids) {
			result = append(result, v)
		}
	}
	sortVolunteers(result)
	return result, nil
}

func (m *memStore) GetActiveGroupMembers(ctx context.Context, groupID string) ([]db.Volunteer, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var result []db.Volunteer
	for _, v := range m.volunteers {
		if v.Status != db.VolunteerActive || v.DeletedAt != nil {
			continue
		}
		if m.memberOf(v.ID, map[string]bool{groupID: true}) {
			result = append(result, v)
		}
	}
	sortVolunteers(result)
	return result, nil
}

func (m *memStore) GetFreeDayCandidates(ctx context.Context, excludedIDs []string, from, to time.Time) ([]db.Volunteer, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	excluded := toSet(excludedIDs)
	var result []db.Volunteer
	for _, v := range m.volunteers {
		if v.Status != db.VolunteerActive || v.DeletedAt != nil || m.isAdminOwned(v.ID) || excluded[v.ID] {
			continue
		}
		existing, _ := m.GetAttendancesInRange(ctx, []string{v.ID}, from, to)
		if len(existing) == 0 {
			result = append(result, v)
		}
	}
	sortVolunteers(result)
	return result, nil
}

func (m *memStore) GetSetting(ctx context.Context, key string) (*db.Setting, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	value, ok := m.settings[key]
	if !ok {
		return nil, nil
	}
	return &db.Setting{Key: key, Value: value}, nil
}

func (m *memStore) PutSetting(ctx context.Context, key, value string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.settings[key] = value
	return nil
}

func (m *memStore) GetAttendancesInRange(ctx context.Context, volunteerIDs []string, from, to time.Time) ([]db.Attendance, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	ids := toSet(volunteerIDs)
	var result []db.Attendance
	for _, a := range m.attendances {
		if !ids[a.VolunteerID] || a.DeletedAt != nil {
			continue
		}
		if a.Date.Before(from) || a.Date.After(to) {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (m *memStore) InsertAttendances(ctx context.Context, attendances []db.Attendance) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.attendances = append(m.attendances, attendances...)
	return nil
}

func (m *memStore) InsertMissingAttendances(ctx context.Context, attendances []db.Attendance) (int, error) {
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	m.attendances = append(m.attendances, attendances...)
	return len(attendances), nil
}

func (m *memStore) CountAttendanceByStatus(ctx context.Context, volunteerID string) (map[db.AttendanceStatus]int, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	counts := make(map[db.AttendanceStatus]int)
	for _, a := range m.attendances {
		if a.VolunteerID == volunteerID && a.DeletedAt == nil {
			counts[a.Status]++
		}
	}
	return counts, nil
}

func (m *memStore) ReassignRole(ctx context.Context, change db.RoleChange) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	if change.ResetLeadership {
		for i := range m.members {
			if m.members[i].VolunteerID == change.VolunteerID && m.members[i].Role == db.MemberLeader {
				m.members[i].Role = db.MemberMember
			}
		}
	}
	if change.GroupID != "" {
		promoted := false
		for i := range m.members {
			if m.members[i].VolunteerID == change.VolunteerID && m.members[i].GroupID == change.GroupID {
				m.members[i].Role = db.MemberLeader
				promoted = true
			}
		}
		if !promoted {
			m.members = append(m.members, db.GroupMember{
				ID:          "gm-new",
				VolunteerID: change.VolunteerID,
				GroupID:     change.GroupID,
				Role:        db.MemberLeader,
			})
		}
	}
	for i := range m.users {
		if m.users[i].ID == change.UserID {
			m.users[i].Role = change.Role
		}
	}
	c := change
	m.roleChange = &c
	return nil
}

// countFor returns the number of attendance records stored for a volunteer
func (m *memStore) countFor(volunteerID string) int {
	n := 0
	for _, a := range m.attendances {
		if a.VolunteerID == volunteerID {
			n++
		}
	}
	return n
}
