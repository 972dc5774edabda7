package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/ilford-attendance/pkg/core/model"
	"github.com/jakechorley/ilford-attendance/pkg/db"
)

// Reference days in January 2025
var (
	sunday    = time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	monday    = time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)
	tuesday   = time.Date(2025, 1, 7, 10, 0, 0, 0, time.UTC)
	wednesday = time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)
	thursday  = time.Date(2025, 1, 9, 10, 0, 0, 0, time.UTC)
	friday    = time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)
	saturday  = time.Date(2025, 1, 11, 10, 0, 0, 0, time.UTC)
)

// newFixture builds a store with one group per relevant weekday.
//
//	g-lun  LUNES           alice (LEADER, admin), ivan
//	g-jue  JUEVES          bob (LEADER, manager), carol, dave (inactive), erin (deleted), zoe (admin-owned)
//	g-sabm SABADO_MANIANA  frank
//	g-sabt SABADO_TARDE    gina
//	g-old  JUEVES          deleted group
//	hank only belongs to g-old
func newFixture() *memStore {
	deleted := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	return &memStore{
		volunteers: []db.Volunteer{
			{ID: "alice", Name: "Alice", Email: "alice@example.com", Status: db.VolunteerActive},
			{ID: "bob", Name: "Bob", Email: "bob@example.com", Status: db.VolunteerActive, Avatar: "bob.png"},
			{ID: "carol", Name: "Carol", Email: "carol@example.com", Status: db.VolunteerActive},
			{ID: "dave", Name: "Dave", Email: "dave@example.com", Status: db.VolunteerInactive},
			{ID: "erin", Name: "Erin", Email: "erin@example.com", Status: db.VolunteerActive, DeletedAt: &deleted},
			{ID: "frank", Name: "Frank", Email: "frank@example.com", Status: db.VolunteerActive},
			{ID: "gina", Name: "Gina", Email: "gina@example.com", Status: db.VolunteerActive},
			{ID: "hank", Name: "Hank", Email: "hank@example.com", Status: db.VolunteerActive},
			{ID: "ivan", Name: "Ivan", Email: "ivan@example.com", Status: db.VolunteerActive},
			{ID: "zoe", Name: "Zoe", Email: "zoe@example.com", Status: db.VolunteerActive},
		},
		users: []db.User{
			{ID: "u-alice", Email: "alice@example.com", Role: db.RoleAdmin, VolunteerID: "alice"},
			{ID: "u-bob", Email: "bob@example.com", Role: db.RoleManager, VolunteerID: "bob"},
			{ID: "u-carol", Email: "carol@example.com", Role: db.RoleVolunteer, VolunteerID: "carol"},
			{ID: "u-root", Email: "root@example.com", Role: db.RoleAdmin},
			{ID: "u-zoe", Email: "zoe@example.com", Role: db.RoleAdmin, VolunteerID: "zoe"},
		},
		groups: []db.Group{
			{ID: "g-lun", Name: "Lunes", DayOfWeek: db.Lunes},
			{ID: "g-jue", Name: "Jueves", DayOfWeek: db.Jueves},
			{ID: "g-sabm", Name: "Sábado mañana", DayOfWeek: db.SabadoManiana},
			{ID: "g-sabt", Name: "Sábado tarde", DayOfWeek: db.SabadoTarde},
			{ID: "g-old", Name: "Jueves viejo", DayOfWeek: db.Jueves, DeletedAt: &deleted},
		},
		members: []db.GroupMember{
			{ID: "gm-1", VolunteerID: "alice", GroupID: "g-lun", Role: db.MemberLeader},
			{ID: "gm-2", VolunteerID: "ivan", GroupID: "g-lun", Role: db.MemberMember},
			{ID: "gm-3", VolunteerID: "bob", GroupID: "g-jue", Role: db.MemberLeader},
			{ID: "gm-4", VolunteerID: "carol", GroupID: "g-jue", Role: db.MemberMember},
			{ID: "gm-5", VolunteerID: "dave", GroupID: "g-jue", Role: db.MemberMember},
			{ID: "gm-6", VolunteerID: "erin", GroupID: "g-jue", Role: db.MemberMember},
			{ID: "gm-7", VolunteerID: "zoe", GroupID: "g-jue", Role: db.MemberMember},
			{ID: "gm-8", VolunteerID: "frank", GroupID: "g-sabm", Role: db.MemberMember},
			{ID: "gm-9", VolunteerID: "gina", GroupID: "g-sabt", Role: db.MemberMember},
			{ID: "gm-10", VolunteerID: "hank", GroupID: "g-old", Role: db.MemberMember},
		},
		settings: map[string]string{},
	}
}

func callerFor(t *testing.T, store *memStore, email string) *model.Caller {
	t.Helper()
	for _, u := range store.users {
		if u.Email == email {
			return &model.Caller{UserID: u.ID, VolunteerID: u.VolunteerID, Email: u.Email, Role: u.Role}
		}
	}
	require.FailNow(t, "unknown fixture user", email)
	return nil
}

func entryIDs(entries []model.RosterEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

func volunteerIDs(volunteers []db.Volunteer) []string {
	return getVolunteerIDs(volunteers)
}
