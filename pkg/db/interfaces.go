package db

import (
	"context"
	"time"
)

// UserStore defines the interface for user lookups
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByVolunteerID(ctx context.Context, volunteerID string) (*User, error)
}

// GroupStore defines the interface for group and leadership lookups
type GroupStore interface {
	GetGroup(ctx context.Context, id string) (*Group, error)
	GetLedGroups(ctx context.Context, volunteerID string) ([]Group, error)
	GetGroupsByDay(ctx context.Context, day DayOfWeek) ([]Group, error)
}

// AttendanceStore defines the interface for attendance reads and writes
type AttendanceStore interface {
	GetAttendancesInRange(ctx context.Context, volunteerIDs []string, from, to time.Time) ([]Attendance, error)
	InsertAttendances(ctx context.Context, attendances []Attendance) error
	InsertMissingAttendances(ctx context.Context, attendances []Attendance) (int, error)
	CountAttendanceByStatus(ctx context.Context, volunteerID string) (map[AttendanceStatus]int, error)
}

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	UserStore
	GroupStore
	AttendanceStore
	GetVolunteer(ctx context.Context, id string) (*Volunteer, error)
	GetRosterVolunteers(ctx context.Context, groupIDs []string) ([]Volunteer, error)
	GetActiveGroupMembers(ctx context.Context, groupID string) ([]Volunteer, error)
	GetFreeDayCandidates(ctx context.Context, excludedIDs []string, from, to time.Time) ([]Volunteer, error)
	GetSetting(ctx context.Context, key string) (*Setting, error)
	ReassignRole(ctx context.Context, change RoleChange) error
}

// RoleChange describes an atomic role reassignment for a volunteer.
// When ResetLeadership is set, all LEADER memberships of the volunteer are
// reset to MEMBER first. The volunteer is then made LEADER of GroupID (if
// set) and the user role is updated.
type RoleChange struct {
	UserID          string
	VolunteerID     string
	Role            Role
	GroupID         string // empty to only demote
	ResetLeadership bool
}
