package model

import (
	"time"

	"github.com/jakechorley/ilford-attendance/pkg/core/calendar"
	"github.com/jakechorley/ilford-attendance/pkg/db"
)

// Caller is the resolved identity of whoever invokes an engine operation
type Caller struct {
	UserID      string
	VolunteerID string // empty if the user has no volunteer record
	Email       string
	Role        db.Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == db.RoleAdmin
}

// CallerKind is either AdminCaller or GroupLeaderCaller
type CallerKind interface {
	isCallerKind()
}

// AdminCaller is an ADMIN user. LedGroupIDs may be empty.
type AdminCaller struct {
	LedGroupIDs []string
}

// GroupLeaderCaller is a non-admin user leading exactly one group
type GroupLeaderCaller struct {
	Group db.Group
}

func (AdminCaller) isCallerKind()       {}
func (GroupLeaderCaller) isCallerKind() {}

// AttendanceSnapshot is the attendance record for the current day
type AttendanceSnapshot struct {
	ID     string
	Date   time.Time
	Status db.AttendanceStatus
	Label  calendar.Label
	Source string
}

// RosterEntry is one volunteer visible to the caller for today's marking
type RosterEntry struct {
	ID              string
	Name            string
	Email           string
	Status          db.VolunteerStatus
	Avatar          *string
	AttendanceToday *AttendanceSnapshot
}

// Roster is the list of volunteers the caller may mark today
type Roster struct {
	Eligible bool
	Day      db.DayOfWeek
	GroupIDs []string
	Entries  []RosterEntry // ordered by name
}
