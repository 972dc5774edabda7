package db

import "time"

// VolunteerStatus is the lifecycle state of a volunteer
type VolunteerStatus string

const (
	VolunteerActive    VolunteerStatus = "ACTIVE"
	VolunteerInactive  VolunteerStatus = "INACTIVE"
	VolunteerSuspended VolunteerStatus = "SUSPENDED"
)

// Role is the permission level of an application user.
// Ordered VOLUNTEER < MANAGER < ADMIN.
type Role string

const (
	RoleVolunteer Role = "VOLUNTEER"
	RoleManager   Role = "MANAGER"
	RoleAdmin     Role = "ADMIN"
)

func (r Role) IsValid() bool {
	return r == RoleVolunteer || r == RoleManager || r == RoleAdmin
}

// Rank returns the position of the role in the permission hierarchy
func (r Role) Rank() int {
	switch r {
	case RoleVolunteer:
		return 1
	case RoleManager:
		return 2
	case RoleAdmin:
		return 3
	}
	return 0
}

// DayOfWeek is the weekday token a group is scheduled on
type DayOfWeek string

const (
	Lunes         DayOfWeek = "LUNES"
	Martes        DayOfWeek = "MARTES"
	Miercoles     DayOfWeek = "MIERCOLES"
	Jueves        DayOfWeek = "JUEVES"
	Viernes       DayOfWeek = "VIERNES"
	Sabado        DayOfWeek = "SABADO"
	SabadoManiana DayOfWeek = "SABADO_MANIANA"
	SabadoTarde   DayOfWeek = "SABADO_TARDE"
	Domingo       DayOfWeek = "DOMINGO"
)

func (d DayOfWeek) IsValid() bool {
	switch d {
	case Lunes, Martes, Miercoles, Jueves, Viernes, Sabado, SabadoManiana, SabadoTarde, Domingo:
		return true
	}
	return false
}

// MemberRole is the role a volunteer holds inside a group
type MemberRole string

const (
	MemberLeader MemberRole = "LEADER"
	MemberMember MemberRole = "MEMBER"
)

// AttendanceStatus is the outcome recorded for a volunteer on a day
type AttendanceStatus string

const (
	AttendancePresent   AttendanceStatus = "PRESENT"
	AttendanceAbsent    AttendanceStatus = "ABSENT"
	AttendanceJustified AttendanceStatus = "JUSTIFIED"
	AttendanceLate      AttendanceStatus = "LATE"
)

func (s AttendanceStatus) IsValid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceJustified, AttendanceLate:
		return true
	}
	return false
}

// Volunteer represents a database volunteer record
type Volunteer struct {
	ID        string
	Name      string
	Email     string
	Status    VolunteerStatus
	Birthday  *time.Time
	Avatar    string // empty if no avatar
	DeletedAt *time.Time
}

// User represents an authentication identity, usually paired with a volunteer
type User struct {
	ID          string
	Email       string
	Role        Role
	VolunteerID string // empty if the user has no volunteer record
}

// Group represents one weekday's volunteer cohort
type Group struct {
	ID        string
	Name      string
	DayOfWeek DayOfWeek
	DeletedAt *time.Time
}

// GroupMember joins a volunteer to a group
type GroupMember struct {
	ID          string
	VolunteerID string
	GroupID     string
	Role        MemberRole
	DeletedAt   *time.Time
}

// Attendance represents a database attendance record
type Attendance struct {
	ID          string
	VolunteerID string
	Date        time.Time
	Status      AttendanceStatus
	Source      string // empty means default provenance
	Note        string
	DeletedAt   *time.Time
}

// Setting is a generic key/value record
type Setting struct {
	Key   string
	Value string
}
