package calendar

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/ilford-attendance/pkg/db"
)

// Label is the display token shown for an attendance status
type Label string

const (
	LabelPresent   Label = "presente"
	LabelAbsent    Label = "ausente"
	LabelJustified Label = "justificado"
	LabelLate      Label = "tarde"
)

// weekdayTokens is indexed by time.Weekday (0=Sunday..6=Saturday)
var weekdayTokens = [7]db.DayOfWeek{
	db.Domingo,
	db.Lunes,
	db.Martes,
	db.Miercoles,
	db.Jueves,
	db.Viernes,
	db.Sabado,
}

var statusLabels = map[db.AttendanceStatus]Label{
	db.AttendancePresent:   LabelPresent,
	db.AttendanceAbsent:    LabelAbsent,
	db.AttendanceJustified: LabelJustified,
	db.AttendanceLate:      LabelLate,
}

// WeekdayOf returns the weekday token used to resolve a manager's own group.
// Saturday maps to the plain SABADO token.
func WeekdayOf(t time.Time) db.DayOfWeek {
	return weekdayTokens[t.Weekday()]
}

// AdminWeekdayOf returns the weekday token used by the admin flow.
// Saturday maps to SABADO_MANIANA, so the admin roster on Saturdays only
// covers the morning shift groups.
// TODO: confirm with the schedule owners whether SABADO_TARDE groups should
// also be listed for admins on Saturdays.
func AdminWeekdayOf(t time.Time) db.DayOfWeek {
	if t.Weekday() == time.Saturday {
		return db.SabadoManiana
	}
	return weekdayTokens[t.Weekday()]
}

// IsSaturday reports whether t falls on any Saturday
func IsSaturday(t time.Time) bool {
	return t.Weekday() == time.Saturday
}

// StatusLabel maps an attendance status to its display label.
// Unknown statuses are an error; callers rely on a label always existing.
func StatusLabel(status db.AttendanceStatus) (Label, error) {
	label, ok := statusLabels[status]
	if !ok {
		return "", fmt.Errorf("no label for attendance status %q", status)
	}
	return label, nil
}

// DayWindow returns the first and last instant of the calendar day containing t
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}

// SameDay reports whether a and b fall on the same calendar day in a's location
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Days returns count consecutive calendar days starting at start
func Days(start time.Time, count int) ([]time.Time, error) {
	if count <= 0 {
		return nil, nil
	}

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Count:   count,
		Dtstart: start,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build day sequence: %w", err)
	}

	return r.All(), nil
}

// Holidays is a set of recurrence rules marking days without service
type Holidays []*rrule.RRule

// ParseHolidays parses RRULE strings into a Holidays set
func ParseHolidays(rules []string) (Holidays, error) {
	holidays := make(Holidays, 0, len(rules))
	for i, rule := range rules {
		r, err := rrule.StrToRRule(rule)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday rule %d: %w", i, err)
		}
		holidays = append(holidays, r)
	}
	return holidays, nil
}

// Contains reports whether the calendar day of t is an occurrence of any rule.
// Rules without an explicit DTSTART are anchored at the start of that day.
func (h Holidays) Contains(t time.Time) bool {
	start, end := DayWindow(t)
	for _, r := range h {
		rule := r
		if r.OrigOptions.Dtstart.IsZero() {
			opt := r.OrigOptions
			opt.Dtstart = start
			anchored, err := rrule.NewRRule(opt)
			if err != nil {
				continue
			}
			rule = anchored
		}
		if len(rule.Between(start, end, true)) > 0 {
			return true
		}
	}
	return false
}
