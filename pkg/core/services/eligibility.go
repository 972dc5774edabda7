package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/ilford-attendance/pkg/core/calendar"
	"github.com/jakechorley/ilford-attendance/pkg/core/model"
	"github.com/jakechorley/ilford-attendance/pkg/db"
)

// RosterStore defines the database operations needed to build a roster
type RosterStore interface {
	db.GroupStore
	GetRosterVolunteers(ctx context.Context, groupIDs []string) ([]db.Volunteer, error)
	GetAttendancesInRange(ctx context.Context, volunteerIDs []string, from, to time.Time) ([]db.Attendance, error)
}

// Eligible reports whether the caller may mark attendance on the day of now.
//
// An admin is eligible whenever they lead any group, independent of the day.
// A group leader is eligible on any Saturday, or when today's token matches
// the led group's day.
func Eligible(kind model.CallerKind, now time.Time) bool {
	switch k := kind.(type) {
	case model.AdminCaller:
		return len(k.LedGroupIDs) > 0
	case model.GroupLeaderCaller:
		if calendar.IsSaturday(now) {
			return true
		}
		return calendar.WeekdayOf(now) == k.Group.DayOfWeek
	}
	return false
}

// TodayRoster builds the list of volunteers the caller can mark on the day of now.
// Returns nil when there is no caller, or when a non-admin caller leads no group.
func TodayRoster(ctx context.Context, store RosterStore, logger *zap.Logger, caller *model.Caller, now time.Time) (*model.Roster, error) {
	if caller == nil {
		logger.Debug("No caller, returning empty roster")
		return nil, nil
	}

	kind, err := ClassifyCaller(ctx, store, logger, *caller)
	if err != nil {
		logger.Error("Failed to classify caller", zap.String("email", caller.Email), zap.Error(err))
		return nil, internal(err)
	}
	if kind == nil {
		logger.Info("Caller leads no group", zap.String("email", caller.Email))
		return nil, nil
	}

	roster := &model.Roster{Eligible: Eligible(kind, now)}

	switch k := kind.(type) {
	case model.AdminCaller:
		roster.Day = calendar.AdminWeekdayOf(now)
		groups, err := GroupsForWeekday(ctx, store, roster.Day)
		if err != nil {
			logger.Error("Failed to fetch today's groups", zap.String("day", string(roster.Day)), zap.Error(err))
			return nil, internal(err)
		}
		for _, g := range groups {
			roster.GroupIDs = append(roster.GroupIDs, g.ID)
		}
	case model.GroupLeaderCaller:
		roster.Day = calendar.WeekdayOf(now)
		roster.GroupIDs = []string{k.Group.ID}
	}

	logger.Debug("Resolved roster scope",
		zap.String("email", caller.Email),
		zap.Bool("eligible", roster.Eligible),
		zap.String("day", string(roster.Day)),
		zap.Strings("group_ids", roster.GroupIDs))

	if len(roster.GroupIDs) == 0 {
		roster.Entries = []model.RosterEntry{}
		return roster, nil
	}

	volunteers, err := store.GetRosterVolunteers(ctx, roster.GroupIDs)
	if err != nil {
		logger.Error("Failed to fetch roster volunteers", zap.Error(err))
		return nil, internal(err)
	}

	start, end := calendar.DayWindow(now)
	attendances, err := store.GetAttendancesInRange(ctx, getVolunteerIDs(volunteers), start, end)
	if err != nil {
		logger.Error("Failed to fetch today's attendance", zap.Error(err))
		return nil, internal(err)
	}
	today := firstAttendanceByVolunteer(attendances)

	roster.Entries = make([]model.RosterEntry, 0, len(volunteers))
	for _, v := range volunteers {
		entry := model.RosterEntry{
			ID:     v.ID,
			Name:   v.Name,
			Email:  v.Email,
			Status: v.Status,
		}
		if v.Avatar != "" {
			avatar := v.Avatar
			entry.Avatar = &avatar
		}
		if a, ok := today[v.ID]; ok {
			snapshot, err := snapshotOf(a)
			if err != nil {
				logger.Error("Attendance has unknown status",
					zap.String("attendance_id", a.ID),
					zap.String("status", string(a.Status)))
				return nil, internal(err)
			}
			entry.AttendanceToday = snapshot
		}
		roster.Entries = append(roster.Entries, entry)
	}
	sortEntriesByName(roster.Entries)

	logger.Info("Roster built",
		zap.String("email", caller.Email),
		zap.Int("volunteers", len(roster.Entries)),
		zap.Int("marked", len(today)))

	return roster, nil
}

func snapshotOf(a db.Attendance) (*model.AttendanceSnapshot, error) {
	label, err := calendar.StatusLabel(a.Status)
	if err != nil {
		return nil, err
	}
	return &model.AttendanceSnapshot{
		ID:     a.ID,
		Date:   a.Date,
		Status: a.Status,
		Label:  label,
		Source: a.Source,
	}, nil
}
