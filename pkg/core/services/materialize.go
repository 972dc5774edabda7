package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/ilford-attendance/pkg/core/calendar"
	"github.com/jakechorley/ilford-attendance/pkg/db"
)

// MaterializeStore defines the database operations needed to seed today's absences
type MaterializeStore interface {
	db.GroupStore
	GetActiveGroupMembers(ctx context.Context, groupID string) ([]db.Volunteer, error)
	GetAttendancesInRange(ctx context.Context, volunteerIDs []string, from, to time.Time) ([]db.Attendance, error)
	InsertMissingAttendances(ctx context.Context, attendances []db.Attendance) (int, error)
}

// MaterializeResult reports the outcome of MaterializeToday
type MaterializeResult struct {
	GroupID      string
	CreatedCount int
	Holiday      bool
}

// MaterializeToday creates an ABSENT record for every active member of the
// group led by volunteerID who has no attendance on the day of now.
// Calling it again on the same day creates nothing.
func MaterializeToday(
	ctx context.Context,
	store MaterializeStore,
	logger *zap.Logger,
	holidays calendar.Holidays,
	volunteerID string,
	now time.Time,
) (*MaterializeResult, error) {
	logger.Debug("Materializing today's attendance", zap.String("volunteer_id", volunteerID), zap.Time("now", now))

	// Step 1: Resolve the led group
	group, err := GroupLedBy(ctx, store, logger, volunteerID)
	if err != nil {
		logger.Error("Failed to resolve led group", zap.String("volunteer_id", volunteerID), zap.Error(err))
		return nil, internal(err)
	}
	if group == nil {
		return nil, notFound(MsgGroupNotFound)
	}

	result := &MaterializeResult{GroupID: group.ID}

	if holidays.Contains(now) {
		logger.Info("Today is a holiday, no absences created", zap.String("group_id", group.ID))
		result.Holiday = true
		return result, nil
	}

	// Step 2: Day window
	start, end := calendar.DayWindow(now)

	// Step 3: Active members
	members, err := store.GetActiveGroupMembers(ctx, group.ID)
	if err != nil {
		logger.Error("Failed to fetch group members", zap.String("group_id", group.ID), zap.Error(err))
		return nil, internal(err)
	}
	if len(members) == 0 {
		logger.Info("Group has no active members", zap.String("group_id", group.ID))
		return result, nil
	}

	// Step 4: Existing records in the window
	existing, err := store.GetAttendancesInRange(ctx, getVolunteerIDs(members), start, end)
	if err != nil {
		logger.Error("Failed to fetch existing attendance", zap.String("group_id", group.ID), zap.Error(err))
		return nil, internal(err)
	}

	// Step 5: Members lacking a record
	marked := make(map[string]bool, len(existing))
	for _, a := range existing {
		marked[a.VolunteerID] = true
	}

	var missing []db.Attendance
	for _, m := range members {
		if marked[m.ID] {
			continue
		}
		missing = append(missing, db.Attendance{
			ID:          uuid.New().String(),
			VolunteerID: m.ID,
			Date:        now,
			Status:      db.AttendanceAbsent,
		})
	}

	logger.Debug("Computed missing attendance",
		zap.String("group_id", group.ID),
		zap.Int("members", len(members)),
		zap.Int("existing", len(existing)),
		zap.Int("missing", len(missing)))

	if len(missing) == 0 {
		return result, nil
	}

	// Step 6: Bulk insert; rows created concurrently by another caller are skipped
	created, err := store.InsertMissingAttendances(ctx, missing)
	if err != nil {
		logger.Error("Failed to insert absences", zap.String("group_id", group.ID), zap.Error(err))
		return nil, internal(err)
	}
	result.CreatedCount = created

	logger.Info("Absences materialized",
		zap.String("group_id", group.ID),
		zap.Int("created", created))

	return result, nil
}
