package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/ilford-attendance/pkg/db"
)

// SummaryStore defines the database operations needed for an attendance summary
type SummaryStore interface {
	GetVolunteer(ctx context.Context, id string) (*db.Volunteer, error)
	CountAttendanceByStatus(ctx context.Context, volunteerID string) (map[db.AttendanceStatus]int, error)
}

// AttendanceSummaryResult counts a volunteer's non-deleted attendance per status
type AttendanceSummaryResult struct {
	Volunteer db.Volunteer
	Counts    map[db.AttendanceStatus]int
	Total     int
}

// AttendanceSummary counts a volunteer's attendance records by status
func AttendanceSummary(ctx context.Context, store SummaryStore, logger *zap.Logger, volunteerID string) (*AttendanceSummaryResult, error) {
	volunteer, err := store.GetVolunteer(ctx, volunteerID)
	if err != nil {
		logger.Error("Failed to fetch volunteer", zap.String("volunteer_id", volunteerID), zap.Error(err))
		return nil, internal(err)
	}
	if volunteer == nil {
		return nil, notFound(MsgVolunteerNotFound)
	}

	counts, err := store.CountAttendanceByStatus(ctx, volunteerID)
	if err != nil {
		logger.Error("Failed to count attendance", zap.String("volunteer_id", volunteerID), zap.Error(err))
		return nil, internal(err)
	}

	result := &AttendanceSummaryResult{
		Volunteer: *volunteer,
		Counts:    make(map[db.AttendanceStatus]int, 4),
	}
	for _, status := range []db.AttendanceStatus{db.AttendancePresent, db.AttendanceLate, db.AttendanceJustified, db.AttendanceAbsent} {
		result.Counts[status] = counts[status]
		result.Total += counts[status]
	}

	return result, nil
}
