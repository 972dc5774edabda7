package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/ilford-attendance/pkg/core/calendar"
	"github.com/jakechorley/ilford-attendance/pkg/core/model"
	"github.com/jakechorley/ilford-attendance/pkg/db"
)

// DefaultSeedSource tags records created by SeedInitialHistory
const DefaultSeedSource = "initial_attendances"

// MaxSeedDays bounds the number of records a single backfill may create
const MaxSeedDays = 366

// SeedStore defines the database operations needed to backfill history
type SeedStore interface {
	GetVolunteer(ctx context.Context, id string) (*db.Volunteer, error)
	GetAttendancesInRange(ctx context.Context, volunteerIDs []string, from, to time.Time) ([]db.Attendance, error)
	InsertAttendances(ctx context.Context, attendances []db.Attendance) error
}

// SeedRequest describes a bulk backfill of a volunteer's attendance history
type SeedRequest struct {
	VolunteerID string `validate:"required"`
	Present     int    `validate:"min=0,max=366"`
	Late        int    `validate:"min=0,max=366"`
	Absent      int    `validate:"min=0,max=366"`
	StartDate   string `validate:"required,datetime=2006-01-02"`
}

func (r SeedRequest) total() int {
	return r.Present + r.Late + r.Absent
}

// SeedResult reports the records created by SeedInitialHistory
type SeedResult struct {
	Attendances []db.Attendance
}

// SeedInitialHistory creates one attendance per consecutive day from the start
// date: all present days first, then late days, then absent days. Fails if
// the volunteer already has a record on the start date. All records are
// written in a single transaction.
func SeedInitialHistory(
	ctx context.Context,
	store SeedStore,
	logger *zap.Logger,
	caller *model.Caller,
	loc *time.Location,
	source string,
	req SeedRequest,
) (*SeedResult, error) {
	if caller == nil || !caller.IsAdmin() {
		return nil, forbidden()
	}

	if err := validate.Struct(req); err != nil {
		return nil, invalid(fmt.Sprintf("Solicitud inválida: %v", err))
	}
	if req.total() == 0 {
		return nil, invalid("Debe indicar al menos una asistencia")
	}
	if req.total() > MaxSeedDays {
		return nil, invalid(fmt.Sprintf("No se pueden registrar más de %d asistencias", MaxSeedDays))
	}
	if source == "" {
		source = DefaultSeedSource
	}

	start, err := time.ParseInLocation("2006-01-02", req.StartDate, loc)
	if err != nil {
		return nil, invalid(fmt.Sprintf("Fecha inválida: %s", req.StartDate))
	}

	logger.Debug("Seeding attendance history",
		zap.String("volunteer_id", req.VolunteerID),
		zap.String("start_date", req.StartDate),
		zap.Int("present", req.Present),
		zap.Int("late", req.Late),
		zap.Int("absent", req.Absent))

	volunteer, err := store.GetVolunteer(ctx, req.VolunteerID)
	if err != nil {
		logger.Error("Failed to fetch volunteer", zap.String("volunteer_id", req.VolunteerID), zap.Error(err))
		return nil, internal(err)
	}
	if volunteer == nil {
		return nil, notFound(MsgVolunteerNotFound)
	}

	// Guard against seeding twice from the same date
	dayStart, dayEnd := calendar.DayWindow(start)
	existing, err := store.GetAttendancesInRange(ctx, []string{volunteer.ID}, dayStart, dayEnd)
	if err != nil {
		logger.Error("Failed to check existing attendance", zap.String("volunteer_id", volunteer.ID), zap.Error(err))
		return nil, internal(err)
	}
	if len(existing) > 0 {
		return nil, conflict(MsgAlreadySeeded)
	}

	days, err := calendar.Days(start, req.total())
	if err != nil {
		return nil, internal(err)
	}

	statuses := seedStatuses(req)
	attendances := make([]db.Attendance, len(days))
	for i, day := range days {
		attendances[i] = db.Attendance{
			ID:          uuid.New().String(),
			VolunteerID: volunteer.ID,
			Date:        day,
			Status:      statuses[i],
			Source:      source,
		}
	}

	if err := store.InsertAttendances(ctx, attendances); err != nil {
		if errors.Is(err, db.ErrDuplicateAttendance) {
			return nil, conflict(MsgAlreadySeeded)
		}
		logger.Error("Failed to insert seeded attendance", zap.String("volunteer_id", volunteer.ID), zap.Error(err))
		return nil, internal(err)
	}

	logger.Info("Attendance history seeded",
		zap.String("volunteer_id", volunteer.ID),
		zap.Int("created", len(attendances)),
		zap.String("first_day", days[0].Format("2006-01-02")),
		zap.String("last_day", days[len(days)-1].Format("2006-01-02")))

	return &SeedResult{Attendances: attendances}, nil
}

// seedStatuses returns the status sequence [present..., late..., absent...]
func seedStatuses(req SeedRequest) []db.AttendanceStatus {
	statuses := make([]db.AttendanceStatus, 0, req.total())
	for i := 0; i < req.Present; i++ {
		statuses = append(statuses, db.AttendancePresent)
	}
	for i := 0; i < req.Late; i++ {
		statuses = append(statuses, db.AttendanceLate)
	}
	for i := 0; i < req.Absent; i++ {
		statuses = append(statuses, db.AttendanceAbsent)
	}
	return statuses
}
