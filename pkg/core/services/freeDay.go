package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/ilford-attendance/pkg/core/calendar"
	"github.com/jakechorley/ilford-attendance/pkg/core/model"
	"github.com/jakechorley/ilford-attendance/pkg/db"
)

const (
	// SettingFreeDay is the setting key toggling the free-day fallback
	SettingFreeDay = "DIA_LIBRE"
	// SourceFreeDay tags records created through the free-day fallback
	SourceFreeDay = "DAY_FREE"
	// DefaultFreeDayNote is stored on every free-day record
	DefaultFreeDayNote = "Asistencia registrada en día libre"
)

// FreeDayStore defines the database operations needed to list free-day candidates
type FreeDayStore interface {
	GetSetting(ctx context.Context, key string) (*db.Setting, error)
	GetFreeDayCandidates(ctx context.Context, excludedIDs []string, from, to time.Time) ([]db.Volunteer, error)
}

// SettingStore defines the database operations needed to toggle the fallback
type SettingStore interface {
	PutSetting(ctx context.Context, key, value string) error
}

// MarkStore defines the database operations needed to mark a free-day attendance
type MarkStore interface {
	db.UserStore
	GetVolunteer(ctx context.Context, id string) (*db.Volunteer, error)
	GetAttendancesInRange(ctx context.Context, volunteerIDs []string, from, to time.Time) ([]db.Attendance, error)
	InsertAttendances(ctx context.Context, attendances []db.Attendance) error
}

// MarkRequest describes an ad-hoc attendance marking outside the group flow
type MarkRequest struct {
	ActorEmail  string              `validate:"required,email"`
	VolunteerID string              `validate:"required"`
	Status      db.AttendanceStatus `validate:"required"`
	Date        time.Time           // zero means now in the marking location
}

// FreeDayEnabled reports whether the DIA_LIBRE setting is exactly "true".
// A missing setting means disabled.
func FreeDayEnabled(ctx context.Context, store FreeDayStore) (bool, error) {
	setting, err := store.GetSetting(ctx, SettingFreeDay)
	if err != nil {
		return false, err
	}
	return setting != nil && setting.Value == "true", nil
}

// SetFreeDayEnabled switches the free-day fallback on or off. Admin only.
func SetFreeDayEnabled(
	ctx context.Context,
	store SettingStore,
	logger *zap.Logger,
	caller *model.Caller,
	enabled bool,
) error {
	if caller == nil || !caller.IsAdmin() {
		return forbidden()
	}

	value := "false"
	if enabled {
		value = "true"
	}
	if err := store.PutSetting(ctx, SettingFreeDay, value); err != nil {
		logger.Error("Failed to update free-day setting", zap.Error(err))
		return internal(err)
	}

	logger.Info("Free-day setting updated",
		zap.String("actor", caller.Email),
		zap.Bool("enabled", enabled))

	return nil
}

// VolunteersEligibleForFreeDay returns active volunteers outside excludedIDs
// with no attendance on the day of now. Returns an empty list while the
// free-day setting is off.
func VolunteersEligibleForFreeDay(
	ctx context.Context,
	store FreeDayStore,
	logger *zap.Logger,
	excludedIDs []string,
	now time.Time,
) ([]db.Volunteer, error) {
	enabled, err := FreeDayEnabled(ctx, store)
	if err != nil {
		logger.Error("Failed to read free-day setting", zap.Error(err))
		return nil, internal(err)
	}
	if !enabled {
		logger.Debug("Free-day fallback disabled")
		return []db.Volunteer{}, nil
	}

	start, end := calendar.DayWindow(now)
	candidates, err := store.GetFreeDayCandidates(ctx, excludedIDs, start, end)
	if err != nil {
		logger.Error("Failed to fetch free-day candidates", zap.Error(err))
		return nil, internal(err)
	}

	excluded := toSet(excludedIDs)
	result := make([]db.Volunteer, 0, len(candidates))
	for _, v := range candidates {
		if !excluded[v.ID] {
			result = append(result, v)
		}
	}

	logger.Info("Free-day candidates listed",
		zap.Int("excluded", len(excludedIDs)),
		zap.Int("candidates", len(result)))

	return result, nil
}

// MarkAttendanceOfVolunteerByEmail records an attendance for a volunteer on
// behalf of the user with the given email. Refuses if the volunteer already
// has a record on that day. The day is taken in loc.
func MarkAttendanceOfVolunteerByEmail(
	ctx context.Context,
	store MarkStore,
	logger *zap.Logger,
	loc *time.Location,
	note string,
	req MarkRequest,
) (*db.Attendance, error) {
	if err := validate.Struct(req); err != nil {
		return nil, invalid("Solicitud inválida")
	}
	if !req.Status.IsValid() {
		return nil, invalid("Estado de asistencia inválido")
	}
	if loc == nil {
		loc = time.UTC
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}
	req.Date = req.Date.In(loc)
	if note == "" {
		note = DefaultFreeDayNote
	}

	// (a) acting user
	actor, err := store.GetUserByEmail(ctx, req.ActorEmail)
	if err != nil {
		logger.Error("Failed to fetch acting user", zap.String("email", req.ActorEmail), zap.Error(err))
		return nil, internal(err)
	}
	if actor == nil {
		return nil, notFound(MsgUserNotFound)
	}
	if actor.Role.Rank() < db.RoleManager.Rank() {
		return nil, forbidden()
	}

	// (b) target volunteer
	volunteer, err := store.GetVolunteer(ctx, req.VolunteerID)
	if err != nil {
		logger.Error("Failed to fetch volunteer", zap.String("volunteer_id", req.VolunteerID), zap.Error(err))
		return nil, internal(err)
	}
	if volunteer == nil {
		return nil, notFound(MsgVolunteerNotFound)
	}

	// (c) one record per volunteer per day
	start, end := calendar.DayWindow(req.Date)
	existing, err := store.GetAttendancesInRange(ctx, []string{volunteer.ID}, start, end)
	if err != nil {
		logger.Error("Failed to check existing attendance", zap.String("volunteer_id", volunteer.ID), zap.Error(err))
		return nil, internal(err)
	}
	if len(existing) > 0 {
		logger.Info("Attendance already recorded today",
			zap.String("volunteer_id", volunteer.ID),
			zap.String("existing_id", existing[0].ID))
		return nil, conflict(MsgAttendanceExists)
	}

	attendance := db.Attendance{
		ID:          uuid.New().String(),
		VolunteerID: volunteer.ID,
		Date:        req.Date,
		Status:      req.Status,
		Source:      SourceFreeDay,
		Note:        note,
	}

	if err := store.InsertAttendances(ctx, []db.Attendance{attendance}); err != nil {
		if errors.Is(err, db.ErrDuplicateAttendance) {
			return nil, conflict(MsgAttendanceExists)
		}
		logger.Error("Failed to insert free-day attendance", zap.String("volunteer_id", volunteer.ID), zap.Error(err))
		return nil, internal(err)
	}

	logger.Info("Free-day attendance recorded",
		zap.String("actor", actor.Email),
		zap.String("volunteer_id", volunteer.ID),
		zap.String("status", string(attendance.Status)))

	return &attendance, nil
}
