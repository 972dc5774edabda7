package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/ilford-attendance/pkg/core/model"
	"github.com/jakechorley/ilford-attendance/pkg/db"
)

func TestVolunteersEligibleForFreeDay_SettingGate(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]string
	}{
		{"missing", map[string]string{}},
		{"false", map[string]string{SettingFreeDay: "false"}},
		{"uppercase", map[string]string{SettingFreeDay: "TRUE"}},
		{"one", map[string]string{SettingFreeDay: "1"}},
		{"padded", map[string]string{SettingFreeDay: " true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFixture()
			store.settings = tt.settings

			volunteers, err := VolunteersEligibleForFreeDay(context.Background(), store, zap.NewNop(), nil, thursday)
			require.NoError(t, err)
			assert.NotNil(t, volunteers)
			assert.Empty(t, volunteers)
		})
	}
}

func TestVolunteersEligibleForFreeDay_Enabled(t *testing.T) {
	store := newFixture()
	store.settings[SettingFreeDay] = "true"
	store.attendances = []db.Attendance{
		{ID: "att-1", VolunteerID: "frank", Date: thursday, Status: db.AttendancePresent},
		{ID: "att-2", VolunteerID: "gina", Date: wednesday, Status: db.AttendancePresent},
	}

	volunteers, err := VolunteersEligibleForFreeDay(context.Background(), store, zap.NewNop(), []string{"bob", "carol"}, thursday)
	require.NoError(t, err)

	// alice and zoe are admin-owned, dave inactive, erin deleted, frank already marked today
	assert.Equal(t, []string{"gina", "hank", "ivan"}, volunteerIDs(volunteers))
}

func TestFreeDayScenario(t *testing.T) {
	store := newFixture()
	store.settings[SettingFreeDay] = "true"
	ctx := context.Background()
	logger := zap.NewNop()

	volunteers, err := VolunteersEligibleForFreeDay(ctx, store, logger, []string{"bob", "carol"}, thursday)
	require.NoError(t, err)
	assert.Contains(t, volunteerIDs(volunteers), "hank")

	attendance, err := MarkAttendanceOfVolunteerByEmail(ctx, store, logger, time.UTC, "", MarkRequest{
		ActorEmail:  "bob@example.com",
		VolunteerID: "hank",
		Status:      db.AttendancePresent,
		Date:        thursday,
	})
	require.NoError(t, err)
	require.NotNil(t, attendance)
	assert.Equal(t, SourceFreeDay, attendance.Source)
	assert.Equal(t, DefaultFreeDayNote, attendance.Note)
	assert.Equal(t, db.AttendancePresent, attendance.Status)
	assert.Equal(t, "hank", attendance.VolunteerID)

	volunteers, err = VolunteersEligibleForFreeDay(ctx, store, logger, []string{"bob", "carol"}, thursday)
	require.NoError(t, err)
	assert.NotContains(t, volunteerIDs(volunteers), "hank")

	again, err := MarkAttendanceOfVolunteerByEmail(ctx, store, logger, time.UTC, "", MarkRequest{
		ActorEmail:  "bob@example.com",
		VolunteerID: "hank",
		Status:      db.AttendanceLate,
		Date:        thursday.Add(2 * time.Hour),
	})
	assert.Nil(t, again)
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "Ya existe una asistencia del dia de hoy.", MessageOf(err))
	assert.Equal(t, 1, store.countFor("hank"))
}

func TestMarkAttendanceOfVolunteerByEmail_ConflictWithMaterializedAbsence(t *testing.T) {
	store := newFixture()
	ctx := context.Background()
	logger := zap.NewNop()

	_, err := MaterializeToday(ctx, store, logger, nil, "bob", thursday)
	require.NoError(t, err)

	_, err = MarkAttendanceOfVolunteerByEmail(ctx, store, logger, time.UTC, "", MarkRequest{
		ActorEmail:  "alice@example.com",
		VolunteerID: "carol",
		Status:      db.AttendancePresent,
		Date:        thursday,
	})
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, 1, store.countFor("carol"))
}

func TestMarkAttendanceOfVolunteerByEmail_Failures(t *testing.T) {
	tests := []struct {
		name string
		req  MarkRequest
		kind ErrorKind
		msg  string
	}{
		{
			name: "unknown actor",
			req:  MarkRequest{ActorEmail: "nobody@example.com", VolunteerID: "hank", Status: db.AttendancePresent, Date: thursday},
			kind: KindNotFound,
			msg:  MsgUserNotFound,
		},
		{
			name: "plain volunteer actor",
			req:  MarkRequest{ActorEmail: "carol@example.com", VolunteerID: "hank", Status: db.AttendancePresent, Date: thursday},
			kind: KindForbidden,
			msg:  MsgForbidden,
		},
		{
			name: "unknown volunteer",
			req:  MarkRequest{ActorEmail: "bob@example.com", VolunteerID: "nobody", Status: db.AttendancePresent, Date: thursday},
			kind: KindNotFound,
			msg:  MsgVolunteerNotFound,
		},
		{
			name: "deleted volunteer",
			req:  MarkRequest{ActorEmail: "bob@example.com", VolunteerID: "erin", Status: db.AttendancePresent, Date: thursday},
			kind: KindNotFound,
			msg:  MsgVolunteerNotFound,
		},
		{
			name: "unknown status",
			req:  MarkRequest{ActorEmail: "bob@example.com", VolunteerID: "hank", Status: db.AttendanceStatus("EXCUSED"), Date: thursday},
			kind: KindInvalid,
		},
		{
			name: "malformed email",
			req:  MarkRequest{ActorEmail: "bob", VolunteerID: "hank", Status: db.AttendancePresent, Date: thursday},
			kind: KindInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFixture()

			attendance, err := MarkAttendanceOfVolunteerByEmail(context.Background(), store, zap.NewNop(), time.UTC, "", tt.req)
			assert.Nil(t, attendance)
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err))
			if tt.msg != "" {
				assert.Equal(t, tt.msg, MessageOf(err))
			}
			assert.Empty(t, store.attendances)
		})
	}
}

func TestMarkAttendanceOfVolunteerByEmail_CustomNote(t *testing.T) {
	store := newFixture()

	attendance, err := MarkAttendanceOfVolunteerByEmail(context.Background(), store, zap.NewNop(), time.UTC, "Cubrió turno", MarkRequest{
		ActorEmail:  "alice@example.com",
		VolunteerID: "hank",
		Status:      db.AttendanceJustified,
		Date:        thursday,
	})
	require.NoError(t, err)
	assert.Equal(t, "Cubrió turno", attendance.Note)
	assert.Equal(t, SourceFreeDay, attendance.Source)
}

func TestMarkAttendanceOfVolunteerByEmail_DayTakenInLocation(t *testing.T) {
	store := newFixture()
	// 2025-01-08 20:00 UTC is still Wednesday at UTC but already Thursday at UTC+6
	store.attendances = []db.Attendance{
		{ID: "att-1", VolunteerID: "hank", Date: wednesday.Add(10 * time.Hour), Status: db.AttendancePresent},
	}
	req := MarkRequest{
		ActorEmail:  "bob@example.com",
		VolunteerID: "hank",
		Status:      db.AttendancePresent,
		Date:        thursday,
	}

	_, err := MarkAttendanceOfVolunteerByEmail(context.Background(), store, zap.NewNop(), time.FixedZone("UTC+6", 6*3600), "", req)
	assert.Equal(t, KindConflict, KindOf(err))

	attendance, err := MarkAttendanceOfVolunteerByEmail(context.Background(), store, zap.NewNop(), time.UTC, "", req)
	require.NoError(t, err)
	assert.Equal(t, 2, store.countFor("hank"))
	assert.Equal(t, time.UTC, attendance.Date.Location())
}

func TestMarkAttendanceOfVolunteerByEmail_ZeroDateUsesLocation(t *testing.T) {
	store := newFixture()
	loc := time.FixedZone("UTC-11", -11*3600)

	attendance, err := MarkAttendanceOfVolunteerByEmail(context.Background(), store, zap.NewNop(), loc, "", MarkRequest{
		ActorEmail:  "bob@example.com",
		VolunteerID: "hank",
		Status:      db.AttendancePresent,
	})
	require.NoError(t, err)
	assert.Equal(t, loc, attendance.Date.Location())
	assert.WithinDuration(t, time.Now(), attendance.Date, time.Minute)

	again, err := MarkAttendanceOfVolunteerByEmail(context.Background(), store, zap.NewNop(), loc, "", MarkRequest{
		ActorEmail:  "alice@example.com",
		VolunteerID: "hank",
		Status:      db.AttendanceLate,
	})
	assert.Nil(t, again)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, 1, store.countFor("hank"))
}

func TestSetFreeDayEnabled(t *testing.T) {
	store := newFixture()
	ctx := context.Background()
	admin := callerFor(t, store, "alice@example.com")

	require.NoError(t, SetFreeDayEnabled(ctx, store, zap.NewNop(), admin, true))
	assert.Equal(t, "true", store.settings[SettingFreeDay])
	enabled, err := FreeDayEnabled(ctx, store)
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, SetFreeDayEnabled(ctx, store, zap.NewNop(), admin, false))
	assert.Equal(t, "false", store.settings[SettingFreeDay])
}

func TestSetFreeDayEnabled_RequiresAdmin(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{"manager", "bob@example.com"},
		{"volunteer", "carol@example.com"},
		{"no caller", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFixture()
			var caller *model.Caller
			if tt.email != "" {
				caller = callerFor(t, store, tt.email)
			}

			err := SetFreeDayEnabled(context.Background(), store, zap.NewNop(), caller, true)
			assert.Equal(t, KindForbidden, KindOf(err))
			assert.Equal(t, MsgForbidden, MessageOf(err))
			_, ok := store.settings[SettingFreeDay]
			assert.False(t, ok)
		})
	}
}
