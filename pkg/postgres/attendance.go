package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jakechorley/ilford-attendance/pkg/db"
)

const uniqueViolation = "23505"

func newID() string {
	return uuid.New().String()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// GetAttendancesInRange retrieves non-deleted attendance records of the
// volunteers dated between from and to inclusive
func (d *DB) GetAttendancesInRange(ctx context.Context, volunteerIDs []string, from, to time.Time) ([]db.Attendance, error) {
	if len(volunteerIDs) == 0 {
		return nil, nil
	}

	rows, err := d.pool.Query(ctx, `
		SELECT id, volunteer_id, date, status, source, note
		FROM attendance
		WHERE volunteer_id = ANY($1)
		  AND deleted_at IS NULL
		  AND date BETWEEN $2 AND $3
		ORDER BY date, id
	`, volunteerIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var attendances []db.Attendance
	for rows.Next() {
		var a db.Attendance
		var source, note *string
		if err := rows.Scan(&a.ID, &a.VolunteerID, &a.Date, &a.Status, &source, &note); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		if source != nil {
			a.Source = *source
		}
		if note != nil {
			a.Note = *note
		}
		attendances = append(attendances, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance: %w", err)
	}

	return attendances, nil
}

// InsertAttendances inserts all records in one transaction. If any record
// collides with an existing one for the same volunteer and day, nothing is
// written and db.ErrDuplicateAttendance is returned.
func (d *DB) InsertAttendances(ctx context.Context, attendances []db.Attendance) error {
	if len(attendances) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range attendances {
		_, err := tx.Exec(ctx, `
			INSERT INTO attendance (id, volunteer_id, date, day, status, source, note)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, a.ID, a.VolunteerID, a.Date, d.dayOf(a.Date), string(a.Status), nullable(a.Source), nullable(a.Note))
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return fmt.Errorf("failed to insert attendance for %s: %w", a.VolunteerID, db.ErrDuplicateAttendance)
			}
			return fmt.Errorf("failed to insert attendance: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// InsertMissingAttendances inserts the records in one batch, skipping any that
// collide with an existing record for the same volunteer and day. Returns the
// number of rows created.
func (d *DB) InsertMissingAttendances(ctx context.Context, attendances []db.Attendance) (int, error) {
	if len(attendances) == 0 {
		return 0, nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, a := range attendances {
		batch.Queue(`
			INSERT INTO attendance (id, volunteer_id, date, day, status, source, note)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (volunteer_id, day) WHERE deleted_at IS NULL DO NOTHING
		`, a.ID, a.VolunteerID, a.Date, d.dayOf(a.Date), string(a.Status), nullable(a.Source), nullable(a.Note))
	}

	results := tx.SendBatch(ctx, batch)
	created := 0
	for range attendances {
		tag, err := results.Exec()
		if err != nil {
			results.Close()
			return 0, fmt.Errorf("failed to insert attendance: %w", err)
		}
		created += int(tag.RowsAffected())
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return created, nil
}

// CountAttendanceByStatus counts non-deleted attendance records of a volunteer per status
func (d *DB) CountAttendanceByStatus(ctx context.Context, volunteerID string) (map[db.AttendanceStatus]int, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT status, COUNT(*)
		FROM attendance
		WHERE volunteer_id = $1 AND deleted_at IS NULL
		GROUP BY status
	`, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance: %w", err)
	}
	defer rows.Close()

	counts := make(map[db.AttendanceStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan attendance count: %w", err)
		}
		counts[db.AttendanceStatus(status)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance counts: %w", err)
	}

	return counts, nil
}
