package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/ilford-attendance/pkg/db"
)

const volunteerColumns = `v.id, v.name, v.email, v.status, v.birthday, v.avatar, v.deleted_at`

func scanVolunteer(row pgx.Row) (db.Volunteer, error) {
	var v db.Volunteer
	var avatar *string
	if err := row.Scan(&v.ID, &v.Name, &v.Email, &v.Status, &v.Birthday, &avatar, &v.DeletedAt); err != nil {
		return db.Volunteer{}, err
	}
	if avatar != nil {
		v.Avatar = *avatar
	}
	return v, nil
}

func collectVolunteers(rows pgx.Rows) ([]db.Volunteer, error) {
	defer rows.Close()

	var volunteers []db.Volunteer
	for rows.Next() {
		v, err := scanVolunteer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan volunteer: %w", err)
		}
		volunteers = append(volunteers, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating volunteers: %w", err)
	}

	return volunteers, nil
}

// GetVolunteer returns the non-deleted volunteer with the given ID, or nil
func (d *DB) GetVolunteer(ctx context.Context, id string) (*db.Volunteer, error) {
	v, err := scanVolunteer(d.pool.QueryRow(ctx, `
		SELECT `+volunteerColumns+`
		FROM volunteer v
		WHERE v.id = $1 AND v.deleted_at IS NULL
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query volunteer: %w", err)
	}
	return &v, nil
}

// GetRosterVolunteers returns active, non-deleted volunteers that are members
// of any of the groups and are not owned by an ADMIN user, ordered by name
func (d *DB) GetRosterVolunteers(ctx context.Context, groupIDs []string) ([]db.Volunteer, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT DISTINCT `+volunteerColumns+`
		FROM volunteer v
		JOIN group_member gm ON gm.volunteer_id = v.id AND gm.deleted_at IS NULL
		JOIN volunteer_group g ON g.id = gm.group_id AND g.deleted_at IS NULL
		LEFT JOIN app_user u ON u.volunteer_id = v.id
		WHERE gm.group_id = ANY($1)
		  AND v.status = 'ACTIVE'
		  AND v.deleted_at IS NULL
		  AND (u.role IS NULL OR u.role <> 'ADMIN')
		ORDER BY v.name, v.id
	`, groupIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster volunteers: %w", err)
	}
	return collectVolunteers(rows)
}

// GetActiveGroupMembers returns active, non-deleted members of the group
func (d *DB) GetActiveGroupMembers(ctx context.Context, groupID string) ([]db.Volunteer, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+volunteerColumns+`
		FROM volunteer v
		JOIN group_member gm ON gm.volunteer_id = v.id
		WHERE gm.group_id = $1
		  AND gm.deleted_at IS NULL
		  AND v.status = 'ACTIVE'
		  AND v.deleted_at IS NULL
		ORDER BY v.name, v.id
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query group members: %w", err)
	}
	return collectVolunteers(rows)
}

// GetFreeDayCandidates returns active, non-deleted, non-ADMIN-owned volunteers
// outside excludedIDs with no non-deleted attendance between from and to
func (d *DB) GetFreeDayCandidates(ctx context.Context, excludedIDs []string, from, to time.Time) ([]db.Volunteer, error) {
	if excludedIDs == nil {
		excludedIDs = []string{}
	}

	rows, err := d.pool.Query(ctx, `
		SELECT `+volunteerColumns+`
		FROM volunteer v
		LEFT JOIN app_user u ON u.volunteer_id = v.id
		WHERE v.status = 'ACTIVE'
		  AND v.deleted_at IS NULL
		  AND (u.role IS NULL OR u.role <> 'ADMIN')
		  AND NOT (v.id = ANY($1))
		  AND NOT EXISTS (
			SELECT 1 FROM attendance a
			WHERE a.volunteer_id = v.id
			  AND a.deleted_at IS NULL
			  AND a.date BETWEEN $2 AND $3
		  )
		ORDER BY v.name, v.id
	`, excludedIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query free-day candidates: %w", err)
	}
	return collectVolunteers(rows)
}
