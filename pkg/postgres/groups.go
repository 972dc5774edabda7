package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/ilford-attendance/pkg/db"
)

func collectGroups(rows pgx.Rows) ([]db.Group, error) {
	defer rows.Close()

	var groups []db.Group
	for rows.Next() {
		var g db.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.DayOfWeek, &g.DeletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}

	return groups, nil
}

// GetGroup returns the non-deleted group with the given ID, or nil
func (d *DB) GetGroup(ctx context.Context, id string) (*db.Group, error) {
	var g db.Group
	err := d.pool.QueryRow(ctx, `
		SELECT id, name, day_of_week, deleted_at
		FROM volunteer_group
		WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(&g.ID, &g.Name, &g.DayOfWeek, &g.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query group: %w", err)
	}
	return &g, nil
}

// GetLedGroups returns the non-deleted groups where the volunteer holds an
// active LEADER membership, oldest membership first
func (d *DB) GetLedGroups(ctx context.Context, volunteerID string) ([]db.Group, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT g.id, g.name, g.day_of_week, g.deleted_at
		FROM volunteer_group g
		JOIN group_member gm ON gm.group_id = g.id
		WHERE gm.volunteer_id = $1
		  AND gm.role = 'LEADER'
		  AND gm.deleted_at IS NULL
		  AND g.deleted_at IS NULL
		ORDER BY gm.created_at, g.id
	`, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query led groups: %w", err)
	}
	return collectGroups(rows)
}

// GetGroupsByDay returns all non-deleted groups scheduled on day
func (d *DB) GetGroupsByDay(ctx context.Context, day db.DayOfWeek) ([]db.Group, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, day_of_week, deleted_at
		FROM volunteer_group
		WHERE day_of_week = $1 AND deleted_at IS NULL
	`, string(day))
	if err != nil {
		return nil, fmt.Errorf("failed to query groups by day: %w", err)
	}
	return collectGroups(rows)
}

// ReassignRole applies a role change in a single transaction. With
// change.ResetLeadership every LEADER membership of the volunteer becomes
// MEMBER; the volunteer then becomes LEADER of change.GroupID (joining the
// group if needed) and the user role is set.
func (d *DB) ReassignRole(ctx context.Context, change db.RoleChange) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if change.ResetLeadership {
		_, err = tx.Exec(ctx, `
			UPDATE group_member SET role = 'MEMBER'
			WHERE volunteer_id = $1 AND role = 'LEADER' AND deleted_at IS NULL
		`, change.VolunteerID)
		if err != nil {
			return fmt.Errorf("failed to reset leader memberships: %w", err)
		}
	}

	if change.GroupID != "" {
		tag, err := tx.Exec(ctx, `
			UPDATE group_member SET role = 'LEADER'
			WHERE volunteer_id = $1 AND group_id = $2 AND deleted_at IS NULL
		`, change.VolunteerID, change.GroupID)
		if err != nil {
			return fmt.Errorf("failed to promote leader: %w", err)
		}

		if tag.RowsAffected() == 0 {
			_, err = tx.Exec(ctx, `
				INSERT INTO group_member (id, volunteer_id, group_id, role)
				VALUES ($1, $2, $3, 'LEADER')
			`, newID(), change.VolunteerID, change.GroupID)
			if err != nil {
				return fmt.Errorf("failed to insert leader membership: %w", err)
			}
		}
	}

	_, err = tx.Exec(ctx, `UPDATE app_user SET role = $2 WHERE id = $1`, change.UserID, string(change.Role))
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
