package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/ilford-attendance/pkg/db"
)

const userColumns = `id, email, role, volunteer_id`

func scanUser(row pgx.Row) (*db.User, error) {
	var u db.User
	var volunteerID *string
	if err := row.Scan(&u.ID, &u.Email, &u.Role, &volunteerID); err != nil {
		return nil, err
	}
	if volunteerID != nil {
		u.VolunteerID = *volunteerID
	}
	return &u, nil
}

// GetUserByEmail returns the user with the given email (case-insensitive), or nil
func (d *DB) GetUserByEmail(ctx context.Context, email string) (*db.User, error) {
	u, err := scanUser(d.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM app_user
		WHERE lower(email) = lower($1)
	`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	return u, nil
}

// GetUserByVolunteerID returns the user paired with the volunteer, or nil
func (d *DB) GetUserByVolunteerID(ctx context.Context, volunteerID string) (*db.User, error) {
	u, err := scanUser(d.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM app_user
		WHERE volunteer_id = $1
	`, volunteerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by volunteer: %w", err)
	}
	return u, nil
}
