package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/ilford-attendance/pkg/db"
)

// GetSetting returns the setting with the given key, or nil
func (d *DB) GetSetting(ctx context.Context, key string) (*db.Setting, error) {
	var s db.Setting
	err := d.pool.QueryRow(ctx, `SELECT key, value FROM setting WHERE key = $1`, key).Scan(&s.Key, &s.Value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query setting: %w", err)
	}
	return &s, nil
}

// PutSetting creates or updates a setting
func (d *DB) PutSetting(ctx context.Context, key, value string) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO setting (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}
	return nil
}
