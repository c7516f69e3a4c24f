package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/techtimes/techtimes/pkg/models"
)

func (r *SQLiteRepo) GetProfile(ctx context.Context) (models.TechnicianProfile, error) {
	row := r.conn.QueryRow(ctx, `SELECT name FROM technician_profile WHERE id = 1`)

	var p models.TechnicianProfile
	if err := row.Scan(&p.Name); err != nil {
		if err == sql.ErrNoRows {
			return models.TechnicianProfile{}, nil
		}
		return models.TechnicianProfile{}, fmt.Errorf("get profile: %w", err)
	}

	return p, nil
}

func (r *SQLiteRepo) UpdateProfile(ctx context.Context, p models.TechnicianProfile) error {
	_, err := r.conn.Exec(ctx, `INSERT INTO technician_profile (id, name) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name`, p.Name)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
