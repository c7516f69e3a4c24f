package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/techtimes/techtimes/pkg/models"
	"github.com/techtimes/techtimes/pkg/repository"
)

const jobColumns = `id, wip_number, vehicle_reg, aw, notes, vhc_status, created_at, updated_at, image_uri`

func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job) (*models.Job, error) {
	if j == nil {
		return nil, fmt.Errorf("job is nil")
	}

	stored := *j
	stored.ID = uuid.NewString()
	if stored.CreatedAt == "" {
		stored.CreatedAt = nowISO()
	}
	stored.UpdatedAt = nowISO()
	if stored.VHCStatus == "" {
		stored.VHCStatus = models.VHCNone
	}

	_, err := r.conn.Exec(ctx, `INSERT INTO jobs (`+jobColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stored.ID, stored.WIPNumber, stored.VehicleReg, stored.AW, stored.Notes, string(stored.VHCStatus), stored.CreatedAt, stored.UpdatedAt, stored.ImageURI)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}

	return &stored, nil
}

func (r *SQLiteRepo) GetJob(ctx context.Context, id string) (*models.Job, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	j, err := scanJob(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrJobNotFound
		}
		return nil, err
	}
	return j, nil
}

func (r *SQLiteRepo) ListJobs(ctx context.Context) ([]models.Job, error) {
	return r.listJobs(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC`)
}

func (r *SQLiteRepo) ListJobsByMonth(ctx context.Context, month string) ([]models.Job, error) {
	return r.listJobs(ctx, `SELECT `+jobColumns+` FROM jobs WHERE substr(created_at, 1, 7) = ? ORDER BY created_at DESC`, month)
}

func (r *SQLiteRepo) listJobs(ctx context.Context, query string, args ...any) ([]models.Job, error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var out []models.Job
	for rows.Next() {
		j, err := scanJob(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		out = append(out, *j)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateJob(ctx context.Context, id string, patch models.JobPatch) (*models.Job, error) {
	j, err := r.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.WIPNumber != nil {
		j.WIPNumber = *patch.WIPNumber
	}
	if patch.VehicleReg != nil {
		j.VehicleReg = *patch.VehicleReg
	}
	if patch.AW != nil {
		j.AW = *patch.AW
	}
	if patch.Notes != nil {
		j.Notes = *patch.Notes
	}
	if patch.VHCStatus != nil {
		j.VHCStatus = *patch.VHCStatus
	}
	if patch.CreatedAt != nil {
		j.CreatedAt = *patch.CreatedAt
	}
	if patch.ImageURI != nil {
		j.ImageURI = *patch.ImageURI
	}
	j.UpdatedAt = nowISO()

	_, err = r.conn.Exec(ctx, `UPDATE jobs SET wip_number = ?, vehicle_reg = ?, aw = ?, notes = ?, vhc_status = ?, created_at = ?, updated_at = ?, image_uri = ? WHERE id = ?`,
		j.WIPNumber, j.VehicleReg, j.AW, j.Notes, string(j.VHCStatus), j.CreatedAt, j.UpdatedAt, j.ImageURI, id)
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}

	return j, nil
}

func (r *SQLiteRepo) DeleteJob(ctx context.Context, id string) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrJobNotFound
	}
	return nil
}

func scanJob(scan func(...any) error) (*models.Job, error) {
	var j models.Job
	var vhc string
	if err := scan(&j.ID, &j.WIPNumber, &j.VehicleReg, &j.AW, &j.Notes, &vhc, &j.CreatedAt, &j.UpdatedAt, &j.ImageURI); err != nil {
		return nil, err
	}
	j.VHCStatus = models.VHCStatus(vhc)
	return &j, nil
}
