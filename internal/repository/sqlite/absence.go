package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/techtimes/techtimes/pkg/models"
	"github.com/techtimes/techtimes/pkg/repository"
)

func (r *SQLiteRepo) ListAbsences(ctx context.Context, month string) ([]models.Absence, error) {
	rows, err := r.conn.Query(ctx, `SELECT id, month, absence_date, days_count, is_half_day, custom_hours, deduction_type, absence_type FROM absences WHERE month = ? ORDER BY absence_date`, month)
	if err != nil {
		return nil, fmt.Errorf("list absences: %w", err)
	}
	defer rows.Close()

	var out []models.Absence
	for rows.Next() {
		var a models.Absence
		var days, custom sql.NullFloat64
		var half int
		var deduct string
		if err := rows.Scan(&a.ID, &a.Month, &a.AbsenceDate, &days, &half, &custom, &deduct, &a.AbsenceType); err != nil {
			return nil, fmt.Errorf("scan absence: %w", err)
		}
		if days.Valid {
			v := days.Float64
			a.DaysCount = &v
		}
		if custom.Valid {
			v := custom.Float64
			a.CustomHours = &v
		}
		a.IsHalfDay = half != 0
		a.DeductionType = models.DeductionType(deduct)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) CreateAbsence(ctx context.Context, a *models.Absence) (*models.Absence, error) {
	if a == nil {
		return nil, fmt.Errorf("absence is nil")
	}

	stored := *a
	stored.ID = uuid.NewString()
	if stored.Month == "" && len(stored.AbsenceDate) >= 7 {
		stored.Month = stored.AbsenceDate[:7]
	}
	if stored.DeductionType == "" {
		stored.DeductionType = models.DeductAvailable
	}

	var days, custom any
	if stored.DaysCount != nil {
		days = *stored.DaysCount
	}
	if stored.CustomHours != nil {
		custom = *stored.CustomHours
	}
	half := 0
	if stored.IsHalfDay {
		half = 1
	}

	_, err := r.conn.Exec(ctx, `INSERT INTO absences (id, month, absence_date, days_count, is_half_day, custom_hours, deduction_type, absence_type) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		stored.ID, stored.Month, stored.AbsenceDate, days, half, custom, string(stored.DeductionType), stored.AbsenceType)
	if err != nil {
		return nil, fmt.Errorf("insert absence: %w", err)
	}

	return &stored, nil
}

func (r *SQLiteRepo) DeleteAbsence(ctx context.Context, id string) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM absences WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete absence: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrAbsenceNotFound
	}
	return nil
}
