package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/techtimes/techtimes/pkg/models"
)

func (r *SQLiteRepo) GetSettings(ctx context.Context) (models.Settings, error) {
	row := r.conn.QueryRow(ctx, `SELECT monthly_target, streaks_enabled, weekly_streak_target, pin_hash FROM settings WHERE id = 1`)

	var s models.Settings
	var streaks int
	err := row.Scan(&s.MonthlyTarget, &streaks, &s.WeeklyStreakTarget, &s.PINHash)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.DefaultSettings(), nil
		}
		return models.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	s.StreaksEnabled = streaks != 0

	return s, nil
}

func (r *SQLiteRepo) UpdateSettings(ctx context.Context, patch models.SettingsPatch) (models.Settings, error) {
	s, err := r.GetSettings(ctx)
	if err != nil {
		return models.Settings{}, err
	}

	if patch.MonthlyTarget != nil {
		s.MonthlyTarget = *patch.MonthlyTarget
	}
	if patch.StreaksEnabled != nil {
		s.StreaksEnabled = *patch.StreaksEnabled
	}
	if patch.WeeklyStreakTarget != nil {
		s.WeeklyStreakTarget = *patch.WeeklyStreakTarget
	}
	if patch.PINHash != nil {
		s.PINHash = *patch.PINHash
	}

	streaks := 0
	if s.StreaksEnabled {
		streaks = 1
	}

	_, err = r.conn.Exec(ctx, `INSERT INTO settings (id, monthly_target, streaks_enabled, weekly_streak_target, pin_hash)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET monthly_target=excluded.monthly_target, streaks_enabled=excluded.streaks_enabled, weekly_streak_target=excluded.weekly_streak_target, pin_hash=excluded.pin_hash`,
		s.MonthlyTarget, streaks, s.WeeklyStreakTarget, s.PINHash)
	if err != nil {
		return models.Settings{}, fmt.Errorf("upsert settings: %w", err)
	}

	return s, nil
}
