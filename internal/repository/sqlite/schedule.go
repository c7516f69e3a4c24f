package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/techtimes/techtimes/pkg/models"
)

// GetSchedule returns the singleton schedule, or the documented defaults when
// the row has never been written.
func (r *SQLiteRepo) GetSchedule(ctx context.Context) (models.Schedule, error) {
	row := r.conn.QueryRow(ctx, `SELECT daily_working_hours, working_days, start_time, end_time, lunch_start_time, lunch_end_time, saturday_frequency, next_working_saturday, custom_saturday_dates FROM schedule WHERE id = 1`)

	var s models.Schedule
	var workingDays, customDates string
	err := row.Scan(&s.DailyWorkingHours, &workingDays, &s.StartTime, &s.EndTime, &s.LunchStartTime, &s.LunchEndTime, &s.SaturdayFrequency, &s.NextWorkingSaturday, &customDates)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.DefaultSchedule(), nil
		}
		return models.Schedule{}, fmt.Errorf("get schedule: %w", err)
	}

	if err := json.Unmarshal([]byte(workingDays), &s.WorkingDays); err != nil {
		return models.Schedule{}, fmt.Errorf("decode working days: %w", err)
	}
	if customDates != "" {
		if err := json.Unmarshal([]byte(customDates), &s.CustomSaturdayDates); err != nil {
			return models.Schedule{}, fmt.Errorf("decode custom saturday dates: %w", err)
		}
	}

	return s, nil
}

// UpdateSchedule merges the patch over the current (or default) schedule and
// upserts the singleton row.
func (r *SQLiteRepo) UpdateSchedule(ctx context.Context, patch models.SchedulePatch) (models.Schedule, error) {
	s, err := r.GetSchedule(ctx)
	if err != nil {
		return models.Schedule{}, err
	}

	if patch.DailyWorkingHours != nil {
		s.DailyWorkingHours = *patch.DailyWorkingHours
	}
	if patch.WorkingDays != nil {
		s.WorkingDays = *patch.WorkingDays
	}
	if patch.StartTime != nil {
		s.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		s.EndTime = *patch.EndTime
	}
	if patch.LunchStartTime != nil {
		s.LunchStartTime = *patch.LunchStartTime
	}
	if patch.LunchEndTime != nil {
		s.LunchEndTime = *patch.LunchEndTime
	}
	if patch.SaturdayFrequency != nil {
		s.SaturdayFrequency = *patch.SaturdayFrequency
	}
	if patch.NextWorkingSaturday != nil {
		s.NextWorkingSaturday = *patch.NextWorkingSaturday
	}
	if patch.CustomSaturdayDates != nil {
		s.CustomSaturdayDates = *patch.CustomSaturdayDates
	}

	workingDays, err := json.Marshal(s.WorkingDays)
	if err != nil {
		return models.Schedule{}, fmt.Errorf("encode working days: %w", err)
	}
	customDates, err := json.Marshal(s.CustomSaturdayDates)
	if err != nil {
		return models.Schedule{}, fmt.Errorf("encode custom saturday dates: %w", err)
	}

	_, err = r.conn.Exec(ctx, `INSERT INTO schedule (id, daily_working_hours, working_days, start_time, end_time, lunch_start_time, lunch_end_time, saturday_frequency, next_working_saturday, custom_saturday_dates)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET daily_working_hours=excluded.daily_working_hours, working_days=excluded.working_days, start_time=excluded.start_time, end_time=excluded.end_time, lunch_start_time=excluded.lunch_start_time, lunch_end_time=excluded.lunch_end_time, saturday_frequency=excluded.saturday_frequency, next_working_saturday=excluded.next_working_saturday, custom_saturday_dates=excluded.custom_saturday_dates`,
		s.DailyWorkingHours, string(workingDays), s.StartTime, s.EndTime, s.LunchStartTime, s.LunchEndTime, s.SaturdayFrequency, s.NextWorkingSaturday, string(customDates))
	if err != nil {
		return models.Schedule{}, fmt.Errorf("upsert schedule: %w", err)
	}

	return s, nil
}
