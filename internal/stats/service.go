package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/techtimes/techtimes/pkg/models"
	"github.com/techtimes/techtimes/pkg/repository"
)

// Service fetches inputs through the repository ports and runs the pure
// compute functions over them.
type Service struct {
	jobs     repository.JobRepo
	schedule repository.ScheduleRepo
	absences repository.AbsenceRepo
	settings repository.SettingsRepo
}

func NewService(jobs repository.JobRepo, schedule repository.ScheduleRepo, absences repository.AbsenceRepo, settings repository.SettingsRepo) *Service {
	return &Service{jobs: jobs, schedule: schedule, absences: absences, settings: settings}
}

func (s *Service) Monthly(ctx context.Context, month string) (MonthlyStats, error) {
	jobs, schedule, absences, settings, err := s.monthlyInputs(ctx, month)
	if err != nil {
		return MonthlyStats{}, err
	}
	return ComputeMonthly(month, time.Now(), jobs, schedule, absences, settings), nil
}

func (s *Service) Target(ctx context.Context, month string) (TargetDetails, error) {
	ms, err := s.Monthly(ctx, month)
	if err != nil {
		return TargetDetails{}, err
	}
	return ComputeTargetDetails(ms), nil
}

func (s *Service) Efficiency(ctx context.Context, month string) (EfficiencyDetails, error) {
	jobs, schedule, absences, settings, err := s.monthlyInputs(ctx, month)
	if err != nil {
		return EfficiencyDetails{}, err
	}
	return ComputeEfficiencyDetails(month, time.Now(), jobs, schedule, absences, settings), nil
}

func (s *Service) AllTime(ctx context.Context) (AllTimeStats, error) {
	jobs, err := s.jobs.ListJobs(ctx)
	if err != nil {
		return AllTimeStats{}, fmt.Errorf("list jobs: %w", err)
	}
	return ComputeAllTime(jobs), nil
}

func (s *Service) Period(ctx context.Context, period string) (PeriodStats, error) {
	jobs, err := s.jobs.ListJobs(ctx)
	if err != nil {
		return PeriodStats{}, fmt.Errorf("list jobs: %w", err)
	}
	return ComputePeriod(period, time.Now(), jobs), nil
}

func (s *Service) monthlyInputs(ctx context.Context, month string) ([]models.Job, models.Schedule, []models.Absence, models.Settings, error) {
	jobs, err := s.jobs.ListJobsByMonth(ctx, month)
	if err != nil {
		return nil, models.Schedule{}, nil, models.Settings{}, fmt.Errorf("list jobs: %w", err)
	}
	schedule, err := s.schedule.GetSchedule(ctx)
	if err != nil {
		return nil, models.Schedule{}, nil, models.Settings{}, fmt.Errorf("get schedule: %w", err)
	}
	absences, err := s.absences.ListAbsences(ctx, month)
	if err != nil {
		return nil, models.Schedule{}, nil, models.Settings{}, fmt.Errorf("list absences: %w", err)
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, models.Schedule{}, nil, models.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return jobs, schedule, absences, settings, nil
}
