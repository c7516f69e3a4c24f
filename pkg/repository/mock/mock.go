// Package mock provides an in-memory store implementing the repository
// interfaces for tests.
package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/techtimes/techtimes/pkg/models"
	"github.com/techtimes/techtimes/pkg/repository"
)

// Store keeps everything in maps guarded by one mutex. Zero value is not
// usable; call NewStore.
type Store struct {
	mu       sync.Mutex
	seq      int
	jobs     map[string]models.Job
	absences map[string]models.Absence
	schedule *models.Schedule
	settings *models.Settings
	profile  models.TechnicianProfile

	// CreateJobErr, when set, fails the next CreateJob call.
	CreateJobErr error
}

var _ repository.JobRepo = (*Store)(nil)
var _ repository.ScheduleRepo = (*Store)(nil)
var _ repository.AbsenceRepo = (*Store)(nil)
var _ repository.SettingsRepo = (*Store)(nil)
var _ repository.ProfileRepo = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		jobs:     make(map[string]models.Job),
		absences: make(map[string]models.Absence),
	}
}

func (s *Store) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *Store) CreateJob(ctx context.Context, j *models.Job) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CreateJobErr != nil {
		err := s.CreateJobErr
		s.CreateJobErr = nil
		return nil, err
	}

	stored := *j
	stored.ID = s.nextID("job")
	if stored.CreatedAt == "" {
		stored.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	stored.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if stored.VHCStatus == "" {
		stored.VHCStatus = models.VHCNone
	}
	s.jobs[stored.ID] = stored
	return &stored, nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, repository.ErrJobNotFound
	}
	return &j, nil
}

func (s *Store) ListJobs(ctx context.Context) ([]models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt > out[k].CreatedAt })
	return out, nil
}

func (s *Store) ListJobsByMonth(ctx context.Context, month string) ([]models.Job, error) {
	all, _ := s.ListJobs(ctx)
	var out []models.Job
	for _, j := range all {
		if len(j.CreatedAt) >= 7 && j.CreatedAt[:7] == month {
			out = append(out, j)
		}
	}
	return out, nil
}

func (s *Store) UpdateJob(ctx context.Context, id string, patch models.JobPatch) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, repository.ErrJobNotFound
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
	j.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	s.jobs[id] = j
	return &j, nil
}

func (s *Store) DeleteJob(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; !ok {
		return repository.ErrJobNotFound
	}
	delete(s.jobs, id)
	return nil
}

func (s *Store) GetSchedule(ctx context.Context) (models.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == nil {
		return models.DefaultSchedule(), nil
	}
	return *s.schedule, nil
}

func (s *Store) UpdateSchedule(ctx context.Context, patch models.SchedulePatch) (models.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := models.DefaultSchedule()
	if s.schedule != nil {
		cur = *s.schedule
	}
	if patch.DailyWorkingHours != nil {
		cur.DailyWorkingHours = *patch.DailyWorkingHours
	}
	if patch.WorkingDays != nil {
		cur.WorkingDays = *patch.WorkingDays
	}
	if patch.StartTime != nil {
		cur.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		cur.EndTime = *patch.EndTime
	}
	if patch.LunchStartTime != nil {
		cur.LunchStartTime = *patch.LunchStartTime
	}
	if patch.LunchEndTime != nil {
		cur.LunchEndTime = *patch.LunchEndTime
	}
	if patch.SaturdayFrequency != nil {
		cur.SaturdayFrequency = *patch.SaturdayFrequency
	}
	if patch.NextWorkingSaturday != nil {
		cur.NextWorkingSaturday = *patch.NextWorkingSaturday
	}
	if patch.CustomSaturdayDates != nil {
		cur.CustomSaturdayDates = *patch.CustomSaturdayDates
	}
	s.schedule = &cur
	return cur, nil
}

func (s *Store) ListAbsences(ctx context.Context, month string) ([]models.Absence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Absence
	for _, a := range s.absences {
		if a.Month == month {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].AbsenceDate < out[k].AbsenceDate })
	return out, nil
}

func (s *Store) CreateAbsence(ctx context.Context, a *models.Absence) (*models.Absence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *a
	stored.ID = s.nextID("abs")
	if stored.Month == "" && len(stored.AbsenceDate) >= 7 {
		stored.Month = stored.AbsenceDate[:7]
	}
	if stored.DeductionType == "" {
		stored.DeductionType = models.DeductAvailable
	}
	s.absences[stored.ID] = stored
	return &stored, nil
}

func (s *Store) DeleteAbsence(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.absences[id]; !ok {
		return repository.ErrAbsenceNotFound
	}
	delete(s.absences, id)
	return nil
}

func (s *Store) GetSettings(ctx context.Context) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settings == nil {
		return models.DefaultSettings(), nil
	}
	return *s.settings, nil
}

func (s *Store) UpdateSettings(ctx context.Context, patch models.SettingsPatch) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := models.DefaultSettings()
	if s.settings != nil {
		cur = *s.settings
	}
	if patch.MonthlyTarget != nil {
		cur.MonthlyTarget = *patch.MonthlyTarget
	}
	if patch.StreaksEnabled != nil {
		cur.StreaksEnabled = *patch.StreaksEnabled
	}
	if patch.WeeklyStreakTarget != nil {
		cur.WeeklyStreakTarget = *patch.WeeklyStreakTarget
	}
	if patch.PINHash != nil {
		cur.PINHash = *patch.PINHash
	}
	s.settings = &cur
	return cur, nil
}

func (s *Store) GetProfile(ctx context.Context) (models.TechnicianProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile, nil
}

func (s *Store) UpdateProfile(ctx context.Context, p models.TechnicianProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
	return nil
}
