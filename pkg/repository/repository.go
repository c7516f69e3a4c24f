package repository

import (
	"context"
	"errors"

	"github.com/techtimes/techtimes/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// the engines and handlers depend on; concrete implementations live under
// internal/. Singleton reads (schedule, settings, profile) return documented
// defaults when the underlying row has never been written.

var (
	ErrJobNotFound     = errors.New("job not found")
	ErrAbsenceNotFound = errors.New("absence not found")
)

type JobRepo interface {
	// CreateJob assigns the ID and, when unset, CreatedAt; UpdatedAt is
	// always set to now. Returns the stored job.
	CreateJob(ctx context.Context, j *models.Job) (*models.Job, error)
	GetJob(ctx context.Context, id string) (*models.Job, error)
	// ListJobs returns the full history, newest CreatedAt first.
	ListJobs(ctx context.Context) ([]models.Job, error)
	// ListJobsByMonth filters by the "YYYY-MM" prefix of CreatedAt.
	ListJobsByMonth(ctx context.Context, month string) ([]models.Job, error)
	// UpdateJob merges the patch and refreshes UpdatedAt. Returns
	// ErrJobNotFound when the id is absent.
	UpdateJob(ctx context.Context, id string, patch models.JobPatch) (*models.Job, error)
	// DeleteJob returns ErrJobNotFound when the id is absent.
	DeleteJob(ctx context.Context, id string) error
}

type ScheduleRepo interface {
	GetSchedule(ctx context.Context) (models.Schedule, error)
	UpdateSchedule(ctx context.Context, patch models.SchedulePatch) (models.Schedule, error)
}

type AbsenceRepo interface {
	// ListAbsences filters by the "YYYY-MM" month field.
	ListAbsences(ctx context.Context, month string) ([]models.Absence, error)
	CreateAbsence(ctx context.Context, a *models.Absence) (*models.Absence, error)
	DeleteAbsence(ctx context.Context, id string) error
}

type SettingsRepo interface {
	GetSettings(ctx context.Context) (models.Settings, error)
	UpdateSettings(ctx context.Context, patch models.SettingsPatch) (models.Settings, error)
}

type ProfileRepo interface {
	GetProfile(ctx context.Context) (models.TechnicianProfile, error)
	UpdateProfile(ctx context.Context, p models.TechnicianProfile) error
}
