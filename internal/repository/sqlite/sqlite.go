package sqlite

import (
	"io"
	"time"

	"log/slog"

	"github.com/techtimes/techtimes/internal/db"
	"github.com/techtimes/techtimes/pkg/repository"
)

// SQLiteRepo implements the repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.JobRepo = (*SQLiteRepo)(nil)
var _ repository.ScheduleRepo = (*SQLiteRepo)(nil)
var _ repository.AbsenceRepo = (*SQLiteRepo)(nil)
var _ repository.SettingsRepo = (*SQLiteRepo)(nil)
var _ repository.ProfileRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

// nowISO is the timestamp format used across the schema. UTC with second
// precision is enough: the engines only ever look at string prefixes.
func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
