// Package export turns the job history into the shareable payloads the app
// offers: the versioned JSON backup, CSV, a printable HTML report (the PDF
// body), and an Excel workbook. Import is the inverse of the JSON backup.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/techtimes/techtimes/internal/calc"
	"github.com/techtimes/techtimes/pkg/models"
)

// FormatVersion identifies the JSON interchange format.
const FormatVersion = "1.0"

// Backup is the JSON interchange payload. IDs and update timestamps are
// deliberately absent: importing regenerates them.
type Backup struct {
	Version    string      `json:"version"`
	ExportDate string      `json:"exportDate"`
	Jobs       []BackupJob `json:"jobs"`
}

type BackupJob struct {
	WIPNumber  string `json:"wipNumber"`
	VehicleReg string `json:"vehicleReg"`
	AW         *int   `json:"aw"`
	Notes      string `json:"notes,omitempty"`
	VHCStatus  string `json:"vhcStatus,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

// JSON renders the backup payload for the given jobs.
func JSON(jobs []models.Job, now time.Time) ([]byte, error) {
	b := Backup{
		Version:    FormatVersion,
		ExportDate: now.UTC().Format(time.RFC3339),
		Jobs:       make([]BackupJob, 0, len(jobs)),
	}
	for _, j := range jobs {
		aw := j.AW
		b.Jobs = append(b.Jobs, BackupJob{
			WIPNumber:  j.WIPNumber,
			VehicleReg: j.VehicleReg,
			AW:         &aw,
			Notes:      j.Notes,
			VHCStatus:  string(j.VHCStatus),
			CreatedAt:  j.CreatedAt,
		})
	}

	out, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return out, nil
}

var csvHeader = []string{"wipNumber", "vehicleReg", "aw", "hours", "vhcStatus", "createdAt", "notes"}

// CSV renders one row per job with a header row.
func CSV(jobs []models.Job) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, j := range jobs {
		row := []string{
			j.WIPNumber,
			j.VehicleReg,
			strconv.Itoa(j.AW),
			calc.FormatDecimalHours(calc.AWToMinutes(j.AW)),
			string(j.VHCStatus),
			j.CreatedAt,
			j.Notes,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}

	return buf.Bytes(), nil
}
