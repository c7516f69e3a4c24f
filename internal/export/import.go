package export

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/qri-io/jsonschema"

	"github.com/techtimes/techtimes/pkg/models"
	"github.com/techtimes/techtimes/pkg/repository"
)

//go:embed backup_schema.json
var backupSchemaJSON []byte

// ImportResult is the partial-success summary of an import: entries failing
// validation are skipped and recorded, never fatal to the batch.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// Import validates the payload shape against the embedded schema, then
// replays each valid entry as a CreateJob call. IDs and update timestamps are
// regenerated by the store; duplicate entries are not detected.
func Import(ctx context.Context, data []byte, jobs repository.JobRepo) (ImportResult, error) {
	var res ImportResult

	schema := &jsonschema.Schema{}
	if err := json.Unmarshal(backupSchemaJSON, schema); err != nil {
		return res, fmt.Errorf("compile backup schema: %w", err)
	}
	keyErrs, err := schema.ValidateBytes(ctx, data)
	if err != nil {
		return res, fmt.Errorf("parse backup: %w", err)
	}
	if len(keyErrs) > 0 {
		return res, fmt.Errorf("invalid backup: %s", keyErrs[0].Message)
	}

	// Entries decode one by one so a wrong-typed field in one job cannot
	// sink its valid neighbors.
	var env struct {
		Jobs []json.RawMessage `json:"jobs"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return res, fmt.Errorf("parse backup: %w", err)
	}

	for i, raw := range env.Jobs {
		var entry BackupJob
		if err := json.Unmarshal(raw, &entry); err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("job %d: %v", i+1, err))
			continue
		}
		if msg := entryProblem(entry); msg != "" {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("job %d: %s", i+1, msg))
			continue
		}

		j := &models.Job{
			WIPNumber:  entry.WIPNumber,
			VehicleReg: entry.VehicleReg,
			AW:         *entry.AW,
			Notes:      entry.Notes,
			VHCStatus:  models.VHCStatus(entry.VHCStatus),
			CreatedAt:  entry.CreatedAt,
		}
		if _, err := jobs.CreateJob(ctx, j); err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("job %d: %v", i+1, err))
			continue
		}
		res.Imported++
	}

	return res, nil
}

func entryProblem(e BackupJob) string {
	switch {
	case e.WIPNumber == "":
		return "missing wipNumber"
	case e.VehicleReg == "":
		return "missing vehicleReg"
	case e.AW == nil:
		return "missing aw"
	default:
		return ""
	}
}
