// Package scan is the model-assisted counterpart of the regex extractor in
// internal/suggest. It prompts a local model with the raw text, validates the
// JSON reply against an embedded schema, and converts it into the same
// ParsedJob shape the local extractor produces. When no client is configured
// the app is in offline mode and every call fails with ErrScanUnavailable.
package scan

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/qri-io/jsonschema"

	"github.com/techtimes/techtimes/internal/config"
	"github.com/techtimes/techtimes/internal/suggest"
	"github.com/techtimes/techtimes/pkg/models"
	"github.com/techtimes/techtimes/pkg/ollama"
)

// ErrScanUnavailable is the fixed user-facing error for offline mode.
var ErrScanUnavailable = errors.New("scanning is unavailable offline")

//go:embed scan_schema.json
var scanSchemaJSON []byte

// Generator is the slice of the ollama client the engine needs.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

type Engine struct {
	client        Generator
	model         string
	minConfidence float64
	schema        *jsonschema.Schema
}

// NewEngine compiles the embedded response schema. A nil client yields an
// engine whose Extract always returns ErrScanUnavailable.
func NewEngine(client Generator, cfg config.ScanConfig) (*Engine, error) {
	schema := &jsonschema.Schema{}
	if err := json.Unmarshal(scanSchemaJSON, schema); err != nil {
		return nil, fmt.Errorf("compile scan schema: %w", err)
	}

	return &Engine{
		client:        client,
		model:         cfg.Model,
		minConfidence: cfg.MinConfidence,
		schema:        schema,
	}, nil
}

const extractPrompt = `Extract vehicle job fields from the technician's note below.
Reply with only a JSON object with these keys:
  wipNumber   string, exactly 5 digits, or ""
  vehicleReg  string, UK vehicle registration, or ""
  aw          integer 0-100 (allocated work units, 1 AW = 5 minutes), or null
  vhcStatus   one of "NONE", "GREEN", "ORANGE", "RED"
  notes       string, any remaining free text
  confidence  number between 0 and 1

Note:
{{.Text}}`

type scanResponse struct {
	WIPNumber  string  `json:"wipNumber"`
	VehicleReg string  `json:"vehicleReg"`
	AW         *int    `json:"aw"`
	VHCStatus  string  `json:"vhcStatus"`
	Notes      string  `json:"notes"`
	Confidence float64 `json:"confidence"`
}

// Extract asks the model for the job fields in text. Replies that fail the
// schema are rejected; replies under the confidence floor come back flagged
// for clarification rather than as an error.
func (e *Engine) Extract(ctx context.Context, text string) (suggest.ParsedJob, error) {
	if e == nil || e.client == nil {
		return suggest.ParsedJob{}, ErrScanUnavailable
	}

	prompt, err := ollama.RenderTemplate(extractPrompt, map[string]any{"Text": text})
	if err != nil {
		return suggest.ParsedJob{}, fmt.Errorf("render scan prompt: %w", err)
	}
	raw, err := e.client.Generate(ctx, e.model, prompt)
	if err != nil {
		return suggest.ParsedJob{}, fmt.Errorf("scan generate: %w", err)
	}

	body, err := extractJSON(raw)
	if err != nil {
		return suggest.ParsedJob{}, err
	}

	keyErrs, err := e.schema.ValidateBytes(ctx, body)
	if err != nil {
		return suggest.ParsedJob{}, fmt.Errorf("validate scan response: %w", err)
	}
	if len(keyErrs) > 0 {
		return suggest.ParsedJob{}, fmt.Errorf("scan response rejected by schema: %s", keyErrs[0].Message)
	}

	var resp scanResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return suggest.ParsedJob{}, fmt.Errorf("decode scan response: %w", err)
	}

	p := suggest.ParsedJob{
		WIPNumber:  resp.WIPNumber,
		VehicleReg: strings.ToUpper(resp.VehicleReg),
		AW:         resp.AW,
		Notes:      resp.Notes,
		Confidence: resp.Confidence,
	}
	if resp.VHCStatus != "" && resp.VHCStatus != string(models.VHCNone) {
		p.VHCStatus = models.VHCStatus(resp.VHCStatus)
	}
	if p.Confidence < e.minConfidence {
		p.NeedsClarification = true
		p.Question = clarify(p)
	}

	return p, nil
}

func clarify(p suggest.ParsedJob) string {
	switch {
	case p.WIPNumber == "":
		return "What is the WIP number for this job?"
	case p.VehicleReg == "":
		return "What is the vehicle registration?"
	default:
		return "How many AWs was the job?"
	}
}

// extractJSON pulls the JSON object out of a reply that may carry markdown
// fences or prose around it.
func extractJSON(raw string) ([]byte, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in scan response")
	}
	return []byte(raw[start : end+1]), nil
}
