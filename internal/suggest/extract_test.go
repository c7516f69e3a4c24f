package suggest

import (
	"math"
	"testing"

	"github.com/techtimes/techtimes/pkg/models"
)

func confNear(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func TestParseInputFullSentence(t *testing.T) {
	p := ParseInput("12345 AB12 CDE 8 aw green brake pads replaced", nil)

	if p.WIPNumber != "12345" {
		t.Errorf("WIPNumber = %q, want 12345", p.WIPNumber)
	}
	if p.VehicleReg != "AB12CDE" {
		t.Errorf("VehicleReg = %q, want AB12CDE", p.VehicleReg)
	}
	if p.AW == nil || *p.AW != 8 {
		t.Errorf("AW = %v, want 8", p.AW)
	}
	if p.VHCStatus != models.VHCGreen {
		t.Errorf("VHCStatus = %q, want %q", p.VHCStatus, models.VHCGreen)
	}
	if p.Notes != "brake pads replaced" {
		t.Errorf("Notes = %q, want brake pads replaced", p.Notes)
	}
	if !confNear(p.Confidence, 0.85) {
		t.Errorf("Confidence = %v, want 0.85", p.Confidence)
	}
	if p.NeedsClarification {
		t.Error("NeedsClarification set for a full parse")
	}
}

func TestParseInputHoursConversion(t *testing.T) {
	p := ParseInput("12345 AB12 CDE 1.5 hours", nil)
	if p.AW == nil || *p.AW != 18 {
		t.Errorf("AW = %v, want 18 for 1.5 hours", p.AW)
	}

	// Fractions that do not map to whole AWs are not trusted.
	p = ParseInput("12345 AB12 CDE 1.33 hours", nil)
	if p.AW != nil {
		t.Errorf("AW = %v, want nil for non-whole conversion", p.AW)
	}
}

func TestParseInputVHCPriority(t *testing.T) {
	// GREEN outranks RED when both keywords appear.
	p := ParseInput("12345 pass but red warning light", nil)
	if p.VHCStatus != models.VHCGreen {
		t.Errorf("VHCStatus = %q, want %q", p.VHCStatus, models.VHCGreen)
	}

	p = ParseInput("12345 advisory on tyres", nil)
	if p.VHCStatus != models.VHCOrange {
		t.Errorf("VHCStatus = %q, want %q", p.VHCStatus, models.VHCOrange)
	}
}

func TestParseInputClarificationPriority(t *testing.T) {
	// Missing WIP asks for the WIP first.
	p := ParseInput("some notes about nothing", nil)
	if !p.NeedsClarification {
		t.Fatal("NeedsClarification not set")
	}
	if p.Question != "What is the WIP number for this job?" {
		t.Errorf("Question = %q", p.Question)
	}

	// WIP present, registration missing.
	p = ParseInput("12345 short", nil)
	if !p.NeedsClarification || p.Question != "What is the vehicle registration?" {
		t.Errorf("Question = %q, clarification %v", p.Question, p.NeedsClarification)
	}
}

func TestParseInputBackfill(t *testing.T) {
	history := []models.Job{
		{WIPNumber: "12345", VehicleReg: "AB12 CDE", CreatedAt: "2024-06-10T09:00:00Z"},
	}

	// WIP found, registration backfilled from history.
	p := ParseInput("12345 6 aw", history)
	if p.VehicleReg != "AB12 CDE" {
		t.Errorf("backfilled VehicleReg = %q, want AB12 CDE", p.VehicleReg)
	}
	if !confNear(p.Confidence, 0.65) {
		t.Errorf("Confidence = %v, want 0.65", p.Confidence)
	}
	if p.NeedsClarification {
		t.Error("NeedsClarification set despite backfill lifting confidence")
	}

	// Registration found, WIP backfilled. The stripped-space form must match.
	p = ParseInput("AB12 CDE 6 aw", history)
	if p.WIPNumber != "12345" {
		t.Errorf("backfilled WIPNumber = %q, want 12345", p.WIPNumber)
	}
}

func TestParseInputCaseFolding(t *testing.T) {
	p := ParseInput("12345 ab12 cde 8 aw Green", nil)
	if p.VehicleReg != "AB12CDE" {
		t.Errorf("VehicleReg = %q, want AB12CDE", p.VehicleReg)
	}
	if p.VHCStatus != models.VHCGreen {
		t.Errorf("VHCStatus = %q, want %q", p.VHCStatus, models.VHCGreen)
	}

	// Runes whose uppercase form is wider in bytes (U+0271 -> U+2C6E) must
	// not shift the strip offsets for matches later in the text.
	p = ParseInput("ɱɱɱ 12345 ab12 cde 8 aw green", nil)
	if p.WIPNumber != "12345" || p.VehicleReg != "AB12CDE" {
		t.Errorf("wip/reg = %q/%q, want 12345/AB12CDE", p.WIPNumber, p.VehicleReg)
	}
	if p.AW == nil || *p.AW != 8 {
		t.Errorf("AW = %v, want 8", p.AW)
	}
	if p.VHCStatus != models.VHCGreen {
		t.Errorf("VHCStatus = %q, want %q", p.VHCStatus, models.VHCGreen)
	}
	if p.Notes != "ɱɱɱ" {
		t.Errorf("Notes = %q, want the leftover runes intact", p.Notes)
	}
}

func TestParseInputAWUnitNotARegistration(t *testing.T) {
	// "8 aw" must be read as an AW quantity, not a dateless plate.
	p := ParseInput("12345 8 aw", nil)
	if p.VehicleReg != "" {
		t.Errorf("VehicleReg = %q, want empty", p.VehicleReg)
	}
	if p.AW == nil || *p.AW != 8 {
		t.Errorf("AW = %v, want 8", p.AW)
	}
}

func TestParseInputShortLeftoverDropped(t *testing.T) {
	p := ParseInput("12345 AB12 CDE 8 aw ok", nil)
	if p.Notes != "" {
		t.Errorf("Notes = %q, want empty for leftover of 3 chars or fewer", p.Notes)
	}
}

func TestParseInputEmpty(t *testing.T) {
	p := ParseInput("", nil)
	if p.Confidence != 0 || !p.NeedsClarification {
		t.Errorf("empty input = %+v", p)
	}
}
