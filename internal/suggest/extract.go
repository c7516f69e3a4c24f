package suggest

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/techtimes/techtimes/internal/calc"
	"github.com/techtimes/techtimes/pkg/models"
)

// ParsedJob is the best-effort result of extracting job fields from free text.
type ParsedJob struct {
	WIPNumber          string           `json:"wipNumber,omitempty"`
	VehicleReg         string           `json:"vehicleReg,omitempty"`
	AW                 *int             `json:"aw,omitempty"`
	VHCStatus          models.VHCStatus `json:"vhcStatus,omitempty"`
	Notes              string           `json:"notes,omitempty"`
	Confidence         float64          `json:"confidence"`
	NeedsClarification bool             `json:"needsClarification,omitempty"`
	Question           string           `json:"question,omitempty"`
}

var wipRe = regexp.MustCompile(`\b\d{5}\b`)

// UK registration shapes, most specific first; the first pattern that matches
// wins. Matching is case-insensitive over the original text so the match
// offsets stay valid for stripping.
var regRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b[A-Z]{2}\d{2} ?[A-Z]{3}\b`), // current: AB12 CDE
	regexp.MustCompile(`(?i)\b[A-Z]\d{1,3} ?[A-Z]{3}\b`),  // prefix: A123 BCD
	regexp.MustCompile(`(?i)\b[A-Z]{3} ?\d{1,3}[A-Z]\b`),  // suffix: ABC 123D
	regexp.MustCompile(`(?i)\b\d{1,4} ?[A-Z]{1,2}\b`),     // dateless: 1234 AB
}

var awRe = regexp.MustCompile(`(?i)\b(\d{1,3}(?:\.\d+)?) ?aws?\b`)
var hoursRe = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?) ?(?:hours?|hrs?|h)\b`)

// Unit suffixes the dateless plate pattern must not swallow.
var unitSuffixes = map[string]bool{"AW": true, "AWS": true, "H": true, "HR": true, "HRS": true}

// vhcKeywords are checked in priority order; the first keyword present wins.
var vhcKeywords = []struct {
	words  []string
	status models.VHCStatus
}{
	{[]string{"GREEN", "PASS"}, models.VHCGreen},
	{[]string{"ORANGE", "AMBER", "ADVISORY"}, models.VHCOrange},
	{[]string{"RED", "FAIL", "DANGEROUS"}, models.VHCRed},
}

// Confidence contributions per extracted field.
const (
	confWIP      = 0.25
	confReg      = 0.25
	confAW       = 0.25
	confVHC      = 0.10
	confBackfill = 0.15
	confFloor    = 0.5
)

// ParseInput runs the extractors left to right over the text, stripping each
// matched substring, accumulating confidence, and backfilling WIP or
// registration from history when only one of the pair was found. Leftover
// text longer than 3 characters becomes the notes.
func ParseInput(input string, history []models.Job) ParsedJob {
	var p ParsedJob
	work := input

	if m, rest, ok := extractWIP(work); ok {
		p.WIPNumber = m
		p.Confidence += confWIP
		work = rest
	}
	if m, rest, ok := extractReg(work); ok {
		p.VehicleReg = m
		p.Confidence += confReg
		work = rest
	}
	if v, rest, ok := extractAW(work); ok {
		p.AW = &v
		p.Confidence += confAW
		work = rest
	}
	if s, rest, ok := extractVHC(work); ok {
		p.VHCStatus = s
		p.Confidence += confVHC
		work = rest
	}

	backfillFromHistory(&p, history)

	if notes := tidyNotes(work); len(notes) > 3 {
		p.Notes = notes
	}

	if p.Confidence < confFloor {
		p.NeedsClarification = true
		p.Question = clarificationQuestion(p)
	}

	return p
}

func extractWIP(work string) (string, string, bool) {
	loc := wipRe.FindStringIndex(work)
	if loc == nil {
		return "", work, false
	}
	return work[loc[0]:loc[1]], strip(work, loc), true
}

func extractReg(work string) (string, string, bool) {
	for _, re := range regRes {
		for _, loc := range re.FindAllStringIndex(work, -1) {
			m := strings.ToUpper(work[loc[0]:loc[1]])
			if unitSuffixes[strings.TrimLeft(m, "0123456789 ")] {
				continue
			}
			return strings.ReplaceAll(m, " ", ""), strip(work, loc), true
		}
	}
	return "", work, false
}

func extractAW(work string) (int, string, bool) {
	if m := awRe.FindStringSubmatchIndex(work); m != nil {
		v, err := strconv.ParseFloat(work[m[2]:m[3]], 64)
		if err == nil && calc.ValidateAW(v) {
			return int(v), strip(work, m[:2]), true
		}
	}
	if m := hoursRe.FindStringSubmatchIndex(work); m != nil {
		hours, err := strconv.ParseFloat(work[m[2]:m[3]], 64)
		if err == nil {
			// 1 hour = 12 AW; only whole-AW conversions are trusted.
			aw := hours * 60 / calc.MinutesPerAW
			if aw == math.Trunc(aw) && calc.ValidateAW(aw) {
				return int(aw), strip(work, m[:2]), true
			}
		}
	}
	return 0, work, false
}

func extractVHC(work string) (models.VHCStatus, string, bool) {
	for _, group := range vhcKeywords {
		for _, w := range group.words {
			if i := indexFold(work, w); i >= 0 {
				return group.status, strip(work, []int{i, i + len(w)}), true
			}
		}
	}
	return models.VHCNone, work, false
}

// indexFold is a case-insensitive strings.Index over byte offsets of s, so
// the offsets stay valid on the original text even when uppercasing would
// change a rune's byte length.
func indexFold(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}

// backfillFromHistory cross-references the history for the missing half of
// the WIP/registration pair via exact match.
func backfillFromHistory(p *ParsedJob, history []models.Job) {
	switch {
	case p.WIPNumber != "" && p.VehicleReg == "":
		for _, j := range history {
			if j.WIPNumber == p.WIPNumber && j.VehicleReg != "" {
				p.VehicleReg = strings.ToUpper(j.VehicleReg)
				p.Confidence += confBackfill
				return
			}
		}
	case p.VehicleReg != "" && p.WIPNumber == "":
		for _, j := range history {
			if strings.ToUpper(strings.ReplaceAll(j.VehicleReg, " ", "")) == p.VehicleReg && j.WIPNumber != "" {
				p.WIPNumber = j.WIPNumber
				p.Confidence += confBackfill
				return
			}
		}
	}
}

func clarificationQuestion(p ParsedJob) string {
	switch {
	case p.WIPNumber == "":
		return "What is the WIP number for this job?"
	case p.VehicleReg == "":
		return "What is the vehicle registration?"
	case p.AW == nil:
		return "How many AWs was the job?"
	default:
		return "Can you confirm the job details?"
	}
}

func strip(s string, loc []int) string {
	return s[:loc[0]] + s[loc[1]:]
}

var spaceRun = regexp.MustCompile(`\s+`)

func tidyNotes(s string) string {
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.Trim(s, " ,.;:-")
}
