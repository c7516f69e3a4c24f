// Package suggest ranks history-based input suggestions, proposes corrections
// for near-miss WIP numbers, registrations and AW values, and extracts job
// fields from free text.
package suggest

import (
	"sort"
	"strings"

	"github.com/techtimes/techtimes/pkg/models"
)

// MaxSuggestions caps ranked results; call sites wanting a tighter list slice
// the returned value.
const MaxSuggestions = 10

type Field string

const (
	FieldWIP Field = "wip"
	FieldReg Field = "reg"
)

type Suggestion struct {
	WIPNumber  string `json:"wipNumber"`
	VehicleReg string `json:"vehicleReg"`
	AW         int    `json:"aw"`
	LastUsed   string `json:"lastUsed"`
	UsageCount int    `json:"usageCount"`
}

type candidate struct {
	Suggestion
	startsWith bool
}

// Suggestions matches history entries whose key (WIP number, or uppercased
// registration) starts with or contains the uppercased input. Matches group
// by exact key, remembering the latest occurrence's fields; ranking is
// starts-with before contains-only, then most recent LastUsed. Empty input
// returns nothing.
func Suggestions(input string, field Field, history []models.Job) []Suggestion {
	in := strings.ToUpper(strings.TrimSpace(input))
	if in == "" {
		return nil
	}

	byKey := map[string]*candidate{}
	for _, j := range history {
		key := j.WIPNumber
		if field == FieldReg {
			key = strings.ToUpper(j.VehicleReg)
		}
		if key == "" || !strings.Contains(key, in) {
			continue
		}

		c, ok := byKey[key]
		if !ok {
			c = &candidate{startsWith: strings.HasPrefix(key, in)}
			byKey[key] = c
		}
		c.UsageCount++
		// ISO timestamps compare correctly as strings.
		if j.CreatedAt >= c.LastUsed {
			c.LastUsed = j.CreatedAt
			c.WIPNumber = j.WIPNumber
			c.VehicleReg = j.VehicleReg
			c.AW = j.AW
		}
	}

	ranked := make([]*candidate, 0, len(byKey))
	for _, c := range byKey {
		ranked = append(ranked, c)
	}
	sort.SliceStable(ranked, func(i, k int) bool {
		if ranked[i].startsWith != ranked[k].startsWith {
			return ranked[i].startsWith
		}
		return ranked[i].LastUsed > ranked[k].LastUsed
	})

	if len(ranked) > MaxSuggestions {
		ranked = ranked[:MaxSuggestions]
	}

	out := make([]Suggestion, len(ranked))
	for i, c := range ranked {
		out[i] = c.Suggestion
	}
	return out
}
