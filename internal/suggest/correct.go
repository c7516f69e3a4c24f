package suggest

import (
	"regexp"
	"strings"

	"github.com/techtimes/techtimes/internal/calc"
	"github.com/techtimes/techtimes/pkg/models"
)

// Correction is the outcome of validating one field, with an optional
// proposed replacement.
type Correction struct {
	Field        string `json:"field"`
	Input        string `json:"input"`
	Valid        bool   `json:"valid"`
	Suggested    string `json:"suggested,omitempty"`
	HistoryMatch string `json:"historyMatch,omitempty"`
	Message      string `json:"message,omitempty"`
}

// CorrectWIP zero-pads 4-digit candidates and drops the first digit of
// 6-digit ones; anything else failing the 5-digit check gets a message with
// no suggested value.
func CorrectWIP(input string) Correction {
	c := Correction{Field: "wip", Input: input}
	if calc.ValidateWIPNumber(input) {
		c.Valid = true
		return c
	}

	switch {
	case isDigits(input) && len(input) == 4:
		c.Suggested = "0" + input
		c.Message = "WIP numbers are 5 digits; added a leading zero"
	case isDigits(input) && len(input) == 6:
		c.Suggested = input[1:]
		c.Message = "WIP numbers are 5 digits; dropped the first digit"
	default:
		c.Message = "WIP number must be exactly 5 digits"
	}
	return c
}

// ukPrefixShape gates the character substitution below: two letters followed
// by a digit is the modern UK plate shape, so letters in positions 2-3 are
// likely misread digits.
var ukPrefixShape = regexp.MustCompile(`^[A-Z]{2}\d`)

var digitLookalikes = map[byte]byte{'O': '0', 'I': '1', 'S': '5', 'B': '8'}

// CorrectReg fixes digit lookalikes in positions 2-3 of UK-style plates and
// separately surfaces the closest history registration within Levenshtein
// distance 2.
func CorrectReg(input string, history []models.Job) Correction {
	up := strings.ToUpper(strings.TrimSpace(input))
	c := Correction{Field: "reg", Input: input, Valid: up != ""}

	fixed := []byte(up)
	if len(fixed) >= 4 {
		probe := make([]byte, len(fixed))
		copy(probe, fixed)
		for i := 2; i <= 3; i++ {
			if d, ok := digitLookalikes[probe[i]]; ok {
				probe[i] = d
			}
		}
		if ukPrefixShape.Match(probe) && string(probe) != up {
			c.Suggested = string(probe)
			c.Message = "replaced letters that look like digits"
		}
	}

	bestDist := 3
	for _, j := range history {
		reg := strings.ToUpper(j.VehicleReg)
		if reg == "" || reg == up {
			continue
		}
		if d := levenshtein(up, reg); d >= 1 && d < bestDist {
			bestDist = d
			c.HistoryMatch = reg
		}
	}

	return c
}

// AWCorrection is the numeric counterpart of Correction.
type AWCorrection struct {
	Input     int    `json:"input"`
	Valid     bool   `json:"valid"`
	Suggested int    `json:"suggested"`
	Message   string `json:"message,omitempty"`
}

// CorrectAW proposes 0 for negatives, a minutes-to-AW conversion for values
// over 100 that divide cleanly by 5 into range, and the 100 cap otherwise.
func CorrectAW(v int) AWCorrection {
	c := AWCorrection{Input: v, Suggested: v}
	switch {
	case v >= 0 && v <= 100:
		c.Valid = true
	case v < 0:
		c.Suggested = 0
		c.Message = "AW cannot be negative"
	case v%5 == 0 && v/5 <= 100:
		c.Suggested = v / 5
		c.Message = "value looks like minutes; converted to AW"
	default:
		c.Suggested = 100
		c.Message = "AW capped at the maximum of 100"
	}
	return c
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// levenshtein computes edit distance with the two-row DP.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, min(cur[j-1]+1, prev[j-1]+cost))
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
