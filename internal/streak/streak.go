// Package streak derives daily and weekly logging streaks plus the current
// month's highlight days from the full job history. Calculate is pure and
// idempotent; it assumes well-formed ISO-8601 CreatedAt values.
package streak

import (
	"sort"
	"time"

	"github.com/techtimes/techtimes/internal/calc"
	"github.com/techtimes/techtimes/pkg/models"
)

// DefaultWeeklyTarget is the jobs-per-week bar for a week to count as active.
const DefaultWeeklyTarget = 5

type DayHighlight struct {
	Date     string `json:"date"`
	TotalAW  int    `json:"totalAw"`
	JobCount int    `json:"jobCount"`
}

type StreakData struct {
	CurrentStreak              int           `json:"currentStreak"`
	BestStreak                 int           `json:"bestStreak"`
	CurrentWeeklyStreak        int           `json:"currentWeeklyStreak"`
	BestWeeklyStreak           int           `json:"bestWeeklyStreak"`
	WeeklyTarget               int           `json:"weeklyTarget"`
	BestDayThisMonth           *DayHighlight `json:"bestDayThisMonth"`
	MostProductiveDayThisMonth *DayHighlight `json:"mostProductiveDayThisMonth"`
}

// Calculate buckets jobs by day and Sunday-started week and walks the buckets
// for current and best runs. A day is active with at least one job; a week is
// active with at least weeklyTarget jobs.
func Calculate(now time.Time, jobs []models.Job, weeklyTarget int) StreakData {
	if weeklyTarget <= 0 {
		weeklyTarget = DefaultWeeklyTarget
	}

	dayCount := map[string]int{}
	dayAW := map[string]int{}
	weekCount := map[string]int{}
	for _, j := range jobs {
		day := calc.DayKey(j.CreatedAt)
		dayCount[day]++
		dayAW[day] += j.AW
		weekCount[calc.WeekStart(day)]++
	}

	today := calc.DayKeyOf(now)
	yesterday := calc.DayKeyOf(now.AddDate(0, 0, -1))

	dayActive := func(d string) bool { return dayCount[d] > 0 }
	current := currentRun(today, yesterday, dayActive, prevDay)
	best := bestRun(activeKeys(dayCount, func(string) bool { return true }), dayActive, nextDay)
	if current > best {
		best = current
	}

	thisWeek := calc.WeekStart(today)
	lastWeek := calc.WeekStart(calc.DayKeyOf(now.AddDate(0, 0, -7)))
	weekActive := func(w string) bool { return weekCount[w] >= weeklyTarget }
	currentWeekly := currentRun(thisWeek, lastWeek, weekActive, prevWeek)
	bestWeekly := bestRun(activeKeys(weekCount, weekActive), weekActive, nextWeek)
	if currentWeekly > bestWeekly {
		bestWeekly = currentWeekly
	}

	bestDay, productiveDay := monthHighlights(now, dayCount, dayAW)

	return StreakData{
		CurrentStreak:              current,
		BestStreak:                 best,
		CurrentWeeklyStreak:        currentWeekly,
		BestWeeklyStreak:           bestWeekly,
		WeeklyTarget:               weeklyTarget,
		BestDayThisMonth:           bestDay,
		MostProductiveDayThisMonth: productiveDay,
	}
}

// currentRun anchors at the newest bucket if active, else the one before it,
// and walks backward while buckets stay active.
func currentRun(newest, previous string, active func(string) bool, prev func(string) string) int {
	start := ""
	switch {
	case active(newest):
		start = newest
	case active(previous):
		start = previous
	default:
		return 0
	}

	run := 0
	for d := start; active(d); d = prev(d) {
		run++
	}
	return run
}

// bestRun scans every bucket between the oldest and newest active keys,
// including inactive gaps, and returns the longest active run.
func bestRun(keys []string, active func(string) bool, next func(string) string) int {
	if len(keys) == 0 {
		return 0
	}
	oldest, newest := keys[0], keys[len(keys)-1]

	best, run := 0, 0
	for d := oldest; d <= newest; {
		if active(d) {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
		n := next(d)
		if n == d {
			break
		}
		d = n
	}
	return best
}

// monthHighlights picks the highest-AW day and the highest-count day of the
// current calendar month. Day keys are visited in sorted order so exact ties
// resolve to the earliest date.
func monthHighlights(now time.Time, dayCount, dayAW map[string]int) (*DayHighlight, *DayHighlight) {
	prefix := now.Format("2006-01")

	var days []string
	for d := range dayCount {
		if calc.MonthKey(d) == prefix {
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		return nil, nil
	}
	sort.Strings(days)

	best := days[0]
	productive := days[0]
	for _, d := range days[1:] {
		if dayAW[d] > dayAW[best] {
			best = d
		}
		if dayCount[d] > dayCount[productive] {
			productive = d
		}
	}

	return &DayHighlight{Date: best, TotalAW: dayAW[best], JobCount: dayCount[best]},
		&DayHighlight{Date: productive, TotalAW: dayAW[productive], JobCount: dayCount[productive]}
}

func activeKeys(counts map[string]int, active func(string) bool) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		if active(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func shiftDay(day string, days int) string {
	t, err := calc.ParseDayKey(day)
	if err != nil {
		return day
	}
	return t.AddDate(0, 0, days).Format("2006-01-02")
}

func prevDay(d string) string  { return shiftDay(d, -1) }
func nextDay(d string) string  { return shiftDay(d, 1) }
func prevWeek(d string) string { return shiftDay(d, -7) }
func nextWeek(d string) string { return shiftDay(d, 7) }
