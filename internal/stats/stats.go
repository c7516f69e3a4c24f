// Package stats derives per-period job aggregates and the efficiency ratio
// from jobs, schedule, absences and settings. The compute functions are pure;
// Service wires them to the repository ports.
package stats

import (
	"time"

	"github.com/techtimes/techtimes/internal/calc"
	"github.com/techtimes/techtimes/pkg/models"
)

type MonthlyStats struct {
	Month           string  `json:"month"`
	SoldHours       float64 `json:"soldHours"`
	TargetHours     float64 `json:"targetHours"`
	RemainingHours  float64 `json:"remainingHours"`
	AvailableHours  float64 `json:"availableHours"`
	Efficiency      float64 `json:"efficiency"`
	EfficiencyColor string  `json:"efficiencyColor"`
	TotalJobs       int     `json:"totalJobs"`
	TotalAW         int     `json:"totalAw"`
}

// ComputeMonthly derives the monthly figures for month ("YYYY-MM") as of now.
// Jobs outside the month are ignored, so callers may pass either a
// pre-filtered or the full job list.
func ComputeMonthly(month string, now time.Time, jobs []models.Job, schedule models.Schedule, absences []models.Absence, settings models.Settings) MonthlyStats {
	working := WorkingDaysToDate(month, now, schedule.WorkingDays)

	// Distinct dates only: two absence records on the same day still remove
	// a single day from the denominator.
	absentDates := map[string]struct{}{}
	for _, a := range absences {
		absentDates[a.AbsenceDate] = struct{}{}
	}

	// Not clamped; over-recorded absences propagate as negative hours.
	actualWorkingDays := working - len(absentDates)
	availableHours := float64(actualWorkingDays) * schedule.DailyWorkingHours

	// Target deductions sum every matching record, with no date dedup. The
	// asymmetry against the distinct-date rule above is specified behavior.
	adjustedTarget := settings.MonthlyTarget - targetDeduction(absences, schedule.DailyWorkingHours)

	totalAW := 0
	totalJobs := 0
	for _, j := range jobs {
		if calc.MonthKey(j.CreatedAt) != month {
			continue
		}
		totalAW += j.AW
		totalJobs++
	}
	soldHours := float64(calc.AWToMinutes(totalAW)) / 60

	efficiency := 0.0
	if availableHours > 0 {
		efficiency = soldHours / availableHours * 100
	}

	remaining := adjustedTarget - soldHours
	if remaining < 0 {
		remaining = 0
	}

	return MonthlyStats{
		Month:           month,
		SoldHours:       soldHours,
		TargetHours:     adjustedTarget,
		RemainingHours:  remaining,
		AvailableHours:  availableHours,
		Efficiency:      efficiency,
		EfficiencyColor: EfficiencyColor(efficiency),
		TotalJobs:       totalJobs,
		TotalAW:         totalAW,
	}
}

// EfficiencyColor maps an efficiency percentage onto the canonical traffic
// light thresholds: green at 90 and above, yellow at 75, red below.
func EfficiencyColor(efficiency float64) string {
	switch {
	case efficiency >= 90:
		return "green"
	case efficiency >= 75:
		return "yellow"
	default:
		return "red"
	}
}

// WorkingDaysToDate counts calendar days from day 1 of month through
// min(today, last day of month) whose weekday is in workingDays. A month
// strictly in the future counts zero days.
func WorkingDaysToDate(month string, now time.Time, workingDays []int) int {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return 0
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if today.Before(first) {
		return 0
	}

	end := first.AddDate(0, 1, -1)
	if today.Before(end) {
		end = today
	}

	days := map[int]struct{}{}
	for _, d := range workingDays {
		days[d] = struct{}{}
	}

	count := 0
	for d := first; !d.After(end); d = d.AddDate(0, 0, 1) {
		if _, ok := days[int(d.Weekday())]; ok {
			count++
		}
	}
	return count
}

func targetDeduction(absences []models.Absence, dailyHours float64) float64 {
	total := 0.0
	for _, a := range absences {
		if a.DeductionType != models.DeductTarget {
			continue
		}
		switch {
		case a.CustomHours != nil:
			total += *a.CustomHours
		case a.IsHalfDay:
			total += dailyHours / 2
		case a.DaysCount != nil:
			total += *a.DaysCount * dailyHours
		default:
			total += dailyHours
		}
	}
	return total
}
