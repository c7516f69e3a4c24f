package stats

import (
	"time"

	"github.com/techtimes/techtimes/internal/calc"
	"github.com/techtimes/techtimes/pkg/models"
)

// TargetDetails is the drill-down view behind the monthly target figure.
type TargetDetails struct {
	Month           string  `json:"month"`
	TargetHours     float64 `json:"targetHours"`
	SoldHours       float64 `json:"soldHours"`
	RemainingHours  float64 `json:"remainingHours"`
	PercentComplete float64 `json:"percentComplete"`
}

func ComputeTargetDetails(ms MonthlyStats) TargetDetails {
	percent := 0.0
	if ms.TargetHours > 0 {
		percent = ms.SoldHours / ms.TargetHours * 100
	}
	return TargetDetails{
		Month:           ms.Month,
		TargetHours:     ms.TargetHours,
		SoldHours:       ms.SoldHours,
		RemainingHours:  ms.RemainingHours,
		PercentComplete: percent,
	}
}

// EfficiencyDetails echoes the efficiency formula and its raw inputs so a UI
// can explain the figure.
type EfficiencyDetails struct {
	Month             string  `json:"month"`
	WorkingDaysToDate int     `json:"workingDaysToDate"`
	AbsentDays        int     `json:"absentDays"`
	ActualWorkingDays int     `json:"actualWorkingDays"`
	DailyWorkingHours float64 `json:"dailyWorkingHours"`
	AvailableHours    float64 `json:"availableHours"`
	SoldHours         float64 `json:"soldHours"`
	Efficiency        float64 `json:"efficiency"`
	EfficiencyColor   string  `json:"efficiencyColor"`
	Formula           string  `json:"formula"`
}

func ComputeEfficiencyDetails(month string, now time.Time, jobs []models.Job, schedule models.Schedule, absences []models.Absence, settings models.Settings) EfficiencyDetails {
	ms := ComputeMonthly(month, now, jobs, schedule, absences, settings)

	working := WorkingDaysToDate(month, now, schedule.WorkingDays)
	absentDates := map[string]struct{}{}
	for _, a := range absences {
		absentDates[a.AbsenceDate] = struct{}{}
	}

	return EfficiencyDetails{
		Month:             month,
		WorkingDaysToDate: working,
		AbsentDays:        len(absentDates),
		ActualWorkingDays: working - len(absentDates),
		DailyWorkingHours: schedule.DailyWorkingHours,
		AvailableHours:    ms.AvailableHours,
		SoldHours:         ms.SoldHours,
		Efficiency:        ms.Efficiency,
		EfficiencyColor:   ms.EfficiencyColor,
		Formula:           "soldHours / availableHours * 100",
	}
}

// AllTimeStats applies the AW conversion to the unfiltered job history; no
// schedule or efficiency is involved.
type AllTimeStats struct {
	TotalJobs    int     `json:"totalJobs"`
	TotalAW      int     `json:"totalAw"`
	TotalMinutes int     `json:"totalMinutes"`
	TotalHours   float64 `json:"totalHours"`
}

func ComputeAllTime(jobs []models.Job) AllTimeStats {
	totalAW := 0
	for _, j := range jobs {
		totalAW += j.AW
	}
	minutes := calc.AWToMinutes(totalAW)
	return AllTimeStats{
		TotalJobs:    len(jobs),
		TotalAW:      totalAW,
		TotalMinutes: minutes,
		TotalHours:   float64(minutes) / 60,
	}
}

// PeriodStats are the simple aggregates for today, the Sunday-Saturday week
// containing today, or the current calendar month.
type PeriodStats struct {
	Period       string  `json:"period"`
	JobCount     int     `json:"jobCount"`
	TotalAW      int     `json:"totalAw"`
	TotalMinutes int     `json:"totalMinutes"`
	TotalHours   float64 `json:"totalHours"`
	AverageAW    float64 `json:"averageAw"`
}

func ComputePeriod(period string, now time.Time, jobs []models.Job) PeriodStats {
	todayKey := calc.DayKeyOf(now)

	in := func(j models.Job) bool {
		day := calc.DayKey(j.CreatedAt)
		switch period {
		case "today":
			return day == todayKey
		case "week":
			return calc.WeekStart(day) == calc.WeekStart(todayKey)
		case "month":
			return calc.MonthKey(j.CreatedAt) == now.Format("2006-01")
		default:
			return false
		}
	}

	ps := PeriodStats{Period: period}
	for _, j := range jobs {
		if !in(j) {
			continue
		}
		ps.JobCount++
		ps.TotalAW += j.AW
	}
	ps.TotalMinutes = calc.AWToMinutes(ps.TotalAW)
	ps.TotalHours = float64(ps.TotalMinutes) / 60
	if ps.JobCount > 0 {
		ps.AverageAW = float64(ps.TotalAW) / float64(ps.JobCount)
	}
	return ps
}
