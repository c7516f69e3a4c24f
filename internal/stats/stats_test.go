package stats

import (
	"math"
	"testing"
	"time"

	"github.com/techtimes/techtimes/pkg/models"
)

func mkJob(createdAt string, aw int) models.Job {
	return models.Job{
		ID:         "j-" + createdAt,
		WIPNumber:  "12345",
		VehicleReg: "AB12 CDE",
		AW:         aw,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

func approxEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// June 2024 starts on a Saturday, so a Mon-Fri schedule yields exactly ten
// working days through Friday the 14th.
var june14 = time.Date(2024, 6, 14, 15, 30, 0, 0, time.UTC)

func TestComputeMonthly(t *testing.T) {
	jobs := []models.Job{
		mkJob("2024-06-03T09:00:00Z", 200),
		mkJob("2024-06-10T09:00:00Z", 180),
		mkJob("2024-06-14T09:00:00Z", 100),
		mkJob("2024-05-31T09:00:00Z", 500), // prior month, ignored
	}
	ms := ComputeMonthly("2024-06", june14, jobs, models.DefaultSchedule(), nil, models.Settings{MonthlyTarget: 180})

	if ms.TotalJobs != 3 {
		t.Errorf("TotalJobs = %d, want 3", ms.TotalJobs)
	}
	if ms.TotalAW != 480 {
		t.Errorf("TotalAW = %d, want 480", ms.TotalAW)
	}
	if !approxEq(ms.SoldHours, 40) {
		t.Errorf("SoldHours = %v, want 40", ms.SoldHours)
	}
	if !approxEq(ms.AvailableHours, 80) {
		t.Errorf("AvailableHours = %v, want 80", ms.AvailableHours)
	}
	if !approxEq(ms.Efficiency, 50) {
		t.Errorf("Efficiency = %v, want 50", ms.Efficiency)
	}
	if ms.EfficiencyColor != "red" {
		t.Errorf("EfficiencyColor = %q, want red", ms.EfficiencyColor)
	}
	if !approxEq(ms.TargetHours, 180) {
		t.Errorf("TargetHours = %v, want 180", ms.TargetHours)
	}
	if !approxEq(ms.RemainingHours, 140) {
		t.Errorf("RemainingHours = %v, want 140", ms.RemainingHours)
	}
}

func TestComputeMonthlyAbsenceDedupAsymmetry(t *testing.T) {
	// Two target-deduction records on the same date: available hours drop by
	// one day, the target drops by two full days.
	absences := []models.Absence{
		{Month: "2024-06", AbsenceDate: "2024-06-10", DeductionType: models.DeductTarget},
		{Month: "2024-06", AbsenceDate: "2024-06-10", DeductionType: models.DeductTarget},
	}
	ms := ComputeMonthly("2024-06", june14, nil, models.DefaultSchedule(), absences, models.Settings{MonthlyTarget: 180})

	if !approxEq(ms.AvailableHours, 72) {
		t.Errorf("AvailableHours = %v, want 72", ms.AvailableHours)
	}
	if !approxEq(ms.TargetHours, 164) {
		t.Errorf("TargetHours = %v, want 164", ms.TargetHours)
	}
}

func TestTargetDeductionVariants(t *testing.T) {
	half := true
	custom := 3.0
	days := 2.5
	absences := []models.Absence{
		{AbsenceDate: "2024-06-03", DeductionType: models.DeductTarget, CustomHours: &custom},
		{AbsenceDate: "2024-06-04", DeductionType: models.DeductTarget, IsHalfDay: half},
		{AbsenceDate: "2024-06-05", DeductionType: models.DeductTarget, DaysCount: &days},
		{AbsenceDate: "2024-06-06", DeductionType: models.DeductAvailable}, // not a target record
	}
	got := targetDeduction(absences, 8)
	// 3 custom + 4 half day + 20 from 2.5 days
	if !approxEq(got, 27) {
		t.Errorf("targetDeduction = %v, want 27", got)
	}
}

func TestComputeMonthlyZeroAvailable(t *testing.T) {
	// Enough distinct absence dates to push available hours to zero and below;
	// efficiency must stay zero rather than divide by a non-positive figure.
	var absences []models.Absence
	for _, d := range []string{"03", "04", "05", "06", "07", "10", "11", "12", "13", "14", "17"} {
		absences = append(absences, models.Absence{
			Month:         "2024-06",
			AbsenceDate:   "2024-06-" + d,
			DeductionType: models.DeductAvailable,
		})
	}
	jobs := []models.Job{mkJob("2024-06-03T09:00:00Z", 48)}
	ms := ComputeMonthly("2024-06", june14, jobs, models.DefaultSchedule(), absences, models.Settings{MonthlyTarget: 180})

	if ms.AvailableHours >= 0 {
		t.Fatalf("AvailableHours = %v, want negative with 11 absences over 10 working days", ms.AvailableHours)
	}
	if ms.Efficiency != 0 {
		t.Errorf("Efficiency = %v, want 0 when no hours available", ms.Efficiency)
	}
}

func TestWorkingDaysToDate(t *testing.T) {
	weekdays := models.DefaultSchedule().WorkingDays

	if got := WorkingDaysToDate("2024-06", june14, weekdays); got != 10 {
		t.Errorf("current month = %d, want 10", got)
	}
	// Past month counts the whole month: May 2024 has 23 weekdays.
	if got := WorkingDaysToDate("2024-05", june14, weekdays); got != 23 {
		t.Errorf("past month = %d, want 23", got)
	}
	if got := WorkingDaysToDate("2024-07", june14, weekdays); got != 0 {
		t.Errorf("future month = %d, want 0", got)
	}
	if got := WorkingDaysToDate("garbage", june14, weekdays); got != 0 {
		t.Errorf("malformed month = %d, want 0", got)
	}
	// Saturday included in the schedule.
	if got := WorkingDaysToDate("2024-06", june14, []int{1, 2, 3, 4, 5, 6}); got != 12 {
		t.Errorf("with Saturdays = %d, want 12", got)
	}
}

func TestEfficiencyColor(t *testing.T) {
	tests := []struct {
		eff  float64
		want string
	}{
		{100, "green"},
		{90, "green"},
		{89.99, "yellow"},
		{75, "yellow"},
		{74.99, "red"},
		{0, "red"},
	}
	for _, tt := range tests {
		if got := EfficiencyColor(tt.eff); got != tt.want {
			t.Errorf("EfficiencyColor(%v) = %q, want %q", tt.eff, got, tt.want)
		}
	}
}

func TestComputeTargetDetails(t *testing.T) {
	td := ComputeTargetDetails(MonthlyStats{Month: "2024-06", TargetHours: 160, SoldHours: 40, RemainingHours: 120})
	if !approxEq(td.PercentComplete, 25) {
		t.Errorf("PercentComplete = %v, want 25", td.PercentComplete)
	}

	td = ComputeTargetDetails(MonthlyStats{Month: "2024-06", TargetHours: 0, SoldHours: 40})
	if td.PercentComplete != 0 {
		t.Errorf("PercentComplete with zero target = %v, want 0", td.PercentComplete)
	}
}

func TestComputeEfficiencyDetails(t *testing.T) {
	absences := []models.Absence{
		{Month: "2024-06", AbsenceDate: "2024-06-10", DeductionType: models.DeductAvailable},
	}
	jobs := []models.Job{mkJob("2024-06-03T09:00:00Z", 240)}
	ed := ComputeEfficiencyDetails("2024-06", june14, jobs, models.DefaultSchedule(), absences, models.Settings{MonthlyTarget: 180})

	if ed.WorkingDaysToDate != 10 || ed.AbsentDays != 1 || ed.ActualWorkingDays != 9 {
		t.Errorf("day counts = %d/%d/%d, want 10/1/9", ed.WorkingDaysToDate, ed.AbsentDays, ed.ActualWorkingDays)
	}
	if !approxEq(ed.AvailableHours, 72) {
		t.Errorf("AvailableHours = %v, want 72", ed.AvailableHours)
	}
	if !approxEq(ed.SoldHours, 20) {
		t.Errorf("SoldHours = %v, want 20", ed.SoldHours)
	}
	if ed.Formula == "" {
		t.Error("Formula must not be empty")
	}
}

func TestComputeAllTime(t *testing.T) {
	jobs := []models.Job{
		mkJob("2023-01-01T09:00:00Z", 12),
		mkJob("2024-06-03T09:00:00Z", 24),
	}
	at := ComputeAllTime(jobs)
	if at.TotalJobs != 2 || at.TotalAW != 36 || at.TotalMinutes != 180 {
		t.Errorf("all time = %+v", at)
	}
	if !approxEq(at.TotalHours, 3) {
		t.Errorf("TotalHours = %v, want 3", at.TotalHours)
	}
}

func TestComputePeriod(t *testing.T) {
	jobs := []models.Job{
		mkJob("2024-06-14T09:00:00Z", 10), // today
		mkJob("2024-06-12T09:00:00Z", 20), // same week (Sunday Jun 9 start)
		mkJob("2024-06-08T09:00:00Z", 30), // previous week, same month
		mkJob("2024-05-20T09:00:00Z", 40), // previous month
	}

	today := ComputePeriod("today", june14, jobs)
	if today.JobCount != 1 || today.TotalAW != 10 {
		t.Errorf("today = %+v", today)
	}
	if !approxEq(today.AverageAW, 10) {
		t.Errorf("today AverageAW = %v, want 10", today.AverageAW)
	}

	week := ComputePeriod("week", june14, jobs)
	if week.JobCount != 2 || week.TotalAW != 30 {
		t.Errorf("week = %+v", week)
	}

	month := ComputePeriod("month", june14, jobs)
	if month.JobCount != 3 || month.TotalAW != 60 {
		t.Errorf("month = %+v", month)
	}

	empty := ComputePeriod("today", june14, nil)
	if empty.JobCount != 0 || empty.AverageAW != 0 {
		t.Errorf("empty period = %+v", empty)
	}
}
