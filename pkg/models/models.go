package models

// Domain models matching the database schema in db/migrations/0001_init.sql.
// Timestamps are ISO-8601 strings; the first 10 characters of a timestamp are
// the record's day bucket (see internal/calc.DayKey).

// VHCStatus is the outcome of a vehicle health check.
type VHCStatus string

const (
	VHCNone   VHCStatus = "NONE"
	VHCGreen  VHCStatus = "GREEN"
	VHCOrange VHCStatus = "ORANGE"
	VHCRed    VHCStatus = "RED"
)

// Job is one logged unit of work, identified by a 5-digit WIP number and a
// vehicle registration. AW ("Allocated Work") units convert at 1 AW = 5 minutes.
type Job struct {
	ID         string    `json:"id" db:"id"`
	WIPNumber  string    `json:"wipNumber" db:"wip_number"`
	VehicleReg string    `json:"vehicleReg" db:"vehicle_reg"`
	AW         int       `json:"aw" db:"aw"`
	Notes      string    `json:"notes,omitempty" db:"notes"`
	VHCStatus  VHCStatus `json:"vhcStatus" db:"vhc_status"`
	CreatedAt  string    `json:"createdAt" db:"created_at"`
	UpdatedAt  string    `json:"updatedAt,omitempty" db:"updated_at"`
	ImageURI   string    `json:"imageUri,omitempty" db:"image_uri"`
}

// JobPatch is a partial update; nil fields are left untouched. CreatedAt is
// editable, so a job's day bucket can move after creation.
type JobPatch struct {
	WIPNumber  *string    `json:"wipNumber,omitempty"`
	VehicleReg *string    `json:"vehicleReg,omitempty"`
	AW         *int       `json:"aw,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	VHCStatus  *VHCStatus `json:"vhcStatus,omitempty"`
	CreatedAt  *string    `json:"createdAt,omitempty"`
	ImageURI   *string    `json:"imageUri,omitempty"`
}

// Schedule is the singleton working pattern. WorkingDays holds weekday numbers
// with 0=Sunday through 6=Saturday.
type Schedule struct {
	DailyWorkingHours   float64  `json:"dailyWorkingHours" db:"daily_working_hours"`
	WorkingDays         []int    `json:"workingDays" db:"working_days"`
	StartTime           string   `json:"startTime" db:"start_time"`
	EndTime             string   `json:"endTime" db:"end_time"`
	LunchStartTime      string   `json:"lunchStartTime" db:"lunch_start_time"`
	LunchEndTime        string   `json:"lunchEndTime" db:"lunch_end_time"`
	SaturdayFrequency   string   `json:"saturdayFrequency" db:"saturday_frequency"`
	NextWorkingSaturday string   `json:"nextWorkingSaturday,omitempty" db:"next_working_saturday"`
	CustomSaturdayDates []string `json:"customSaturdayDates,omitempty" db:"custom_saturday_dates"`
}

type SchedulePatch struct {
	DailyWorkingHours   *float64  `json:"dailyWorkingHours,omitempty"`
	WorkingDays         *[]int    `json:"workingDays,omitempty"`
	StartTime           *string   `json:"startTime,omitempty"`
	EndTime             *string   `json:"endTime,omitempty"`
	LunchStartTime      *string   `json:"lunchStartTime,omitempty"`
	LunchEndTime        *string   `json:"lunchEndTime,omitempty"`
	SaturdayFrequency   *string   `json:"saturdayFrequency,omitempty"`
	NextWorkingSaturday *string   `json:"nextWorkingSaturday,omitempty"`
	CustomSaturdayDates *[]string `json:"customSaturdayDates,omitempty"`
}

// DefaultSchedule is returned when the schedule has never been written.
func DefaultSchedule() Schedule {
	return Schedule{
		DailyWorkingHours: 8.0,
		WorkingDays:       []int{1, 2, 3, 4, 5},
		StartTime:         "08:00",
		EndTime:           "17:00",
		LunchStartTime:    "12:00",
		LunchEndTime:      "13:00",
		SaturdayFrequency: "none",
	}
}

// DeductionType says whether an absence reduces the monthly target or the
// available-hours denominator.
type DeductionType string

const (
	DeductTarget    DeductionType = "target"
	DeductAvailable DeductionType = "available"
)

// Absence reduces hours for a given date. Exactly one of CustomHours,
// IsHalfDay and DaysCount should be set; precedence when several are present
// is CustomHours > IsHalfDay > DaysCount > full day.
type Absence struct {
	ID            string        `json:"id" db:"id"`
	Month         string        `json:"month" db:"month"`
	AbsenceDate   string        `json:"absenceDate" db:"absence_date"`
	DaysCount     *float64      `json:"daysCount,omitempty" db:"days_count"`
	IsHalfDay     bool          `json:"isHalfDay,omitempty" db:"is_half_day"`
	CustomHours   *float64      `json:"customHours,omitempty" db:"custom_hours"`
	DeductionType DeductionType `json:"deductionType" db:"deduction_type"`
	AbsenceType   string        `json:"absenceType,omitempty" db:"absence_type"`
}

// Settings is the singleton app configuration. PINHash never leaves the
// server; the PIN itself is only seen by the unlock endpoint.
type Settings struct {
	MonthlyTarget      float64 `json:"monthlyTarget" db:"monthly_target"`
	StreaksEnabled     bool    `json:"streaksEnabled" db:"streaks_enabled"`
	WeeklyStreakTarget int     `json:"weeklyStreakTarget" db:"weekly_streak_target"`
	PINHash            string  `json:"-" db:"pin_hash"`
}

type SettingsPatch struct {
	MonthlyTarget      *float64 `json:"monthlyTarget,omitempty"`
	StreaksEnabled     *bool    `json:"streaksEnabled,omitempty"`
	WeeklyStreakTarget *int     `json:"weeklyStreakTarget,omitempty"`
	PINHash            *string  `json:"-"`
}

func DefaultSettings() Settings {
	return Settings{
		MonthlyTarget:      180,
		StreaksEnabled:     true,
		WeeklyStreakTarget: 5,
	}
}

// TechnicianProfile is the singleton display profile.
type TechnicianProfile struct {
	Name string `json:"name" db:"name"`
}
