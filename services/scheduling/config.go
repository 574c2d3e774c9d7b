package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fieldline/models"
)

// Window is a time-of-day range in minutes from midnight. Bounds are
// inclusive, matching how peak pricing windows are advertised to customers.
type Window struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether the minute-of-day falls inside the window.
func (w Window) Contains(minute int) bool {
	return minute >= w.Start && minute <= w.End
}

// Config carries every scheduling constant for one engine instance. Each
// business service gets its own Config so one process can serve tenants with
// different buffers, multipliers and shift defaults.
type Config struct {
	BufferMinutes         int `mapstructure:"buffer_minutes"`
	DefaultTravelMinutes  int `mapstructure:"default_travel_minutes"`
	CloseTravelMinutes    int `mapstructure:"close_travel_minutes"`    // same 3-digit zip prefix
	RegionalTravelMinutes int `mapstructure:"regional_travel_minutes"` // same 2-digit zip prefix
	MaxTravelMinutes      int `mapstructure:"max_travel_minutes"`
	MinSlotMinutes        int `mapstructure:"min_slot_minutes"`
	MaxAdvanceDays        int `mapstructure:"max_advance_days"`
	LeadTimeMinutes       int `mapstructure:"lead_time_minutes"` // earliest start offset for today
	SameDayCutoffHour     int `mapstructure:"same_day_cutoff_hour"`

	PeakWindows         []Window `mapstructure:"-"`
	PeakMultiplier      float64  `mapstructure:"peak_multiplier"`
	WeekendMultiplier   float64  `mapstructure:"weekend_multiplier"`
	EmergencyMultiplier float64  `mapstructure:"emergency_multiplier"`
	SameDayMultiplier   float64  `mapstructure:"same_day_multiplier"`
	ExtraTechFeeRate    float64  `mapstructure:"extra_tech_fee_rate"`

	DefaultShift         models.TechnicianShift `mapstructure:"-"`
	DefaultMaxJobsPerDay int                    `mapstructure:"default_max_jobs_per_day"`

	EmergencyBusyPenaltyMinutes int `mapstructure:"emergency_busy_penalty_minutes"`
	EmergencyJobMinutes         int `mapstructure:"emergency_job_minutes"`
	TwoTechSearchDays           int `mapstructure:"two_tech_search_days"`
	MultiDayScanCap             int `mapstructure:"multi_day_scan_cap"`
}

// DefaultConfig returns the industry defaults for home-service scheduling.
func DefaultConfig() Config {
	return Config{
		BufferMinutes:         15,
		DefaultTravelMinutes:  30,
		CloseTravelMinutes:    15,
		RegionalTravelMinutes: 25,
		MaxTravelMinutes:      60,
		MinSlotMinutes:        30,
		MaxAdvanceDays:        90,
		LeadTimeMinutes:       30,
		SameDayCutoffHour:     15,
		PeakWindows: []Window{
			{Start: 8 * 60, End: 10 * 60},
			{Start: 16 * 60, End: 18 * 60},
		},
		PeakMultiplier:      1.25,
		WeekendMultiplier:   1.5,
		EmergencyMultiplier: 2.0,
		SameDayMultiplier:   1.35,
		ExtraTechFeeRate:    0.5,
		DefaultShift: models.TechnicianShift{
			Start:      8 * 60,
			End:        17 * 60,
			BreakStart: 12 * 60,
			BreakEnd:   13 * 60,
		},
		DefaultMaxJobsPerDay:        8,
		EmergencyBusyPenaltyMinutes: 30,
		EmergencyJobMinutes:         120,
		TwoTechSearchDays:           14,
		MultiDayScanCap:             30,
	}
}

// forBusiness overlays a tenant's own multipliers and peak windows onto the
// engine defaults. Zero values mean "not configured" and keep the default.
func (c Config) forBusiness(b models.Business) Config {
	if b.WeekendMultiplier > 0 {
		c.WeekendMultiplier = b.WeekendMultiplier
	}
	if b.PeakMultiplier > 0 {
		c.PeakMultiplier = b.PeakMultiplier
	}
	if b.EmergencyMultiplier > 0 {
		c.EmergencyMultiplier = b.EmergencyMultiplier
	}
	if b.SameDayMultiplier > 0 {
		c.SameDayMultiplier = b.SameDayMultiplier
	}
	if len(b.PeakWindows) > 0 {
		windows := make([]Window, 0, len(b.PeakWindows))
		for _, raw := range b.PeakWindows {
			if w, err := ParseWindow(raw); err == nil {
				windows = append(windows, w)
			}
		}
		if len(windows) > 0 {
			c.PeakWindows = windows
		}
	}
	return c
}

// ParseClock converts "HH:MM" to minutes from midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return hour*60 + minute, nil
}

// ParseWindow converts "HH:MM-HH:MM" to a Window.
func ParseWindow(s string) (Window, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return Window{}, fmt.Errorf("invalid time range %q", s)
	}
	start, err := ParseClock(parts[0])
	if err != nil {
		return Window{}, err
	}
	end, err := ParseClock(parts[1])
	if err != nil {
		return Window{}, err
	}
	if end <= start {
		return Window{}, fmt.Errorf("time range %q ends before it starts", s)
	}
	return Window{Start: start, End: end}, nil
}

// weekdayKey returns the lowercase full weekday name used by business-hours
// and technician-availability maps.
func weekdayKey(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// isWeekend reports whether the date falls on Saturday or Sunday.
func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// atMinutes returns the instant on date's calendar day at the given
// minutes-from-midnight offset.
func atMinutes(date time.Time, minutes int) time.Time {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return midnight.Add(time.Duration(minutes) * time.Minute)
}

// minuteOfDay converts an instant to minutes from local midnight.
func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// sameDate reports whether two instants fall on the same calendar day.
func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
