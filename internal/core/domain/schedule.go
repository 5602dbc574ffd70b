package domain

import (
	"fmt"
	"time"
)

// HasConflict reports whether the proposed moment falls on the same calendar
// date as any appointment in the schedule. The check is day-granular on
// purpose: two events on the same day at different times still conflict,
// because availability in this domain is per day, not per slot. An empty
// schedule never conflicts. Appointments whose date does not parse are
// skipped.
func HasConflict(proposed time.Time, schedule []Appointment) bool {
	py, pm, pd := proposed.Date()
	for _, appt := range schedule {
		day, err := time.Parse(DateLayout, appt.Date)
		if err != nil {
			continue
		}
		y, m, d := day.Date()
		if y == py && m == pm && d == pd {
			return true
		}
	}
	return false
}

// CalculateEndTime adds a duration in minutes to a wall-clock start time and
// returns the resulting HH:MM string. An end past midnight wraps to an
// early-morning time on the same nominal date; the date is not advanced.
// Returns "" when either input is missing or the start time is malformed.
func CalculateEndTime(start string, durationInMinutes int) string {
	if start == "" || durationInMinutes == 0 {
		return ""
	}
	t, err := time.Parse(TimeLayout, start)
	if err != nil {
		return ""
	}
	end := t.Add(time.Duration(durationInMinutes) * time.Minute)
	return fmt.Sprintf("%02d:%02d", end.Hour(), end.Minute())
}
