// Package calendar renders appointments as an iCalendar feed.
package calendar

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/LoriCiv/ten99/internal/core/domain"
)

// Renderer serializes appointments into a VCALENDAR document. Appointment
// dates and times are wall-clock values without a zone, so events are
// emitted as floating local times. An appointment without a time becomes an
// all-day event; an end time at or before the start is taken to wrap past
// midnight.
type Renderer struct{}

func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Render(appointments []domain.Appointment) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)

	now := time.Now().UTC()
	for _, appt := range appointments {
		day, err := time.Parse(domain.DateLayout, appt.Date)
		if err != nil {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("%s@ten99", appt.ID))
		event.SetDtStampTime(now)
		event.SetSummary(appt.Subject)
		if appt.Address != "" {
			event.SetLocation(appt.Address)
		}
		if appt.Notes != "" {
			event.SetDescription(appt.Notes)
		}
		if appt.VirtualLink != "" {
			event.SetURL(appt.VirtualLink)
		}

		start, ok := combine(day, appt.Time)
		if !ok {
			event.SetAllDayStartAt(day)
			event.SetAllDayEndAt(day.AddDate(0, 0, 1))
			continue
		}
		event.SetStartAt(start)

		if end, ok := combine(day, appt.EndTime); ok {
			if !end.After(start) {
				end = end.AddDate(0, 0, 1)
			}
			event.SetEndAt(end)
		} else {
			event.SetEndAt(start.Add(time.Hour))
		}
	}

	return []byte(cal.Serialize()), nil
}

func combine(day time.Time, clock string) (time.Time, bool) {
	if clock == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(domain.TimeLayout, clock)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), true
}
