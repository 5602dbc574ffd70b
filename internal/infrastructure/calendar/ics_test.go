package calendar

import (
	"strings"
	"testing"

	"github.com/LoriCiv/ten99/internal/core/domain"
)

func TestRenderProducesEventPerAppointment(t *testing.T) {
	feed, err := New().Render([]domain.Appointment{
		{ID: "appt-1", Subject: "Deposition", Date: "2025-09-12", Time: "09:00", EndTime: "11:00", Address: "200 Main St"},
		{ID: "appt-2", Subject: "VRI shift", Date: "2025-09-13", Time: "22:00", EndTime: "01:00"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	out := string(feed)
	if !strings.HasPrefix(out, "BEGIN:VCALENDAR") {
		t.Fatalf("expected VCALENDAR document, got %q", out[:40])
	}
	if strings.Count(out, "BEGIN:VEVENT") != 2 {
		t.Fatalf("expected two events, got %d", strings.Count(out, "BEGIN:VEVENT"))
	}
	if !strings.Contains(out, "SUMMARY:Deposition") {
		t.Fatalf("expected subject as summary:\n%s", out)
	}
	if !strings.Contains(out, "LOCATION:200 Main St") {
		t.Fatalf("expected address as location:\n%s", out)
	}
}

func TestRenderSkipsUnparseableDates(t *testing.T) {
	feed, err := New().Render([]domain.Appointment{
		{ID: "bad", Subject: "broken", Date: "next friday"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(feed), "BEGIN:VEVENT") {
		t.Fatalf("unparseable appointment should be skipped:\n%s", feed)
	}
}

func TestRenderAllDayWithoutTime(t *testing.T) {
	feed, err := New().Render([]domain.Appointment{
		{ID: "appt-1", Subject: "Conference day", Date: "2025-09-12"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(feed), "VALUE=DATE") {
		t.Fatalf("expected all-day event without a time:\n%s", feed)
	}
}
