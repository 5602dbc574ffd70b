package usecase

import (
	"context"

	"github.com/LoriCiv/ten99/internal/core/domain"
	"github.com/LoriCiv/ten99/internal/core/ports"
)

// CalendarExportUseCase renders the user's schedule as an iCalendar feed.
// Canceled appointments (billable or not) are left out.
type CalendarExportUseCase struct {
	appointments ports.Collection[domain.Appointment]
	renderer     ports.CalendarRenderer
}

func NewCalendarExportUseCase(
	appointments ports.Collection[domain.Appointment],
	renderer ports.CalendarRenderer,
) *CalendarExportUseCase {
	return &CalendarExportUseCase{appointments: appointments, renderer: renderer}
}

func (uc *CalendarExportUseCase) Export(ctx context.Context, userID string) ([]byte, error) {
	appointments, err := uc.appointments.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	active := make([]domain.Appointment, 0, len(appointments))
	for _, appt := range appointments {
		if appt.Status == domain.AppointmentCanceled || appt.Status == domain.AppointmentCanceledBillable {
			continue
		}
		active = append(active, appt)
	}
	return uc.renderer.Render(active)
}
