package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/LoriCiv/ten99/internal/core/domain"
	"github.com/LoriCiv/ten99/internal/core/ports"
)

// ParseAppointmentUseCase feeds free text plus the caller's roster to the
// text parser and hardens the result: roster IDs the parser invented are
// cleared, and endTime is derived from duration when absent. Failures are
// non-destructive; no draft is returned alongside an error.
type ParseAppointmentUseCase struct {
	clients  ports.Collection[domain.Client]
	contacts ports.Collection[domain.Contact]
	parser   ports.AppointmentParser
	now      func() time.Time
}

func NewParseAppointmentUseCase(
	clients ports.Collection[domain.Client],
	contacts ports.Collection[domain.Contact],
	parser ports.AppointmentParser,
	now func() time.Time,
) *ParseAppointmentUseCase {
	if now == nil {
		now = time.Now
	}
	return &ParseAppointmentUseCase{
		clients:  clients,
		contacts: contacts,
		parser:   parser,
		now:      now,
	}
}

func (uc *ParseAppointmentUseCase) Parse(ctx context.Context, userID, text string) (*domain.AppointmentPrefill, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.Validationf("text to parse is required")
	}

	clientRoster, contactRoster, err := uc.roster(ctx, userID)
	if err != nil {
		return nil, err
	}

	prefill, err := uc.parser.Parse(ctx, text, clientRoster, contactRoster, uc.now().Year())
	if err != nil {
		return nil, err
	}

	prefill.FilterRoster(clientRoster, contactRoster)
	prefill.ResolveEndTime()
	return prefill, nil
}

func (uc *ParseAppointmentUseCase) roster(ctx context.Context, userID string) ([]domain.RosterEntry, []domain.RosterEntry, error) {
	clients, err := uc.clients.List(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	contacts, err := uc.contacts.List(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	clientRoster := make([]domain.RosterEntry, 0, len(clients))
	for _, c := range clients {
		clientRoster = append(clientRoster, domain.RosterEntry{ID: c.ID, Name: c.DisplayName()})
	}
	contactRoster := make([]domain.RosterEntry, 0, len(contacts))
	for _, c := range contacts {
		contactRoster = append(contactRoster, domain.RosterEntry{ID: c.ID, Name: c.Name})
	}
	return clientRoster, contactRoster, nil
}
