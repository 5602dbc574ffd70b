package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/LoriCiv/ten99/internal/core/domain"
	"github.com/LoriCiv/ten99/internal/core/ports"
)

// InboxUseCase handles externally submitted appointment proposals: intake
// from the proposals queue, conflict-annotated listing, and the
// accept/decline decisions. Accepting is the pending-to-scheduled path: it
// creates a scheduled appointment from the proposal and records the outcome
// on the proposal. A day-level conflict warns but never blocks acceptance.
type InboxUseCase struct {
	proposals    ports.Collection[domain.Proposal]
	appointments ports.Collection[domain.Appointment]
}

func NewInboxUseCase(
	proposals ports.Collection[domain.Proposal],
	appointments ports.Collection[domain.Appointment],
) *InboxUseCase {
	return &InboxUseCase{proposals: proposals, appointments: appointments}
}

// InboxItem is a proposal annotated with the schedule conflict flag.
type InboxItem struct {
	domain.Proposal
	Conflict bool `json:"conflict"`
}

// AcceptResult reports the appointment created from a proposal. Conflict
// repeats the day-level check at decision time so the operator sees it even
// if the schedule changed since the listing.
type AcceptResult struct {
	Appointment domain.Appointment `json:"appointment"`
	Conflict    bool               `json:"conflict"`
}

// Intake validates and stores a proposal arriving from the queue.
func (uc *InboxUseCase) Intake(ctx context.Context, draft domain.ProposalDraft) (*domain.Proposal, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	return uc.proposals.Create(ctx, draft.UserID, draft.Fields())
}

func (uc *InboxUseCase) List(ctx context.Context, userID string) ([]InboxItem, error) {
	proposals, err := uc.proposals.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	schedule, err := uc.appointments.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]InboxItem, 0, len(proposals))
	for _, p := range proposals {
		items = append(items, InboxItem{
			Proposal: p,
			Conflict: proposalConflicts(p, schedule),
		})
	}
	return items, nil
}

func (uc *InboxUseCase) Accept(ctx context.Context, userID, proposalID string) (*AcceptResult, error) {
	proposal, err := uc.proposals.Get(ctx, userID, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.Status != domain.ProposalNew {
		return nil, domain.Validationf("proposal already %s", proposal.Status)
	}

	schedule, err := uc.appointments.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	conflict := proposalConflicts(*proposal, schedule)

	draft := domain.AppointmentDraft{
		Subject: proposal.Subject,
		Status:  domain.AppointmentScheduled,
		Date:    proposal.ProposedDate,
		Time:    proposal.ProposedTime,
		Notes:   proposal.Body,
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	appt, err := uc.appointments.Create(ctx, userID, draft.Fields())
	if err != nil {
		return nil, err
	}

	// Second, independent write. If it fails the appointment stays; there is
	// no cross-entity transaction, so the caller gets the error and the
	// proposal remains acceptable.
	_, err = uc.proposals.Update(ctx, userID, proposalID, domain.Fields{
		"status":        string(domain.ProposalAccepted),
		"appointmentId": appt.ID,
		"isRead":        true,
	})
	if err != nil {
		return nil, fmt.Errorf("appointment %s created but proposal not marked accepted: %w", appt.ID, err)
	}

	return &AcceptResult{Appointment: *appt, Conflict: conflict}, nil
}

func (uc *InboxUseCase) Decline(ctx context.Context, userID, proposalID string) error {
	proposal, err := uc.proposals.Get(ctx, userID, proposalID)
	if err != nil {
		return err
	}
	if proposal.Status != domain.ProposalNew {
		return domain.Validationf("proposal already %s", proposal.Status)
	}
	_, err = uc.proposals.Update(ctx, userID, proposalID, domain.Fields{
		"status": string(domain.ProposalDeclined),
		"isRead": true,
	})
	return err
}

func proposalConflicts(p domain.Proposal, schedule []domain.Appointment) bool {
	day, err := time.Parse(domain.DateLayout, p.ProposedDate)
	if err != nil {
		return false
	}
	return domain.HasConflict(day, schedule)
}
