package domain

import "time"

type ProposalStatus string

const (
	ProposalNew      ProposalStatus = "new"
	ProposalAccepted ProposalStatus = "accepted"
	ProposalDeclined ProposalStatus = "declined"
)

// Proposal is an externally submitted appointment request waiting in the
// inbox. Accepting one creates a scheduled appointment; the proposal itself
// only records the outcome.
type Proposal struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`

	Sender       string         `json:"sender"`
	Subject      string         `json:"subject"`
	Body         string         `json:"body,omitempty"`
	ProposedDate string         `json:"proposedDate"`
	ProposedTime string         `json:"proposedTime,omitempty"`
	Status       ProposalStatus `json:"status"`
	IsRead       bool           `json:"isRead,omitempty"`

	// AppointmentID links to the appointment created on acceptance.
	AppointmentID string `json:"appointmentId,omitempty"`
}

// ProposalDraft is the intake payload arriving from the proposals queue.
type ProposalDraft struct {
	UserID       string `json:"userId"`
	Sender       string `json:"sender,omitempty"`
	Subject      string `json:"subject,omitempty"`
	Body         string `json:"body,omitempty"`
	ProposedDate string `json:"proposedDate,omitempty"`
	ProposedTime string `json:"proposedTime,omitempty"`
}

func (d ProposalDraft) Validate() error {
	if blank(d.UserID) {
		return Validationf("proposal requires a userId")
	}
	if blank(d.Sender) {
		return Validationf("proposal requires a sender")
	}
	if blank(d.Subject) {
		return Validationf("proposal requires a subject")
	}
	if blank(d.ProposedDate) {
		return Validationf("proposal requires a proposedDate")
	}
	if _, err := time.Parse(DateLayout, d.ProposedDate); err != nil {
		return Validationf("proposal date %q is not %s", d.ProposedDate, DateLayout)
	}
	if blank(d.ProposedTime) {
		return Validationf("proposal requires a proposedTime")
	}
	if _, err := time.Parse(TimeLayout, d.ProposedTime); err != nil {
		return Validationf("proposal time %q is not %s", d.ProposedTime, TimeLayout)
	}
	return nil
}

func (d ProposalDraft) Fields() Fields {
	f := Fields{}
	f.setString("sender", d.Sender)
	f.setString("subject", d.Subject)
	f.setString("body", d.Body)
	f.setString("proposedDate", d.ProposedDate)
	f.setString("proposedTime", d.ProposedTime)
	f.setString("status", string(ProposalNew))
	return f
}
