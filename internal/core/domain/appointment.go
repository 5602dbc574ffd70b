package domain

import "time"

type AppointmentStatus string

const (
	AppointmentPending          AppointmentStatus = "pending"
	AppointmentScheduled        AppointmentStatus = "scheduled"
	AppointmentCompleted        AppointmentStatus = "completed"
	AppointmentCanceled         AppointmentStatus = "canceled"
	AppointmentCanceledBillable AppointmentStatus = "canceled-billable"
)

func KnownAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentPending, AppointmentScheduled, AppointmentCompleted,
		AppointmentCanceled, AppointmentCanceledBillable:
		return true
	}
	return false
}

type LocationType string

const (
	LocationPhysical LocationType = "physical"
	LocationVirtual  LocationType = "virtual"
)

const (
	// DateLayout and TimeLayout are the wall-clock formats used everywhere.
	// Dates and times are local calendar values and are never shifted by
	// timezone conversion.
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Appointment is a scheduled event. Status changes are direct overwrites with
// no enforced transition graph and no history log; canceling is terminal in
// practice because nothing restores a canceled appointment to scheduled.
// locationType gates which of address/virtualLink is active at render time;
// both may be stored.
type Appointment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`

	Subject string            `json:"subject"`
	Status  AppointmentStatus `json:"status,omitempty"`
	Date    string            `json:"date"`
	Time    string            `json:"time"`
	EndTime string            `json:"endTime,omitempty"`

	ClientID  string `json:"clientId,omitempty"`
	ContactID string `json:"contactId,omitempty"`
	JobFileID string `json:"jobFileId,omitempty"`

	JobType      string       `json:"jobType,omitempty"`
	LocationType LocationType `json:"locationType,omitempty"`
	Address      string       `json:"address,omitempty"`
	VirtualLink  string       `json:"virtualLink,omitempty"`
	Notes        string       `json:"notes,omitempty"`
}

type AppointmentDraft struct {
	Subject string            `json:"subject,omitempty"`
	Status  AppointmentStatus `json:"status,omitempty"`
	Date    string            `json:"date,omitempty"`
	Time    string            `json:"time,omitempty"`
	EndTime string            `json:"endTime,omitempty"`

	ClientID  string `json:"clientId,omitempty"`
	ContactID string `json:"contactId,omitempty"`
	JobFileID string `json:"jobFileId,omitempty"`

	JobType      string       `json:"jobType,omitempty"`
	LocationType LocationType `json:"locationType,omitempty"`
	Address      string       `json:"address,omitempty"`
	VirtualLink  string       `json:"virtualLink,omitempty"`
	Notes        string       `json:"notes,omitempty"`
}

func (d AppointmentDraft) Validate() error {
	if blank(d.Subject) {
		return Validationf("appointment requires a subject")
	}
	if blank(d.Date) {
		return Validationf("appointment requires a date")
	}
	if blank(d.Time) {
		return Validationf("appointment requires a time")
	}
	return d.ValidatePatch()
}

// ValidatePatch checks the format of whichever fields the draft carries
// without requiring any. Partial updates go through here so a patch can
// never store a malformed date or an unknown status.
func (d AppointmentDraft) ValidatePatch() error {
	if !blank(d.Date) {
		if _, err := time.Parse(DateLayout, d.Date); err != nil {
			return Validationf("appointment date %q is not %s", d.Date, DateLayout)
		}
	}
	if !blank(d.Time) {
		if _, err := time.Parse(TimeLayout, d.Time); err != nil {
			return Validationf("appointment time %q is not %s", d.Time, TimeLayout)
		}
	}
	if d.Status != "" && !KnownAppointmentStatus(d.Status) {
		return Validationf("unknown appointment status %q", d.Status)
	}
	if d.LocationType != "" && d.LocationType != LocationPhysical && d.LocationType != LocationVirtual {
		return Validationf("unknown location type %q", d.LocationType)
	}
	return nil
}

func (d AppointmentDraft) Fields() Fields {
	f := Fields{}
	f.setString("subject", d.Subject)
	f.setString("status", string(d.Status))
	f.setString("date", d.Date)
	f.setString("time", d.Time)
	f.setString("endTime", d.EndTime)
	f.setString("clientId", d.ClientID)
	f.setString("contactId", d.ContactID)
	f.setString("jobFileId", d.JobFileID)
	f.setString("jobType", d.JobType)
	f.setString("locationType", string(d.LocationType))
	f.setString("address", d.Address)
	f.setString("virtualLink", d.VirtualLink)
	f.setString("notes", d.Notes)
	return f
}
