package domain

import "time"

type JobFileStatus string

const (
	JobFilePending    JobFileStatus = "pending"
	JobFileUpcoming   JobFileStatus = "upcoming"
	JobFileInProgress JobFileStatus = "in-progress"
	JobFileCompleted  JobFileStatus = "completed"
	JobFileCancelled  JobFileStatus = "cancelled"
)

// KnownJobFileStatus reports whether s names a job-file status. Any known
// status may replace any other: the job-file status is informational and has
// no enforced transition graph.
func KnownJobFileStatus(s JobFileStatus) bool {
	switch s {
	case JobFilePending, JobFileUpcoming, JobFileInProgress, JobFileCompleted, JobFileCancelled:
		return true
	}
	return false
}

type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// PrepMaterials splits job prep notes by visibility. PrivateNotes is
// owner-only and must never reach a public projection; SharedNotes is the one
// field allowed to leave the private store.
type PrepMaterials struct {
	PrivateNotes string       `json:"privateNotes,omitempty"`
	SharedNotes  string       `json:"sharedNotes,omitempty"`
	Attachments  []Attachment `json:"attachments,omitempty"`
}

// JobFile is the prep/work record for an engagement. clientId and
// appointmentId are weak references with no cascade behavior.
type JobFile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`

	JobTitle      string        `json:"jobTitle"`
	Status        JobFileStatus `json:"status,omitempty"`
	ClientID      string        `json:"clientId,omitempty"`
	AppointmentID string        `json:"appointmentId,omitempty"`
	PrepMaterials PrepMaterials `json:"prepMaterials"`
}

type JobFileDraft struct {
	JobTitle      string        `json:"jobTitle,omitempty"`
	Status        JobFileStatus `json:"status,omitempty"`
	ClientID      string        `json:"clientId,omitempty"`
	AppointmentID string        `json:"appointmentId,omitempty"`
	PrepMaterials PrepMaterials `json:"prepMaterials,omitempty"`
}

func (d JobFileDraft) Validate() error {
	if blank(d.JobTitle) {
		return Validationf("job file requires a jobTitle")
	}
	return d.ValidatePatch()
}

// ValidatePatch checks the status enum when a partial update carries one.
func (d JobFileDraft) ValidatePatch() error {
	if d.Status != "" && !KnownJobFileStatus(d.Status) {
		return Validationf("unknown job file status %q", d.Status)
	}
	return nil
}

func (d JobFileDraft) Fields() Fields {
	f := Fields{}
	f.setString("jobTitle", d.JobTitle)
	f.setString("status", string(d.Status))
	f.setString("clientId", d.ClientID)
	f.setString("appointmentId", d.AppointmentID)

	prep := Fields{}
	prep.setString("privateNotes", d.PrepMaterials.PrivateNotes)
	prep.setString("sharedNotes", d.PrepMaterials.SharedNotes)
	attachments := make([]Attachment, 0, len(d.PrepMaterials.Attachments))
	for _, a := range d.PrepMaterials.Attachments {
		if blank(a.Name) && blank(a.URL) {
			continue
		}
		attachments = append(attachments, a)
	}
	if len(attachments) > 0 {
		prep["attachments"] = attachments
	}
	f.setMap("prepMaterials", prep)
	return f
}
