package domain

import "time"

// PublicJobFile is the anyone-with-the-ID projection of a JobFile. It is a
// copy, not a reference: it carries exactly jobTitle, status, and sharedNotes
// as they were at projection time and is never updated when the source
// changes. It must never contain privateNotes, userId, clientId, or
// attachment URLs.
type PublicJobFile struct {
	ID          string        `json:"id"`
	CreatedAt   time.Time     `json:"createdAt"`
	JobTitle    string        `json:"jobTitle"`
	Status      JobFileStatus `json:"status,omitempty"`
	SharedNotes string        `json:"sharedNotes"`
}

// ProjectJobFile derives the public projection of a job file. Pure; the
// restricted field set is the whole point, so nothing else from the source
// may be added here.
func ProjectJobFile(f JobFile) PublicJobFile {
	return PublicJobFile{
		JobTitle:    f.JobTitle,
		Status:      f.Status,
		SharedNotes: f.PrepMaterials.SharedNotes,
	}
}
