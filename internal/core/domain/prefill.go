package domain

// RosterEntry is the {id, name} pair handed to the text parser so it can
// resolve mentions of known clients and contacts.
type RosterEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AppointmentPrefill is the structured draft extracted from free text. Every
// field is an untrusted suggestion: the parser is instructed not to invent
// roster IDs, but the caller must not rely on that instruction.
type AppointmentPrefill struct {
	Subject           string `json:"subject,omitempty"`
	Date              string `json:"date,omitempty"`
	Time              string `json:"time,omitempty"`
	EndTime           string `json:"endTime,omitempty"`
	DurationInMinutes int    `json:"durationInMinutes,omitempty"`
	Notes             string `json:"notes,omitempty"`
	JobType           string `json:"jobType,omitempty"`
	Address           string `json:"address,omitempty"`
	VirtualLink       string `json:"virtualLink,omitempty"`
	ClientID          string `json:"clientId,omitempty"`
	ContactID         string `json:"contactId,omitempty"`
}

// ResolveEndTime derives endTime from time and durationInMinutes when the
// parser supplied a duration but no explicit end.
func (p *AppointmentPrefill) ResolveEndTime() {
	if p.EndTime == "" && p.Time != "" && p.DurationInMinutes > 0 {
		p.EndTime = CalculateEndTime(p.Time, p.DurationInMinutes)
	}
}

// FilterRoster clears any clientId/contactId that does not appear in the
// actual roster, discarding hallucinated references.
func (p *AppointmentPrefill) FilterRoster(clients, contacts []RosterEntry) {
	if p.ClientID != "" && !rosterHas(clients, p.ClientID) {
		p.ClientID = ""
	}
	if p.ContactID != "" && !rosterHas(contacts, p.ContactID) {
		p.ContactID = ""
	}
}

func rosterHas(roster []RosterEntry, id string) bool {
	for _, entry := range roster {
		if entry.ID == id {
			return true
		}
	}
	return false
}
