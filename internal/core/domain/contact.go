package domain

import "time"

// Contact is a person in the user's personal network, optionally linked to a
// Client. The clientId is a weak reference: deleting the client leaves the
// contact pointing at a nonexistent record.
type Contact struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`

	Name     string   `json:"name"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Address  string   `json:"address,omitempty"`
	Notes    string   `json:"notes,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	ClientID string   `json:"clientId,omitempty"`
}

type ContactDraft struct {
	Name     string   `json:"name,omitempty"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Address  string   `json:"address,omitempty"`
	Notes    string   `json:"notes,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	ClientID string   `json:"clientId,omitempty"`
}

func (d ContactDraft) Validate() error {
	if blank(d.Name) {
		return Validationf("contact requires a name")
	}
	return nil
}

// ValidatePatch is a no-op: contact fields carry no enum or format
// constraints beyond the create-time name requirement.
func (d ContactDraft) ValidatePatch() error { return nil }

func (d ContactDraft) Fields() Fields {
	f := Fields{}
	f.setString("name", d.Name)
	f.setString("email", d.Email)
	f.setString("phone", d.Phone)
	f.setString("address", d.Address)
	f.setString("notes", d.Notes)
	f.setStringList("tags", d.Tags)
	f.setString("clientId", d.ClientID)
	return f
}
