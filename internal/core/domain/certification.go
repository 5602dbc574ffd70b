package domain

import "time"

// Certification is a professional credential tracked for renewal and CEU
// bookkeeping.
type Certification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`

	Name                string   `json:"name"`
	IssuingOrganization string   `json:"issuingOrganization"`
	IssueDate           string   `json:"issueDate"`
	ExpirationDate      string   `json:"expirationDate,omitempty"`
	CredentialID        string   `json:"credentialId,omitempty"`
	CredentialURL       string   `json:"credentialUrl,omitempty"`
	CEUs                *float64 `json:"ceus,omitempty"`
	Notes               string   `json:"notes,omitempty"`
}

type CertificationDraft struct {
	Name                string   `json:"name,omitempty"`
	IssuingOrganization string   `json:"issuingOrganization,omitempty"`
	IssueDate           string   `json:"issueDate,omitempty"`
	ExpirationDate      string   `json:"expirationDate,omitempty"`
	CredentialID        string   `json:"credentialId,omitempty"`
	CredentialURL       string   `json:"credentialUrl,omitempty"`
	CEUs                *float64 `json:"ceus,omitempty"`
	Notes               string   `json:"notes,omitempty"`
}

func (d CertificationDraft) Validate() error {
	if blank(d.Name) {
		return Validationf("certification requires a name")
	}
	if blank(d.IssuingOrganization) {
		return Validationf("certification requires an issuingOrganization")
	}
	if blank(d.IssueDate) {
		return Validationf("certification requires an issueDate")
	}
	return nil
}

// ValidatePatch is a no-op: certification dates are stored as given and the
// required fields only apply to creates.
func (d CertificationDraft) ValidatePatch() error { return nil }

func (d CertificationDraft) Fields() Fields {
	f := Fields{}
	f.setString("name", d.Name)
	f.setString("issuingOrganization", d.IssuingOrganization)
	f.setString("issueDate", d.IssueDate)
	f.setString("expirationDate", d.ExpirationDate)
	f.setString("credentialId", d.CredentialID)
	f.setString("credentialUrl", d.CredentialURL)
	f.setFloat("ceus", d.CEUs)
	f.setString("notes", d.Notes)
	return f
}
