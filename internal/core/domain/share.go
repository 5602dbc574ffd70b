package domain

// ShareLink identifies a freshly published projection. The URL is the public
// base path with the opaque publicId appended.
type ShareLink struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
}

// ShareEmail is the outbound notification that a job file has been shared.
// All four fields are required before any network call is made; the link is
// self-generated by the share workflow, never user input.
type ShareEmail struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Link    string `json:"link"`
}

func (m ShareEmail) Validate() error {
	if blank(m.To) {
		return Validationf("share email requires a recipient")
	}
	if blank(m.From) {
		return Validationf("share email requires a sender")
	}
	if blank(m.Subject) {
		return Validationf("share email requires a subject")
	}
	if blank(m.Link) {
		return Validationf("share email requires a link")
	}
	return nil
}
