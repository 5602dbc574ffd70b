package domain

import "time"

type ClientType string

const (
	ClientBusiness1099   ClientType = "business_1099"
	ClientIndividual1099 ClientType = "individual_1099"
	ClientEmployerW2     ClientType = "employer_w2"
)

type ClientStatus string

const (
	ClientActive   ClientStatus = "Active"
	ClientInactive ClientStatus = "Inactive"
	ClientLead     ClientStatus = "Lead"
)

type PayFrequency string

const (
	PayWeekly      PayFrequency = "weekly"
	PayBiweekly    PayFrequency = "biweekly"
	PaySemimonthly PayFrequency = "semimonthly"
	PayMonthly     PayFrequency = "monthly"
)

// Client is a billing entity: a 1099 company, a 1099 individual payer, or a
// W-2 employer. The financial fields are only meaningful for particular
// client types but are stored as given; the model does not enforce mutual
// exclusion.
type Client struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`

	ClientType  ClientType   `json:"clientType,omitempty"`
	CompanyName string       `json:"companyName,omitempty"`
	Name        string       `json:"name,omitempty"`
	Status      ClientStatus `json:"status,omitempty"`

	JobTitle     string `json:"jobTitle,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	Website      string `json:"website,omitempty"`
	Notes        string `json:"notes,omitempty"`
	BillingEmail string `json:"billingEmail,omitempty"`

	Rate               *float64     `json:"rate,omitempty"`
	Differentials      string       `json:"differentials,omitempty"`
	PayFrequency       PayFrequency `json:"payFrequency,omitempty"`
	FederalWithholding *float64     `json:"federalWithholding,omitempty"`
	StateWithholding   *float64     `json:"stateWithholding,omitempty"`
}

// ClientDraft carries caller-supplied client fields for a save. Everything is
// optional at the type level; Validate enforces what a create requires.
type ClientDraft struct {
	ClientType  ClientType   `json:"clientType,omitempty"`
	CompanyName string       `json:"companyName,omitempty"`
	Name        string       `json:"name,omitempty"`
	Status      ClientStatus `json:"status,omitempty"`

	JobTitle     string `json:"jobTitle,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	Website      string `json:"website,omitempty"`
	Notes        string `json:"notes,omitempty"`
	BillingEmail string `json:"billingEmail,omitempty"`

	Rate               *float64     `json:"rate,omitempty"`
	Differentials      string       `json:"differentials,omitempty"`
	PayFrequency       PayFrequency `json:"payFrequency,omitempty"`
	FederalWithholding *float64     `json:"federalWithholding,omitempty"`
	StateWithholding   *float64     `json:"stateWithholding,omitempty"`
}

func (d ClientDraft) Validate() error {
	if blank(d.CompanyName) && blank(d.Name) {
		return Validationf("client requires a companyName or a name")
	}
	return d.ValidatePatch()
}

// ValidatePatch checks the enum fields a partial update carries; the
// companyName-or-name requirement applies only to creates.
func (d ClientDraft) ValidatePatch() error {
	if d.Status != "" && d.Status != ClientActive && d.Status != ClientInactive && d.Status != ClientLead {
		return Validationf("unknown client status %q", d.Status)
	}
	if d.ClientType != "" && d.ClientType != ClientBusiness1099 && d.ClientType != ClientIndividual1099 && d.ClientType != ClientEmployerW2 {
		return Validationf("unknown client type %q", d.ClientType)
	}
	return nil
}

func (d ClientDraft) Fields() Fields {
	f := Fields{}
	f.setString("clientType", string(d.ClientType))
	f.setString("companyName", d.CompanyName)
	f.setString("name", d.Name)
	f.setString("status", string(d.Status))
	f.setString("jobTitle", d.JobTitle)
	f.setString("email", d.Email)
	f.setString("phone", d.Phone)
	f.setString("address", d.Address)
	f.setString("website", d.Website)
	f.setString("notes", d.Notes)
	f.setString("billingEmail", d.BillingEmail)
	f.setFloat("rate", d.Rate)
	f.setString("differentials", d.Differentials)
	f.setString("payFrequency", string(d.PayFrequency))
	f.setFloat("federalWithholding", d.FederalWithholding)
	f.setFloat("stateWithholding", d.StateWithholding)
	return f
}

// DisplayName is the roster name used for AI prefill and list views.
func (c Client) DisplayName() string {
	if c.CompanyName != "" {
		return c.CompanyName
	}
	return c.Name
}
