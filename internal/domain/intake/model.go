// Package intake holds the bulk filing-request model: patient rows with
// optional insurance/attorney sub-records, the provider block, the mailing
// election, and the editable session that groups them.
package intake

import (
	"time"

	"github.com/google/uuid"

	"github.com/medlienpros/lienfile/internal/platform/money"
)

// RequestMode selects what the submission asks us to file. It is global to
// the session and drives which row fields are required.
type RequestMode string

const (
	ModeNewLien RequestMode = "new_lien"
	ModeRelease RequestMode = "release"
)

func (m RequestMode) Valid() bool {
	return m == ModeNewLien || m == ModeRelease
}

// MailingMethod is the notice-mailing election for the whole submission.
// Standard first-class mail is bundled into the base fee.
type MailingMethod string

const (
	MailStandard    MailingMethod = "standard"
	MailCertified   MailingMethod = "certified"
	MailCertifiedRR MailingMethod = "certified_rr"
)

func (m MailingMethod) Valid() bool {
	return m == MailStandard || m == MailCertified || m == MailCertifiedRR
}

// InsuranceInfo is the third-party insurance sub-record. All fields travel
// together: a row either has the complete record or none of it.
type InsuranceInfo struct {
	CompanyName  string `json:"company_name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	PolicyNumber string `json:"policy_number"`
	AdjusterName string `json:"adjuster_name"`
}

// AttorneyInfo is the representing-attorney sub-record, same all-or-nothing
// contract as InsuranceInfo.
type AttorneyInfo struct {
	AttorneyName string `json:"attorney_name"`
	FirmName     string `json:"firm_name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

// PatientRow is one patient's filing request within a bulk submission.
// Dates are carried as the date strings the form produced; the engine only
// cares whether they are present. A nil Insurance/Attorney pointer means the
// optional sub-record is absent; the "present but partially filled" state is
// representable only long enough for validation to reject it.
type PatientRow struct {
	PatientFirst      string `json:"patient_first"`
	PatientLast       string `json:"patient_last"`
	DOB               string `json:"dob"`
	DateOfInjury      string `json:"date_of_injury,omitempty"`
	DateOfServiceFrom string `json:"date_of_service_from"`
	DateOfServiceTo   string `json:"date_of_service_to,omitempty"`
	TreatmentOngoing  bool   `json:"treatment_ongoing"`
	TotalCharges      string `json:"total_charges,omitempty"`
	County            string `json:"county"`
	AccidentLocation  string `json:"accident_location,omitempty"`
	Rush              bool   `json:"rush"`
	Notes             string `json:"notes,omitempty"`

	Insurance *InsuranceInfo `json:"insurance,omitempty"`
	Attorney  *AttorneyInfo  `json:"attorney,omitempty"`
}

// NewPatientRow returns an empty row ready for editing.
func NewPatientRow() PatientRow {
	return PatientRow{}
}

// ProviderInfo is collected once per submission, not per row.
type ProviderInfo struct {
	ProviderName    string `json:"provider_name"`
	ContactName     string `json:"contact_name"`
	PracticeName    string `json:"practice_name"`
	PracticeAddress string `json:"practice_address"`
	Fax             string `json:"fax,omitempty"`
	LienPhone       string `json:"lien_phone"`
	LienEmail       string `json:"lien_email"`
}

// MailingElection is the chosen notice-mailing method and its cost inputs.
// PostagePerPiece is a pass-through USPS estimate, meaningful only when the
// method is not standard.
type MailingElection struct {
	Method          MailingMethod `json:"method"`
	RecipientCount  int           `json:"recipient_count"`
	PostagePerPiece money.Cents   `json:"postage_per_piece_cents"`
}

// FileMetadata identifies an attached supporting document. Byte content is
// never retained by this core.
type FileMetadata struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
}

// Quote is the priced view of a session: per-row totals, the mailing
// estimate, and the grand total, all in integer cents.
type Quote struct {
	BaseFee           money.Cents   `json:"base_fee_cents"`
	RowTotals         []money.Cents `json:"row_total_cents"`
	MailingTotal      money.Cents   `json:"mailing_total_cents"`
	GrandTotal        money.Cents   `json:"grand_total_cents"`
	GrandTotalDisplay string        `json:"grand_total_display"`
}

// Quoter computes a Quote from session state. The pricing engine implements
// it; the session layer stays ignorant of fee amounts.
type Quoter interface {
	Quote(mode RequestMode, rows []PatientRow, mailing MailingElection) Quote
}

// Session is the editable state owned by one logical intake at a time. It is
// created empty with a single row and discarded on submission or abandon.
type Session struct {
	ID        uuid.UUID       `json:"id"`
	Mode      RequestMode     `json:"mode"`
	Provider  ProviderInfo    `json:"provider"`
	Rows      []PatientRow    `json:"rows"`
	Mailing   MailingElection `json:"mailing"`
	Files     []FileMetadata  `json:"files,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
