package intake

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a validation failure. All kinds are user-correctable;
// none are fatal.
type ErrorKind string

const (
	ErrMissingProviderField ErrorKind = "missing_provider_field"
	ErrMissingPatientName   ErrorKind = "missing_patient_name"
	ErrMissingDOB           ErrorKind = "missing_dob"
	ErrMissingDOSFrom       ErrorKind = "missing_dos_from"
	ErrMissingTotalCharges  ErrorKind = "missing_total_charges"
	ErrMissingCounty        ErrorKind = "missing_county"
	ErrIncompleteInsurance  ErrorKind = "incomplete_insurance"
	ErrIncompleteAttorney   ErrorKind = "incomplete_attorney"
)

// ValidationError reports the first failing check. Row is 1-based; zero for
// submission-level (provider) failures. Field names the offending input when
// one field in particular is to blame.
type ValidationError struct {
	Kind  ErrorKind `json:"kind"`
	Row   int       `json:"row,omitempty"`
	Field string    `json:"field,omitempty"`
}

func (e *ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s", e.Row, e.Kind)
	}
	return string(e.Kind)
}

// isBlank reports whether a text field is missing: trimmed-empty. Checkbox
// and flag fields are never blank (false is a valid entry), so blankness is
// only ever asked of strings.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateRow checks one row for completeness under the active mode. Checks
// run in a fixed order and stop at the first failure. rowIndex is 1-based
// and is carried into the returned error.
func ValidateRow(r *PatientRow, mode RequestMode, rowIndex int) error {
	if isBlank(r.PatientFirst) || isBlank(r.PatientLast) {
		return &ValidationError{Kind: ErrMissingPatientName, Row: rowIndex}
	}
	if isBlank(r.DOB) {
		return &ValidationError{Kind: ErrMissingDOB, Row: rowIndex}
	}
	if isBlank(r.DateOfServiceFrom) {
		return &ValidationError{Kind: ErrMissingDOSFrom, Row: rowIndex}
	}
	// Total charges is a free-text decimal; "0" counts as entered. Only
	// required when filing a new lien.
	if mode == ModeNewLien && isBlank(r.TotalCharges) {
		return &ValidationError{Kind: ErrMissingTotalCharges, Row: rowIndex}
	}
	if isBlank(r.County) {
		return &ValidationError{Kind: ErrMissingCounty, Row: rowIndex}
	}
	if r.Insurance != nil {
		if f := firstBlankInsuranceField(r.Insurance); f != "" {
			return &ValidationError{Kind: ErrIncompleteInsurance, Row: rowIndex, Field: f}
		}
	}
	if r.Attorney != nil {
		if f := firstBlankAttorneyField(r.Attorney); f != "" {
			return &ValidationError{Kind: ErrIncompleteAttorney, Row: rowIndex, Field: f}
		}
	}
	return nil
}

func firstBlankInsuranceField(i *InsuranceInfo) string {
	switch {
	case isBlank(i.CompanyName):
		return "company_name"
	case isBlank(i.Phone):
		return "phone"
	case isBlank(i.Address):
		return "address"
	case isBlank(i.PolicyNumber):
		return "policy_number"
	case isBlank(i.AdjusterName):
		return "adjuster_name"
	}
	return ""
}

func firstBlankAttorneyField(a *AttorneyInfo) string {
	switch {
	case isBlank(a.AttorneyName):
		return "attorney_name"
	case isBlank(a.FirmName):
		return "firm_name"
	case isBlank(a.Phone):
		return "phone"
	case isBlank(a.Address):
		return "address"
	}
	return ""
}

// ValidateProvider checks the once-per-submission provider block. Fax is the
// only optional field.
func ValidateProvider(p *ProviderInfo) error {
	required := []struct {
		name  string
		value string
	}{
		{"provider_name", p.ProviderName},
		{"contact_name", p.ContactName},
		{"practice_name", p.PracticeName},
		{"practice_address", p.PracticeAddress},
		{"lien_phone", p.LienPhone},
		{"lien_email", p.LienEmail},
	}
	for _, f := range required {
		if isBlank(f.value) {
			return &ValidationError{Kind: ErrMissingProviderField, Field: f.name}
		}
	}
	return nil
}
