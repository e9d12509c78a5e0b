package intake

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medlienpros/lienfile/internal/platform/money"
)

// MaxRows bounds a bulk submission. Add past the cap is ignored; remove
// below one row is a no-op.
const MaxRows = 100

// NewSession creates an empty editable session with a single blank row.
// The mailing recipient count is seeded per mode: releases carry no
// statutory notice obligation, new liens start at the configured default.
func NewSession(mode RequestMode, defaultRecipients int) *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:        uuid.New(),
		Mode:      mode,
		Rows:      []PatientRow{NewPatientRow()},
		Mailing:   MailingElection{Method: MailStandard},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if mode != ModeRelease {
		s.Mailing.RecipientCount = defaultRecipients
	}
	return s
}

// SetMode runs the request-mode transition. The dependent-field cleanup and
// the mode assignment happen in one step so no caller ever observes rows
// that still reflect the old mode.
func (s *Session) SetMode(next RequestMode, defaultRecipients int) {
	prev := s.Mode
	if prev == next {
		return
	}

	if next == ModeRelease {
		// These fields are meaningless for a release.
		for i := range s.Rows {
			s.Rows[i].DateOfServiceTo = ""
			s.Rows[i].TreatmentOngoing = false
			s.Rows[i].TotalCharges = ""
			s.Rows[i].AccidentLocation = ""
		}
		s.Mailing.RecipientCount = 0
	}

	if prev == ModeRelease && next != ModeRelease {
		if s.Mailing.RecipientCount <= 0 {
			s.Mailing.RecipientCount = defaultRecipients
		}
	}

	s.Mode = next
	s.touch()
}

// AddRow appends an empty row, reporting false when the session is already
// at the cap.
func (s *Session) AddRow() bool {
	if len(s.Rows) >= MaxRows {
		return false
	}
	s.Rows = append(s.Rows, NewPatientRow())
	s.touch()
	return true
}

// RemoveRow deletes the row at the given zero-based index. Removing the last
// remaining row is a no-op: a session always holds at least one row.
func (s *Session) RemoveRow(i int) bool {
	if len(s.Rows) <= 1 || i < 0 || i >= len(s.Rows) {
		return false
	}
	s.Rows = append(s.Rows[:i], s.Rows[i+1:]...)
	s.touch()
	return true
}

// RowUpdate carries a partial edit to one row. Nil fields are untouched.
type RowUpdate struct {
	PatientFirst      *string `json:"patient_first"`
	PatientLast       *string `json:"patient_last"`
	DOB               *string `json:"dob"`
	DateOfInjury      *string `json:"date_of_injury"`
	DateOfServiceFrom *string `json:"date_of_service_from"`
	DateOfServiceTo   *string `json:"date_of_service_to"`
	TreatmentOngoing  *bool   `json:"treatment_ongoing"`
	TotalCharges      *string `json:"total_charges"`
	County            *string `json:"county"`
	AccidentLocation  *string `json:"accident_location"`
	Rush              *bool   `json:"rush"`
	Notes             *string `json:"notes"`
}

// ApplyRowUpdate patches the row at the zero-based index. Fields that the
// active mode forces absent are dropped rather than stored, so a release
// session can never accumulate new-lien-only values.
func (s *Session) ApplyRowUpdate(i int, u RowUpdate) error {
	if i < 0 || i >= len(s.Rows) {
		return fmt.Errorf("row index %d out of range", i)
	}
	r := &s.Rows[i]
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setStr(&r.PatientFirst, u.PatientFirst)
	setStr(&r.PatientLast, u.PatientLast)
	setStr(&r.DOB, u.DOB)
	setStr(&r.DateOfInjury, u.DateOfInjury)
	setStr(&r.DateOfServiceFrom, u.DateOfServiceFrom)
	setStr(&r.County, u.County)
	setStr(&r.Notes, u.Notes)
	if u.Rush != nil {
		r.Rush = *u.Rush
	}
	if s.Mode != ModeRelease {
		setStr(&r.DateOfServiceTo, u.DateOfServiceTo)
		setStr(&r.TotalCharges, u.TotalCharges)
		setStr(&r.AccidentLocation, u.AccidentLocation)
		if u.TreatmentOngoing != nil {
			r.TreatmentOngoing = *u.TreatmentOngoing
		}
	}
	s.touch()
	return nil
}

// SetInsurance attaches the complete insurance sub-record to a row. The
// record may still be partially blank at this point; validation rejects it
// at submit time.
func (s *Session) SetInsurance(i int, info InsuranceInfo) error {
	if i < 0 || i >= len(s.Rows) {
		return fmt.Errorf("row index %d out of range", i)
	}
	s.Rows[i].Insurance = &info
	s.touch()
	return nil
}

// ClearInsurance detaches the sub-record (the "No" election); any partial
// entries are discarded.
func (s *Session) ClearInsurance(i int) error {
	if i < 0 || i >= len(s.Rows) {
		return fmt.Errorf("row index %d out of range", i)
	}
	s.Rows[i].Insurance = nil
	s.touch()
	return nil
}

func (s *Session) SetAttorney(i int, info AttorneyInfo) error {
	if i < 0 || i >= len(s.Rows) {
		return fmt.Errorf("row index %d out of range", i)
	}
	s.Rows[i].Attorney = &info
	s.touch()
	return nil
}

func (s *Session) ClearAttorney(i int) error {
	if i < 0 || i >= len(s.Rows) {
		return fmt.Errorf("row index %d out of range", i)
	}
	s.Rows[i].Attorney = nil
	s.touch()
	return nil
}

// ProviderUpdate carries a partial edit to the provider block.
type ProviderUpdate struct {
	ProviderName    *string `json:"provider_name"`
	ContactName     *string `json:"contact_name"`
	PracticeName    *string `json:"practice_name"`
	PracticeAddress *string `json:"practice_address"`
	Fax             *string `json:"fax"`
	LienPhone       *string `json:"lien_phone"`
	LienEmail       *string `json:"lien_email"`
}

func (s *Session) ApplyProviderUpdate(u ProviderUpdate) {
	p := &s.Provider
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.ProviderName, u.ProviderName)
	set(&p.ContactName, u.ContactName)
	set(&p.PracticeName, u.PracticeName)
	set(&p.PracticeAddress, u.PracticeAddress)
	set(&p.Fax, u.Fax)
	set(&p.LienPhone, u.LienPhone)
	set(&p.LienEmail, u.LienEmail)
	s.touch()
}

// MailingUpdate carries a partial edit to the mailing election. Count and
// postage arrive as the free-text form inputs; non-numeric input collapses
// to zero and negatives clamp to zero at this edge.
type MailingUpdate struct {
	Method          *string `json:"method"`
	RecipientCount  *string `json:"recipient_count"`
	PostagePerPiece *string `json:"postage_estimate_per_piece"`
}

func (s *Session) ApplyMailingUpdate(u MailingUpdate) error {
	if u.Method != nil {
		m := MailingMethod(*u.Method)
		if !m.Valid() {
			return fmt.Errorf("invalid mailing method: %s", *u.Method)
		}
		s.Mailing.Method = m
	}
	if u.RecipientCount != nil {
		n, err := strconv.Atoi(strings.TrimSpace(*u.RecipientCount))
		if err != nil || n < 0 {
			n = 0
		}
		s.Mailing.RecipientCount = n
	}
	if u.PostagePerPiece != nil {
		p := money.ParseOrZero(*u.PostagePerPiece)
		if p < 0 {
			p = 0
		}
		s.Mailing.PostagePerPiece = p
	}
	s.touch()
	return nil
}

// AttachFiles replaces the attached-document metadata set. Only metadata is
// kept; bytes never enter the core.
func (s *Session) AttachFiles(files []FileMetadata) {
	s.Files = files
	s.touch()
}

// Reset returns the session to its post-submission empty state, keeping the
// mode and re-seeding the recipient count for it.
func (s *Session) Reset(defaultRecipients int) {
	s.Provider = ProviderInfo{}
	s.Rows = []PatientRow{NewPatientRow()}
	s.Files = nil
	s.Mailing = MailingElection{Method: MailStandard}
	if s.Mode != ModeRelease {
		s.Mailing.RecipientCount = defaultRecipients
	}
	s.touch()
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}
