package pricing

import (
	"math/rand"
	"testing"

	"github.com/medlienpros/lienfile/internal/domain/intake"
	"github.com/medlienpros/lienfile/internal/platform/money"
)

func testSchedule() FeeSchedule {
	return FeeSchedule{
		Filing:              7500,
		Release:             7500,
		Rush:                7500,
		CertifiedHandling:   500,
		CertifiedRRHandling: 700,
	}
}

func sampleRow(rush bool) intake.PatientRow {
	return intake.PatientRow{
		PatientFirst:      "Jane",
		PatientLast:       "Doe",
		DOB:               "1980-04-02",
		DateOfServiceFrom: "2026-01-10",
		TotalCharges:      "1000",
		County:            "Maricopa",
		Rush:              rush,
	}
}

func TestRowPrice(t *testing.T) {
	e := NewEngine(testSchedule())

	plain := sampleRow(false)
	rushed := sampleRow(true)

	if got := e.RowPrice(&plain, intake.ModeNewLien); got != 7500 {
		t.Errorf("RowPrice(new_lien, no rush) = %d, want 7500", got)
	}
	if got := e.RowPrice(&rushed, intake.ModeNewLien); got != 15000 {
		t.Errorf("RowPrice(new_lien, rush) = %d, want 15000", got)
	}
	if got := e.RowPrice(&plain, intake.ModeRelease); got != 7500 {
		t.Errorf("RowPrice(release, no rush) = %d, want 7500", got)
	}
}

// Toggling rush moves the price by exactly the rush fee, for either mode.
func TestRushToggleDelta(t *testing.T) {
	e := NewEngine(testSchedule())
	for _, mode := range []intake.RequestMode{intake.ModeNewLien, intake.ModeRelease} {
		row := sampleRow(false)
		base := e.RowPrice(&row, mode)
		row.Rush = true
		if got := e.RowPrice(&row, mode) - base; got != e.Fees().Rush {
			t.Errorf("mode %s: rush delta = %d, want %d", mode, got, e.Fees().Rush)
		}
	}
}

func TestMailingTotalStandardIsZero(t *testing.T) {
	e := NewEngine(testSchedule())
	for _, count := range []int{0, 1, 50, 1000} {
		m := intake.MailingElection{
			Method:          intake.MailStandard,
			RecipientCount:  count,
			PostagePerPiece: 9999,
		}
		if got := e.MailingTotal(m); got != 0 {
			t.Errorf("standard mailing with %d recipients = %d, want 0", count, got)
		}
	}
}

func TestMailingTotalCertified(t *testing.T) {
	e := NewEngine(testSchedule())

	// 2 recipients * ($5.00 handling + $0.68 postage) = $11.36
	m := intake.MailingElection{
		Method:          intake.MailCertified,
		RecipientCount:  2,
		PostagePerPiece: 68,
	}
	if got := e.MailingTotal(m); got != 1136 {
		t.Errorf("certified mailing total = %d, want 1136", got)
	}

	// Certified + return receipt uses the higher handling fee.
	m.Method = intake.MailCertifiedRR
	if got := e.MailingTotal(m); got != 1536 {
		t.Errorf("certified_rr mailing total = %d, want 1536", got)
	}
}

func TestMailingTotalClampsNegatives(t *testing.T) {
	e := NewEngine(testSchedule())
	m := intake.MailingElection{
		Method:          intake.MailCertified,
		RecipientCount:  -3,
		PostagePerPiece: -50,
	}
	if got := e.MailingTotal(m); got != 0 {
		t.Errorf("negative inputs should clamp to 0, got %d", got)
	}
}

// The grand total is a plain sum: reordering rows never changes it.
func TestQuoteInvariantUnderReordering(t *testing.T) {
	e := NewEngine(testSchedule())
	rows := []intake.PatientRow{
		sampleRow(false), sampleRow(true), sampleRow(false),
		sampleRow(true), sampleRow(true),
	}
	mailing := intake.MailingElection{
		Method:          intake.MailCertified,
		RecipientCount:  3,
		PostagePerPiece: 68,
	}
	want := e.Quote(intake.ModeNewLien, rows, mailing).GrandTotal

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		shuffled := make([]intake.PatientRow, len(rows))
		copy(shuffled, rows)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		if got := e.Quote(intake.ModeNewLien, shuffled, mailing).GrandTotal; got != want {
			t.Fatalf("trial %d: grand total %d after shuffle, want %d", trial, got, want)
		}
	}
}

// Adding then removing an identical row lands back on the same total.
func TestQuoteAddRemoveRoundTrip(t *testing.T) {
	e := NewEngine(testSchedule())
	rows := []intake.PatientRow{sampleRow(false), sampleRow(true)}
	mailing := intake.MailingElection{Method: intake.MailStandard}

	before := e.Quote(intake.ModeNewLien, rows, mailing).GrandTotal

	added := sampleRow(true)
	extended := append(append([]intake.PatientRow{}, rows...), added)
	mid := e.Quote(intake.ModeNewLien, extended, mailing).GrandTotal
	if want := before + e.RowPrice(&added, intake.ModeNewLien); mid != want {
		t.Errorf("grand total after add = %d, want %d", mid, want)
	}

	removed := extended[:len(extended)-1]
	after := e.Quote(intake.ModeNewLien, removed, mailing).GrandTotal
	if before != after {
		t.Errorf("grand total changed after add/remove round trip: %d != %d", before, after)
	}
}

// Scenario A: one new-lien row, no rush, standard mailing.
func TestQuoteScenarioSingleRowStandard(t *testing.T) {
	e := NewEngine(testSchedule())
	rows := []intake.PatientRow{sampleRow(false)}
	q := e.Quote(intake.ModeNewLien, rows, intake.MailingElection{Method: intake.MailStandard, RecipientCount: 2})

	if q.GrandTotal != 7500 {
		t.Errorf("grand total = %d, want 7500", q.GrandTotal)
	}
	if q.GrandTotalDisplay != "$75.00" {
		t.Errorf("display = %q, want $75.00", q.GrandTotalDisplay)
	}
}

// Scenario B: same as A with rush elected.
func TestQuoteScenarioRush(t *testing.T) {
	e := NewEngine(testSchedule())
	rows := []intake.PatientRow{sampleRow(true)}
	q := e.Quote(intake.ModeNewLien, rows, intake.MailingElection{Method: intake.MailStandard})

	if q.GrandTotal != 15000 {
		t.Errorf("grand total = %d, want 15000", q.GrandTotal)
	}
	if q.GrandTotalDisplay != "$150.00" {
		t.Errorf("display = %q, want $150.00", q.GrandTotalDisplay)
	}
}

// Scenario C: release with certified mailing; the mailing total is added
// exactly once.
func TestQuoteScenarioReleaseCertified(t *testing.T) {
	e := NewEngine(testSchedule())
	rows := []intake.PatientRow{sampleRow(false)}
	mailing := intake.MailingElection{
		Method:          intake.MailCertified,
		RecipientCount:  2,
		PostagePerPiece: 68,
	}
	q := e.Quote(intake.ModeRelease, rows, mailing)

	wantMailing := money.Cents(2 * (500 + 68))
	if q.MailingTotal != wantMailing {
		t.Errorf("mailing total = %d, want %d", q.MailingTotal, wantMailing)
	}
	if q.GrandTotal != 7500+wantMailing {
		t.Errorf("grand total = %d, want %d", q.GrandTotal, 7500+wantMailing)
	}
}

func TestQuoteManyRowsNoDrift(t *testing.T) {
	e := NewEngine(testSchedule())
	rows := make([]intake.PatientRow, 100)
	for i := range rows {
		rows[i] = sampleRow(i%2 == 0)
	}
	q := e.Quote(intake.ModeNewLien, rows, intake.MailingElection{Method: intake.MailStandard})

	// 50 rushed rows at $150 + 50 plain rows at $75.
	want := money.Cents(50*15000 + 50*7500)
	if q.GrandTotal != want {
		t.Errorf("grand total over 100 rows = %d, want %d", q.GrandTotal, want)
	}
	if len(q.RowTotals) != 100 {
		t.Errorf("row totals length = %d, want 100", len(q.RowTotals))
	}
}
