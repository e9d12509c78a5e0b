// Package pricing computes deterministic totals for a filing session: a flat
// base fee per row by request mode, a flat rush add-on, and an estimated
// mailing total for certified elections. All arithmetic is in integer cents.
package pricing

import (
	"github.com/medlienpros/lienfile/internal/config"
	"github.com/medlienpros/lienfile/internal/domain/intake"
	"github.com/medlienpros/lienfile/internal/platform/money"
)

// FeeSchedule is the deployment's flat-fee table. Values come from
// configuration; nothing in the engine hardcodes an amount.
type FeeSchedule struct {
	Filing              money.Cents `json:"filing_cents"`
	Release             money.Cents `json:"release_cents"`
	Rush                money.Cents `json:"rush_cents"`
	CertifiedHandling   money.Cents `json:"certified_handling_cents"`
	CertifiedRRHandling money.Cents `json:"certified_rr_handling_cents"`
}

// ScheduleFromConfig lifts the configured cent amounts into a FeeSchedule.
func ScheduleFromConfig(cfg *config.Config) FeeSchedule {
	return FeeSchedule{
		Filing:              money.Cents(cfg.FilingFeeCents),
		Release:             money.Cents(cfg.ReleaseFeeCents),
		Rush:                money.Cents(cfg.RushFeeCents),
		CertifiedHandling:   money.Cents(cfg.CertifiedHandlingCents),
		CertifiedRRHandling: money.Cents(cfg.CertifiedRRHandlingCents),
	}
}

// Engine prices sessions against a fixed FeeSchedule. It holds no other
// state: identical inputs always produce identical totals.
type Engine struct {
	fees FeeSchedule
}

func NewEngine(fees FeeSchedule) *Engine {
	return &Engine{fees: fees}
}

// Fees returns the schedule the engine prices against.
func (e *Engine) Fees() FeeSchedule {
	return e.fees
}

// BaseFee is the flat per-row fee for the mode.
func (e *Engine) BaseFee(mode intake.RequestMode) money.Cents {
	if mode == intake.ModeRelease {
		return e.fees.Release
	}
	return e.fees.Filing
}

// RowPrice is base fee plus the rush add-on when elected.
func (e *Engine) RowPrice(row *intake.PatientRow, mode intake.RequestMode) money.Cents {
	price := e.BaseFee(mode)
	if row.Rush {
		price += e.fees.Rush
	}
	return price
}

// HandlingFee is the per-piece handling charge for a mailing method.
// Standard mail is bundled into the base fee and carries none.
func (e *Engine) HandlingFee(method intake.MailingMethod) money.Cents {
	switch method {
	case intake.MailCertified:
		return e.fees.CertifiedHandling
	case intake.MailCertifiedRR:
		return e.fees.CertifiedRRHandling
	default:
		return 0
	}
}

// MailingTotal estimates the notice-mailing charge. Standard elections are
// exactly zero regardless of recipient count; otherwise each recipient pays
// handling plus the pass-through postage estimate. Count and postage clamp
// to non-negative.
func (e *Engine) MailingTotal(m intake.MailingElection) money.Cents {
	if m.Method == intake.MailStandard {
		return 0
	}
	count := m.RecipientCount
	if count < 0 {
		count = 0
	}
	postage := m.PostagePerPiece
	if postage < 0 {
		postage = 0
	}
	return money.Cents(count) * (e.HandlingFee(m.Method) + postage)
}

// Quote prices the whole session: per-row totals, mailing estimate, grand
// total. Implements intake.Quoter.
func (e *Engine) Quote(mode intake.RequestMode, rows []intake.PatientRow, mailing intake.MailingElection) intake.Quote {
	q := intake.Quote{
		BaseFee:      e.BaseFee(mode),
		RowTotals:    make([]money.Cents, len(rows)),
		MailingTotal: e.MailingTotal(mailing),
	}
	var sum money.Cents
	for i := range rows {
		q.RowTotals[i] = e.RowPrice(&rows[i], mode)
		sum += q.RowTotals[i]
	}
	q.GrandTotal = sum + q.MailingTotal
	q.GrandTotalDisplay = q.GrandTotal.String()
	return q
}
