// Package submission turns a validated intake session into the immutable
// payload handed to the external records API, and tells the caller how to
// reset the session afterwards.
package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medlienpros/lienfile/internal/domain/intake"
	"github.com/medlienpros/lienfile/internal/platform/money"
)

// MailingSummary is the priced mailing election carried in the payload.
type MailingSummary struct {
	Method                  intake.MailingMethod `json:"method"`
	RecipientCount          int                  `json:"recipient_count"`
	PostageEstimatePerPiece money.Cents          `json:"postage_estimate_per_piece_cents"`
	HandlingFeePerPiece     money.Cents          `json:"handling_fee_per_piece_cents"`
	EstimatedMailingTotal   money.Cents          `json:"estimated_mailing_total_cents"`
	StandardIncluded        bool                 `json:"standard_included"`
}

// Totals is the priced view frozen into the payload.
type Totals struct {
	BaseFee    money.Cents   `json:"base_fee_cents"`
	RowTotals  []money.Cents `json:"row_total_cents"`
	GrandTotal money.Cents   `json:"grand_total_cents"`
}

// Payload is the finished submission handed to the external collaborator.
// It is assembled only after every row has validated; no partial payload is
// ever constructed.
type Payload struct {
	SubmissionID uuid.UUID             `json:"submission_id"`
	Mode         intake.RequestMode    `json:"mode"`
	Mailing      MailingSummary        `json:"mailing"`
	Provider     intake.ProviderInfo   `json:"provider"`
	Rows         []intake.PatientRow   `json:"rows"`
	Totals       Totals                `json:"totals"`
	Files        []intake.FileMetadata `json:"files,omitempty"`
	SubmittedAt  time.Time             `json:"submitted_at"`
}

// Pricer is what the orchestrator needs from the pricing engine.
type Pricer interface {
	intake.Quoter
	HandlingFee(method intake.MailingMethod) money.Cents
}

// Submitter forwards a finished payload to the external records API. The
// orchestrator treats the call as fire-and-forget: it reports a failure to
// the caller but never retries or inspects the far side.
type Submitter interface {
	SubmitFiling(ctx context.Context, p *Payload) error
}

type Service struct {
	pricer    Pricer
	submitter Submitter
}

func NewService(pricer Pricer, submitter Submitter) *Service {
	return &Service{pricer: pricer, submitter: submitter}
}

// Submit validates the snapshot and, only if every check passes, builds the
// payload and hands it off. Provider fields are checked before any row; rows
// validate in index order and the first failure wins. The service holds no
// state between calls.
func (s *Service) Submit(ctx context.Context, sess *intake.Session) (*Payload, error) {
	if err := intake.ValidateProvider(&sess.Provider); err != nil {
		return nil, err
	}
	for i := range sess.Rows {
		if err := intake.ValidateRow(&sess.Rows[i], sess.Mode, i+1); err != nil {
			return nil, err
		}
	}

	quote := s.pricer.Quote(sess.Mode, sess.Rows, sess.Mailing)

	p := &Payload{
		SubmissionID: uuid.New(),
		Mode:         sess.Mode,
		Mailing: MailingSummary{
			Method:                  sess.Mailing.Method,
			RecipientCount:          sess.Mailing.RecipientCount,
			PostageEstimatePerPiece: sess.Mailing.PostagePerPiece,
			HandlingFeePerPiece:     s.pricer.HandlingFee(sess.Mailing.Method),
			EstimatedMailingTotal:   quote.MailingTotal,
			StandardIncluded:        sess.Mailing.Method == intake.MailStandard,
		},
		Provider:    sess.Provider,
		Rows:        append([]intake.PatientRow(nil), sess.Rows...),
		Totals:      Totals{BaseFee: quote.BaseFee, RowTotals: quote.RowTotals, GrandTotal: quote.GrandTotal},
		Files:       append([]intake.FileMetadata(nil), sess.Files...),
		SubmittedAt: time.Now().UTC(),
	}

	if err := s.submitter.SubmitFiling(ctx, p); err != nil {
		return nil, fmt.Errorf("submit filing: %w", err)
	}
	return p, nil
}
