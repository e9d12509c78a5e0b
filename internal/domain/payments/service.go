// Package payments implements the pay-invoice action: a thin non-blankness
// check over the invoice reference before forwarding it to the external
// payment collaborator. Amounts are forwarded as entered; the invoice on
// the far side is the source of truth.
package payments

import (
	"context"
	"fmt"
	"strings"
)

// InvoiceType selects which ledger the invoice belongs to.
type InvoiceType string

const (
	InvoiceLiensFiled InvoiceType = "liens_filed"
	InvoiceReleases   InvoiceType = "releases"
)

func (t InvoiceType) Valid() bool {
	return t == InvoiceLiensFiled || t == InvoiceReleases
}

// InvoicePayment is the pay-online request as entered by the user.
type InvoicePayment struct {
	Type          InvoiceType `json:"invoice_type"`
	InvoiceNumber string      `json:"invoice_number"`
	Amount        string      `json:"amount"`
}

// FieldError reports a missing pay-invoice field.
type FieldError struct {
	Field string `json:"field"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invoice_field_missing: %s", e.Field)
}

// Sender forwards a validated payment request to the external payment
// collaborator.
type Sender interface {
	SendPayment(ctx context.Context, p *InvoicePayment) error
}

type Service struct {
	sender Sender
}

func NewService(sender Sender) *Service {
	return &Service{sender: sender}
}

// Pay validates the request for non-blankness only and forwards it. No
// numeric parsing, no invoice-existence check.
func (s *Service) Pay(ctx context.Context, p *InvoicePayment) error {
	if p.Type == "" {
		p.Type = InvoiceLiensFiled
	}
	if !p.Type.Valid() {
		return &FieldError{Field: "invoice_type"}
	}
	if strings.TrimSpace(p.InvoiceNumber) == "" {
		return &FieldError{Field: "invoice_number"}
	}
	if strings.TrimSpace(p.Amount) == "" {
		return &FieldError{Field: "amount"}
	}
	if err := s.sender.SendPayment(ctx, p); err != nil {
		return fmt.Errorf("send payment: %w", err)
	}
	return nil
}
