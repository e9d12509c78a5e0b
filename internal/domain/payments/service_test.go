package payments

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type mockSender struct {
	sent []*InvoicePayment
	err  error
}

func (m *mockSender) SendPayment(_ context.Context, p *InvoicePayment) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, p)
	return nil
}

func TestPayForwardsValidRequest(t *testing.T) {
	sender := &mockSender{}
	svc := NewService(sender)

	p := &InvoicePayment{
		Type:          InvoiceReleases,
		InvoiceNumber: "INV-2026-0012",
		Amount:        "$150.00",
	}
	if err := svc.Pay(context.Background(), p); err != nil {
		t.Fatalf("Pay error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sender called %d times, want 1", len(sender.sent))
	}
}

func TestPayDefaultsInvoiceType(t *testing.T) {
	sender := &mockSender{}
	svc := NewService(sender)

	p := &InvoicePayment{InvoiceNumber: "INV-1", Amount: "75"}
	if err := svc.Pay(context.Background(), p); err != nil {
		t.Fatalf("Pay error: %v", err)
	}
	if p.Type != InvoiceLiensFiled {
		t.Errorf("type = %s, want liens_filed default", p.Type)
	}
}

func TestPayMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		req   InvoicePayment
		field string
	}{
		{"blank invoice number", InvoicePayment{Type: InvoiceLiensFiled, Amount: "75"}, "invoice_number"},
		{"whitespace invoice number", InvoicePayment{Type: InvoiceLiensFiled, InvoiceNumber: "  ", Amount: "75"}, "invoice_number"},
		{"blank amount", InvoicePayment{Type: InvoiceLiensFiled, InvoiceNumber: "INV-1"}, "amount"},
		{"bad type", InvoicePayment{Type: "credits", InvoiceNumber: "INV-1", Amount: "75"}, "invoice_type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &mockSender{}
			svc := NewService(sender)
			err := svc.Pay(context.Background(), &tt.req)
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FieldError, got %v", err)
			}
			if fe.Field != tt.field {
				t.Errorf("field = %q, want %q", fe.Field, tt.field)
			}
			if len(sender.sent) != 0 {
				t.Error("invalid request must not be forwarded")
			}
		})
	}
}

func TestPayAmountNotParsed(t *testing.T) {
	// Amount is an opaque string; "abc" forwards untouched.
	sender := &mockSender{}
	svc := NewService(sender)
	p := &InvoicePayment{Type: InvoiceLiensFiled, InvoiceNumber: "INV-1", Amount: "abc"}
	if err := svc.Pay(context.Background(), p); err != nil {
		t.Fatalf("Pay error: %v", err)
	}
	if sender.sent[0].Amount != "abc" {
		t.Errorf("amount forwarded as %q, want \"abc\"", sender.sent[0].Amount)
	}
}

func TestPaySenderFailure(t *testing.T) {
	svc := NewService(&mockSender{err: fmt.Errorf("gateway down")})
	p := &InvoicePayment{Type: InvoiceLiensFiled, InvoiceNumber: "INV-1", Amount: "75"}
	err := svc.Pay(context.Background(), p)
	if err == nil {
		t.Fatal("expected sender error")
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		t.Error("sender failure must not masquerade as a field error")
	}
}
