// Package dispatch hands finished payloads off to the downstream filing and
// payment services over HTTP. The core never talks to the network directly;
// it goes through the Submitter/Sender interfaces these dispatchers satisfy.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/medlienpros/lienfile/internal/domain/payments"
	"github.com/medlienpros/lienfile/internal/domain/submission"
)

// Option configures an HTTPDispatcher.
type Option func(*HTTPDispatcher)

// WithHTTPClient overrides the default HTTP client used for hand-offs.
func WithHTTPClient(c *http.Client) Option {
	return func(d *HTTPDispatcher) { d.client = c }
}

// HTTPDispatcher POSTs payloads as JSON to the configured endpoints.
type HTTPDispatcher struct {
	submissionURL string
	paymentURL    string
	client        *http.Client
	logger        zerolog.Logger
}

func NewHTTPDispatcher(submissionURL, paymentURL string, logger zerolog.Logger, opts ...Option) *HTTPDispatcher {
	d := &HTTPDispatcher{
		submissionURL: submissionURL,
		paymentURL:    paymentURL,
		client:        &http.Client{Timeout: 10 * time.Second},
		logger:        logger,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// SubmitFiling implements submission.Submitter.
func (d *HTTPDispatcher) SubmitFiling(ctx context.Context, p *submission.Payload) error {
	if err := d.post(ctx, d.submissionURL, p); err != nil {
		return err
	}
	d.logger.Info().
		Str("submission_id", p.SubmissionID.String()).
		Str("mode", string(p.Mode)).
		Int("rows", len(p.Rows)).
		Msg("filing handed off")
	return nil
}

// SendPayment implements payments.Sender.
func (d *HTTPDispatcher) SendPayment(ctx context.Context, p *payments.InvoicePayment) error {
	if err := d.post(ctx, d.paymentURL, p); err != nil {
		return err
	}
	d.logger.Info().
		Str("invoice_number", p.InvoiceNumber).
		Str("invoice_type", string(p.Type)).
		Msg("invoice payment handed off")
	return nil
}

func (d *HTTPDispatcher) post(ctx context.Context, url string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Read at most 1KB of the response for the error message.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("post %s: status %d: %s", url, resp.StatusCode, snippet)
	}
	return nil
}

// LogDispatcher records hand-offs in memory and logs them. It backs local
// runs where no downstream endpoints are configured.
type LogDispatcher struct {
	logger zerolog.Logger

	mu       sync.Mutex
	filings  []*submission.Payload
	payments []*payments.InvoicePayment
}

func NewLogDispatcher(logger zerolog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) SubmitFiling(_ context.Context, p *submission.Payload) error {
	d.mu.Lock()
	d.filings = append(d.filings, p)
	d.mu.Unlock()
	d.logger.Info().
		Str("submission_id", p.SubmissionID.String()).
		Str("mode", string(p.Mode)).
		Int("rows", len(p.Rows)).
		Str("grand_total", p.Totals.GrandTotal.String()).
		Msg("filing recorded (no downstream endpoint)")
	return nil
}

func (d *LogDispatcher) SendPayment(_ context.Context, p *payments.InvoicePayment) error {
	d.mu.Lock()
	d.payments = append(d.payments, p)
	d.mu.Unlock()
	d.logger.Info().
		Str("invoice_number", p.InvoiceNumber).
		Str("invoice_type", string(p.Type)).
		Str("amount", p.Amount).
		Msg("invoice payment recorded (no downstream endpoint)")
	return nil
}

// Filings returns the filings recorded so far.
func (d *LogDispatcher) Filings() []*submission.Payload {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*submission.Payload, len(d.filings))
	copy(out, d.filings)
	return out
}

// Payments returns the invoice payments recorded so far.
func (d *LogDispatcher) Payments() []*payments.InvoicePayment {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*payments.InvoicePayment, len(d.payments))
	copy(out, d.payments)
	return out
}
