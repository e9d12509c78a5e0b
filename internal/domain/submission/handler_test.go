package submission

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/medlienpros/lienfile/internal/domain/intake"
)

func newTestHandler(t *testing.T, sub Submitter) (*Handler, *intake.MemorySessionRepository) {
	t.Helper()
	engine := testEngine()
	repo := intake.NewMemorySessionRepository()
	svc := NewService(engine, sub)
	return NewHandler(svc, repo, engine, 2), repo
}

func performSubmit(h *Handler, id string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/sessions/:id/submit")
	c.SetParamNames("id")
	c.SetParamValues(id)
	if err := h.Submit(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestSubmitHandlerSuccessResetsSession(t *testing.T) {
	h, repo := newTestHandler(t, &mockSubmitter{})
	sess := validSession(intake.ModeNewLien)
	sess.Rows[0].Rush = true
	if err := repo.Create(context.Background(), sess); err != nil {
		t.Fatal(err)
	}

	rec := performSubmit(h, sess.ID.String())
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body.String())
	}

	var resp SubmitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Payload.Totals.GrandTotal != 15000 {
		t.Errorf("grand total = %d, want 15000", resp.Payload.Totals.GrandTotal)
	}
	if resp.Quote.GrandTotalDisplay != "$75.00" {
		t.Errorf("post-reset quote display = %q, want $75.00 (one empty row)", resp.Quote.GrandTotalDisplay)
	}

	stored, err := repo.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Get after submit: %v", err)
	}
	if stored.Provider.ProviderName != "" || len(stored.Rows) != 1 {
		t.Error("session should be reset after a successful submit")
	}
	if stored.Mailing.RecipientCount != 2 {
		t.Errorf("reset recipient count = %d, want 2", stored.Mailing.RecipientCount)
	}
}

func TestSubmitHandlerValidationFailure(t *testing.T) {
	h, repo := newTestHandler(t, &mockSubmitter{})
	sess := validSession(intake.ModeNewLien)
	sess.Rows[0].County = ""
	if err := repo.Create(context.Background(), sess); err != nil {
		t.Fatal(err)
	}

	rec := performSubmit(h, sess.ID.String())
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var body struct {
		Error intake.ValidationError `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Error.Kind != intake.ErrMissingCounty || body.Error.Row != 1 {
		t.Errorf("error = %+v, want missing_county at row 1", body.Error)
	}

	// The session must be untouched on failure.
	stored, _ := repo.Get(context.Background(), sess.ID)
	if stored.Provider.ProviderName == "" {
		t.Error("failed submit must not reset the session")
	}
}

func TestSubmitHandlerUnknownSession(t *testing.T) {
	h, _ := newTestHandler(t, &mockSubmitter{})
	rec := performSubmit(h, "018f3a1e-0000-7000-8000-000000000000")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSubmitHandlerBadID(t *testing.T) {
	h, _ := newTestHandler(t, &mockSubmitter{})
	rec := performSubmit(h, "not-a-uuid")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
