package submission

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medlienpros/lienfile/internal/domain/intake"
)

type Handler struct {
	svc               *Service
	repo              intake.SessionRepository
	quoter            intake.Quoter
	defaultRecipients int
}

func NewHandler(svc *Service, repo intake.SessionRepository, quoter intake.Quoter, defaultRecipients int) *Handler {
	return &Handler{svc: svc, repo: repo, quoter: quoter, defaultRecipients: defaultRecipients}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/sessions/:id/submit", h.Submit)
}

// SubmitResponse returns the accepted payload plus the reset session the
// caller should continue editing from.
type SubmitResponse struct {
	Payload *Payload        `json:"payload"`
	Session *intake.Session `json:"session"`
	Quote   intake.Quote    `json:"quote"`
}

func (h *Handler) Submit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	}
	sess, err := h.repo.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	payload, err := h.svc.Submit(c.Request().Context(), sess)
	if err != nil {
		var ve *intake.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{"error": ve})
		}
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	// Hand-off succeeded: reset the editable state for the next intake.
	reset, err := h.repo.Mutate(c.Request().Context(), id, func(s *intake.Session) error {
		s.Reset(h.defaultRecipients)
		return nil
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, SubmitResponse{
		Payload: payload,
		Session: reset,
		Quote:   h.quoter.Quote(reset.Mode, reset.Rows, reset.Mailing),
	})
}
