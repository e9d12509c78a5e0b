package intake

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler exposes the session lifecycle over HTTP. Every mutating endpoint
// responds with the updated session and the recomputed quote so the caller
// never has to price locally.
type Handler struct {
	repo              SessionRepository
	quoter            Quoter
	defaultRecipients int
}

func NewHandler(repo SessionRepository, quoter Quoter, defaultRecipients int) *Handler {
	return &Handler{repo: repo, quoter: quoter, defaultRecipients: defaultRecipients}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/sessions", h.CreateSession)
	api.GET("/sessions/:id", h.GetSession)
	api.POST("/sessions/:id/mode", h.SetMode)
	api.POST("/sessions/:id/rows", h.AddRow)
	api.DELETE("/sessions/:id/rows/:index", h.RemoveRow)
	api.PATCH("/sessions/:id/rows/:index", h.UpdateRow)
	api.PATCH("/sessions/:id/rows/:index/insurance", h.SetInsurance)
	api.DELETE("/sessions/:id/rows/:index/insurance", h.ClearInsurance)
	api.PATCH("/sessions/:id/rows/:index/attorney", h.SetAttorney)
	api.DELETE("/sessions/:id/rows/:index/attorney", h.ClearAttorney)
	api.PATCH("/sessions/:id/provider", h.UpdateProvider)
	api.PATCH("/sessions/:id/mailing", h.UpdateMailing)
	api.POST("/sessions/:id/files", h.AttachFiles)
}

// SessionResponse is the envelope every session endpoint returns.
type SessionResponse struct {
	Session *Session `json:"session"`
	Quote   Quote    `json:"quote"`
}

func (h *Handler) respond(c echo.Context, status int, s *Session) error {
	return c.JSON(status, SessionResponse{
		Session: s,
		Quote:   h.quoter.Quote(s.Mode, s.Rows, s.Mailing),
	})
}

type createSessionRequest struct {
	Mode string `json:"mode"`
}

func (h *Handler) CreateSession(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	mode := ModeNewLien
	if req.Mode != "" {
		mode = RequestMode(req.Mode)
		if !mode.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request mode: "+req.Mode)
		}
	}

	sess := NewSession(mode, h.defaultRecipients)
	if err := h.repo.Create(c.Request().Context(), sess); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return h.respond(c, http.StatusCreated, sess)
}

func (h *Handler) GetSession(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	}
	sess, err := h.repo.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return h.respond(c, http.StatusOK, sess)
}

// mutate parses the session id, runs fn inside the repository and writes the
// standard session envelope. Once the session is known to exist, a failing fn
// can only mean bad caller input, so that maps to 422.
func (h *Handler) mutate(c echo.Context, fn func(s *Session) error) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	}
	sess, err := h.repo.Mutate(c.Request().Context(), id, fn)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return h.respond(c, http.StatusOK, sess)
}

func rowIndex(c echo.Context) (int, error) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid row index")
	}
	return i, nil
}

type setModeRequest struct {
	Mode string `json:"mode"`
}

func (h *Handler) SetMode(c echo.Context) error {
	var req setModeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	mode := RequestMode(req.Mode)
	if !mode.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request mode: "+req.Mode)
	}
	return h.mutate(c, func(s *Session) error {
		s.SetMode(mode, h.defaultRecipients)
		return nil
	})
}

func (h *Handler) AddRow(c echo.Context) error {
	return h.mutate(c, func(s *Session) error {
		s.AddRow()
		return nil
	})
}

func (h *Handler) RemoveRow(c echo.Context) error {
	i, err := rowIndex(c)
	if err != nil {
		return err
	}
	return h.mutate(c, func(s *Session) error {
		s.RemoveRow(i)
		return nil
	})
}

func (h *Handler) UpdateRow(c echo.Context) error {
	i, err := rowIndex(c)
	if err != nil {
		return err
	}
	var u RowUpdate
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return h.mutate(c, func(s *Session) error {
		return s.ApplyRowUpdate(i, u)
	})
}

func (h *Handler) SetInsurance(c echo.Context) error {
	i, err := rowIndex(c)
	if err != nil {
		return err
	}
	var info InsuranceInfo
	if err := c.Bind(&info); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return h.mutate(c, func(s *Session) error {
		return s.SetInsurance(i, info)
	})
}

func (h *Handler) ClearInsurance(c echo.Context) error {
	i, err := rowIndex(c)
	if err != nil {
		return err
	}
	return h.mutate(c, func(s *Session) error {
		return s.ClearInsurance(i)
	})
}

func (h *Handler) SetAttorney(c echo.Context) error {
	i, err := rowIndex(c)
	if err != nil {
		return err
	}
	var info AttorneyInfo
	if err := c.Bind(&info); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return h.mutate(c, func(s *Session) error {
		return s.SetAttorney(i, info)
	})
}

func (h *Handler) ClearAttorney(c echo.Context) error {
	i, err := rowIndex(c)
	if err != nil {
		return err
	}
	return h.mutate(c, func(s *Session) error {
		return s.ClearAttorney(i)
	})
}

func (h *Handler) UpdateProvider(c echo.Context) error {
	var u ProviderUpdate
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return h.mutate(c, func(s *Session) error {
		s.ApplyProviderUpdate(u)
		return nil
	})
}

func (h *Handler) UpdateMailing(c echo.Context) error {
	var u MailingUpdate
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return h.mutate(c, func(s *Session) error {
		return s.ApplyMailingUpdate(u)
	})
}

type attachFilesRequest struct {
	Files []FileMetadata `json:"files"`
}

func (h *Handler) AttachFiles(c echo.Context) error {
	var req attachFilesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return h.mutate(c, func(s *Session) error {
		s.AttachFiles(req.Files)
		return nil
	})
}
