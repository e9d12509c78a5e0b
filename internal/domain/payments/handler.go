package payments

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/payments/invoice", h.PayInvoice)
}

func (h *Handler) PayInvoice(c echo.Context) error {
	var p InvoicePayment
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Pay(c.Request().Context(), &p); err != nil {
		var fe *FieldError
		if errors.As(err, &fe) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{"error": fe})
		}
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusAccepted, map[string]string{
		"status":         "forwarded",
		"invoice_number": p.InvoiceNumber,
	})
}
