package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/audiophile/internal/domain"
	"github.com/utafrali/audiophile/internal/service"
	"github.com/utafrali/audiophile/internal/session"
	"github.com/utafrali/audiophile/pkg/httputil"
)

// CheckoutHandler handles HTTP requests for the checkout page.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{service: svc, logger: logger}
}

// GetSummary handles GET /api/v1/checkout
func (h *CheckoutHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Summary(r.Context(), session.UserIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, newCheckoutView(view))
}

// PlaceOrder handles POST /api/v1/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckoutDetails
	if !decode(w, r, &req) {
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), session.UserIDFromContext(r.Context()), req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Location", confirmationURL(order.ID))
	httputil.WriteData(w, http.StatusCreated, placedOrderView{
		OrderID:         order.ID,
		ConfirmationURL: confirmationURL(order.ID),
	})
}

func confirmationURL(orderID string) string {
	return "/api/v1/orders/" + orderID
}
