package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/utafrali/audiophile/internal/service"
	"github.com/utafrali/audiophile/internal/session"
	apperrors "github.com/utafrali/audiophile/pkg/errors"
	"github.com/utafrali/audiophile/pkg/httputil"
	"github.com/utafrali/audiophile/pkg/pagination"
)

// OrderHandler serves the confirmation page and order history.
type OrderHandler struct {
	service *service.OrderService
	logger  *slog.Logger
}

// NewOrderHandler creates a new order HTTP handler.
func NewOrderHandler(svc *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{service: svc, logger: logger}
}

// ListOrders handles GET /api/v1/orders?page=&perPage=
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), session.UserIDFromContext(r.Context()), pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, page)
}

// GetOrder handles GET /api/v1/orders/{orderId}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	id, err := uuid.Parse(orderID)
	if err != nil {
		// Order ids are only ever minted as UUIDs, so anything else is unknown.
		httputil.WriteError(w, r, apperrors.NotFound("order", orderID), h.logger)
		return
	}

	order, err := h.service.Get(r.Context(), session.UserIDFromContext(r.Context()), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, confirmationView{
		Message: confirmationMessage,
		Order:   newOrderView(order),
	})
}
