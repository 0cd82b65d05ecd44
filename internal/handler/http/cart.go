package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/audiophile/internal/domain"
	"github.com/utafrali/audiophile/internal/service"
	"github.com/utafrali/audiophile/internal/session"
	"github.com/utafrali/audiophile/pkg/httputil"
)

// CartHandler handles HTTP requests for cart endpoints. Every route runs
// behind the session middleware.
type CartHandler struct {
	carts    *service.CartService
	checkout *service.CheckoutService
	logger   *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(carts *service.CartService, checkout *service.CheckoutService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		carts:    carts,
		checkout: checkout,
		logger:   logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required,max=128"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=999"`
}

// UpdateQuantityRequest is the JSON request body for setting a line's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=1,lte=999"`
}

// ReplaceItemsRequest is the JSON request body of the cart review form.
type ReplaceItemsRequest struct {
	Items []domain.LineItem `json:"items" validate:"max=50,unique=ProductID,dive"`
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.checkout.Summary(r.Context(), session.UserIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, newCheckoutView(view))
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !decode(w, r, &req) {
		return
	}

	h.apply(w, r, domain.AddItem{ProductID: req.ProductID, Quantity: req.Quantity})
}

// UpdateItem handles PATCH /api/v1/cart/{productId}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if !decode(w, r, &req) {
		return
	}

	h.apply(w, r, domain.UpdateItem{ProductID: chi.URLParam(r, "productId"), Quantity: req.Quantity})
}

// RemoveItem handles DELETE /api/v1/cart/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, domain.RemoveItem{ProductID: chi.URLParam(r, "productId")})
}

// ReplaceItems handles PUT /api/v1/cart
func (h *CartHandler) ReplaceItems(w http.ResponseWriter, r *http.Request) {
	var req ReplaceItemsRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Items == nil {
		req.Items = []domain.LineItem{}
	}

	h.apply(w, r, domain.ReplaceItems{Items: req.Items})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, domain.RemoveAll{})
}

func (h *CartHandler) apply(w http.ResponseWriter, r *http.Request, action domain.Action) {
	cart, err := h.carts.Apply(r.Context(), session.UserIDFromContext(r.Context()), action)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, newCartView(cart))
}
