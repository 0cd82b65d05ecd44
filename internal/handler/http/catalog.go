package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/audiophile/internal/service"
	"github.com/utafrali/audiophile/pkg/httputil"
	"github.com/utafrali/audiophile/pkg/slug"
)

// CatalogHandler handles HTTP requests for catalog pages.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{service: svc, logger: logger}
}

// ListCategories handles GET /api/v1/catalog/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.Categories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, cats)
}

// GetCategory handles GET /api/v1/catalog/categories/{categorySlug}
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	s, ok := slugParam(w, r, "categorySlug")
	if !ok {
		return
	}

	page, err := h.service.CategoryPage(r.Context(), s)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, categoryPageView{Category: page.Category, Categories: page.Categories})
}

// GetProduct handles GET /api/v1/catalog/products/{slug}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	s, ok := slugParam(w, r, "slug")
	if !ok {
		return
	}

	page, err := h.service.ProductPage(r.Context(), s)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, newProductPageView(page))
}

// slugParam rejects malformed slugs before they reach a content query.
func slugParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	s := chi.URLParam(r, name)
	if !slug.Valid(s) {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "invalid " + name + ": " + s},
		})
		return "", false
	}
	return s, true
}
