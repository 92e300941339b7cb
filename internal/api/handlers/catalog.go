package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/afos-pos/internal/api/middleware"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	service "github.com/aaravmahajanofficial/afos-pos/internal/services"
	"github.com/aaravmahajanofficial/afos-pos/internal/utils/response"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListProducts godoc
//	@Summary		Browse products
//	@Description	Lists products in a category, optionally filtered by a name or description query. Each product carries its gating flags against the remaining quota.
//	@Tags			Catalog
//	@Produce		json
//	@Param			category	query		string						false	"Category filter (default All)"
//	@Param			q			query		string						false	"Search query"
//	@Success		200			{object}	models.ProductListResponse	"Products"
//	@Failure		400			{object}	response.ErrorResponse		"Unknown category"
//	@Failure		401			{object}	response.ErrorResponse		"Authentication required"
//	@Security		BearerAuth
//	@Router			/products [get]
func (h *CatalogHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := requireSession(w, r, logger)
		if !ok {
			return
		}

		category := models.Category(r.URL.Query().Get("category"))
		query := r.URL.Query().Get("q")

		resp, err := h.catalogService.ListProducts(r.Context(), s, category, query)
		if err != nil {
			logger.Warn("Failed to list products", slog.String("category", string(category)), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

// GetProduct godoc
//	@Summary		Product detail
//	@Tags			Catalog
//	@Produce		json
//	@Param			id	path		string					true	"Product ID"
//	@Success		200	{object}	models.ProductView		"Product"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Security		BearerAuth
//	@Router			/products/{id} [get]
func (h *CatalogHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := requireSession(w, r, logger)
		if !ok {
			return
		}

		id := r.PathValue("id")

		product, err := h.catalogService.GetProduct(r.Context(), s, id)
		if err != nil {
			logger.Warn("Failed to get product", slog.String("productId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// Discounts godoc
//	@Summary		Products on promotion
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{object}	models.DiscountsResponse	"Discounted products"
//	@Failure		401	{object}	response.ErrorResponse		"Authentication required"
//	@Security		BearerAuth
//	@Router			/discounts [get]
func (h *CatalogHandler) Discounts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := requireSession(w, r, logger)
		if !ok {
			return
		}

		resp, err := h.catalogService.Discounts(r.Context(), s)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

// Categories godoc
//	@Summary		Categories with product counts
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{array}	models.CategoryCount	"Categories"
//	@Router			/categories [get]
func (h *CatalogHandler) Categories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.catalogService.Categories(r.Context()))
	}
}
