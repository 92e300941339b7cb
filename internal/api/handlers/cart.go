package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/afos-pos/internal/api/middleware"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	service "github.com/aaravmahajanofficial/afos-pos/internal/services"
	"github.com/aaravmahajanofficial/afos-pos/internal/utils"
	"github.com/aaravmahajanofficial/afos-pos/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart godoc
//	@Summary		Current cart
//	@Description	Returns the cart lines with recomputed totals, the remaining quota and whether checkout is allowed.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartView			"Cart"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := requireSession(w, r, logger)
		if !ok {
			return
		}

		view, err := h.cartService.View(r.Context(), s)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// AddItem godoc
//	@Summary		Add a product to the cart
//	@Description	Adds one unit. A product already in the cart gets its quantity incremented.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Product to add"
//	@Success		200		{object}	models.CartView			"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Failure		409		{object}	response.ErrorResponse	"Cart locked during payment"
//	@Security		BearerAuth
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := requireSession(w, r, logger)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")
			return
		}

		view, err := h.cartService.AddItem(r.Context(), s, &req)
		if err != nil {
			logger.Warn("Failed to add item", slog.String("productId", req.ProductID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// UpdateQuantity godoc
//	@Summary		Change a line quantity
//	@Description	Applies a signed delta. Dropping to zero removes the line; unknown lines are ignored.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			lineId	path		string							true	"Cart line ID"
//	@Param			delta	body		models.UpdateQuantityRequest	true	"Quantity delta"
//	@Success		200		{object}	models.CartView					"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse			"Invalid request body"
//	@Failure		401		{object}	response.ErrorResponse			"Authentication required"
//	@Failure		409		{object}	response.ErrorResponse			"Cart locked during payment"
//	@Security		BearerAuth
//	@Router			/cart/items/{lineId} [patch]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := requireSession(w, r, logger)
		if !ok {
			return
		}

		lineID := r.PathValue("lineId")

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid quantity update input", slog.String("lineId", lineID))
			return
		}

		view, err := h.cartService.UpdateQuantity(r.Context(), s, lineID, &req)
		if err != nil {
			logger.Warn("Failed to update quantity", slog.String("lineId", lineID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// RemoveLine godoc
//	@Summary		Remove a cart line
//	@Tags			Cart
//	@Produce		json
//	@Param			lineId	path		string					true	"Cart line ID"
//	@Success		200		{object}	models.CartView			"Updated cart"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		409		{object}	response.ErrorResponse	"Cart locked during payment"
//	@Security		BearerAuth
//	@Router			/cart/items/{lineId} [delete]
func (h *CartHandler) RemoveLine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := requireSession(w, r, logger)
		if !ok {
			return
		}

		lineID := r.PathValue("lineId")

		view, err := h.cartService.RemoveLine(r.Context(), s, lineID)
		if err != nil {
			logger.Warn("Failed to remove line", slog.String("lineId", lineID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}
