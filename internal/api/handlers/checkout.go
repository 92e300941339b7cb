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

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: validator.New()}
}

// Start godoc
//	@Summary		Start a payment
//	@Description	Opens a payment attempt for the current cart. The attempt moves from processing to success to receipt on its own; poll GET /checkout to follow it.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			payment	body		models.StartCheckoutRequest	true	"Payment method"
//	@Success		202		{object}	models.AttemptView			"Payment processing"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		409		{object}	response.ErrorResponse		"Payment already in progress"
//	@Failure		422		{object}	response.ErrorResponse		"Cart empty or over quota"
//	@Security		BearerAuth
//	@Router			/checkout [post]
func (h *CheckoutHandler) Start() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := requireSession(w, r, logger)
		if !ok {
			return
		}

		var req models.StartCheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid checkout input")
			return
		}

		view, err := h.checkoutService.Start(r.Context(), s, &req)
		if err != nil {
			logger.Warn("Checkout not started", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusAccepted, view)
	}
}

// Current godoc
//	@Summary		Payment in progress
//	@Description	Reports the state of the current attempt. In the receipt state the response carries a receipt preview.
//	@Tags			Checkout
//	@Produce		json
//	@Success		200	{object}	models.AttemptView		"Attempt"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"No payment in progress"
//	@Security		BearerAuth
//	@Router			/checkout [get]
func (h *CheckoutHandler) Current() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := requireSession(w, r, logger)
		if !ok {
			return
		}

		view, err := h.checkoutService.Current(r.Context(), s)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// Cancel godoc
//	@Summary		Cancel the payment
//	@Description	Cancels an attempt that is still processing. The cart is kept.
//	@Tags			Checkout
//	@Produce		json
//	@Success		200	{object}	models.AttemptView		"Cancelled attempt"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"No payment in progress"
//	@Failure		409	{object}	response.ErrorResponse	"Payment can no longer be cancelled"
//	@Security		BearerAuth
//	@Router			/checkout/cancel [post]
func (h *CheckoutHandler) Cancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := requireSession(w, r, logger)
		if !ok {
			return
		}

		view, err := h.checkoutService.Cancel(r.Context(), s)
		if err != nil {
			logger.Warn("Cancel rejected", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// Finalize godoc
//	@Summary		Print the receipt and end the session
//	@Description	Prints the receipt, clears the cart and ends the session. On a printer failure nothing changes and the call may be retried.
//	@Tags			Checkout
//	@Produce		json
//	@Success		200	{object}	models.FinalizeResponse	"Receipt printed, session ended"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"No payment in progress"
//	@Failure		409	{object}	response.ErrorResponse	"Payment has not reached the receipt step"
//	@Failure		503	{object}	response.ErrorResponse	"Receipt printer unavailable"
//	@Security		BearerAuth
//	@Router			/checkout/finalize [post]
func (h *CheckoutHandler) Finalize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := requireSession(w, r, logger)
		if !ok {
			return
		}

		resp, err := h.checkoutService.Finalize(r.Context(), s)
		if err != nil {
			logger.Error("Finalize failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

// Receipt godoc
//	@Summary		Look up a printed receipt
//	@Tags			Checkout
//	@Produce		json
//	@Param			id	path		string					true	"Receipt ID"
//	@Success		200	{object}	models.ReceiptDocument	"Receipt"
//	@Failure		404	{object}	response.ErrorResponse	"Receipt not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/receipts/{id} [get]
func (h *CheckoutHandler) Receipt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id := r.PathValue("id")

		doc, err := h.checkoutService.Receipt(r.Context(), id)
		if err != nil {
			logger.Warn("Receipt lookup failed", slog.String("receiptId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, doc)
	}
}
