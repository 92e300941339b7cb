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

type ScanHandler struct {
	scanService service.ScanService
	validator   *validator.Validate
}

func NewScanHandler(scanService service.ScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService, validator: validator.New()}
}

// Scan godoc
//	@Summary		Scan a product
//	@Description	Resolves a scanned code and adds the product to the cart. Without a body the scanner picks a product at random.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			scan	body		models.ScanRequest		false	"Scanned code"
//	@Success		200		{object}	models.ScanResponse		"Scanned product and updated cart"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse	"No product matches the code"
//	@Failure		409		{object}	response.ErrorResponse	"Cart locked during payment"
//	@Security		BearerAuth
//	@Router			/scan [post]
func (h *ScanHandler) Scan() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := requireSession(w, r, logger)
		if !ok {
			return
		}

		var req models.ScanRequest
		if r.ContentLength != 0 && !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid scan input")
			return
		}

		resp, err := h.scanService.Scan(r.Context(), s, &req)
		if err != nil {
			logger.Warn("Scan failed", slog.String("code", req.Code), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product scanned", slog.String("productId", resp.Product.ID))
		response.Success(w, http.StatusOK, resp)
	}
}
