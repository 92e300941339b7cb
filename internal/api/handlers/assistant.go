package handlers

import (
	"net/http"

	"github.com/aaravmahajanofficial/afos-pos/internal/api/middleware"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	service "github.com/aaravmahajanofficial/afos-pos/internal/services"
	"github.com/aaravmahajanofficial/afos-pos/internal/utils"
	"github.com/aaravmahajanofficial/afos-pos/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type AssistantHandler struct {
	assistantService service.AssistantService
	validator        *validator.Validate
}

func NewAssistantHandler(assistantService service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService, validator: validator.New()}
}

// Ask godoc
//	@Summary		Ask the shop assistant
//	@Description	Sends a message to the assistant. An unavailable assistant still answers with a fixed fallback line.
//	@Tags			Assistant
//	@Accept			json
//	@Produce		json
//	@Param			message	body		models.AssistantRequest		true	"Message"
//	@Success		200		{object}	models.AssistantResponse	"Reply"
//	@Failure		400		{object}	response.ErrorResponse		"Empty message"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Security		BearerAuth
//	@Router			/assistant/messages [post]
func (h *AssistantHandler) Ask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := requireSession(w, r, logger)
		if !ok {
			return
		}

		var req models.AssistantRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.assistantService.Ask(r.Context(), s, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}
