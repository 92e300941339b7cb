package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/afos-pos/internal/api/middleware"
	"github.com/aaravmahajanofficial/afos-pos/internal/errors"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	service "github.com/aaravmahajanofficial/afos-pos/internal/services"
	"github.com/aaravmahajanofficial/afos-pos/internal/session"
	"github.com/aaravmahajanofficial/afos-pos/internal/utils"
	"github.com/aaravmahajanofficial/afos-pos/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type SessionHandler struct {
	sessionService service.SessionService
	validator      *validator.Validate
}

func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, validator: validator.New()}
}

// Login godoc
//	@Summary		Open a shopping session
//	@Description	Checks the reception access code and opens a session for the service member. Returns a bearer token.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			login	body		models.LoginRequest		true	"Access code and service number"
//	@Success		200		{object}	models.LoginResponse	"Session opened"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		401		{object}	response.ErrorResponse	"Invalid access code"
//	@Failure		429		{object}	response.ErrorResponse	"Too many login attempts"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/sessions [post]
func (h *SessionHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid login input")
			return
		}

		resp, err := h.sessionService.Authenticate(r.Context(), &req)
		if err != nil {
			logger.Warn("Login failed", slog.String("serviceNumber", req.ServiceNumber), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if !resp.Success {
			logger.Warn("Login throttled", slog.String("serviceNumber", req.ServiceNumber), slog.Int("retryAfter", resp.RetryAfter))
			w.Header().Set("Retry-After", strconv.Itoa(resp.RetryAfter))
			response.Error(w, errors.TooManyRequestsError(resp.Message).
				WithDetail(fmt.Sprintf("retry after %d seconds", resp.RetryAfter)))
			return
		}

		logger.Info("Session opened", slog.String("serviceNumber", resp.User.ServiceNumber))
		response.Success(w, http.StatusOK, resp)
	}
}

// Summary godoc
//	@Summary		Current session
//	@Description	Returns the shopper profile with the cart total and the quota it leaves.
//	@Tags			Sessions
//	@Produce		json
//	@Success		200	{object}	models.SessionSummary	"Session summary"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/sessions/me [get]
func (h *SessionHandler) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := requireSession(w, r, logger)
		if !ok {
			return
		}

		summary, err := h.sessionService.Summary(r.Context(), s)
		if err != nil {
			logger.Warn("Failed to summarize session", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}

// Logout godoc
//	@Summary		End the session
//	@Description	Ends the session and discards the cart without printing anything.
//	@Tags			Sessions
//	@Produce		json
//	@Success		200	{object}	response.APIResponse	"Session ended"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/sessions/me [delete]
func (h *SessionHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := requireSession(w, r, logger)
		if !ok {
			return
		}

		if err := h.sessionService.Logout(r.Context(), s); err != nil {
			logger.Error("Failed to end session", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Session ended by shopper")
		response.Success(w, http.StatusOK, map[string]bool{"session_ended": true})
	}
}

// requireSession fetches the session the auth middleware attached, writing a
// 401 when it is missing.
func requireSession(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*session.Session, bool) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		logger.Warn("Unauthorized access attempt: missing session")
		response.Error(w, errors.UnauthorizedError("Authentication required"))
		return nil, false
	}

	return s, true
}
