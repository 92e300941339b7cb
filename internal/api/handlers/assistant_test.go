package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/afos-pos/internal/api/handlers"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	"github.com/aaravmahajanofficial/afos-pos/internal/services/mocks"
	"github.com/aaravmahajanofficial/afos-pos/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAsk(t *testing.T) {
	t.Run("Success - Reply Returned", func(t *testing.T) {
		mockAssistantService := mocks.NewAssistantService(t)
		assistantHandler := handlers.NewAssistantHandler(mockAssistantService)
		s := testutils.NewTestSession(200000)

		mockAssistantService.On("Ask", mock.Anything, s, &models.AssistantRequest{Message: "hello"}).
			Return(&models.AssistantResponse{Reply: "Welcome to AFOS."}, nil).Once()

		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/assistant/messages", strings.NewReader(`{"message":"hello"}`), s, nil)
		rr := httptest.NewRecorder()

		assistantHandler.Ask().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.AssistantResponse
		decodeResponse(t, rr, &got)
		assert.Equal(t, "Welcome to AFOS.", got.Reply)
	})

	t.Run("Failure - Missing Message", func(t *testing.T) {
		assistantHandler := handlers.NewAssistantHandler(mocks.NewAssistantService(t))
		s := testutils.NewTestSession(200000)

		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/assistant/messages", strings.NewReader(`{}`), s, nil)
		rr := httptest.NewRecorder()

		assistantHandler.Ask().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
