package service_test

import (
	"errors"
	"testing"

	"github.com/aaravmahajanofficial/afos-pos/internal/assistant"
	"github.com/aaravmahajanofficial/afos-pos/internal/assistant/mocks"
	appErrors "github.com/aaravmahajanofficial/afos-pos/internal/errors"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	service "github.com/aaravmahajanofficial/afos-pos/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssistantService_Ask(t *testing.T) {
	t.Run("Success - Reply Appended To History", func(t *testing.T) {
		// Arrange
		client := mocks.NewClient(t)
		svc := service.NewAssistantService(client)
		s := newSession(200000)

		client.On("Reply", mock.Anything, []models.ChatMessage{}, "Do you have rice?").
			Return("Yes, Rice 5kg is in stock.", nil).Once()

		// Act
		resp, err := svc.Ask(testContext(), s, &models.AssistantRequest{Message: " <b>Do you have rice?</b> "})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Yes, Rice 5kg is in stock.", resp.Reply)

		s.Lock()
		history := s.Conversation()
		s.Unlock()
		assert.Equal(t, []models.ChatMessage{
			{Role: models.ChatRoleUser, Text: "Do you have rice?"},
			{Role: models.ChatRoleModel, Text: "Yes, Rice 5kg is in stock."},
		}, history)
	})

	t.Run("Success - Punctuation Survives", func(t *testing.T) {
		// Arrange
		client := mocks.NewClient(t)
		svc := service.NewAssistantService(client)
		s := newSession(200000)
		question := "Is 5 < 10 & rice > beans? It's urgent"

		client.On("Reply", mock.Anything, []models.ChatMessage{}, question).
			Return("Rice costs 1,000 Rwf & beans cost 1,500 Rwf.", nil).Once()

		// Act
		resp, err := svc.Ask(testContext(), s, &models.AssistantRequest{Message: question})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Rice costs 1,000 Rwf & beans cost 1,500 Rwf.", resp.Reply)

		s.Lock()
		history := s.Conversation()
		s.Unlock()
		require.Len(t, history, 2)
		assert.Equal(t, question, history[0].Text)
	})

	t.Run("Success - Client Error Falls Back", func(t *testing.T) {
		client := mocks.NewClient(t)
		svc := service.NewAssistantService(client)
		s := newSession(200000)

		client.On("Reply", mock.Anything, mock.Anything, "hello").Return("", errors.New("timeout")).Once()

		resp, err := svc.Ask(testContext(), s, &models.AssistantRequest{Message: "hello"})

		require.NoError(t, err)
		assert.Equal(t, assistant.ReplyUnavailable, resp.Reply)

		s.Lock()
		assert.Empty(t, s.Conversation())
		s.Unlock()
	})

	t.Run("Success - Missing Credential", func(t *testing.T) {
		client := mocks.NewClient(t)
		svc := service.NewAssistantService(client)

		client.On("Reply", mock.Anything, mock.Anything, "hello").Return("", assistant.ErrNoCredential).Once()

		resp, err := svc.Ask(testContext(), newSession(200000), &models.AssistantRequest{Message: "hello"})

		require.NoError(t, err)
		assert.Equal(t, assistant.ReplyNoCredential, resp.Reply)
	})

	t.Run("Failure - Empty Message", func(t *testing.T) {
		svc := service.NewAssistantService(mocks.NewClient(t))

		resp, err := svc.Ask(testContext(), newSession(200000), &models.AssistantRequest{Message: "<script></script>"})

		assert.Nil(t, resp)
		assertAppError(t, err, appErrors.ErrCodeValidation)
	})
}
