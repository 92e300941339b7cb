package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/afos-pos/internal/api/middleware"
	"github.com/aaravmahajanofficial/afos-pos/internal/assistant"
	"github.com/aaravmahajanofficial/afos-pos/internal/errors"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	"github.com/aaravmahajanofficial/afos-pos/internal/session"
	"github.com/microcosm-cc/bluemonday"
)

// ConversationLimit bounds the history replayed to the assistant.
const ConversationLimit = 20

type AssistantService interface {
	Ask(ctx context.Context, s *session.Session, req *models.AssistantRequest) (*models.AssistantResponse, error)
}

type assistantService struct {
	client assistant.Client
	policy *bluemonday.Policy
}

func NewAssistantService(client assistant.Client) AssistantService {
	return &assistantService{client: client, policy: bluemonday.StrictPolicy()}
}

// Ask never fails because of the assistant itself: any client error degrades
// to a fixed reply and the exchange is left out of the history.
func (a *assistantService) Ask(ctx context.Context, s *session.Session, req *models.AssistantRequest) (*models.AssistantResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	message := plainText(a.policy, req.Message)
	if message == "" {
		return nil, errors.ValidationError("Message cannot be empty")
	}

	if err := lockLive(s); err != nil {
		return nil, err
	}
	history := s.Conversation()
	s.Unlock()

	reply, err := a.client.Reply(ctx, history, message)
	if err != nil {
		logger.Warn("Assistant unavailable", slog.String("error", err.Error()))
		return &models.AssistantResponse{Reply: assistant.FallbackReply(err)}, nil
	}

	s.Lock()
	if !s.Ended() {
		s.AppendConversation(ConversationLimit,
			models.ChatMessage{Role: models.ChatRoleUser, Text: message},
			models.ChatMessage{Role: models.ChatRoleModel, Text: reply},
		)
	}
	s.Unlock()

	return &models.AssistantResponse{Reply: reply}, nil
}
