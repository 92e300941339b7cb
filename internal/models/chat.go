package models

type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

type AssistantRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type AssistantResponse struct {
	Reply string `json:"reply"`
}
