// Package assistant talks to the Gemini generateContent API on behalf of the
// in-store "Quartermaster AI" helper.
package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/afos-pos/internal/models"
)

const (
	ReplyNoCredential = "Connection to HQ failed. Radio silence."
	ReplyUnavailable  = "Signal lost. Re-establishing secure link..."
	ReplyUnclear      = "Transmission unclear. Repeat."
)

var (
	ErrNoCredential = errors.New("assistant credential is not configured")
	ErrEmptyReply   = errors.New("assistant returned no text")
)

type Client interface {
	Reply(ctx context.Context, history []models.ChatMessage, message string) (string, error)
}

// FallbackReply maps a client failure to the line shown to the operator.
func FallbackReply(err error) string {
	switch {
	case errors.Is(err, ErrNoCredential):
		return ReplyNoCredential
	case errors.Is(err, ErrEmptyReply):
		return ReplyUnclear
	default:
		return ReplyUnavailable
	}
}

// SystemInstruction frames the model as the store's logistics assistant with
// the current inventory in view.
func SystemInstruction(inventory string) string {
	return fmt.Sprintf(`You are "Quartermaster AI", a strict but efficient logistics assistant for a military base supply store.

Current Inventory:
%s

Rules:
1. Assist personnel with locating equipment, rations, and household items.
2. Keep responses brief, precise, and military-styled (e.g., use "Affirmative", "Negative", "Item located").
3. If asked about items not in stock, suggest the closest alternative from the inventory.
4. Provide specs if asked.
5. Prices are in Rwandan Francs (Rwf).
6. Maintain a professional, dutiful tone.`, inventory)
}
