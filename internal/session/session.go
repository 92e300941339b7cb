// Package session keeps the per-operator state of the storefront: who is
// signed in, their cart, and the payment attempt in flight. Nothing here
// outlives the process.
package session

import (
	"sync"
	"time"

	"github.com/aaravmahajanofficial/afos-pos/internal/cart"
	"github.com/aaravmahajanofficial/afos-pos/internal/checkout"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
)

// Session is guarded by its own mutex. Callers hold it across every compound
// read-modify-write of the cart or the attempt.
type Session struct {
	ID        string
	User      models.UserProfile
	CreatedAt time.Time
	ExpiresAt time.Time

	mu           sync.Mutex
	cart         *cart.Cart
	attempt      *checkout.Attempt
	conversation []models.ChatMessage
	ended        bool
}

func New(id string, user models.UserProfile, createdAt time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:        id,
		User:      user,
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(ttl),
		cart:      cart.New(),
	}
}

func (s *Session) Lock() {
	s.mu.Lock()
}

func (s *Session) Unlock() {
	s.mu.Unlock()
}

// The accessors below require the session lock.

func (s *Session) Cart() *cart.Cart {
	return s.cart
}

func (s *Session) Attempt() *checkout.Attempt {
	return s.attempt
}

func (s *Session) SetAttempt(a *checkout.Attempt) {
	s.attempt = a
}

// CheckoutActive reports whether a payment attempt still holds the cart.
func (s *Session) CheckoutActive() bool {
	return s.attempt != nil && s.attempt.Active()
}

func (s *Session) Conversation() []models.ChatMessage {
	out := make([]models.ChatMessage, len(s.conversation))
	copy(out, s.conversation)

	return out
}

// AppendConversation records one exchange, keeping at most limit messages.
func (s *Session) AppendConversation(limit int, msgs ...models.ChatMessage) {
	s.conversation = append(s.conversation, msgs...)
	if limit > 0 && len(s.conversation) > limit {
		s.conversation = append([]models.ChatMessage(nil), s.conversation[len(s.conversation)-limit:]...)
	}
}

func (s *Session) Ended() bool {
	return s.ended
}

// End tears the session down: any pending dwell timer is stopped, the cart is
// emptied and every later operation sees Ended.
func (s *Session) End() {
	if s.ended {
		return
	}

	if s.attempt != nil {
		s.attempt.Close()
	}

	s.cart.Clear()
	s.conversation = nil
	s.ended = true
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
