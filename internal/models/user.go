package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type UserProfile struct {
	Name          string `json:"name"`
	Balance       int64  `json:"balance"`
	ServiceNumber string `json:"service_number,omitempty"`
}

type LoginRequest struct {
	AccessCode    string `json:"access_code" validate:"required,min=4,max=32"`
	ServiceNumber string `json:"service_number" validate:"required,max=32"`
	Name          string `json:"name,omitempty" validate:"omitempty,max=80"`
}

type LoginResponse struct {
	Success        bool         `json:"success"`
	Token          string       `json:"token,omitempty"`
	ExpiresIn      int          `json:"expires_in,omitempty"`
	User           *UserProfile `json:"user,omitempty"`
	RemainingTries int          `json:"remaining_tries,omitempty"`
	RetryAfter     int          `json:"retry_after,omitempty"`
	Message        string       `json:"message,omitempty"`
}

type SessionSummary struct {
	SessionID      string      `json:"session_id"`
	User           UserProfile `json:"user"`
	CartTotal      int64       `json:"cart_total"`
	RemainingQuota int64       `json:"remaining_quota"`
	CheckoutActive bool        `json:"checkout_active"`
	StartedAt      time.Time   `json:"started_at"`
}

// Claims identify the session a bearer token was issued for.
type Claims struct {
	SessionID     string `json:"session_id"`
	ServiceNumber string `json:"service_number"`
	jwt.RegisteredClaims
}
