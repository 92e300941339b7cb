package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/afos-pos/internal/api/middleware"
	"github.com/aaravmahajanofficial/afos-pos/internal/cart"
	"github.com/aaravmahajanofficial/afos-pos/internal/config"
	"github.com/aaravmahajanofficial/afos-pos/internal/errors"
	"github.com/aaravmahajanofficial/afos-pos/internal/metrics"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	repository "github.com/aaravmahajanofficial/afos-pos/internal/repositories"
	"github.com/aaravmahajanofficial/afos-pos/internal/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgInvalidAccessCode = "Invalid access key. Please check with reception."
	msgSessionEnded      = "Session has ended. Please sign in again."
)

type SessionService interface {
	Authenticate(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Resolve(ctx context.Context, token string) (*session.Session, error)
	Summary(ctx context.Context, s *session.Session) (*models.SessionSummary, error)
	Logout(ctx context.Context, s *session.Session) error
}

type sessionService struct {
	store   session.Store
	limiter repository.RateLimitRepository
	cfg     *config.Auth
	codes   [][]byte
	jwtKey  []byte
	policy  *bluemonday.Policy
	now     func() time.Time
}

// NewSessionService hashes the configured access codes once so that only
// bcrypt digests stay in memory.
func NewSessionService(store session.Store, limiter repository.RateLimitRepository, cfg *config.Auth) (SessionService, error) {
	codes := make([][]byte, 0, len(cfg.AccessCodes))

	for _, code := range cfg.AccessCodes {
		code = normalizeAccessCode(code)
		if code == "" {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(code), cfg.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash access code: %w", err)
		}

		codes = append(codes, hash)
	}

	if len(codes) == 0 {
		return nil, stdErrors.New("no access codes configured")
	}

	return &sessionService{
		store:   store,
		limiter: limiter,
		cfg:     cfg,
		codes:   codes,
		jwtKey:  []byte(cfg.JWTKey),
		policy:  bluemonday.StrictPolicy(),
		now:     time.Now,
	}, nil
}

// Access codes are matched case-insensitively.
func normalizeAccessCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *sessionService) validAccessCode(code string) bool {
	candidate := []byte(normalizeAccessCode(code))

	for _, hash := range s.codes {
		if bcrypt.CompareHashAndPassword(hash, candidate) == nil {
			return true
		}
	}

	return false
}

func (s *sessionService) Authenticate(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	serviceNumber := plainText(s.policy, req.ServiceNumber)
	if serviceNumber == "" {
		return nil, errors.ValidationError("Please enter your service number")
	}

	// check rate limit
	result, err := s.limiter.CheckLoginRateLimit(ctx, serviceNumber)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !result.Allowed {
		metrics.ObserveLogin("throttled")

		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: result.RetryAfter,
		}, nil
	}

	if !s.validAccessCode(req.AccessCode) {
		metrics.ObserveLogin("rejected")
		logger.Warn("Access code rejected", slog.String("serviceNumber", serviceNumber))

		return nil, errors.InvalidAccessCodeError(msgInvalidAccessCode).
			WithDetail(fmt.Sprintf("%d attempts remaining", result.Remaining))
	}

	name := plainText(s.policy, req.Name)
	if name == "" {
		name = s.cfg.DefaultName
	}

	user := models.UserProfile{
		Name:          name,
		Balance:       s.cfg.DefaultBalance,
		ServiceNumber: serviceNumber,
	}

	sess, err := s.store.Create(ctx, user)
	if err != nil {
		return nil, errors.InternalError("Failed to open session").WithError(err)
	}

	claims := &models.Claims{
		SessionID:     sess.ID,
		ServiceNumber: serviceNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
		},
	}

	// Generate Token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		s.store.Delete(ctx, sess.ID)
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	if err := s.limiter.ResetLoginRateLimit(ctx, serviceNumber); err != nil {
		logger.Warn("Failed to reset login attempts", slog.String("error", err.Error()))
	}

	metrics.ObserveLogin("accepted")
	logger.Info("Session opened", slog.String("sessionId", sess.ID), slog.String("serviceNumber", serviceNumber))

	return &models.LoginResponse{
		Success:   true,
		Token:     tokenString,
		ExpiresIn: int(sess.ExpiresAt.Sub(s.now()).Seconds()),
		User:      &user,
	}, nil
}

func (s *sessionService) Resolve(ctx context.Context, token string) (*session.Session, error) {
	claims := &models.Claims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		// check the signing method
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return s.jwtKey, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, errors.UnauthorizedError("Invalid or expired token").WithError(err)
	}

	sess, ok := s.store.Get(ctx, claims.SessionID)
	if !ok {
		return nil, errors.SessionEndedError(msgSessionEnded)
	}

	sess.Lock()
	ended := sess.Ended()
	sess.Unlock()

	if ended {
		return nil, errors.SessionEndedError(msgSessionEnded)
	}

	return sess, nil
}

func (s *sessionService) Summary(_ context.Context, sess *session.Session) (*models.SessionSummary, error) {
	if err := lockLive(sess); err != nil {
		return nil, err
	}
	defer sess.Unlock()

	total := cart.ComputeTotals(sess.Cart()).Total

	return &models.SessionSummary{
		SessionID:      sess.ID,
		User:           sess.User,
		CartTotal:      total,
		RemainingQuota: sess.User.Balance - total,
		CheckoutActive: sess.CheckoutActive(),
		StartedAt:      sess.CreatedAt,
	}, nil
}

// Logout cancels any pending dwell timer, empties the cart and forgets the session.
func (s *sessionService) Logout(ctx context.Context, sess *session.Session) error {
	sess.Lock()
	sess.End()
	sess.Unlock()

	s.store.Delete(ctx, sess.ID)

	middleware.LoggerFromContext(ctx).Info("Session closed", slog.String("sessionId", sess.ID))

	return nil
}

// lockLive locks sess and fails if it has already ended. On success the
// caller owns the lock.
func lockLive(sess *session.Session) error {
	sess.Lock()

	if sess.Ended() {
		sess.Unlock()
		return errors.SessionEndedError(msgSessionEnded)
	}

	return nil
}

// plainText strips markup from user input. The policy escapes what it keeps,
// so entities are decoded again: the text is stored and printed as plain text.
func plainText(policy *bluemonday.Policy, input string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(input)))
}
