package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/afos-pos/internal/api/middleware"
	"github.com/aaravmahajanofficial/afos-pos/internal/config"
	"github.com/redis/go-redis/v9"
)

type RateLimitResult struct {
	Allowed    bool
	Remaining  int
	RetryAfter int
}

type RateLimitRepository interface {
	CheckLoginRateLimit(ctx context.Context, identity string) (RateLimitResult, error)
	ResetLoginRateLimit(ctx context.Context, identity string) error
}

func NewRedisClient(cfg *config.RedisConnect) (*redis.Client, error) {
	slog.Info("Connecting to Redis", slog.String("url", fmt.Sprintf("redis://%s:<password>@%s:%s", cfg.Username, cfg.Host, cfg.Port)))

	opt, err := redis.ParseURL(cfg.GetDSN())
	if err != nil {
		slog.Error("Failed to parse Redis URL", slog.Any("error", err))
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DB = cfg.DB

	client := redis.NewClient(opt)

	ctx, cancel := withQueryTimeout(context.Background())
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("✅ Successfully connected to Redis")

	return client, nil
}

type redisRateLimitRepository struct {
	client *redis.Client
	cfg    *config.RateConfig
	now    func() time.Time
}

func NewRateLimitRepo(client *redis.Client, cfg *config.RateConfig) RateLimitRepository {
	return &redisRateLimitRepository{client: client, cfg: cfg, now: time.Now}
}

// NewRateLimitRepoWithClock is NewRateLimitRepo with a fixed time source.
func NewRateLimitRepoWithClock(client *redis.Client, cfg *config.RateConfig, now func() time.Time) RateLimitRepository {
	return &redisRateLimitRepository{client: client, cfg: cfg, now: now}
}

func loginAttemptsKey(identity string) string {
	return "login_attempts:" + identity
}

// CheckLoginRateLimit records one attempt in a sliding window kept as a sorted
// set scored by unix seconds.
func (r *redisRateLimitRepository) CheckLoginRateLimit(ctx context.Context, identity string) (RateLimitResult, error) {
	logger := middleware.LoggerFromContext(ctx)

	key := loginAttemptsKey(identity)
	now := r.now()
	nowSec := now.Unix()
	window := int64(r.cfg.WindowSize.Seconds())
	windowStart := nowSec - window

	pipe := r.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(nowSec), Member: strconv.FormatInt(now.UnixNano(), 10)})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Redis pipeline execution failed for rate limit", slog.String("key", key), slog.Any("error", err))
		return RateLimitResult{}, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()

	if attempts > r.cfg.MaxAttempts {
		scores, err := r.client.ZRangeArgsWithScores(ctx, redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).Result()
		if err != nil || len(scores) == 0 {
			logger.Error("Failed to get oldest attempt time for rate limit", slog.String("key", key), slog.Any("error", err))
			return RateLimitResult{RetryAfter: int(window)}, fmt.Errorf("failed to get oldest attempt time: %w", err)
		}

		retryAfter := max(int64(scores[0].Score)+window-nowSec, 0)

		logger.Warn("Rate limit exceeded", slog.String("identity", identity), slog.Int64("attempts", attempts))

		return RateLimitResult{Allowed: false, RetryAfter: int(retryAfter)}, nil
	}

	remaining := r.cfg.MaxAttempts - attempts
	logger.Debug("Rate limit check passed", slog.String("identity", identity), slog.Int64("attempts", attempts), slog.Int64("remaining", remaining))

	return RateLimitResult{Allowed: true, Remaining: int(remaining)}, nil
}

func (r *redisRateLimitRepository) ResetLoginRateLimit(ctx context.Context, identity string) error {
	if err := r.client.Del(ctx, loginAttemptsKey(identity)).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit: %w", err)
	}

	return nil
}

// allowAll stands in when no redis is configured.
type allowAll struct {
	max int
}

func NewAllowAllRateLimiter(maxAttempts int64) RateLimitRepository {
	return allowAll{max: int(maxAttempts)}
}

func (a allowAll) CheckLoginRateLimit(context.Context, string) (RateLimitResult, error) {
	return RateLimitResult{Allowed: true, Remaining: a.max}, nil
}

func (a allowAll) ResetLoginRateLimit(context.Context, string) error {
	return nil
}
