package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eventdeskio/eventdesk-leads/pkg/logging"
)

// UnknownKey is the shared bucket for requests whose source address could
// not be determined. All such requests count against one limit.
const UnknownKey = "unknown"

// Limiter bounds how many submissions a key may make inside a trailing
// window, backed by Redis INCR with expiry. A nil *Limiter is valid and
// always allows (rate limiting disabled).
type Limiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
	prefix string
	logger *logging.Logger
}

// New creates a limiter admitting at most limit events per window per key.
// Returns nil when redisClient is nil so callers can skip the check entirely.
func New(redisClient *redis.Client, prefix string, limit int, window time.Duration, logger *logging.Logger) *Limiter {
	if redisClient == nil || limit <= 0 {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Limiter{
		redis:  redisClient,
		limit:  limit,
		window: window,
		prefix: prefix,
		logger: logger,
	}
}

// Allow records an event for key and reports whether it is within the limit.
// Redis failures allow the request through; availability beats strictness
// for a marketing funnel.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l == nil {
		return true
	}
	if key == "" {
		key = UnknownKey
	}

	redisKey := fmt.Sprintf("ratelimit:%s:%s", l.prefix, key)

	count, err := l.redis.Incr(ctx, redisKey).Result()
	if err != nil {
		l.logger.Error("ratelimit: incr failed, allowing request", "error", err, "key", redisKey)
		return true
	}

	// Set expiry only on first increment so the window is anchored to the
	// first event rather than refreshed on every attempt.
	if count == 1 {
		if err := l.redis.Expire(ctx, redisKey, l.window).Err(); err != nil {
			l.logger.Error("ratelimit: expire failed", "error", err, "key", redisKey)
		}
	}

	if int(count) > l.limit {
		l.logger.Warn("ratelimit: limit exceeded",
			"key", redisKey,
			"count", count,
			"limit", l.limit,
		)
		return false
	}
	return true
}

// Reset clears the counter for key (admin/test use).
func (l *Limiter) Reset(ctx context.Context, key string) error {
	if l == nil {
		return nil
	}
	if key == "" {
		key = UnknownKey
	}
	return l.redis.Del(ctx, fmt.Sprintf("ratelimit:%s:%s", l.prefix, key)).Err()
}
