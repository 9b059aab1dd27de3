package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
)

const (
	loginWindow      = time.Minute
	maxLoginAttempts = 10
)

// LoginLimiter is a fixed-window login throttle backed by Redis.
// Key format: login:<kind>:<email>
type LoginLimiter struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client, log zerolog.Logger) *LoginLimiter {
	return &LoginLimiter{client: client, log: log}
}

// Allow counts one attempt and returns domain.ErrTooManyAttempts once the
// window is exhausted. Redis failures degrade open: the attempt proceeds
// and the failure is logged.
func (l *LoginLimiter) Allow(ctx context.Context, kind domain.PrincipalKind, email string) error {
	key := l.key(kind, email)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.log.Warn().Err(err).Msg("login limiter unavailable, allowing attempt")
		return nil
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, loginWindow).Err(); err != nil {
			l.log.Warn().Err(err).Msg("failed to set login limiter window")
		}
	}
	if n > maxLoginAttempts {
		return domain.ErrTooManyAttempts
	}
	return nil
}

func (l *LoginLimiter) key(kind domain.PrincipalKind, email string) string {
	return fmt.Sprintf("login:%s:%s", kind, email)
}
