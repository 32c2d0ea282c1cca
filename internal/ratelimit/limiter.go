package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hrportal_backend/internal/logger"
)

const keyPrefix = "hrportal:rl"

// Scopes ограничиваемых операций
const (
	ScopeLogin          = "login"
	ScopeForgotPassword = "forgot"
)

// Limiter - счетчики попыток в Redis с фиксированным окном.
// nil *Limiter означает, что ограничение выключено (Redis не настроен).
type Limiter struct {
	redis  redis.UniversalClient
	window time.Duration
	limits map[string]int
}

func New(client redis.UniversalClient, window time.Duration, limits map[string]int) *Limiter {
	return &Limiter{redis: client, window: window, limits: limits}
}

// NewFromAddr подключается к Redis и проверяет соединение
func NewFromAddr(ctx context.Context, addr, password string, db int, window time.Duration, limits map[string]int) (*Limiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return New(client, window, limits), nil
}

// Allow учитывает попытку и возвращает ErrRateLimited при превышении лимита.
// При недоступном Redis запрос пропускается.
func (l *Limiter) Allow(ctx context.Context, scope, key string) error {
	if l == nil {
		return nil
	}
	limit, ok := l.limits[scope]
	if !ok || limit <= 0 {
		return nil
	}

	count, err := l.incrementWithTTL(ctx, counterKey(scope, key))
	if err != nil {
		logger.CtxWarn(ctx, "rate limiter unavailable, allowing request", "scope", scope, "error", err)
		return nil
	}
	if count > int64(limit) {
		return ErrRateLimited
	}
	return nil
}

// Reset сбрасывает счетчик (после успешного входа)
func (l *Limiter) Reset(ctx context.Context, scope, key string) {
	if l == nil {
		return
	}
	if err := l.redis.Del(ctx, counterKey(scope, key)).Err(); err != nil {
		logger.CtxWarn(ctx, "failed to reset rate limit counter", "scope", scope, "error", err)
	}
}

func (l *Limiter) Close() error {
	if l == nil {
		return nil
	}
	return l.redis.Close()
}

func (l *Limiter) incrementWithTTL(ctx context.Context, key string) (int64, error) {
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	// окно начинается с первой попытки
	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}
	return count, nil
}

func counterKey(scope, key string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, scope, key)
}
