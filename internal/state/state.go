package state

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// StateManager records when each route was last generated and guards a
// route against concurrent regeneration.
//
// TryLock returns a token identifying the holder. Unlock releases the lock
// only while that token still holds it, so an expired lock taken over by
// someone else is left alone.
type StateManager interface {
	LastGenerated(ctx context.Context, route string) (time.Time, error)
	MarkGenerated(ctx context.Context, route string, at time.Time) error
	TryLock(ctx context.Context, route string, ttl time.Duration) (string, bool, error)
	Unlock(ctx context.Context, route, token string) error
}

// unlockScript deletes the lock key only if it still carries our token.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisStateManager struct {
	redisClient *redis.Client
	keyPrefix   string
}

func NewRedisStateManager(redisClient *redis.Client) StateManager {
	return &redisStateManager{
		redisClient: redisClient,
		keyPrefix:   "pokedex:",
	}
}

func (s *redisStateManager) generatedKey(route string) string {
	return s.keyPrefix + "generated:" + route
}

func (s *redisStateManager) lockKey(route string) string {
	return s.keyPrefix + "lock:" + route
}

func (s *redisStateManager) LastGenerated(ctx context.Context, route string) (time.Time, error) {
	val, err := s.redisClient.Get(ctx, s.generatedKey(route)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, nil // never generated
		}
		return time.Time{}, fmt.Errorf("failed to get last generation of %s: %w", route, err)
	}

	unixMilli, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse last generation of %s: %w", route, err)
	}

	return time.UnixMilli(unixMilli), nil
}

func (s *redisStateManager) MarkGenerated(ctx context.Context, route string, at time.Time) error {
	err := s.redisClient.Set(ctx, s.generatedKey(route), at.UnixMilli(), 0).Err() // No expiration
	if err != nil {
		return fmt.Errorf("failed to mark %s as generated: %w", route, err)
	}
	return nil
}

func (s *redisStateManager) TryLock(ctx context.Context, route string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()

	ok, err := s.redisClient.SetNX(ctx, s.lockKey(route), token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to lock %s: %w", route, err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (s *redisStateManager) Unlock(ctx context.Context, route, token string) error {
	if err := unlockScript.Run(ctx, s.redisClient, []string{s.lockKey(route)}, token).Err(); err != nil {
		return fmt.Errorf("failed to unlock %s: %w", route, err)
	}
	return nil
}
