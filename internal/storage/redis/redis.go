package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"campcrew-funnel/internal/funnel"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

type Storage struct {
	client  *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
}

// New creates a new Redis client
func New(addr, password string, db int, ttl, lockTTL time.Duration) *Storage {
	return NewWithClient(redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     100, // Increase connection pool size
		MinIdleConns: 10,  // Keep minimum connections ready
	}), ttl, lockTTL)
}

func NewWithClient(client *redis.Client, ttl, lockTTL time.Duration) *Storage {
	return &Storage{client: client, ttl: ttl, lockTTL: lockTTL}
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *Storage) Close() {
	if s.client != nil {
		_ = s.client.Close()
	}
}

func (s *Storage) SetFunnelState(ctx context.Context, sessionID string, state funnel.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	return s.client.Set(ctx, buildStateKey(sessionID), data, s.ttl).Err()
}

func (s *Storage) GetFunnelState(ctx context.Context, sessionID string) (funnel.State, error) {
	data, err := s.client.Get(ctx, buildStateKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return funnel.State{}, ErrSessionNotFound
	}
	if err != nil {
		return funnel.State{}, fmt.Errorf("get state: %w", err)
	}

	var state funnel.State
	if err := json.Unmarshal(data, &state); err != nil {
		return funnel.State{}, fmt.Errorf("unmarshal failure: %w", err)
	}
	return state, nil
}

func (s *Storage) DropFunnelState(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, buildStateKey(sessionID), buildLockKey(sessionID)).Err()
}

// SessionLock returns the exclusive per-session flag held while an action,
// in particular a submission, is being processed.
func (s *Storage) SessionLock(sessionID string) *Lock {
	return &Lock{client: s.client, key: buildLockKey(sessionID), ttl: s.lockTTL}
}

func buildStateKey(sessionID string) string {
	return fmt.Sprintf("funnel:state:%s", sessionID)
}

func buildLockKey(sessionID string) string {
	return fmt.Sprintf("funnel:lock:%s", sessionID)
}
