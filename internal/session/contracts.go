package session

import (
	"context"

	"campcrew-funnel/internal/funnel"
	"campcrew-funnel/internal/storage/redis"
	"campcrew-funnel/internal/submission"
)

type Store interface {
	GetFunnelState(ctx context.Context, sessionID string) (funnel.State, error)
	SetFunnelState(ctx context.Context, sessionID string, state funnel.State) error
	DropFunnelState(ctx context.Context, sessionID string) error
	SessionLock(sessionID string) *redis.Lock
}

var _ Store = (*redis.Storage)(nil)

var _ submission.InFlight = (*redis.Lock)(nil)
