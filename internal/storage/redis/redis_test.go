package redis

import (
	"context"
	"testing"
	"time"

	"campcrew-funnel/internal/funnel"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*Storage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewWithClient(client, time.Hour, time.Minute), mr
}

func TestStorage_FunnelStateRoundTrip(t *testing.T) {
	s, mr := newTestStorage(t)
	ctx := context.Background()

	state := funnel.New()
	state.Step = funnel.StepContact
	state.Budget = funnel.BudgetCustom
	state.PlanID = funnel.CustomPlanID
	state.CustomCrew = funnel.Crew{Partner: 2}
	state.Errors = map[string]string{funnel.FieldPhone: "연락처를 입력해주세요"}
	state.CriticalAcks = map[int]bool{4: true}

	require.NoError(t, s.SetFunnelState(ctx, "abc", state))
	assert.True(t, mr.Exists("funnel:state:abc"))
	assert.Equal(t, time.Hour, mr.TTL("funnel:state:abc"))

	got, err := s.GetFunnelState(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestStorage_NotFoundAndDrop(t *testing.T) {
	s, mr := newTestStorage(t)
	ctx := context.Background()

	_, err := s.GetFunnelState(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, s.SetFunnelState(ctx, "gone", funnel.New()))
	require.NoError(t, s.DropFunnelState(ctx, "gone"))
	assert.False(t, mr.Exists("funnel:state:gone"))

	mr.FastForward(2 * time.Hour)
	_, err = s.GetFunnelState(ctx, "gone")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStorage_StateExpires(t *testing.T) {
	s, mr := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SetFunnelState(ctx, "old", funnel.New()))
	mr.FastForward(2 * time.Hour)

	_, err := s.GetFunnelState(ctx, "old")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStorage_Ping(t *testing.T) {
	s, mr := newTestStorage(t)
	assert.NoError(t, s.Ping(context.Background()))

	mr.Close()
	assert.Error(t, s.Ping(context.Background()))
}

func TestLock(t *testing.T) {
	s, mr := newTestStorage(t)
	ctx := context.Background()

	first := s.SessionLock("abc")
	second := s.SessionLock("abc")

	ok, err := first.TryAcquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Minute, mr.TTL("funnel:lock:abc"))

	ok, err = second.TryAcquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// releasing a lock we never acquired is a no-op
	require.NoError(t, second.Release(ctx))
	assert.True(t, mr.Exists("funnel:lock:abc"))

	require.NoError(t, first.Release(ctx))
	assert.False(t, mr.Exists("funnel:lock:abc"))

	ok, err = second.TryAcquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLock_ExpiredLockNotStolenBack(t *testing.T) {
	s, mr := newTestStorage(t)
	ctx := context.Background()

	stale := s.SessionLock("abc")
	ok, err := stale.TryAcquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Minute)

	fresh := s.SessionLock("abc")
	ok, err = fresh.TryAcquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, stale.Release(ctx))
	assert.True(t, mr.Exists("funnel:lock:abc"))
}
