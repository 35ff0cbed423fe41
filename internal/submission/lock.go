package submission

import (
	"context"
	"sync/atomic"
)

// LocalLock is an in-process InFlight flag.
type LocalLock struct {
	held atomic.Bool
}

func (l *LocalLock) TryAcquire(context.Context) (bool, error) {
	return l.held.CompareAndSwap(false, true), nil
}

func (l *LocalLock) Release(context.Context) error {
	l.held.Store(false)
	return nil
}
