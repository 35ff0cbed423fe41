package submission

import (
	"context"
	"fmt"
	"sync"
	"time"

	"campcrew-funnel/internal/funnel"

	"go.uber.org/zap"
)

// StubRecorder keeps leads in memory. It stands in for the record store in
// demos and tests.
type StubRecorder struct {
	mu     sync.Mutex
	delay  time.Duration
	leads  []funnel.Snapshot
	fail   error
	logger *zap.Logger
}

func NewStubRecorder(delay time.Duration, logger *zap.Logger) *StubRecorder {
	return &StubRecorder{delay: delay, logger: logger}
}

// FailWith makes every following CreateLead return err. nil restores success.
func (s *StubRecorder) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

func (s *StubRecorder) CreateLead(ctx context.Context, lead funnel.Snapshot) (funnel.Ack, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return funnel.Ack{}, &Error{Message: msgTransport, Err: ctx.Err()}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return funnel.Ack{}, s.fail
	}
	s.leads = append(s.leads, lead)
	id := fmt.Sprintf("demo%04d", len(s.leads))

	s.logger.Info("[demo] lead recorded",
		zap.String("record_id", id),
		zap.String("accommodation", lead.FormData.AccommodationName),
		zap.String("plan_tier", lead.PlanTier))
	return funnel.Ack{RecordID: id, Demo: true}, nil
}

// Leads returns every lead recorded so far.
func (s *StubRecorder) Leads() []funnel.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]funnel.Snapshot(nil), s.leads...)
}
