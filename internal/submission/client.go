package submission

import (
	"context"
	"fmt"

	"campcrew-funnel/internal/funnel"

	"go.uber.org/zap"
)

// Client submits funnel snapshots through a Recorder, allowing one
// submission at a time.
type Client struct {
	recorder Recorder
	flight   InFlight
	logger   *zap.Logger
}

var _ funnel.Submitter = (*Client)(nil)

func NewClient(recorder Recorder, flight InFlight, logger *zap.Logger) *Client {
	if flight == nil {
		flight = &LocalLock{}
	}
	return &Client{
		recorder: recorder,
		flight:   flight,
		logger:   logger,
	}
}

// Submit sends snap. A call made while another is in flight returns
// ErrInFlight without contacting the recorder. The flag is released when the
// recorder returns, whatever the outcome.
func (c *Client) Submit(ctx context.Context, snap funnel.Snapshot) (funnel.Ack, error) {
	const operation = "submission.Submit"

	ok, err := c.flight.TryAcquire(ctx)
	if err != nil {
		return funnel.Ack{}, &Error{Message: msgServer, Err: fmt.Errorf("%s: acquire in-flight flag: %w", operation, err)}
	}
	if !ok {
		c.logger.Info("Duplicate submission ignored",
			zap.String("accommodation", snap.FormData.AccommodationName))
		return funnel.Ack{}, ErrInFlight
	}
	defer func() {
		// The caller's context may already be cancelled; the flag must still clear.
		if err := c.flight.Release(context.WithoutCancel(ctx)); err != nil {
			c.logger.Error("Failed to release in-flight flag", zap.Error(err))
		}
	}()

	c.logger.Info("Submitting lead",
		zap.String("budget", snap.Budget.String()),
		zap.String("plan_tier", snap.PlanTier),
		zap.Int("headcount", snap.Crew.Headcount()))

	ack, err := c.recorder.CreateLead(ctx, snap)
	if err != nil {
		se := asError(err)
		c.logger.Warn("Lead submission failed",
			zap.Int("status", se.Status),
			zap.String("detail", se.Detail),
			zap.Error(err))
		return funnel.Ack{}, se
	}
	return ack, nil
}
