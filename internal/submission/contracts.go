package submission

import (
	"context"

	"campcrew-funnel/internal/funnel"
)

// Recorder relays a lead to the record store. The hosting environment picks
// the implementation: StubRecorder for demos, api.Client for the real intermediary.
type Recorder interface {
	CreateLead(ctx context.Context, lead funnel.Snapshot) (funnel.Ack, error)
}

// InFlight is the exclusive flag held for the duration of one submission.
type InFlight interface {
	TryAcquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}
