package funnel

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Submitter sends a lead to the record store. Implementations return an error
// wrapping ErrSubmitPending when another submission holds the in-flight flag.
type Submitter interface {
	Submit(ctx context.Context, snap Snapshot) (Ack, error)
}

// Sink persists states produced by the machine, including the intermediate
// "submitting" state saved before the submitter is called.
type Sink interface {
	Save(ctx context.Context, s State) error
}

// Machine drives Apply and performs its effects. Safe for concurrent use; the
// submitter call runs without holding the machine lock so a second submit
// observes IsSubmitting and is ignored.
type Machine struct {
	mu        sync.Mutex
	state     State
	submitter Submitter
	guard     NavigationGuard
	sink      Sink
	logger    *zap.Logger
	onApply   func(from, to State, a Action, err error)
}

type Option func(*Machine)

func WithGuard(g NavigationGuard) Option {
	return func(m *Machine) { m.guard = g }
}

func WithSink(s Sink) Option {
	return func(m *Machine) { m.sink = s }
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// WithObserver registers a hook called after every applied action.
func WithObserver(fn func(from, to State, a Action, err error)) Option {
	return func(m *Machine) { m.onApply = fn }
}

func NewMachine(state State, submitter Submitter, opts ...Option) *Machine {
	m := &Machine{
		state:     state,
		submitter: submitter,
		guard:     NoopGuard{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// Dispatch applies a and runs the resulting effect. The returned state is the
// machine state after the action, also when an error is returned.
func (m *Machine) Dispatch(ctx context.Context, a Action) (State, error) {
	m.mu.Lock()
	next, effect, err := m.apply(a)
	if effect != EffectSubmit {
		if effect == EffectReassertNavigation {
			m.guard.Reassert(next.Step)
		}
		m.mu.Unlock()
		if errors.Is(err, ErrSubmitPending) || errors.Is(err, ErrSessionComplete) {
			return next, err
		}
		if serr := m.save(ctx, next); serr != nil {
			return next, serr
		}
		return next, err
	}
	snap := next.Snapshot()
	m.mu.Unlock()

	// An in-flight submission runs to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	if err := m.save(ctx, next); err != nil {
		return m.finish(ctx, SubmitFailed{Message: "신청 상태를 저장하지 못했습니다. 다시 시도해주세요."}, err)
	}

	ack, err := m.submitter.Submit(ctx, snap)
	switch {
	case errors.Is(err, ErrSubmitPending):
		m.logger.Info("Submission ignored, another one is in flight")
		state, ferr := m.finish(ctx, SubmitFailed{}, nil)
		if ferr != nil {
			return state, ferr
		}
		return state, err
	case err != nil:
		m.logger.Warn("Submission failed", zap.Error(err))
		return m.finish(ctx, SubmitFailed{Message: displayMessage(err)}, err)
	}

	m.logger.Info("Submission succeeded", zap.String("record_id", ack.RecordID))
	return m.finish(ctx, SubmitSucceeded{RecordID: ack.RecordID}, nil)
}

// finish applies a submit outcome and persists it. cause, when set, is
// returned to the caller after the state has been stored.
func (m *Machine) finish(ctx context.Context, outcome Action, cause error) (State, error) {
	m.mu.Lock()
	next, _, err := m.apply(outcome)
	m.mu.Unlock()
	if err != nil {
		return next, fmt.Errorf("apply %s: %w", outcome.actionName(), err)
	}
	if err := m.save(ctx, next); err != nil {
		return next, err
	}
	return next, cause
}

// apply must be called with m.mu held.
func (m *Machine) apply(a Action) (State, Effect, error) {
	prev := m.state
	next, effect, err := Apply(prev, a)
	m.state = next
	if prev.Step != next.Step {
		if next.Step.InFunnel() {
			m.guard.Hold(next.Step)
		} else {
			m.guard.Release()
		}
	}
	if m.onApply != nil {
		m.onApply(prev, next, a, err)
	}
	return next.clone(), effect, err
}

func (m *Machine) save(ctx context.Context, s State) error {
	if m.sink == nil {
		return nil
	}
	if err := m.sink.Save(ctx, s); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// displayMessage picks the user-facing text of a submission error.
func displayMessage(err error) string {
	var d interface{ DisplayMessage() string }
	if errors.As(err, &d) {
		return d.DisplayMessage()
	}
	return "신청 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
}
