package session

import (
	"context"
	"errors"
	"fmt"

	"campcrew-funnel/internal/funnel"
	"campcrew-funnel/internal/metrics"
	"campcrew-funnel/internal/submission"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrBusy = errors.New("session is busy")

// View is the state of one session as shown to the host, with derived values.
type View struct {
	ID                string             `json:"id"`
	State             funnel.State       `json:"state"`
	SelectedPlan      *funnel.Plan       `json:"selectedPlan,omitempty"`
	AllRequiredAgreed bool               `json:"allRequiredAgreed"`
	CanProceed        bool               `json:"canProceed"`
	Navigation        []funnel.Directive `json:"navigation,omitempty"`
}

// Service hosts funnel sessions in Redis. Every action runs under the
// session's exclusive lock, which also serves as the submission in-flight flag.
type Service struct {
	store    Store
	recorder submission.Recorder
	logger   *zap.Logger
}

func NewService(store Store, recorder submission.Recorder, logger *zap.Logger) *Service {
	return &Service{store: store, recorder: recorder, logger: logger}
}

func (s *Service) Create(ctx context.Context) (View, error) {
	const operation = "session.Create"

	id := uuid.NewString()
	state := funnel.New()
	if err := s.store.SetFunnelState(ctx, id, state); err != nil {
		return View{}, fmt.Errorf("%s: %w", operation, err)
	}
	s.logger.Info("Session started", zap.String("session_id", id))
	return buildView(id, state, nil), nil
}

func (s *Service) Get(ctx context.Context, id string) (View, error) {
	state, err := s.load(ctx, id)
	if err != nil {
		return View{}, err
	}
	return buildView(id, state, nil), nil
}

func (s *Service) Summary(ctx context.Context, id string) (funnel.Summary, error) {
	state, err := s.load(ctx, id)
	if err != nil {
		return funnel.Summary{}, err
	}
	return funnel.Summarize(state)
}

func (s *Service) Abandon(ctx context.Context, id string) error {
	if err := s.store.DropFunnelState(ctx, id); err != nil {
		return fmt.Errorf("session.Abandon: %w", err)
	}
	s.logger.Info("Session abandoned", zap.String("session_id", id))
	return nil
}

// Dispatch applies one action to the session. A session already processing
// an action (a pending submission in practice) rejects it with ErrBusy,
// which wraps funnel.ErrSubmitPending.
func (s *Service) Dispatch(ctx context.Context, id string, action funnel.Action) (View, error) {
	const operation = "session.Dispatch"

	lock := s.store.SessionLock(id)
	ok, err := lock.TryAcquire(ctx)
	if err != nil {
		return View{}, fmt.Errorf("%s: %w", operation, err)
	}
	if !ok {
		state, lerr := s.load(ctx, id)
		if lerr != nil {
			return View{}, lerr
		}
		return buildView(id, state, nil), fmt.Errorf("%w: %w", ErrBusy, funnel.ErrSubmitPending)
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			s.logger.Error("Failed to release session lock",
				zap.String("session_id", id),
				zap.Error(err))
		}
	}()

	state, err := s.load(ctx, id)
	if err != nil {
		return View{}, err
	}

	// We hold the lock, so a state still marked as submitting belongs to a
	// request that died mid-flight.
	if state.IsSubmitting {
		s.logger.Warn("Recovering interrupted submission", zap.String("session_id", id))
		state, _, err = funnel.Apply(state, funnel.SubmitFailed{Message: "이전 신청이 중단되었습니다. 다시 시도해주세요."})
		if err != nil {
			return View{}, fmt.Errorf("%s: recover: %w", operation, err)
		}
	}

	guard := funnel.NewHistoryGuard()
	if state.Step.InFunnel() {
		guard.Hold(state.Step)
		guard.Directives()
	}

	machine := funnel.NewMachine(state,
		submission.NewClient(s.recorder, nil, s.logger.With(zap.String("session_id", id))),
		funnel.WithGuard(guard),
		funnel.WithSink(sink{store: s.store, id: id}),
		funnel.WithLogger(s.logger.With(zap.String("session_id", id))),
		funnel.WithObserver(observe),
	)

	next, err := machine.Dispatch(ctx, action)
	view := buildView(id, next, guard.Directives())
	if err != nil {
		s.logger.Debug("Action rejected",
			zap.String("session_id", id),
			zap.String("action", funnel.ActionName(action)),
			zap.Int("step", int(next.Step)),
			zap.Error(err))
		return view, err
	}

	s.logger.Debug("Action applied",
		zap.String("session_id", id),
		zap.String("action", funnel.ActionName(action)),
		zap.String("step", next.Step.String()))
	return view, nil
}

func (s *Service) load(ctx context.Context, id string) (funnel.State, error) {
	state, err := s.store.GetFunnelState(ctx, id)
	if err != nil {
		return funnel.State{}, fmt.Errorf("session.load: %w", err)
	}
	return state, nil
}

type sink struct {
	store Store
	id    string
}

func (k sink) Save(ctx context.Context, state funnel.State) error {
	return k.store.SetFunnelState(ctx, k.id, state)
}

func observe(from, to funnel.State, a funnel.Action, err error) {
	if err != nil {
		metrics.ActionsRejected.WithLabelValues(funnel.ActionName(a), reason(err)).Inc()
		return
	}
	if from.Step != to.Step {
		metrics.Transitions.WithLabelValues(from.Step.String(), to.Step.String()).Inc()
	}
}

func reason(err error) string {
	for _, known := range []error{
		funnel.ErrNoPlanSelected, funnel.ErrEmptyCrew, funnel.ErrValidationFailed,
		funnel.ErrAgreementsIncomplete, funnel.ErrSubmitPending, funnel.ErrSessionComplete,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "invalid"
}

func buildView(id string, state funnel.State, nav []funnel.Directive) View {
	v := View{
		ID:                id,
		State:             state,
		AllRequiredAgreed: state.AllRequiredAgreed(),
		CanProceed:        state.CanProceed(),
		Navigation:        nav,
	}
	if p, ok := state.SelectedPlan(); ok {
		v.SelectedPlan = &p
	}
	return v
}
