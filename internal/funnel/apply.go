package funnel

// Effect is work the caller of Apply has to perform after storing the new state.
type Effect int

const (
	EffectNone Effect = iota
	// EffectSubmit asks the caller to send the lead and report back with
	// SubmitSucceeded or SubmitFailed.
	EffectSubmit
	// EffectReassertNavigation asks the host to restore the current step
	// after a native back gesture.
	EffectReassertNavigation
)

// Apply is the funnel transition function. It never mutates s. The returned
// state is meaningful even when err is non-nil: a rejected action may still
// clear a submit error or populate field errors.
func Apply(s State, a Action) (State, Effect, error) {
	next := s.clone()

	if s.Step == StepComplete {
		return next, EffectNone, ErrSessionComplete
	}

	switch a.(type) {
	case SubmitSucceeded, SubmitFailed:
		if !s.IsSubmitting {
			return next, EffectNone, ErrActionNotAllowed
		}
	case HostBack:
	default:
		if s.IsSubmitting {
			return next, EffectNone, ErrSubmitPending
		}
		next.SubmitError = ""
	}

	switch act := a.(type) {
	case Start:
		if s.Step != StepIntro {
			return next, EffectNone, ErrActionNotAllowed
		}
		next.goTo(StepBudget)

	case SelectBudget:
		if s.Step != StepBudget {
			return next, EffectNone, ErrActionNotAllowed
		}
		if !act.Budget.Valid() {
			return next, EffectNone, ErrInvalidBudget
		}
		next.Budget = act.Budget
		next.PlanID = ""
		next.CustomCrew = Crew{}
		if act.Budget.IsCustom() {
			next.PlanID = CustomPlanID
		}
		next.goTo(StepPlan)

	case SelectPlan:
		if s.Step != StepPlan || s.Budget.IsCustom() {
			return next, EffectNone, ErrActionNotAllowed
		}
		if _, ok := FindPlan(s.Budget, act.PlanID); !ok {
			return next, EffectNone, ErrUnknownPlan
		}
		next.PlanID = act.PlanID

	case SetCrew:
		if s.Step != StepPlan || s.PlanID != CustomPlanID {
			return next, EffectNone, ErrActionNotAllowed
		}
		if !act.Tier.Valid() || act.Count < 0 {
			return next, EffectNone, ErrInvalidCrew
		}
		next.CustomCrew = next.CustomCrew.With(act.Tier, act.Count)

	case ChangeField:
		if s.Step != StepContact {
			return next, EffectNone, ErrActionNotAllowed
		}
		if err := next.FormData.set(act.Field, act.Value); err != nil {
			return next, EffectNone, err
		}
		next.clearFieldError(act.Field)

	case SetSiteTypes:
		if s.Step != StepContact {
			return next, EffectNone, ErrActionNotAllowed
		}
		types := make([]string, 0, len(act.Types))
		for _, t := range act.Types {
			if !contains(SiteTypes, t) {
				return next, EffectNone, ErrInvalidSiteType
			}
			if !contains(types, t) {
				types = append(types, t)
			}
		}
		next.FormData.SiteTypes = types
		next.clearFieldError(FieldSiteTypes)

	case Next:
		switch s.Step {
		case StepPlan:
			if err := s.planGuard(); err != nil {
				return next, EffectNone, err
			}
			next.goTo(StepContact)
		case StepContact:
			errs := Validate(s.FormData)
			if len(errs) > 0 {
				next.Errors = errs
				return next, EffectNone, ErrValidationFailed
			}
			next.Errors = nil
			next.goTo(StepAgreement)
		case StepAgreement:
			return next.beginSubmit()
		default:
			return next, EffectNone, ErrActionNotAllowed
		}

	case Back:
		switch {
		case s.Step <= StepBudget:
			next.goTo(StepIntro)
		default:
			next.goTo(s.Step - 1)
		}

	case HostBack:
		if s.Step.InFunnel() {
			return next, EffectReassertNavigation, nil
		}

	case ToggleAgreement:
		if s.Step != StepAgreement {
			return next, EffectNone, ErrActionNotAllowed
		}
		switch act.ID {
		case AgreementContract:
			next.Agreements.Contract = !next.Agreements.Contract
		case AgreementPrivacy:
			next.Agreements.Privacy = !next.Agreements.Privacy
		default:
			return next, EffectNone, ErrUnknownAgreement
		}

	case AckCritical:
		if s.Step != StepAgreement {
			return next, EffectNone, ErrActionNotAllowed
		}
		if !isCriticalClause(act.Index) {
			return next, EffectNone, ErrNotCriticalClause
		}
		if next.CriticalAcks == nil {
			next.CriticalAcks = make(map[int]bool)
		}
		next.CriticalAcks[act.Index] = !next.CriticalAcks[act.Index]

	case ToggleAll:
		if s.Step != StepAgreement {
			return next, EffectNone, ErrActionNotAllowed
		}
		if s.AllRequiredAgreed() {
			next.Agreements = AgreementFlags{}
			next.CriticalAcks = nil
		} else {
			next.Agreements = AgreementFlags{Contract: true, Privacy: true}
			if next.CriticalAcks == nil {
				next.CriticalAcks = make(map[int]bool)
			}
			for _, i := range CriticalClauseIndices() {
				next.CriticalAcks[i] = true
			}
		}

	case Submit:
		if s.Step != StepAgreement {
			return next, EffectNone, ErrActionNotAllowed
		}
		return next.beginSubmit()

	case SubmitSucceeded:
		next.IsSubmitting = false
		next.RecordID = act.RecordID
		next.goTo(StepComplete)

	case SubmitFailed:
		next.IsSubmitting = false
		next.SubmitError = act.Message

	default:
		return next, EffectNone, ErrActionNotAllowed
	}

	return next, EffectNone, nil
}

func (s State) beginSubmit() (State, Effect, error) {
	if !s.AllRequiredAgreed() {
		return s, EffectNone, ErrAgreementsIncomplete
	}
	s.IsSubmitting = true
	return s, EffectSubmit, nil
}

func (s *State) goTo(step Step) {
	if step > s.Step {
		s.Direction = Forward
	} else {
		s.Direction = Backward
	}
	s.Step = step
}

func (s *State) clearFieldError(field string) {
	if _, ok := s.Errors[field]; !ok {
		return
	}
	delete(s.Errors, field)
	if len(s.Errors) == 0 {
		s.Errors = nil
	}
}

func (c *ContactInfo) set(field, value string) error {
	switch field {
	case FieldAccommodationName:
		c.AccommodationName = value
	case FieldRepresentativeName:
		c.RepresentativeName = value
	case FieldPhone:
		c.Phone = value
	case FieldEmail:
		c.Email = value
	case FieldRegion:
		c.Region = value
	case FieldAdditionalRequests:
		c.AdditionalRequests = value
	default:
		return ErrUnknownField
	}
	return nil
}
