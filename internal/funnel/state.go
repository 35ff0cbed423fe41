package funnel

// AgreementFlags holds the section-level consent toggles.
type AgreementFlags struct {
	Contract bool `json:"contract"`
	Privacy  bool `json:"privacy"`
}

// State is one funnel session. It is owned by a single user session and only
// changed through Apply.
type State struct {
	Step         Step              `json:"step"`
	Direction    Direction         `json:"direction"`
	Budget       Budget            `json:"budget"`
	PlanID       string            `json:"selectedPlanId,omitempty"`
	FormData     ContactInfo       `json:"formData"`
	Errors       map[string]string `json:"errors,omitempty"`
	Agreements   AgreementFlags    `json:"agreements"`
	CustomCrew   Crew              `json:"customCrew"`
	CriticalAcks map[int]bool      `json:"criticalAcks,omitempty"`
	IsSubmitting bool              `json:"isSubmitting"`
	SubmitError  string            `json:"submitError,omitempty"`
	RecordID     string            `json:"recordId,omitempty"`
}

// New returns the state of a fresh session at the intro screen.
func New() State {
	return State{
		Step:      StepIntro,
		Direction: Forward,
		FormData:  ContactInfo{SiteTypes: []string{}},
	}
}

// SelectedPlan resolves the current selection. The custom plan is rebuilt on
// every call so its price always follows CustomCrew.
func (s State) SelectedPlan() (Plan, bool) {
	if s.PlanID == "" {
		return Plan{}, false
	}
	if s.PlanID == CustomPlanID {
		return CustomPlan(s.CustomCrew), true
	}
	return FindPlan(s.Budget, s.PlanID)
}

// Crew is the composition that will be submitted.
func (s State) Crew() Crew {
	p, ok := s.SelectedPlan()
	if !ok {
		return Crew{}
	}
	return p.Crew
}

// PlanTier is the plan label sent to the record store.
func (s State) PlanTier() string {
	if p, ok := s.SelectedPlan(); ok {
		return p.Name
	}
	return CustomPlanName
}

func (s State) AllCriticalAcked() bool {
	for _, i := range CriticalClauseIndices() {
		if !s.CriticalAcks[i] {
			return false
		}
	}
	return true
}

func (s State) AllRequiredAgreed() bool {
	return s.Agreements.Contract && s.Agreements.Privacy && s.AllCriticalAcked()
}

// CanProceed reports whether the primary action of the current step is enabled.
func (s State) CanProceed() bool {
	switch s.Step {
	case StepPlan:
		return s.planGuard() == nil
	case StepContact:
		return true
	case StepAgreement:
		return s.AllRequiredAgreed() && !s.IsSubmitting
	}
	return false
}

func (s State) planGuard() error {
	p, ok := s.SelectedPlan()
	if !ok {
		return ErrNoPlanSelected
	}
	if p.IsCustom() && p.Crew.Headcount() < 1 {
		return ErrEmptyCrew
	}
	return nil
}

// clone copies the maps and slices so a returned State never aliases its input.
func (s State) clone() State {
	if s.Errors != nil {
		m := make(map[string]string, len(s.Errors))
		for k, v := range s.Errors {
			m[k] = v
		}
		s.Errors = m
	}
	if s.CriticalAcks != nil {
		m := make(map[int]bool, len(s.CriticalAcks))
		for k, v := range s.CriticalAcks {
			m[k] = v
		}
		s.CriticalAcks = m
	}
	if s.FormData.SiteTypes != nil {
		st := make([]string, len(s.FormData.SiteTypes))
		copy(st, s.FormData.SiteTypes)
		s.FormData.SiteTypes = st
	}
	return s
}
