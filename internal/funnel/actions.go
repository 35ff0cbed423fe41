package funnel

// Action is a user or system event applied to a State. The set is closed:
// only the types in this file implement it.
type Action interface {
	actionName() string
}

type Start struct{}

type SelectBudget struct {
	Budget Budget
}

type SelectPlan struct {
	PlanID string
}

// SetCrew sets the headcount of one tier of the custom crew.
type SetCrew struct {
	Tier  Tier
	Count int
}

type ChangeField struct {
	Field string
	Value string
}

type SetSiteTypes struct {
	Types []string
}

// Next is the primary "proceed" button of steps 2 to 4.
type Next struct{}

// Back is the in-funnel back control.
type Back struct{}

// HostBack is a native back gesture reported by the host platform.
type HostBack struct{}

type ToggleAgreement struct {
	ID string
}

type AckCritical struct {
	Index int
}

type ToggleAll struct{}

type Submit struct{}

// SubmitSucceeded and SubmitFailed report the outcome of a submit effect.
type SubmitSucceeded struct {
	RecordID string
}

type SubmitFailed struct {
	Message string
}

func (Start) actionName() string           { return "start" }
func (SelectBudget) actionName() string    { return "select_budget" }
func (SelectPlan) actionName() string      { return "select_plan" }
func (SetCrew) actionName() string         { return "set_crew" }
func (ChangeField) actionName() string     { return "change_field" }
func (SetSiteTypes) actionName() string    { return "set_site_types" }
func (Next) actionName() string            { return "next" }
func (Back) actionName() string            { return "back" }
func (HostBack) actionName() string        { return "host_back" }
func (ToggleAgreement) actionName() string { return "toggle_agreement" }
func (AckCritical) actionName() string     { return "ack_critical" }
func (ToggleAll) actionName() string       { return "toggle_all" }
func (Submit) actionName() string          { return "submit" }
func (SubmitSucceeded) actionName() string { return "submit_succeeded" }
func (SubmitFailed) actionName() string    { return "submit_failed" }

// ActionName returns the wire name of an action.
func ActionName(a Action) string {
	return a.actionName()
}
