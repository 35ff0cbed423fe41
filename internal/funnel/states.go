package funnel

// Step is a funnel screen.
type Step int

const (
	StepIntro Step = iota
	StepBudget
	StepPlan
	StepContact
	StepAgreement
	StepComplete
)

var stepNames = map[Step]string{
	StepIntro:     "intro",
	StepBudget:    "budget",
	StepPlan:      "plan",
	StepContact:   "contact",
	StepAgreement: "agreement",
	StepComplete:  "complete",
}

func (s Step) String() string {
	if n, ok := stepNames[s]; ok {
		return n
	}
	return "unknown"
}

// InFunnel reports whether host back navigation has to be held for this step.
func (s Step) InFunnel() bool {
	return s > StepIntro && s < StepComplete
}

type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)
