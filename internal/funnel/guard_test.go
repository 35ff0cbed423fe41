package funnel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryGuard(t *testing.T) {
	g := NewHistoryGuard()

	g.Hold(StepBudget)
	g.Hold(StepBudget)
	g.Reassert(StepBudget)
	assert.Equal(t, []Step{StepBudget, StepBudget}, g.Entries())

	assert.Equal(t, []Directive{
		{Kind: DirectivePush, Step: StepBudget},
		{Kind: DirectivePush, Step: StepBudget},
	}, g.Directives())
	assert.Empty(t, g.Directives())

	g.Release()
	assert.Empty(t, g.Entries())
	assert.Equal(t, []Directive{{Kind: DirectiveRelease}}, g.Directives())

	g.Release()
	assert.Empty(t, g.Directives())
}
