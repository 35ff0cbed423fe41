package funnel

import "sync"

// NavigationGuard keeps the host's native back navigation from leaving the
// funnel. The machine calls Hold whenever it lands on an in-funnel step,
// Release when it leaves them and Reassert after a native back gesture.
type NavigationGuard interface {
	Hold(step Step)
	Release()
	Reassert(step Step)
}

type NoopGuard struct{}

func (NoopGuard) Hold(Step)     {}
func (NoopGuard) Release()      {}
func (NoopGuard) Reassert(Step) {}

// HistoryGuard mirrors browser-history semantics: every held or reasserted
// step pushes one history entry. Hosts read Directives to replay them.
type HistoryGuard struct {
	mu      sync.Mutex
	entries []Step
	pending []Directive
}

type DirectiveKind string

const (
	DirectivePush    DirectiveKind = "push"
	DirectiveRelease DirectiveKind = "release"
)

type Directive struct {
	Kind DirectiveKind `json:"kind"`
	Step Step          `json:"step"`
}

func NewHistoryGuard() *HistoryGuard {
	return &HistoryGuard{}
}

func (g *HistoryGuard) Hold(step Step) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n := len(g.entries); n > 0 && g.entries[n-1] == step {
		return
	}
	g.push(step)
}

func (g *HistoryGuard) Reassert(step Step) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.push(step)
}

func (g *HistoryGuard) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.entries) == 0 {
		return
	}
	g.entries = nil
	g.pending = append(g.pending, Directive{Kind: DirectiveRelease})
}

func (g *HistoryGuard) push(step Step) {
	g.entries = append(g.entries, step)
	g.pending = append(g.pending, Directive{Kind: DirectivePush, Step: step})
}

// Entries returns the steps currently held in history, oldest first.
func (g *HistoryGuard) Entries() []Step {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Step(nil), g.entries...)
}

// Directives drains the directives produced since the last call.
func (g *HistoryGuard) Directives() []Directive {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := g.pending
	g.pending = nil
	return out
}
