package platter

// ZArbiter hands out ever-increasing layer indices. Relative order of all
// past BringToFront calls is preserved by plain integer comparison; the
// counter is never decremented or reset.
type ZArbiter struct {
	highest int
}

// NewZArbiter creates an arbiter whose first BringToFront returns base+1.
func NewZArbiter(base int) *ZArbiter {
	return &ZArbiter{highest: base}
}

// BringToFront raises e above every element previously brought to front and
// returns its new ZIndex.
func (a *ZArbiter) BringToFront(e *Element) int {
	a.highest++
	e.SetZIndex(a.highest)
	return a.highest
}

// Highest returns the most recently assigned layer index.
func (a *ZArbiter) Highest() int {
	return a.highest
}

// defaultArbiter is shared by every Scene (plain int, single-threaded).
var defaultArbiter = NewZArbiter(BaseZIndex)

// DefaultArbiter returns the process-wide arbiter.
func DefaultArbiter() *ZArbiter {
	return defaultArbiter
}
