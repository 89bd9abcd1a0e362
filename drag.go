package platter

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// PointerSample is a timestamped pointer position.
type PointerSample struct {
	Pos    Vec2
	TimeMs int64
}

// DragSession is the ephemeral state of one drag gesture. It is created on
// Start and dropped when the element returns to idle.
type DragSession struct {
	Origin     Vec2 // pointer position at start
	Anchor     Vec2 // element position at start
	LastSample PointerSample
	Velocity   Vec2 // pixels per tick, from the last two samples only
}

// dragState is the controller's record for one element.
type dragState struct {
	el      *Element
	phase   DragPhase
	session *DragSession
	pos     Vec2
	gen     uint64
	frame   FrameHandle
}

// DragController owns the drag lifecycle of every draggable element in a
// scene. At most one element is dragging at any time; any number may be
// settling, each with its own frame callback.
type DragController struct {
	clock   Clock
	frames  *FrameScheduler
	arbiter *ZArbiter
	cfg     MomentumConfig
	logger  *log.Logger

	states   map[uint32]*dragState
	active   *dragState
	handlers handlerRegistry
}

// NewDragController creates a controller. A nil logger discards output.
func NewDragController(clock Clock, frames *FrameScheduler, arbiter *ZArbiter, cfg MomentumConfig, logger *log.Logger) *DragController {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &DragController{
		clock:   clock,
		frames:  frames,
		arbiter: arbiter,
		cfg:     cfg,
		logger:  logger,
		states:  make(map[uint32]*dragState),
	}
}

func (c *DragController) state(el *Element) *dragState {
	st, ok := c.states[el.ID]
	if !ok {
		st = &dragState{el: el}
		c.states[el.ID] = st
	}
	return st
}

// Start begins a drag on el from ev. Any coast still running for el is
// cancelled before the new session exists, and a different element still
// dragging is ended first.
func (c *DragController) Start(el *Element, ev *PointerEvent) {
	if el == nil || ev == nil {
		return
	}
	st := c.state(el)
	c.cancelMomentum(st)

	if c.active != nil && c.active != st {
		c.End(c.active.el)
	}

	pos := el.pin()
	p := ev.Point()
	st.pos = pos
	st.session = &DragSession{
		Origin:     p,
		Anchor:     pos,
		LastSample: PointerSample{Pos: p, TimeMs: c.clock.NowMs()},
	}
	st.phase = PhaseDragging
	el.dragging = true
	c.active = st

	c.arbiter.BringToFront(el)
	ev.PreventDefault()

	c.logger.Debug("drag start", "element", el.Name, "left", pos.X, "top", pos.Y, "z", el.ZIndex)
	c.handlers.fire(EventDragStart, c.context(st))
}

// Move repositions el to follow ev and refreshes the velocity estimate.
// No-op unless el is the active session.
func (c *DragController) Move(el *Element, ev *PointerEvent) {
	st := c.active
	if st == nil || st.el != el || ev == nil {
		return
	}
	sess := st.session
	p := ev.Point()

	st.pos = sess.Anchor.Add(p.Sub(sess.Origin))
	el.SetPosition(st.pos.X, st.pos.Y)

	now := c.clock.NowMs()
	if elapsed := float64(now - sess.LastSample.TimeMs); elapsed > 0 {
		sess.Velocity = Vec2{
			X: (p.X - sess.LastSample.Pos.X) / elapsed * c.cfg.TickMs,
			Y: (p.Y - sess.LastSample.Pos.Y) / elapsed * c.cfg.TickMs,
		}
	}
	sess.LastSample = PointerSample{Pos: p, TimeMs: now}
	ev.PreventDefault()

	c.handlers.fire(EventDrag, c.context(st))
}

// End releases el. A release faster than the threshold on either axis hands
// off to a momentum coast; otherwise el rests with zero velocity. No-op
// unless el is the active session, so a second End changes nothing.
func (c *DragController) End(el *Element) {
	st := c.active
	if st == nil || st.el != el {
		return
	}
	c.active = nil
	el.dragging = false

	v := st.session.Velocity
	if c.cfg.releases(v) {
		c.startMomentum(st, v, st.pos)
		c.handlers.fire(EventDragEnd, c.context(st))
		return
	}
	st.session.Velocity = Vec2{}
	st.phase = PhaseIdle
	c.handlers.fire(EventDragEnd, c.context(st))
	if c.active == st {
		// A DragEnd handler started a new drag on el.
		return
	}
	c.settle(st)
}

// Dispatch routes a global move or end event to whichever element is
// dragging. Start events are ignored; they need a target.
func (c *DragController) Dispatch(ev *PointerEvent) {
	if c.active == nil || ev == nil {
		return
	}
	switch ev.Type {
	case PointerMove:
		c.Move(c.active.el, ev)
	case PointerEnd:
		c.End(c.active.el)
	}
}

// settle returns st to idle and drops its session.
func (c *DragController) settle(st *dragState) {
	ctx := c.context(st)
	ctx.Phase = PhaseIdle
	st.phase = PhaseIdle
	st.session = nil
	st.frame = 0
	c.logger.Debug("settled", "element", st.el.Name, "left", st.pos.X, "top", st.pos.Y)
	c.handlers.fire(EventSettle, ctx)
}

// Forget cancels anything running for el and drops its record.
func (c *DragController) Forget(el *Element) {
	st, ok := c.states[el.ID]
	if !ok {
		return
	}
	c.cancelMomentum(st)
	if c.active == st {
		c.active = nil
		el.dragging = false
	}
	delete(c.states, el.ID)
}

// Phase returns el's lifecycle state.
func (c *DragController) Phase(el *Element) DragPhase {
	if st, ok := c.states[el.ID]; ok {
		return st.phase
	}
	return PhaseIdle
}

// Session returns el's current session, or nil when idle.
func (c *DragController) Session(el *Element) *DragSession {
	if st, ok := c.states[el.ID]; ok {
		return st.session
	}
	return nil
}

// Velocity returns el's current velocity; zero when idle.
func (c *DragController) Velocity(el *Element) Vec2 {
	if sess := c.Session(el); sess != nil {
		return sess.Velocity
	}
	return Vec2{}
}

// Active returns the element currently dragging, or nil.
func (c *DragController) Active() *Element {
	if c.active == nil {
		return nil
	}
	return c.active.el
}

// ActiveCount returns how many elements are in PhaseDragging. It is never
// more than one.
func (c *DragController) ActiveCount() int {
	n := 0
	for _, st := range c.states {
		if st.phase == PhaseDragging {
			n++
		}
	}
	return n
}

// Settling returns how many elements are coasting.
func (c *DragController) Settling() int {
	n := 0
	for _, st := range c.states {
		if st.phase == PhaseSettling {
			n++
		}
	}
	return n
}

// checkInvariants panics if more than one element is dragging or the active
// record disagrees with the phases. Called from debug mode each frame.
func (c *DragController) checkInvariants() {
	n := c.ActiveCount()
	if n > 1 {
		panic(fmt.Sprintf("platter debug: %d elements dragging at once", n))
	}
	if (n == 1) != (c.active != nil) {
		panic("platter debug: active session does not match dragging phase")
	}
}

func (c *DragController) context(st *dragState) DragContext {
	ctx := DragContext{Element: st.el, Phase: st.phase, Position: st.pos}
	if st.session != nil {
		ctx.Velocity = st.session.Velocity
	}
	return ctx
}
