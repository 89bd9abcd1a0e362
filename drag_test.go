package platter

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// newTestController returns a controller on a manual clock with a private
// arbiter, plus a disc laid out at 10%/20% of a 1000x1000 parent.
func newTestController() (*DragController, *ManualClock, *FrameScheduler, *Element) {
	clock := &ManualClock{}
	frames := NewFrameScheduler()
	c := NewDragController(clock, frames, NewZArbiter(BaseZIndex), DefaultMomentumConfig(), nil)

	parent := NewContainer("parent", 1000, 1000)
	el := NewDisc("disc", 100, ColorWhite)
	el.SetPercentPosition(10, 20)
	parent.AddChild(el)
	return c, clock, frames, el
}

func pointerAt(typ PointerType, x, y float64) *PointerEvent {
	return &PointerEvent{Type: typ, Source: SourceMouse, ClientX: x, ClientY: y}
}

func TestDragPositionFollowsPointer(t *testing.T) {
	c, clock, frames, el := newTestController()

	c.Start(el, pointerAt(PointerStart, 50, 60))
	if !el.Pinned() {
		t.Fatal("element should be pinned to pixels on start")
	}
	if got, want := el.Position(), (Vec2{100, 200}); got != want {
		t.Fatalf("pinned position = %v, want %v", got, want)
	}

	clock.Advance(100)
	c.Move(el, pointerAt(PointerMove, 80, 100))
	clock.Advance(100)
	c.Move(el, pointerAt(PointerMove, 80, 100))
	c.End(el)

	want := Vec2{130, 240}
	if got := el.Position(); got != want {
		t.Errorf("position after end = %v, want %v", got, want)
	}
	if c.Phase(el) != PhaseIdle {
		t.Errorf("phase = %v, want idle", c.Phase(el))
	}
	if frames.Pending() != 0 {
		t.Errorf("pending frames = %d, want 0 (no coast)", frames.Pending())
	}
	if c.Session(el) != nil {
		t.Error("session should be dropped once idle")
	}
}

func TestDragVelocityFromLastSample(t *testing.T) {
	tests := []struct {
		name    string
		elapsed int64
		dx, dy  float64
		want    Vec2
	}{
		{"ten ms", 10, 5, -2, Vec2{8, -3.2}},
		{"one tick", 16, 5, 0, Vec2{5, 0}},
		{"slow", 32, 4, 4, Vec2{2, 2}},
		{"still", 40, 0, 0, Vec2{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, clock, _, el := newTestController()
			c.Start(el, pointerAt(PointerStart, 0, 0))
			clock.Advance(tt.elapsed)
			c.Move(el, pointerAt(PointerMove, tt.dx, tt.dy))

			got := c.Velocity(el)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("velocity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDragVelocityUsesOnlyLastTwoSamples(t *testing.T) {
	c, clock, _, el := newTestController()
	c.Start(el, pointerAt(PointerStart, 0, 0))
	clock.Advance(16)
	c.Move(el, pointerAt(PointerMove, 100, 0))
	clock.Advance(16)
	c.Move(el, pointerAt(PointerMove, 102, 0))

	if got := c.Velocity(el); got != (Vec2{2, 0}) {
		t.Errorf("velocity = %v, want {2 0}", got)
	}
}

func TestDragZeroElapsedKeepsVelocity(t *testing.T) {
	c, clock, _, el := newTestController()
	c.Start(el, pointerAt(PointerStart, 0, 0))
	clock.Advance(10)
	c.Move(el, pointerAt(PointerMove, 5, 0))
	before := c.Velocity(el)

	c.Move(el, pointerAt(PointerMove, 50, 50))
	if got := c.Velocity(el); got != before {
		t.Errorf("velocity changed on zero elapsed: %v -> %v", before, got)
	}
	if got, want := el.Position(), (Vec2{150, 250}); got != want {
		t.Errorf("position = %v, want %v (position still follows)", got, want)
	}
	sess := c.Session(el)
	if sess.LastSample.Pos != (Vec2{50, 50}) {
		t.Errorf("last sample = %v, want {50 50}", sess.LastSample.Pos)
	}
}

func TestDragReleaseThreshold(t *testing.T) {
	tests := []struct {
		name     string
		dx, dy   float64
		coasting bool
	}{
		{"exactly one", 1, 0, false},
		{"exactly minus one", 0, -1, false},
		{"just over on x", 1.5, 0, true},
		{"just over on y", 0, -1.5, true},
		{"below on both", 0.9, 0.9, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, clock, frames, el := newTestController()
			c.Start(el, pointerAt(PointerStart, 0, 0))
			clock.Advance(16)
			c.Move(el, pointerAt(PointerMove, tt.dx, tt.dy))
			c.End(el)

			if got := c.Phase(el) == PhaseSettling; got != tt.coasting {
				t.Errorf("settling = %v, want %v", got, tt.coasting)
			}
			if got := frames.Pending() > 0; got != tt.coasting {
				t.Errorf("frame requested = %v, want %v", got, tt.coasting)
			}
			if !tt.coasting && c.Velocity(el) != (Vec2{}) {
				t.Errorf("velocity = %v, want zero at rest", c.Velocity(el))
			}
		})
	}
}

func TestDragMomentumCoastsAndSettles(t *testing.T) {
	c, clock, frames, el := newTestController()
	c.Start(el, pointerAt(PointerStart, 0, 0))
	clock.Advance(16)
	c.Move(el, pointerAt(PointerMove, 5, 0))
	c.End(el)

	// Expected rest position, computed with the same float operations.
	wantX := 105.0
	v := 5.0
	for {
		v *= DefaultFriction
		if math.Abs(v) < DefaultMinVelocity {
			break
		}
		wantX += v
	}

	ticks := 0
	for c.Phase(el) == PhaseSettling {
		frames.RunFrame()
		ticks++
		if ticks > 1000 {
			t.Fatal("coast never settled")
		}
	}
	if ticks != 34 {
		t.Errorf("ticks = %d, want 34", ticks)
	}
	if got := el.Position(); got != (Vec2{wantX, 200}) {
		t.Errorf("rest position = %v, want {%v 200}", got, wantX)
	}
	if frames.Pending() != 0 {
		t.Errorf("pending = %d, want 0 after settle", frames.Pending())
	}
}

func TestDragRestartCancelsMomentum(t *testing.T) {
	c, clock, frames, el := newTestController()
	c.Start(el, pointerAt(PointerStart, 0, 0))
	clock.Advance(16)
	c.Move(el, pointerAt(PointerMove, 20, 0))
	c.End(el)
	frames.RunFrame()
	frames.RunFrame()

	c.Start(el, pointerAt(PointerStart, 300, 300))
	grabbed := el.Position()
	if c.Phase(el) != PhaseDragging {
		t.Fatalf("phase = %v, want dragging", c.Phase(el))
	}

	for i := 0; i < 10; i++ {
		frames.RunFrame()
	}
	if got := el.Position(); got != grabbed {
		t.Errorf("cancelled coast moved element: %v -> %v", grabbed, got)
	}
	if c.Settling() != 0 {
		t.Errorf("Settling = %d, want 0", c.Settling())
	}
}

func TestDragRestartInSameFrameAsTick(t *testing.T) {
	c, clock, frames, el := newTestController()
	c.Start(el, pointerAt(PointerStart, 0, 0))
	clock.Advance(16)
	c.Move(el, pointerAt(PointerMove, 20, 0))

	// Queued ahead of the first coast tick, so it runs first in the batch.
	var grabbed Vec2
	frames.Request(func() {
		c.Start(el, pointerAt(PointerStart, 300, 300))
		grabbed = el.Position()
	})
	c.End(el)
	frames.RunFrame()

	if got := el.Position(); got != grabbed {
		t.Errorf("tick after restart wrote position: %v -> %v", grabbed, got)
	}
	if c.Phase(el) != PhaseDragging {
		t.Errorf("phase = %v, want dragging", c.Phase(el))
	}
}

func TestDragEndIsIdempotent(t *testing.T) {
	c, clock, _, el := newTestController()
	var ends int
	c.handlers.add(EventDragEnd, func(DragContext) { ends++ })

	c.Start(el, pointerAt(PointerStart, 0, 0))
	clock.Advance(16)
	c.Move(el, pointerAt(PointerMove, 10, 10))
	c.End(el)
	pos := el.Position()
	phase := c.Phase(el)

	c.End(el)
	if ends != 1 {
		t.Errorf("DragEnd fired %d times, want 1", ends)
	}
	if el.Position() != pos || c.Phase(el) != phase {
		t.Error("second End changed state")
	}
}

func TestDragMoveIgnoredWhenNotDragging(t *testing.T) {
	c, _, _, el := newTestController()
	before := el.LayoutPosition()
	c.Move(el, pointerAt(PointerMove, 500, 500))
	if el.Pinned() || el.LayoutPosition() != before {
		t.Error("move without a session should not touch the element")
	}
}

func TestDragStartEndsOtherActive(t *testing.T) {
	c, _, _, a := newTestController()
	b := NewDisc("b", 100, ColorWhite)
	a.Parent.AddChild(b)

	c.Start(a, pointerAt(PointerStart, 0, 0))
	c.Start(b, pointerAt(PointerStart, 0, 0))

	if c.ActiveCount() != 1 {
		t.Errorf("ActiveCount = %d, want 1", c.ActiveCount())
	}
	if c.Active() != b {
		t.Error("b should be the active element")
	}
	if a.Dragging() {
		t.Error("a should no longer be dragging")
	}
}

func TestDragPinnedElementIgnoresPercent(t *testing.T) {
	c, _, _, el := newTestController()
	c.Start(el, pointerAt(PointerStart, 0, 0))
	c.End(el)

	el.SetPercentPosition(90, 90)
	if got := el.LayoutPosition(); got != (Vec2{100, 200}) {
		t.Errorf("layout position = %v, want pixel position kept", got)
	}
}

func TestDragStartPreventsDefault(t *testing.T) {
	c, _, _, el := newTestController()
	ev := pointerAt(PointerStart, 0, 0)
	c.Start(el, ev)
	if !ev.DefaultPrevented() {
		t.Error("start should prevent default")
	}
	mv := pointerAt(PointerMove, 1, 1)
	c.Dispatch(mv)
	if !mv.DefaultPrevented() {
		t.Error("move should prevent default")
	}
}

func TestDragLifecycleEvents(t *testing.T) {
	c, clock, frames, el := newTestController()
	var got []string
	record := func(name string) func(DragContext) {
		return func(ctx DragContext) { got = append(got, name+":"+ctx.Phase.String()) }
	}
	c.handlers.add(EventDragStart, record("start"))
	c.handlers.add(EventDrag, record("drag"))
	c.handlers.add(EventDragEnd, record("end"))
	c.handlers.add(EventSettle, record("settle"))

	c.Start(el, pointerAt(PointerStart, 0, 0))
	clock.Advance(16)
	c.Dispatch(pointerAt(PointerMove, 3, 0))
	c.Dispatch(pointerAt(PointerEnd, 3, 0))
	for c.Phase(el) == PhaseSettling {
		frames.RunFrame()
	}

	want := []string{"start:dragging", "drag:dragging", "end:settling", "settle:idle"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	c, _, _, el := newTestController()
	var n int
	h := c.handlers.add(EventDragStart, func(DragContext) { n++ })
	c.Start(el, pointerAt(PointerStart, 0, 0))
	c.End(el)
	h.Remove()
	c.Start(el, pointerAt(PointerStart, 0, 0))
	if n != 1 {
		t.Errorf("handler fired %d times, want 1", n)
	}
	CallbackHandle{}.Remove()
}

func TestDragRestartFromDragEndHandler(t *testing.T) {
	c, clock, _, el := newTestController()
	restarted := false
	c.handlers.add(EventDragEnd, func(ctx DragContext) {
		if !restarted {
			restarted = true
			c.Start(ctx.Element, pointerAt(PointerStart, 0, 0))
		}
	})
	var settles int
	c.handlers.add(EventSettle, func(DragContext) { settles++ })

	c.Start(el, pointerAt(PointerStart, 0, 0))
	c.End(el)

	if c.Phase(el) != PhaseDragging || c.Active() != el {
		t.Fatalf("phase = %v, want the restarted drag to stay active", c.Phase(el))
	}
	if c.Session(el) == nil {
		t.Fatal("restarted drag lost its session")
	}
	if settles != 0 {
		t.Errorf("settle fired %d times, want 0", settles)
	}
	c.checkInvariants()

	clock.Advance(16)
	c.Move(el, pointerAt(PointerMove, 10, 5))
	if got, want := el.Position(), (Vec2{110, 205}); got != want {
		t.Errorf("position = %v, want %v", got, want)
	}
}

func TestDragSeveralElementsSettleIndependently(t *testing.T) {
	c, clock, frames, a := newTestController()
	b := NewDisc("b", 100, ColorWhite)
	a.Parent.AddChild(b)

	c.Start(a, pointerAt(PointerStart, 0, 0))
	clock.Advance(16)
	c.Move(a, pointerAt(PointerMove, 20, 0))
	c.End(a)

	c.Start(b, pointerAt(PointerStart, 0, 0))
	clock.Advance(16)
	c.Move(b, pointerAt(PointerMove, 0, 10))
	c.End(b)

	if c.Phase(a) != PhaseSettling || c.Phase(b) != PhaseSettling {
		t.Fatalf("phases = %v, %v, want both settling", c.Phase(a), c.Phase(b))
	}
	if c.Settling() != 2 || frames.Pending() != 2 {
		t.Fatalf("Settling = %d, Pending = %d, want 2 and 2", c.Settling(), frames.Pending())
	}

	frames.RunFrame()
	frames.RunFrame()
	c.Start(a, pointerAt(PointerStart, 500, 500))
	grabbed := a.Position()
	if c.Settling() != 1 || frames.Pending() != 1 {
		t.Fatalf("Settling = %d, Pending = %d after restarting a, want 1 and 1", c.Settling(), frames.Pending())
	}

	want := NewMomentum(Vec2{0, 10}, Vec2{0, 10}, DefaultMomentumConfig())
	for want.Step() {
	}
	for i := 0; c.Phase(b) == PhaseSettling; i++ {
		if i > 1000 {
			t.Fatal("b never settled")
		}
		frames.RunFrame()
	}
	if got := b.Position(); got != want.Position {
		t.Errorf("b rest position = %v, want %v", got, want.Position)
	}
	if got := a.Position(); got != grabbed {
		t.Errorf("a moved after restart: %v -> %v", grabbed, got)
	}
	if c.Phase(a) != PhaseDragging {
		t.Errorf("a phase = %v, want dragging", c.Phase(a))
	}
}
