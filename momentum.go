package platter

import "math"

// Momentum defaults. Velocities are in pixels per TickMs.
const (
	DefaultFriction         = 0.92
	DefaultMinVelocity      = 0.3
	DefaultReleaseThreshold = 1.0
	DefaultTickMs           = 16.0
)

// MomentumConfig tunes the release and coast behaviour of draggable elements.
type MomentumConfig struct {
	// Friction multiplies both velocity components once per frame.
	Friction float64
	// MinVelocity stops the coast once both components fall below it.
	MinVelocity float64
	// ReleaseThreshold is the speed either component must exceed at release
	// for a coast to start at all.
	ReleaseThreshold float64
	// TickMs is the duration velocity is normalized to.
	TickMs float64
}

// DefaultMomentumConfig returns the stock friction and thresholds.
func DefaultMomentumConfig() MomentumConfig {
	return MomentumConfig{
		Friction:         DefaultFriction,
		MinVelocity:      DefaultMinVelocity,
		ReleaseThreshold: DefaultReleaseThreshold,
		TickMs:           DefaultTickMs,
	}
}

// releases reports whether v is fast enough to start a coast.
func (c MomentumConfig) releases(v Vec2) bool {
	return math.Abs(v.X) > c.ReleaseThreshold || math.Abs(v.Y) > c.ReleaseThreshold
}

// Momentum is a decaying coast from a release velocity. Each Step is one frame.
type Momentum struct {
	Position Vec2
	Velocity Vec2
	// Ticks counts Step calls, including the final one that stops.
	Ticks int

	friction    float64
	minVelocity float64
}

// NewMomentum starts a coast at pos with velocity v.
func NewMomentum(pos, v Vec2, cfg MomentumConfig) *Momentum {
	return &Momentum{
		Position:    pos,
		Velocity:    v,
		friction:    cfg.Friction,
		minVelocity: cfg.MinVelocity,
	}
}

// Step decays the velocity and, unless it has dropped below the minimum on
// both axes, moves the position by it. It reports whether the position
// changed; false means the coast is over.
func (m *Momentum) Step() bool {
	m.Ticks++
	m.Velocity.X *= m.friction
	m.Velocity.Y *= m.friction
	if math.Abs(m.Velocity.X) < m.minVelocity && math.Abs(m.Velocity.Y) < m.minVelocity {
		return false
	}
	m.Position.X += m.Velocity.X
	m.Position.Y += m.Velocity.Y
	return true
}

// startMomentum coasts st's element from pos, one Step per frame. Every tick
// carries the generation it was started under and writes nothing once the
// element's generation has moved on.
func (c *DragController) startMomentum(st *dragState, v, pos Vec2) {
	m := NewMomentum(pos, v, c.cfg)
	gen := st.gen
	var tick func()
	tick = func() {
		if st.gen != gen {
			return
		}
		st.frame = 0
		if !m.Step() {
			st.session.Velocity = m.Velocity
			c.settle(st)
			return
		}
		st.pos = m.Position
		st.session.Velocity = m.Velocity
		st.el.SetPosition(m.Position.X, m.Position.Y)
		st.frame = c.frames.Request(tick)
	}
	st.phase = PhaseSettling
	st.frame = c.frames.Request(tick)
	c.logger.Debug("momentum start", "element", st.el.Name, "vx", v.X, "vy", v.Y)
}

// cancelMomentum invalidates any coast in flight for st. The generation bump
// comes first so that even a tick already dequeued for this frame writes
// nothing.
func (c *DragController) cancelMomentum(st *dragState) {
	st.gen++
	if st.frame != 0 {
		c.frames.Cancel(st.frame)
		st.frame = 0
		c.logger.Debug("momentum cancelled", "element", st.el.Name)
	}
}
