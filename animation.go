package platter

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on an Element simultaneously.
// Create one via the constructors below and either call Update(dt) yourself
// or hand it to Scene.Animate, which updates it every frame until Done.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// TweenAlpha animates e.Alpha to the target value.
func TweenAlpha(e *Element, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&e.Alpha, to, duration, fn)
	return g
}

// TweenLeft animates e.Left to the target value. Used for slide-in panels,
// which are always pixel-positioned.
func TweenLeft(e *Element, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&e.Left, to, duration, fn)
	return g
}

// tweenReveal fades e in while sliding its render offset to zero.
func tweenReveal(e *Element, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&e.Alpha, 1, duration, fn)
	g.add(&e.revealOffset, 0, duration, fn)
	return g
}

// Animate registers g to be advanced every frame until it is Done.
func (s *Scene) Animate(g *TweenGroup) *TweenGroup {
	s.tweens = append(s.tweens, g)
	return g
}

// Animating reports whether any tween group or smooth scroll is running.
func (s *Scene) Animating() bool {
	return len(s.tweens) > 0 || s.viewport.Scrolling()
}

// Stop marks the group finished without writing further values.
func (g *TweenGroup) Stop() {
	g.Done = true
}

// updateTweens advances registered groups and drops finished ones.
func (s *Scene) updateTweens(dt float32) {
	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(s.tweens[len(live):])
	s.tweens = live
}
