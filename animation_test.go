package platter

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenAlphaReachesTarget(t *testing.T) {
	e := NewPanel("p", 10, 10, ColorWhite)
	g := TweenAlpha(e, 0, 1.0, ease.Linear)

	g.Update(0.5)
	if math.Abs(e.Alpha-0.5) > 0.01 {
		t.Errorf("Alpha at half = %f, want ~0.5", e.Alpha)
	}
	g.Update(0.5)
	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(e.Alpha) > 0.01 {
		t.Errorf("Alpha = %f, want ~0", e.Alpha)
	}
}

func TestTweenLeftReachesTarget(t *testing.T) {
	e := NewPanel("p", 10, 10, ColorWhite)
	e.Left = 800
	g := TweenLeft(e, 540, 0.3, ease.OutCubic)
	for i := 0; i < 3; i++ {
		g.Update(0.1)
	}
	g.Update(0.1)
	if !g.Done {
		t.Fatal("expected Done")
	}
	if math.Abs(e.Left-540) > 0.5 {
		t.Errorf("Left = %f, want ~540", e.Left)
	}
}

func TestTweenRevealBothFields(t *testing.T) {
	e := NewSection("s", 10, 10, ColorWhite)
	e.Alpha = 0
	e.revealOffset = revealDistance
	g := tweenReveal(e, 0.8, ease.Linear)
	g.Update(0.4)
	g.Update(0.4)
	if !g.Done {
		t.Fatal("expected Done")
	}
	if math.Abs(e.Alpha-1) > 0.01 || math.Abs(e.revealOffset) > 0.01 {
		t.Errorf("alpha=%f offset=%f, want 1 and 0", e.Alpha, e.revealOffset)
	}
}

func TestTweenGroupStop(t *testing.T) {
	e := NewPanel("p", 10, 10, ColorWhite)
	g := TweenAlpha(e, 0, 1.0, ease.Linear)
	g.Update(0.25)
	a := e.Alpha
	g.Stop()
	g.Update(0.25)
	if e.Alpha != a {
		t.Errorf("stopped group wrote Alpha %f -> %f", a, e.Alpha)
	}
}

func TestSceneAnimateDropsFinished(t *testing.T) {
	s, clock := newTestScene()
	e := NewPanel("p", 10, 10, ColorWhite)
	s.Root().AddChild(e)
	s.Animate(TweenAlpha(e, 0, 0.1, ease.Linear))
	if len(s.tweens) != 1 {
		t.Fatalf("tweens = %d, want 1", len(s.tweens))
	}
	step(s, clock, 30)
	if len(s.tweens) != 0 {
		t.Errorf("tweens = %d, want 0 once finished", len(s.tweens))
	}
	if math.Abs(e.Alpha) > 0.01 {
		t.Errorf("Alpha = %f, want ~0", e.Alpha)
	}
}

func TestTweenEasingFunctionsProduceDifferentCurves(t *testing.T) {
	a := NewPanel("a", 1, 1, ColorWhite)
	b := NewPanel("b", 1, 1, ColorWhite)
	ga := TweenLeft(a, 100, 1.0, ease.Linear)
	gb := TweenLeft(b, 100, 1.0, ease.OutCubic)
	ga.Update(0.25)
	gb.Update(0.25)
	if math.Abs(a.Left-b.Left) < 1 {
		t.Errorf("linear (%f) and out-cubic (%f) should differ at a quarter", a.Left, b.Left)
	}
}
