package platter

import (
	"errors"
	"math"
	"testing"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{"steps": [
		{"action": "flick", "fromX": 10, "fromY": 10, "toX": 90, "toY": 10, "frames": 4},
		{"action": "wait", "frames": 10},
		{"action": "navigate", "anchor": "about"},
		{"action": "scroll", "dy": 120},
		{"action": "screenshot", "label": "end"}
	]}`)
	r, err := LoadScript(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.steps) != 5 {
		t.Fatalf("steps = %d, want 5", len(r.steps))
	}
	if r.steps[2].Anchor != "about" || r.steps[3].DY != 120 {
		t.Errorf("fields not decoded: %+v %+v", r.steps[2], r.steps[3])
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{not json`},
		{"empty", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "teleport"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
	if _, err := LoadScript([]byte(`{"steps": []}`)); !errors.Is(err, ErrNoSteps) {
		t.Errorf("err = %v, want ErrNoSteps", err)
	}
}

func TestScriptWaitsForInjectQueue(t *testing.T) {
	s, _ := newTestScene()
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "click", "x": 50, "y": 50},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	r.step(s)
	if len(s.injectQueue) != 2 {
		t.Fatalf("expected 2 events, got %d", len(s.injectQueue))
	}
	r.step(s)
	if r.cursor != 1 {
		t.Errorf("cursor should still be 1, got %d", r.cursor)
	}

	s.injectQueue = s.injectQueue[:0]
	r.step(s)
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "after" {
		t.Errorf("expected screenshot 'after', got %v", s.screenshotQueue)
	}
	if !r.Done() {
		t.Error("runner should be done")
	}
}

func TestScriptWait(t *testing.T) {
	s, _ := newTestScene()
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "done"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		r.step(s)
		if r.Done() {
			t.Fatalf("done after %d frames, want 4", i+1)
		}
	}
	r.step(s)
	if !r.Done() {
		t.Error("runner should be done after the screenshot step")
	}
}

func TestScriptFlickThroughScene(t *testing.T) {
	s, clock := newTestScene()
	d := addDisc(s, "d", 100, 100)
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "flick", "fromX": 150, "fromY": 150, "toX": 250, "toY": 150, "frames": 4},
		{"action": "wait", "frames": 120}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetScriptRunner(r)

	for i := 0; i < 300 && !r.Done(); i++ {
		step(s, clock, 1)
	}
	if !r.Done() {
		t.Fatal("script did not finish")
	}
	if s.Drag().Phase(d) != PhaseIdle {
		t.Errorf("phase = %v, want idle after the wait", s.Drag().Phase(d))
	}
	if d.Position().X <= 200 {
		t.Errorf("disc X = %v, want it thrown past the release point", d.Position().X)
	}
}

func TestScriptNavigateAndScroll(t *testing.T) {
	s, clock, _, _ := newPage()
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "scroll", "dy": 120},
		{"action": "navigate", "anchor": "about"},
		{"action": "wait", "frames": 60}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetScriptRunner(r)
	step(s, clock, 70)

	if !r.Done() {
		t.Fatal("script did not finish")
	}
	if math.Abs(s.Viewport().ScrollY-936) > 0.5 {
		t.Errorf("ScrollY = %v, want ~936", s.Viewport().ScrollY)
	}
}
