package platter

// syntheticPointerEvent is one injected frame of pointer state. Screen
// (client) coordinates are used, identical to real input.
type syntheticPointerEvent struct {
	touches []Vec2
	point   Vec2
	pressed bool
	scroll  float64
}

// InjectPress queues a pointer press at the given client coordinates. The
// event is consumed on the next Update.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{point: Vec2{x, y}, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use it between
// InjectPress and InjectRelease to drag.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{point: Vec2{x, y}, pressed: true})
}

// InjectRelease queues a pointer release at the given client coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{point: Vec2{x, y}})
}

// InjectTouch queues a frame with the given touch points down. The first
// point drives the pointer. An empty call lifts all fingers.
func (s *Scene) InjectTouch(points ...Vec2) {
	evt := syntheticPointerEvent{touches: append([]Vec2(nil), points...)}
	if len(points) > 0 {
		evt.point = points[0]
		evt.pressed = true
	}
	s.injectQueue = append(s.injectQueue, evt)
}

// InjectScroll queues a wheel scroll of dy pixels (positive scrolls down).
func (s *Scene) InjectScroll(dy float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{scroll: dy, point: s.pointer.last})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 linearly
// interpolated moves, and a release at (toX, toY). The sequence consumes
// frames frames; the minimum is 2.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectFlick queues a throw: press, frames-1 moves ending at (toX, toY),
// then a release at the same point so the last move's velocity carries
// into momentum. Consumes frames+1 frames; the minimum frames is 2.
func (s *Scene) InjectFlick(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	for i := 1; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// PendingInput returns the number of injected frames not yet consumed.
func (s *Scene) PendingInput() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one injected frame and feeds it through
// processPointer. Returns true if an event was consumed (real input is
// skipped for that frame).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue[len(s.injectQueue)-1] = syntheticPointerEvent{}
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.scroll != 0 {
		s.scrollBy(evt.scroll)
		return true
	}
	src := SourceSynthetic
	if len(evt.touches) > 0 {
		src = SourceTouch
	}
	s.processPointer(evt.point, evt.pressed, src, evt.touches)
	return true
}
