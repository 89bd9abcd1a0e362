package platter

import "github.com/hajimehoshi/ebiten/v2"

// wheelStep is the page scroll distance per wheel notch, in pixels.
const wheelStep = 40.0

// PointerType is the phase of a pointer event.
type PointerType uint8

const (
	PointerStart PointerType = iota // button pressed or first finger down
	PointerMove                     // moved while pressed
	PointerEnd                      // released
)

// PointerSource identifies where a pointer event came from.
type PointerSource uint8

const (
	SourceMouse PointerSource = iota
	SourceTouch
	SourceSynthetic
)

// PointerEvent unifies mouse and touch input. Coordinates are client
// (screen) coordinates. When Touches is non-empty, the first touch is the
// pointer and ClientX/ClientY mirror it.
type PointerEvent struct {
	Type    PointerType
	Source  PointerSource
	ClientX float64
	ClientY float64
	Touches []Vec2

	defaultPrevented bool
}

// Point returns the pointer position: the first touch point when touches are
// present, the client coordinates otherwise.
func (e *PointerEvent) Point() Vec2 {
	if len(e.Touches) > 0 {
		return e.Touches[0]
	}
	return Vec2{e.ClientX, e.ClientY}
}

// PreventDefault suppresses default handling of the event. For touch input
// this stops the gesture from scrolling the page.
func (e *PointerEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *PointerEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// pointerState tracks the single logical pointer across frames.
type pointerState struct {
	down         bool
	source       PointerSource
	last         Vec2
	moved        bool
	pressTarget  *Element
	hover        *Element
	scrollLocked bool
	primaryTouch ebiten.TouchID
}

// --- Hit testing ---

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending visible interactable elements to buf.
func (s *Scene) collectInteractable(e *Element, buf []*Element) []*Element {
	if !e.Visible {
		return buf
	}
	if e.Interactable {
		buf = append(buf, e)
	}
	if len(e.children) == 0 {
		return buf
	}
	if !e.childrenSorted {
		rebuildSortedChildren(e)
	}
	for _, child := range e.sortedChildren {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable element under the client point.
func (s *Scene) hitTest(p Vec2) *Element {
	s.hitBuf = s.collectInteractable(s.root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		e := s.hitBuf[i]
		if containsPoint(s.clientBox(e), e.Round, p.X, p.Y) {
			return e
		}
	}
	return nil
}

// clientBox converts an element's rendered page box to client coordinates.
func (s *Scene) clientBox(e *Element) Rect {
	box := e.RenderedBox()
	if !e.isFixed() {
		box.Y -= s.viewport.ScrollY
	}
	return box
}

// --- Input processing ---

// processInput is called from Scene.Update to turn this frame's mouse, touch
// and wheel state into pointer events. Injected events take precedence.
func (s *Scene) processInput() {
	if s.processInjectedInput() || s.headless {
		return
	}

	touches := s.readTouches()
	if len(touches) > 0 {
		s.processPointer(touches[0], true, SourceTouch, touches)
		return
	}
	if s.pointer.down && s.pointer.source == SourceTouch {
		s.processPointer(s.pointer.last, false, SourceTouch, nil)
		return
	}

	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.processPointer(Vec2{float64(mx), float64(my)}, pressed, SourceMouse, nil)

	if _, wy := ebiten.Wheel(); wy != 0 {
		s.scrollBy(-wy * wheelStep)
	}
}

// readTouches returns active touch positions with the primary touch first.
// The primary touch is the one that started the gesture; when it lifts while
// others remain, the next one takes over.
func (s *Scene) readTouches() []Vec2 {
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	s.touchPts = s.touchPts[:0]
	if len(s.touchIDs) == 0 {
		return nil
	}
	primary := s.touchIDs[0]
	for _, id := range s.touchIDs {
		if s.pointer.down && id == s.pointer.primaryTouch {
			primary = id
			break
		}
	}
	s.pointer.primaryTouch = primary
	x, y := ebiten.TouchPosition(primary)
	s.touchPts = append(s.touchPts, Vec2{float64(x), float64(y)})
	for _, id := range s.touchIDs {
		if id == primary {
			continue
		}
		x, y := ebiten.TouchPosition(id)
		s.touchPts = append(s.touchPts, Vec2{float64(x), float64(y)})
	}
	return s.touchPts
}

// processPointer runs the pointer state machine for one frame. Start events
// go to the draggable under the pointer; move and end events go to whichever
// element is dragging, wherever the pointer is.
func (s *Scene) processPointer(p Vec2, pressed bool, src PointerSource, touches []Vec2) {
	ps := &s.pointer

	var target *Element
	if s.drag.Active() == nil {
		target = s.hitTest(p)
		if src != SourceTouch {
			s.updateHover(target)
		}
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.source = src
		ps.moved = false
		ps.last = p
		ps.pressTarget = target

		ev := &PointerEvent{Type: PointerStart, Source: src, ClientX: p.X, ClientY: p.Y, Touches: touches}
		if target != nil && target.Draggable {
			s.drag.Start(target, ev)
		}
		ps.scrollLocked = ev.DefaultPrevented()

	case pressed && ps.down:
		if p == ps.last {
			return
		}
		ps.moved = true
		ev := &PointerEvent{Type: PointerMove, Source: src, ClientX: p.X, ClientY: p.Y, Touches: touches}
		s.drag.Dispatch(ev)
		if src == SourceTouch && !ps.scrollLocked && !ev.DefaultPrevented() {
			s.scrollBy(ps.last.Y - p.Y)
		}
		ps.last = p

	case !pressed && ps.down:
		ev := &PointerEvent{Type: PointerEnd, Source: src, ClientX: p.X, ClientY: p.Y}
		s.drag.Dispatch(ev)

		pt := ps.pressTarget
		if !ps.moved && pt != nil && !pt.Draggable && pt == target && pt.OnClick != nil {
			pt.OnClick(pt)
		}
		ps.down = false
		ps.pressTarget = nil
		ps.scrollLocked = false
		ps.last = p

	default:
		ps.last = p
	}
}

// updateHover fires leave/enter callbacks when the hovered element changes.
func (s *Scene) updateHover(target *Element) {
	ps := &s.pointer
	if target == ps.hover {
		return
	}
	if prev := ps.hover; prev != nil {
		setSheenHover(prev, false)
		if prev.OnPointerLeave != nil {
			prev.OnPointerLeave(prev)
		}
	}
	if target != nil {
		setSheenHover(target, true)
		if target.OnPointerEnter != nil {
			target.OnPointerEnter(target)
		}
	}
	ps.hover = target
}

// rebuildSortedChildren rebuilds the ZIndex-sorted traversal order for an
// element. Stable insertion sort: children are few and nearly sorted.
func rebuildSortedChildren(e *Element) {
	nc := len(e.children)
	if cap(e.sortedChildren) < nc {
		e.sortedChildren = make([]*Element, nc)
	}
	e.sortedChildren = e.sortedChildren[:nc]
	copy(e.sortedChildren, e.children)
	for i := 1; i < nc; i++ {
		key := e.sortedChildren[i]
		j := i - 1
		for j >= 0 && e.sortedChildren[j].ZIndex > key.ZIndex {
			e.sortedChildren[j+1] = e.sortedChildren[j]
			j--
		}
		e.sortedChildren[j+1] = key
	}
	e.childrenSorted = true
}
