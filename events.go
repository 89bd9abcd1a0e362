package platter

// DragContext carries drag lifecycle data to scene-level handlers.
type DragContext struct {
	Element  *Element
	Phase    DragPhase
	Position Vec2
	Velocity Vec2
}

type dragHandler struct {
	id uint32
	fn func(DragContext)
}

type handlerRegistry struct {
	dragStart []dragHandler
	drag      []dragHandler
	dragEnd   []dragHandler
	settle    []dragHandler
	nextID    uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventDragStart:
		h.reg.dragStart = removeDragHandler(h.reg.dragStart, h.id)
	case EventDrag:
		h.reg.drag = removeDragHandler(h.reg.drag, h.id)
	case EventDragEnd:
		h.reg.dragEnd = removeDragHandler(h.reg.dragEnd, h.id)
	case EventSettle:
		h.reg.settle = removeDragHandler(h.reg.settle, h.id)
	}
}

func removeDragHandler(s []dragHandler, id uint32) []dragHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = dragHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) add(event EventType, fn func(DragContext)) CallbackHandle {
	r.nextID++
	h := dragHandler{id: r.nextID, fn: fn}
	switch event {
	case EventDragStart:
		r.dragStart = append(r.dragStart, h)
	case EventDrag:
		r.drag = append(r.drag, h)
	case EventDragEnd:
		r.dragEnd = append(r.dragEnd, h)
	case EventSettle:
		r.settle = append(r.settle, h)
	}
	return CallbackHandle{id: h.id, reg: r, event: event}
}

func (r *handlerRegistry) fire(event EventType, ctx DragContext) {
	var hs []dragHandler
	switch event {
	case EventDragStart:
		hs = r.dragStart
	case EventDrag:
		hs = r.drag
	case EventDragEnd:
		hs = r.dragEnd
	case EventSettle:
		hs = r.settle
	}
	for _, h := range hs {
		h.fn(ctx)
	}
}

// --- Scene-level event registration ---

// OnDragStart registers a callback fired after a drag session is established.
func (s *Scene) OnDragStart(fn func(DragContext)) CallbackHandle {
	return s.drag.handlers.add(EventDragStart, fn)
}

// OnDrag registers a callback fired on every move of the active session.
func (s *Scene) OnDrag(fn func(DragContext)) CallbackHandle {
	return s.drag.handlers.add(EventDrag, fn)
}

// OnDragEnd registers a callback fired when the pointer releases an element.
// Phase is PhaseSettling when a coast follows, PhaseIdle otherwise.
func (s *Scene) OnDragEnd(fn func(DragContext)) CallbackHandle {
	return s.drag.handlers.add(EventDragEnd, fn)
}

// OnSettle registers a callback fired when an element returns to idle.
func (s *Scene) OnSettle(fn func(DragContext)) CallbackHandle {
	return s.drag.handlers.add(EventSettle, fn)
}
