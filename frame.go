package platter

// FrameHandle identifies a requested frame callback. The zero handle is never
// issued and is safe to cancel.
type FrameHandle uint32

type frameCallback struct {
	id FrameHandle
	fn func()
}

// FrameScheduler runs callbacks once on the next frame, like
// requestAnimationFrame. Callbacks requested while a frame is running are
// deferred to the following frame, so self-rescheduling callbacks advance
// exactly one step per frame.
type FrameScheduler struct {
	queue   []frameCallback
	running []frameCallback
	spare   []frameCallback
	nextID  FrameHandle
	frame   uint64
}

// NewFrameScheduler creates an empty scheduler.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// Request schedules fn to run on the next frame and returns a handle that can
// cancel it.
func (s *FrameScheduler) Request(fn func()) FrameHandle {
	s.nextID++
	if s.nextID == 0 {
		s.nextID++
	}
	s.queue = append(s.queue, frameCallback{id: s.nextID, fn: fn})
	return s.nextID
}

// Cancel discards the callback for h if it has not run yet. Cancelling from
// inside a running frame also works for callbacks later in the same batch.
func (s *FrameScheduler) Cancel(h FrameHandle) {
	if h == 0 {
		return
	}
	for i := range s.queue {
		if s.queue[i].id == h {
			copy(s.queue[i:], s.queue[i+1:])
			s.queue[len(s.queue)-1] = frameCallback{}
			s.queue = s.queue[:len(s.queue)-1]
			return
		}
	}
	for i := range s.running {
		if s.running[i].id == h {
			s.running[i].fn = nil
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next frame.
func (s *FrameScheduler) Pending() int {
	return len(s.queue)
}

// Frame returns the number of frames run so far.
func (s *FrameScheduler) Frame() uint64 {
	return s.frame
}

// RunFrame runs every callback that was requested before this call.
func (s *FrameScheduler) RunFrame() {
	s.frame++
	batch := s.queue
	s.queue = s.spare[:0]
	s.running = batch
	for i := range batch {
		fn := batch[i].fn
		if fn == nil {
			continue
		}
		batch[i].fn = nil
		fn()
	}
	s.running = nil
	clear(batch)
	s.spare = batch[:0]
}
