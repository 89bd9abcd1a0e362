package platter

import (
	"image/color"
	"io"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the page tree, the viewport, input
// state and the drag controller.
type Scene struct {
	root     *Element
	viewport *Viewport
	drag     *DragController
	frames   *FrameScheduler
	clock    Clock
	arbiter  *ZArbiter
	momentum MomentumConfig
	logger   *log.Logger
	debug    bool
	headless bool

	// ClearColor fills the screen before the page is drawn.
	ClearColor color.Color
	// NavHeight is the height of the fixed nav bar. Navigation leaves this
	// much room above its target.
	NavHeight float64
	// ScreenshotDir is where Screenshot writes its PNG files.
	ScreenshotDir string

	// Input state
	pointer     pointerState
	hitBuf      []*Element
	touchIDs    []ebiten.TouchID
	touchPts    []Vec2
	injectQueue []syntheticPointerEvent

	runner          *ScriptRunner
	screenshotQueue []string
	tweens          []*TweenGroup

	// Page state
	hint       *Element
	hintHidden bool
	nav        *Element
	sidebar    *Sidebar

	discCache map[int]*ebiten.Image
	font      *Font
	stats     frameStats
}

// NewScene creates a scene whose viewport is width x height pixels. The root
// container starts at the viewport size and grows with the page.
func NewScene(width, height float64) *Scene {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "platter", Level: log.WarnLevel})
	s := &Scene{
		root:          NewContainer("root", width, height),
		viewport:      NewViewport(width, height),
		frames:        NewFrameScheduler(),
		clock:         SystemClock(),
		arbiter:       DefaultArbiter(),
		momentum:      DefaultMomentumConfig(),
		logger:        logger,
		ClearColor:    color.RGBA{0xf5, 0xf1, 0xea, 0xff},
		ScreenshotDir: "screenshots",
		discCache:     make(map[int]*ebiten.Image),
	}
	s.drag = NewDragController(s.clock, s.frames, s.arbiter, s.momentum, logger)
	return s
}

// Root returns the scene's root container.
func (s *Scene) Root() *Element {
	return s.root
}

// Viewport returns the scene's viewport.
func (s *Scene) Viewport() *Viewport {
	return s.viewport
}

// Drag returns the scene's drag controller.
func (s *Scene) Drag() *DragController {
	return s.drag
}

// Frames returns the scheduler that runs per-frame callbacks.
func (s *Scene) Frames() *FrameScheduler {
	return s.frames
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *log.Logger {
	return s.logger
}

// SetClock replaces the clock used to timestamp pointer samples.
func (s *Scene) SetClock(c Clock) {
	s.clock = c
	s.drag.clock = c
}

// SetArbiter replaces the z-order arbiter. Scenes share DefaultArbiter
// unless given their own.
func (s *Scene) SetArbiter(a *ZArbiter) {
	s.arbiter = a
	s.drag.arbiter = a
}

// SetMomentum replaces the release and coast tuning.
func (s *Scene) SetMomentum(cfg MomentumConfig) {
	s.momentum = cfg
	s.drag.cfg = cfg
}

// SetLogger replaces the scene's logger. A nil logger discards output.
func (s *Scene) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	s.logger = l
	s.drag.logger = l
}

// SetHeadless stops Update from polling the mouse, touchscreen and wheel.
// Only injected and scripted input reaches a headless scene.
func (s *Scene) SetHeadless(headless bool) {
	s.headless = headless
}

// SetNav registers the fixed nav bar. Its height becomes NavHeight and it
// casts a shadow once the page is scrolled.
func (s *Scene) SetNav(e *Element) {
	e.Fixed = true
	e.SetZIndex(ZNav)
	s.nav = e
	s.NavHeight = e.Height
}

// Remove detaches e from the tree and cancels anything the drag controller
// is running for it or its descendants.
func (s *Scene) Remove(e *Element) {
	e.Walk(func(n *Element) bool {
		s.drag.Forget(n)
		if s.pointer.hover == n {
			s.pointer.hover = nil
		}
		if s.pointer.pressTarget == n {
			s.pointer.pressTarget = nil
		}
		return true
	})
	if e.Parent != nil {
		e.Parent.RemoveChild(e)
	}
}

// Update runs one frame. Content height is synced first, then scripted
// input, pointer input, frame callbacks, scrolling, tweens and the
// scroll-driven page features run in that order.
func (s *Scene) Update() {
	dt := float32(1.0 / float64(ebiten.TPS()))
	s.viewport.ContentHeight = math.Max(s.root.Height, s.viewport.Height)

	if s.runner != nil {
		s.runner.step(s)
	}

	s.processInput()
	s.frames.RunFrame()
	s.viewport.update(dt)
	s.updateTweens(dt)
	s.updatePage(dt)

	if s.debug {
		s.drag.checkInvariants()
		s.stats.frames++
		s.debugReport()
	}
}

// scrollBy scrolls the page unless the sidebar holds the scroll lock.
func (s *Scene) scrollBy(dy float64) {
	if s.sidebar != nil && s.sidebar.IsOpen() {
		return
	}
	s.viewport.ScrollBy(dy)
}
