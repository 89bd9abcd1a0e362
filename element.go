package platter

import (
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

// elementIDCounter is a plain counter (no atomic; platter is single-threaded).
var elementIDCounter uint32

func nextElementID() uint32 {
	elementIDCounter++
	return elementIDCounter
}

// maxTilt is the largest cosmetic tilt applied by ScatterTilt (15 degrees).
const maxTilt = 15 * math.Pi / 180

// Element is a positioned box in the page tree. A single flat struct is used
// for sections, discs and chrome so the hot paths avoid interface dispatch.
type Element struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Element
	children []*Element

	// Layout. Left and Top are pixel offsets from the parent's origin.
	// While percent is set, LeftPct and TopPct are used instead and are
	// resolved against the parent's size.
	Left, Top       float64
	LeftPct, TopPct float64
	percent         bool
	pinned          bool
	Width, Height   float64

	// Fixed elements ignore page scroll (nav bar, sidebar, overlay).
	Fixed bool

	// Ordering
	ZIndex int

	// Presentation
	Tilt    float64 // radians, cosmetic only
	Alpha   float64
	Color   Color
	Image   *ebiten.Image
	Round   bool
	Label   string
	Visible bool

	// Interaction
	Interactable bool
	Draggable    bool

	// Page features
	Anchor string
	Reveal bool

	revealOffset float64
	revealArmed  bool
	revealed     bool
	sheen        sheenState
	dragging     bool

	// Per-element callbacks (nil by default).
	OnClick        func(*Element)
	OnPointerEnter func(*Element)
	OnPointerLeave func(*Element)

	childrenSorted bool
	sortedChildren []*Element
}

func elementDefaults(e *Element) {
	e.ID = nextElementID()
	e.Alpha = 1
	e.Color = ColorWhite
	e.Visible = true
	e.childrenSorted = true
}

// NewContainer creates an element with no visual output.
func NewContainer(name string, width, height float64) *Element {
	e := &Element{Name: name, Width: width, Height: height}
	elementDefaults(e)
	e.Color = Color{}
	return e
}

// NewSection creates a full-width page section reachable through anchor.
// Sections reveal on scroll by default.
func NewSection(anchor string, width, height float64, c Color) *Element {
	e := &Element{Name: "section-" + anchor, Anchor: anchor, Width: width, Height: height}
	elementDefaults(e)
	e.Color = c
	e.Reveal = true
	e.ZIndex = ZSection
	return e
}

// NewDisc creates a round, draggable disc of the given diameter.
func NewDisc(name string, diameter float64, c Color) *Element {
	e := &Element{Name: name, Width: diameter, Height: diameter, Round: true}
	elementDefaults(e)
	e.Color = c
	e.Interactable = true
	e.Draggable = true
	e.sheen.period = sheenIdlePeriod
	return e
}

// NewPanel creates a solid rectangle, optionally labeled, used for page chrome.
func NewPanel(name string, width, height float64, c Color) *Element {
	e := &Element{Name: name, Width: width, Height: height}
	elementDefaults(e)
	e.Color = c
	return e
}

// SetPercentPosition lays the element out at percentages of its parent's
// size. It has no effect once the element has been pinned to pixels.
func (e *Element) SetPercentPosition(leftPct, topPct float64) {
	if e.Pinned() {
		return
	}
	e.LeftPct = leftPct
	e.TopPct = topPct
	e.percent = true
}

// SetPosition writes an explicit pixel position. From then on the element is
// positioned in pixels and never reverts to percentages.
func (e *Element) SetPosition(left, top float64) {
	e.Left = left
	e.Top = top
	e.percent = false
	e.LeftPct = 0
	e.TopPct = 0
	e.pinned = true
}

// Pinned reports whether the element has an explicit pixel position.
func (e *Element) Pinned() bool {
	return e.pinned
}

// Position returns the element's explicit pixel position. For percentage
// layout that has not been pinned yet, use LayoutPosition.
func (e *Element) Position() Vec2 {
	return Vec2{e.Left, e.Top}
}

// Dragging reports whether the element is currently being dragged. The
// renderer uses it to lift the element.
func (e *Element) Dragging() bool {
	return e.dragging
}

// Revealed reports whether a Reveal element has been scrolled into view.
func (e *Element) Revealed() bool {
	return e.revealed
}

// --- Tree manipulation ---

// AddChild appends child to this element's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this element (cycle).
func (e *Element) AddChild(child *Element) {
	if child == nil {
		panic("platter: cannot add nil child")
	}
	if isAncestor(child, e) {
		panic("platter: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = e
	e.children = append(e.children, child)
	e.childrenSorted = false
}

// RemoveChild detaches child from this element.
// Panics if child.Parent != e.
func (e *Element) RemoveChild(child *Element) {
	if child.Parent != e {
		panic("platter: child's parent is not this element")
	}
	e.removeChildByPtr(child)
	child.Parent = nil
	e.childrenSorted = false
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (e *Element) Children() []*Element {
	return e.children
}

// SetZIndex sets the element's ZIndex and marks the parent's children as unsorted.
func (e *Element) SetZIndex(z int) {
	if e.ZIndex == z {
		return
	}
	e.ZIndex = z
	if e.Parent != nil {
		e.Parent.childrenSorted = false
	}
}

// Walk calls fn for e and every descendant in tree order. Returning false
// from fn skips that element's subtree.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.children {
		c.Walk(fn)
	}
}

// Find returns the first element in the subtree with the given name.
func (e *Element) Find(name string) *Element {
	var found *Element
	e.Walk(func(n *Element) bool {
		if found != nil {
			return false
		}
		if n.Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// ScatterTilt gives every draggable element in the subtree a random cosmetic
// tilt in [-15°, 15°]. It is meant to be called once at load.
func ScatterTilt(root *Element, rng *rand.Rand) {
	root.Walk(func(n *Element) bool {
		if n.Draggable {
			n.Tilt = (rng.Float64()*2 - 1) * maxTilt
		}
		return true
	})
}

// --- Helpers ---

func isAncestor(candidate, e *Element) bool {
	for p := e; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from e.children without clearing child.Parent.
func (e *Element) removeChildByPtr(child *Element) {
	for i, c := range e.children {
		if c == child {
			copy(e.children[i:], e.children[i+1:])
			e.children[len(e.children)-1] = nil
			e.children = e.children[:len(e.children)-1]
			return
		}
	}
}
