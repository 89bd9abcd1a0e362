package platter

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Viewport is the window onto the page: a fixed-size client area scrolled
// vertically over the content.
type Viewport struct {
	// ScrollY is the page offset of the top of the client area.
	ScrollY float64
	// Width and Height are the client area size in pixels.
	Width, Height float64
	// ContentHeight is the total page height; scrolling is clamped to it.
	ContentHeight float64

	scrollTween *gween.Tween
}

// NewViewport creates a viewport of the given client size.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{Width: width, Height: height, ContentHeight: height}
}

// MaxScroll returns the largest valid ScrollY.
func (v *Viewport) MaxScroll() float64 {
	return math.Max(0, v.ContentHeight-v.Height)
}

// ScrollBy moves the page by dy pixels, cancelling any animated scroll.
func (v *Viewport) ScrollBy(dy float64) {
	v.scrollTween = nil
	v.ScrollY = v.clamp(v.ScrollY + dy)
}

// ScrollTo animates ScrollY to y over duration seconds. The target is clamped
// to the scrollable range.
func (v *Viewport) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	y = v.clamp(y)
	if duration <= 0 {
		v.scrollTween = nil
		v.ScrollY = y
		return
	}
	v.scrollTween = gween.New(float32(v.ScrollY), float32(y), duration, easeFn)
}

// Scrolling reports whether an animated scroll is in progress.
func (v *Viewport) Scrolling() bool {
	return v.scrollTween != nil
}

// VisibleBounds returns the page-space rectangle currently in view.
func (v *Viewport) VisibleBounds() Rect {
	return Rect{X: 0, Y: v.ScrollY, Width: v.Width, Height: v.Height}
}

// update advances the scroll animation. Called from Scene.Update.
func (v *Viewport) update(dt float32) {
	if v.scrollTween == nil {
		return
	}
	val, done := v.scrollTween.Update(dt)
	v.ScrollY = v.clamp(float64(val))
	if done {
		v.scrollTween = nil
	}
}

func (v *Viewport) clamp(y float64) float64 {
	return math.Max(0, math.Min(y, v.MaxScroll()))
}
