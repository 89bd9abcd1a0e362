package platter

import (
	"errors"
	"fmt"
	"math"

	"github.com/tanema/gween/ease"
)

// ErrUnknownAnchor is returned when navigating to an anchor no element has.
var ErrUnknownAnchor = errors.New("unknown anchor")

const (
	// An element reveals once this fraction of it is inside the viewport,
	// with the viewport's bottom edge pulled up by revealMarginBottom.
	revealThreshold    = 0.15
	revealMarginBottom = 50.0
	revealDistance     = 30.0
	revealDuration     = 0.8

	navShadowScroll  = 60.0
	scrollHintScroll = 100.0
	scrollHintFade   = 0.5
	navScrollTime    = 0.6

	sheenIdlePeriod  = 12.0 // seconds per revolution
	sheenHoverPeriod = 3.0
)

// sheenState drives the rotating highlight on a disc.
type sheenState struct {
	angle  float64
	period float64
}

// SheenAngle returns the current highlight angle in radians.
func (e *Element) SheenAngle() float64 {
	return e.sheen.angle
}

// SheenPeriod returns the seconds per highlight revolution; shorter while
// hovered.
func (e *Element) SheenPeriod() float64 {
	return e.sheen.period
}

// NavShadow reports whether the nav bar should cast its shadow, which it does
// once the page has scrolled past the top.
func (s *Scene) NavShadow() bool {
	return s.viewport.ScrollY > navShadowScroll
}

// SetScrollHint registers the "scroll down" hint. It fades out the first
// time the page scrolls far enough and does not come back.
func (s *Scene) SetScrollHint(e *Element) {
	s.hint = e
	s.hintHidden = false
}

// ScrollHintHidden reports whether the scroll hint has been dismissed.
func (s *Scene) ScrollHintHidden() bool {
	return s.hintHidden
}

// FindAnchor returns the element carrying anchor, or nil.
func (s *Scene) FindAnchor(anchor string) *Element {
	var found *Element
	s.root.Walk(func(e *Element) bool {
		if found != nil {
			return false
		}
		if e.Anchor == anchor {
			found = e
			return false
		}
		return true
	})
	return found
}

// Navigate smooth-scrolls so the anchored element sits just below the nav bar.
func (s *Scene) Navigate(anchor string) error {
	target := s.FindAnchor(anchor)
	if target == nil {
		return fmt.Errorf("navigate %q: %w", anchor, ErrUnknownAnchor)
	}
	y := target.PageOffset().Y - s.NavHeight
	s.viewport.ScrollTo(y, navScrollTime, ease.InOutCubic)
	s.logger.Debug("navigate", "anchor", anchor, "scrollY", y)
	return nil
}

// LinkTo makes e a nav link that smooth-scrolls to anchor when clicked.
func (s *Scene) LinkTo(e *Element, anchor string) {
	e.Interactable = true
	e.OnClick = func(*Element) {
		if err := s.Navigate(anchor); err != nil {
			s.logger.Warn("nav link", "element", e.Name, "err", err)
		}
	}
}

// updatePage runs the scroll-driven page features once per frame.
func (s *Scene) updatePage(dt float32) {
	s.updateReveal()
	if s.hint != nil && !s.hintHidden && s.viewport.ScrollY > scrollHintScroll {
		s.hintHidden = true
		s.Animate(TweenAlpha(s.hint, 0, scrollHintFade, ease.InOutQuad))
	}
	s.advanceSheen(float64(dt))
}

// updateReveal hides pending Reveal elements and reveals those that have
// scrolled far enough into view. Revealing happens once per element.
func (s *Scene) updateReveal() {
	view := s.viewport.VisibleBounds()
	view.Height = math.Max(0, view.Height-revealMarginBottom)

	s.root.Walk(func(e *Element) bool {
		if !e.Reveal || e.revealed || e.isFixed() {
			return true
		}
		if !e.revealArmed {
			e.revealArmed = true
			e.Alpha = 0
			e.revealOffset = revealDistance
		}
		if visibleFraction(e.RenderedBox(), view) >= revealThreshold {
			e.revealed = true
			s.Animate(tweenReveal(e, revealDuration, ease.OutCubic))
			s.logger.Debug("reveal", "element", e.Name)
		}
		return true
	})
}

// visibleFraction returns the share of box's area that lies inside view.
func visibleFraction(box, view Rect) float64 {
	if box.Width <= 0 || box.Height <= 0 {
		return 0
	}
	w := math.Min(box.X+box.Width, view.X+view.Width) - math.Max(box.X, view.X)
	h := math.Min(box.Y+box.Height, view.Y+view.Height) - math.Max(box.Y, view.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	return (w * h) / (box.Width * box.Height)
}

// setSheenHover switches a disc's highlight between idle and hover speed.
func setSheenHover(e *Element, hover bool) {
	if e == nil || !e.Round {
		return
	}
	if hover {
		e.sheen.period = sheenHoverPeriod
	} else {
		e.sheen.period = sheenIdlePeriod
	}
}

func (s *Scene) advanceSheen(dt float64) {
	s.root.Walk(func(e *Element) bool {
		if e.sheen.period > 0 {
			e.sheen.angle = math.Mod(e.sheen.angle+2*math.Pi*dt/e.sheen.period, 2*math.Pi)
		}
		return true
	})
}
