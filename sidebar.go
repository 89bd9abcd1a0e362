package platter

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

const (
	sidebarSlide      = 0.3 // seconds
	sidebarNavDelayMs = 300
)

// Sidebar is the mobile slide-out menu: a fixed panel that slides in from the
// right edge over a click-to-close overlay. While open, page scroll is locked.
type Sidebar struct {
	Panel   *Element
	Overlay *Element

	scene *Scene
	open  bool
	slide *TweenGroup
}

// AttachSidebar wires panel and overlay into the scene as a closed sidebar.
// Both are added to the root as fixed elements.
func (s *Scene) AttachSidebar(panel, overlay *Element) *Sidebar {
	sb := &Sidebar{Panel: panel, Overlay: overlay, scene: s}

	overlay.Fixed = true
	overlay.Visible = false
	overlay.Interactable = true
	overlay.Left, overlay.Top = 0, 0
	overlay.Width, overlay.Height = s.viewport.Width, s.viewport.Height
	overlay.SetZIndex(ZOverlay)
	overlay.OnClick = func(*Element) { sb.Close() }

	panel.Fixed = true
	panel.Visible = false
	panel.Interactable = true
	panel.Left, panel.Top = s.viewport.Width, 0
	panel.Height = s.viewport.Height
	panel.SetZIndex(ZSidebar)

	s.root.AddChild(overlay)
	s.root.AddChild(panel)
	s.sidebar = sb
	return sb
}

// Sidebar returns the attached sidebar, or nil.
func (s *Scene) Sidebar() *Sidebar {
	return s.sidebar
}

// IsOpen reports whether the sidebar is open.
func (sb *Sidebar) IsOpen() bool {
	return sb.open
}

// Open slides the panel in and shows the overlay.
func (sb *Sidebar) Open() {
	if sb.open {
		return
	}
	sb.open = true
	sb.Panel.Visible = true
	sb.Overlay.Visible = true
	sb.slideTo(sb.scene.viewport.Width - sb.Panel.Width)
	sb.scene.logger.Debug("sidebar open")
}

// Close slides the panel out and hides the overlay.
func (sb *Sidebar) Close() {
	if !sb.open {
		return
	}
	sb.open = false
	sb.Overlay.Visible = false
	sb.slideTo(sb.scene.viewport.Width)
	sb.scene.logger.Debug("sidebar close")
}

func (sb *Sidebar) slideTo(left float64) {
	if sb.slide != nil {
		sb.slide.Stop()
	}
	sb.slide = sb.scene.Animate(TweenLeft(sb.Panel, left, sidebarSlide, ease.OutCubic))
}

// NavigateFromSidebar closes the sidebar and, once it has had time to slide
// away, smooth-scrolls to anchor. The sidebar closes even when anchor is
// unknown.
func (sb *Sidebar) NavigateFromSidebar(anchor string) error {
	s := sb.scene
	sb.Close()
	if s.FindAnchor(anchor) == nil {
		return fmt.Errorf("sidebar navigate %q: %w", anchor, ErrUnknownAnchor)
	}
	s.after(sidebarNavDelayMs, func() {
		if err := s.Navigate(anchor); err != nil {
			s.logger.Warn("sidebar navigate", "anchor", anchor, "err", err)
		}
	})
	return nil
}

// LinkTo makes e a sidebar link: clicking it closes the sidebar and scrolls
// to anchor.
func (sb *Sidebar) LinkTo(e *Element, anchor string) {
	e.Interactable = true
	e.OnClick = func(*Element) {
		if err := sb.NavigateFromSidebar(anchor); err != nil {
			sb.scene.logger.Warn("sidebar link", "element", e.Name, "err", err)
		}
	}
}

// OpensSidebar makes e (the burger button) open the sidebar when clicked.
func (sb *Sidebar) OpensSidebar(e *Element) {
	e.Interactable = true
	e.OnClick = func(*Element) { sb.Open() }
}

// ClosesSidebar makes e (the close button inside the panel) close the
// sidebar when clicked.
func (sb *Sidebar) ClosesSidebar(e *Element) {
	e.Interactable = true
	e.OnClick = func(*Element) { sb.Close() }
}

// after runs fn on the first frame at least delayMs after now.
func (s *Scene) after(delayMs int64, fn func()) {
	deadline := s.clock.NowMs() + delayMs
	var tick func()
	tick = func() {
		if s.clock.NowMs() >= deadline {
			fn()
			return
		}
		s.frames.Request(tick)
	}
	s.frames.Request(tick)
}
