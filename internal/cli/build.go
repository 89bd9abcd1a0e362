package cli

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/phanxgames/platter"
	"github.com/phanxgames/platter/internal/config"
)

const (
	navLinkWidth  = 84.0
	navPad        = 16.0
	burgerWidth   = 56.0
	sidebarLinkH  = 44.0
	hintWidth     = 80.0
	hintHeight    = 24.0
	hintBottomPad = 24.0
	overlayAlpha  = 0.4
)

// page is a scene built from a layout, with handles on the parts commands
// need to find again.
type page struct {
	scene   *platter.Scene
	discs   []*platter.Element
	sidebar *platter.Sidebar
}

// buildScene turns a layout into a scene. Sections stack top to bottom; discs
// are children of their section.
func buildScene(l *config.Layout, logger *log.Logger) *page {
	s := platter.NewScene(l.Width, l.Height)
	s.SetLogger(logger.WithPrefix("platter"))
	s.ClearColor = toRGBA(l.Background.Or("#f5f1ea"))

	if m := l.Momentum; m != nil {
		cfg := platter.DefaultMomentumConfig()
		if m.Friction > 0 {
			cfg.Friction = m.Friction
		}
		if m.MinVelocity > 0 {
			cfg.MinVelocity = m.MinVelocity
		}
		if m.ReleaseThreshold > 0 {
			cfg.ReleaseThreshold = m.ReleaseThreshold
		}
		s.SetMomentum(cfg)
	}

	p := &page{scene: s}
	root := s.Root()

	var y float64
	for _, sl := range l.Sections {
		sec := platter.NewSection(sl.Anchor, l.Width, sl.Height, toColor(sl.Color.Or("#ffffff"), 1))
		sec.Top = y
		sec.Label = sl.Label
		if sl.Reveal != nil {
			sec.Reveal = *sl.Reveal
		}
		root.AddChild(sec)
		for _, dl := range sl.Discs {
			d := platter.NewDisc(dl.Name, dl.Diameter, toColor(dl.Color.Or("#333333"), 1))
			d.Label = dl.Label
			placeDisc(d, dl, l.Width, sl.Height)
			sec.AddChild(d)
			p.discs = append(p.discs, d)
		}
		y += sl.Height
	}
	root.Height = y

	if l.Nav != nil {
		buildNav(s, l)
	}
	if l.Sidebar != nil {
		p.sidebar = buildSidebar(s, l)
		if burger := root.Find("nav-burger"); burger != nil {
			p.sidebar.OpensSidebar(burger)
		}
	}
	if l.ScrollHint != "" {
		hint := platter.NewPanel("scroll-hint", hintWidth, hintHeight, platter.Color{})
		hint.Label = l.ScrollHint
		hint.Fixed = true
		hint.Left = (l.Width - hintWidth) / 2
		hint.Top = l.Height - hintHeight - hintBottomPad
		hint.SetZIndex(platter.ZScrollHint)
		root.AddChild(hint)
		s.SetScrollHint(hint)
	}

	seed := l.TiltSeed
	platter.ScatterTilt(root, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
	return p
}

// placeDisc positions d in pixels when both coordinates are pixels and in
// percentages otherwise, converting the pixel axis if the two are mixed.
func placeDisc(d *platter.Element, dl config.Disc, w, h float64) {
	if !dl.Left.Percent && !dl.Top.Percent {
		d.Left, d.Top = dl.Left.Value, dl.Top.Value
		return
	}
	left, top := dl.Left.Value, dl.Top.Value
	if !dl.Left.Percent {
		left = left / w * 100
	}
	if !dl.Top.Percent {
		top = top / h * 100
	}
	d.SetPercentPosition(left, top)
}

func buildNav(s *platter.Scene, l *config.Layout) {
	nl := l.Nav
	nav := platter.NewPanel("nav", l.Width, nl.Height, toColor(nl.Color.Or("#ffffff"), 1))
	s.Root().AddChild(nav)
	s.SetNav(nav)

	if len(l.Sections) > 0 {
		logo := platter.NewPanel("nav-logo", 160, nl.Height, platter.Color{})
		logo.Label = l.Title
		logo.Left = navPad
		nav.AddChild(logo)
		s.LinkTo(logo, l.Sections[0].Anchor)
	}

	x := l.Width - navPad
	if l.Sidebar != nil {
		x -= burgerWidth
		burger := platter.NewPanel("nav-burger", burgerWidth, nl.Height, platter.Color{})
		burger.Label = "menu"
		burger.Left = x
		nav.AddChild(burger)
	}
	for i := len(nl.Links) - 1; i >= 0; i-- {
		ln := nl.Links[i]
		x -= navLinkWidth
		e := platter.NewPanel("nav-link-"+ln.Anchor, navLinkWidth, nl.Height, platter.Color{})
		e.Label = ln.Label
		e.Left = x
		nav.AddChild(e)
		s.LinkTo(e, ln.Anchor)
	}
}

func buildSidebar(s *platter.Scene, l *config.Layout) *platter.Sidebar {
	sl := l.Sidebar
	width := sl.Width
	if width <= 0 {
		width = l.Width * 0.8
	}
	panel := platter.NewPanel("sidebar", width, l.Height, toColor(sl.Color.Or("#ffffff"), 1))
	overlay := platter.NewPanel("sidebar-overlay", l.Width, l.Height, toColor(sl.Overlay.Or("#000000"), overlayAlpha))
	sb := s.AttachSidebar(panel, overlay)

	closeBtn := platter.NewPanel("sidebar-close", burgerWidth, sidebarLinkH, platter.Color{})
	closeBtn.Label = "close"
	closeBtn.Left = width - burgerWidth
	panel.AddChild(closeBtn)
	sb.ClosesSidebar(closeBtn)

	links := sl.Links
	if len(links) == 0 && l.Nav != nil {
		links = l.Nav.Links
	}
	for i, ln := range links {
		e := platter.NewPanel("sidebar-link-"+ln.Anchor, width, sidebarLinkH, platter.Color{})
		e.Label = ln.Label
		e.Top = sidebarLinkH * float64(i+1)
		panel.AddChild(e)
		sb.LinkTo(e, ln.Anchor)
	}
	return sb
}

func toColor(c colorful.Color, a float64) platter.Color {
	r, g, b := c.Clamped().RGB255()
	return platter.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: a}
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{r, g, b, 0xff}
}

// loadLayout reads path, or returns the built-in layout when path is empty.
func loadLayout(path string) (*config.Layout, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// loadScript reads and parses the input script at path. An empty path
// means no script.
func loadScript(path string) (*platter.ScriptRunner, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}
	r, err := platter.LoadScript(data)
	if err != nil {
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}
	return r, nil
}
