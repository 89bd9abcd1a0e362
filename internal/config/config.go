// Package config loads page layouts from TOML.
//
// A layout describes the viewport, the fixed chrome (nav bar, sidebar,
// scroll hint) and a stack of full-width sections, each holding discs
// positioned in pixels or in percentages of the section:
//
//	width = 800
//	height = 600
//	background = "#f5f1ea"
//
//	[nav]
//	height = 64
//	color = "#ffffff"
//	links = [{ label = "Home", anchor = "home" }]
//
//	[[sections]]
//	anchor = "home"
//	height = 600
//	color = "#fdf6e3"
//
//	  [[sections.discs]]
//	  name = "sun"
//	  diameter = 120
//	  color = "#ff9933"
//	  left = "38%"
//	  top = 180
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrNoDiscs is returned when a layout has nothing to drag.
var ErrNoDiscs = errors.New("layout has no discs")

// Layout is a parsed page description.
type Layout struct {
	Title      string    `toml:"title"`
	Width      float64   `toml:"width"`
	Height     float64   `toml:"height"`
	Background Hex       `toml:"background"`
	TiltSeed   uint64    `toml:"tilt_seed"`
	ScrollHint string    `toml:"scroll_hint"`
	Nav        *Nav      `toml:"nav"`
	Sidebar    *Sidebar  `toml:"sidebar"`
	Momentum   *Momentum `toml:"momentum"`
	Sections   []Section `toml:"sections"`
}

// Nav is the fixed bar along the top of the viewport.
type Nav struct {
	Height float64 `toml:"height"`
	Color  Hex     `toml:"color"`
	Links  []Link  `toml:"links"`
}

// Link points a nav or sidebar entry at a section anchor.
type Link struct {
	Label  string `toml:"label"`
	Anchor string `toml:"anchor"`
}

// Sidebar is the slide-out menu. Its links default to the nav links.
type Sidebar struct {
	Width   float64 `toml:"width"`
	Color   Hex     `toml:"color"`
	Overlay Hex     `toml:"overlay"`
	Links   []Link  `toml:"links"`
}

// Momentum overrides the coast tuning. Zero fields keep their defaults.
type Momentum struct {
	Friction         float64 `toml:"friction"`
	MinVelocity      float64 `toml:"min_velocity"`
	ReleaseThreshold float64 `toml:"release_threshold"`
}

// Section is a full-width band of the page.
type Section struct {
	Anchor string  `toml:"anchor"`
	Label  string  `toml:"label"`
	Height float64 `toml:"height"`
	Color  Hex     `toml:"color"`
	Reveal *bool   `toml:"reveal"`
	Discs  []Disc  `toml:"discs"`
}

// Disc is a draggable circle inside a section.
type Disc struct {
	Name     string  `toml:"name"`
	Label    string  `toml:"label"`
	Diameter float64 `toml:"diameter"`
	Color    Hex     `toml:"color"`
	Left     Length  `toml:"left"`
	Top      Length  `toml:"top"`
}

// Length is a distance written either as a pixel number or as a percentage
// string such as "38%".
type Length struct {
	Value   float64
	Percent bool
}

// UnmarshalTOML implements toml.Unmarshaler.
func (l *Length) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case int64:
		*l = Length{Value: float64(x)}
	case float64:
		*l = Length{Value: x}
	case string:
		s := strings.TrimSpace(x)
		pct := strings.HasSuffix(s, "%")
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("length %q: %w", x, err)
		}
		*l = Length{Value: f, Percent: pct}
	default:
		return fmt.Errorf("length: unsupported type %T", v)
	}
	return nil
}

func (l Length) String() string {
	if l.Percent {
		return strconv.FormatFloat(l.Value, 'f', -1, 64) + "%"
	}
	return strconv.FormatFloat(l.Value, 'f', -1, 64)
}

// Hex is a CSS-style hex color ("#rgb" or "#rrggbb").
type Hex struct {
	colorful.Color
	Set bool
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hex) UnmarshalText(b []byte) error {
	c, err := colorful.Hex(strings.TrimSpace(string(b)))
	if err != nil {
		return fmt.Errorf("color %q: %w", string(b), err)
	}
	*h = Hex{Color: c, Set: true}
	return nil
}

// Or returns h, or fallback when h was not set.
func (h Hex) Or(fallback string) colorful.Color {
	if h.Set {
		return h.Color
	}
	c, _ := colorful.Hex(fallback)
	return c
}

// Load reads and validates the layout at path.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load layout %s: %w", path, err)
	}
	return l, nil
}

// Parse decodes and validates a TOML layout.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	md, err := toml.Decode(string(data), &l)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("parse layout: unknown key %q", undec[0].String())
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate checks sizes, anchors and link targets.
func (l *Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("layout: viewport %gx%g must be positive", l.Width, l.Height)
	}
	anchors := make(map[string]bool, len(l.Sections))
	discs := 0
	for i, sec := range l.Sections {
		if sec.Anchor == "" {
			return fmt.Errorf("section %d: missing anchor", i)
		}
		if anchors[sec.Anchor] {
			return fmt.Errorf("section %d: duplicate anchor %q", i, sec.Anchor)
		}
		anchors[sec.Anchor] = true
		if sec.Height <= 0 {
			return fmt.Errorf("section %q: height must be positive", sec.Anchor)
		}
		for j, d := range sec.Discs {
			if d.Diameter <= 0 {
				return fmt.Errorf("section %q disc %d: diameter must be positive", sec.Anchor, j)
			}
			for _, ln := range []Length{d.Left, d.Top} {
				if ln.Percent && (ln.Value < 0 || ln.Value > 100) {
					return fmt.Errorf("section %q disc %d: %s out of range", sec.Anchor, j, ln)
				}
			}
			discs++
		}
	}
	if discs == 0 {
		return ErrNoDiscs
	}
	var links []Link
	if l.Nav != nil {
		links = append(links, l.Nav.Links...)
	}
	if l.Sidebar != nil {
		links = append(links, l.Sidebar.Links...)
	}
	for _, ln := range links {
		if !anchors[ln.Anchor] {
			return fmt.Errorf("link %q: unknown anchor %q", ln.Label, ln.Anchor)
		}
	}
	return nil
}

// PageHeight returns the summed height of all sections.
func (l *Layout) PageHeight() float64 {
	var h float64
	for _, s := range l.Sections {
		h += s.Height
	}
	return h
}

// DiscCount returns the number of discs across all sections.
func (l *Layout) DiscCount() int {
	n := 0
	for _, s := range l.Sections {
		n += len(s.Discs)
	}
	return n
}

//go:embed default.toml
var defaultLayout []byte

// Default returns the built-in demo layout.
func Default() *Layout {
	l, err := Parse(defaultLayout)
	if err != nil {
		panic("config: built-in layout: " + err.Error())
	}
	return l
}
