package platter

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontSize is the pixel size of the built-in label font.
const DefaultFontSize = 14

// labelPad is the inset of labels drawn in the top-left of a box.
const labelPad = 24

var (
	labelInk   = Color{0.17, 0.17, 0.17, 1}
	labelOnInk = Color{1, 1, 1, 0.92}
)

// Font is a TrueType face used to draw element labels.
type Font struct {
	face *text.GoTextFace
	lh   float64
}

// LoadFont parses TrueType or OpenType data at the given pixel size.
func LoadFont(data []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("platter: parse font: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// Measure returns the width and height of s set in f.
func (f *Font) Measure(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

var defaultFont = sync.OnceValue(func() *Font {
	f, err := LoadFont(goregular.TTF, DefaultFontSize)
	if err != nil {
		panic(err)
	}
	return f
})

// DefaultFont returns Go Regular at DefaultFontSize.
func DefaultFont() *Font {
	return defaultFont()
}

// SetFont sets the label font. Nil restores DefaultFont.
func (s *Scene) SetFont(f *Font) {
	s.font = f
}

func (s *Scene) labelFont() *Font {
	if s.font != nil {
		return s.font
	}
	return DefaultFont()
}

// drawLabel sets e.Label inside box. Discs and interactive chrome center it;
// sections and other panels put it in the top-left corner.
func (s *Scene) drawLabel(screen *ebiten.Image, e *Element, box Rect, alpha float64) {
	if e.Label == "" {
		return
	}
	f := s.labelFont()
	w, h := f.Measure(e.Label)

	ink := labelInk
	x, y := box.X+labelPad, box.Y+labelPad
	if e.Round || e.Interactable {
		x = box.X + (box.Width-w)/2
		y = box.Y + (box.Height-h)/2
	}
	if e.Round {
		ink = labelOnInk
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.LineSpacing = f.lh
	a := ink.A * alpha
	op.ColorScale.Scale(float32(ink.R*a), float32(ink.G*a), float32(ink.B*a), float32(a))
	text.Draw(screen, e.Label, f.face, op)
}
