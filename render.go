package platter

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// liftScale enlarges an element while it is being dragged.
	liftScale = 1.05
	// navShadowHeight is the height of the strip drawn under the nav bar.
	navShadowHeight = 6
	// sheenWidth is the highlight's share of a disc's diameter.
	sheenWidth = 0.35
)

// Draw renders the page into screen in painter order: each element before
// its children, children in ascending ZIndex.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor != nil {
		screen.Fill(s.ClearColor)
	}
	s.stats.drawn = 0
	s.drawElement(screen, s.root, 1)
	if s.nav != nil && s.NavShadow() && s.nav.Visible {
		s.drawNavShadow(screen)
	}
	s.flushScreenshots(screen)
}

func (s *Scene) drawElement(screen *ebiten.Image, e *Element, parentAlpha float64) {
	if !e.Visible {
		return
	}
	alpha := parentAlpha * e.Alpha
	if alpha > 0 {
		s.drawSelf(screen, e, alpha)
	}
	if len(e.children) == 0 {
		return
	}
	if !e.childrenSorted {
		rebuildSortedChildren(e)
	}
	for _, c := range e.sortedChildren {
		s.drawElement(screen, c, alpha)
	}
}

func (s *Scene) drawSelf(screen *ebiten.Image, e *Element, alpha float64) {
	box := s.clientBox(e)
	if !box.Intersects(Rect{Width: s.viewport.Width, Height: s.viewport.Height}) {
		return
	}

	img := e.Image
	switch {
	case img != nil:
	case e.Round:
		img = s.discImage(int(math.Ceil(math.Max(e.Width, e.Height))))
	case e.Color.A > 0:
		img = WhitePixel
	}
	if img == nil {
		s.drawLabel(screen, e, box, alpha)
		return
	}

	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(box.Width/float64(iw), box.Height/float64(ih))
	op.GeoM.Translate(-box.Width/2, -box.Height/2)
	if e.dragging {
		op.GeoM.Scale(liftScale, liftScale)
	}
	op.GeoM.Rotate(e.Tilt)
	op.GeoM.Translate(box.X+box.Width/2, box.Y+box.Height/2)

	tint := e.Color
	if e.Image != nil && tint == (Color{}) {
		tint = ColorWhite
	}
	op.ColorScale.Scale(float32(tint.R*tint.A*alpha), float32(tint.G*tint.A*alpha), float32(tint.B*tint.A*alpha), float32(tint.A*alpha))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
	s.stats.drawn++

	if e.Round && e.sheen.period > 0 {
		s.drawSheen(screen, e, box, alpha)
	}
	s.drawLabel(screen, e, box, alpha)
}

// drawSheen draws a soft highlight orbiting the disc's rim.
func (s *Scene) drawSheen(screen *ebiten.Image, e *Element, box Rect, alpha float64) {
	r := math.Min(box.Width, box.Height) / 2
	size := 2 * r * sheenWidth
	img := s.discImage(int(math.Ceil(size)))
	cx := box.X + box.Width/2 + math.Cos(e.sheen.angle)*(r-size/2)
	cy := box.Y + box.Height/2 + math.Sin(e.sheen.angle)*(r-size/2)

	op := &ebiten.DrawImageOptions{}
	scale := size / float64(img.Bounds().Dx())
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx-size/2, cy-size/2)
	a := float32(0.25 * alpha)
	op.ColorScale.Scale(a, a, a, a)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func (s *Scene) drawNavShadow(screen *ebiten.Image) {
	box := s.clientBox(s.nav)
	for i := 0; i < navShadowHeight; i++ {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(box.Width, 1)
		op.GeoM.Translate(box.X, box.Y+box.Height+float64(i))
		a := float32(0.18 * (1 - float64(i)/navShadowHeight))
		op.ColorScale.Scale(0, 0, 0, a)
		screen.DrawImage(WhitePixel, op)
	}
}

// discImage returns a cached white anti-aliased circle of the given diameter.
func (s *Scene) discImage(d int) *ebiten.Image {
	if d < 1 {
		d = 1
	}
	if img, ok := s.discCache[d]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(circleRGBA(d))
	s.discCache[d] = img
	return img
}

// circleRGBA rasterizes a white circle with a one pixel soft edge.
func circleRGBA(d int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, d, d))
	r := float64(d) / 2
	for y := 0; y < d; y++ {
		for x := 0; x < d; x++ {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			cov := clamp01(r - math.Sqrt(dx*dx+dy*dy) + 0.5)
			if cov == 0 {
				continue
			}
			v := uint8(cov * 255)
			img.SetRGBA(x, y, color.RGBA{v, v, v, v})
		}
	}
	return img
}
