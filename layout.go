package platter

// LayoutPosition returns the element's offset from its parent's origin as
// laid out, resolving percentage positions against the parent's size.
func (e *Element) LayoutPosition() Vec2 {
	if !e.percent {
		return Vec2{e.Left, e.Top}
	}
	var pw, ph float64
	if e.Parent != nil {
		pw, ph = e.Parent.Width, e.Parent.Height
	}
	return Vec2{e.LeftPct / 100 * pw, e.TopPct / 100 * ph}
}

// RenderedBox returns the element's box in page coordinates as it is drawn,
// including render-time offsets such as a reveal slide that is still
// running. Cosmetic tilt does not change the box.
func (e *Element) RenderedBox() Rect {
	var x, y float64
	for n := e; n != nil; n = n.Parent {
		p := n.LayoutPosition()
		x += p.X
		y += p.Y + n.revealOffset
	}
	return Rect{X: x, Y: y, Width: e.Width, Height: e.Height}
}

// PageOffset returns the element's laid-out position in page coordinates,
// ignoring render-time offsets. Navigation targets use it.
func (e *Element) PageOffset() Vec2 {
	var off Vec2
	for n := e; n != nil; n = n.Parent {
		off = off.Add(n.LayoutPosition())
	}
	return off
}

// OffsetInParent measures the element's rendered box relative to its
// parent's rendered box.
func (e *Element) OffsetInParent() Vec2 {
	box := e.RenderedBox()
	if e.Parent == nil {
		return Vec2{box.X, box.Y}
	}
	pb := e.Parent.RenderedBox()
	return Vec2{box.X - pb.X, box.Y - pb.Y}
}

// pin re-measures the element and writes the measurement back as an explicit
// pixel position, replacing any percentage layout.
func (e *Element) pin() Vec2 {
	off := e.OffsetInParent()
	e.SetPosition(off.X, off.Y)
	return off
}

// isFixed reports whether the element or any ancestor ignores page scroll.
func (e *Element) isFixed() bool {
	for n := e; n != nil; n = n.Parent {
		if n.Fixed {
			return true
		}
	}
	return false
}

// containsPoint reports whether the page-space point lies inside the element's
// hit region: the inscribed circle for round elements, the box otherwise.
func containsPoint(box Rect, round bool, x, y float64) bool {
	if !round {
		return box.Contains(x, y)
	}
	r := box.Width / 2
	if box.Height/2 < r {
		r = box.Height / 2
	}
	dx := x - (box.X + box.Width/2)
	dy := y - (box.Y + box.Height/2)
	return dx*dx+dy*dy <= r*r
}
