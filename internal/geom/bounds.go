package geom

// Bounds is an axis-aligned rectangle in SVG user units.
type Bounds struct {
	X, Y, Width, Height float64
}

// MinX returns the left edge.
func (b Bounds) MinX() float64 { return b.X }

// MinY returns the top edge.
func (b Bounds) MinY() float64 { return b.Y }

// MaxX returns the right edge.
func (b Bounds) MaxX() float64 { return b.X + b.Width }

// MaxY returns the bottom edge.
func (b Bounds) MaxY() float64 { return b.Y + b.Height }

// Union returns the smallest rectangle containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	minX := min(b.MinX(), o.MinX())
	minY := min(b.MinY(), o.MinY())
	maxX := max(b.MaxX(), o.MaxX())
	maxY := max(b.MaxY(), o.MaxY())
	return Bounds{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Expand grows the rectangle outward by the given amount on each side.
// Negative amounts that would invert the rectangle collapse it to zero size.
func (b Bounds) Expand(left, top, right, bottom float64) Bounds {
	out := Bounds{
		X:      b.X - left,
		Y:      b.Y - top,
		Width:  b.Width + left + right,
		Height: b.Height + top + bottom,
	}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// Pad grows the rectangle by the same amount on all four sides.
func (b Bounds) Pad(amount float64) Bounds {
	return b.Expand(amount, amount, amount, amount)
}

// Translate shifts the rectangle by (dx, dy).
func (b Bounds) Translate(dx, dy float64) Bounds {
	return Bounds{X: b.X + dx, Y: b.Y + dy, Width: b.Width, Height: b.Height}
}

// FromExtents builds a Bounds from edge coordinates.
func FromExtents(minX, minY, maxX, maxY float64) Bounds {
	return Bounds{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Delta is a per-side outward expansion of a rectangle.
type Delta struct {
	Left, Top, Right, Bottom float64
}

// Apply grows b by the delta on each side.
func (d Delta) Apply(b Bounds) Bounds {
	return b.Expand(d.Left, d.Top, d.Right, d.Bottom)
}

// Max returns the per-side maximum of two deltas.
func (d Delta) Max(o Delta) Delta {
	return Delta{
		Left:   max(d.Left, o.Left),
		Top:    max(d.Top, o.Top),
		Right:  max(d.Right, o.Right),
		Bottom: max(d.Bottom, o.Bottom),
	}
}

// IsZero reports whether the delta expands nothing.
func (d Delta) IsZero() bool {
	return d == Delta{}
}

// DeltaBetween measures how far outer extends beyond inner on each side.
// Sides where outer does not extend report zero.
func DeltaBetween(inner, outer Bounds) Delta {
	return Delta{
		Left:   max(0, inner.MinX()-outer.MinX()),
		Top:    max(0, inner.MinY()-outer.MinY()),
		Right:  max(0, outer.MaxX()-inner.MaxX()),
		Bottom: max(0, outer.MaxY()-inner.MaxY()),
	}
}

// Accumulator folds rectangles into a running union. The zero value is empty;
// an empty accumulator has no result rather than a phantom box at the origin,
// so zero-area documents never union-in the origin point.
type Accumulator struct {
	bounds Bounds
	seen   bool
}

// Add unions another rectangle into the accumulator.
func (a *Accumulator) Add(b Bounds) {
	if !a.seen {
		a.bounds = b
		a.seen = true
		return
	}
	a.bounds = a.bounds.Union(b)
}

// Result returns the accumulated union, and whether anything was added.
func (a *Accumulator) Result() (Bounds, bool) {
	return a.bounds, a.seen
}
