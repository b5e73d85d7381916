package svgpath

import "math"

// Extents tracks the edges of a bounding region in path coordinates.
type Extents struct {
	MinX, MaxX, MinY, MaxY float64
}

func (e *Extents) add(x, y float64) {
	e.MinX = math.Min(e.MinX, x)
	e.MaxX = math.Max(e.MaxX, x)
	e.MinY = math.Min(e.MinY, y)
	e.MaxY = math.Max(e.MaxY, y)
}

// Width returns the horizontal extent.
func (e Extents) Width() float64 { return e.MaxX - e.MinX }

// Height returns the vertical extent.
func (e Extents) Height() float64 { return e.MaxY - e.MinY }

// Union returns the combined extents of e and o.
func (e Extents) Union(o Extents) Extents {
	return Extents{
		MinX: math.Min(e.MinX, o.MinX),
		MaxX: math.Max(e.MaxX, o.MaxX),
		MinY: math.Min(e.MinY, o.MinY),
		MaxY: math.Max(e.MaxY, o.MaxY),
	}
}

// tracer folds path commands into extents while tracking the pen position,
// the subpath start, and the previous control point for smooth reflection.
type tracer struct {
	ext          Extents
	seen         bool
	x, y         float64
	startX       float64
	startY       float64
	lastCtrlX    float64
	lastCtrlY    float64
	lastWasCubic bool
	lastWasQuad  bool
}

func (t *tracer) include(x, y float64) {
	if !t.seen {
		t.ext = Extents{MinX: x, MaxX: x, MinY: y, MaxY: y}
		t.seen = true
		return
	}
	t.ext.add(x, y)
}

// Bounds returns the extents of the path described by data. Malformed or
// empty input yields zero extents, never an error.
func Bounds(data string) Extents {
	return CommandBounds(Parse(data))
}

// CommandBounds folds an already-parsed command list into extents.
func CommandBounds(cmds []Command) Extents {
	var t tracer
	for _, c := range cmds {
		t.step(c)
	}
	return t.ext
}

func (t *tracer) abs(dx, dy float64, relative bool) (float64, float64) {
	if relative {
		return t.x + dx, t.y + dy
	}
	return dx, dy
}

func (t *tracer) step(c Command) {
	wasCubic, wasQuad := t.lastWasCubic, t.lastWasQuad
	t.lastWasCubic, t.lastWasQuad = false, false

	switch c.Op {
	case MoveTo:
		x, y := t.abs(c.Args[0], c.Args[1], c.Relative)
		t.x, t.y = x, y
		t.startX, t.startY = x, y
		t.include(x, y)

	case LineTo:
		x, y := t.abs(c.Args[0], c.Args[1], c.Relative)
		t.x, t.y = x, y
		t.include(x, y)

	case HLineTo:
		x := c.Args[0]
		if c.Relative {
			x += t.x
		}
		t.x = x
		t.include(x, t.y)

	case VLineTo:
		y := c.Args[0]
		if c.Relative {
			y += t.y
		}
		t.y = y
		t.include(t.x, y)

	case CubicTo:
		c1x, c1y := t.abs(c.Args[0], c.Args[1], c.Relative)
		c2x, c2y := t.abs(c.Args[2], c.Args[3], c.Relative)
		x, y := t.abs(c.Args[4], c.Args[5], c.Relative)
		t.cubic(c1x, c1y, c2x, c2y, x, y)

	case SmoothCubicTo:
		// The first control point reflects the previous cubic control point
		// through the current point; without a preceding cubic it coincides
		// with the current point.
		c1x, c1y := t.x, t.y
		if wasCubic {
			c1x = 2*t.x - t.lastCtrlX
			c1y = 2*t.y - t.lastCtrlY
		}
		c2x, c2y := t.abs(c.Args[0], c.Args[1], c.Relative)
		x, y := t.abs(c.Args[2], c.Args[3], c.Relative)
		t.cubic(c1x, c1y, c2x, c2y, x, y)

	case QuadTo:
		cx, cy := t.abs(c.Args[0], c.Args[1], c.Relative)
		x, y := t.abs(c.Args[2], c.Args[3], c.Relative)
		t.quad(cx, cy, x, y)

	case SmoothQuadTo:
		cx, cy := t.x, t.y
		if wasQuad {
			cx = 2*t.x - t.lastCtrlX
			cy = 2*t.y - t.lastCtrlY
		}
		x, y := t.abs(c.Args[0], c.Args[1], c.Relative)
		t.quad(cx, cy, x, y)

	case ArcTo:
		rx, ry := math.Abs(c.Args[0]), math.Abs(c.Args[1])
		phi := c.Args[2] * math.Pi / 180
		largeArc := c.Args[3] != 0
		sweep := c.Args[4] != 0
		x, y := t.abs(c.Args[5], c.Args[6], c.Relative)
		// Conservative arc box: the whole ellipse lies within its center
		// plus/minus the radii (for unrotated arcs; rotation only widens the
		// over-estimate direction we already cover via both endpoints).
		// Exact elliptical-arc bounding is deliberately out of scope.
		cx, cy, crx, cry, ok := arcCenter(t.x, t.y, x, y, rx, ry, phi, largeArc, sweep)
		if ok {
			t.include(cx-crx, cy-cry)
			t.include(cx+crx, cy+cry)
		}
		t.include(t.x, t.y)
		t.include(x, y)
		t.x, t.y = x, y

	case ClosePath:
		t.x, t.y = t.startX, t.startY
	}
}

// cubic adds a cubic Bezier from the current point through two control
// points to (x, y), including the curve's interior extrema.
func (t *tracer) cubic(c1x, c1y, c2x, c2y, x, y float64) {
	p0x, p0y := t.x, t.y
	t.include(p0x, p0y)
	t.include(x, y)
	for _, root := range cubicExtremaT(p0x, c1x, c2x, x) {
		t.include(cubicAt(p0x, c1x, c2x, x, root), cubicAt(p0y, c1y, c2y, y, root))
	}
	for _, root := range cubicExtremaT(p0y, c1y, c2y, y) {
		t.include(cubicAt(p0x, c1x, c2x, x, root), cubicAt(p0y, c1y, c2y, y, root))
	}
	t.x, t.y = x, y
	t.lastCtrlX, t.lastCtrlY = c2x, c2y
	t.lastWasCubic = true
}

// quad adds a quadratic Bezier from the current point through one control
// point to (x, y), including the per-axis extremum when it lies inside (0,1).
func (t *tracer) quad(cx, cy, x, y float64) {
	p0x, p0y := t.x, t.y
	t.include(p0x, p0y)
	t.include(x, y)
	if root, ok := quadExtremumT(p0x, cx, x); ok {
		t.include(quadAt(p0x, cx, x, root), quadAt(p0y, cy, y, root))
	}
	if root, ok := quadExtremumT(p0y, cy, y); ok {
		t.include(quadAt(p0x, cx, x, root), quadAt(p0y, cy, y, root))
	}
	t.x, t.y = x, y
	t.lastCtrlX, t.lastCtrlY = cx, cy
	t.lastWasQuad = true
}

// cubicExtremaT solves dB/dt = 0 for one axis of a cubic Bezier. The
// derivative is quadratic in t; only roots strictly inside (0,1) matter,
// since the endpoints are already included. A zero leading coefficient
// degrades to the linear case, and a degenerate linear term yields nothing.
func cubicExtremaT(p0, p1, p2, p3 float64) []float64 {
	a := 3 * (-p0 + 3*p1 - 3*p2 + p3)
	b := 6 * (p0 - 2*p1 + p2)
	c := 3 * (p1 - p0)

	if a == 0 {
		if b == 0 {
			return nil
		}
		root := -c / b
		if root > 0 && root < 1 {
			return []float64{root}
		}
		return nil
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	var roots []float64
	for _, root := range []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)} {
		if root > 0 && root < 1 {
			roots = append(roots, root)
		}
	}
	return roots
}

func cubicAt(p0, p1, p2, p3, t float64) float64 {
	u := 1 - t
	return u*u*u*p0 + 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t*p3
}

// quadExtremumT is the closed-form single extremum of one quadratic Bezier
// axis: t = (p0-p1) / (p0 - 2*p1 + p2), valid only inside (0,1).
func quadExtremumT(p0, p1, p2 float64) (float64, bool) {
	denom := p0 - 2*p1 + p2
	if denom == 0 {
		return 0, false
	}
	root := (p0 - p1) / denom
	if root > 0 && root < 1 {
		return root, true
	}
	return 0, false
}

func quadAt(p0, p1, p2, t float64) float64 {
	u := 1 - t
	return u*u*p0 + 2*u*t*p1 + t*t*p2
}

// arcCenter converts an elliptical arc from endpoint to center
// parameterization (SVG spec appendix F.6.5), scaling under-sized radii up
// as required. It reports false for degenerate arcs (coincident endpoints
// or zero radii), which contribute only their endpoints.
func arcCenter(x1, y1, x2, y2, rx, ry, phi float64, largeArc, sweep bool) (cx, cy, outRx, outRy float64, ok bool) {
	if rx == 0 || ry == 0 || (x1 == x2 && y1 == y2) {
		return 0, 0, 0, 0, false
	}
	cosPhi := math.Cos(phi)
	sinPhi := math.Sin(phi)
	dx := (x1 - x2) / 2
	dy := (y1 - y2) / 2
	x1p := cosPhi*dx + sinPhi*dy
	y1p := -sinPhi*dx + cosPhi*dy

	// Scale radii up if the endpoints cannot be connected by the ellipse.
	lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	if den == 0 {
		return 0, 0, 0, 0, false
	}
	factor := math.Sqrt(math.Max(0, num/den))
	if largeArc == sweep {
		factor = -factor
	}
	cxp := factor * rx * y1p / ry
	cyp := -factor * ry * x1p / rx

	cx = cosPhi*cxp - sinPhi*cyp + (x1+x2)/2
	cy = sinPhi*cxp + cosPhi*cyp + (y1+y2)/2
	return cx, cy, rx, ry, true
}
