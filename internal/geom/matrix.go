package geom

import "math"

// Matrix is a 2D affine transformation matrix in SVG order:
//
//	[ A C E ]
//	[ B D F ]
//	[ 0 0 1 ]
//
// so a point maps as x' = A*x + C*y + E, y' = B*x + D*y + F.
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{A: 1, D: 1, E: tx, F: ty}
}

// Scale returns a scaling matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// Rotate returns a rotation matrix for deg degrees about the pivot (cx, cy).
// A pivot rotation is translate(cx,cy) * rotate(deg) * translate(-cx,-cy).
func Rotate(deg, cx, cy float64) Matrix {
	rad := deg * math.Pi / 180
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	r := Matrix{A: cos, B: sin, C: -sin, D: cos}
	if cx == 0 && cy == 0 {
		return r
	}
	return Translate(cx, cy).Multiply(r).Multiply(Translate(-cx, -cy))
}

// SkewX returns a horizontal skew matrix for deg degrees.
func SkewX(deg float64) Matrix {
	return Matrix{A: 1, C: math.Tan(deg * math.Pi / 180), D: 1}
}

// SkewY returns a vertical skew matrix for deg degrees.
func SkewY(deg float64) Matrix {
	return Matrix{A: 1, B: math.Tan(deg * math.Pi / 180), D: 1}
}

// Multiply combines two matrices. m.Multiply(o) is the transform that applies
// o first and then m, which matches SVG's convention: the cumulative matrix
// for a node is parent.Multiply(local).
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		A: m.A*o.A + m.C*o.B,
		B: m.B*o.A + m.D*o.B,
		C: m.A*o.C + m.C*o.D,
		D: m.B*o.C + m.D*o.D,
		E: m.A*o.E + m.C*o.F + m.E,
		F: m.B*o.E + m.D*o.F + m.F,
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// TransformBounds maps all four corners of b and returns their axis-aligned
// bounding box. Rotation and skew turn a rectangle into a quadrilateral, so
// transforming only two corners would under-estimate.
func (m Matrix) TransformBounds(b Bounds) Bounds {
	x0, y0 := m.Apply(b.MinX(), b.MinY())
	x1, y1 := m.Apply(b.MaxX(), b.MinY())
	x2, y2 := m.Apply(b.MinX(), b.MaxY())
	x3, y3 := m.Apply(b.MaxX(), b.MaxY())
	minX := min(min(x0, x1), min(x2, x3))
	maxX := max(max(x0, x1), max(x2, x3))
	minY := min(min(y0, y1), min(y2, y3))
	maxY := max(max(y0, y1), max(y2, y3))
	return FromExtents(minX, minY, maxX, maxY)
}

// IsIdentity reports whether m is exactly the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}
