package animation

import "github.com/kvattis/svgfit/internal/svgpath"

// ValueKind discriminates the normalized animation value variants.
type ValueKind int

const (
	// ValueNumber is a plain numeric attribute value.
	ValueNumber ValueKind = iota
	// ValueText is an attribute value that did not parse as a number.
	ValueText
	// ValueTranslate through ValueMatrix carry animateTransform arguments.
	ValueTranslate
	ValueScale
	ValueRotate
	ValueSkewX
	ValueSkewY
	ValueMatrix
	// ValuePath carries path data with its precomputed extents.
	ValuePath
	// ValueMotion carries a motion coordinate list with its extents.
	ValueMotion
)

// Value is one normalized animation value.
type Value struct {
	Kind       ValueKind
	Numbers    []float64
	Text       string
	Extents    svgpath.Extents
	HasExtents bool
}

// Number returns the scalar value for numeric kinds, or 0.
func (v Value) Number() float64 {
	if len(v.Numbers) > 0 {
		return v.Numbers[0]
	}
	return 0
}

// ValueParser converts one raw value-list entry into a normalized Value.
// Returning false drops the entry.
type ValueParser func(raw string) (Value, bool)
