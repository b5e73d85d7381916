// Package effects expands element bounds for filters and flags mask and
// clip-path usage. Masks and clips are never resolved geometrically; they
// only preserve the full unclipped bounds, which can over-estimate but never
// crops content.
package effects

import (
	"strconv"
	"strings"

	"github.com/kvattis/svgfit/internal/document"
	"github.com/kvattis/svgfit/internal/geom"
)

// Element is the document access the analyzer needs.
type Element = document.Node

// StyleLookup resolves one style property for the element under analysis.
type StyleLookup func(property string) string

// Expansion describes how far an element's painted region can extend beyond
// its geometry. Coefficients are pixels when Pixel is set (or when any
// coefficient is >= 1, a deliberate mixed-units heuristic), otherwise
// fractions of the current bounds.
type Expansion struct {
	Left, Top, Right, Bottom float64
	// Pixel forces pixel interpretation of the coefficients.
	Pixel bool
	// PreserveFull marks a mask or clip-path: keep full element bounds.
	PreserveFull bool
	// HasFilter reports that a filter contributed to the expansion.
	HasFilter bool
}

// IsZero reports whether the expansion changes nothing.
func (e Expansion) IsZero() bool {
	return e == Expansion{}
}

// Apply expands bounds by the expansion. Percentage coefficients scale
// against the bounds' own width and height before being added.
func (e Expansion) Apply(b geom.Bounds) geom.Bounds {
	if e.Pixel || e.Left >= 1 || e.Top >= 1 || e.Right >= 1 || e.Bottom >= 1 {
		return b.Expand(e.Left, e.Top, e.Right, e.Bottom)
	}
	return b.Expand(e.Left*b.Width, e.Top*b.Height, e.Right*b.Width, e.Bottom*b.Height)
}

// Analyze resolves an element's filter, mask and clip-path into one
// expansion. Missing references and unknown primitives contribute nothing.
func Analyze(el Element, style StyleLookup) Expansion {
	var exp Expansion

	if filter := strings.TrimSpace(style("filter")); filter != "" && filter != "none" {
		exp = analyzeFilter(el, filter)
		exp.HasFilter = true
	}
	if mask := strings.TrimSpace(style("mask")); mask != "" && mask != "none" {
		exp.PreserveFull = true
	}
	if clip := strings.TrimSpace(style("clip-path")); clip != "" && clip != "none" {
		exp.PreserveFull = true
	}
	return exp
}

func analyzeFilter(el Element, value string) Expansion {
	if id, ok := urlReference(value); ok {
		target, found := el.ByID(id)
		if !found {
			return Expansion{}
		}
		return filterElementExpansion(target)
	}
	return cssFilterExpansion(value)
}

// urlReference extracts the id from a url(#id) value.
func urlReference(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "url(") {
		return "", false
	}
	end := strings.IndexByte(value, ')')
	if end < 0 {
		return "", false
	}
	ref := strings.Trim(value[4:end], ` "'`)
	ref = strings.TrimPrefix(ref, "#")
	return ref, ref != ""
}

// filterElementExpansion derives the expansion of a <filter> element. Pixel
// expansion from primitives wins whenever it is non-zero; otherwise the
// filter region (default -10%,-10%,120%,120%) yields a percentage expansion.
func filterElementExpansion(filter Element) Expansion {
	pixel := primitivesExpansion(filter)
	if pixel != (Expansion{}) {
		pixel.Pixel = true
		return pixel
	}
	return regionExpansion(filter)
}

// primitivesExpansion accumulates pixel padding from known filter
// primitives. Chained primitives compound, so contributions add.
func primitivesExpansion(filter Element) Expansion {
	var exp Expansion
	for _, child := range filter.Children() {
		switch child.Tag() {
		case "feGaussianBlur":
			stdX, stdY := stdDeviation(child.Attr("stdDeviation"))
			exp.Left += 3 * stdX
			exp.Right += 3 * stdX
			exp.Top += 3 * stdY
			exp.Bottom += 3 * stdY
		case "feDropShadow":
			dx := attrFloat(child, "dx", 2)
			dy := attrFloat(child, "dy", 2)
			stdX, stdY := stdDeviation(child.Attr("stdDeviation"))
			if child.Attr("stdDeviation") == "" {
				stdX, stdY = 2, 2
			}
			exp.Left += max(0, -dx) + 3*stdX
			exp.Right += max(0, dx) + 3*stdX
			exp.Top += max(0, -dy) + 3*stdY
			exp.Bottom += max(0, dy) + 3*stdY
		case "feOffset":
			dx := attrFloat(child, "dx", 0)
			dy := attrFloat(child, "dy", 0)
			exp.Left += max(0, -dx)
			exp.Right += max(0, dx)
			exp.Top += max(0, -dy)
			exp.Bottom += max(0, dy)
		case "feMorphology":
			if child.Attr("operator") == "dilate" {
				rX, rY := stdDeviation(child.Attr("radius"))
				exp.Left += rX
				exp.Right += rX
				exp.Top += rY
				exp.Bottom += rY
			}
		}
	}
	return exp
}

// regionExpansion converts the filter region attributes into per-side
// fractions of the element bounds.
func regionExpansion(filter Element) Expansion {
	x := percentOr(filter.Attr("x"), -0.10)
	y := percentOr(filter.Attr("y"), -0.10)
	w := percentOr(filter.Attr("width"), 1.20)
	h := percentOr(filter.Attr("height"), 1.20)
	return Expansion{
		Left:   -x,
		Top:    -y,
		Right:  x + w - 1,
		Bottom: y + h - 1,
	}
}

// cssFilterExpansion parses a CSS filter function list (blur, drop-shadow)
// with a depth-aware scanner so nested parentheses like rgba() survive.
func cssFilterExpansion(value string) Expansion {
	var exp Expansion
	for {
		open := strings.IndexByte(value, '(')
		if open < 0 {
			break
		}
		name := strings.ToLower(strings.TrimSpace(value[:open]))
		depth := 1
		end := open + 1
		for end < len(value) && depth > 0 {
			switch value[end] {
			case '(':
				depth++
			case ')':
				depth--
			}
			end++
		}
		if depth != 0 {
			break
		}
		args := value[open+1 : end-1]
		switch name {
		case "blur":
			r := lengthValue(args)
			exp.Left += 3 * r
			exp.Right += 3 * r
			exp.Top += 3 * r
			exp.Bottom += 3 * r
		case "drop-shadow":
			dx, dy, blur := dropShadowArgs(args)
			exp.Left += max(0, -dx) + 3*blur
			exp.Right += max(0, dx) + 3*blur
			exp.Top += max(0, -dy) + 3*blur
			exp.Bottom += max(0, dy) + 3*blur
		}
		value = value[end:]
	}
	exp.Pixel = exp != Expansion{}
	return exp
}

// dropShadowArgs pulls the numeric lengths out of a drop-shadow argument
// list, skipping color tokens: first two lengths are dx and dy, a third is
// the blur radius.
func dropShadowArgs(args string) (dx, dy, blur float64) {
	var lengths []float64
	depth := 0
	start := 0
	flush := func(end int) {
		token := strings.TrimSpace(args[start:end])
		start = end + 1
		if token == "" || strings.ContainsAny(token, "()#") {
			return
		}
		trimmed := strings.TrimSuffix(token, "px")
		if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
			lengths = append(lengths, v)
		}
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ' ':
			if depth == 0 {
				flush(i)
			}
		}
	}
	flush(len(args))

	if len(lengths) > 0 {
		dx = lengths[0]
	}
	if len(lengths) > 1 {
		dy = lengths[1]
	}
	if len(lengths) > 2 {
		blur = lengths[2]
	}
	return dx, dy, blur
}

// stdDeviation parses one or two numbers ("5" or "5 3").
func stdDeviation(raw string) (float64, float64) {
	nums := geom.ParseNumberList(raw)
	switch len(nums) {
	case 0:
		return 0, 0
	case 1:
		return nums[0], nums[0]
	default:
		return nums[0], nums[1]
	}
}

func attrFloat(el Element, name string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(el.Attr(name)), 64)
	if err != nil {
		return fallback
	}
	return v
}

// percentOr parses a region coordinate: percentages become fractions,
// unitless numbers are treated as fractions of the element box already, and
// absence yields the default.
func percentOr(raw string, fallback float64) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	if strings.HasSuffix(raw, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
		if err != nil {
			return fallback
		}
		return v / 100
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

// lengthValue parses a single px length.
func lengthValue(raw string) float64 {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "px"))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
