package cssanim

import (
	"math"
	"strconv"
	"strings"

	"github.com/kvattis/svgfit/internal/geom"
)

// Envelope computes how far an element's four corners can travel under one
// @keyframes animation, pivoted at its transform-origin, expressed as the
// per-side growth beyond the base bounds. direction reverse/alternate only
// reorders samples; the union is order-independent, so every keyframe is
// simply sampled once.
func Envelope(base geom.Bounds, kf Keyframes, origin string, direction string) geom.Delta {
	ox, oy := ResolveOrigin(origin, base)

	env := base
	frames := kf.Frames
	if direction == "reverse" {
		reversed := make([]Frame, len(frames))
		for i, f := range frames {
			reversed[len(frames)-1-i] = f
		}
		frames = reversed
	}
	for _, f := range frames {
		if f.Transform == "" {
			continue
		}
		chain := ParseTransformValue(f.Transform, base)
		m := geom.Translate(ox, oy).Multiply(chain).Multiply(geom.Translate(-ox, -oy))
		env = env.Union(m.TransformBounds(base))
	}
	return geom.DeltaBetween(base, env)
}

// ParseTransformValue parses a CSS transform declaration value into a single
// matrix, composing the functions left to right. Percent translations
// resolve against the element's own bounds.
func ParseTransformValue(value string, base geom.Bounds) geom.Matrix {
	m := geom.Identity()
	for _, fn := range splitFunctions(value) {
		m = m.Multiply(buildFunction(fn.name, fn.args, base))
	}
	return m
}

type transformFunc struct {
	name string
	args []string
}

// splitFunctions tokenizes "fn(args) fn(args)" with a paren-depth counter so
// nested parentheses inside arguments survive.
func splitFunctions(value string) []transformFunc {
	var out []transformFunc
	for {
		open := strings.IndexByte(value, '(')
		if open < 0 {
			return out
		}
		name := strings.TrimSpace(value[:open])
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
			return out
		}
		args := splitArgs(value[open+1 : end-1])
		out = append(out, transformFunc{name: strings.ToLower(name), args: args})
		value = value[end:]
	}
}

func splitArgs(raw string) []string {
	var args []string
	depth := 0
	start := 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(raw[start:i]))
				start = i + 1
			}
		}
	}
	if tail := strings.TrimSpace(raw[start:]); tail != "" {
		args = append(args, tail)
	}
	return args
}

func buildFunction(name string, args []string, base geom.Bounds) geom.Matrix {
	argLen := func(i int, percentOf float64) float64 {
		if i >= len(args) {
			return 0
		}
		return parseLength(args[i], percentOf)
	}
	argAngle := func(i int) float64 {
		if i >= len(args) {
			return 0
		}
		return parseAngle(args[i])
	}
	argNum := func(i int, fallback float64) float64 {
		if i >= len(args) {
			return fallback
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(args[i]), 64)
		if err != nil {
			return fallback
		}
		return v
	}

	switch name {
	case "translate":
		tx := argLen(0, base.Width)
		ty := 0.0
		if len(args) > 1 {
			ty = argLen(1, base.Height)
		}
		return geom.Translate(tx, ty)
	case "translatex":
		return geom.Translate(argLen(0, base.Width), 0)
	case "translatey":
		return geom.Translate(0, argLen(0, base.Height))
	case "scale":
		sx := argNum(0, 1)
		sy := sx
		if len(args) > 1 {
			sy = argNum(1, 1)
		}
		return geom.Scale(sx, sy)
	case "scalex":
		return geom.Scale(argNum(0, 1), 1)
	case "scaley":
		return geom.Scale(1, argNum(0, 1))
	case "rotate":
		return geom.Rotate(argAngle(0), 0, 0)
	case "skewx":
		return geom.SkewX(argAngle(0))
	case "skewy":
		return geom.SkewY(argAngle(0))
	case "skew":
		m := geom.SkewX(argAngle(0))
		if len(args) > 1 {
			m = m.Multiply(geom.SkewY(argAngle(1)))
		}
		return m
	case "matrix":
		if len(args) >= 6 {
			return geom.Matrix{
				A: argNum(0, 1), B: argNum(1, 0), C: argNum(2, 0),
				D: argNum(3, 1), E: argNum(4, 0), F: argNum(5, 0),
			}
		}
	}
	return geom.Identity()
}

// parseLength resolves a CSS length: px and unitless pass through, percent
// resolves against percentOf. Unknown units keep their numeric prefix.
func parseLength(s string, percentOf float64) float64 {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0
		}
		return v / 100 * percentOf
	}
	s = strings.TrimSuffix(s, "px")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseAngle resolves a CSS angle to degrees.
func parseAngle(s string) float64 {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasSuffix(s, "deg"):
		v, _ := strconv.ParseFloat(strings.TrimSuffix(s, "deg"), 64)
		return v
	case strings.HasSuffix(s, "rad"):
		v, _ := strconv.ParseFloat(strings.TrimSuffix(s, "rad"), 64)
		return v * 180 / math.Pi
	case strings.HasSuffix(s, "turn"):
		v, _ := strconv.ParseFloat(strings.TrimSuffix(s, "turn"), 64)
		return v * 360
	}
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// ResolveOrigin resolves a transform-origin declaration to absolute
// coordinates. Keywords and percentages resolve against the element's own
// box. Absolute pixel origins are normally element-relative, but some
// renderers emit page coordinates; a pixel value outside the element's local
// range that still lands inside its absolute span is treated as already
// absolute rather than shifted again.
func ResolveOrigin(origin string, base geom.Bounds) (float64, float64) {
	fields := strings.Fields(origin)
	ox := base.X + base.Width/2
	oy := base.Y + base.Height/2
	if len(fields) > 0 {
		ox = resolveOriginAxis(fields[0], base.X, base.Width)
	}
	if len(fields) > 1 {
		oy = resolveOriginAxis(fields[1], base.Y, base.Height)
	} else if len(fields) == 1 {
		// Single keyword like "top" may apply to the y axis.
		switch fields[0] {
		case "top":
			ox, oy = base.X+base.Width/2, base.Y
		case "bottom":
			ox, oy = base.X+base.Width/2, base.Y+base.Height
		}
	}
	return ox, oy
}

func resolveOriginAxis(field string, start, size float64) float64 {
	switch field {
	case "left", "top":
		return start
	case "right", "bottom":
		return start + size
	case "center":
		return start + size/2
	}
	if strings.HasSuffix(field, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(field, "%"), 64)
		if err != nil {
			return start + size/2
		}
		return start + v/100*size
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(field, "px"), 64)
	if err != nil {
		return start + size/2
	}
	// Pixel-origin quirk: a value too large to be element-local but inside
	// the element's absolute span is already a page coordinate.
	if v > size && v >= start && v <= start+size {
		return v
	}
	return start + v
}
