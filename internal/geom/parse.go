package geom

import (
	"strconv"
	"strings"
)

// ParseTransformList parses an SVG transform attribute such as
// "translate(10 20) rotate(45, 50, 50)" into a single matrix. Functions are
// composed left to right. Unknown functions and malformed argument lists
// contribute the identity matrix.
func ParseTransformList(text string) Matrix {
	m := Identity()
	for {
		n, name, args := NextTransformFunc(text)
		if name == "" {
			break
		}
		m = m.Multiply(BuildTransform(name, args))
		text = text[n:]
	}
	return m
}

// NextTransformFunc scans the leading transform function from text, returning
// the number of bytes consumed, the function name, and its numeric arguments.
// An empty name means no further function was found.
func NextTransformFunc(text string) (int, string, []float64) {
	open := strings.Index(text, "(")
	closing := strings.Index(text, ")")
	if open < 0 || closing < 0 || closing < open {
		return 0, "", nil
	}
	name := strings.TrimSpace(text[:open])
	args := ParseNumberList(text[open+1 : closing])
	return closing + 1, name, args
}

// BuildTransform constructs the matrix for one transform function.
func BuildTransform(name string, args []float64) Matrix {
	switch strings.ToLower(name) {
	case "translate":
		tx, ty := 0.0, 0.0
		if len(args) > 0 {
			tx = args[0]
		}
		if len(args) > 1 {
			ty = args[1]
		}
		return Translate(tx, ty)
	case "scale":
		if len(args) == 1 {
			return Scale(args[0], args[0])
		}
		if len(args) >= 2 {
			return Scale(args[0], args[1])
		}
	case "rotate":
		if len(args) >= 3 {
			return Rotate(args[0], args[1], args[2])
		}
		if len(args) >= 1 {
			return Rotate(args[0], 0, 0)
		}
	case "skewx":
		if len(args) >= 1 {
			return SkewX(args[0])
		}
	case "skewy":
		if len(args) >= 1 {
			return SkewY(args[0])
		}
	case "matrix":
		if len(args) >= 6 {
			return Matrix{A: args[0], B: args[1], C: args[2], D: args[3], E: args[4], F: args[5]}
		}
	}
	return Identity()
}

// ParseNumberList splits a whitespace or comma separated list of numbers.
// Tokens that fail to parse are skipped.
func ParseNumberList(text string) []float64 {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
