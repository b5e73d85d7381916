// Package svgpath parses SVG path data and computes tight axis-aligned
// bounding boxes, including true cubic and quadratic Bezier extrema.
package svgpath

import (
	"strconv"
	"strings"
)

// Op identifies a path command kind.
type Op int

const (
	MoveTo Op = iota
	LineTo
	HLineTo
	VLineTo
	CubicTo
	SmoothCubicTo
	QuadTo
	SmoothQuadTo
	ArcTo
	ClosePath
)

// Command is a single parsed path command with its numeric arguments.
type Command struct {
	Op       Op
	Args     []float64
	Relative bool
}

// arity maps a command to its argument count per repetition.
var arity = map[Op]int{
	MoveTo:        2,
	LineTo:        2,
	HLineTo:       1,
	VLineTo:       1,
	CubicTo:       6,
	SmoothCubicTo: 4,
	QuadTo:        4,
	SmoothQuadTo:  2,
	ArcTo:         7,
	ClosePath:     0,
}

func opFor(letter byte) (Op, bool) {
	switch letter {
	case 'M', 'm':
		return MoveTo, true
	case 'L', 'l':
		return LineTo, true
	case 'H', 'h':
		return HLineTo, true
	case 'V', 'v':
		return VLineTo, true
	case 'C', 'c':
		return CubicTo, true
	case 'S', 's':
		return SmoothCubicTo, true
	case 'Q', 'q':
		return QuadTo, true
	case 'T', 't':
		return SmoothQuadTo, true
	case 'A', 'a':
		return ArcTo, true
	case 'Z', 'z':
		return ClosePath, true
	}
	return 0, false
}

// Parse tokenizes SVG path data into commands. It handles scientific
// notation, comma or whitespace separators, and implicit command repetition
// (extra coordinate pairs after a command repeat it; extra pairs after a
// MoveTo become LineTo per the SVG grammar). Malformed input yields whatever
// commands parsed cleanly before the bad token; empty input yields nil.
func Parse(data string) []Command {
	var cmds []Command
	s := scanner{text: data}
	for {
		s.skipSeparators()
		if s.done() {
			return cmds
		}
		letter := s.peek()
		var op Op
		var relative bool
		if o, ok := opFor(letter); ok {
			op = o
			relative = letter >= 'a'
			s.pos++
		} else if len(cmds) > 0 {
			// No command letter: repeat the previous command. A repeated
			// MoveTo degrades to LineTo.
			prev := cmds[len(cmds)-1]
			op = prev.Op
			relative = prev.Relative
			if op == MoveTo {
				op = LineTo
			}
			if op == ClosePath {
				return cmds
			}
		} else {
			return cmds
		}

		n := arity[op]
		if n == 0 {
			cmds = append(cmds, Command{Op: op, Relative: relative})
			continue
		}
		args := make([]float64, 0, n)
		ok := true
		for i := 0; i < n; i++ {
			var v float64
			var parsed bool
			if op == ArcTo && (i == 3 || i == 4) {
				v, parsed = s.nextFlag()
			} else {
				v, parsed = s.nextNumber()
			}
			if !parsed {
				ok = false
				break
			}
			args = append(args, v)
		}
		if !ok {
			return cmds
		}
		cmds = append(cmds, Command{Op: op, Args: args, Relative: relative})
	}
}

type scanner struct {
	text string
	pos  int
}

func (s *scanner) done() bool { return s.pos >= len(s.text) }

func (s *scanner) peek() byte { return s.text[s.pos] }

func (s *scanner) skipSeparators() {
	for !s.done() {
		switch s.peek() {
		case ' ', '\t', '\n', '\r', ',':
			s.pos++
		default:
			return
		}
	}
}

// nextNumber scans one numeric literal, including sign, decimal point and
// exponent. SVG allows "1.5.5" to mean two numbers (1.5 and .5), so a second
// decimal point ends the token.
func (s *scanner) nextNumber() (float64, bool) {
	s.skipSeparators()
	start := s.pos
	seenDot := false
	seenExp := false
	for !s.done() {
		c := s.peek()
		switch {
		case c >= '0' && c <= '9':
			s.pos++
		case c == '.':
			if seenDot {
				goto parse
			}
			seenDot = true
			s.pos++
		case c == 'e' || c == 'E':
			if seenExp {
				goto parse
			}
			seenExp = true
			s.pos++
			if !s.done() && (s.peek() == '+' || s.peek() == '-') {
				s.pos++
			}
		case (c == '+' || c == '-') && s.pos == start:
			s.pos++
		default:
			goto parse
		}
	}
parse:
	token := s.text[start:s.pos]
	if token == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// nextFlag scans an arc flag. The grammar makes largeArc and sweep single
// characters, so they may run together with the next number ("0150,0" reads
// as 0 1 50,0); a flag token is exactly one 0 or 1.
func (s *scanner) nextFlag() (float64, bool) {
	s.skipSeparators()
	if s.done() {
		return 0, false
	}
	switch s.peek() {
	case '0':
		s.pos++
		return 0, true
	case '1':
		s.pos++
		return 1, true
	}
	return 0, false
}

// MotionValuesBounds parses an animateMotion values list ("x,y; x,y; ...")
// and returns the extents of all listed points. SMIL treats these as a
// piecewise-linear path, so the points alone bound it exactly.
func MotionValuesBounds(values string) (Extents, bool) {
	var acc Extents
	seen := false
	for _, part := range strings.Split(values, ";") {
		fields := strings.FieldsFunc(strings.TrimSpace(part), func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(fields) < 2 {
			continue
		}
		x, errX := strconv.ParseFloat(fields[0], 64)
		y, errY := strconv.ParseFloat(fields[1], 64)
		if errX != nil || errY != nil {
			continue
		}
		if !seen {
			acc = Extents{MinX: x, MaxX: x, MinY: y, MaxY: y}
			seen = true
			continue
		}
		acc.add(x, y)
	}
	return acc, seen
}
