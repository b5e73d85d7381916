// Package cssanim extracts @keyframes blocks from stylesheet text and
// computes the bounds envelope a CSS transform animation can reach.
package cssanim

import (
	"strconv"
	"strings"
)

// Frame is one keyframe of an @keyframes rule.
type Frame struct {
	// At is the keyframe position on [0,1].
	At float64
	// Transform is the raw transform declaration value, or "".
	Transform string
}

// Keyframes is one parsed @keyframes rule.
type Keyframes struct {
	Name   string
	Frames []Frame
}

// ParseStylesheet scans raw CSS text for @keyframes rules. The scanner
// tolerates nested braces and ignores everything that is not a keyframes
// rule; malformed blocks are skipped rather than failing the sheet.
func ParseStylesheet(css string) map[string]Keyframes {
	out := map[string]Keyframes{}
	s := scanner{input: css}
	for {
		idx := strings.Index(s.rest(), "@keyframes")
		if idx < 0 {
			return out
		}
		s.pos += idx + len("@keyframes")
		s.consumeWhitespace()
		name := s.consumeIdent()
		s.consumeWhitespace()
		if s.eof() || s.current() != '{' {
			continue
		}
		body, ok := s.consumeBlock()
		if !ok {
			return out
		}
		kf := Keyframes{Name: name, Frames: parseFrames(body)}
		if name != "" && len(kf.Frames) > 0 {
			out[name] = kf
		}
	}
}

// parseFrames splits a keyframes body into selector{declarations} entries.
func parseFrames(body string) []Frame {
	var frames []Frame
	s := scanner{input: body}
	for {
		s.consumeWhitespace()
		if s.eof() {
			return frames
		}
		selector := s.consumeUntil('{')
		if s.eof() {
			return frames
		}
		block, ok := s.consumeBlock()
		if !ok {
			return frames
		}
		transform := declarationValue(block, "transform")
		for _, at := range parseSelectorTimes(selector) {
			frames = append(frames, Frame{At: at, Transform: transform})
		}
	}
}

// parseSelectorTimes maps "from", "to" and percentage selectors (possibly
// comma separated) to [0,1] positions.
func parseSelectorTimes(selector string) []float64 {
	var times []float64
	for _, part := range strings.Split(selector, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "from":
			times = append(times, 0)
		case part == "to":
			times = append(times, 1)
		case strings.HasSuffix(part, "%"):
			if v, err := strconv.ParseFloat(strings.TrimSuffix(part, "%"), 64); err == nil {
				times = append(times, v/100)
			}
		}
	}
	return times
}

// declarationValue pulls one property value out of a declaration block,
// respecting parenthesized values that contain semicolon-free commas.
func declarationValue(block, property string) string {
	for _, decl := range strings.Split(block, ";") {
		name, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		if strings.TrimSpace(name) == property {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// scanner is a minimal position-tracking text scanner.
type scanner struct {
	input string
	pos   int
}

func (s *scanner) eof() bool     { return s.pos >= len(s.input) }
func (s *scanner) current() byte { return s.input[s.pos] }
func (s *scanner) rest() string  { return s.input[s.pos:] }

func (s *scanner) consumeWhitespace() {
	for !s.eof() {
		switch s.current() {
		case ' ', '\t', '\n', '\r':
			s.pos++
		default:
			return
		}
	}
}

func (s *scanner) consumeIdent() string {
	start := s.pos
	for !s.eof() {
		c := s.current()
		if c == '{' || c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			break
		}
		s.pos++
	}
	return strings.TrimSpace(s.input[start:s.pos])
}

func (s *scanner) consumeUntil(stop byte) string {
	start := s.pos
	for !s.eof() && s.current() != stop {
		s.pos++
	}
	return s.input[start:s.pos]
}

// consumeBlock reads a brace-delimited block starting at the current '{',
// returning its inner text. Nested braces are balanced.
func (s *scanner) consumeBlock() (string, bool) {
	if s.eof() || s.current() != '{' {
		return "", false
	}
	s.pos++
	start := s.pos
	depth := 1
	for !s.eof() {
		switch s.current() {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				body := s.input[start:s.pos]
				s.pos++
				return body, true
			}
		}
		s.pos++
	}
	return "", false
}
