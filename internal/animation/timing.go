package animation

import (
	"math"
	"strconv"
	"strings"
)

// Timing captures the normalized schedule of one animation element.
// Durations and offsets are in milliseconds; "indefinite" maps to +Inf.
type Timing struct {
	Duration    float64
	RepeatCount float64
	BeginMS     float64
	// EventBased marks begins that were event or syncbase references. Those
	// are normalized to BeginMS = 0 ("could start immediately"); the flag is
	// diagnostic only.
	EventBased bool
	EndMS      float64
	HasEnd     bool
}

// ParseTiming reads dur, repeatCount, begin and end from an animation
// element. Missing or malformed attributes fall back to conservative
// defaults: zero begin, indefinite-safe duration handling.
func ParseTiming(el Element) Timing {
	t := Timing{RepeatCount: 1}

	if dur := el.Attr("dur"); dur != "" {
		if ms, ok := ParseClock(dur); ok {
			t.Duration = ms
		}
	}
	if rep := el.Attr("repeatCount"); rep != "" {
		if rep == "indefinite" {
			t.RepeatCount = math.Inf(1)
		} else if v, err := strconv.ParseFloat(rep, 64); err == nil && v > 0 {
			t.RepeatCount = v
		}
	}
	if el.Attr("repeatDur") == "indefinite" {
		t.RepeatCount = math.Inf(1)
	}
	t.BeginMS, t.EventBased = parseBegin(el.Attr("begin"))
	if end := el.Attr("end"); end != "" && end != "indefinite" {
		if ms, ok := ParseClock(end); ok {
			t.EndMS = ms
			t.HasEnd = true
		}
	}
	return t
}

// ParseClock parses a SMIL clock value ("2s", "150ms", "2.5", "indefinite")
// into milliseconds. Unadorned numbers are seconds per the SMIL grammar.
func ParseClock(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if s == "indefinite" {
		return math.Inf(1), true
	}
	switch {
	case strings.HasSuffix(s, "ms"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "ms"), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	case strings.HasSuffix(s, "s"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "s"), 64)
		if err != nil {
			return 0, false
		}
		return v * 1000, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v * 1000, true
}

// parseBegin normalizes a begin attribute. Offset clock values resolve to
// their offset; event names, syncbase references (id.begin/id.end) and
// "indefinite" all normalize to zero with the event flag set, which
// over-approximates to "may start at time zero".
func parseBegin(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// A begin list means the earliest entry wins; any unparseable entry
	// forces the conservative zero.
	if idx := strings.Index(s, ";"); idx >= 0 {
		earliest := math.Inf(1)
		event := false
		for _, part := range strings.Split(s, ";") {
			ms, ev := parseBegin(part)
			if ev {
				event = true
			}
			earliest = math.Min(earliest, ms)
		}
		if math.IsInf(earliest, 1) {
			earliest = 0
		}
		return earliest, event
	}
	if s == "indefinite" || strings.Contains(s, ".") && !isClockLike(s) {
		return 0, true
	}
	if ms, ok := ParseClock(s); ok && !math.IsInf(ms, 1) {
		return ms, false
	}
	return 0, true
}

// isClockLike reports whether s looks like a plain clock value rather than a
// syncbase reference, which also contains a dot ("id.begin+1s").
func isClockLike(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != '-' && r != '+' && r != 's' && r != 'm' {
			return false
		}
	}
	return true
}
