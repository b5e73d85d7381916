package animation

import (
	"strconv"
	"strings"

	"github.com/kvattis/svgfit/internal/svgpath"
)

// AttrFrame is one keyframe of an attribute animation.
type AttrFrame struct {
	Time  float64
	Value Value
}

// AttributeAnim describes one animate element targeting a plain attribute.
// Geometric interpretation of the attribute name happens in the combiner so
// that animate and set share a single mapping table.
type AttributeAnim struct {
	Name   string
	Timing Timing
	Frames []AttrFrame
}

// AnalyzeAttribute inspects an animate element. Path-data targets ("d")
// resolve their bounds immediately; other values normalize to numbers where
// possible and raw text otherwise.
func AnalyzeAttribute(el Element) (*AttributeAnim, bool) {
	name := el.Attr("attributeName")
	if name == "" {
		return nil, false
	}

	frames := NormalizeKeyframes(el, func(raw string) (Value, bool) {
		return ParseAttributeValue(name, raw), true
	})
	if len(frames) == 0 {
		return nil, false
	}

	anim := &AttributeAnim{Name: name, Timing: ParseTiming(el)}
	for _, kf := range frames {
		anim.Frames = append(anim.Frames, AttrFrame{Time: kf.Time, Value: kf.Value})
	}
	return anim, true
}

// ParseAttributeValue normalizes one attribute value. Units such as "px" are
// stripped before the numeric parse; percentages keep their text form since
// resolving them needs the viewport.
func ParseAttributeValue(name, raw string) Value {
	raw = strings.TrimSpace(raw)
	if name == "d" {
		return Value{Kind: ValuePath, Text: raw, Extents: svgpath.Bounds(raw), HasExtents: true}
	}
	numText := strings.TrimSuffix(raw, "px")
	if v, err := strconv.ParseFloat(numText, 64); err == nil {
		return Value{Kind: ValueNumber, Numbers: []float64{v}, Text: raw}
	}
	return Value{Kind: ValueText, Text: raw}
}
