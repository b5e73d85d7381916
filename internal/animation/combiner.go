package animation

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/kvattis/svgfit/internal/geom"
)

// CombineInput bundles everything the combiner needs for one element.
type CombineInput struct {
	// Base is the element's static bounds in its local coordinate space.
	Base geom.Bounds
	// BaseAttr looks up a static numeric attribute of the element, used by
	// the circle/ellipse envelope. May be nil.
	BaseAttr func(name string) (float64, bool)
	// Animations are all descriptors targeting the element.
	Animations []Descriptor
}

// geometricAttrs are attribute names whose animation moves or resizes the
// element. stroke-width is handled separately (step 5) so expansion is not
// double counted.
var geometricAttrs = map[string]struct{}{
	"x": {}, "y": {}, "width": {}, "height": {},
	"cx": {}, "cy": {}, "r": {}, "rx": {}, "ry": {},
	"d": {}, "transform": {},
}

// radialAttrs participate in the circle/ellipse joint envelope.
var radialAttrs = map[string]struct{}{
	"cx": {}, "cy": {}, "r": {}, "rx": {}, "ry": {},
}

// Combine folds every animation on one element into a single conservative
// envelope. The result always contains the base bounds.
//
// The algorithm partitions animations into geometric, stroke-width and
// non-geometric groups; additive transform animations compose
// multiplicatively at the union of their keyframe times while everything
// else is evaluated independently and unioned; circle/ellipse center/radius
// animations use an independent-extremes envelope; stroke-width expansion
// applies strictly after the geometric envelope is final.
func Combine(in CombineInput) geom.Bounds {
	var (
		additive    []*TransformAnim
		geometric   []Descriptor
		strokeMax   float64
		strokeSeen  bool
		radial      []Descriptor
		hasGeometry bool
	)

	for _, desc := range in.Animations {
		switch desc.Kind {
		case KindTransform:
			hasGeometry = true
			if desc.Transform.Additive {
				additive = append(additive, desc.Transform)
			} else {
				geometric = append(geometric, desc)
			}
		case KindMotion:
			hasGeometry = true
			geometric = append(geometric, desc)
		case KindAttribute:
			name := desc.Attribute.Name
			if name == "stroke-width" {
				if v, ok := maxNumericFrame(desc.Attribute.Frames); ok {
					strokeMax = maxOr(strokeMax, v, &strokeSeen)
				}
				continue
			}
			if _, ok := radialAttrs[name]; ok {
				hasGeometry = true
				radial = append(radial, desc)
				continue
			}
			if _, ok := geometricAttrs[name]; ok {
				hasGeometry = true
				geometric = append(geometric, desc)
			}
			// Opacity-class attributes never change geometry; their
			// contribution is the base bounds, already in the union.
		case KindSet:
			name := desc.Set.Name
			if name == "stroke-width" {
				if v, err := strconv.ParseFloat(strings.TrimSpace(desc.Set.To), 64); err == nil {
					strokeMax = maxOr(strokeMax, v, &strokeSeen)
				}
				continue
			}
			if _, ok := radialAttrs[name]; ok {
				hasGeometry = true
				radial = append(radial, desc)
				continue
			}
			if _, ok := geometricAttrs[name]; ok {
				hasGeometry = true
				geometric = append(geometric, desc)
			}
		case KindCSS:
			if !desc.CSS.Expansion.IsZero() {
				hasGeometry = true
				geometric = append(geometric, desc)
			}
		}
	}

	if !hasGeometry && !strokeSeen {
		return in.Base
	}

	env := in.Base
	if len(additive) > 0 {
		env = env.Union(additiveEnvelope(additive, in.Base))
	}
	for _, desc := range geometric {
		env = env.Union(descriptorEnvelope(desc, in.Base))
	}
	if len(radial) > 0 {
		env = env.Union(radialEnvelope(radial, in.Base, in.BaseAttr))
	}

	// Stroke expansion comes last so the pad never feeds back into the
	// geometric union.
	if strokeSeen {
		env = env.Pad(strokeMax / 2)
	}
	return env
}

// additiveEnvelope composes simultaneous additive transforms. It samples the
// union of every animation's keyframe times; at each sample each animation
// contributes its nearest keyframe at or before that time (exact match
// preferred, else the latest earlier frame, else the earliest available).
func additiveEnvelope(anims []*TransformAnim, base geom.Bounds) geom.Bounds {
	timeSet := map[float64]struct{}{}
	for _, anim := range anims {
		for _, f := range anim.Frames {
			timeSet[f.Time] = struct{}{}
		}
	}
	times := make([]float64, 0, len(timeSet))
	for t := range timeSet {
		times = append(times, t)
	}
	sort.Float64s(times)

	env := base
	for _, t := range times {
		m := geom.Identity()
		for _, anim := range anims {
			m = m.Multiply(frameAt(anim.Frames, t))
		}
		env = env.Union(m.TransformBounds(base))
	}
	return env
}

// frameAt selects the matrix an animation applies at sample time t.
func frameAt(frames []TransformFrame, t float64) geom.Matrix {
	best := -1
	for i, f := range frames {
		if f.Time == t {
			return f.Matrix
		}
		if f.Time < t && (best < 0 || f.Time > frames[best].Time) {
			best = i
		}
	}
	if best >= 0 {
		return frames[best].Matrix
	}
	if len(frames) > 0 {
		return frames[0].Matrix
	}
	return geom.Identity()
}

// descriptorEnvelope evaluates one non-additive geometric animation against
// the base bounds.
func descriptorEnvelope(desc Descriptor, base geom.Bounds) geom.Bounds {
	env := base
	switch desc.Kind {
	case KindTransform:
		for _, f := range desc.Transform.Frames {
			env = env.Union(f.Matrix.TransformBounds(base))
		}
	case KindMotion:
		// The element's box sweeps along the path: offset the base by the
		// motion extents on each side.
		m := desc.Motion.Expanded
		swept := geom.FromExtents(
			base.MinX()+m.MinX(), base.MinY()+m.MinY(),
			base.MaxX()+m.MaxX(), base.MaxY()+m.MaxY(),
		)
		env = env.Union(swept)
	case KindAttribute:
		for _, f := range desc.Attribute.Frames {
			env = env.Union(applyAttrValue(base, desc.Attribute.Name, f.Value))
		}
	case KindSet:
		v := ParseAttributeValue(desc.Set.Name, desc.Set.To)
		env = env.Union(applyAttrValue(base, desc.Set.Name, v))
	case KindCSS:
		env = env.Union(desc.CSS.Expansion.Apply(base))
	}
	return env
}

// applyAttrValue maps one animated attribute value onto the base box. This
// is the shared attribute-to-bounds table for animate and set.
func applyAttrValue(base geom.Bounds, name string, v Value) geom.Bounds {
	if v.Kind == ValuePath && v.HasExtents {
		return geom.FromExtents(v.Extents.MinX, v.Extents.MinY, v.Extents.MaxX, v.Extents.MaxY)
	}
	if name == "transform" {
		return geom.ParseTransformList(v.Text).TransformBounds(base)
	}
	if v.Kind != ValueNumber {
		return base
	}
	n := v.Number()
	cx := base.X + base.Width/2
	cy := base.Y + base.Height/2
	switch name {
	case "x":
		return geom.Bounds{X: n, Y: base.Y, Width: base.Width, Height: base.Height}
	case "y":
		return geom.Bounds{X: base.X, Y: n, Width: base.Width, Height: base.Height}
	case "width":
		return geom.Bounds{X: base.X, Y: base.Y, Width: n, Height: base.Height}
	case "height":
		return geom.Bounds{X: base.X, Y: base.Y, Width: base.Width, Height: n}
	case "cx":
		return geom.Bounds{X: n - base.Width/2, Y: base.Y, Width: base.Width, Height: base.Height}
	case "cy":
		return geom.Bounds{X: base.X, Y: n - base.Height/2, Width: base.Width, Height: base.Height}
	case "r":
		return geom.Bounds{X: cx - n, Y: cy - n, Width: 2 * n, Height: 2 * n}
	case "rx":
		return geom.Bounds{X: cx - n, Y: base.Y, Width: 2 * n, Height: base.Height}
	case "ry":
		return geom.Bounds{X: base.X, Y: cy - n, Width: base.Width, Height: 2 * n}
	}
	return base
}

// radialEnvelope computes the circle/ellipse envelope from the set of every
// distinct value each center/radius property can take: base value plus every
// keyframe and set value. Extremes per property combine independently
// (min(cx)-max(r) .. max(cx)+max(r)), which over-covers when properties are
// correlated by keyframe; that trade is deliberate.
func radialEnvelope(descs []Descriptor, base geom.Bounds, baseAttr func(string) (float64, bool)) geom.Bounds {
	values := map[string][]float64{}
	record := func(name string, v float64) {
		values[name] = append(values[name], v)
	}

	// Seed with the element's static values; centers fall back to the box
	// center when unset. The r property is only seeded when actually present
	// so an ellipse's envelope is not inflated by a phantom circle radius.
	seedStatic := func(name string) bool {
		if baseAttr != nil {
			if v, ok := baseAttr(name); ok {
				record(name, v)
				return true
			}
		}
		return false
	}
	if !seedStatic("cx") {
		record("cx", base.X+base.Width/2)
	}
	if !seedStatic("cy") {
		record("cy", base.Y+base.Height/2)
	}
	seedStatic("r")
	if !seedStatic("rx") {
		record("rx", base.Width/2)
	}
	if !seedStatic("ry") {
		record("ry", base.Height/2)
	}

	for _, desc := range descs {
		switch desc.Kind {
		case KindAttribute:
			for _, f := range desc.Attribute.Frames {
				if f.Value.Kind == ValueNumber {
					record(desc.Attribute.Name, f.Value.Number())
				}
			}
		case KindSet:
			if v, err := strconv.ParseFloat(strings.TrimSpace(desc.Set.To), 64); err == nil {
				record(desc.Set.Name, v)
			}
		}
	}

	maxRadiusX := max(maxOf(values["r"]), maxOf(values["rx"]))
	maxRadiusY := max(maxOf(values["r"]), maxOf(values["ry"]))
	minX := minOf(values["cx"]) - maxRadiusX
	maxX := maxOf(values["cx"]) + maxRadiusX
	minY := minOf(values["cy"]) - maxRadiusY
	maxY := maxOf(values["cy"]) + maxRadiusY
	return geom.FromExtents(minX, minY, maxX, maxY)
}

// HiddenFromStart reports whether a set forces the element invisible at time
// zero with nothing else restoring visibility, in which case the element is
// excluded from the document union entirely.
func HiddenFromStart(descs []Descriptor) bool {
	hidden := false
	for _, desc := range descs {
		if desc.Kind != KindSet {
			continue
		}
		s := desc.Set
		to := strings.TrimSpace(s.To)
		if s.BeginMS == 0 && !s.EventBased &&
			((s.Name == "display" && to == "none") || (s.Name == "visibility" && to == "hidden")) {
			hidden = true
		}
	}
	if !hidden {
		return false
	}
	for _, desc := range descs {
		switch desc.Kind {
		case KindSet:
			to := strings.TrimSpace(desc.Set.To)
			if (desc.Set.Name == "display" && to != "none") ||
				(desc.Set.Name == "visibility" && to == "visible") {
				return false
			}
		case KindAttribute:
			if desc.Attribute.Name == "display" || desc.Attribute.Name == "visibility" {
				return false
			}
		}
	}
	return true
}

func maxNumericFrame(frames []AttrFrame) (float64, bool) {
	best := 0.0
	seen := false
	for _, f := range frames {
		if f.Value.Kind != ValueNumber {
			continue
		}
		v := f.Value.Number()
		if !seen || v > best {
			best = v
			seen = true
		}
	}
	return best, seen
}

func maxOr(current, candidate float64, seen *bool) float64 {
	if !*seen {
		*seen = true
		return candidate
	}
	return max(current, candidate)
}

func minOf(vs []float64) float64 {
	out := math.Inf(1)
	for _, v := range vs {
		out = min(out, v)
	}
	return out
}

func maxOf(vs []float64) float64 {
	out := math.Inf(-1)
	for _, v := range vs {
		out = max(out, v)
	}
	return out
}
