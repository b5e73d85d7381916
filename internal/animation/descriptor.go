package animation

import "github.com/kvattis/svgfit/internal/geom"

// Kind discriminates the animation descriptor variants.
type Kind int

const (
	KindTransform Kind = iota
	KindAttribute
	KindMotion
	KindSet
	KindCSS
)

// Descriptor is a tagged union over the per-kind analysis results. Exactly
// the field matching Kind is set.
type Descriptor struct {
	Kind      Kind
	Transform *TransformAnim
	Attribute *AttributeAnim
	Motion    *MotionAnim
	Set       *SetAnim
	CSS       *CSSAnim
}

// CSSAnim carries the precomputed envelope expansion of a CSS @keyframes
// animation, expressed as per-side growth beyond the element's base bounds.
type CSSAnim struct {
	Name       string
	FrameCount int
	Expansion  geom.Delta
}

// Analyze dispatches on the animation element's tag and returns a
// descriptor, or false when the element contributes nothing.
func Analyze(el Element) (Descriptor, bool) {
	switch el.Tag() {
	case "animateTransform":
		if anim, ok := AnalyzeTransform(el); ok {
			return Descriptor{Kind: KindTransform, Transform: anim}, true
		}
	case "animate":
		if anim, ok := AnalyzeAttribute(el); ok {
			return Descriptor{Kind: KindAttribute, Attribute: anim}, true
		}
	case "animateMotion":
		if anim, ok := AnalyzeMotion(el); ok {
			return Descriptor{Kind: KindMotion, Motion: anim}, true
		}
	case "set":
		if anim, ok := AnalyzeSet(el); ok {
			return Descriptor{Kind: KindSet, Set: anim}, true
		}
	}
	return Descriptor{}, false
}
