package animation

import (
	"github.com/kvattis/svgfit/internal/geom"
)

// TransformFrame is one keyframe of an animateTransform, resolved to the
// matrix it applies at that point.
type TransformFrame struct {
	Time   float64
	Matrix geom.Matrix
	Raw    string
}

// TransformAnim describes one animateTransform element.
type TransformAnim struct {
	Type     string
	Additive bool
	Timing   Timing
	Frames   []TransformFrame
}

// AnalyzeTransform inspects an animateTransform element. It returns false
// when the element has no usable keyframes.
func AnalyzeTransform(el Element) (*TransformAnim, bool) {
	transformType := el.Attr("type")
	if transformType == "" {
		transformType = "translate"
	}

	frames := NormalizeKeyframes(el, func(raw string) (Value, bool) {
		nums := geom.ParseNumberList(raw)
		kind, ok := transformValueKind(transformType)
		if !ok || len(nums) == 0 {
			return Value{}, false
		}
		return Value{Kind: kind, Numbers: nums, Text: raw}, true
	})
	if len(frames) == 0 {
		return nil, false
	}

	anim := &TransformAnim{
		Type:     transformType,
		Additive: el.Attr("additive") == "sum",
		Timing:   ParseTiming(el),
		Frames:   make([]TransformFrame, 0, len(frames)),
	}
	for _, kf := range frames {
		anim.Frames = append(anim.Frames, TransformFrame{
			Time:   kf.Time,
			Matrix: matrixForValue(kf.Value),
			Raw:    kf.Value.Text,
		})
	}
	return anim, true
}

func transformValueKind(transformType string) (ValueKind, bool) {
	switch transformType {
	case "translate":
		return ValueTranslate, true
	case "scale":
		return ValueScale, true
	case "rotate":
		return ValueRotate, true
	case "skewX":
		return ValueSkewX, true
	case "skewY":
		return ValueSkewY, true
	case "matrix":
		return ValueMatrix, true
	}
	return 0, false
}

// matrixForValue builds the affine matrix for one normalized transform
// value. Argument counts follow the animateTransform grammar: translate 1-2,
// scale 1-2 (uniform when one), rotate 1 or 3 (pivot), skew 1, matrix 6.
// Anything malformed degrades to the identity matrix.
func matrixForValue(v Value) geom.Matrix {
	n := v.Numbers
	switch v.Kind {
	case ValueTranslate:
		tx, ty := 0.0, 0.0
		if len(n) > 0 {
			tx = n[0]
		}
		if len(n) > 1 {
			ty = n[1]
		}
		return geom.Translate(tx, ty)
	case ValueScale:
		if len(n) == 1 {
			return geom.Scale(n[0], n[0])
		}
		if len(n) >= 2 {
			return geom.Scale(n[0], n[1])
		}
	case ValueRotate:
		if len(n) >= 3 {
			return geom.Rotate(n[0], n[1], n[2])
		}
		if len(n) >= 1 {
			return geom.Rotate(n[0], 0, 0)
		}
	case ValueSkewX:
		if len(n) >= 1 {
			return geom.SkewX(n[0])
		}
	case ValueSkewY:
		if len(n) >= 1 {
			return geom.SkewY(n[0])
		}
	case ValueMatrix:
		if len(n) >= 6 {
			return geom.Matrix{A: n[0], B: n[1], C: n[2], D: n[3], E: n[4], F: n[5]}
		}
	}
	return geom.Identity()
}
