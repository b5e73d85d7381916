package animation

import (
	"strconv"
	"strings"

	"github.com/kvattis/svgfit/internal/geom"
)

// Keyframe is one normalized animation value pinned to a point on the
// animation's [0,1] timeline.
type Keyframe struct {
	Time     float64
	Value    Value
	Spline   string
	CalcMode string
}

// NormalizeKeyframes turns an animation element's value attributes into an
// ordered keyframe sequence. Precedence follows SMIL: an explicit values list
// wins; otherwise from/to or from/by synthesize a two-frame sequence. A
// missing from is read as zero, which widens the envelope conservatively
// (the underlying value is unknown without a layout pass).
func NormalizeKeyframes(el Element, parse ValueParser) []Keyframe {
	raws := rawValues(el)
	if len(raws) == 0 {
		return nil
	}

	calcMode := el.Attr("calcMode")
	if calcMode == "" {
		calcMode = "linear"
	}
	times := keyframeTimes(el.Attr("keyTimes"), len(raws))
	splines := splitList(el.Attr("keySplines"))

	frames := make([]Keyframe, 0, len(raws))
	for i, raw := range raws {
		v, ok := parse(raw)
		if !ok {
			continue
		}
		kf := Keyframe{Time: times[i], Value: v, CalcMode: calcMode}
		if i > 0 && i-1 < len(splines) {
			kf.Spline = splines[i-1]
		}
		frames = append(frames, kf)
	}
	return frames
}

// rawValues resolves the raw value list for an animation element.
func rawValues(el Element) []string {
	if values := el.Attr("values"); values != "" {
		return splitList(values)
	}
	from := el.Attr("from")
	to := el.Attr("to")
	by := el.Attr("by")
	switch {
	case to != "":
		return []string{orZero(from), to}
	case by != "":
		return []string{orZero(from), addValueLists(orZero(from), by)}
	case from != "":
		return []string{from}
	}
	return nil
}

func orZero(s string) string {
	if strings.TrimSpace(s) == "" {
		return "0"
	}
	return s
}

// addValueLists computes from+by element-wise for numeric lists, padding the
// shorter list with zeros. Non-numeric operands fall back to the by value.
func addValueLists(from, by string) string {
	a := geom.ParseNumberList(from)
	b := geom.ParseNumberList(by)
	if len(a) == 0 || len(b) == 0 {
		return by
	}
	n := max(len(a), len(b))
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		var va, vb float64
		if i < len(a) {
			va = a[i]
		}
		if i < len(b) {
			vb = b[i]
		}
		parts[i] = strconv.FormatFloat(va+vb, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// keyframeTimes assigns a timeline position to each raw value. Explicit
// keyTimes win when the counts match; otherwise frames are spaced evenly.
// calcMode=paced would need a per-attribute distance metric to do better,
// so it deliberately shares the even-spacing default.
func keyframeTimes(keyTimes string, count int) []float64 {
	if keyTimes != "" {
		parts := splitList(keyTimes)
		if len(parts) == count {
			times := make([]float64, 0, count)
			ok := true
			for _, p := range parts {
				v, err := strconv.ParseFloat(p, 64)
				if err != nil || v < 0 || v > 1 {
					ok = false
					break
				}
				times = append(times, v)
			}
			if ok {
				return times
			}
		}
	}
	times := make([]float64, count)
	if count == 1 {
		return times
	}
	for i := range times {
		times[i] = float64(i) / float64(count-1)
	}
	return times
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
