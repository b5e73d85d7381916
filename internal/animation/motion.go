package animation

import (
	"math"
	"strconv"
	"strings"

	"github.com/kvattis/svgfit/internal/geom"
	"github.com/kvattis/svgfit/internal/svgpath"
)

// motionRotationPad is the per-side pad applied for fixed-angle rotation on
// a motion path. Exact expansion needs the element's own geometry, which the
// analyzer does not model; this is a small flat buffer instead.
const motionRotationPad = 5.0

// MotionAnim describes one animateMotion element.
type MotionAnim struct {
	Timing Timing
	Rotate string
	// Bounds covers every point of the motion path.
	Bounds geom.Bounds
	// Expanded is Bounds plus the rotation buffer.
	Expanded geom.Bounds
}

// AnalyzeMotion resolves the motion path of an animateMotion element, in
// precedence order: the path attribute, the values coordinate list, a child
// mpath reference, then from/to/by synthesis. Returns false when no path
// resolves.
func AnalyzeMotion(el Element) (*MotionAnim, bool) {
	ext, ok := motionExtents(el)
	if !ok {
		return nil, false
	}

	bounds := geom.FromExtents(ext.MinX, ext.MinY, ext.MaxX, ext.MaxY)
	rotate := el.Attr("rotate")
	return &MotionAnim{
		Timing:   ParseTiming(el),
		Rotate:   rotate,
		Bounds:   bounds,
		Expanded: bounds.Pad(rotationPad(rotate)),
	}, true
}

func motionExtents(el Element) (svgpath.Extents, bool) {
	if path := el.Attr("path"); path != "" {
		cmds := svgpath.Parse(path)
		if len(cmds) > 0 {
			return svgpath.CommandBounds(cmds), true
		}
	}
	if values := el.Attr("values"); values != "" {
		if ext, ok := svgpath.MotionValuesBounds(values); ok {
			return ext, true
		}
	}
	if d, ok := resolveMPath(el); ok {
		cmds := svgpath.Parse(d)
		if len(cmds) > 0 {
			return svgpath.CommandBounds(cmds), true
		}
	}
	// from/to/by pairs describe a straight segment.
	pairs := make([]string, 0, 2)
	for _, attr := range []string{"from", "to"} {
		if v := el.Attr(attr); v != "" {
			pairs = append(pairs, v)
		}
	}
	if by := el.Attr("by"); by != "" && len(pairs) == 1 {
		pairs = append(pairs, addValueLists(pairs[0], by))
	}
	if len(pairs) >= 2 {
		if ext, ok := svgpath.MotionValuesBounds(strings.Join(pairs, ";")); ok {
			return ext, true
		}
	}
	return svgpath.Extents{}, false
}

// resolveMPath follows a child mpath element's href to the referenced path's
// d attribute.
func resolveMPath(el Element) (string, bool) {
	for _, child := range el.Children() {
		if child.Tag() != "mpath" {
			continue
		}
		href := child.Attr("href")
		if href == "" {
			href = child.Attr("xlink:href")
		}
		id := strings.TrimPrefix(strings.TrimSpace(href), "#")
		if id == "" {
			continue
		}
		target, ok := el.ByID(id)
		if !ok {
			continue
		}
		if d := target.Attr("d"); d != "" {
			return d, true
		}
	}
	return "", false
}

// rotationPad returns the per-side expansion for the rotate attribute.
// auto and auto-reverse contribute nothing (documented under-approximation);
// a fixed angle gets |sin|*pad + |cos|*pad.
func rotationPad(rotate string) float64 {
	rotate = strings.TrimSpace(rotate)
	if rotate == "" || rotate == "auto" || rotate == "auto-reverse" {
		return 0
	}
	deg, err := strconv.ParseFloat(rotate, 64)
	if err != nil {
		return 0
	}
	rad := deg * math.Pi / 180
	return math.Abs(math.Sin(rad))*motionRotationPad + math.Abs(math.Cos(rad))*motionRotationPad
}
