package document

import (
	"strings"

	"github.com/kvattis/svgfit/internal/geom"
	"github.com/kvattis/svgfit/internal/svgpath"
)

// Text metrics are not modeled; a character advance of 0.6em and one em of
// height approximate the glyph box.
const (
	defaultFontSize  = 16.0
	textAdvanceRatio = 0.6
)

// IntrinsicBounds computes the element's untransformed geometry per SVG
// primitive semantics. It reports false for elements with no intrinsic
// geometry of their own.
func (e Element) IntrinsicBounds() (geom.Bounds, bool) {
	return e.intrinsicBounds(map[string]struct{}{})
}

// visited carries the id chain of the current use/symbol resolution branch.
// Each recursive call copies it so sibling branches keep independent cycle
// histories.
func (e Element) intrinsicBounds(visited map[string]struct{}) (geom.Bounds, bool) {
	switch e.Tag() {
	case "rect", "image", "foreignObject":
		w := e.FloatAttrOr("width", 0)
		h := e.FloatAttrOr("height", 0)
		if w <= 0 || h <= 0 {
			return geom.Bounds{}, false
		}
		return geom.Bounds{
			X: e.FloatAttrOr("x", 0), Y: e.FloatAttrOr("y", 0),
			Width: w, Height: h,
		}, true

	case "circle":
		r := e.FloatAttrOr("r", 0)
		if r <= 0 {
			return geom.Bounds{}, false
		}
		cx := e.FloatAttrOr("cx", 0)
		cy := e.FloatAttrOr("cy", 0)
		return geom.Bounds{X: cx - r, Y: cy - r, Width: 2 * r, Height: 2 * r}, true

	case "ellipse":
		rx := e.FloatAttrOr("rx", 0)
		ry := e.FloatAttrOr("ry", 0)
		if rx <= 0 || ry <= 0 {
			return geom.Bounds{}, false
		}
		cx := e.FloatAttrOr("cx", 0)
		cy := e.FloatAttrOr("cy", 0)
		return geom.Bounds{X: cx - rx, Y: cy - ry, Width: 2 * rx, Height: 2 * ry}, true

	case "line":
		x1 := e.FloatAttrOr("x1", 0)
		y1 := e.FloatAttrOr("y1", 0)
		x2 := e.FloatAttrOr("x2", 0)
		y2 := e.FloatAttrOr("y2", 0)
		return geom.FromExtents(min(x1, x2), min(y1, y2), max(x1, x2), max(y1, y2)), true

	case "polyline", "polygon":
		nums := geom.ParseNumberList(e.Attr("points"))
		if len(nums) < 2 {
			return geom.Bounds{}, false
		}
		var acc geom.Accumulator
		for i := 0; i+1 < len(nums); i += 2 {
			acc.Add(geom.Bounds{X: nums[i], Y: nums[i+1]})
		}
		b, _ := acc.Result()
		return b, true

	case "path":
		d := e.Attr("d")
		cmds := svgpath.Parse(d)
		if len(cmds) == 0 {
			return geom.Bounds{}, false
		}
		ext := svgpath.CommandBounds(cmds)
		return geom.FromExtents(ext.MinX, ext.MinY, ext.MaxX, ext.MaxY), true

	case "text", "tspan":
		return e.textBounds()

	case "use":
		return e.useBounds(visited)

	case "g", "svg", "a", "switch", "symbol":
		var acc geom.Accumulator
		for _, child := range e.ChildElements() {
			if b, ok := child.intrinsicBounds(copyVisited(visited)); ok {
				local := b
				if t := child.Attr("transform"); t != "" {
					local = geom.ParseTransformList(t).TransformBounds(b)
				}
				acc.Add(local)
			}
		}
		return acc.Result()
	}
	return geom.Bounds{}, false
}

// textBounds approximates a text box from the anchor point, the font size
// and the character count. The baseline anchor means the box extends one em
// upward from y.
func (e Element) textBounds() (geom.Bounds, bool) {
	content := strings.TrimSpace(e.Text())
	for _, child := range e.ChildElements() {
		if child.Tag() == "tspan" {
			content += strings.TrimSpace(child.Text())
		}
	}
	if content == "" {
		return geom.Bounds{}, false
	}
	size := defaultFontSize
	if raw := e.StyleProperty("font-size"); raw != "" {
		if v, ok := parseFontSize(raw); ok {
			size = v
		}
	}
	x := e.FloatAttrOr("x", 0)
	y := e.FloatAttrOr("y", 0)
	width := float64(len([]rune(content))) * size * textAdvanceRatio
	return geom.Bounds{X: x, Y: y - size, Width: width, Height: size * 1.2}, true
}

func parseFontSize(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	for _, suffix := range []string{"px", "pt"} {
		raw = strings.TrimSuffix(raw, suffix)
	}
	nums := geom.ParseNumberList(raw)
	if len(nums) == 0 {
		return 0, false
	}
	return nums[0], true
}

// useBounds resolves a use element's geometry from its href target, shifted
// by the x/y attributes. Reference cycles truncate the recursion and
// contribute nothing further.
func (e Element) useBounds(visited map[string]struct{}) (geom.Bounds, bool) {
	id, ok := e.Href()
	if !ok {
		return geom.Bounds{}, false
	}
	if _, seen := visited[id]; seen {
		return geom.Bounds{}, false
	}
	target, ok := e.doc.ByID(id)
	if !ok {
		return geom.Bounds{}, false
	}
	branch := copyVisited(visited)
	branch[id] = struct{}{}
	b, ok := target.intrinsicBounds(branch)
	if !ok {
		return geom.Bounds{}, false
	}
	if t := target.Attr("transform"); t != "" {
		b = geom.ParseTransformList(t).TransformBounds(b)
	}
	return b.Translate(e.FloatAttrOr("x", 0), e.FloatAttrOr("y", 0)), true
}

func copyVisited(visited map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(visited)+1)
	for k := range visited {
		out[k] = struct{}{}
	}
	return out
}
