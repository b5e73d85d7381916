package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvattis/svgfit/internal/document"
	"github.com/kvattis/svgfit/internal/geom"
)

type fakeNode struct {
	tag      string
	attrs    map[string]string
	children []*fakeNode
	index    map[string]*fakeNode
}

func (f *fakeNode) Tag() string { return f.tag }

func (f *fakeNode) Attr(name string) string { return f.attrs[name] }

func (f *fakeNode) Children() []document.Node {
	out := make([]document.Node, 0, len(f.children))
	for _, c := range f.children {
		out = append(out, c)
	}
	return out
}

func (f *fakeNode) ByID(id string) (document.Node, bool) {
	n, ok := f.index[id]
	if !ok {
		return nil, false
	}
	return n, true
}

func node(tag string, attrs map[string]string, children ...*fakeNode) *fakeNode {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &fakeNode{tag: tag, attrs: attrs, children: children}
}

func styleMap(m map[string]string) StyleLookup {
	return func(property string) string { return m[property] }
}

func TestAnalyzeNoEffects(t *testing.T) {
	exp := Analyze(node("rect", nil), styleMap(map[string]string{}))
	assert.True(t, exp.IsZero())

	exp = Analyze(node("rect", nil), styleMap(map[string]string{"filter": "none"}))
	assert.True(t, exp.IsZero())
}

func TestAnalyzeMaskAndClip(t *testing.T) {
	exp := Analyze(node("rect", nil), styleMap(map[string]string{"mask": "url(#m)"}))
	assert.True(t, exp.PreserveFull)
	assert.False(t, exp.HasFilter)

	exp = Analyze(node("rect", nil), styleMap(map[string]string{"clip-path": "url(#c)"}))
	assert.True(t, exp.PreserveFull)
}

func TestFilterRegionDefaults(t *testing.T) {
	el := node("rect", nil)
	el.index = map[string]*fakeNode{"f": node("filter", nil)}

	exp := Analyze(el, styleMap(map[string]string{"filter": "url(#f)"}))
	require.True(t, exp.HasFilter)
	// Default region -10%,-10%,120%,120% grows 10% on every side.
	assert.InDelta(t, 0.10, exp.Left, 1e-9)
	assert.InDelta(t, 0.10, exp.Top, 1e-9)
	assert.InDelta(t, 0.10, exp.Right, 1e-9)
	assert.InDelta(t, 0.10, exp.Bottom, 1e-9)
	assert.False(t, exp.Pixel)
}

func TestFilterRegionExplicit(t *testing.T) {
	el := node("rect", nil)
	el.index = map[string]*fakeNode{
		"f": node("filter", map[string]string{
			"x": "-20%", "y": "-20%", "width": "140%", "height": "140%",
		}),
	}
	exp := Analyze(el, styleMap(map[string]string{"filter": "url(#f)"}))
	assert.InDelta(t, 0.20, exp.Left, 1e-9)
	assert.InDelta(t, 0.20, exp.Right, 1e-9)
	assert.InDelta(t, 0.20, exp.Top, 1e-9)
	assert.InDelta(t, 0.20, exp.Bottom, 1e-9)
}

func TestFilterPrimitivesWinOverRegion(t *testing.T) {
	blur := node("feGaussianBlur", map[string]string{"stdDeviation": "4"})
	el := node("rect", nil)
	el.index = map[string]*fakeNode{"f": node("filter", nil, blur)}

	exp := Analyze(el, styleMap(map[string]string{"filter": "url(#f)"}))
	assert.True(t, exp.Pixel)
	assert.InDelta(t, 12.0, exp.Left, 1e-9)
	assert.InDelta(t, 12.0, exp.Bottom, 1e-9)
}

func TestFilterPrimitivesAccumulate(t *testing.T) {
	blur := node("feGaussianBlur", map[string]string{"stdDeviation": "2"})
	offset := node("feOffset", map[string]string{"dx": "5", "dy": "-3"})
	el := node("rect", nil)
	el.index = map[string]*fakeNode{"f": node("filter", nil, blur, offset)}

	exp := Analyze(el, styleMap(map[string]string{"filter": "url(#f)"}))
	assert.InDelta(t, 6.0, exp.Left, 1e-9)
	assert.InDelta(t, 11.0, exp.Right, 1e-9)
	assert.InDelta(t, 9.0, exp.Top, 1e-9)
	assert.InDelta(t, 6.0, exp.Bottom, 1e-9)
}

func TestFilterDropShadow(t *testing.T) {
	shadow := node("feDropShadow", map[string]string{
		"dx": "4", "dy": "4", "stdDeviation": "2",
	})
	el := node("rect", nil)
	el.index = map[string]*fakeNode{"f": node("filter", nil, shadow)}

	exp := Analyze(el, styleMap(map[string]string{"filter": "url(#f)"}))
	assert.InDelta(t, 6.0, exp.Left, 1e-9)
	assert.InDelta(t, 10.0, exp.Right, 1e-9)
	assert.InDelta(t, 6.0, exp.Top, 1e-9)
	assert.InDelta(t, 10.0, exp.Bottom, 1e-9)
}

func TestFilterMorphologyDilate(t *testing.T) {
	dilate := node("feMorphology", map[string]string{"operator": "dilate", "radius": "3"})
	erode := node("feMorphology", map[string]string{"operator": "erode", "radius": "3"})
	el := node("rect", nil)
	el.index = map[string]*fakeNode{"f": node("filter", nil, dilate, erode)}

	exp := Analyze(el, styleMap(map[string]string{"filter": "url(#f)"}))
	// Only dilate grows; erode shrinks and is ignored.
	assert.InDelta(t, 3.0, exp.Left, 1e-9)
	assert.InDelta(t, 3.0, exp.Right, 1e-9)
}

func TestFilterMissingReference(t *testing.T) {
	el := node("rect", nil)
	exp := Analyze(el, styleMap(map[string]string{"filter": "url(#nope)"}))
	assert.True(t, exp.HasFilter)
	assert.True(t, exp.Apply(geom.Bounds{Width: 10, Height: 10}) == geom.Bounds{Width: 10, Height: 10})
}

func TestCSSFilterBlur(t *testing.T) {
	exp := Analyze(node("rect", nil), styleMap(map[string]string{"filter": "blur(5px)"}))
	assert.True(t, exp.Pixel)
	assert.InDelta(t, 15.0, exp.Left, 1e-9)
}

func TestCSSFilterDropShadow(t *testing.T) {
	exp := Analyze(node("rect", nil), styleMap(map[string]string{
		"filter": "drop-shadow(4px -2px 3px rgba(0, 0, 0, 0.5))",
	}))
	assert.True(t, exp.Pixel)
	assert.InDelta(t, 9.0, exp.Left, 1e-9)   // 3*3
	assert.InDelta(t, 13.0, exp.Right, 1e-9) // 4 + 9
	assert.InDelta(t, 11.0, exp.Top, 1e-9)   // 2 + 9
	assert.InDelta(t, 9.0, exp.Bottom, 1e-9)
}

func TestExpansionApply(t *testing.T) {
	b := geom.Bounds{X: 0, Y: 0, Width: 100, Height: 50}

	// Fractional coefficients scale against the box.
	frac := Expansion{Left: 0.1, Top: 0.1, Right: 0.1, Bottom: 0.1}
	assert.Equal(t, geom.Bounds{X: -10, Y: -5, Width: 120, Height: 60}, frac.Apply(b))

	// Pixel coefficients add directly.
	px := Expansion{Left: 5, Top: 5, Right: 5, Bottom: 5, Pixel: true}
	assert.Equal(t, geom.Bounds{X: -5, Y: -5, Width: 110, Height: 60}, px.Apply(b))

	// Any coefficient >= 1 flips to pixel interpretation.
	mixed := Expansion{Left: 0.5, Right: 12}
	got := mixed.Apply(b)
	assert.Equal(t, geom.Bounds{X: -0.5, Y: 0, Width: 112.5, Height: 50}, got)
}

func TestURLReference(t *testing.T) {
	testCases := []struct {
		input string
		id    string
		ok    bool
	}{
		{input: "url(#blur)", id: "blur", ok: true},
		{input: `url("#blur")`, id: "blur", ok: true},
		{input: "url(#blur) brightness(2)", id: "blur", ok: true},
		{input: "blur(5px)", ok: false},
		{input: "url()", ok: false},
	}
	for _, tc := range testCases {
		id, ok := urlReference(tc.input)
		require.Equal(t, tc.ok, ok, tc.input)
		if ok {
			assert.Equal(t, tc.id, id, tc.input)
		}
	}
}
