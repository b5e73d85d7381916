package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvattis/svgfit/internal/geom"
)

func analyzed(t *testing.T, tag string, attrs map[string]string) Descriptor {
	t.Helper()
	desc, ok := Analyze(node(tag, attrs))
	require.True(t, ok)
	return desc
}

func TestCombineNoAnimations(t *testing.T) {
	base := geom.Bounds{X: 10, Y: 10, Width: 20, Height: 20}
	assert.Equal(t, base, Combine(CombineInput{Base: base}))
}

func TestCombineContainsBase(t *testing.T) {
	base := geom.Bounds{X: 50, Y: 50, Width: 100, Height: 40}
	descs := []Descriptor{
		analyzed(t, "animateTransform", map[string]string{
			"type": "translate", "from": "0 0", "to": "-30 0",
		}),
	}
	env := Combine(CombineInput{Base: base, Animations: descs})
	assert.LessOrEqual(t, env.MinX(), base.MinX())
	assert.LessOrEqual(t, env.MinY(), base.MinY())
	assert.GreaterOrEqual(t, env.MaxX(), base.MaxX())
	assert.GreaterOrEqual(t, env.MaxY(), base.MaxY())
}

func TestCombineTranslateSweep(t *testing.T) {
	// A rect at x=50..150 translated by up to (100, 0) sweeps x=50..250.
	base := geom.Bounds{X: 50, Y: 50, Width: 100, Height: 40}
	descs := []Descriptor{
		analyzed(t, "animateTransform", map[string]string{
			"type": "translate", "from": "0 0", "to": "100 0",
		}),
	}
	env := Combine(CombineInput{Base: base, Animations: descs})
	assert.Equal(t, geom.Bounds{X: 50, Y: 50, Width: 200, Height: 40}, env)
}

func TestCombineAdditiveTransformsCompose(t *testing.T) {
	// Two simultaneous additive translates (10,0) and (0,5) must combine as
	// a vector sum at the shared end time, not as independent unions.
	base := geom.Bounds{X: 0, Y: 0, Width: 10, Height: 10}
	descs := []Descriptor{
		analyzed(t, "animateTransform", map[string]string{
			"type": "translate", "from": "0 0", "to": "10 0", "additive": "sum",
		}),
		analyzed(t, "animateTransform", map[string]string{
			"type": "translate", "from": "0 0", "to": "0 5", "additive": "sum",
		}),
	}
	env := Combine(CombineInput{Base: base, Animations: descs})
	assert.Equal(t, 20.0, env.MaxX())
	assert.Equal(t, 15.0, env.MaxY())
}

func TestCombineAdditiveStaggeredTimes(t *testing.T) {
	// One animation holds its latest earlier frame while the other samples
	// between frames.
	base := geom.Bounds{X: 0, Y: 0, Width: 10, Height: 10}
	descs := []Descriptor{
		analyzed(t, "animateTransform", map[string]string{
			"type": "translate", "values": "0 0; 10 0", "keyTimes": "0; 0.5",
			"additive": "sum",
		}),
		analyzed(t, "animateTransform", map[string]string{
			"type": "translate", "values": "0 0; 0 8", "additive": "sum",
		}),
	}
	env := Combine(CombineInput{Base: base, Animations: descs})
	// At t=1 the first holds (10,0) and the second reaches (0,8).
	assert.Equal(t, 20.0, env.MaxX())
	assert.Equal(t, 18.0, env.MaxY())
}

func TestCombineNonAdditiveTransformsUnionIndependently(t *testing.T) {
	base := geom.Bounds{X: 0, Y: 0, Width: 10, Height: 10}
	descs := []Descriptor{
		analyzed(t, "animateTransform", map[string]string{
			"type": "translate", "from": "0 0", "to": "10 0",
		}),
		analyzed(t, "animateTransform", map[string]string{
			"type": "translate", "from": "0 0", "to": "0 5",
		}),
	}
	env := Combine(CombineInput{Base: base, Animations: descs})
	// Replacement semantics: each reaches its own extreme separately.
	assert.Equal(t, 20.0, env.MaxX())
	assert.Equal(t, 15.0, env.MaxY())
}

func TestCombineCircleRadialEnvelope(t *testing.T) {
	// circle cx=100 cy=100 r=30 with cx animated by 100: the center sweeps
	// 100..200, so the envelope is 70..230 horizontally.
	base := geom.Bounds{X: 70, Y: 70, Width: 60, Height: 60}
	baseAttr := func(name string) (float64, bool) {
		switch name {
		case "cx", "cy":
			return 100, true
		case "r":
			return 30, true
		}
		return 0, false
	}
	descs := []Descriptor{
		analyzed(t, "animate", map[string]string{
			"attributeName": "cx", "by": "100", "dur": "2s",
		}),
	}
	env := Combine(CombineInput{Base: base, BaseAttr: baseAttr, Animations: descs})
	// from defaults to zero when only by is given, so cx spans 0..100.
	assert.Equal(t, geom.FromExtents(-30, 70, 130, 130), env)
}

func TestCombineRadiusGrowth(t *testing.T) {
	base := geom.Bounds{X: 70, Y: 70, Width: 60, Height: 60}
	baseAttr := func(name string) (float64, bool) {
		switch name {
		case "cx", "cy":
			return 100, true
		case "r":
			return 30, true
		}
		return 0, false
	}
	descs := []Descriptor{
		analyzed(t, "animate", map[string]string{
			"attributeName": "r", "values": "30; 60; 30",
		}),
	}
	env := Combine(CombineInput{Base: base, BaseAttr: baseAttr, Animations: descs})
	assert.Equal(t, geom.FromExtents(40, 40, 160, 160), env)
}

func TestCombineStrokeWidthAppliesLast(t *testing.T) {
	base := geom.Bounds{X: 0, Y: 0, Width: 10, Height: 10}
	descs := []Descriptor{
		analyzed(t, "animateTransform", map[string]string{
			"type": "translate", "from": "0 0", "to": "10 0",
		}),
		analyzed(t, "animate", map[string]string{
			"attributeName": "stroke-width", "values": "1; 8",
		}),
	}
	env := Combine(CombineInput{Base: base, Animations: descs})
	// Geometric envelope 0..20 x 0..10, then padded by 8/2 on every side.
	assert.Equal(t, geom.FromExtents(-4, -4, 24, 14), env)
}

func TestCombineAttributeXY(t *testing.T) {
	base := geom.Bounds{X: 50, Y: 50, Width: 100, Height: 40}
	descs := []Descriptor{
		analyzed(t, "animate", map[string]string{
			"attributeName": "x", "values": "50; 150",
		}),
	}
	env := Combine(CombineInput{Base: base, Animations: descs})
	assert.Equal(t, geom.Bounds{X: 50, Y: 50, Width: 200, Height: 40}, env)
}

func TestCombinePathMorph(t *testing.T) {
	base := geom.Bounds{X: 0, Y: 0, Width: 10, Height: 10}
	descs := []Descriptor{
		analyzed(t, "animate", map[string]string{
			"attributeName": "d",
			"values":        "M 0 0 L 10 10; M -20 0 L 30 10",
		}),
	}
	env := Combine(CombineInput{Base: base, Animations: descs})
	assert.Equal(t, geom.FromExtents(-20, 0, 30, 10), env)
}

func TestCombineMotionSweep(t *testing.T) {
	base := geom.Bounds{X: 10, Y: 10, Width: 20, Height: 20}
	descs := []Descriptor{
		analyzed(t, "animateMotion", map[string]string{"path": "M 0 0 L 50 0"}),
	}
	env := Combine(CombineInput{Base: base, Animations: descs})
	// The box sweeps from its origin offset along the whole path.
	assert.Equal(t, geom.Bounds{X: 10, Y: 10, Width: 70, Height: 20}, env)
}

func TestCombineOpacityDoesNotGrow(t *testing.T) {
	base := geom.Bounds{X: 0, Y: 0, Width: 10, Height: 10}
	descs := []Descriptor{
		analyzed(t, "animate", map[string]string{
			"attributeName": "opacity", "values": "0; 1",
		}),
	}
	env := Combine(CombineInput{Base: base, Animations: descs})
	assert.Equal(t, base, env)
}

func TestCombineSetGeometry(t *testing.T) {
	base := geom.Bounds{X: 0, Y: 0, Width: 10, Height: 10}
	descs := []Descriptor{
		analyzed(t, "set", map[string]string{
			"attributeName": "width", "to": "40", "begin": "1s",
		}),
	}
	env := Combine(CombineInput{Base: base, Animations: descs})
	assert.Equal(t, geom.Bounds{X: 0, Y: 0, Width: 40, Height: 10}, env)
}

func TestHiddenFromStart(t *testing.T) {
	hide := analyzed(t, "set", map[string]string{
		"attributeName": "display", "to": "none",
	})
	hideLater := analyzed(t, "set", map[string]string{
		"attributeName": "display", "to": "none", "begin": "2s",
	})
	hideOnClick := analyzed(t, "set", map[string]string{
		"attributeName": "visibility", "to": "hidden", "begin": "click",
	})
	show := analyzed(t, "set", map[string]string{
		"attributeName": "visibility", "to": "visible", "begin": "1s",
	})

	assert.True(t, HiddenFromStart([]Descriptor{hide}))
	assert.False(t, HiddenFromStart([]Descriptor{hideLater}))
	assert.False(t, HiddenFromStart([]Descriptor{hideOnClick}))
	assert.False(t, HiddenFromStart([]Descriptor{hide, show}))
	assert.False(t, HiddenFromStart(nil))
}
