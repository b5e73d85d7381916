package analyzer

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/kvattis/svgfit/internal/document"
	"github.com/kvattis/svgfit/internal/geom"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func analyze(t *testing.T, svg string, cfg Config) DocumentResult {
	t.Helper()
	doc, err := document.Load(strings.NewReader(svg))
	require.NoError(t, err)
	res, err := New(doc, cfg, nil).AnalyzeDocument(context.Background())
	require.NoError(t, err)
	return res
}

func assertBounds(t *testing.T, want, got geom.Bounds) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-6, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-6, "y")
	assert.InDelta(t, want.Width, got.Width, 1e-6, "width")
	assert.InDelta(t, want.Height, got.Height, 1e-6, "height")
}

func TestAnalyzeStaticRect(t *testing.T) {
	res := analyze(t, `<svg viewBox="0 0 500 500">
		<rect x="50" y="50" width="100" height="40"/>
	</svg>`, Config{Buffer: 10, Parallelism: 2})

	require.True(t, res.HasContent)
	assertBounds(t, geom.Bounds{X: 50, Y: 50, Width: 100, Height: 40}, res.Envelope)
	assertBounds(t, geom.Bounds{X: 40, Y: 40, Width: 120, Height: 60}, res.ViewBox)
}

func TestAnalyzeTranslatedRect(t *testing.T) {
	// A rect at x=50..150 translated by up to (30,0) sweeps to x=180; a 10
	// unit buffer then yields viewBox 40 40 150 60.
	res := analyze(t, `<svg viewBox="0 0 500 500">
		<rect x="50" y="50" width="100" height="40">
			<animateTransform attributeName="transform" type="translate"
				from="0 0" to="30 0" dur="2s"/>
		</rect>
	</svg>`, Config{Buffer: 10, Parallelism: 1})

	require.True(t, res.HasContent)
	assertBounds(t, geom.Bounds{X: 50, Y: 50, Width: 130, Height: 40}, res.Envelope)
	assertBounds(t, geom.Bounds{X: 40, Y: 40, Width: 150, Height: 60}, res.ViewBox)
	require.Len(t, res.Elements, 1)
	assert.True(t, res.Elements[0].HasAnimations)
}

func TestAnalyzeAnimatedCircleByValue(t *testing.T) {
	// cx animated with by=100 and no from: the start value is unknown and
	// defaults to zero, so the center sweeps 0..100 and the envelope spans
	// -30..130 horizontally. Buffer 10 gives viewBox -40 60 180 80.
	res := analyze(t, `<svg viewBox="0 0 500 500">
		<circle cx="100" cy="100" r="30">
			<animate attributeName="cx" by="100" dur="2s"/>
		</circle>
	</svg>`, Config{Buffer: 10, Parallelism: 1})

	require.True(t, res.HasContent)
	assertBounds(t, geom.Bounds{X: -30, Y: 70, Width: 160, Height: 60}, res.Envelope)
	assertBounds(t, geom.Bounds{X: -40, Y: 60, Width: 180, Height: 80}, res.ViewBox)
}

func TestAnalyzeHiddenFromStartExcluded(t *testing.T) {
	res := analyze(t, `<svg viewBox="0 0 100 100">
		<rect x="0" y="0" width="10" height="10"/>
		<rect x="500" y="500" width="10" height="10">
			<set attributeName="display" to="none"/>
		</rect>
	</svg>`, Config{Buffer: 0, Parallelism: 2})

	require.True(t, res.HasContent)
	assertBounds(t, geom.Bounds{X: 0, Y: 0, Width: 10, Height: 10}, res.Envelope)

	require.Len(t, res.Elements, 2)
	assert.False(t, res.Elements[0].Excluded)
	assert.True(t, res.Elements[1].Excluded)
}

func TestAnalyzeGroupTransformInherited(t *testing.T) {
	res := analyze(t, `<svg viewBox="0 0 100 100">
		<g transform="translate(100 0)">
			<rect x="0" y="0" width="10" height="10"/>
		</g>
	</svg>`, Config{Buffer: 0, Parallelism: 1})

	require.True(t, res.HasContent)
	assertBounds(t, geom.Bounds{X: 100, Y: 0, Width: 10, Height: 10}, res.Envelope)
}

func TestAnalyzeFilterExpansion(t *testing.T) {
	res := analyze(t, `<svg viewBox="0 0 100 100">
		<defs>
			<filter id="blurry"><feGaussianBlur stdDeviation="2"/></filter>
		</defs>
		<rect x="10" y="10" width="20" height="20" filter="url(#blurry)"/>
	</svg>`, Config{Buffer: 0, Parallelism: 1})

	require.True(t, res.HasContent)
	// 3 * stdDeviation = 6 pixels on every side.
	assertBounds(t, geom.Bounds{X: 4, Y: 4, Width: 32, Height: 32}, res.Envelope)
	require.Len(t, res.Elements, 1)
	assert.True(t, res.Elements[0].HasEffects)
}

func TestAnalyzeCSSKeyframes(t *testing.T) {
	res := analyze(t, `<svg viewBox="0 0 100 100">
		<style>
			.mover { animation: drift 2s linear infinite; }
			@keyframes drift {
				from { transform: translate(0, 0); }
				to { transform: translate(40px, 0); }
			}
		</style>
		<rect class="mover" x="0" y="0" width="10" height="10"/>
	</svg>`, Config{Buffer: 0, Parallelism: 1})

	require.True(t, res.HasContent)
	assertBounds(t, geom.Bounds{X: 0, Y: 0, Width: 50, Height: 10}, res.Envelope)
	require.Len(t, res.Elements, 1)
	assert.True(t, res.Elements[0].HasAnimations)
}

func TestAnalyzeEmptyDocument(t *testing.T) {
	res := analyze(t, `<svg viewBox="0 0 100 100"></svg>`, Config{Buffer: 10, Parallelism: 1})
	assert.False(t, res.HasContent)
	assert.Empty(t, res.Elements)
}

func TestAnalyzeZeroSizeShapesIgnored(t *testing.T) {
	res := analyze(t, `<svg viewBox="0 0 100 100">
		<rect x="10" y="10" width="0" height="5"/>
		<circle cx="5" cy="5" r="0"/>
	</svg>`, Config{Buffer: 10, Parallelism: 1})
	assert.False(t, res.HasContent)
}

func TestAnalyzeParallelMatchesSequential(t *testing.T) {
	svg := `<svg viewBox="0 0 500 500">
		<rect x="50" y="50" width="100" height="40">
			<animateTransform attributeName="transform" type="translate"
				from="0 0" to="100 0" dur="2s"/>
		</rect>
		<circle cx="300" cy="300" r="20">
			<animate attributeName="r" values="20; 50; 20" dur="1s"/>
		</circle>
		<g transform="translate(0 400)">
			<path d="M 0 0 Q 50 -40 100 0"/>
		</g>
	</svg>`

	seq := analyze(t, svg, Config{Buffer: 10, Parallelism: 1})
	par := analyze(t, svg, Config{Buffer: 10, Parallelism: 8})

	if diff := cmp.Diff(seq, par, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("parallel analysis diverged from sequential (-seq +par):\n%s", diff)
	}
}

func TestAnalyzeCanceledContext(t *testing.T) {
	doc, err := document.Load(strings.NewReader(`<svg>
		<rect width="1" height="1"/>
	</svg>`))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = New(doc, Config{Parallelism: 1}, nil).AnalyzeDocument(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
