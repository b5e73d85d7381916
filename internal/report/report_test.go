package report

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvattis/svgfit/internal/analyzer"
	"github.com/kvattis/svgfit/internal/geom"
)

func TestBuildAndEncode(t *testing.T) {
	res := analyzer.DocumentResult{
		HasContent: true,
		Envelope:   geom.Bounds{X: 50, Y: 50, Width: 100, Height: 40},
		ViewBox:    geom.Bounds{X: 40, Y: 40, Width: 120, Height: 60},
		Elements: []analyzer.ElementResult{
			{
				Tag:            "rect",
				ID:             "hero",
				Base:           geom.Bounds{X: 50, Y: 50, Width: 100, Height: 40},
				Transformed:    geom.Bounds{X: 50, Y: 50, Width: 100, Height: 40},
				Animated:       geom.Bounds{X: 50, Y: 50, Width: 100, Height: 40},
				EffectExpanded: geom.Bounds{X: 50, Y: 50, Width: 100, Height: 40},
				HasAnimations:  true,
			},
		},
	}

	r := Build("in.svg", res)
	assert.Equal(t, "in.svg", r.Input)
	require.NotNil(t, r.Envelope)
	assert.Equal(t, 50.0, r.Envelope.X)
	require.NotNil(t, r.ViewBox)
	assert.Equal(t, 120.0, r.ViewBox.Width)
	require.Len(t, r.Elements, 1)
	assert.Equal(t, "hero", r.Elements[0].ID)
	_, err := uuid.Parse(r.RunID)
	assert.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Encode(&buf))
	out := buf.String()
	assert.Contains(t, out, `"run_id"`)
	assert.Contains(t, out, `"tag": "rect"`)
	assert.Contains(t, out, `"has_animations": true`)
}

func TestBuildEmptyDocument(t *testing.T) {
	r := Build("empty.svg", analyzer.DocumentResult{})
	assert.False(t, r.HasContent)
	assert.Nil(t, r.Envelope)
	assert.Nil(t, r.ViewBox)
	assert.Empty(t, r.Elements)
}
