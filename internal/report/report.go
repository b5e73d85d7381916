// Package report serializes an analysis pass for the analyze command.
package report

import (
	"io"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/kvattis/svgfit/internal/analyzer"
	"github.com/kvattis/svgfit/internal/geom"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Box is the JSON shape of a bounds rectangle.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func box(b geom.Bounds) Box {
	return Box{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

// Element is one element's analysis in the report.
type Element struct {
	Tag            string `json:"tag"`
	ID             string `json:"id,omitempty"`
	Base           Box    `json:"base"`
	Transformed    Box    `json:"transformed"`
	Animated       Box    `json:"animated"`
	EffectExpanded Box    `json:"effect_expanded"`
	HasAnimations  bool   `json:"has_animations"`
	HasEffects     bool   `json:"has_effects"`
	Excluded       bool   `json:"excluded,omitempty"`
}

// Report is the top-level analyze output.
type Report struct {
	RunID       string    `json:"run_id"`
	Input       string    `json:"input"`
	GeneratedAt time.Time `json:"generated_at"`
	HasContent  bool      `json:"has_content"`
	Envelope    *Box      `json:"envelope,omitempty"`
	ViewBox     *Box      `json:"view_box,omitempty"`
	Elements    []Element `json:"elements"`
}

// Build assembles a report from one document analysis.
func Build(input string, res analyzer.DocumentResult) Report {
	r := Report{
		RunID:       uuid.NewString(),
		Input:       input,
		GeneratedAt: time.Now().UTC(),
		HasContent:  res.HasContent,
		Elements:    make([]Element, 0, len(res.Elements)),
	}
	if res.HasContent {
		envelope := box(res.Envelope)
		viewBox := box(res.ViewBox)
		r.Envelope = &envelope
		r.ViewBox = &viewBox
	}
	for _, el := range res.Elements {
		r.Elements = append(r.Elements, Element{
			Tag:            el.Tag,
			ID:             el.ID,
			Base:           box(el.Base),
			Transformed:    box(el.Transformed),
			Animated:       box(el.Animated),
			EffectExpanded: box(el.EffectExpanded),
			HasAnimations:  el.HasAnimations,
			HasEffects:     el.HasEffects,
			Excluded:       el.Excluded,
		})
	}
	return r
}

// Encode writes the report as indented JSON.
func (r Report) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
