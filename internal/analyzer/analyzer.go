// Package analyzer orchestrates the animated-bounds resolution: per element
// it folds intrinsic geometry, inherited transforms, SMIL and CSS animation
// envelopes and effect expansion into one result, then unions everything
// into the document envelope.
package analyzer

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kvattis/svgfit/internal/animation"
	"github.com/kvattis/svgfit/internal/cssanim"
	"github.com/kvattis/svgfit/internal/document"
	"github.com/kvattis/svgfit/internal/effects"
	"github.com/kvattis/svgfit/internal/geom"
)

// Config tunes one analysis pass.
type Config struct {
	// Buffer is the padding in user units added around the final envelope.
	Buffer float64
	// Parallelism bounds concurrent element analysis; values below 1 mean
	// sequential.
	Parallelism int
}

// ElementResult is the per-element output unit.
type ElementResult struct {
	Tag string
	ID  string
	// Base is the intrinsic geometry in local coordinates.
	Base geom.Bounds
	// Transformed is Base under the cumulative transform.
	Transformed geom.Bounds
	// Animated is the animation envelope under the cumulative transform.
	Animated geom.Bounds
	// EffectExpanded is Animated grown by filter/mask/clip expansion.
	EffectExpanded geom.Bounds
	HasAnimations  bool
	HasEffects     bool
	// Excluded marks elements hidden from time zero; they contribute
	// nothing to the document envelope.
	Excluded bool
}

// DocumentResult is the whole-document analysis output.
type DocumentResult struct {
	Elements []ElementResult
	// Envelope is the union of every contributing element.
	Envelope geom.Bounds
	// HasContent reports whether anything contributed to the envelope.
	HasContent bool
	// ViewBox is the envelope padded by the configured buffer.
	ViewBox geom.Bounds
}

// Analyzer runs the bounds engine over one loaded document. It holds no
// mutable state across elements; a single instance is safe for concurrent
// element analysis.
type Analyzer struct {
	doc       *document.Document
	cfg       Config
	log       *zap.Logger
	keyframes map[string]cssanim.Keyframes
}

// New builds an analyzer for a document. A nil logger disables tracing.
func New(doc *document.Document, cfg Config, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	keyframes := map[string]cssanim.Keyframes{}
	for _, css := range doc.StyleTexts() {
		for name, kf := range cssanim.ParseStylesheet(css) {
			keyframes[name] = kf
		}
	}
	return &Analyzer{doc: doc, cfg: cfg, log: log, keyframes: keyframes}
}

// ComputeAnimations collects every animation descriptor targeting el: SMIL
// animation children plus CSS @keyframes referenced from its styles.
func (a *Analyzer) ComputeAnimations(el document.Element) []animation.Descriptor {
	var descs []animation.Descriptor
	for _, child := range el.ChildElements() {
		if desc, ok := animation.Analyze(child); ok {
			descs = append(descs, desc)
		}
	}

	base, hasBase := el.IntrinsicBounds()
	if hasBase {
		direction := cssanim.AnimationDirection(el.StyleProperty)
		for _, name := range cssanim.AnimationNames(el.StyleProperty) {
			kf, ok := a.keyframes[name]
			if !ok {
				a.log.Debug("animation name has no keyframes rule", zap.String("name", name))
				continue
			}
			delta := cssanim.Envelope(base, kf, el.StyleProperty("transform-origin"), direction)
			descs = append(descs, animation.Descriptor{
				Kind: animation.KindCSS,
				CSS: &animation.CSSAnim{
					Name:       name,
					FrameCount: len(kf.Frames),
					Expansion:  delta,
				},
			})
		}
	}
	return descs
}

// AnalyzeElement computes one element's bounds envelope given the cumulative
// transform of its ancestors. The element's own transform attribute composes
// on top.
func (a *Analyzer) AnalyzeElement(el document.Element, ancestor geom.Matrix) ElementResult {
	result := ElementResult{Tag: el.Tag(), ID: el.ID()}

	base, ok := el.IntrinsicBounds()
	if !ok {
		result.Excluded = true
		return result
	}
	result.Base = base

	m := ancestor
	if t := el.Attr("transform"); t != "" {
		m = m.Multiply(geom.ParseTransformList(t))
	}
	result.Transformed = m.TransformBounds(base)

	descs := a.ComputeAnimations(el)
	result.HasAnimations = len(descs) > 0
	if animation.HiddenFromStart(descs) {
		result.Excluded = true
		return result
	}

	combined := animation.Combine(animation.CombineInput{
		Base:       base,
		BaseAttr:   el.FloatAttr,
		Animations: descs,
	})
	result.Animated = m.TransformBounds(combined)

	expansion := effects.Analyze(el, el.StyleProperty)
	result.HasEffects = !expansion.IsZero()
	result.EffectExpanded = expansion.Apply(result.Animated)
	return result
}

// AnalyzeDocument runs the engine over every content element. Elements are
// independent, so analysis fans out over a bounded errgroup; results fold
// into the envelope through a commutative union afterwards.
func (a *Analyzer) AnalyzeDocument(ctx context.Context) (DocumentResult, error) {
	elements := a.doc.ContentElements()
	results := make([]ElementResult, len(elements))

	limit := a.cfg.Parallelism
	if limit < 1 {
		limit = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, el := range elements {
		i, el := i, el
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ancestor := geom.Identity()
			if parent, ok := el.Parent(); ok {
				ancestor = parent.CumulativeTransform()
			}
			results[i] = a.AnalyzeElement(el, ancestor)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return DocumentResult{}, err
	}

	var acc geom.Accumulator
	for _, r := range results {
		if r.Excluded {
			continue
		}
		acc.Add(r.EffectExpanded)
	}
	envelope, hasContent := acc.Result()

	out := DocumentResult{Elements: results, Envelope: envelope, HasContent: hasContent}
	if hasContent {
		out.ViewBox = envelope.Pad(a.cfg.Buffer)
	}
	a.log.Debug("document analyzed",
		zap.Int("elements", len(elements)),
		zap.Bool("has_content", hasContent),
	)
	return out, nil
}
