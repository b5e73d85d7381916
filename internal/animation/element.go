// Package animation analyzes SMIL animation elements (animate,
// animateTransform, animateMotion, set) and combines their effects on a
// single target into one conservative bounds envelope.
package animation

import "github.com/kvattis/svgfit/internal/document"

// Element is the document access the analyzers need.
type Element = document.Node
