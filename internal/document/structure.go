package document

// contentTags are elements that paint directly.
var contentTags = map[string]struct{}{
	"rect": {}, "circle": {}, "ellipse": {}, "line": {},
	"polyline": {}, "polygon": {}, "path": {}, "text": {},
	"image": {}, "use": {}, "foreignObject": {},
}

// containerTags are pass-through grouping elements whose children render.
var containerTags = map[string]struct{}{
	"svg": {}, "g": {}, "a": {},
}

// definitionTags never render on their own; their content is instantiated
// by reference (or not at all).
var definitionTags = map[string]struct{}{
	"defs": {}, "symbol": {}, "marker": {}, "clipPath": {}, "mask": {},
	"pattern": {}, "linearGradient": {}, "radialGradient": {}, "filter": {},
	"metadata": {}, "title": {}, "desc": {}, "style": {}, "script": {},
}

// ContentElements enumerates the elements that contribute rendered output,
// in document order. Definition subtrees are skipped, switch elements yield
// only their selected branch, and statically hidden elements are excluded.
func (d *Document) ContentElements() []Element {
	var out []Element
	collectContent(d.Root(), &out)
	return out
}

func collectContent(el Element, out *[]Element) {
	tag := el.Tag()
	if _, ok := definitionTags[tag]; ok {
		return
	}
	if el.StyleProperty("display") == "none" {
		return
	}
	if tag == "switch" {
		if branch, ok := selectSwitchBranch(el); ok {
			collectContent(branch, out)
		}
		return
	}
	if _, ok := contentTags[tag]; ok {
		*out = append(*out, el)
		return
	}
	if _, ok := containerTags[tag]; ok {
		for _, child := range el.ChildElements() {
			collectContent(child, out)
		}
	}
}

// selectSwitchBranch picks the first switch child this processor supports:
// no requiredFeatures or requiredExtensions (we implement none), and no
// systemLanguage restriction. Falling back to the first child keeps the
// result conservative when every branch carries conditions.
func selectSwitchBranch(el Element) (Element, bool) {
	children := el.ChildElements()
	for _, child := range children {
		if child.Attr("requiredFeatures") == "" &&
			child.Attr("requiredExtensions") == "" &&
			child.Attr("systemLanguage") == "" {
			return child, true
		}
	}
	if len(children) > 0 {
		return children[0], true
	}
	return Element{}, false
}
