package animation

import "strings"

// setAttrAllowList names the attributes a set element can meaningfully
// change for bounds purposes: geometry or visibility. Sets targeting
// anything else contribute nothing.
var setAttrAllowList = map[string]struct{}{
	"opacity": {}, "display": {}, "visibility": {},
	"x": {}, "y": {}, "width": {}, "height": {},
	"cx": {}, "cy": {}, "r": {}, "rx": {}, "ry": {},
	"fill": {}, "stroke": {}, "stroke-width": {},
	"fill-opacity": {}, "stroke-opacity": {}, "transform": {},
}

// setEventNames are the DOM events accepted in a set begin attribute,
// optionally followed by +offset.
var setEventNames = map[string]struct{}{
	"click": {}, "mousedown": {}, "mouseup": {}, "mouseover": {},
	"mouseout": {}, "mousemove": {}, "focusin": {}, "focusout": {},
	"activate": {}, "load": {}, "beginEvent": {}, "endEvent": {},
}

// SetAnim describes one set element.
type SetAnim struct {
	Name       string
	To         string
	BeginMS    float64
	EventBased bool
}

// AnalyzeSet inspects a set element. Unsupported target attributes and
// unparseable begin forms (syncbase chains, indefinite) are dropped rather
// than failing. Dropping a set is an over-trim for visibility suppression;
// see Combine's hidden-from-start handling for the conservative side.
func AnalyzeSet(el Element) (*SetAnim, bool) {
	name := el.Attr("attributeName")
	if _, ok := setAttrAllowList[name]; !ok {
		return nil, false
	}
	to := el.Attr("to")
	if to == "" {
		return nil, false
	}

	beginMS, eventBased, ok := parseSetBegin(el.Attr("begin"))
	if !ok {
		return nil, false
	}
	return &SetAnim{Name: name, To: to, BeginMS: beginMS, EventBased: eventBased}, true
}

// parseSetBegin accepts simple clock values and known event names with an
// optional "+offset". Everything else reports false.
func parseSetBegin(begin string) (float64, bool, bool) {
	begin = strings.TrimSpace(begin)
	if begin == "" {
		return 0, false, true
	}
	if begin == "indefinite" {
		return 0, false, false
	}
	if isClockLike(begin) {
		ms, ok := ParseClock(begin)
		if !ok {
			return 0, false, false
		}
		return ms, false, true
	}

	name, offset := begin, ""
	if idx := strings.Index(begin, "+"); idx >= 0 {
		name = strings.TrimSpace(begin[:idx])
		offset = strings.TrimSpace(begin[idx+1:])
	}
	if _, ok := setEventNames[name]; !ok {
		return 0, false, false
	}
	ms := 0.0
	if offset != "" {
		v, ok := ParseClock(offset)
		if !ok {
			return 0, false, false
		}
		ms = v
	}
	// Event-based: could fire at any time, so the begin normalizes to the
	// offset alone.
	return ms, true, true
}
