package cssanim

import (
	"strconv"
	"strings"
)

// animationKeywords are shorthand tokens that can never be an animation
// name, per the animation shorthand grammar.
var animationKeywords = map[string]struct{}{
	"linear": {}, "ease": {}, "ease-in": {}, "ease-out": {}, "ease-in-out": {},
	"step-start": {}, "step-end": {}, "infinite": {}, "normal": {},
	"reverse": {}, "alternate": {}, "alternate-reverse": {}, "none": {},
	"forwards": {}, "backwards": {}, "both": {}, "running": {}, "paused": {},
}

// StyleLookup resolves one CSS property for an element, returning "" when
// unset. The document adapter provides it.
type StyleLookup func(property string) string

// AnimationNames returns the @keyframes names an element references, from
// animation-name or the animation shorthand.
func AnimationNames(style StyleLookup) []string {
	if names := style("animation-name"); names != "" {
		return splitCommaList(names)
	}
	shorthand := style("animation")
	if shorthand == "" {
		return nil
	}
	var out []string
	for _, anim := range splitCommaList(shorthand) {
		if name := shorthandName(anim); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// AnimationDirection returns the element's animation-direction, falling back
// to any direction keyword in the shorthand, then "normal".
func AnimationDirection(style StyleLookup) string {
	if dir := style("animation-direction"); dir != "" {
		return strings.TrimSpace(dir)
	}
	for _, token := range strings.Fields(style("animation")) {
		switch token {
		case "reverse", "alternate", "alternate-reverse":
			return token
		}
	}
	return "normal"
}

// shorthandName picks the animation name out of one shorthand entry: the
// first token that is neither a time, a number, a timing function nor a
// known keyword.
func shorthandName(shorthand string) string {
	for _, token := range strings.Fields(shorthand) {
		lower := strings.ToLower(token)
		if _, ok := animationKeywords[lower]; ok {
			continue
		}
		if strings.HasPrefix(lower, "cubic-bezier(") || strings.HasPrefix(lower, "steps(") {
			continue
		}
		if strings.HasSuffix(lower, "ms") || strings.HasSuffix(lower, "s") {
			trimmed := strings.TrimSuffix(strings.TrimSuffix(lower, "ms"), "s")
			if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
				continue
			}
		}
		if _, err := strconv.ParseFloat(lower, 64); err == nil {
			continue
		}
		return token
	}
	return ""
}

func splitCommaList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" && part != "none" {
			out = append(out, part)
		}
	}
	return out
}
