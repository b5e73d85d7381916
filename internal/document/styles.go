package document

import "strings"

// styleRule is a flattened selector/declaration pair from a <style> sheet.
// Only simple selectors are matched (tag, .class, #id); anything more
// specific is ignored, which at worst misses an animation reference and
// never invents one.
type styleRule struct {
	selector string
	decls    map[string]string
}

// StyleProperty resolves a style property for the element: presentation
// attribute first, then inline style, then stylesheet rules in order, so
// later sources win only when earlier ones are silent.
func (e Element) StyleProperty(name string) string {
	if v := e.Attr(name); v != "" {
		return v
	}
	if v := inlineStyleValue(e.Attr("style"), name); v != "" {
		return v
	}
	if e.doc == nil {
		return ""
	}
	out := ""
	for _, rule := range e.doc.rules {
		if !e.matchesSelector(rule.selector) {
			continue
		}
		if v, ok := rule.decls[name]; ok {
			out = v
		}
	}
	return out
}

func (e Element) matchesSelector(selector string) bool {
	switch {
	case strings.HasPrefix(selector, "#"):
		return e.ID() == selector[1:]
	case strings.HasPrefix(selector, "."):
		for _, class := range strings.Fields(e.Attr("class")) {
			if class == selector[1:] {
				return true
			}
		}
		return false
	case selector == "*":
		return true
	default:
		return e.Tag() == selector
	}
}

// inlineStyleValue pulls one property out of an inline style attribute.
func inlineStyleValue(style, name string) string {
	for _, decl := range strings.Split(style, ";") {
		prop, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		if strings.TrimSpace(prop) == name {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// parseStyleRules extracts simple selector rules from raw stylesheet text.
// At-rules (@keyframes, @media, ...) are skipped whole, with nested braces
// balanced; the keyframes themselves are parsed separately by cssanim.
func parseStyleRules(sheets []string) []styleRule {
	var rules []styleRule
	for _, css := range sheets {
		pos := 0
		for pos < len(css) {
			open := strings.IndexByte(css[pos:], '{')
			if open < 0 {
				break
			}
			selectorText := strings.TrimSpace(css[pos : pos+open])
			bodyStart := pos + open + 1
			depth := 1
			end := bodyStart
			for end < len(css) && depth > 0 {
				switch css[end] {
				case '{':
					depth++
				case '}':
					depth--
				}
				end++
			}
			pos = end
			if strings.HasPrefix(selectorText, "@") {
				continue
			}
			body := css[bodyStart : end-1]
			decls := parseDeclarations(body)
			if len(decls) == 0 {
				continue
			}
			for _, selector := range strings.Split(selectorText, ",") {
				selector = strings.TrimSpace(selector)
				if selector == "" || strings.ContainsAny(selector, " >+~[") {
					continue
				}
				rules = append(rules, styleRule{selector: selector, decls: decls})
			}
		}
	}
	return rules
}

func parseDeclarations(body string) map[string]string {
	decls := map[string]string{}
	for _, decl := range strings.Split(body, ";") {
		prop, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		prop = strings.TrimSpace(prop)
		value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "!important"))
		if prop != "" && value != "" {
			decls[prop] = value
		}
	}
	return decls
}
