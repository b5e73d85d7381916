// Package document adapts a parsed SVG tree for the bounds engine:
// attribute and style lookup, id resolution, content-element enumeration,
// intrinsic per-primitive geometry, and viewBox rewriting.
package document

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"

	"github.com/kvattis/svgfit/internal/geom"
)

// Document wraps a parsed SVG tree.
type Document struct {
	tree  *etree.Document
	byID  map[string]*etree.Element
	rules []styleRule
}

// Load parses an SVG document from r. Non-UTF-8 encodings are decoded via
// the charset reader.
func Load(r io.Reader) (*Document, error) {
	tree := etree.NewDocument()
	tree.ReadSettings.CharsetReader = charset.NewReaderLabel
	tree.ReadSettings.Permissive = true
	if _, err := tree.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parsing svg: %w", err)
	}
	root := tree.Root()
	if root == nil || root.Tag != "svg" {
		return nil, fmt.Errorf("document root is not an svg element")
	}

	d := &Document{tree: tree, byID: map[string]*etree.Element{}}
	indexIDs(root, d.byID)
	d.rules = parseStyleRules(d.StyleTexts())
	return d, nil
}

// LoadFile parses the SVG document at path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

func indexIDs(el *etree.Element, index map[string]*etree.Element) {
	if id := el.SelectAttrValue("id", ""); id != "" {
		if _, exists := index[id]; !exists {
			index[id] = el
		}
	}
	for _, child := range el.ChildElements() {
		indexIDs(child, index)
	}
}

// Root returns the svg root element.
func (d *Document) Root() Element {
	return Element{doc: d, el: d.tree.Root()}
}

// ByID resolves an element by id.
func (d *Document) ByID(id string) (Element, bool) {
	el, ok := d.byID[id]
	if !ok {
		return Element{}, false
	}
	return Element{doc: d, el: el}, true
}

// StyleTexts returns the text of every <style> element in document order.
func (d *Document) StyleTexts() []string {
	var texts []string
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		if el.Tag == "style" {
			texts = append(texts, el.Text())
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	if root := d.tree.Root(); root != nil {
		walk(root)
	}
	return texts
}

// ViewBox parses the root viewBox attribute.
func (d *Document) ViewBox() (geom.Bounds, bool) {
	raw := d.tree.Root().SelectAttrValue("viewBox", "")
	nums := geom.ParseNumberList(raw)
	if len(nums) != 4 {
		return geom.Bounds{}, false
	}
	return geom.Bounds{X: nums[0], Y: nums[1], Width: nums[2], Height: nums[3]}, true
}

// SetViewBox rewrites the root viewBox attribute. Values are rounded to
// precision decimals with trailing zeros dropped; a negative precision keeps
// the shortest exact representation.
func (d *Document) SetViewBox(b geom.Bounds, precision int) {
	parts := make([]string, 4)
	for i, v := range []float64{b.X, b.Y, b.Width, b.Height} {
		s := strconv.FormatFloat(v, 'f', precision, 64)
		if strings.Contains(s, ".") {
			s = strings.TrimRight(s, "0")
			s = strings.TrimSuffix(s, ".")
		}
		parts[i] = s
	}
	d.tree.Root().CreateAttr("viewBox", strings.Join(parts, " "))
}

// WriteTo serializes the document.
func (d *Document) WriteTo(w io.Writer) error {
	_, err := d.tree.WriteTo(w)
	return err
}

// WriteToFile serializes the document to path.
func (d *Document) WriteToFile(path string) error {
	return d.tree.WriteToFile(path)
}

// Element is one element of a loaded document. The zero value is invalid.
type Element struct {
	doc *Document
	el  *etree.Element
}

// Valid reports whether the element references a real node.
func (e Element) Valid() bool { return e.el != nil }

// Tag returns the element's local tag name.
func (e Element) Tag() string {
	if e.el == nil {
		return ""
	}
	return e.el.Tag
}

// Attr returns an attribute value, or "". Namespaced names like xlink:href
// match on either the full key or the local part.
func (e Element) Attr(name string) string {
	if e.el == nil {
		return ""
	}
	if a := e.el.SelectAttr(name); a != nil {
		return a.Value
	}
	if idx := strings.Index(name, ":"); idx >= 0 {
		if a := e.el.SelectAttr(name[idx+1:]); a != nil {
			return a.Value
		}
	}
	return ""
}

// ID returns the element's id attribute.
func (e Element) ID() string { return e.Attr("id") }

// Children returns the child elements in document order.
func (e Element) Children() []Node {
	if e.el == nil {
		return nil
	}
	kids := e.el.ChildElements()
	out := make([]Node, len(kids))
	for i, child := range kids {
		out[i] = Element{doc: e.doc, el: child}
	}
	return out
}

// ChildElements is Children with the concrete type.
func (e Element) ChildElements() []Element {
	if e.el == nil {
		return nil
	}
	kids := e.el.ChildElements()
	out := make([]Element, len(kids))
	for i, child := range kids {
		out[i] = Element{doc: e.doc, el: child}
	}
	return out
}

// Parent returns the parent element.
func (e Element) Parent() (Element, bool) {
	if e.el == nil {
		return Element{}, false
	}
	p := e.el.Parent()
	if p == nil {
		return Element{}, false
	}
	return Element{doc: e.doc, el: p}, true
}

// ByID resolves an id reference anywhere in the document.
func (e Element) ByID(id string) (Node, bool) {
	if e.doc == nil {
		return nil, false
	}
	el, ok := e.doc.ByID(id)
	if !ok {
		return nil, false
	}
	return el, true
}

// Text returns the element's character data.
func (e Element) Text() string {
	if e.el == nil {
		return ""
	}
	return e.el.Text()
}

// Href returns the element's href (or legacy xlink:href) target id, without
// the leading '#'.
func (e Element) Href() (string, bool) {
	href := e.Attr("href")
	if href == "" {
		href = e.Attr("xlink:href")
	}
	href = strings.TrimSpace(href)
	if !strings.HasPrefix(href, "#") {
		return "", false
	}
	return href[1:], true
}

// FloatAttr parses a numeric attribute, stripping a px suffix.
func (e Element) FloatAttr(name string) (float64, bool) {
	raw := strings.TrimSpace(e.Attr(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "px"), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FloatAttrOr parses a numeric attribute with a default.
func (e Element) FloatAttrOr(name string, fallback float64) float64 {
	if v, ok := e.FloatAttr(name); ok {
		return v
	}
	return fallback
}

// CumulativeTransform composes the transform attributes from the root down
// to (and including) this element.
func (e Element) CumulativeTransform() geom.Matrix {
	var chain []Element
	for cur, ok := e, true; ok; cur, ok = cur.Parent() {
		chain = append(chain, cur)
	}
	m := geom.Identity()
	for i := len(chain) - 1; i >= 0; i-- {
		if t := chain[i].Attr("transform"); t != "" {
			m = m.Multiply(geom.ParseTransformList(t))
		}
	}
	return m
}
