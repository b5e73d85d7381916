package document

// Node is the read-only view of a document element consumed by the
// animation and effects analyzers. Element satisfies it; tests use fakes.
type Node interface {
	// Tag returns the element's local tag name.
	Tag() string
	// Attr returns an attribute value, or "" when absent.
	Attr(name string) string
	// Children returns the child elements in document order.
	Children() []Node
	// ByID resolves an id reference anywhere in the document.
	ByID(id string) (Node, bool)
}
