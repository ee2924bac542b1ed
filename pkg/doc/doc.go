// Package doc provides the read-only document a triangulation pass
// consumes: a tree of labels over B-rep shapes with optional name and
// color attributes and reference indirections. An exchange-format
// importer would populate a Document; tests and examples build one
// programmatically.
package doc

import (
	"github.com/voltwin-dev/brepmesh/pkg/geom"
	"github.com/voltwin-dev/brepmesh/pkg/topo"
)

// ColorKind selects one of the three color attribute slots on a label.
// Lookup precedence is surface, then curve, then generic.
type ColorKind int

const (
	ColorSurface ColorKind = iota
	ColorCurve
	ColorGeneric
)

// Color is an RGB triple with components in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Label is a node in the document tree. A label owns a shape, may
// reference another label's shape, and may carry name and color
// attributes.
type Label struct {
	doc      *Document
	name     string
	colors   [3]*Color
	referred *Label
	shape    topo.Shape
	free     bool
	children []*Label
}

// Name returns the label's name attribute, empty when unset.
func (l *Label) Name() string { return l.name }

// Shape returns the shape owned by the label.
func (l *Label) Shape() topo.Shape { return l.shape }

// IsFree reports whether the label is a document root.
func (l *Label) IsFree() bool { return l.free }

// IsReference reports whether the label refers to another label's shape.
func (l *Label) IsReference() bool { return l.referred != nil }

// Referred returns the referenced label, or nil.
func (l *Label) Referred() *Label { return l.referred }

// SetReferred marks the label as a reference to another label.
// Importers wiring references in a second pass use this; the label's
// shape is left untouched.
func (l *Label) SetReferred(ref *Label) { l.referred = ref }

// Children returns the label's child labels.
func (l *Label) Children() []*Label { return l.children }

// SetColor sets one of the label's color slots.
func (l *Label) SetColor(kind ColorKind, c Color) {
	l.colors[kind] = &c
}

// Color returns the color in the given slot, if set.
func (l *Label) Color(kind ColorKind) (Color, bool) {
	if c := l.colors[kind]; c != nil {
		return *c, true
	}
	return Color{}, false
}

// AddChild adds a child label owning the given shape.
func (l *Label) AddChild(name string, s topo.Shape) *Label {
	child := &Label{doc: l.doc, name: name, shape: s}
	l.children = append(l.children, child)
	l.doc.index(child)
	return child
}

// AddReference adds a child label that is an instance of another
// label's shape at the given placement.
func (l *Label) AddReference(name string, referred *Label, loc geom.Trsf) *Label {
	child := &Label{
		doc:      l.doc,
		name:     name,
		referred: referred,
		shape:    referred.shape.Located(loc),
	}
	l.children = append(l.children, child)
	l.doc.index(child)
	return child
}

// Document is the read-only input of a triangulation pass: free root
// labels plus an identity index for shape-to-label search.
type Document struct {
	roots      []*Label
	byIdentity map[*topo.TShape][]*Label
}

// New returns an empty document.
func New() *Document {
	return &Document{byIdentity: make(map[*topo.TShape][]*Label)}
}

// AddRoot adds a free top-level label owning the given shape.
func (d *Document) AddRoot(name string, s topo.Shape) *Label {
	l := &Label{doc: d, name: name, shape: s, free: true}
	d.roots = append(d.roots, l)
	d.index(l)
	return l
}

// AddShape adds a non-free top-level label owning the given shape.
// Prototype shapes instantiated through references live on such
// labels: they carry the shared attributes but are not traversed as
// roots themselves.
func (d *Document) AddShape(name string, s topo.Shape) *Label {
	l := &Label{doc: d, name: name, shape: s}
	d.index(l)
	return l
}

// Roots returns the free top-level labels in document order.
func (d *Document) Roots() []*Label { return d.roots }

func (d *Document) index(l *Label) {
	if l.shape.IsNil() {
		return
	}
	t := l.shape.T
	d.byIdentity[t] = append(d.byIdentity[t], l)
}

// Search finds the label owning the given shape. A label whose shape
// matches both topology identity and location wins; otherwise the
// first label with the same identity is returned, so occurrences
// reached through composed assembly locations still resolve to their
// prototype's attributes.
func (d *Document) Search(s topo.Shape) (*Label, bool) {
	if s.IsNil() {
		return nil, false
	}
	labels := d.byIdentity[s.T]
	if len(labels) == 0 {
		return nil, false
	}
	for _, l := range labels {
		if l.shape.Location == s.Location {
			return l, true
		}
	}
	return labels[0], true
}
