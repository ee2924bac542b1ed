package triangulate

import (
	"errors"
	"fmt"

	"github.com/voltwin-dev/brepmesh/pkg/doc"
	"github.com/voltwin-dev/brepmesh/pkg/meshmodel"
	"github.com/voltwin-dev/brepmesh/pkg/topo"
)

// maxReferenceDepth bounds reference chasing. Well-formed documents
// have short, acyclic chains; hitting the bound means a cycle.
const maxReferenceDepth = 64

// ErrReferenceCycle reports a label reference chain that did not reach
// a non-reference label within the depth bound. The whole pass aborts
// and the session cache stays empty.
var ErrReferenceCycle = errors.New("triangulate: label reference cycle")

// colorPrecedence is the fixed slot lookup order.
var colorPrecedence = [...]doc.ColorKind{doc.ColorSurface, doc.ColorCurve, doc.ColorGeneric}

// resolveAttributes finds the shape's label and derives the node name
// and material index. The name comes from the directly found label;
// the color is read from the resolved (dereferenced) label, which is
// also the material interning key.
func (p *pass) resolveAttributes(s topo.Shape) (string, int, error) {
	label, ok := p.doc.Search(s)
	if !ok {
		return "", meshmodel.None, nil
	}

	resolved, err := resolveReferred(label)
	if err != nil {
		return "", meshmodel.None, err
	}

	materialIndex := meshmodel.None
	if color, ok := labelColor(resolved); ok {
		materialIndex = p.internMaterial(resolved, color)
	}
	return label.Name(), materialIndex, nil
}

// resolveReferred follows reference labels until reaching a
// non-reference label, bounding the walk against cycles.
func resolveReferred(l *doc.Label) (*doc.Label, error) {
	resolved := l
	for depth := 0; resolved.IsReference(); depth++ {
		if depth >= maxReferenceDepth {
			return nil, fmt.Errorf("%w: label %q", ErrReferenceCycle, l.Name())
		}
		resolved = resolved.Referred()
	}
	return resolved, nil
}

// labelColor returns the label's color with slot precedence
// surface > curve > generic.
func labelColor(l *doc.Label) (doc.Color, bool) {
	for _, kind := range colorPrecedence {
		if c, ok := l.Color(kind); ok {
			return c, true
		}
	}
	return doc.Color{}, false
}

// internMaterial assigns a dense material index per resolved label.
// Interning is keyed by label identity, not RGB value: two labels with
// identical colors get two material entries.
func (p *pass) internMaterial(resolved *doc.Label, c doc.Color) int {
	if info, ok := p.materials[resolved]; ok {
		return info.id
	}
	id := len(p.materials)
	p.materials[resolved] = materialInfo{
		id: id,
		material: meshmodel.Material{
			Color: [3]float32{float32(c.R), float32(c.G), float32(c.B)},
		},
	}
	return id
}
