package triangulate

import (
	"go.uber.org/zap"

	"github.com/voltwin-dev/brepmesh/pkg/doc"
	"github.com/voltwin-dev/brepmesh/pkg/mesher"
	"github.com/voltwin-dev/brepmesh/pkg/meshmodel"
	"github.com/voltwin-dev/brepmesh/pkg/topo"
)

type triGeometryInfo struct {
	id       int
	geometry meshmodel.TriGeometry
}

type lineGeometryInfo struct {
	id       int
	geometry meshmodel.LineGeometry
}

type materialInfo struct {
	id       int
	material meshmodel.Material
}

// shapeGeometry records the geometry array indices assigned to one
// topology identity, meshmodel.None for absent.
type shapeGeometry struct {
	tri  int
	line int
}

// pass holds the state of one triangulation run. The identity-keyed
// maps are owned exclusively by the pass and drained during assembly.
type pass struct {
	doc    *doc.Document
	mesher mesher.Mesher
	log    *zap.Logger

	triGeoms  map[*topo.TShape]triGeometryInfo
	lineGeoms map[*topo.TShape]lineGeometryInfo
	materials map[*doc.Label]materialInfo
	nodes     []meshmodel.Node

	// processed guards the non-idempotent mesher: at most one
	// tessellation per topology identity.
	processed map[*topo.TShape]shapeGeometry
}

func newPass(d *doc.Document, opts Options) *pass {
	return &pass{
		doc:       d,
		mesher:    opts.Mesher,
		log:       opts.Logger,
		triGeoms:  make(map[*topo.TShape]triGeometryInfo),
		lineGeoms: make(map[*topo.TShape]lineGeometryInfo),
		materials: make(map[*doc.Label]materialInfo),
		processed: make(map[*topo.TShape]shapeGeometry),
	}
}

// run flattens every free root, assembles the model, and releases the
// transient tessellation caches attached to the document's shapes.
func (p *pass) run() (*meshmodel.Model, error) {
	for _, root := range p.doc.Roots() {
		if root.Shape().IsNil() {
			continue
		}
		if err := p.flattenRoot(root.Shape()); err != nil {
			return nil, err
		}
	}
	p.processed = nil

	model := p.assemble()

	for _, root := range p.doc.Roots() {
		topo.Clean(root.Shape())
	}
	return model, nil
}

// assemble drains the identity-keyed maps into dense arrays in
// assigned-index order and clears them. It runs exactly once per
// pass, after all roots are flattened, so deduplication spans roots.
func (p *pass) assemble() *meshmodel.Model {
	tris := make([]meshmodel.TriGeometry, len(p.triGeoms))
	for _, info := range p.triGeoms {
		tris[info.id] = info.geometry
	}
	p.triGeoms = nil

	lines := make([]meshmodel.LineGeometry, len(p.lineGeoms))
	for _, info := range p.lineGeoms {
		lines[info.id] = info.geometry
	}
	p.lineGeoms = nil

	materials := make([]meshmodel.Material, len(p.materials))
	for _, info := range p.materials {
		materials[info.id] = info.material
	}
	p.materials = nil

	return &meshmodel.Model{
		Tris:      tris,
		Lines:     lines,
		Materials: materials,
		Nodes:     p.nodes,
	}
}
