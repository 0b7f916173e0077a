package geometry

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Edge list defects reported by Validate.
var (
	ErrEdgeOutOfRange = errors.New("edge index out of range")
	ErrSelfLoop       = errors.New("edge is a self-loop")
	ErrDuplicateEdge  = errors.New("duplicate edge")
)

// Edge is an unordered pair of vertex indices.
type Edge [2]int

// Polytope is a wireframe solid: vertices in world space and the edges
// between them. Only edges take part in slicing; faces are implicit.
type Polytope struct {
	Vertices []mgl64.Vec3
	Edges    []Edge
}

// Validate checks that every edge references existing vertices, that there
// are no self-loops and no duplicate unordered pairs.
func (p Polytope) Validate() error {
	return validateEdges(len(p.Vertices), p.Edges)
}

func validateEdges(vertexCount int, edges []Edge) error {
	seen := make(map[Edge]struct{}, len(edges))
	for i, e := range edges {
		a, b := e[0], e[1]
		if a < 0 || b < 0 || a >= vertexCount || b >= vertexCount {
			return errors.Wrapf(ErrEdgeOutOfRange, "edge %d (%d,%d) with %d vertices", i, a, b, vertexCount)
		}
		if a == b {
			return errors.Wrapf(ErrSelfLoop, "edge %d on vertex %d", i, a)
		}
		key := Edge{min(a, b), max(a, b)}
		if _, dup := seen[key]; dup {
			return errors.Wrapf(ErrDuplicateEdge, "edge %d (%d,%d)", i, a, b)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Translated returns a copy moved by offset. Edges are shared.
func (p Polytope) Translated(offset mgl64.Vec3) Polytope {
	verts := make([]mgl64.Vec3, len(p.Vertices))
	for i, v := range p.Vertices {
		verts[i] = v.Add(offset)
	}
	return Polytope{Vertices: verts, Edges: p.Edges}
}
