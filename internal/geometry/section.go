package geometry

import "github.com/go-gl/mathgl/mgl64"

// Section is the 2D trace a polytope leaves on the cutting plane. Edges
// index into Points. It is rebuilt from scratch whenever the plane moves.
type Section struct {
	Points []mgl64.Vec2
	Edges  []Edge
}

// Slice intersects every edge of poly with the plane and links the resulting
// points: hull perimeter for three or more, a single edge for two, nothing
// otherwise. A degenerate hull keeps the points and drops the edges.
func Slice(poly Polytope, plane Plane) Section {
	var points []mgl64.Vec2
	for _, e := range poly.Edges {
		hit, ok := plane.IntersectEdge(poly.Vertices[e[0]], poly.Vertices[e[1]])
		if !ok {
			continue
		}
		points = append(points, plane.Project(hit))
	}

	sec := Section{Points: points}
	switch {
	case len(points) >= 3:
		idx, ok := hullIndices(points)
		if !ok {
			break
		}
		sec.Edges = make([]Edge, len(idx))
		for i := range idx {
			sec.Edges[i] = Edge{idx[i], idx[(i+1)%len(idx)]}
		}
	case len(points) == 2:
		sec.Edges = []Edge{{0, 1}}
	}
	return sec
}

// Hull returns the section's collision hull: the convex hull when one
// exists, the raw points otherwise.
func (s Section) Hull() Hull {
	if len(s.Points) < 3 {
		return Hull(s.Points)
	}
	if hull, ok := ConvexHull(s.Points); ok {
		return hull
	}
	return Hull(s.Points)
}

// Empty reports whether the plane misses the polytope entirely.
func (s Section) Empty() bool {
	return len(s.Points) == 0
}

// SectionHull slices poly and returns its collision hull.
func SectionHull(poly Polytope, plane Plane) Hull {
	return Slice(poly, plane).Hull()
}

// Footprint is the player's collision rectangle in plane-local coordinates,
// centered on the origin (the anchor). It does not depend on the plane.
func Footprint(width, height float64) Hull {
	w, h := width/2, height/2
	return Hull{
		{-w, -h},
		{w, -h},
		{w, h},
		{-w, h},
	}
}
