package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Polytope4 is a wireframe solid in four dimensions.
type Polytope4 struct {
	Vertices []mgl64.Vec4
	Edges    []Edge
}

// Validate applies the same edge rules as Polytope.Validate.
func (p Polytope4) Validate() error {
	return validateEdges(len(p.Vertices), p.Edges)
}

// Tesseract returns the 4D hypercube with vertices in {-half, +half}^4.
// Two vertices share an edge when they differ in exactly one coordinate.
func Tesseract(half float64) Polytope4 {
	verts := make([]mgl64.Vec4, 0, 16)
	for i := 0; i < 16; i++ {
		var v mgl64.Vec4
		for axis := 0; axis < 4; axis++ {
			// Highest bit drives X so the ordering matches nested x,y,z,w loops.
			if i&(1<<(3-axis)) != 0 {
				v[axis] = half
			} else {
				v[axis] = -half
			}
		}
		verts = append(verts, v)
	}

	edges := make([]Edge, 0, 32)
	for i := 0; i < 16; i++ {
		for j := i + 1; j < 16; j++ {
			diff := i ^ j
			if diff&(diff-1) == 0 {
				edges = append(edges, Edge{i, j})
			}
		}
	}
	return Polytope4{Vertices: verts, Edges: edges}
}

// Hyperplane is the 3D cutting hyperplane of the 4D prototype. Its normal
// (cos θ, sin θ, 0, 0) rotates in the XY subspace.
type Hyperplane struct {
	Anchor mgl64.Vec4
	Angle  float64
}

// Normal returns (cos θ, sin θ, 0, 0).
func (h Hyperplane) Normal() mgl64.Vec4 {
	return mgl64.Vec4{math.Cos(h.Angle), math.Sin(h.Angle), 0, 0}
}

// Basis returns the orthonormal in-hyperplane basis u1, u2, u3.
func (h Hyperplane) Basis() (mgl64.Vec4, mgl64.Vec4, mgl64.Vec4) {
	return mgl64.Vec4{-math.Sin(h.Angle), math.Cos(h.Angle), 0, 0},
		mgl64.Vec4{0, 0, 1, 0},
		mgl64.Vec4{0, 0, 0, 1}
}

// IntersectEdge is the 4D counterpart of Plane.IntersectEdge.
func (h Hyperplane) IntersectEdge(a, b mgl64.Vec4) (mgl64.Vec4, bool) {
	n := h.Normal()
	ab := b.Sub(a)

	denom := n.Dot(ab)
	if math.Abs(denom) < parallelEpsilon {
		return mgl64.Vec4{}, false
	}

	t := -n.Dot(a.Sub(h.Anchor)) / denom
	if t < 0 || t > 1 {
		return mgl64.Vec4{}, false
	}
	return a.Add(ab.Mul(t)), true
}

// Project maps a point on the hyperplane to its local 3D coordinates.
func (h Hyperplane) Project(point mgl64.Vec4) mgl64.Vec3 {
	rel := point.Sub(h.Anchor)
	u1, u2, u3 := h.Basis()
	return mgl64.Vec3{rel.Dot(u1), rel.Dot(u2), rel.Dot(u3)}
}

// Slice4 returns the local 3D points where the edges of poly cross h.
func Slice4(poly Polytope4, h Hyperplane) []mgl64.Vec3 {
	var points []mgl64.Vec3
	for _, e := range poly.Edges {
		if hit, ok := h.IntersectEdge(poly.Vertices[e[0]], poly.Vertices[e[1]]); ok {
			points = append(points, h.Project(hit))
		}
	}
	return points
}
