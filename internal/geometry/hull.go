package geometry

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// minHullArea is the area below which a hull is considered degenerate.
const minHullArea = 1e-12

// Hull is a convex polygon in plane-local coordinates, counter-clockwise,
// without interior or collinear points. A Hull built from fewer than three
// cross-section points is just the raw point list (a segment or a point).
type Hull []mgl64.Vec2

// Empty reports whether the hull has no vertices.
func (h Hull) Empty() bool {
	return len(h) == 0
}

// Centroid returns the mean of the hull vertices.
func (h Hull) Centroid() mgl64.Vec2 {
	var c mgl64.Vec2
	if len(h) == 0 {
		return c
	}
	for _, p := range h {
		c = c.Add(p)
	}
	return c.Mul(1 / float64(len(h)))
}

// Area returns the unsigned polygon area (shoelace).
func (h Hull) Area() float64 {
	if len(h) < 3 {
		return 0
	}
	sum := 0.0
	for i := range h {
		j := (i + 1) % len(h)
		sum += h[i].X()*h[j].Y() - h[j].X()*h[i].Y()
	}
	return math.Abs(sum) / 2
}

// ConvexHull returns the convex hull of points. ok is false when the input
// has fewer than three distinct points or they are collinear; callers fall
// back to the raw points in that case.
func ConvexHull(points []mgl64.Vec2) (Hull, bool) {
	idx, ok := hullIndices(points)
	if !ok {
		return nil, false
	}
	hull := make(Hull, len(idx))
	for i, k := range idx {
		hull[i] = points[k]
	}
	return hull, true
}

// hullIndices runs Andrew's monotone chain and returns indices into points in
// counter-clockwise order.
func hullIndices(points []mgl64.Vec2) ([]int, bool) {
	if len(points) < 3 {
		return nil, false
	}

	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := points[order[a]], points[order[b]]
		if pa.X() != pb.X() {
			return pa.X() < pb.X()
		}
		return pa.Y() < pb.Y()
	})

	// Drop exact duplicates, keeping the first index seen.
	uniq := make([]int, 1, len(order))
	uniq[0] = order[0]
	for _, k := range order[1:] {
		if points[k] != points[uniq[len(uniq)-1]] {
			uniq = append(uniq, k)
		}
	}
	if len(uniq) < 3 {
		return nil, false
	}

	chain := make([]int, 0, 2*len(uniq))
	for _, k := range uniq {
		for len(chain) >= 2 && cross(points[chain[len(chain)-2]], points[chain[len(chain)-1]], points[k]) <= 0 {
			chain = chain[:len(chain)-1]
		}
		chain = append(chain, k)
	}
	lower := len(chain) + 1
	for i := len(uniq) - 2; i >= 0; i-- {
		k := uniq[i]
		for len(chain) >= lower && cross(points[chain[len(chain)-2]], points[chain[len(chain)-1]], points[k]) <= 0 {
			chain = chain[:len(chain)-1]
		}
		chain = append(chain, k)
	}
	chain = chain[:len(chain)-1]

	if len(chain) < 3 {
		return nil, false
	}

	hull := make(Hull, len(chain))
	for i, k := range chain {
		hull[i] = points[k]
	}
	if hull.Area() < minHullArea {
		return nil, false
	}
	return chain, true
}

// cross returns the z component of (b-a) x (c-a).
func cross(a, b, c mgl64.Vec2) float64 {
	return (b.X()-a.X())*(c.Y()-a.Y()) - (b.Y()-a.Y())*(c.X()-a.X())
}
