package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// coincidentCentroids is the distance below which two hull centroids are
// considered the same point.
const coincidentCentroids = 1e-6

// Intersects tests two convex hulls with the Separating Axis Theorem over
// the edge normals of both. Touching boundaries count as contact. Empty
// hulls never intersect.
func Intersects(a, b Hull) bool {
	if a.Empty() || b.Empty() {
		return false
	}
	return !separatedAlongEdges(a, a, b) && !separatedAlongEdges(b, a, b)
}

// separatedAlongEdges reports whether any edge normal of src separates a and b.
func separatedAlongEdges(src, a, b Hull) bool {
	for i := range src {
		edge := src[(i+1)%len(src)].Sub(src[i])
		if edge.Len() == 0 {
			continue
		}
		axis := mgl64.Vec2{-edge.Y(), edge.X()}.Normalize()

		minA, maxA := projectOnto(a, axis)
		minB, maxB := projectOnto(b, axis)
		if maxA < minB || maxB < minA {
			return true
		}
	}
	return false
}

func projectOnto(h Hull, axis mgl64.Vec2) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range h {
		d := p.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// CollisionNormal returns the unit vector from b's centroid to a's centroid.
// It falls back to (1, 0) when the centroids coincide and reports false when
// either hull is empty.
func CollisionNormal(a, b Hull) (mgl64.Vec2, bool) {
	if a.Empty() || b.Empty() {
		return mgl64.Vec2{}, false
	}
	d := a.Centroid().Sub(b.Centroid())
	if d.Len() < coincidentCentroids {
		return mgl64.Vec2{1, 0}, true
	}
	return d.Normalize(), true
}

// Reflect mirrors v across the line with unit normal n: v - 2(v·n)n.
func Reflect(v, n mgl64.Vec2) mgl64.Vec2 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}
