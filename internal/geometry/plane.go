// Package geometry slices polytopes with a rotating vertical plane and tests
// the resulting 2D hulls for overlap.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// parallelEpsilon is the |n·(B-A)| below which a segment is treated as parallel
// to the plane. Segments lying inside the plane are reported as misses too.
const parallelEpsilon = 1e-12

// Plane is the cutting plane. It always contains the vertical (Z) axis
// direction and is anchored at the player.
type Plane struct {
	Anchor mgl64.Vec3 // Point on the plane, the player's position
	Angle  float64    // Rotation about Z in radians, normal = (cos, sin, 0)
}

// NewPlane returns a plane through anchor with the angle wrapped to [0, 2π).
func NewPlane(anchor mgl64.Vec3, angle float64) Plane {
	return Plane{Anchor: anchor, Angle: WrapAngle(angle)}
}

// Normal returns the unit normal (cos θ, sin θ, 0).
func (p Plane) Normal() mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(p.Angle), math.Sin(p.Angle), 0}
}

// U returns the in-plane horizontal basis vector (-sin θ, cos θ, 0).
func (p Plane) U() mgl64.Vec3 {
	return mgl64.Vec3{-math.Sin(p.Angle), math.Cos(p.Angle), 0}
}

// V returns the in-plane vertical basis vector (0, 0, 1).
func (p Plane) V() mgl64.Vec3 {
	return mgl64.Vec3{0, 0, 1}
}

// SignedDistance returns n·(point - anchor).
func (p Plane) SignedDistance(point mgl64.Vec3) float64 {
	return p.Normal().Dot(point.Sub(p.Anchor))
}

// IntersectEdge solves n·((A + t(B-A)) - anchor) = 0 for t and returns the
// point when t lies in [0, 1]. Both endpoints count as hits.
func (p Plane) IntersectEdge(a, b mgl64.Vec3) (mgl64.Vec3, bool) {
	n := p.Normal()
	ab := b.Sub(a)

	denom := n.Dot(ab)
	if math.Abs(denom) < parallelEpsilon {
		return mgl64.Vec3{}, false
	}

	t := -n.Dot(a.Sub(p.Anchor)) / denom
	if t < 0 || t > 1 {
		return mgl64.Vec3{}, false
	}
	return a.Add(ab.Mul(t)), true
}

// Project maps a point lying in the plane to local (x, y) coordinates:
// ((point-anchor)·u, (point-anchor)·v).
func (p Plane) Project(point mgl64.Vec3) mgl64.Vec2 {
	rel := point.Sub(p.Anchor)
	return mgl64.Vec2{rel.Dot(p.U()), rel.Dot(p.V())}
}

// Unproject is the inverse of Project: anchor + x·u + y·v.
func (p Plane) Unproject(local mgl64.Vec2) mgl64.Vec3 {
	return p.Anchor.Add(p.U().Mul(local.X())).Add(p.V().Mul(local.Y()))
}

// Rotated returns the plane turned by step radians, wrapped to [0, 2π).
func (p Plane) Rotated(step float64) Plane {
	return Plane{Anchor: p.Anchor, Angle: WrapAngle(p.Angle + step)}
}

// WrapAngle folds an angle into [0, 2π).
func WrapAngle(angle float64) float64 {
	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}
