package object

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/rotander/internal/geometry"
)

// Enemy is a cube that drifts toward the player at a fixed speed.
type Enemy struct {
	Position   mgl64.Vec3 // Cube center
	HalfExtent float64
	Speed      float64 // World units per tick

	// Shape is rebuilt around Position on every Update.
	Shape geometry.Polytope
}

// NewEnemy creates an enemy cube of the given full size.
func NewEnemy(position mgl64.Vec3, size, speed float64) *Enemy {
	e := &Enemy{
		Position:   position,
		HalfExtent: size / 2,
		Speed:      speed,
	}
	e.Shape = NewCube(e.Position, e.HalfExtent)
	return e
}

// Update steps the enemy toward target and regenerates its cube.
func (e *Enemy) Update(target mgl64.Vec3) {
	dir := target.Sub(e.Position)
	if dist := dir.Len(); dist > 0 {
		e.Position = e.Position.Add(dir.Mul(e.Speed / dist))
	}
	e.Shape = NewCube(e.Position, e.HalfExtent)
}

// DistanceTo returns the distance from the enemy center to p.
func (e *Enemy) DistanceTo(p mgl64.Vec3) float64 {
	return e.Position.Sub(p).Len()
}
