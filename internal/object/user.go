package object

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/rotander/internal/geometry"
)

// JumpDirection describes how the player sprite leans while airborne.
type JumpDirection int

const (
	JumpUp JumpDirection = iota
	JumpLeft
	JumpRight
)

// jumpLeanThreshold is the in-plane horizontal speed above which the sprite
// leans left or right.
const jumpLeanThreshold = 0.1

// User is the player: a point in 3D carrying the cutting plane with it.
type User struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Angle    float64 // Cutting plane angle in [0, 2π)

	Grounded     bool    // Last movement ended in a resolved shape collision
	JumpCooldown float64 // Seconds until the next jump is allowed
}

// NewUser creates a player at rest at spawn, facing angle 0.
func NewUser(spawn mgl64.Vec3) *User {
	return &User{Position: spawn}
}

// Plane returns the cutting plane anchored at the player.
func (u *User) Plane() geometry.Plane {
	return geometry.Plane{Anchor: u.Position, Angle: u.Angle}
}

// Reset puts the player back at spawn with zero velocity. The plane angle
// is kept.
func (u *User) Reset(spawn mgl64.Vec3) {
	u.Position = spawn
	u.Velocity = mgl64.Vec3{}
	u.Grounded = false
	u.JumpCooldown = 0
}

// Speed returns the magnitude of the velocity.
func (u *User) Speed() float64 {
	return u.Velocity.Len()
}

// JumpDirection reports the sprite lean from the in-plane horizontal velocity.
func (u *User) JumpDirection() JumpDirection {
	if u.Grounded {
		return JumpUp
	}
	h := u.Velocity.Dot(u.Plane().U())
	switch {
	case h > jumpLeanThreshold:
		return JumpRight
	case h < -jumpLeanThreshold:
		return JumpLeft
	default:
		return JumpUp
	}
}
