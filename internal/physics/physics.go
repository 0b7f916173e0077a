// Package physics integrates the player, resolves collisions against the
// shapes cut by the plane and keeps the cross-sections up to date.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/rotander/internal/config"
	"github.com/tomz197/rotander/internal/geometry"
	"github.com/tomz197/rotander/internal/object"
)

// World is everything one level attempt simulates. It is owned by a single
// game loop and never shared between goroutines.
type World struct {
	Shapes  []object.Shape
	Enemies []*object.Enemy
	Player  *object.User
	Spawn   mgl64.Vec3

	// Sections and EnemySections are parallel to Shapes and Enemies and are
	// rebuilt wholesale by Recompute.
	Sections      []geometry.Section
	EnemySections []geometry.Section

	hulls      []geometry.Hull
	enemyHulls []geometry.Hull
	footprint  geometry.Hull
}

// NewWorld places the player at spawn and computes the initial sections.
func NewWorld(shapes []object.Shape, enemies []*object.Enemy, spawn mgl64.Vec3, s config.Settings) *World {
	w := &World{
		Shapes:    shapes,
		Enemies:   enemies,
		Player:    object.NewUser(spawn),
		Spawn:     spawn,
		footprint: geometry.Footprint(s.CollisionDimensions()),
	}
	w.Recompute()
	return w
}

// Plane returns the current cutting plane.
func (w *World) Plane() geometry.Plane {
	return w.Player.Plane()
}

// Footprint returns the player's collision hull in plane-local coordinates.
func (w *World) Footprint() geometry.Hull {
	return w.footprint
}

// Recompute slices every shape and enemy with the current plane.
func (w *World) Recompute() {
	plane := w.Plane()

	w.Sections = resize(w.Sections, len(w.Shapes))
	w.hulls = resize(w.hulls, len(w.Shapes))
	for i := range w.Shapes {
		w.Sections[i] = geometry.Slice(w.Shapes[i].Polytope, plane)
		w.hulls[i] = w.Sections[i].Hull()
	}

	w.EnemySections = resize(w.EnemySections, len(w.Enemies))
	w.enemyHulls = resize(w.enemyHulls, len(w.Enemies))
	for i, e := range w.Enemies {
		w.EnemySections[i] = geometry.Slice(e.Shape, plane)
		w.enemyHulls[i] = w.EnemySections[i].Hull()
	}
}

// collidingShape returns the first shape, in level order, whose hull
// overlaps the player footprint.
func (w *World) collidingShape() (int, bool) {
	for i, h := range w.hulls {
		if geometry.Intersects(w.footprint, h) {
			return i, true
		}
	}
	return -1, false
}

// collidingEnemy returns the first enemy whose hull overlaps the footprint.
func (w *World) collidingEnemy() (int, bool) {
	for i, h := range w.enemyHulls {
		if geometry.Intersects(w.footprint, h) {
			return i, true
		}
	}
	return -1, false
}

// ResetPlayer moves the player back to spawn at rest and recomputes.
func (w *World) ResetPlayer() {
	w.Player.Reset(w.Spawn)
	w.Recompute()
}

// NearestEnemy returns the distance from the player to the closest enemy
// center. ok is false when the level has no enemies.
func (w *World) NearestEnemy() (dist float64, ok bool) {
	if len(w.Enemies) == 0 {
		return 0, false
	}
	dist = math.Inf(1)
	for _, e := range w.Enemies {
		dist = math.Min(dist, e.DistanceTo(w.Player.Position))
	}
	return dist, true
}

func resize[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	return s[:n]
}
