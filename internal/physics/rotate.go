package physics

import (
	"github.com/tomz197/rotander/internal/config"
	"github.com/tomz197/rotander/internal/geometry"
)

// Rotate turns the plane by dir rotate steps, recomputes the sections and
// lifts the player out of any shape the new plane put them inside. It
// returns how far the player was lifted.
func Rotate(w *World, dir int, s config.Settings) float64 {
	m := s.Movement
	w.Player.Angle = geometry.WrapAngle(w.Player.Angle + float64(dir)*m.RotateStep)
	w.Recompute()
	return depenetrate(w, m.DepenetrationStep, m.DepenetrationMax)
}

// depenetrate nudges the player up in fixed steps until the footprint is
// clear of every shape or the total lift reaches limit.
func depenetrate(w *World, step, limit float64) float64 {
	lifted := 0.0
	for lifted < limit {
		if _, hit := w.collidingShape(); !hit {
			break
		}
		w.Player.Position[2] += step
		lifted += step
		w.Recompute()
	}
	return lifted
}
