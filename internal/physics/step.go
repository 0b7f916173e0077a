package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/rotander/internal/config"
	"github.com/tomz197/rotander/internal/geometry"
)

// Controls is the input held down during one tick.
type Controls struct {
	Left  bool
	Right bool
	Duck  bool
	Jump  bool
}

// Step advances the world by one tick: integrate the player, resolve a
// shape collision by rollback and reflection, check the fall threshold,
// then move enemies and check them against the player.
func Step(w *World, c Controls, s config.Settings) []Event {
	var events []Event
	m := s.Movement
	p := w.Player

	if p.JumpCooldown > 0 {
		p.JumpCooldown = max(0, p.JumpCooldown-s.TickSeconds())
	}
	if c.Jump && p.Grounded && p.JumpCooldown <= 0 {
		p.Velocity[2] = m.JumpVelocity
		p.Grounded = false
		p.JumpCooldown = m.JumpCooldown
		events = append(events, Event{Kind: EventJump, Index: -1})
	}

	acc := mgl64.Vec3{0, 0, -m.Gravity}
	if c.Duck {
		acc[2] -= m.Acceleration
	}
	u := w.Plane().U()
	if c.Left {
		acc = acc.Sub(u.Mul(m.Acceleration))
	}
	if c.Right {
		acc = acc.Add(u.Mul(m.Acceleration))
	}

	p.Velocity = p.Velocity.Add(acc)
	if speed := p.Velocity.Len(); speed > m.MaxVelocity {
		p.Velocity = p.Velocity.Mul(m.MaxVelocity / speed)
	}
	p.Velocity = p.Velocity.Mul(m.Friction)

	previous := p.Position
	moved := false
	if p.Velocity.Len() > m.SpeedEpsilon {
		p.Position = p.Position.Add(p.Velocity)
		moved = true
		w.Recompute()
	}

	if i, hit := w.collidingShape(); hit {
		if w.Shapes[i].Target {
			events = append(events, Event{Kind: EventTargetReached, Index: i})
		}
		if n, ok := geometry.CollisionNormal(w.footprint, w.hulls[i]); ok {
			v := geometry.Reflect(mgl64.Vec2{p.Velocity[0], p.Velocity[1]}, n).Mul(m.Bounce)
			p.Velocity = mgl64.Vec3{v[0], v[1], p.Velocity[2] * m.Bounce}
		}
		p.Grounded = true
		p.Position = previous
		if moved {
			w.Recompute()
		}
		events = append(events, Event{Kind: EventBounce, Index: i})
	} else if moved {
		p.Grounded = false
	}

	if p.Position[2] < s.Gameplay.FallThreshold {
		w.ResetPlayer()
		events = append(events, Event{Kind: EventIncident, Cause: CauseFall, Index: -1})
	}

	for _, e := range w.Enemies {
		e.Update(p.Position)
	}
	if len(w.Enemies) > 0 {
		w.Recompute()
	}
	if i, hit := w.collidingEnemy(); hit {
		w.ResetPlayer()
		events = append(events, Event{Kind: EventIncident, Cause: CauseEnemy, Index: i})
	}

	return events
}
