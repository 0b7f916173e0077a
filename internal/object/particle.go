package object

import (
	"math"
	"math/rand"
	"sync"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect in plane-local coordinates.
type Particle struct {
	X, Y        float64 // Position (world units, relative to the anchor)
	VX, VY      float64 // Velocity per second
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay per 1/60 s (1.0 = no drag)
	Color       Color
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64, c Color) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.95
	p.Color = c
	return p
}

// Release returns the particle to the pool for reuse.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnExplosion appends a circular burst of particles around (x, y).
func SpawnExplosion(dst []*Particle, x, y float64, count int, speed, lifetime float64, c Color) []*Particle {
	for i := 0; i < count; i++ {
		angle := rand.Float64() * 2 * math.Pi
		// Speed varies 50% to 150%, lifetime 50% to 100%
		spd := speed * (0.5 + rand.Float64())
		life := lifetime * (0.5 + rand.Float64()*0.5)

		dst = append(dst, NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life, c))
	}
	return dst
}

// Update advances the particle by dt seconds. Returns true once it expired.
func (p *Particle) Update(dt float64) bool {
	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true
	}

	dragFactor := math.Pow(p.Drag, dt*60)
	p.VX *= dragFactor
	p.VY *= dragFactor

	p.X += p.VX * dt
	p.Y += p.VY * dt
	return false
}

// Visible reports whether the particle is still bright enough to draw.
func (p *Particle) Visible() bool {
	return p.MaxLifetime <= 0 || p.Lifetime/p.MaxLifetime >= 0.25
}

// UpdateParticles advances all particles and returns the survivors, reusing
// the backing array. Expired particles go back to the pool.
func UpdateParticles(ps []*Particle, dt float64) []*Particle {
	kept := ps[:0]
	for _, p := range ps {
		if p.Update(dt) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(ps[len(kept):])
	return kept
}
