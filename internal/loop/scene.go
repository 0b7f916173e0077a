package loop

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/rotander/internal/config"
	"github.com/tomz197/rotander/internal/geometry"
	"github.com/tomz197/rotander/internal/object"
)

// PrimitiveKind selects how a Primitive is drawn.
type PrimitiveKind int

const (
	PrimitivePolygon PrimitiveKind = iota
	PrimitiveSegment
	PrimitiveOutline
)

// Primitive is one drawable item in plane-local world units, with the
// player anchor at the origin and y pointing up.
type Primitive struct {
	Kind   PrimitiveKind
	Points []mgl64.Vec2
	Color  object.Color
}

// leanOffset is how far, in world units, the top of the player sprite
// shifts when jumping sideways.
const leanOffset = 0.05

// originMarkerSize is the half size of the anchor marker in world units.
const originMarkerSize = 0.03

// BuildScene turns a snapshot into primitives, back to front: shapes,
// enemies, pulsing target outlines, the anchor marker, then the player.
// The player is left out on the off phases of the respawn blink.
func BuildScene(snap Snapshot, d config.Display, dst []Primitive) []Primitive {
	dst = dst[:0]

	for i, sec := range snap.Sections {
		shape := snap.Shapes[i]
		color := shape.ColorOr(d.DefaultShape)
		dst = appendSection(dst, sec, color, PrimitivePolygon)
	}
	for _, sec := range snap.EnemySections {
		dst = appendSection(dst, sec, d.Enemy, PrimitivePolygon)
	}

	pulse := d.Background.Blend(d.Target, snap.PulseFactor)
	for _, i := range snap.Targets {
		dst = appendSection(dst, snap.Sections[i], pulse, PrimitiveOutline)
	}

	m := originMarkerSize
	dst = append(dst, Primitive{
		Kind:   PrimitivePolygon,
		Points: []mgl64.Vec2{{-m, -m}, {m, -m}, {m, m}, {-m, m}},
		Color:  d.Origin,
	})

	if !object.ShouldRenderBlink(snap.RespawnBlink, respawnBlinkRate) {
		return dst
	}
	dst = append(dst, Primitive{
		Kind:   PrimitivePolygon,
		Points: playerSprite(snap.Footprint, snap.Jump),
		Color:  d.User,
	})
	return dst
}

// appendSection adds a polygon for hull-shaped sections and a segment for
// two-point ones. Empty and single-point sections draw nothing.
func appendSection(dst []Primitive, sec geometry.Section, color object.Color, kind PrimitiveKind) []Primitive {
	switch {
	case len(sec.Points) >= 3:
		hull := sec.Hull()
		if len(hull) < 3 {
			return dst
		}
		return append(dst, Primitive{Kind: kind, Points: hull, Color: color})
	case len(sec.Points) == 2:
		return append(dst, Primitive{Kind: PrimitiveSegment, Points: sec.Points, Color: color})
	}
	return dst
}

// playerSprite shears the footprint's top edge in the jump direction.
func playerSprite(footprint geometry.Hull, dir object.JumpDirection) []mgl64.Vec2 {
	pts := make([]mgl64.Vec2, len(footprint))
	copy(pts, footprint)

	lean := 0.0
	switch dir {
	case object.JumpLeft:
		lean = -leanOffset
	case object.JumpRight:
		lean = leanOffset
	}
	for i := range pts {
		if pts[i].Y() > 0 {
			pts[i][0] += lean
		}
	}
	return pts
}
