package level

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"
	"github.com/tomz197/rotander/internal/config"
	"github.com/tomz197/rotander/internal/geometry"
	"github.com/tomz197/rotander/internal/object"
)

// document mirrors the JSON layout of a level file.
type document struct {
	Name     string      `json:"name"`
	Settings settingsDoc `json:"settings"`
	Shapes   []shapeDoc  `json:"shapes"`
	Enemies  []enemyDoc  `json:"enemies"`
}

type vec3 [3]float64

type shapeDoc struct {
	Name     string    `json:"name"`
	Points   []vec3    `json:"points"`
	Edges    [][2]int  `json:"edges"`
	Offset   *vec3     `json:"offset"`
	Color    *colorDoc `json:"color"`
	IsTarget bool      `json:"is_target"`
}

// colorDoc holds components in [0, 1]. Missing components fall back to the
// default shape color.
type colorDoc struct {
	R *float64 `json:"r"`
	G *float64 `json:"g"`
	B *float64 `json:"b"`
}

type enemyDoc struct {
	Position vec3     `json:"position"`
	Size     *float64 `json:"size"`
	Speed    *float64 `json:"speed"`
}

// settingsDoc lists every overridable setting; nil means "keep".
type settingsDoc struct {
	PixelsPerUnit     *float64 `json:"pixels_per_unit"`
	BackgroundColor   *[3]int  `json:"background_color"`
	OriginColor       *[3]int  `json:"origin_color"`
	UserColor         *[3]int  `json:"user_color"`
	DefaultShapeColor *[3]int  `json:"default_shape_color"`
	TargetColor       *[3]int  `json:"target_color"`

	Movement struct {
		Acceleration     *float64 `json:"acceleration"`
		MaxVelocity      *float64 `json:"max_velocity"`
		Friction         *float64 `json:"friction"`
		RotateSpeed      *float64 `json:"rotate_speed"`
		Gravity          *float64 `json:"gravity"`
		JumpVelocity     *float64 `json:"jump_velocity"`
		JumpCooldown     *float64 `json:"jump_cooldown"`
		BounceFactor     *float64 `json:"bounce_factor"`
		UserWidthPixels  *float64 `json:"user_width_pixels"`
		UserHeightPixels *float64 `json:"user_height_pixels"`
	} `json:"movement"`

	Gameplay struct {
		FallThreshold   *float64 `json:"fall_threshold"`
		SpawnPosition   *vec3    `json:"spawn_position"`
		StartScore      *int     `json:"start_score"`
		ScoreDecay      *int     `json:"points_decrease_rate"`
		JumpPenalty     *int     `json:"jump_penalty"`
		DeathPenalty    *int     `json:"death_penalty"`
		TargetPulseRate *float64 `json:"target_pulse_rate"`
		AlarmDistance   *float64 `json:"alarm_distance"`
	} `json:"gameplay"`
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setColorIf(dst *object.Color, v *[3]int) {
	if v == nil {
		return
	}
	*dst = object.Color{R: clampByte(v[0]), G: clampByte(v[1]), B: clampByte(v[2])}
}

func clampByte(v int) uint8 {
	return uint8(lo.Clamp(v, 0, 255))
}

func (d settingsDoc) apply(s *config.Settings) {
	setIf(&s.Display.PixelsPerUnit, d.PixelsPerUnit)
	setColorIf(&s.Display.Background, d.BackgroundColor)
	setColorIf(&s.Display.Origin, d.OriginColor)
	setColorIf(&s.Display.User, d.UserColor)
	setColorIf(&s.Display.DefaultShape, d.DefaultShapeColor)
	setColorIf(&s.Display.Target, d.TargetColor)

	m := d.Movement
	setIf(&s.Movement.Acceleration, m.Acceleration)
	setIf(&s.Movement.MaxVelocity, m.MaxVelocity)
	setIf(&s.Movement.Friction, m.Friction)
	setIf(&s.Movement.RotateStep, m.RotateSpeed)
	setIf(&s.Movement.Gravity, m.Gravity)
	setIf(&s.Movement.JumpVelocity, m.JumpVelocity)
	setIf(&s.Movement.JumpCooldown, m.JumpCooldown)
	setIf(&s.Movement.Bounce, m.BounceFactor)
	setIf(&s.Movement.UserWidthPixels, m.UserWidthPixels)
	setIf(&s.Movement.UserHeightPixels, m.UserHeightPixels)

	g := d.Gameplay
	setIf(&s.Gameplay.FallThreshold, g.FallThreshold)
	if g.SpawnPosition != nil {
		s.Gameplay.Spawn = mgl64.Vec3(*g.SpawnPosition)
	}
	setIf(&s.Gameplay.StartScore, g.StartScore)
	setIf(&s.Gameplay.ScoreDecay, g.ScoreDecay)
	setIf(&s.Gameplay.JumpPenalty, g.JumpPenalty)
	setIf(&s.Gameplay.DeathPenalty, g.DeathPenalty)
	setIf(&s.Gameplay.TargetPulseRate, g.TargetPulseRate)
	setIf(&s.Gameplay.AlarmDistance, g.AlarmDistance)
}

// shape converts and validates one shape entry.
func (d shapeDoc) shape(def object.Color) (object.Shape, error) {
	poly := geometry.Polytope{
		Vertices: lo.Map(d.Points, func(p vec3, _ int) mgl64.Vec3 { return mgl64.Vec3(p) }),
		Edges:    lo.Map(d.Edges, func(e [2]int, _ int) geometry.Edge { return geometry.Edge(e) }),
	}
	if err := poly.Validate(); err != nil {
		return object.Shape{}, err
	}
	if d.Offset != nil {
		poly = poly.Translated(mgl64.Vec3(*d.Offset))
	}

	shape := object.Shape{Name: d.Name, Polytope: poly, Target: d.IsTarget}
	if d.Color != nil {
		c := d.Color.resolve(def)
		shape.Color = &c
	}
	return shape, nil
}

// resolve scales [0, 1] components to bytes, filling gaps from def.
func (c colorDoc) resolve(def object.Color) object.Color {
	component := func(v *float64, fallback uint8) uint8 {
		if v == nil {
			return fallback
		}
		return uint8(lo.Clamp(math.Round(*v*255), 0, 255))
	}
	return object.Color{
		R: component(c.R, def.R),
		G: component(c.G, def.G),
		B: component(c.B, def.B),
	}
}
