package loop

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/rotander/internal/draw"
	"github.com/tomz197/rotander/internal/object"
)

// drawFrame draws the current frame.
func (t *terminal) drawFrame() error {
	// On screen, session state or inactivity transitions, do a full terminal
	// clear so UI elements from the previous state don't persist on screen.
	state := State(-1)
	if t.session != nil {
		state = t.session.State()
	}
	if t.screen != t.prevScreen || state != t.prevState || t.isInactive != t.wasInactive {
		t.chunkWriter.ClearAll()
		t.canvas.ForceRedraw()
		t.prevScreen = t.screen
		t.prevState = state
		t.wasInactive = t.isInactive
	}

	t.canvas.Clear()

	var snap Snapshot
	if t.screen == screenGame {
		snap = t.session.Snapshot()
		t.drawScene(snap)
	}

	t.canvas.Render(t.chunkWriter)
	t.canvas.RenderBorder(t.chunkWriter)

	t.drawUI(snap)

	return t.chunkWriter.Flush()
}

// drawScene rasterizes the cross-sections, the player and particles.
func (t *terminal) drawScene(snap Snapshot) {
	d := t.session.Settings().Display
	t.scene = BuildScene(snap, d, t.scene)

	halfW, halfH := t.canvas.LogicalWidth()/2, t.canvas.LogicalHeight()/2
	ppu := d.PixelsPerUnit
	toScreen := func(p mgl64.Vec2) draw.Point {
		return draw.Point{X: halfW + p.X()*ppu, Y: halfH - p.Y()*ppu}
	}

	for _, prim := range t.scene {
		t.canvas.SetColor(rgb(prim.Color))
		switch prim.Kind {
		case PrimitiveSegment:
			t.canvas.DrawLine(toScreen(prim.Points[0]), toScreen(prim.Points[1]))
		case PrimitivePolygon, PrimitiveOutline:
			pts := t.canvas.BorrowPoints(len(prim.Points))
			for i, p := range prim.Points {
				pts[i] = toScreen(p)
			}
			t.canvas.DrawPolygon(pts, prim.Kind == PrimitivePolygon)
		}
	}

	for _, p := range t.particles {
		if !p.Visible() {
			continue
		}
		t.canvas.SetColor(rgb(p.Color))
		sp := toScreen(mgl64.Vec2{p.X, p.Y})
		t.canvas.SetFloat(sp.X, sp.Y)
	}
}

func rgb(c object.Color) draw.RGB {
	return draw.RGB{R: c.R, G: c.G, B: c.B}
}
