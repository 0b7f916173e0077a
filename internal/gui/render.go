package gui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tomz197/rotander/internal/config"
	"github.com/tomz197/rotander/internal/loop"
	"github.com/tomz197/rotander/internal/object"
)

// Minimap layout in screen pixels; the view spans mapRange world units
// each side of the player.
const (
	mapSize   = 160
	mapMargin = 10
	mapRange  = 8.0
)

var (
	colorMapBackground = color.RGBA{0, 0, 0, 160}
	colorMapPlane      = color.RGBA{90, 90, 90, 255}
	colorMapSelf       = color.RGBA{0, 255, 255, 255}
	colorOverlay       = color.RGBA{0, 0, 0, 170}
)

func rgba(c object.Color) color.RGBA {
	return color.RGBA{c.R, c.G, c.B, 255}
}

// Draw renders the current screen.
func (g *Game) Draw(screen *ebiten.Image) {
	d := g.settings().Display
	screen.Fill(rgba(d.Background))

	switch g.screen {
	case screenStart:
		lines := []string{
			"ROTANDER",
			"",
			"A/D or arrows  move along the plane",
			"W/SPACE        jump",
			"S              drop faster",
			"I/O or wheel   rotate the plane",
			"ESC            pause",
			"Q              quit",
			"",
			"Press SPACE to start",
		}
		if g.loadErr != nil {
			lines = append(lines, "", g.loadErr.Error())
		}
		drawCenteredText(screen, lines)
	case screenFinished:
		drawCenteredText(screen, []string{
			"ALL LEVELS CLEARED",
			fmt.Sprintf("Final score: %d", g.totalScore),
			"",
			"Press SPACE to play again",
		})
	case screenGame:
		snap := g.session.Snapshot()
		g.drawScene(screen, snap, d)
		g.drawHUD(screen, snap)
		drawMinimap(screen, snap, d)
		g.drawOverlay(screen, snap)
	}
}

// toScreen maps plane-local world units to pixels with the player anchor at
// the window center and y pointing up.
func toScreen(p mgl64.Vec2, d config.Display) (float32, float32) {
	x := float64(d.WindowWidth)/2 + p.X()*d.PixelsPerUnit
	y := float64(d.WindowHeight)/2 - p.Y()*d.PixelsPerUnit
	return float32(x), float32(y)
}

func (g *Game) drawScene(screen *ebiten.Image, snap loop.Snapshot, d config.Display) {
	g.scene = loop.BuildScene(snap, d, g.scene)
	for _, prim := range g.scene {
		c := rgba(prim.Color)
		switch prim.Kind {
		case loop.PrimitivePolygon:
			g.fillConvex(screen, prim.Points, c, d)
		case loop.PrimitiveOutline:
			for i, p := range prim.Points {
				q := prim.Points[(i+1)%len(prim.Points)]
				x0, y0 := toScreen(p, d)
				x1, y1 := toScreen(q, d)
				vector.StrokeLine(screen, x0, y0, x1, y1, 3, c, true)
			}
		case loop.PrimitiveSegment:
			x0, y0 := toScreen(prim.Points[0], d)
			x1, y1 := toScreen(prim.Points[1], d)
			vector.StrokeLine(screen, x0, y0, x1, y1, 2, c, true)
		}
	}

	for _, p := range g.particles {
		if !p.Visible() {
			continue
		}
		x, y := toScreen(mgl64.Vec2{p.X, p.Y}, d)
		vector.DrawFilledRect(screen, x-1.5, y-1.5, 3, 3, rgba(p.Color), false)
	}
}

// fillConvex draws a convex polygon as a triangle fan.
func (g *Game) fillConvex(screen *ebiten.Image, pts []mgl64.Vec2, c color.RGBA, d config.Display) {
	if len(pts) < 3 {
		return
	}
	r, gg, b := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255

	g.vertices = g.vertices[:0]
	for _, p := range pts {
		x, y := toScreen(p, d)
		g.vertices = append(g.vertices, ebiten.Vertex{
			DstX: x, DstY: y,
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: gg, ColorB: b, ColorA: 1,
		})
	}
	g.indices = g.indices[:0]
	for i := 1; i+1 < len(pts); i++ {
		g.indices = append(g.indices, 0, uint16(i), uint16(i+1))
	}
	screen.DrawTriangles(g.vertices, g.indices, g.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (g *Game) drawHUD(screen *ebiten.Image, snap loop.Snapshot) {
	lines := []string{
		fmt.Sprintf("Level %d: %s", g.opts.Levels.Current(), g.session.Level().Name),
		fmt.Sprintf("Points: %d", snap.Score),
		fmt.Sprintf("Angle:  %.1f deg", snap.Angle*180/math.Pi),
		fmt.Sprintf("Pos:    %.2f %.2f %.2f", snap.Position.X(), snap.Position.Y(), snap.Position.Z()),
	}
	switch {
	case !snap.HasEnemies:
		lines = append(lines, "Enemy:  N/A")
	case snap.Alarm:
		lines = append(lines, fmt.Sprintf("Enemy:  %.2f  !!", snap.NearestEnemy))
	default:
		lines = append(lines, fmt.Sprintf("Enemy:  %.2f", snap.NearestEnemy))
	}
	if g.totalScore > 0 {
		lines = append(lines, fmt.Sprintf("Total:  %d", g.totalScore))
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 10, 10)
}

func (g *Game) drawOverlay(screen *ebiten.Image, snap loop.Snapshot) {
	var lines []string
	switch snap.State {
	case loop.StatePaused:
		lines = []string{"PAUSED", "", "ESC / SPACE to resume, Q to quit"}
	case loop.StateComplete:
		next := "Press SPACE for the next level"
		if !g.opts.Levels.HasNext() {
			next = "Press SPACE to finish"
		}
		lines = []string{"LEVEL COMPLETE", fmt.Sprintf("Points left: %d", snap.Score), "", next}
	case loop.StateEliminated:
		lines = []string{"ELIMINATED", "You ran out of points.", "", "Press SPACE to return to the title"}
	default:
		return
	}
	b := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), colorOverlay, false)
	drawCenteredText(screen, lines)
}

// drawCenteredText prints lines centered in the debug font (6x16 cells).
func drawCenteredText(screen *ebiten.Image, lines []string) {
	const charW, lineH = 6, 16
	b := screen.Bounds()
	top := b.Dy()/2 - len(lines)*lineH/2
	for i, line := range lines {
		x := b.Dx()/2 - len(line)*charW/2
		ebitenutil.DebugPrintAt(screen, line, x, top+i*lineH)
	}
}

// drawMinimap draws a top-down view around the player in the top-right
// corner: the cutting line, shape edges, enemies and the player.
func drawMinimap(screen *ebiten.Image, snap loop.Snapshot, d config.Display) {
	b := screen.Bounds()
	x0 := b.Dx() - mapSize - mapMargin
	y0 := mapMargin
	mm := screen.SubImage(image.Rect(x0, y0, x0+mapSize, y0+mapSize)).(*ebiten.Image)
	vector.DrawFilledRect(mm, float32(x0), float32(y0), mapSize, mapSize, colorMapBackground, false)

	cx, cy := float64(x0)+mapSize/2, float64(y0)+mapSize/2
	scale := mapSize / 2 / mapRange
	toMap := func(p mgl64.Vec3) (float32, float32) {
		return float32(cx + (p.X()-snap.Position.X())*scale), float32(cy - (p.Y()-snap.Position.Y())*scale)
	}

	u := mgl64.Vec3{-math.Sin(snap.Angle), math.Cos(snap.Angle), 0}
	ax, ay := toMap(snap.Position.Sub(u.Mul(mapRange * 2)))
	bx, by := toMap(snap.Position.Add(u.Mul(mapRange * 2)))
	vector.StrokeLine(mm, ax, ay, bx, by, 1, colorMapPlane, true)

	for _, s := range snap.Shapes {
		c := rgba(s.ColorOr(d.DefaultShape))
		if s.Target {
			c = rgba(d.Target)
		}
		for _, e := range s.Edges {
			px, py := toMap(s.Vertices[e[0]])
			qx, qy := toMap(s.Vertices[e[1]])
			vector.StrokeLine(mm, px, py, qx, qy, 1, c, true)
		}
	}

	for _, e := range snap.Enemies {
		ex, ey := toMap(e.Position)
		half := float32(math.Max(2, e.HalfExtent*scale))
		vector.DrawFilledRect(mm, ex-half, ey-half, half*2, half*2, rgba(d.Enemy), false)
	}

	sx, sy := toMap(snap.Position)
	vector.DrawFilledRect(mm, sx-2, sy-2, 4, 4, colorMapSelf, false)
}
