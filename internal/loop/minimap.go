package loop

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/rotander/internal/draw"
)

// Minimap cell contents, in increasing draw priority.
const (
	mapEmpty byte = iota
	mapPlane
	mapShape
	mapTarget
	mapEnemy
	mapSelf
)

// minimapColors maps cell contents to colors.
var minimapColors = [...]draw.RGB{
	mapPlane:  {R: 90, G: 90, B: 90},
	mapShape:  {R: 100, G: 200, B: 255},
	mapTarget: {R: 0, G: 255, B: 0},
	mapEnemy:  {R: 255, G: 80, B: 80},
	mapSelf:   {R: 0, G: 255, B: 255},
}

type minimapGrid [minimapSubRows][minimapWidth]byte

// mark writes v at the top-down world position p unless a higher priority
// item already occupies the cell.
func (g *minimapGrid) mark(center, p mgl64.Vec3, v byte) {
	col := int(math.Floor((p.X()-center.X())/minimapRange*float64(minimapWidth)/2 + float64(minimapWidth)/2))
	// World +y points up on the map.
	row := int(math.Floor(-(p.Y()-center.Y())/minimapRange*float64(minimapSubRows)/2 + float64(minimapSubRows)/2))
	if col < 0 || col >= minimapWidth || row < 0 || row >= minimapSubRows {
		return
	}
	if g[row][col] < v {
		g[row][col] = v
	}
}

// buildMinimap draws a top-down view around the player: the cutting line,
// the shapes' edges, enemies and the player itself.
func buildMinimap(snap Snapshot, g *minimapGrid) {
	*g = minimapGrid{}
	center := snap.Position
	sample := minimapRange / minimapWidth

	u := mgl64.Vec3{-math.Sin(snap.Angle), math.Cos(snap.Angle), 0}
	for d := -minimapRange * 1.5; d <= minimapRange*1.5; d += sample {
		g.mark(center, center.Add(u.Mul(d)), mapPlane)
	}

	for _, shape := range snap.Shapes {
		v := mapShape
		if shape.Target {
			v = mapTarget
		}
		for _, e := range shape.Edges {
			a, b := shape.Vertices[e[0]], shape.Vertices[e[1]]
			ab := b.Sub(a)
			ab[2] = 0
			steps := max(1, int(ab.Len()/sample))
			for i := 0; i <= steps; i++ {
				g.mark(center, a.Add(ab.Mul(float64(i)/float64(steps))), v)
			}
		}
	}

	for _, e := range snap.Enemies {
		g.mark(center, e.Position, mapEnemy)
	}
	g.mark(center, center, mapSelf)
}

// drawMinimap renders the grid in the top-right corner with half-block
// characters for 2x vertical resolution.
func (t *terminal) drawMinimap(termWidth, termHeight int, snap Snapshot) {
	buildMinimap(snap, &t.minimap)
	grid := &t.minimap

	// Position: top-right, below the level name
	startCol := termWidth - minimapWidth - 3 // border + padding
	startRow := 3
	if startCol < 1 || startRow+minimapHeight+1 > termHeight {
		return // Not enough space
	}

	cw := t.chunkWriter
	cw.WriteAt(startCol, startRow, "┌"+strings.Repeat("─", minimapWidth)+"┐")
	t.canvas.MarkTextDirty(startCol, startRow, minimapWidth+2)

	for termRow := 0; termRow < minimapHeight; termRow++ {
		cw.WriteAt(startCol, startRow+1+termRow, "│")
		for col := 0; col < minimapWidth; col++ {
			top := grid[termRow*2][col]
			bot := grid[termRow*2+1][col]
			switch {
			case top != mapEmpty && bot != mapEmpty && top == bot:
				cw.WriteString(draw.Fg(minimapColors[top]))
				cw.WriteRune(draw.BlockFull)
			case top != mapEmpty && top >= bot:
				cw.WriteString(draw.Fg(minimapColors[top]))
				cw.WriteRune(draw.BlockUpperHalf)
			case bot != mapEmpty:
				cw.WriteString(draw.Fg(minimapColors[bot]))
				cw.WriteRune(draw.BlockLowerHalf)
			default:
				cw.WriteString(draw.ColorReset)
				cw.WriteRune(draw.BlockEmpty)
			}
		}
		cw.WriteString(draw.ColorReset)
		cw.WriteString("│")
		t.canvas.MarkTextDirty(startCol, startRow+1+termRow, minimapWidth+2)
	}

	cw.WriteAt(startCol, startRow+1+minimapHeight, "└"+strings.Repeat("─", minimapWidth)+"┘")
	t.canvas.MarkTextDirty(startCol, startRow+1+minimapHeight, minimapWidth+2)
}
