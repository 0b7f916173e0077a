package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"
	"github.com/tomz197/rotander/internal/config"
	"github.com/tomz197/rotander/internal/geometry"
	"github.com/tomz197/rotander/internal/level"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#64C8FF")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

func main() {
	levelPath := flag.String("level", "", "Level file to slice (a built-in level when empty)")
	levelNum := flag.Int("n", 1, "Built-in level number when -level is not set")
	angle := flag.Float64("angle", 0, "Plane angle in degrees")
	x := flag.Float64("x", 0, "Anchor x")
	y := flag.Float64("y", 0, "Anchor y")
	z := flag.Float64("z", 0, "Anchor z")
	w := flag.Float64("w", 0, "Anchor w (with -4d)")
	fourD := flag.Bool("4d", false, "Slice a tesseract with a 3D hyperplane instead")
	half := flag.Float64("half", 1, "Tesseract half size (with -4d)")
	flag.Parse()

	theta := mgl64.DegToRad(*angle)
	if *fourD {
		hp := geometry.Hyperplane{Anchor: mgl64.Vec4{*x, *y, *z, *w}, Angle: theta}
		points := geometry.Slice4(geometry.Tesseract(*half), hp)
		fmt.Println(titleStyle.Render(fmt.Sprintf("tesseract (half %g) at %.1f°: %d points", *half, *angle, len(points))))
		fmt.Println(pointTable([]string{"#", "u1", "u2", "u3"}, lo.Map(points, func(p mgl64.Vec3, i int) []string {
			return []string{strconv.Itoa(i), num(p.X()), num(p.Y()), num(p.Z())}
		})))
		return
	}

	l, err := loadLevel(*levelPath, *levelNum)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load level: %v\n", err)
		os.Exit(1)
	}

	plane := geometry.NewPlane(mgl64.Vec3{*x, *y, *z}, theta)
	fmt.Println(titleStyle.Render(fmt.Sprintf("%s at %.1f° through (%g, %g, %g)", l.Name, *angle, *x, *y, *z)))

	rows := make([][]string, 0, len(l.Shapes))
	for i, s := range l.Shapes {
		sec := geometry.Slice(s.Polytope, plane)
		hull := sec.Hull()
		kind := "shape"
		if s.Target {
			kind = "target"
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			lo.Ternary(s.Name != "", s.Name, "-"),
			kind,
			strconv.Itoa(len(sec.Points)),
			strconv.Itoa(len(hull)),
			num(hull.Area()),
			lo.Ternary(sec.Empty(), "-", centroid(hull)),
		})
	}
	fmt.Println(pointTable([]string{"#", "name", "kind", "points", "hull", "area", "centroid"}, rows))
}

func loadLevel(path string, n int) (*level.Level, error) {
	if path != "" {
		return level.Load(path, config.Default())
	}
	return level.NewManager(level.Builtin(), n).Load(config.Default())
}

func pointTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		Render()
}

func centroid(h geometry.Hull) string {
	c := h.Centroid()
	return fmt.Sprintf("(%s, %s)", num(c.X()), num(c.Y()))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
