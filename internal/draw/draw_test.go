package draw

import (
	"bytes"
	"strings"
	"testing"
)

var red = RGB{255, 0, 0}

func TestDrawLineSetsEndpoints(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.SetColor(red)
	c.DrawLine(Point{0, 0}, Point{9, 9})

	for _, p := range [][2]int{{0, 0}, {9, 9}, {5, 5}} {
		got, ok := c.At(p[0], p[1])
		if !ok || got != red {
			t.Errorf("pixel %v = %v (set %v), want red", p, got, ok)
		}
	}
	if _, ok := c.At(9, 0); ok {
		t.Error("pixel off the diagonal was set")
	}
}

func TestDrawLineClipsFarSegments(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.DrawLine(Point{-1e9, 5}, Point{1e9, 5})
	for x := 0; x < 10; x++ {
		if _, ok := c.At(x, 5); !ok {
			t.Errorf("pixel (%d, 5) not set by a clipped horizontal line", x)
		}
	}

	c.Clear()
	c.DrawLine(Point{-100, -100}, Point{-50, -20})
	for i := range c.pixels {
		if c.pixels[i] != 0 {
			t.Fatal("segment outside the canvas drew pixels")
		}
	}
}

func TestFillRect(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.SetColor(red)
	c.FillRect(2, 2, 4, 4)

	if _, ok := c.At(4, 4); !ok {
		t.Error("rectangle interior not filled")
	}
	if _, ok := c.At(8, 8); ok {
		t.Error("pixel outside the rectangle was set")
	}
}

func TestRenderOnlyChangedCells(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetColor(red)
	c.SetFloat(1, 0)

	var first bytes.Buffer
	c.Render(&first)
	if !strings.Contains(first.String(), "\033[38;2;255;0;0m") {
		t.Errorf("first frame has no truecolor escape: %q", first.String())
	}
	if !strings.ContainsRune(first.String(), BlockUpperHalf) {
		t.Errorf("first frame has no half block: %q", first.String())
	}

	var second bytes.Buffer
	c.Render(&second)
	if second.Len() != 0 {
		t.Errorf("unchanged frame wrote %q", second.String())
	}

	c.MarkTextDirty(2, 1, 1)
	var third bytes.Buffer
	c.Render(&third)
	if !strings.Contains(third.String(), "\033[1;2H") {
		t.Errorf("dirty cell not repainted: %q", third.String())
	}
}

func TestRenderTwoColorsInOneCell(t *testing.T) {
	c := NewScaledCanvas(1, 1, 1, 2)
	c.SetColor(red)
	c.setPixel(0, 0)
	c.SetColor(RGB{0, 0, 255})
	c.setPixel(0, 1)

	var out bytes.Buffer
	c.Render(&out)
	s := out.String()
	if !strings.Contains(s, "\033[48;2;0;0;255m") || !strings.Contains(s, "\033[38;2;255;0;0m") {
		t.Errorf("expected red over blue, got %q", s)
	}
}

func TestLogicalToTerminal(t *testing.T) {
	c := NewScaledCanvas(80, 24, 800, 600)
	col, row := c.LogicalToTerminal(400, 300)
	if col != 41 || row != 13 {
		t.Errorf("center maps to (%d, %d), want (41, 13)", col, row)
	}
}

func TestChunkWriterAppliesOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 3)
	cw.WriteAt(1, 1, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\033[4;3Hhi" {
		t.Errorf("got %q", got)
	}
}

func TestChunkWriterOffsetsAndFlushes(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 2)

	cw.WriteAt(1, 1, "hi")
	if out.Len() != 0 {
		t.Fatal("ChunkWriter wrote before Flush")
	}
	if cw.Len() == 0 {
		t.Fatal("nothing buffered")
	}
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush() = %v", err)
	}
	if got, want := out.String(), "\033[3;4Hhi"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if cw.Len() != 0 {
		t.Error("buffer not reset after Flush")
	}
}

func TestChunkWriterLargeFrame(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	frame := strings.Repeat("x", maxChunkSize*3+7)
	cw.WriteString(frame)
	cw.ClearAll()
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush() = %v", err)
	}
	if want := frame + "\033[H\033[2J"; out.String() != want {
		t.Errorf("flushed %d bytes, want %d", out.Len(), len(want))
	}
}

func TestFixedSize(t *testing.T) {
	w, h, err := FixedSize(80, 24)()
	if w != 80 || h != 24 || err != nil {
		t.Errorf("FixedSize(80, 24)() = %d, %d, %v", w, h, err)
	}
}
