package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTesseract(t *testing.T) {
	tess := Tesseract(1)
	if len(tess.Vertices) != 16 {
		t.Errorf("got %d vertices, want 16", len(tess.Vertices))
	}
	if len(tess.Edges) != 32 {
		t.Errorf("got %d edges, want 32", len(tess.Edges))
	}
	if err := tess.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	for _, e := range tess.Edges {
		if l := tess.Vertices[e[1]].Sub(tess.Vertices[e[0]]).Len(); !floatEqual(l, 2, tolerance) {
			t.Errorf("edge %v has length %v, want 2", e, l)
		}
	}
}

func TestSlice4Tesseract(t *testing.T) {
	hp := Hyperplane{Anchor: mgl64.Vec4{0.5, 0, 0, 0}, Angle: 0}
	points := Slice4(Tesseract(1), hp)

	// x = 0.5 cuts the eight edges running along X.
	if len(points) != 8 {
		t.Fatalf("got %d points, want 8", len(points))
	}
	for _, p := range points {
		for axis := 0; axis < 3; axis++ {
			if !floatEqual(math.Abs(p[axis]), 1, tolerance) {
				t.Errorf("point %v: coordinate %d should be ±1", p, axis)
			}
		}
	}
}

func TestHyperplaneBasisOrthonormal(t *testing.T) {
	hp := Hyperplane{Angle: 0.7}
	n := hp.Normal()
	u1, u2, u3 := hp.Basis()
	for i, u := range []mgl64.Vec4{u1, u2, u3} {
		if !floatEqual(u.Dot(n), 0, tolerance) {
			t.Errorf("basis %d not orthogonal to normal", i)
		}
		if !floatEqual(u.Len(), 1, tolerance) {
			t.Errorf("basis %d not unit length", i)
		}
	}
}

func TestHyperplaneIntersectOnPlane(t *testing.T) {
	hp := Hyperplane{Anchor: mgl64.Vec4{0.2, -0.1, 0, 0}, Angle: 0.7}
	hit, ok := hp.IntersectEdge(mgl64.Vec4{-2, -2, 0.5, 0.3}, mgl64.Vec4{2, 2, 0.5, 0.3})
	if !ok {
		t.Fatal("expected a hit")
	}
	if d := hp.Normal().Dot(hit.Sub(hp.Anchor)); !floatEqual(d, 0, 1e-9) {
		t.Errorf("hit lies %v off the hyperplane", d)
	}
}
