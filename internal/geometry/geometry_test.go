package geometry

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const tolerance = 1e-9

func floatEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func vec2Equal(a, b mgl64.Vec2, tol float64) bool {
	return floatEqual(a.X(), b.X(), tol) && floatEqual(a.Y(), b.Y(), tol)
}

// cube returns an axis-aligned cube with the canonical bottom/top/side edges.
func cube(center mgl64.Vec3, half float64) Polytope {
	corners := [8]mgl64.Vec3{
		{-half, -half, -half},
		{half, -half, -half},
		{half, half, -half},
		{-half, half, -half},
		{-half, -half, half},
		{half, -half, half},
		{half, half, half},
		{-half, half, half},
	}
	verts := make([]mgl64.Vec3, 8)
	for i, c := range corners {
		verts[i] = c.Add(center)
	}
	return Polytope{
		Vertices: verts,
		Edges: []Edge{
			{0, 1}, {1, 2}, {2, 3}, {3, 0},
			{4, 5}, {5, 6}, {6, 7}, {7, 4},
			{0, 4}, {1, 5}, {2, 6}, {3, 7},
		},
	}
}

func square(center mgl64.Vec2, side float64) Hull {
	h := side / 2
	return Hull{
		{center.X() - h, center.Y() - h},
		{center.X() + h, center.Y() - h},
		{center.X() + h, center.Y() + h},
		{center.X() - h, center.Y() + h},
	}
}

// sortedPoints orders points lexicographically so point sets can be compared.
func sortedPoints(points []mgl64.Vec2) []mgl64.Vec2 {
	out := append([]mgl64.Vec2(nil), points...)
	sort.Slice(out, func(i, j int) bool {
		if !floatEqual(out[i].X(), out[j].X(), 1e-9) {
			return out[i].X() < out[j].X()
		}
		return out[i].Y() < out[j].Y()
	})
	return out
}

func TestPlaneBasisIsOrthonormal(t *testing.T) {
	for _, angle := range []float64{0, 0.3, math.Pi / 2, 2, math.Pi, 5.5} {
		p := Plane{Angle: angle}
		n, u, v := p.Normal(), p.U(), p.V()

		for name, d := range map[string]float64{"n·u": n.Dot(u), "n·v": n.Dot(v), "u·v": u.Dot(v)} {
			if !floatEqual(d, 0, tolerance) {
				t.Errorf("angle %v: %s = %v, want 0", angle, name, d)
			}
		}
		for name, l := range map[string]float64{"|n|": n.Len(), "|u|": u.Len(), "|v|": v.Len()} {
			if !floatEqual(l, 1, tolerance) {
				t.Errorf("angle %v: %s = %v, want 1", angle, name, l)
			}
		}
		// Right-handed: u x v = n
		if !u.Cross(v).ApproxEqualThreshold(n, tolerance) {
			t.Errorf("angle %v: u x v = %v, want %v", angle, u.Cross(v), n)
		}
	}
}

func TestIntersectEdge(t *testing.T) {
	plane := Plane{Anchor: mgl64.Vec3{0, 0, 0}, Angle: 0} // x = 0

	tests := []struct {
		name string
		a, b mgl64.Vec3
		want mgl64.Vec3
		hit  bool
	}{
		{"crossing", mgl64.Vec3{-1, 2, 3}, mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 2, 3}, true},
		{"crossing off-center", mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{3, 4, 0}, mgl64.Vec3{0, 1, 0}, true},
		{"start on plane", mgl64.Vec3{0, 1, 1}, mgl64.Vec3{2, 1, 1}, mgl64.Vec3{0, 1, 1}, true},
		{"end on plane", mgl64.Vec3{-2, 1, 1}, mgl64.Vec3{0, 1, 1}, mgl64.Vec3{0, 1, 1}, true},
		{"miss", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{2, 0, 0}, mgl64.Vec3{}, false},
		{"parallel off plane", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 5, 0}, mgl64.Vec3{}, false},
		{"lying in plane", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 5, 5}, mgl64.Vec3{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := plane.IntersectEdge(tt.a, tt.b)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && !got.ApproxEqualThreshold(tt.want, tolerance) {
				t.Errorf("point = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntersectEdgeMatchesSignedDistances(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	randVec := func() mgl64.Vec3 {
		return mgl64.Vec3{rng.Float64()*10 - 5, rng.Float64()*10 - 5, rng.Float64()*10 - 5}
	}

	for i := 0; i < 2000; i++ {
		plane := Plane{Anchor: randVec(), Angle: rng.Float64() * 2 * math.Pi}
		a, b := randVec(), randVec()

		da, db := plane.SignedDistance(a), plane.SignedDistance(b)
		expectHit := (da < 0) != (db < 0) || da == 0 || db == 0

		got, ok := plane.IntersectEdge(a, b)
		if ok != expectHit {
			t.Fatalf("case %d: hit = %v, want %v (da=%v db=%v)", i, ok, expectHit, da, db)
		}
		if ok && !floatEqual(plane.SignedDistance(got), 0, 1e-9) {
			t.Fatalf("case %d: intersection lies %v off the plane", i, plane.SignedDistance(got))
		}
	}
}

func TestProjectUnprojectRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		plane := Plane{
			Anchor: mgl64.Vec3{rng.Float64() * 4, rng.Float64() * 4, rng.Float64() * 4},
			Angle:  rng.Float64() * 2 * math.Pi,
		}
		a := mgl64.Vec3{-6, rng.Float64()*8 - 4, rng.Float64()*8 - 4}
		b := mgl64.Vec3{6, rng.Float64()*8 - 4, rng.Float64()*8 - 4}
		hit, ok := plane.IntersectEdge(a, b)
		if !ok {
			continue
		}

		back := plane.Unproject(plane.Project(hit))
		if !back.ApproxEqualThreshold(hit, 1e-9) {
			t.Fatalf("case %d: round trip %v -> %v", i, hit, back)
		}
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1, 1},
		{2 * math.Pi, 0},
		{-0.5, 2*math.Pi - 0.5},
		{7, 7 - 2*math.Pi},
	}
	for _, tt := range tests {
		if got := WrapAngle(tt.in); !floatEqual(got, tt.want, tolerance) {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSliceCubeThroughCenter(t *testing.T) {
	sec := Slice(cube(mgl64.Vec3{}, 1), Plane{Angle: 0})

	if len(sec.Points) != 4 {
		t.Fatalf("got %d points, want 4", len(sec.Points))
	}
	if len(sec.Edges) != 4 {
		t.Fatalf("got %d edges, want 4", len(sec.Edges))
	}

	want := sortedPoints([]mgl64.Vec2{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}})
	got := sortedPoints(sec.Points)
	for i := range want {
		if !vec2Equal(got[i], want[i], tolerance) {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}

	// Every perimeter edge of the square has length 2.
	for _, e := range sec.Edges {
		if l := sec.Points[e[1]].Sub(sec.Points[e[0]]).Len(); !floatEqual(l, 2, tolerance) {
			t.Errorf("edge %v has length %v, want 2", e, l)
		}
	}
	if area := sec.Hull().Area(); !floatEqual(area, 4, tolerance) {
		t.Errorf("hull area = %v, want 4", area)
	}
}

func TestSectionHullMatchesSlice(t *testing.T) {
	wire := Polytope{
		Vertices: []mgl64.Vec3{{-1, 0, 0}, {1, 0, 0}, {-1, 0, 1}, {1, 0, 1}},
		Edges:    []Edge{{0, 1}, {2, 3}},
	}
	far := cube(mgl64.Vec3{5, 5, 0}, 1)

	for _, poly := range []Polytope{cube(mgl64.Vec3{}, 1), wire, far} {
		for _, angle := range []float64{0, 0.3, math.Pi / 4, 2} {
			plane := Plane{Anchor: mgl64.Vec3{0.1, -0.2, 0}, Angle: angle}
			got := SectionHull(poly, plane)
			want := Slice(poly, plane).Hull()
			if len(got) != len(want) {
				t.Fatalf("angle %v: SectionHull has %d points, Slice().Hull() %d", angle, len(got), len(want))
			}
			for i := range want {
				if !vec2Equal(got[i], want[i], tolerance) {
					t.Errorf("angle %v: point %d = %v, want %v", angle, i, got[i], want[i])
				}
			}
		}
	}

	if h := SectionHull(far, Plane{}); !h.Empty() {
		t.Errorf("plane missing the cube gave hull %v", h)
	}
	if h := SectionHull(wire, Plane{}); len(h) != 2 {
		t.Errorf("two crossing edges gave %d hull points, want the raw pair", len(h))
	}
}

func TestSliceEdgeCases(t *testing.T) {
	floor := Polytope{
		Vertices: []mgl64.Vec3{{-5, -5, -2}, {5, -5, -2}, {5, 5, -2}, {-5, 5, -2}},
		Edges:    []Edge{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
	}

	t.Run("miss", func(t *testing.T) {
		sec := Slice(cube(mgl64.Vec3{10, 0, 0}, 1), Plane{Angle: 0})
		if !sec.Empty() || len(sec.Edges) != 0 {
			t.Errorf("expected empty section, got %+v", sec)
		}
		if !sec.Hull().Empty() {
			t.Error("expected empty hull")
		}
	})

	t.Run("flat polygon gives a segment", func(t *testing.T) {
		sec := Slice(floor, Plane{Angle: 0})
		if len(sec.Points) != 2 {
			t.Fatalf("got %d points, want 2", len(sec.Points))
		}
		if len(sec.Edges) != 1 || sec.Edges[0] != (Edge{0, 1}) {
			t.Errorf("edges = %v, want [{0 1}]", sec.Edges)
		}
		if len(sec.Hull()) != 2 {
			t.Errorf("hull should fall back to the raw segment")
		}
	})

	t.Run("collinear points keep points, drop edges", func(t *testing.T) {
		// Three parallel rods crossing x=0 at heights on one vertical line.
		rods := Polytope{
			Vertices: []mgl64.Vec3{{-1, 0, 0}, {1, 0, 0}, {-1, 0, 1}, {1, 0, 1}, {-1, 0, 2}, {1, 0, 2}},
			Edges:    []Edge{{0, 1}, {2, 3}, {4, 5}},
		}
		sec := Slice(rods, Plane{Angle: 0})
		if len(sec.Points) != 3 {
			t.Fatalf("got %d points, want 3", len(sec.Points))
		}
		if len(sec.Edges) != 0 {
			t.Errorf("edges = %v, want none", sec.Edges)
		}
		if len(sec.Hull()) != 3 {
			t.Errorf("hull should fall back to raw points")
		}
	})
}

func TestSliceRotationRoundTrip(t *testing.T) {
	shape := cube(mgl64.Vec3{0.3, -0.2, 0.5}, 1)
	step := math.Pi / 48

	for _, angle := range []float64{0, 0.4, 1.3, 3, 6.2} {
		plane := NewPlane(mgl64.Vec3{0.1, 0.2, 0}, angle)
		before := sortedPoints(Slice(shape, plane).Points)
		after := sortedPoints(Slice(shape, plane.Rotated(step).Rotated(-step)).Points)

		if len(before) != len(after) {
			t.Fatalf("angle %v: %d points before, %d after", angle, len(before), len(after))
		}
		for i := range before {
			if !vec2Equal(before[i], after[i], 1e-9) {
				t.Errorf("angle %v: point %d moved %v -> %v", angle, i, before[i], after[i])
			}
		}
	}
}

func TestConvexHull(t *testing.T) {
	t.Run("drops interior and duplicate points", func(t *testing.T) {
		pts := []mgl64.Vec2{{0, 0}, {2, 0}, {1, 1}, {2, 2}, {0, 2}, {2, 0}, {1, 0}}
		hull, ok := ConvexHull(pts)
		if !ok {
			t.Fatal("expected a hull")
		}
		if len(hull) != 4 {
			t.Fatalf("hull = %v, want 4 corners", hull)
		}
		if !floatEqual(hull.Area(), 4, tolerance) {
			t.Errorf("area = %v, want 4", hull.Area())
		}
	})

	t.Run("counter-clockwise", func(t *testing.T) {
		hull, _ := ConvexHull([]mgl64.Vec2{{0, 0}, {0, 1}, {1, 1}, {1, 0}})
		sum := 0.0
		for i := range hull {
			j := (i + 1) % len(hull)
			sum += hull[i].X()*hull[j].Y() - hull[j].X()*hull[i].Y()
		}
		if sum <= 0 {
			t.Errorf("signed area %v, want positive", sum)
		}
	})

	degenerate := map[string][]mgl64.Vec2{
		"empty":     nil,
		"two":       {{0, 0}, {1, 1}},
		"collinear": {{0, 0}, {1, 1}, {2, 2}, {3, 3}},
		"same":      {{1, 1}, {1, 1}, {1, 1}},
	}
	for name, pts := range degenerate {
		t.Run(name, func(t *testing.T) {
			if hull, ok := ConvexHull(pts); ok {
				t.Errorf("expected no hull, got %v", hull)
			}
		})
	}
}

func TestFootprint(t *testing.T) {
	fp := Footprint(0.2, 0.3)
	if len(fp) != 4 {
		t.Fatalf("footprint has %d points", len(fp))
	}
	if !vec2Equal(fp.Centroid(), mgl64.Vec2{}, tolerance) {
		t.Errorf("centroid = %v, want origin", fp.Centroid())
	}
	if !floatEqual(fp.Area(), 0.06, tolerance) {
		t.Errorf("area = %v, want 0.06", fp.Area())
	}
}

func TestIntersectsSquares(t *testing.T) {
	tests := []struct {
		d    float64
		want bool
	}{
		{0, true},
		{0.5, true},
		{0.999, true},
		{1.001, false},
		{1.5, false},
		{-0.999, true},
		{-1.001, false},
	}
	a := square(mgl64.Vec2{0, 0}, 1)
	for _, tt := range tests {
		b := square(mgl64.Vec2{tt.d, 0}, 1)
		if got := Intersects(a, b); got != tt.want {
			t.Errorf("d=%v: Intersects = %v, want %v", tt.d, got, tt.want)
		}
	}

	// Touching edges count as contact.
	if !Intersects(a, square(mgl64.Vec2{1, 0}, 1)) {
		t.Error("touching squares should report contact")
	}
}

func TestIntersectsSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	randHull := func() Hull {
		pts := make([]mgl64.Vec2, 3+rng.Intn(6))
		cx, cy := rng.Float64()*4-2, rng.Float64()*4-2
		for i := range pts {
			pts[i] = mgl64.Vec2{cx + rng.Float64() - 0.5, cy + rng.Float64() - 0.5}
		}
		if h, ok := ConvexHull(pts); ok {
			return h
		}
		return Hull(pts)
	}

	for i := 0; i < 1000; i++ {
		a, b := randHull(), randHull()
		if Intersects(a, b) != Intersects(b, a) {
			t.Fatalf("case %d: asymmetric result for %v and %v", i, a, b)
		}
	}
}

func TestIntersectsDegenerate(t *testing.T) {
	box := square(mgl64.Vec2{}, 1)

	if Intersects(nil, box) || Intersects(box, nil) {
		t.Error("empty hull must never collide")
	}

	floor := Hull{{-5, -0.4}, {5, -0.4}}
	if !Intersects(box, floor) {
		t.Error("segment crossing the box should collide")
	}
	if Intersects(box, Hull{{-5, -0.6}, {5, -0.6}}) {
		t.Error("segment below the box should not collide")
	}
	if !Intersects(box, Hull{{0.1, 0.1}}) {
		t.Error("point inside the box should collide")
	}
}

func TestCollisionNormal(t *testing.T) {
	a := square(mgl64.Vec2{0, 2}, 1)
	b := square(mgl64.Vec2{0, 0}, 1)

	n, ok := CollisionNormal(a, b)
	if !ok || !vec2Equal(n, mgl64.Vec2{0, 1}, tolerance) {
		t.Errorf("normal = %v, %v; want (0,1), true", n, ok)
	}

	n, ok = CollisionNormal(b, b)
	if !ok || !vec2Equal(n, mgl64.Vec2{1, 0}, tolerance) {
		t.Errorf("coincident normal = %v, %v; want (1,0), true", n, ok)
	}

	if _, ok := CollisionNormal(nil, b); ok {
		t.Error("empty hull should give no normal")
	}
}

func TestReflectDoesNotGainEnergy(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	const bounce = 0.5
	for i := 0; i < 500; i++ {
		v := mgl64.Vec2{rng.Float64()*2 - 1, rng.Float64()*2 - 1}
		angle := rng.Float64() * 2 * math.Pi
		n := mgl64.Vec2{math.Cos(angle), math.Sin(angle)}

		r := Reflect(v, n)
		if !floatEqual(r.Len(), v.Len(), 1e-9) {
			t.Fatalf("pure reflection changed speed %v -> %v", v.Len(), r.Len())
		}
		if r.Mul(bounce).Len() > v.Len()+1e-12 {
			t.Fatalf("bounced speed %v exceeds %v", r.Mul(bounce).Len(), v.Len())
		}
	}
}

func TestPolytopeValidate(t *testing.T) {
	verts := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	tests := []struct {
		name    string
		edges   []Edge
		wantErr bool
	}{
		{"valid", []Edge{{0, 1}, {1, 2}, {2, 0}}, false},
		{"out of range", []Edge{{0, 3}}, true},
		{"negative", []Edge{{-1, 0}}, true},
		{"self loop", []Edge{{1, 1}}, true},
		{"duplicate reversed", []Edge{{0, 1}, {1, 0}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Polytope{Vertices: verts, Edges: tt.edges}.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
