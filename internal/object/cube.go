package object

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/rotander/internal/geometry"
)

// cubeCorners lists unit cube corners: bottom face (z-) counter-clockwise,
// then the top face in the same order.
var cubeCorners = [8]mgl64.Vec3{
	{-1, -1, -1},
	{1, -1, -1},
	{1, 1, -1},
	{-1, 1, -1},
	{-1, -1, 1},
	{1, -1, 1},
	{1, 1, 1},
	{-1, 1, 1},
}

// cubeEdges is the canonical layout: bottom ring, top ring, then the four
// vertical side edges.
var cubeEdges = []geometry.Edge{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// NewCube builds an axis-aligned cube around center with the given half
// extent. The edge slice is shared between cubes and must not be mutated.
func NewCube(center mgl64.Vec3, half float64) geometry.Polytope {
	verts := make([]mgl64.Vec3, len(cubeCorners))
	for i, c := range cubeCorners {
		verts[i] = center.Add(c.Mul(half))
	}
	return geometry.Polytope{Vertices: verts, Edges: cubeEdges}
}
