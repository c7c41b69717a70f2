package game

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// RadiusFromBounds returns the radius of the sphere that encloses the local
// bounding box, taking the larger magnitude on every axis.
func RadiusFromBounds(mins, maxs mgl32.Vec3) float32 {
	var corner mgl32.Vec3
	for i := 0; i < 3; i++ {
		corner[i] = math32.Max(math32.Abs(mins[i]), math32.Abs(maxs[i]))
	}
	return corner.Len()
}

// BoxFromMinsMaxs builds a bounding box from explicit corner vectors.
func BoxFromMinsMaxs(mins, maxs mgl32.Vec3) cube.BBox {
	return cube.Box(mins[0], mins[1], mins[2], maxs[0], maxs[1], maxs[2])
}

// PointBox returns a zero-size bounding box at p.
func PointBox(p mgl32.Vec3) cube.BBox {
	return cube.Box(p[0], p[1], p[2], p[0], p[1], p[2])
}

// SweepBounds returns the box enclosing a volume with the given extents moved
// from start to end, outset by one unit on every face. Movement is clipped an
// epsilon away from surfaces, so near-touching geometry must still be
// candidate-tested.
func SweepBounds(start, end, mins, maxs mgl32.Vec3) cube.BBox {
	var bmin, bmax mgl32.Vec3
	for i := 0; i < 3; i++ {
		if end[i] > start[i] {
			bmin[i] = start[i] + mins[i] - 1
			bmax[i] = end[i] + maxs[i] + 1
		} else {
			bmin[i] = end[i] + mins[i] - 1
			bmax[i] = start[i] + maxs[i] + 1
		}
	}
	return BoxFromMinsMaxs(bmin, bmax)
}
