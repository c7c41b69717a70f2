package cmodel

import "github.com/go-gl/mathgl/mgl32"

// Trace is the result of sweeping a volume from a start to an end point.
type Trace struct {
	// AllSolid is set when the swept volume was fully inside a solid for the
	// entire move. StartSolid is set when it started inside a solid.
	AllSolid   bool
	StartSolid bool

	// Fraction is how far along the sweep the first obstruction was hit,
	// 1.0 when the move completed without hitting anything.
	Fraction float32

	// EndPos is the final position, and Normal the surface normal at the
	// impact point when Fraction < 1.
	EndPos mgl32.Vec3
	Normal mgl32.Vec3

	SurfaceFlags int32
	Contents     int32

	// EntityNum identifies what was hit: an entity number,
	// game.EntityNumWorld for static geometry, game.EntityNumNone for a
	// clean move.
	EntityNum int32
}

// MeshHit is one intersection reported by the articulated-mesh collider.
type MeshHit struct {
	EntityNum    int32
	Position     mgl32.Vec3
	Normal       mgl32.Vec3
	SurfaceIndex int32
}
