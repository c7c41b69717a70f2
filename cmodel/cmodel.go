// Package cmodel declares the collision services the world core consumes.
// The static-geometry backend and the articulated-mesh collider are owned by
// the host; the core only composes their answers.
package cmodel

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mvrenn/clipworld/entity"
)

// Handle is an opaque reference to a clippable shape owned by the static
// geometry backend: an inline model, or a temporary box/capsule model.
type Handle uint32

// Service bridges the static-geometry collision backend.
type Service interface {
	// InlineModel returns the handle for the inline model at the given
	// index. Index 0 is the world itself.
	InlineModel(index int32) Handle
	// TempBoxModel returns a handle for a temporary shape built from local
	// bounds, carrying the given content bits and clipping as a capsule when
	// capsule is set.
	TempBoxModel(mins, maxs mgl32.Vec3, contents int32, capsule bool) Handle
	// ModelBounds returns the bounding box of the model behind h.
	ModelBounds(h Handle) (mins, maxs mgl32.Vec3)

	// BoxTrace sweeps a volume against the model behind h.
	BoxTrace(start, end, mins, maxs mgl32.Vec3, h Handle, mask int32, capsule bool) Trace
	// TransformedBoxTrace is BoxTrace against a model positioned at origin
	// with the given orientation.
	TransformedBoxTrace(start, end, mins, maxs mgl32.Vec3, h Handle, mask int32, origin, angles mgl32.Vec3, capsule bool) Trace

	// PointContents returns the content bits at p inside the model behind h.
	PointContents(p mgl32.Vec3, h Handle) int32
	// TransformedPointContents is PointContents against a positioned model.
	TransformedPointContents(p mgl32.Vec3, h Handle, origin, angles mgl32.Vec3) int32

	// BoxLeafnums enumerates static-geometry leafs overlapping the box, up
	// to max, and reports the last leaf visited by the walk even when the
	// result list filled up.
	BoxLeafnums(mins, maxs mgl32.Vec3, max int) (leafs []int32, lastLeaf int32)
	// LeafArea and LeafCluster map a leaf to its area/cluster, -1 when the
	// leaf has none.
	LeafArea(leaf int32) int32
	LeafCluster(leaf int32) int32
}

// MeshCollider refines a coarse box hit against an entity's articulated mesh.
type MeshCollider interface {
	// Detect sweeps a sphere of the given radius from start to end against
	// the mesh body of ent and returns the intersections found. An empty
	// result means the coarse box hit did not touch the actual mesh.
	Detect(ent *entity.Entity, angles, origin mgl32.Vec3, start, end mgl32.Vec3, scale mgl32.Vec3, radius float32, lod int) []MeshHit
}

// EntityStore resolves entity numbers to public entity state. It is consulted
// read-only; nil means the slot is unused.
type EntityStore interface {
	Entity(num int32) *entity.Entity
}
