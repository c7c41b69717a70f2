package entity

import "github.com/go-gl/mathgl/mgl32"

// Type classifies an entity for the sweep filter rules.
type Type uint8

const (
	TypeGeneral Type = iota
	TypeProjectile
)

// Flag is a bitset of per-entity behavior flags consulted by the world core.
type Flag uint32

const (
	// FlagCapsule makes the entity clip as a capsule instead of a box.
	FlagCapsule Flag = 1 << iota
	// FlagOwnerNotShared excludes the entity from the owner-sharing rules:
	// projectiles from the same owner still collide with it.
	FlagOwnerNotShared
	// FlagDead marks the entity dead; mesh refinement skips dead entities
	// unless the trace asks for them.
	FlagDead
)

// Entity is the public state of one dynamic object. The storage is owned by
// the host's entity store; the world core reads it during link and clip
// operations and writes only the fields documented as link-owned.
type Entity struct {
	Number int32
	Type   Type
	Flags  Flag

	Origin mgl32.Vec3
	Angles mgl32.Vec3

	// Mins and Maxs are the local bounding box around Origin.
	Mins mgl32.Vec3
	Maxs mgl32.Vec3

	// AbsMin and AbsMax are the world-space bounds, link-owned: recomputed
	// and outset by Link, stale between Link calls.
	AbsMin mgl32.Vec3
	AbsMax mgl32.Vec3

	Contents int32

	// Owner is the entity number of the spawner, EntityNumNone when unowned.
	Owner int32

	// WorldModel is set when the entity's volume is an inline model of the
	// static geometry rather than a plain box.
	WorldModel bool
	ModelIndex int32
	ModelScale mgl32.Vec3

	// Mesh is the opaque articulated-mesh collision body handed to the mesh
	// collider, nil when the entity has none.
	Mesh any

	// Solid is the link-owned encoded size replicated for prediction.
	Solid int32

	// Linked and LinkCount are link-owned. LinkCount increments on every
	// successful Link so dependent systems can detect movement without
	// comparing full state.
	Linked    bool
	LinkCount int32
}

// HasFlag reports whether all bits of f are set.
func (e *Entity) HasFlag(f Flag) bool {
	return e.Flags&f == f
}
