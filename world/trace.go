package world

import (
	"context"
	"log/slog"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mvrenn/clipworld/cmodel"
	"github.com/mvrenn/clipworld/entity"
	"github.com/mvrenn/clipworld/game"
	"github.com/mvrenn/clipworld/internal"
)

// moveClip carries the parameters and accumulating result of one sweep. It
// lives on the stack for the duration of a single Trace call.
type moveClip struct {
	bounds     cube.BBox // encloses the test volume along the entire move
	mins, maxs mgl32.Vec3
	start, end mgl32.Vec3

	passEntity int32
	mask       int32
	capsule    bool
	flags      int32
	lod        int

	trace cmodel.Trace
}

// clipHandleForEntity returns a shape handle usable for clipping against the
// entity: the inline model for world-geometry entities, a temporary box or
// capsule built from its bounds otherwise.
func (w *World) clipHandleForEntity(ent *entity.Entity) cmodel.Handle {
	if ent.WorldModel {
		return w.svc.InlineModel(ent.ModelIndex)
	}
	return w.svc.TempBoxModel(ent.Mins, ent.Maxs, ent.Contents, ent.HasFlag(entity.FlagCapsule))
}

func extentsOrZero(mins, maxs *mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	var m, x mgl32.Vec3
	if mins != nil {
		m = *mins
	}
	if maxs != nil {
		x = *maxs
	}
	return m, x
}

// Trace moves the given volume through the world from start to end and
// returns the first obstruction, composing the static-geometry sweep with
// exact clips against every candidate entity. passEntity and entities owned
// by it are explicitly not checked. Nil extents sweep a point.
func (w *World) Trace(start, end mgl32.Vec3, mins, maxs *mgl32.Vec3, passEntity int32, mask int32, capsule bool, flags int32, lod int) cmodel.Trace {
	m, x := extentsOrZero(mins, maxs)

	var clip moveClip

	// Clip to the static world first.
	clip.trace = w.svc.BoxTrace(start, end, m, x, w.svc.InlineModel(0), mask, capsule)
	if clip.trace.Fraction != 1 {
		clip.trace.EntityNum = game.EntityNumWorld
	} else {
		clip.trace.EntityNum = game.EntityNumNone
	}
	if clip.trace.Fraction == 0 {
		// Blocked immediately by the world.
		return clip.trace
	}

	clip.start = start
	clip.end = end
	clip.mins = m
	clip.maxs = x
	clip.passEntity = passEntity
	clip.mask = mask
	clip.capsule = capsule
	clip.flags = flags
	clip.lod = lod
	clip.bounds = game.SweepBounds(start, end, m, x)

	w.clipMoveToEntities(&clip)

	return clip.trace
}

// ClipToEntity sweeps the volume against a single entity's exact shape.
func (w *World) ClipToEntity(start, end mgl32.Vec3, mins, maxs *mgl32.Vec3, num int32, mask int32, capsule bool) cmodel.Trace {
	var tr cmodel.Trace

	touch := w.store.Entity(num)
	if touch == nil || touch.Contents&mask == 0 {
		// No brushes of a type we are looking for.
		tr.Fraction = 1
		return tr
	}

	m, x := extentsOrZero(mins, maxs)
	handle := w.clipHandleForEntity(touch)

	angles := touch.Angles
	if !touch.WorldModel {
		// Boxes don't rotate.
		angles = mgl32.Vec3{}
	}

	tr = w.svc.TransformedBoxTrace(start, end, m, x, handle, mask, touch.Origin, angles, capsule)
	if tr.Fraction < 1 {
		tr.EntityNum = touch.Number
	}
	return tr
}

func (w *World) clipMoveToEntities(clip *moveClip) {
	scratch := internal.TouchListPool.Get().(*[]int32)
	touchlist, _ := w.areaEntitiesInto(clip.bounds, (*scratch)[:0], w.opts.MaxEntities)
	defer func() {
		*scratch = touchlist[:0]
		internal.TouchListPool.Put(scratch)
	}()

	passOwner := int32(-1)
	passOwnerShared := true
	if passEnt := w.store.Entity(clip.passEntity); passEnt != nil {
		if clip.passEntity != game.EntityNumNone && passEnt.Owner != game.EntityNumNone {
			passOwner = passEnt.Owner
		}
		if passEnt.HasFlag(entity.FlagOwnerNotShared) {
			passOwnerShared = false
		}
	}

	for _, num := range touchlist {
		if clip.trace.AllSolid {
			// The volume started fully embedded; nothing can be closer.
			return
		}

		touch := w.store.Entity(num)
		if touch == nil {
			continue
		}

		if skip := w.skipCandidate(clip, touch, passOwner, passOwnerShared); skip {
			continue
		}

		handle := w.clipHandleForEntity(touch)

		angles := touch.Angles
		if !touch.WorldModel {
			// Boxes don't rotate.
			angles = mgl32.Vec3{}
		}

		// Snapshot taken before this candidate's exact clip is folded in;
		// mesh refinement reverts to it when the box hit was a false
		// positive.
		prev := clip.trace

		tr := w.svc.TransformedBoxTrace(clip.start, clip.end, clip.mins, clip.maxs, handle, clip.mask, touch.Origin, angles, clip.capsule)

		if tr.AllSolid {
			clip.trace.AllSolid = true
			tr.EntityNum = touch.Number
		} else if tr.StartSolid {
			clip.trace.StartSolid = true
			tr.EntityNum = touch.Number
			clip.trace.EntityNum = touch.Number
		}

		if tr.Fraction < clip.trace.Fraction {
			// A startsolid recorded by an earlier candidate survives even
			// when a nearer clean hit replaces the rest of the trace.
			wasStartSolid := clip.trace.StartSolid

			tr.EntityNum = touch.Number
			clip.trace = tr
			clip.trace.StartSolid = tr.StartSolid || wasStartSolid
		}

		if clip.flags&game.TraceMesh != 0 && clip.trace.EntityNum == touch.Number {
			w.refineMeshHit(clip, touch, prev)
		}
	}
}

// skipCandidate applies the pass-entity and content filters, in order.
func (w *World) skipCandidate(clip *moveClip, touch *entity.Entity, passOwner int32, passOwnerShared bool) bool {
	if clip.passEntity != game.EntityNumNone {
		if touch.Number == clip.passEntity {
			// Never clip against the pass entity itself.
			return true
		}
		if touch.Owner == clip.passEntity {
			if touch.HasFlag(entity.FlagOwnerNotShared) {
				if clip.mask != game.MaskShotBlade && clip.mask != game.MaskShot {
					// Not a beam hitting the other projectile.
					return true
				}
			} else {
				// Don't clip against our own projectiles.
				return true
			}
		}
		if touch.Owner == passOwner && !touch.HasFlag(entity.FlagOwnerNotShared) && passOwnerShared {
			// Don't clip against sibling projectiles from our owner.
			return true
		}
		if touch.Type == entity.TypeProjectile && !touch.HasFlag(entity.FlagOwnerNotShared) && touch.Owner == passOwner {
			return true
		}
	}

	if touch.Contents&clip.mask == 0 {
		return true
	}

	if (clip.mask == game.MaskShotBlade || clip.mask == game.MaskShot) &&
		touch.Contents > 0 && touch.Contents&game.ContentsNoShot != 0 {
		return true
	}

	return false
}

// refineMeshHit escalates the winning coarse hit against touch to the
// articulated-mesh collider. On a miss the trace reverts to prev, the state
// before this candidate was folded in; on a hit only the impact position,
// normal and optionally the surface index are overwritten.
func (w *World) refineMeshHit(clip *moveClip, touch *entity.Entity, prev cmodel.Trace) {
	if w.mesh == nil || touch.Mesh == nil {
		return
	}
	if touch.HasFlag(entity.FlagDead) && clip.flags&game.TraceHitDead == 0 {
		return
	}

	var radius float32
	if clip.mins[0] != 0 || clip.maxs[0] != 0 {
		radius = (clip.maxs[0] - clip.mins[0]) / 2
	}
	if clip.flags&game.TraceThick != 0 && radius < 1 {
		radius = 1
	}

	angles := touch.Angles
	angles[0] = 0 // pitch
	angles[2] = 0 // roll

	if w.log.Enabled(context.Background(), slog.LevelDebug) {
		w.log.Debug("mesh trace",
			"world", w.id,
			"entity", touch.Number,
			"lod", clip.lod,
			"length", clip.end.Sub(clip.start).Len(),
		)
	}

	hits := w.mesh.Detect(touch, angles, touch.Origin, clip.start, clip.end, touch.ModelScale, radius, clip.lod)

	best := -1
	for i, h := range hits {
		if h.EntityNum == touch.Number {
			best = i
			break
		}
	}

	if best == -1 {
		// Hit the bounding box but not the mesh itself.
		clip.trace = prev
		return
	}

	clip.trace.EndPos = hits[best].Position
	clip.trace.Normal = hits[best].Normal
	if clip.flags&game.TraceSurfaceIndex != 0 && clip.trace.EntityNum == hits[best].EntityNum {
		clip.trace.SurfaceFlags = hits[best].SurfaceIndex
	}
}
