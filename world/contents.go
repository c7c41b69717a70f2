package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mvrenn/clipworld/game"
	"github.com/mvrenn/clipworld/internal"
)

// PointContents returns the union of the static-geometry content bits at p
// and the content bits of every entity whose exact shape contains p, except
// the pass entity. Pass game.EntityNumNone to exclude nothing.
func (w *World) PointContents(p mgl32.Vec3, passEntity int32) int32 {
	contents := w.svc.PointContents(p, w.svc.InlineModel(0))

	scratch := internal.TouchListPool.Get().(*[]int32)
	touchlist, _ := w.areaEntitiesInto(game.PointBox(p), (*scratch)[:0], w.opts.MaxEntities)
	defer func() {
		*scratch = touchlist[:0]
		internal.TouchListPool.Put(scratch)
	}()

	for _, num := range touchlist {
		if num == passEntity {
			continue
		}
		hit := w.store.Entity(num)
		if hit == nil {
			continue
		}

		handle := w.clipHandleForEntity(hit)
		contents |= w.svc.TransformedPointContents(p, handle, hit.Origin, hit.Angles)
	}

	return contents
}
