package world

import (
	"log/slog"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mvrenn/clipworld/entity"
	"github.com/mvrenn/clipworld/game"
)

// linkRecord is the world-side bookkeeping for one entity slot. Records are
// reset on link, never freed; slots are reused across entity lifetimes.
type linkRecord struct {
	// sector indexes the owning partition node, -1 when unlinked.
	sector int32
	// next chains bucket members by entity number, -1 terminates.
	next int32

	ent *entity.Entity

	// areas holds up to two area ids; doors may legally straddle two areas.
	areas [2]int32

	clusters          []int32
	lastCluster       int32
	clustersTruncated bool
}

// Unlink removes the entity from its sector bucket and clears its linked
// flag. It is a no-op for entities that are not linked anywhere.
func (w *World) Unlink(ent *entity.Entity) {
	if !w.validSlot(ent.Number) {
		return
	}
	rec := &w.links[ent.Number]

	ent.Linked = false

	if rec.sector < 0 {
		return
	}
	sec := &w.sectors[rec.sector]
	rec.sector = -1

	if sec.head == ent.Number {
		sec.head = rec.next
		rec.next = -1
		return
	}

	for scan := sec.head; scan >= 0; scan = w.links[scan].next {
		if w.links[scan].next == ent.Number {
			w.links[scan].next = rec.next
			rec.next = -1
			return
		}
	}

	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("entity", ent.Number)
	w.diag(slog.LevelWarn, "unlink: entity not found in sector bucket", data)
}

// Link registers the entity in the partition tree under its current bounds,
// refreshing its solid encoding, absolute box and area/cluster membership.
// An already linked entity is unlinked first, so relinking is safe. Entities
// whose box touches no static-geometry leaf are outside the world and stay
// unlinked.
func (w *World) Link(ent *entity.Entity) {
	if !w.validSlot(ent.Number) {
		return
	}
	rec := &w.links[ent.Number]
	rec.ent = ent

	if rec.sector >= 0 {
		w.Unlink(ent)
	}

	// Encode the size for client-side prediction.
	if ent.WorldModel {
		ent.Solid = game.SolidWorldModel
	} else if ent.Contents&(game.ContentsSolid|game.ContentsBody) != 0 {
		ent.Solid = game.EncodeSolid(ent.Mins, ent.Maxs)
	} else {
		ent.Solid = 0
	}

	// Absolute bounds. Rotated inline models expand to their bounding
	// sphere; everything else translates its local box.
	if ent.WorldModel && (ent.Angles[0] != 0 || ent.Angles[1] != 0 || ent.Angles[2] != 0) {
		radius := game.RadiusFromBounds(ent.Mins, ent.Maxs)
		ent.AbsMin = ent.Origin.Sub(mgl32.Vec3{radius, radius, radius})
		ent.AbsMax = ent.Origin.Add(mgl32.Vec3{radius, radius, radius})
	} else {
		ent.AbsMin = ent.Origin.Add(ent.Mins)
		ent.AbsMax = ent.Origin.Add(ent.Maxs)
	}

	// Movement is clipped an epsilon away from actual edges, so outset the
	// box to keep near-touching geometry eligible for exact clips.
	abs := game.BoxFromMinsMaxs(ent.AbsMin, ent.AbsMax).Grow(1)
	ent.AbsMin = abs.Min()
	ent.AbsMax = abs.Max()

	rec.areas = [2]int32{-1, -1}
	rec.clusters = rec.clusters[:0]
	rec.lastCluster = 0
	rec.clustersTruncated = false

	leafs, lastLeaf := w.svc.BoxLeafnums(ent.AbsMin, ent.AbsMax, w.opts.MaxLeafs)
	if len(leafs) == 0 {
		// Outside the world.
		return
	}

	for _, leaf := range leafs {
		area := w.svc.LeafArea(leaf)
		if area == -1 {
			continue
		}
		if rec.areas[0] == -1 || rec.areas[0] == area {
			rec.areas[0] = area
		} else if rec.areas[1] == -1 || rec.areas[1] == area {
			rec.areas[1] = area
		} else if w.loading {
			// A third distinct area: keep the first two.
			data := orderedmap.NewOrderedMap[string, any]()
			data.Set("entity", ent.Number)
			data.Set("absmin", ent.AbsMin)
			w.diag(slog.LevelDebug, "link: entity touching three areas", data)
		}
	}

	// Store as many explicit clusters as fit, collapsing the remainder into
	// a single last-cluster value.
	seen := 0
	for _, leaf := range leafs {
		cluster := w.svc.LeafCluster(leaf)
		seen++
		if cluster == -1 {
			continue
		}
		rec.clusters = append(rec.clusters, cluster)
		if len(rec.clusters) == w.opts.MaxClusters {
			break
		}
	}
	if seen != len(leafs) {
		rec.lastCluster = w.svc.LeafCluster(lastLeaf)
		rec.clustersTruncated = true
	}

	ent.LinkCount++

	node := w.locate(abs)
	rec.sector = node
	rec.next = w.sectors[node].head
	w.sectors[node].head = ent.Number

	ent.Linked = true
}

// Areas returns the area ids the entity straddles, at most two.
func (w *World) Areas(num int32) []int32 {
	if !w.validSlot(num) {
		return nil
	}
	rec := &w.links[num]
	out := make([]int32, 0, 2)
	for _, a := range rec.areas {
		if a != -1 {
			out = append(out, a)
		}
	}
	return out
}

// Clusters returns the explicit cluster ids stored for the entity plus the
// overflow last-cluster value, and whether the explicit list was truncated.
func (w *World) Clusters(num int32) (clusters []int32, lastCluster int32, truncated bool) {
	if !w.validSlot(num) {
		return nil, 0, false
	}
	rec := &w.links[num]
	return rec.clusters, rec.lastCluster, rec.clustersTruncated
}

// Sector returns the partition node owning the entity's bucket, -1 when the
// entity is unlinked.
func (w *World) Sector(num int32) int32 {
	if !w.validSlot(num) {
		return -1
	}
	return w.links[num].sector
}

func (w *World) validSlot(num int32) bool {
	return num >= 0 && int(num) < len(w.links)
}
