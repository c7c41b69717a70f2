package world

import (
	"log/slog"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// AreaResult is the outcome of a region query. Entities are reported in
// traversal emission order, the only ordering callers may rely on. Truncated
// is set when the capacity was reached and further matches were dropped.
type AreaResult struct {
	Entities  []int32
	Truncated bool
}

type areaParms struct {
	qmin, qmax mgl32.Vec3
	list       []int32
	max        int
	truncated  bool
}

// AreaEntities collects every linked entity whose absolute box overlaps the
// query box, up to max results. Overlap here is a box test on the outset
// absolute bounds; inline-model entities may not actually touch.
func (w *World) AreaEntities(box cube.BBox, max int) AreaResult {
	list, truncated := w.areaEntitiesInto(box, make([]int32, 0, 16), max)
	return AreaResult{Entities: list, Truncated: truncated}
}

// areaEntitiesInto runs the traversal appending into a caller-supplied list,
// letting sweeps reuse pooled scratch space.
func (w *World) areaEntitiesInto(box cube.BBox, list []int32, max int) ([]int32, bool) {
	ap := areaParms{
		qmin: box.Min(),
		qmax: box.Max(),
		list: list,
		max:  max,
	}
	w.areaEntities(0, &ap)
	return ap.list, ap.truncated
}

func (w *World) areaEntities(node int32, ap *areaParms) {
	s := &w.sectors[node]

	for num := s.head; num >= 0; {
		rec := &w.links[num]
		next := rec.next
		ent := rec.ent

		if ent.AbsMin[0] > ap.qmax[0] ||
			ent.AbsMin[1] > ap.qmax[1] ||
			ent.AbsMin[2] > ap.qmax[2] ||
			ent.AbsMax[0] < ap.qmin[0] ||
			ent.AbsMax[1] < ap.qmin[1] ||
			ent.AbsMax[2] < ap.qmin[2] {
			num = next
			continue
		}

		if len(ap.list) == ap.max {
			ap.truncated = true
			data := orderedmap.NewOrderedMap[string, any]()
			data.Set("capacity", ap.max)
			w.diag(slog.LevelDebug, "area query: result capacity reached", data)
			return
		}
		ap.list = append(ap.list, num)
		num = next
	}

	if s.axis == -1 {
		return
	}

	// Recurse into every half-space the query box can touch.
	if ap.qmax[s.axis] > s.dist {
		w.areaEntities(s.children[0], ap)
	}
	if ap.qmin[s.axis] < s.dist {
		w.areaEntities(s.children[1], ap)
	}
}
