package world

import (
	"fmt"
	"log/slog"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// sector is one node of the evenly spaced, axially aligned partition tree.
// Entities chain from head through linkRecord.next, either at a leaf or at
// the first node whose split plane their box crosses, so a single entity is
// never fragmented across buckets.
type sector struct {
	// axis is 0 or 1 for split nodes, -1 for leafs.
	axis     int8
	dist     float32
	children [2]int32

	// head is the entity number of the first bucket member, -1 when empty.
	head int32
}

// createSector subdivides the box uniformly down to the configured depth,
// splitting at the midpoint of the longer horizontal axis.
func (w *World) createSector(depth int, mins, maxs mgl32.Vec3) (int32, error) {
	if w.numSectors >= maxSectorNodes {
		return 0, fmt.Errorf("%w: depth %d needs more than %d nodes", ErrSectorPoolExhausted, w.opts.Depth, maxSectorNodes)
	}
	idx := int32(w.numSectors)
	w.numSectors++

	node := &w.sectors[idx]
	node.head = -1

	if depth == w.opts.Depth {
		node.axis = -1
		node.children = [2]int32{-1, -1}
		return idx, nil
	}

	size := maxs.Sub(mins)
	if size.X() >= size.Y() {
		node.axis = 0
	} else {
		node.axis = 1
	}
	node.dist = 0.5 * (maxs[node.axis] + mins[node.axis])

	upperMins, lowerMaxs := mins, maxs
	upperMins[node.axis] = node.dist
	lowerMaxs[node.axis] = node.dist

	upper, err := w.createSector(depth+1, upperMins, maxs)
	if err != nil {
		return 0, err
	}
	lower, err := w.createSector(depth+1, mins, lowerMaxs)
	if err != nil {
		return 0, err
	}

	// children[0] owns the greater side of the split plane.
	node = &w.sectors[idx]
	node.children[0] = upper
	node.children[1] = lower
	return idx, nil
}

// locate descends from the root to the deepest node whose split plane does
// not cut the box. That node owns the box's bucket.
func (w *World) locate(box cube.BBox) int32 {
	node := int32(0)
	for {
		s := &w.sectors[node]
		if s.axis == -1 {
			return node
		}
		if box.Min()[s.axis] > s.dist {
			node = s.children[0]
		} else if box.Max()[s.axis] < s.dist {
			node = s.children[1]
		} else {
			// The box crosses the split plane.
			return node
		}
	}
}

// NumSectors returns the number of allocated partition nodes.
func (w *World) NumSectors() int {
	return w.numSectors
}

// SectorPopulation returns the number of linked entities bucketed at each
// partition node, indexed by node allocation order.
func (w *World) SectorPopulation() []int {
	counts := make([]int, w.numSectors)
	for i := range counts {
		for num := w.sectors[i].head; num >= 0; num = w.links[num].next {
			counts[i]++
		}
	}
	return counts
}

// LogSectorList dumps per-sector population counts, the operational view of
// bucket distribution.
func (w *World) LogSectorList() {
	data := orderedmap.NewOrderedMap[string, any]()
	for i, c := range w.SectorPopulation() {
		data.Set(fmt.Sprintf("sector_%d", i), c)
	}
	w.diag(slog.LevelInfo, "sector population", data)
}
