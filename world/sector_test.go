package world

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"github.com/mvrenn/clipworld/game"
)

func TestSectorTreeShape(t *testing.T) {
	w, _, _ := defaultWorld(t)

	// depth 4 over cubic bounds: a full tree of 31 nodes, 16 of them leafs.
	require.Equal(t, 31, w.NumSectors())

	leafs := 0
	for i := 0; i < w.numSectors; i++ {
		s := &w.sectors[i]
		if s.axis == -1 {
			leafs++
			require.Equal(t, [2]int32{-1, -1}, s.children)
		} else {
			require.GreaterOrEqual(t, s.children[0], int32(0))
			require.GreaterOrEqual(t, s.children[1], int32(0))
		}
	}
	require.Equal(t, 16, leafs)

	// Equal extents tie-break to the x axis at the root; the halved x then
	// makes y the longer extent one level down.
	require.EqualValues(t, 0, w.sectors[0].axis)
	require.EqualValues(t, 0, w.sectors[0].dist)
	require.EqualValues(t, 1, w.sectors[w.sectors[0].children[0]].axis)
	require.EqualValues(t, 1, w.sectors[w.sectors[0].children[1]].axis)
}

func TestSectorPoolExhausted(t *testing.T) {
	g := newFakeGeometry(mgl32.Vec3{-512, -512, -512}, mgl32.Vec3{512, 512, 512})

	// Depth 5 still fits the 64-node pool (63 nodes), depth 6 cannot.
	w, err := New(g, newFakeStore(), Options{Depth: 5})
	require.NoError(t, err)
	require.Equal(t, 63, w.NumSectors())

	_, err = New(g, newFakeStore(), Options{Depth: 6})
	require.ErrorIs(t, err, ErrSectorPoolExhausted)
}

func TestLocateNeverCutByOwnSplit(t *testing.T) {
	w, _, _ := defaultWorld(t)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		mins := mgl32.Vec3{
			rng.Float32()*900 - 500,
			rng.Float32()*900 - 500,
			rng.Float32()*900 - 500,
		}
		maxs := mins.Add(mgl32.Vec3{
			rng.Float32() * 120,
			rng.Float32() * 120,
			rng.Float32() * 120,
		})
		box := game.BoxFromMinsMaxs(mins, maxs)

		node := w.locate(box)
		owner := &w.sectors[node]

		// The owning node's split, if any, must not separate the box.
		if owner.axis != -1 {
			onGreater := mins[owner.axis] > owner.dist
			onLesser := maxs[owner.axis] < owner.dist
			require.False(t, onGreater || onLesser,
				"owner split cuts neither side fully: box %v..%v node %d", mins, maxs, node)
		}

		// Replay the descent: on the path, the box must lie entirely on the
		// side taken at every ancestor split.
		cur := int32(0)
		for cur != node {
			s := &w.sectors[cur]
			require.NotEqual(t, int8(-1), s.axis, "descent hit a leaf before the owner")
			if mins[s.axis] > s.dist {
				cur = s.children[0]
			} else if maxs[s.axis] < s.dist {
				cur = s.children[1]
			} else {
				t.Fatalf("descent stalled before reaching owner node %d", node)
			}
		}
	}
}

func TestSectorPopulation(t *testing.T) {
	w, _, s := defaultWorld(t)

	for i := int32(0); i < 8; i++ {
		ent := s.add(newEnt(i, mgl32.Vec3{float32(i) * 50, 0, 0}, 8))
		w.Link(ent)
	}

	counts := w.SectorPopulation()
	require.Len(t, counts, w.NumSectors())

	total := 0
	for _, c := range counts {
		total += c
	}
	require.Equal(t, 8, total)
}
