package world

import (
	"io"
	"log/slog"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"github.com/mvrenn/clipworld/cmodel"
	"github.com/mvrenn/clipworld/entity"
	"github.com/mvrenn/clipworld/game"
)

// fakeShape is one clippable shape owned by the fake backend.
type fakeShape struct {
	mins, maxs mgl32.Vec3
	contents   int32
	capsule    bool
}

type fakeLeaf struct {
	mins, maxs mgl32.Vec3
	area       int32
	cluster    int32
}

// fakeGeometry implements cmodel.Service with axis-aligned slab sweeps, the
// same math the real backend performs for box shapes. Orientation is ignored;
// tests only position shapes by translation.
type fakeGeometry struct {
	worldMins, worldMaxs mgl32.Vec3
	brushes              []fakeShape
	leafs                []fakeLeaf

	shapes     map[cmodel.Handle]fakeShape
	nextHandle cmodel.Handle

	boxTraces int
}

func newFakeGeometry(mins, maxs mgl32.Vec3) *fakeGeometry {
	return &fakeGeometry{
		worldMins:  mins,
		worldMaxs:  maxs,
		leafs:      []fakeLeaf{{mins: mins, maxs: maxs, area: 0, cluster: 0}},
		shapes:     map[cmodel.Handle]fakeShape{},
		nextHandle: 1000,
	}
}

func (g *fakeGeometry) InlineModel(index int32) cmodel.Handle {
	return cmodel.Handle(index)
}

func (g *fakeGeometry) TempBoxModel(mins, maxs mgl32.Vec3, contents int32, capsule bool) cmodel.Handle {
	h := g.nextHandle
	g.nextHandle++
	g.shapes[h] = fakeShape{mins: mins, maxs: maxs, contents: contents, capsule: capsule}
	return h
}

func (g *fakeGeometry) ModelBounds(h cmodel.Handle) (mgl32.Vec3, mgl32.Vec3) {
	if h == 0 {
		return g.worldMins, g.worldMaxs
	}
	shape := g.shapes[h]
	return shape.mins, shape.maxs
}

func (g *fakeGeometry) BoxTrace(start, end, mins, maxs mgl32.Vec3, h cmodel.Handle, mask int32, capsule bool) cmodel.Trace {
	best := cmodel.Trace{Fraction: 1, EndPos: end}
	for _, brush := range g.brushes {
		if brush.contents&mask == 0 {
			continue
		}
		tr := sweepBox(start, end, mins, maxs, brush.mins, brush.maxs)
		tr.Contents = brush.contents
		if tr.AllSolid || tr.Fraction < best.Fraction {
			startSolid := best.StartSolid
			best = tr
			best.StartSolid = tr.StartSolid || startSolid
		} else if tr.StartSolid {
			best.StartSolid = true
		}
	}
	return best
}

func (g *fakeGeometry) TransformedBoxTrace(start, end, mins, maxs mgl32.Vec3, h cmodel.Handle, mask int32, origin, angles mgl32.Vec3, capsule bool) cmodel.Trace {
	g.boxTraces++
	shape, ok := g.shapes[h]
	if !ok || shape.contents&mask == 0 {
		return cmodel.Trace{Fraction: 1, EndPos: end}
	}
	tr := sweepBox(start, end, mins, maxs, shape.mins.Add(origin), shape.maxs.Add(origin))
	if tr.Fraction < 1 || tr.AllSolid || tr.StartSolid {
		tr.Contents = shape.contents
	}
	return tr
}

func (g *fakeGeometry) PointContents(p mgl32.Vec3, h cmodel.Handle) int32 {
	var contents int32
	for _, brush := range g.brushes {
		if pointInBounds(p, brush.mins, brush.maxs) {
			contents |= brush.contents
		}
	}
	return contents
}

func (g *fakeGeometry) TransformedPointContents(p mgl32.Vec3, h cmodel.Handle, origin, angles mgl32.Vec3) int32 {
	shape, ok := g.shapes[h]
	if !ok {
		return 0
	}
	if pointInBounds(p, shape.mins.Add(origin), shape.maxs.Add(origin)) {
		return shape.contents
	}
	return 0
}

func (g *fakeGeometry) BoxLeafnums(mins, maxs mgl32.Vec3, max int) ([]int32, int32) {
	var list []int32
	last := int32(-1)
	for i, leaf := range g.leafs {
		if mins[0] > leaf.maxs[0] || mins[1] > leaf.maxs[1] || mins[2] > leaf.maxs[2] ||
			maxs[0] < leaf.mins[0] || maxs[1] < leaf.mins[1] || maxs[2] < leaf.mins[2] {
			continue
		}
		last = int32(i)
		if len(list) < max {
			list = append(list, int32(i))
		}
	}
	return list, last
}

func (g *fakeGeometry) LeafArea(leaf int32) int32 {
	if leaf < 0 || int(leaf) >= len(g.leafs) {
		return -1
	}
	return g.leafs[leaf].area
}

func (g *fakeGeometry) LeafCluster(leaf int32) int32 {
	if leaf < 0 || int(leaf) >= len(g.leafs) {
		return -1
	}
	return g.leafs[leaf].cluster
}

func pointInBounds(p, mins, maxs mgl32.Vec3) bool {
	return p[0] >= mins[0] && p[0] <= maxs[0] &&
		p[1] >= mins[1] && p[1] <= maxs[1] &&
		p[2] >= mins[2] && p[2] <= maxs[2]
}

// sweepBox moves a volume from start to end against a stationary box using
// the slab method on the Minkowski-expanded target.
func sweepBox(start, end, mins, maxs, tmins, tmaxs mgl32.Vec3) cmodel.Trace {
	tr := cmodel.Trace{Fraction: 1, EndPos: end}

	emin := tmins.Sub(maxs)
	emax := tmaxs.Sub(mins)
	d := end.Sub(start)

	tEnter := float32(-math32.MaxFloat32)
	tExit := float32(math32.MaxFloat32)
	axis := -1

	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if start[i] < emin[i] || start[i] > emax[i] {
				return tr
			}
			continue
		}
		t1 := (emin[i] - start[i]) / d[i]
		t2 := (emax[i] - start[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tEnter {
			tEnter = t1
			axis = i
		}
		if t2 < tExit {
			tExit = t2
		}
	}

	if tEnter > tExit || tEnter > 1 || tExit < 0 {
		return tr
	}
	if tEnter < 0 {
		tr.StartSolid = true
		if tExit >= 1 {
			tr.AllSolid = true
			tr.Fraction = 0
			tr.EndPos = start
		}
		return tr
	}

	tr.Fraction = tEnter
	tr.EndPos = start.Add(d.Mul(tEnter))
	if axis >= 0 {
		var n mgl32.Vec3
		if d[axis] > 0 {
			n[axis] = -1
		} else {
			n[axis] = 1
		}
		tr.Normal = n
	}
	return tr
}

type fakeStore struct {
	ents map[int32]*entity.Entity
}

func newFakeStore() *fakeStore {
	return &fakeStore{ents: map[int32]*entity.Entity{}}
}

func (s *fakeStore) Entity(num int32) *entity.Entity {
	return s.ents[num]
}

func (s *fakeStore) add(e *entity.Entity) *entity.Entity {
	s.ents[e.Number] = e
	return e
}

// newEnt builds a body-content box entity centered at origin with symmetric
// half extents, owned by nobody.
func newEnt(num int32, origin mgl32.Vec3, half float32) *entity.Entity {
	return &entity.Entity{
		Number:   num,
		Origin:   origin,
		Mins:     mgl32.Vec3{-half, -half, -half},
		Maxs:     mgl32.Vec3{half, half, half},
		Contents: game.ContentsBody,
		Owner:    game.EntityNumNone,
	}
}

type fakeMesh struct {
	hits map[int32][]cmodel.MeshHit

	calls      int
	lastRadius float32
	lastLod    int
}

func (m *fakeMesh) Detect(ent *entity.Entity, angles, origin, start, end, scale mgl32.Vec3, radius float32, lod int) []cmodel.MeshHit {
	m.calls++
	m.lastRadius = radius
	m.lastLod = lod
	return m.hits[ent.Number]
}

func newTestWorld(t *testing.T, g *fakeGeometry, s *fakeStore, opts Options) *World {
	t.Helper()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	w, err := New(g, s, opts)
	require.NoError(t, err)
	return w
}

// symmetric world bounds used by most tests.
func defaultWorld(t *testing.T) (*World, *fakeGeometry, *fakeStore) {
	t.Helper()
	g := newFakeGeometry(mgl32.Vec3{-512, -512, -512}, mgl32.Vec3{512, 512, 512})
	s := newFakeStore()
	return newTestWorld(t, g, s, Options{}), g, s
}
