// Command boxworld links a handful of box entities into a world backed by a
// trivial axis-aligned geometry service, then runs the query surface against
// them. It exists to show the wiring, not to be a useful backend.
package main

import (
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mvrenn/clipworld/cmodel"
	"github.com/mvrenn/clipworld/entity"
	"github.com/mvrenn/clipworld/game"
	"github.com/mvrenn/clipworld/world"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	geo := &boxGeometry{
		mins:   mgl32.Vec3{-1024, -1024, -256},
		maxs:   mgl32.Vec3{1024, 1024, 256},
		shapes: map[cmodel.Handle]boxShape{},
	}
	store := entityStore{}

	w, err := world.New(geo, store, world.Options{Logger: log})
	if err != nil {
		log.Error("world init failed", "err", err)
		os.Exit(1)
	}

	for i, origin := range []mgl32.Vec3{{100, 0, 0}, {300, 50, 0}, {-200, -200, 0}} {
		ent := &entity.Entity{
			Number:   int32(i),
			Origin:   origin,
			Mins:     mgl32.Vec3{-16, -16, -24},
			Maxs:     mgl32.Vec3{16, 16, 32},
			Contents: game.ContentsBody,
			Owner:    game.EntityNumNone,
		}
		store[ent.Number] = ent
		w.Link(ent)
	}
	w.FinishLoading()

	tr := w.Trace(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{500, 0, 0}, nil, nil,
		game.EntityNumNone, game.MaskShot, false, 0, 0)
	log.Info("shot trace", "fraction", tr.Fraction, "entity", tr.EntityNum, "end", tr.EndPos)

	region := w.AreaEntities(game.BoxFromMinsMaxs(mgl32.Vec3{-64, -64, -64}, mgl32.Vec3{364, 364, 64}), 32)
	log.Info("region query", "entities", region.Entities, "truncated", region.Truncated)

	log.Info("contents at entity 0", "contents", w.PointContents(mgl32.Vec3{100, 0, 0}, game.EntityNumNone))
	log.Info("link digest", "digest", w.Digest())
	w.LogSectorList()
}

type boxShape struct {
	mins, maxs mgl32.Vec3
	contents   int32
}

// boxGeometry is the smallest possible cmodel.Service: an empty static world
// with first-class temp boxes. Entity clips report embedding only, so traces
// stop at whichever candidate box the segment samples inside first.
type boxGeometry struct {
	mins, maxs mgl32.Vec3
	shapes     map[cmodel.Handle]boxShape
	next       cmodel.Handle
}

func (g *boxGeometry) InlineModel(index int32) cmodel.Handle { return cmodel.Handle(index) }

func (g *boxGeometry) TempBoxModel(mins, maxs mgl32.Vec3, contents int32, capsule bool) cmodel.Handle {
	g.next++
	g.shapes[g.next] = boxShape{mins: mins, maxs: maxs, contents: contents}
	return g.next
}

func (g *boxGeometry) ModelBounds(h cmodel.Handle) (mgl32.Vec3, mgl32.Vec3) {
	if h == 0 {
		return g.mins, g.maxs
	}
	s := g.shapes[h]
	return s.mins, s.maxs
}

func (g *boxGeometry) BoxTrace(start, end, mins, maxs mgl32.Vec3, h cmodel.Handle, mask int32, capsule bool) cmodel.Trace {
	return cmodel.Trace{Fraction: 1, EndPos: end}
}

func (g *boxGeometry) TransformedBoxTrace(start, end, mins, maxs mgl32.Vec3, h cmodel.Handle, mask int32, origin, angles mgl32.Vec3, capsule bool) cmodel.Trace {
	tr := cmodel.Trace{Fraction: 1, EndPos: end}
	s, ok := g.shapes[h]
	if !ok || s.contents&mask == 0 {
		return tr
	}
	smin, smax := s.mins.Add(origin), s.maxs.Add(origin)

	// Sample the segment and stop at the first point inside the box.
	const steps = 64
	d := end.Sub(start)
	for i := 0; i <= steps; i++ {
		f := float32(i) / steps
		if inBox(start.Add(d.Mul(f)), smin, smax) {
			if i == 0 {
				tr.StartSolid = true
				return tr
			}
			tr.Fraction = float32(i-1) / steps
			tr.EndPos = start.Add(d.Mul(tr.Fraction))
			tr.Contents = s.contents
			return tr
		}
	}
	return tr
}

func (g *boxGeometry) PointContents(p mgl32.Vec3, h cmodel.Handle) int32 { return 0 }

func (g *boxGeometry) TransformedPointContents(p mgl32.Vec3, h cmodel.Handle, origin, angles mgl32.Vec3) int32 {
	s, ok := g.shapes[h]
	if !ok || !inBox(p, s.mins.Add(origin), s.maxs.Add(origin)) {
		return 0
	}
	return s.contents
}

func (g *boxGeometry) BoxLeafnums(mins, maxs mgl32.Vec3, max int) ([]int32, int32) {
	return []int32{0}, 0
}

func (g *boxGeometry) LeafArea(leaf int32) int32    { return 0 }
func (g *boxGeometry) LeafCluster(leaf int32) int32 { return 0 }

func inBox(p, mins, maxs mgl32.Vec3) bool {
	return p[0] >= mins[0] && p[0] <= maxs[0] &&
		p[1] >= mins[1] && p[1] <= maxs[1] &&
		p[2] >= mins[2] && p[2] <= maxs[2]
}

type entityStore map[int32]*entity.Entity

func (s entityStore) Entity(num int32) *entity.Entity { return s[num] }
