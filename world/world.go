// Package world implements the server-side spatial index and clip layer: a
// fixed partition tree bucketing dynamic entities, the link registry keeping
// bucket membership consistent with entity bounds, and the sweep, region and
// point queries composed on top of the static-geometry backend.
package world

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/google/uuid"

	"github.com/mvrenn/clipworld/cmodel"
	"github.com/mvrenn/clipworld/game"
)

// ErrSectorPoolExhausted is returned by New when the requested tree depth
// does not fit in the fixed sector node pool. This is a configuration error;
// world load must be aborted.
var ErrSectorPoolExhausted = errors.New("sector node pool exhausted")

const (
	defaultDepth    = 4
	defaultClusters = 16
	defaultLeafs    = 128

	// maxSectorNodes caps the node pool regardless of the configured depth.
	maxSectorNodes = 64
)

// Options configures a World. Zero values select the reference defaults.
type Options struct {
	// Depth is the uniform subdivision depth of the sector tree.
	Depth int
	// MaxEntities sizes the link record arena.
	MaxEntities int
	// MaxClusters caps explicit cluster ids stored per entity; the
	// remainder collapses into a single last-cluster value.
	MaxClusters int
	// MaxLeafs caps the static-geometry leafs examined per link.
	MaxLeafs int

	// Mesh is the optional articulated-mesh collider consulted by sweeps
	// that request refinement.
	Mesh cmodel.MeshCollider

	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Depth == 0 {
		o.Depth = defaultDepth
	}
	if o.MaxEntities == 0 {
		o.MaxEntities = game.MaxEntities
	}
	if o.MaxClusters == 0 {
		o.MaxClusters = defaultClusters
	}
	if o.MaxLeafs == 0 {
		o.MaxLeafs = defaultLeafs
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// World owns the sector tree and the link record arena for one loaded map.
// All mutating operations must be externally serialized relative to each
// other and to queries; the tree itself never changes shape after New, so a
// host may run read-only queries concurrently between link batches.
type World struct {
	id  uuid.UUID
	log *slog.Logger

	svc   cmodel.Service
	store cmodel.EntityStore
	mesh  cmodel.MeshCollider

	sectors    [maxSectorNodes]sector
	numSectors int

	links []linkRecord

	opts    Options
	loading bool
}

// New builds the sector tree for the map currently loaded in svc and
// allocates the link arena. The world starts in its loading state; call
// FinishLoading once the host finishes initial entity spawning.
func New(svc cmodel.Service, store cmodel.EntityStore, opts Options) (*World, error) {
	opts = opts.withDefaults()

	w := &World{
		id:      uuid.New(),
		log:     opts.Logger,
		svc:     svc,
		store:   store,
		mesh:    opts.Mesh,
		opts:    opts,
		loading: true,
	}

	mins, maxs := svc.ModelBounds(svc.InlineModel(0))
	if _, err := w.createSector(0, mins, maxs); err != nil {
		return nil, fmt.Errorf("building sector tree: %w", err)
	}

	w.links = make([]linkRecord, opts.MaxEntities)
	for i := range w.links {
		rec := &w.links[i]
		rec.sector = -1
		rec.next = -1
		rec.areas = [2]int32{-1, -1}
		rec.clusters = make([]int32, 0, opts.MaxClusters)
	}

	return w, nil
}

// ID returns the world instance identity used in diagnostics.
func (w *World) ID() uuid.UUID {
	return w.id
}

// Loading reports whether the world is still in its initial loading state.
func (w *World) Loading() bool {
	return w.loading
}

// FinishLoading ends the loading state. The third-area link diagnostic is
// only emitted while loading.
func (w *World) FinishLoading() {
	w.loading = false
}

func (w *World) diag(level slog.Level, msg string, data *orderedmap.OrderedMap[string, any]) {
	attrs := make([]any, 0, 2+data.Len()*2)
	attrs = append(attrs, "world", w.id)
	for el := data.Front(); el != nil; el = el.Next() {
		attrs = append(attrs, el.Key, el.Value)
	}
	w.log.Log(context.Background(), level, msg, attrs...)
}
