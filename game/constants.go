package game

// Content bits describe what kind of matter occupies a volume. The static
// geometry backend reports them for brushes and leafs, dynamic entities carry
// them in their public state. Kept as int32 so they travel unchanged through
// entity snapshots.
const (
	ContentsSolid       int32 = 0x00000001
	ContentsLava        int32 = 0x00000008
	ContentsSlime       int32 = 0x00000010
	ContentsWater       int32 = 0x00000020
	ContentsFog         int32 = 0x00000040
	ContentsPlayerClip  int32 = 0x00010000
	ContentsMonsterClip int32 = 0x00020000
	ContentsShotClip    int32 = 0x00040000
	ContentsItem        int32 = 0x00080000
	ContentsCorpse      int32 = 0x00100000
	ContentsNoShot      int32 = 0x00200000
	ContentsBody        int32 = 0x02000000
	ContentsBlade       int32 = 0x08000000
	ContentsTrigger     int32 = 0x40000000
)

// Common content mask combinations used by sweeps.
const (
	MaskAll         int32 = -1
	MaskSolid             = ContentsSolid
	MaskPlayerSolid       = ContentsSolid | ContentsPlayerClip | ContentsBody
	MaskDeadSolid         = ContentsSolid | ContentsPlayerClip
	MaskWater             = ContentsWater | ContentsLava | ContentsSlime
	MaskOpaque            = ContentsSolid | ContentsSlime | ContentsLava
	MaskShot              = ContentsSolid | ContentsBody | ContentsItem | ContentsCorpse
	MaskShotBlade         = MaskShot | ContentsBlade
)

// Entity number space. The top two slots are reserved sentinels: a trace that
// hits static geometry reports EntityNumWorld, one that hits nothing reports
// EntityNumNone.
const (
	MaxEntities    = 1024
	EntityNumWorld = MaxEntities - 2
	EntityNumNone  = MaxEntities - 1
)

// SolidWorldModel is the reserved solid encoding for entities backed by an
// inline model of the static geometry. EncodeSolid must never produce it.
const SolidWorldModel int32 = 0xffffff

// Trace flags control the articulated-mesh refinement pass of a sweep.
const (
	// TraceMesh escalates the winning coarse hit to the mesh collider.
	TraceMesh int32 = 1 << iota
	// TraceHitDead runs mesh refinement against dead entities too.
	TraceHitDead
	// TraceThick enforces a minimum swept-sphere radius of one unit.
	TraceThick
	// TraceSurfaceIndex overwrites the trace surface flags with the mesh
	// surface index on a refined hit.
	TraceSurfaceIndex
)
