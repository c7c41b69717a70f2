package game

import "github.com/go-gl/mathgl/mgl32"

func clampSolidComponent(v float32) int32 {
	i := int32(v)
	if i < 1 {
		return 1
	}
	if i > 255 {
		return 255
	}
	return i
}

// EncodeSolid packs a local bounding box into the solid value replicated to
// clients for prediction. X/Y are assumed equal and symmetric, so only the x
// half-extent is stored; z is asymmetric and z maxs can be negative, hence
// the +32 bias. Each component is clamped to [1, 255].
func EncodeSolid(mins, maxs mgl32.Vec3) int32 {
	x := clampSolidComponent(maxs[0])
	zDown := clampSolidComponent(-mins[2])
	zUp := clampSolidComponent(maxs[2] + 32)

	solid := (zUp << 16) | (zDown << 8) | x
	if solid == SolidWorldModel {
		// Never collide with the inline-model sentinel.
		solid = (zUp << 16) | (zDown << 8) | (x - 1)
	}
	return solid
}
