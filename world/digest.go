package world

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"
)

// Digest hashes the link state of every linked entity in arena order: entity
// number, origin and link generation. Hosts replicating link state can
// compare digests instead of full snapshots.
func (w *World) Digest() uint64 {
	h := xxh3.New()

	var buf [20]byte
	for i := range w.links {
		rec := &w.links[i]
		if rec.sector < 0 || rec.ent == nil {
			continue
		}
		binary.LittleEndian.PutUint32(buf[0:], uint32(rec.ent.Number))
		binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(rec.ent.Origin[0]))
		binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(rec.ent.Origin[1]))
		binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(rec.ent.Origin[2]))
		binary.LittleEndian.PutUint32(buf[16:], uint32(rec.ent.LinkCount))
		h.Write(buf[:])
	}

	return h.Sum64()
}
