package internal

import "sync"

// TouchListPool recycles the entity-number scratch lists used by sweep and
// point-contents queries.
var TouchListPool = sync.Pool{
	New: func() interface{} {
		s := make([]int32, 0, 256)
		return &s
	},
}
