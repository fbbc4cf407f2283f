// Package engine aggregates one context's state: its arena-backed store,
// GC, snapshot walker, configuration, logging, and the host-registered
// context-slot extension mechanism (§5, §6.5). It is the only unit of
// shared state in the whole module - never touched from two goroutines at
// once, by contract rather than by internal locking (§5).
package engine

// Config groups the build-time tunables of the original engine into one
// struct constructed once per Context, instead of scattered package
// globals, as exported struct fields on a single registration call.
type Config struct {
	// ArenaSize is the fixed byte size of the context's heap arena (§3.1).
	ArenaSize uint32

	// CPointer32 selects the 32-bit compressed-pointer encoding (raw
	// pointer, no arena-relative math) over the default 16-bit encoding
	// (§4.3). Only 16-bit is implemented by internal/jmem today; the flag
	// is carried for forward compatibility and documented as such.
	CPointer32 bool

	// HashmapThreshold is the property count at which an object's
	// property list grows a hashmap accelerator (§4.6). Nothing reads
	// this field: internal/ecma uses its own fixed threshold of 32.
	HashmapThreshold int

	// MaxNewHoles and MaxHoleCount bound fast-array hole growth (§4.7).
	// Nothing reads these fields: internal/ecma uses its own fixed
	// ceilings of 256 and 8192.
	MaxNewHoles  int
	MaxHoleCount int

	// GCHeapLimitStep is the amount the heap's soft limit grows/shrinks by
	// on crossing (§4.1's desired_limit). Nothing reads this field: the
	// heap always steps by ArenaSize/4.
	GCHeapLimitStep uint32

	Logger Logger
}

// DefaultConfig returns the engine's documented defaults.
func DefaultConfig() Config {
	return Config{
		ArenaSize:        512 * 1024,
		CPointer32:       false,
		HashmapThreshold: 32,
		MaxNewHoles:      256,
		MaxHoleCount:     8192,
		Logger:           NewStderrLogger(),
	}
}
