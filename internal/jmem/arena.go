package jmem

import (
	mmap "github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// Arena is the fixed contiguous byte region every compressed pointer is an
// offset into (§3.1). It is backed by an anonymous memory-mapped region
// rather than a plain slice, so the fixed arena is an OS-level guarantee (a
// committed, page-aligned span) and not just a Go slice header - the same
// mmap-go package used elsewhere to map PE files read-only is used here the
// other way around, for an anonymous read/write region with nothing backing
// it on disk.
type Arena struct {
	mem mmap.MMap
}

// NewArena reserves a size-byte arena. size is rounded up to a multiple of
// Alignment so every offset inside it can be compressed.
func NewArena(size uint32) (*Arena, error) {
	if size == 0 {
		return nil, errors.New("jmem: arena size must be positive")
	}
	aligned := (size + Alignment - 1) &^ (Alignment - 1)
	mem, err := mmap.MapRegion(nil, int(aligned), mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		return nil, errors.Wrap(err, "jmem: failed to map arena")
	}
	return &Arena{mem: mem}, nil
}

// Close releases the underlying mapping. The arena must not be used
// afterwards.
func (a *Arena) Close() error {
	return a.mem.Unmap()
}

// Size returns the arena's total byte capacity.
func (a *Arena) Size() uint32 {
	return uint32(len(a.mem))
}

// Bytes returns the live byte slice for a size-length window starting at
// offset. Callers use it to store structured data (free-list headers,
// pool chunk links) directly into the arena.
func (a *Arena) Bytes(offset, size uint32) []byte {
	return a.mem[offset : offset+size]
}
