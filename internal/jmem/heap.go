// Package jmem implements the engine's heap allocator (§4.1), pool manager
// (§4.2) and compressed-pointer scheme (§3.2, §4.3): a fixed arena, a single
// sorted singly-linked free list with a first-fit-plus-skip-hint allocation
// policy, and free-lists of small fixed-size cells layered on top.
//
// Grounded on original_source/jerry-core/jmem/jmem-heap.c and jmem-poolman.c.
package jmem

import (
	"encoding/binary"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/jerryscript-project/jerryscript-sub010/internal/errkind"
)

// endOfList is the end-of-free-list marker (JMEM_HEAP_END_OF_LIST).
const endOfList uint32 = 0xFFFFFFFF

// sentinelPos identifies the list head sentinel, which is not a real arena
// offset (it lives in the Heap struct itself, mirroring JERRY_HEAP_CONTEXT
// (first) sitting just outside the mapped area in the original allocator).
const sentinelPos uint32 = 0xFFFFFFFE

// freeNodeSize is the size in bytes of a free-region header
// (next_offset uint32 + size uint32), matching jmem_heap_free_t.
const freeNodeSize = 8

// Severity selects which free-unused-memory callbacks run when an
// allocation can't be satisfied immediately (§4.1).
type Severity int

const (
	SeverityLow Severity = iota
	SeverityHigh
)

// Stats mirrors jmem_heap_stats_t: byte accounting broken down by the kind
// of data the caller is allocating for, used purely for diagnostics.
type Stats struct {
	AllocatedBytes     uint64
	PeakAllocatedBytes uint64
	WasteBytes         uint64
	ByteCodeBytes      uint64
	StringBytes        uint64
	ObjectBytes        uint64
	PropertyBytes      uint64
}

func (s Stats) String() string {
	return "heap: allocated=" + humanize.Bytes(s.AllocatedBytes) +
		" peak=" + humanize.Bytes(s.PeakAllocatedBytes) +
		" waste=" + humanize.Bytes(s.WasteBytes)
}

// Heap is the fixed-arena free-list allocator. It is not safe for
// concurrent use, matching the engine's single-threaded-per-context
// contract (§5).
type Heap struct {
	arena         *Arena
	areaSize      uint32
	allocatedSize uint32
	limit         uint32
	desiredLimit  uint32

	firstNext uint32 // offset of the first free region, or endOfList
	listSkip  uint32 // resume hint: sentinelPos or a real offset

	stats Stats

	callbacks [2][]func()
}

// NewHeap maps a fresh arena of the given size and initializes the free
// list to a single region spanning it (jmem_heap_init).
func NewHeap(size uint32) (*Heap, error) {
	arena, err := NewArena(size)
	if err != nil {
		return nil, err
	}
	h := &Heap{
		arena:        arena,
		areaSize:     arena.Size(),
		desiredLimit: size / 4,
	}
	if h.desiredLimit == 0 {
		h.desiredLimit = size
	}
	h.limit = h.desiredLimit

	// Offset 0 is never handed out: compress(0) collides with NullPointer,
	// so a live record allocated there would be indistinguishable from a
	// null CPointer. Reserve the first Alignment bytes permanently and
	// start the single free region just past them.
	binary.LittleEndian.PutUint32(h.arena.Bytes(Alignment, 4), endOfList)
	binary.LittleEndian.PutUint32(h.arena.Bytes(Alignment+4, 4), h.areaSize-Alignment)

	h.firstNext = Alignment
	h.listSkip = sentinelPos
	return h, nil
}

// Close releases the underlying arena mapping.
func (h *Heap) Close() error {
	if h.allocatedSize != 0 {
		return errors.New("jmem: heap finalized with outstanding allocations")
	}
	return h.arena.Close()
}

// OnFreeUnusedMemory registers a GC callback invoked when an allocation
// crosses the soft limit (severity Low) or still fails after that pass
// (severity High) - jmem_run_free_unused_memory_callbacks.
func (h *Heap) OnFreeUnusedMemory(sev Severity, cb func()) {
	h.callbacks[sev] = append(h.callbacks[sev], cb)
}

func (h *Heap) runCallbacks(sev Severity) {
	for _, cb := range h.callbacks[sev] {
		cb()
	}
}

// Stats returns a snapshot of the allocator's byte accounting.
func (h *Heap) Stats() Stats { return h.stats }

// AllocatedSize returns the number of bytes currently allocated.
func (h *Heap) AllocatedSize() uint32 { return h.allocatedSize }

// Limit returns the current soft allocation ceiling.
func (h *Heap) Limit() uint32 { return h.limit }

func alignUp(size uint32) uint32 {
	return (size + Alignment - 1) &^ (Alignment - 1)
}

func (h *Heap) readNode(pos uint32) (next, size uint32) {
	if pos == sentinelPos {
		return h.firstNext, 0
	}
	b := h.arena.Bytes(pos, freeNodeSize)
	return binary.LittleEndian.Uint32(b[0:4]), binary.LittleEndian.Uint32(b[4:8])
}

func (h *Heap) writeNode(pos uint32, next, size uint32) {
	if pos == sentinelPos {
		h.firstNext = next
		return
	}
	b := h.arena.Bytes(pos, freeNodeSize)
	binary.LittleEndian.PutUint32(b[0:4], next)
	binary.LittleEndian.PutUint32(b[4:8], size)
}

// Alloc is the fatal allocation entry point (jmem_heap_alloc_block): it
// invokes the registered callbacks with increasing severity on pressure,
// and panics with an OutOfMemory *errkind.EngineError if memory still
// cannot be found, since the caller asserted it has no recovery path.
func (h *Heap) Alloc(size uint32) []byte {
	b, err := h.allocInternal(size, false)
	if err != nil {
		panic(err)
	}
	return b
}

// AllocNullOnError is the recoverable allocation entry point
// (jmem_heap_alloc_block_null_on_error): it returns a nil slice instead of
// panicking when memory cannot be found.
func (h *Heap) AllocNullOnError(size uint32) []byte {
	b, _ := h.allocInternal(size, true)
	return b
}

func (h *Heap) allocInternal(size uint32, nullOnError bool) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}

	if h.allocatedSize+size >= h.limit {
		h.runCallbacks(SeverityLow)
	}

	if off, ok := h.tryAlloc(size); ok {
		return h.arena.Bytes(off, size), nil
	}

	for _, sev := range []Severity{SeverityLow, SeverityHigh} {
		h.runCallbacks(sev)
		if off, ok := h.tryAlloc(size); ok {
			return h.arena.Bytes(off, size), nil
		}
	}

	if nullOnError {
		return nil, nil
	}
	return nil, errkind.New(errkind.OutOfMemory, "jmem: out of memory allocating "+humanize.Bytes(uint64(size)))
}

// tryAlloc performs a single first-fit scan with the skip-ahead hint
// (jmem_heap_alloc_block_internal), returning the offset of the satisfied
// allocation if one was found.
func (h *Heap) tryAlloc(size uint32) (uint32, bool) {
	required := alignUp(size)

	var (
		dataOffset uint32
		found      bool
	)

	if required == Alignment && h.firstNext != endOfList {
		// Fast path: the first free region in the list is always
		// big enough to serve an exactly-Alignment-sized request.
		off := h.firstNext
		next, regionSize := h.readNode(off)

		dataOffset = off
		found = true

		if regionSize == Alignment {
			h.firstNext = next
		} else {
			remaining := off + Alignment
			h.writeNode(remaining, next, regionSize-Alignment)
			h.firstNext = remaining
		}

		if off == h.listSkip {
			h.listSkip = h.firstNext
		}
	} else {
		prevPos := sentinelPos
		var prevSize uint32
		curOffset := h.firstNext

		for curOffset != endOfList {
			next, regionSize := h.readNode(curOffset)

			if regionSize >= required {
				dataOffset = curOffset
				found = true

				if regionSize > required {
					remaining := curOffset + required
					h.writeNode(remaining, next, regionSize-required)
					h.writeNode(prevPos, remaining, prevSize)
				} else {
					h.writeNode(prevPos, next, prevSize)
				}
				h.listSkip = prevPos
				break
			}

			prevPos = curOffset
			prevSize = regionSize
			curOffset = next
		}
	}

	if !found {
		return 0, false
	}

	h.allocatedSize += required
	for h.allocatedSize >= h.limit {
		h.limit += h.desiredLimit
	}

	h.accountAlloc(size)
	return dataOffset, true
}

func (h *Heap) accountAlloc(size uint32) {
	aligned := uint64(alignUp(size))
	h.stats.AllocatedBytes += aligned
	h.stats.WasteBytes += aligned - uint64(size)
	if h.stats.AllocatedBytes > h.stats.PeakAllocatedBytes {
		h.stats.PeakAllocatedBytes = h.stats.AllocatedBytes
	}
}

func (h *Heap) accountFree(size uint32) {
	aligned := uint64(alignUp(size))
	h.stats.AllocatedBytes -= aligned
	h.stats.WasteBytes -= aligned - uint64(size)
}

// getRegionEnd returns the offset immediately past a free region of the
// given size starting at off.
func getRegionEnd(off, size uint32) uint32 { return off + size }

// Free returns a previously allocated block to the free list, inserting it
// at the correct sorted position (using the skip-ahead hint as the search
// starting point) and coalescing with any adjacent free neighbors
// (jmem_heap_free_block). size must equal the original allocation size.
func (h *Heap) Free(offset, size uint32) {
	aligned := alignUp(size)

	prevPos := sentinelPos
	if h.listSkip != sentinelPos && offset > h.listSkip {
		prevPos = h.listSkip
	}

	prevNext, prevSize := h.readNode(prevPos)
	for prevNext != endOfList && prevNext < offset {
		prevPos = prevNext
		prevNext, prevSize = h.readNode(prevPos)
	}

	nextPos := prevNext
	blockOffset := offset
	blockSize := aligned

	if prevPos != sentinelPos && getRegionEnd(prevPos, prevSize) == blockOffset {
		// Merge into the predecessor region.
		blockOffset = prevPos
		blockSize = prevSize + blockSize
	} else {
		h.writeNode(prevPos, blockOffset, prevSize)
	}

	if nextPos != endOfList {
		nextNext, nextSize := h.readNode(nextPos)
		if getRegionEnd(blockOffset, blockSize) == nextPos {
			// Merge with the successor region.
			nextPos = nextNext
			blockSize += nextSize
		}
	}

	h.writeNode(blockOffset, nextPos, blockSize)
	h.listSkip = prevPos
	h.allocatedSize -= aligned

	for h.allocatedSize+h.desiredLimit <= h.limit {
		h.limit -= h.desiredLimit
	}

	h.accountFree(size)
}

// Realloc grows or shrinks a previously allocated block, copying contents
// as needed (jmem_heap_realloc_block semantics: alloc+copy+free unless the
// block already sits in a large-enough aligned slot).
func (h *Heap) Realloc(offset, oldSize, newSize uint32) []byte {
	if alignUp(newSize) == alignUp(oldSize) {
		return h.arena.Bytes(offset, newSize)
	}

	newBlock := h.Alloc(newSize)
	n := oldSize
	if newSize < n {
		n = newSize
	}
	copy(newBlock, h.arena.Bytes(offset, n))
	h.Free(offset, oldSize)
	return newBlock
}

// Compress turns an arena offset into a CPointer.
func (h *Heap) Compress(offset uint32) CPointer { return compress(offset) }

// Decompress turns a CPointer back into its arena offset.
func (h *Heap) Decompress(cp CPointer) uint32 { return decompress(cp) }

// IsHeapOffset reports whether offset lies within the arena, for assertion
// use only (jmem_is_heap_pointer).
func (h *Heap) IsHeapOffset(offset uint32) bool {
	return offset <= h.areaSize
}

// OffsetOf recovers the arena offset backing a slice previously returned by
// Alloc/AllocNullOnError/Realloc or by the pool manager built on this heap.
// Bytes always slices from an offset to the end of the arena's capacity, so
// cap(block) is exactly areaSize-offset; higher layers (the ecma package's
// handle table) use this to turn an allocated block back into the
// CPointer-compressible offset it came from.
func (h *Heap) OffsetOf(block []byte) uint32 {
	return h.areaSize - uint32(cap(block))
}
