package jmem

import "encoding/binary"

// chunk8 and chunk16 are the two pool size classes (§4.2): 8 bytes always,
// plus 16 bytes on 32-bit-cpointer builds (jmem-poolman.c). A free chunk's
// first 4 bytes hold the offset of the next free chunk in its class, or
// endOfList.
const (
	chunk8Size  = 8
	chunk16Size = 16
)

// Pool layers free-lists of small fixed-size cells on top of a Heap,
// serving allocations in O(1) once primed (§4.2). All pool allocations
// must be freed with the same size they were allocated with; the pool
// never merges chunks across size classes.
type Pool struct {
	heap        *Heap
	free8       uint32 // offset of the first free 8-byte chunk, or endOfList
	free16      uint32 // offset of the first free 16-byte chunk, or endOfList
	cpointer32  bool   // whether the 16-byte class is enabled
}

// NewPool creates a pool manager on top of heap. cpointer32 selects whether
// the 16-byte chunk class is available, matching JERRY_CPOINTER_32_BIT.
func NewPool(heap *Heap, cpointer32 bool) *Pool {
	return &Pool{heap: heap, free8: endOfList, free16: endOfList, cpointer32: cpointer32}
}

// chunkClass resolves size to a pool size class, mirroring
// jmem_pools_alloc's "size <= 8" then "size <= 16, 32-bit cpointers only"
// branches. A size that fits neither class (including the 16-byte class
// when cpointer32 is false) is not pooled at all and must be served
// straight from the heap, same as the original's JERRY_UNREACHABLE branch
// for an out-of-range request on a 16-bit-cpointer build.
func (p *Pool) chunkClass(size uint32) (list *uint32, chunkSize uint32, pooled bool) {
	if size <= chunk8Size {
		return &p.free8, chunk8Size, true
	}
	if p.cpointer32 && size <= chunk16Size {
		return &p.free16, chunk16Size, true
	}
	return nil, size, false
}

// Alloc returns a size-class chunk (8 or 16 bytes), popping from the
// class's free list or requesting a fresh chunk from the heap
// (jmem_pools_alloc). Sizes outside both classes bypass pooling entirely.
func (p *Pool) Alloc(size uint32) []byte {
	list, chunkSize, pooled := p.chunkClass(size)
	if !pooled {
		return p.heap.Alloc(size)
	}

	if *list != endOfList {
		off := *list
		b := p.heap.arena.Bytes(off, 4)
		*list = binary.LittleEndian.Uint32(b)
		return p.heap.arena.Bytes(off, chunkSize)
	}

	return p.heap.Alloc(chunkSize)
}

// Free pushes chunkOffset back onto its size class's free list without
// touching the heap (jmem_pools_free), or returns it straight to the heap
// when size falls outside both pool classes. size must match the size used
// to allocate it.
func (p *Pool) Free(chunkOffset, size uint32) {
	list, _, pooled := p.chunkClass(size)
	if !pooled {
		p.heap.Free(chunkOffset, size)
		return
	}

	b := p.heap.arena.Bytes(chunkOffset, 4)
	binary.LittleEndian.PutUint32(b, *list)
	*list = chunkOffset
}

// CollectEmpty returns every free chunk in both size classes to the heap
// allocator (jmem_pools_collect_empty), typically invoked by the GC after a
// major reclamation.
func (p *Pool) CollectEmpty() {
	p.drain(&p.free8, chunk8Size)
	p.drain(&p.free16, chunk16Size)
}

func (p *Pool) drain(list *uint32, chunkSize uint32) {
	off := *list
	*list = endOfList

	for off != endOfList {
		b := p.heap.arena.Bytes(off, 4)
		next := binary.LittleEndian.Uint32(b)
		p.heap.Free(off, chunkSize)
		off = next
	}
}
