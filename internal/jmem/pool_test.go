package jmem

import "testing"

func TestPoolAllocFreeReusesChunks(t *testing.T) {
	h := newTestHeap(t, 4096)
	p := NewPool(h, false)

	a := p.Alloc(chunk8Size)
	aOff := h.OffsetOf(a)
	p.Free(aOff, chunk8Size)

	// The next allocation of the same size class must reuse the freed
	// chunk rather than asking the heap for a new one.
	before := h.AllocatedSize()
	b := p.Alloc(chunk8Size)
	bOff := h.OffsetOf(b)
	if bOff != aOff {
		t.Fatalf("expected pool to reuse freed chunk at %d, got %d", aOff, bOff)
	}
	if h.AllocatedSize() != before {
		t.Fatalf("reusing a pooled chunk must not touch the heap's allocated size")
	}

	p.Free(bOff, chunk8Size)
	p.CollectEmpty()
}

func TestPoolChunkClassSelection(t *testing.T) {
	h := newTestHeap(t, 4096)
	p := NewPool(h, true)

	small := p.Alloc(4)
	if len(small) != chunk8Size {
		t.Fatalf("expected a request under 8 bytes to round up to the 8-byte class, got %d", len(small))
	}

	large := p.Alloc(16)
	if len(large) != chunk16Size {
		t.Fatalf("expected a 16-byte request to use the 16-byte class, got %d", len(large))
	}

	p.Free(h.OffsetOf(small), chunk8Size)
	p.Free(h.OffsetOf(large), chunk16Size)
	p.CollectEmpty()
}

// A size outside both pool classes - including a request for the 16-byte
// class on a non-32-bit-cpointer build - must bypass pooling and go
// straight to the heap, not silently round into the wrong class.
func TestPoolBypassesPoolingOutsideBothClasses(t *testing.T) {
	h := newTestHeap(t, 4096)
	p := NewPool(h, false)

	before := h.AllocatedSize()
	block := p.Alloc(32)
	if len(block) != 32 {
		t.Fatalf("expected an unpooled request to get exactly the requested size, got %d", len(block))
	}
	if h.AllocatedSize() == before {
		t.Fatalf("expected an unpooled alloc to charge the heap directly")
	}
	if p.free8 != endOfList || p.free16 != endOfList {
		t.Fatalf("expected an unpooled alloc to leave both free lists untouched")
	}

	off := h.OffsetOf(block)
	afterAlloc := h.AllocatedSize()
	p.Free(off, 32)
	if h.AllocatedSize() == afterAlloc {
		t.Fatalf("expected an unpooled free to return bytes to the heap immediately")
	}
}

// A 16-byte request on a non-32-bit-cpointer build must not be served by
// the 16-byte pool class, which only exists under cpointer32 (matching
// JERRY_CPOINTER_32_BIT's gating of jmem_free_16_byte_chunk_p).
func TestPoolSixteenByteClassGatedOnCPointer32(t *testing.T) {
	h := newTestHeap(t, 4096)
	p := NewPool(h, false)

	block := p.Alloc(16)
	if p.free16 != endOfList {
		t.Fatalf("expected the 16-byte free list to stay empty when cpointer32 is false")
	}
	p.Free(h.OffsetOf(block), 16)
}

func TestPoolCollectEmptyReturnsChunksToHeap(t *testing.T) {
	h := newTestHeap(t, 4096)
	p := NewPool(h, false)

	var offs []uint32
	for i := 0; i < 5; i++ {
		b := p.Alloc(chunk8Size)
		offs = append(offs, h.OffsetOf(b))
	}
	for _, off := range offs {
		p.Free(off, chunk8Size)
	}

	allocatedBefore := h.AllocatedSize()
	p.CollectEmpty()
	wantAfter := allocatedBefore - uint32(5*chunk8Size)
	if h.AllocatedSize() != wantAfter {
		t.Fatalf("CollectEmpty must return pooled chunks to the heap: allocatedSize = %d, want %d", h.AllocatedSize(), wantAfter)
	}
	if p.free8 != endOfList {
		t.Fatalf("expected the 8-byte free list to be empty after CollectEmpty")
	}

	// All five chunks, having been returned to the heap and coalesced
	// with each other, must be reclaimable as one contiguous region.
	whole := alloc(t, h, uint32(5*chunk8Size))
	h.Free(whole, uint32(5*chunk8Size))
}
