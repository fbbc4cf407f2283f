package jmem

import "testing"

func newTestHeap(t *testing.T, size uint32) *Heap {
	t.Helper()
	h, err := NewHeap(size)
	if err != nil {
		t.Fatalf("NewHeap: %v", err)
	}
	t.Cleanup(func() {
		// Tests are expected to free everything they allocate; Close
		// asserts allocatedSize == 0.
		if err := h.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return h
}

// alloc is a test helper that allocates size bytes and returns the arena
// offset alongside the block, since Heap's public Alloc/AllocNullOnError
// only return the byte slice.
func alloc(t *testing.T, h *Heap, size uint32) uint32 {
	t.Helper()
	off, ok := h.tryAlloc(size)
	if !ok {
		t.Fatalf("tryAlloc(%d) failed unexpectedly", size)
	}
	return off
}

func TestHeapAllocFreeAccounting(t *testing.T) {
	h := newTestHeap(t, 4096)

	off1 := alloc(t, h, 8)
	if h.AllocatedSize() != 8 {
		t.Fatalf("allocatedSize = %d, want 8", h.AllocatedSize())
	}

	off2 := alloc(t, h, 24)
	if h.AllocatedSize() != 32 {
		t.Fatalf("allocatedSize = %d, want 32", h.AllocatedSize())
	}

	h.Free(off1, 8)
	h.Free(off2, 24)

	if h.AllocatedSize() != 0 {
		t.Fatalf("allocatedSize = %d, want 0 after freeing everything", h.AllocatedSize())
	}
}

func TestHeapCoalescesAdjacentFreeRegions(t *testing.T) {
	h := newTestHeap(t, 4096)

	aOff := alloc(t, h, 64)
	bOff := alloc(t, h, 64)
	cOff := alloc(t, h, 64)

	h.Free(aOff, 64)
	h.Free(cOff, 64)
	h.Free(bOff, 64)

	// Every byte should be reclaimed into a single free region again: the
	// free list must now hold exactly one region spanning the whole arena
	// minus the permanently reserved offset-0 slot, reachable straight from
	// the sentinel.
	next, _ := h.readNode(sentinelPos)
	_, regionSize := h.readNode(next)
	want := h.areaSize - Alignment
	if regionSize != want {
		t.Fatalf("expected one coalesced region of size %d, got %d", want, regionSize)
	}

	whole := alloc(t, h, want)
	h.Free(whole, want)
}

func TestHeapRoundTripAllHeapPointers(t *testing.T) {
	h := newTestHeap(t, 4096)

	var offs []uint32
	for i := 0; i < 10; i++ {
		offs = append(offs, alloc(t, h, 16))
	}

	for _, off := range offs {
		cp := h.Compress(off)
		if h.Decompress(cp) != off {
			t.Fatalf("decompress(compress(%d)) != %d", off, off)
		}
	}

	for _, off := range offs {
		h.Free(off, 16)
	}
}

func TestHeapFastPathAlignmentSizeAlloc(t *testing.T) {
	h := newTestHeap(t, 4096)

	// Exactly-Alignment-sized requests take the fast path in tryAlloc,
	// which always consumes (or splits) the first free region. Offset 0
	// itself is permanently reserved so it never compresses to NullPointer,
	// so the first real region starts at Alignment.
	off := alloc(t, h, Alignment)
	if off != Alignment {
		t.Fatalf("expected the fast path to consume the first free region at %d, got %d", Alignment, off)
	}
	h.Free(off, Alignment)
}

func TestHeapGCCallbackSeverityEscalation(t *testing.T) {
	h := newTestHeap(t, 256)

	var lowRan, highRan int
	h.OnFreeUnusedMemory(SeverityLow, func() {
		lowRan++
		// Reclaims nothing, so the allocator must escalate to HIGH.
	})
	h.OnFreeUnusedMemory(SeverityHigh, func() {
		highRan++
	})

	// An allocation that cannot be satisfied at all must still run LOW
	// before HIGH, in that order, even though neither reclaims anything.
	b := h.AllocNullOnError(4096)
	if b != nil {
		t.Fatalf("expected allocation to fail")
	}
	if lowRan == 0 {
		t.Fatalf("expected SeverityLow callback to run on pressure")
	}
	if highRan == 0 {
		t.Fatalf("expected SeverityHigh callback to run once LOW failed to free enough")
	}
}

func TestHeapOutOfMemoryIsFatal(t *testing.T) {
	h := newTestHeap(t, 256)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected Alloc to panic when memory cannot be reclaimed")
		}
		if _, ok := r.(error); !ok {
			t.Fatalf("expected panic value to be an error, got %T", r)
		}
	}()

	_ = h.Alloc(1 << 20)
}

func TestHeapAllocNullOnErrorDoesNotPanic(t *testing.T) {
	h := newTestHeap(t, 256)

	b := h.AllocNullOnError(1 << 20)
	if b != nil {
		t.Fatalf("expected nil block for an impossible allocation")
	}
}

func TestHeapReallocGrowsAndCopies(t *testing.T) {
	h := newTestHeap(t, 4096)

	off := alloc(t, h, 8)
	block := h.arena.Bytes(off, 8)
	copy(block, []byte("ABCDEFGH"))

	grown := h.Realloc(off, 8, 64)
	if string(grown[:8]) != "ABCDEFGH" {
		t.Fatalf("Realloc did not preserve contents: got %q", grown[:8])
	}

	growOff := h.OffsetOf(grown)
	h.Free(growOff, 64)
}
