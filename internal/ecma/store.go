package ecma

import "github.com/jerryscript-project/jerryscript-sub010/internal/jmem"

// recordSize is the nominal size in bytes a Store charges the underlying
// jmem.Heap/jmem.Pool for one handle, independent of the live Go struct's
// actual size. It keeps the allocator's accounting properties (§8.3)
// meaningful without requiring records to be raw byte layouts.
const recordSize = 32

// Store is a single engine context's record registry: it owns the heap and
// pool that back every cpointer handle, and maps each live handle to the Go
// value it stands for. One Store corresponds to one "context" in §5 - never
// shared across goroutines, matching the single-threaded-per-context
// contract.
type Store struct {
	heap *jmem.Heap
	pool *jmem.Pool

	registry map[jmem.CPointer]any

	// gcObjects is the head of the singly-linked chain of every live
	// object handle, mirroring ecma_gc_objects (§4.11): each Object's
	// GCNext field is the next handle in the chain. The GC and the
	// snapshot walker both traverse it from here.
	gcObjects jmem.CPointer
}

// NewStore creates a context-local store backed by a fresh arena of the
// given size.
func NewStore(arenaSize uint32) (*Store, error) {
	heap, err := jmem.NewHeap(arenaSize)
	if err != nil {
		return nil, err
	}
	return &Store{
		heap:      heap,
		pool:      jmem.NewPool(heap, false),
		registry:  make(map[jmem.CPointer]any),
		gcObjects: jmem.NullPointer,
	}, nil
}

// GCObjects returns the head of the GC object chain.
func (s *Store) GCObjects() jmem.CPointer { return s.gcObjects }

// SetGCObjects rewrites the head of the GC object chain. Used by the GC's
// sweep phase after unlinking freed objects.
func (s *Store) SetGCObjects(head jmem.CPointer) { s.gcObjects = head }

// Heap exposes the underlying allocator, for the engine's GC callback
// registration and heap statistics. Fast-array elements and ArrayBuffer
// bytes are ordinary Go slices and are not allocated from it.
func (s *Store) Heap() *jmem.Heap { return s.heap }

// Pool exposes the underlying pool manager.
func (s *Store) Pool() *jmem.Pool { return s.pool }

// Close frees every handle still registered, then releases the underlying
// arena. No handle of this store may be used afterwards.
func (s *Store) Close() error {
	for cp := range s.registry {
		s.free(cp)
	}
	return s.heap.Close()
}

// alloc requests a recordSize block through the pool manager (a size the
// pool forwards straight to the heap), registers val under the resulting
// handle, and returns it. Objects are additionally linked into the GC
// object chain (gcObjects) by NewObject.
func (s *Store) alloc(val any) jmem.CPointer {
	block := s.pool.Alloc(recordSize)
	cp := s.heap.Compress(s.heap.OffsetOf(block))
	s.registry[cp] = val
	return cp
}

// free releases the handle's block and removes it from the registry.
func (s *Store) free(cp jmem.CPointer) {
	delete(s.registry, cp)
	s.pool.Free(s.heap.Decompress(cp), recordSize)
}

// lookup returns the live value for a handle, or nil if it is not (or no
// longer) registered.
func (s *Store) lookup(cp jmem.CPointer) any {
	if cp == jmem.NullPointer {
		return nil
	}
	return s.registry[cp]
}

func (s *Store) Object(cp jmem.CPointer) *Object {
	v, _ := s.lookup(cp).(*Object)
	return v
}

func (s *Store) String(cp jmem.CPointer) *StringRecord {
	v, _ := s.lookup(cp).(*StringRecord)
	return v
}

func (s *Store) Number(cp jmem.CPointer) *float64 {
	v, _ := s.lookup(cp).(*float64)
	return v
}

func (s *Store) PropertyPair(cp jmem.CPointer) *PropertyPair {
	v, _ := s.lookup(cp).(*PropertyPair)
	return v
}

func (s *Store) HashMap(cp jmem.CPointer) *PropertyHashMap {
	v, _ := s.lookup(cp).(*PropertyHashMap)
	return v
}
