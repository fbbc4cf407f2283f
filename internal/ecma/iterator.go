package ecma

import "github.com/jerryscript-project/jerryscript-sub010/internal/jmem"

// IterationKind selects what a container iterator yields (§4.9).
type IterationKind uint8

const (
	IterateKeys IterationKind = iota
	IterateValues
	IterateEntries
)

// IteratorState is a class-tagged iterator object's hidden state (§4.9):
// (iterated_object, index, kind). Index advances past empty (deleted)
// slots on Next.
type IteratorState struct {
	Container *Container
	Index     int
	Kind      IterationKind
}

// magicIteratorState is an internal-only magic id used to stash the
// IteratorState handle as a non-enumerable property of the iterator
// object, keeping it reachable from the iterator the way every other piece
// of extra per-object state is reachable from its owning Object.
const magicIteratorState = 0xFFFF0001

// NewContainerIterator creates a class-tagged iterator object over c
// yielding entries of the given kind (§4.9).
func (s *Store) NewContainerIterator(c *Container, kind IterationKind) jmem.CPointer {
	objCP := s.NewObject(TypeClass, jmem.NullPointer)
	obj := s.Object(objCP)
	obj.Class = ClassIterator
	obj.Container = c

	stateCP := s.alloc(&IteratorState{Container: c, Index: 0, Kind: kind})
	s.DefineDataProperty(objCP, Name{Kind: NameMagicID, MagicID: magicIteratorState}, FromHandle(TagObject, stateCP), false, false, false)
	return objCP
}

func (s *Store) iteratorState(iterObjCP jmem.CPointer) *IteratorState {
	pairCP, slotIdx, ok := s.FindProperty(iterObjCP, Name{Kind: NameMagicID, MagicID: magicIteratorState})
	if !ok {
		return nil
	}
	handle := s.PropertyPair(pairCP).Slots[slotIdx].Value.Handle()
	state, _ := s.lookup(handle).(*IteratorState)
	return state
}

// IterResult is the iterator-result record of §4.9: Key is always
// meaningful for IterateKeys/IterateEntries, Value for IterateValues/
// IterateEntries. Neither this package nor the API layer assembles a
// two-element array for IterateEntries; callers read Key and Value.
type IterResult struct {
	Key   Value
	Value Value
	Done  bool
}

// IteratorNext advances past deleted slots and returns the next result.
func (s *Store) IteratorNext(iterObjCP jmem.CPointer) IterResult {
	state := s.iteratorState(iterObjCP)
	if state == nil {
		return IterResult{Done: true}
	}

	entries := state.Container.Entries
	for state.Index < len(entries) && entries[state.Index].deleted {
		state.Index++
	}
	if state.Index >= len(entries) {
		return IterResult{Done: true}
	}

	e := entries[state.Index]
	state.Index++

	value := e.value
	if !state.Container.Kind.isMapLike() {
		value = e.key
	}

	switch state.Kind {
	case IterateKeys:
		return IterResult{Key: e.key}
	case IterateValues:
		return IterResult{Value: value}
	default: // IterateEntries
		return IterResult{Key: e.key, Value: value}
	}
}
