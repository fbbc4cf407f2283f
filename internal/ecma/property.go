package ecma

import (
	"golang.org/x/exp/slices"

	"github.com/jerryscript-project/jerryscript-sub010/internal/jmem"
)

// SlotKind is the per-slot discriminator of a property pair (§3.5).
type SlotKind uint8

const (
	SlotDeleted SlotKind = iota
	SlotNamedData
	SlotNamedAccessor
	SlotInternal
)

// NameKind selects how a property Name is represented, matching the 2-bit
// name-type field in §3.5.
type NameKind uint8

const (
	NameDirectString NameKind = iota
	NameMagicID
	NameUintIndex
	NameHeapString
)

// Name identifies a property. Exactly one of Str/Index/MagicID is
// meaningful, selected by Kind; Str also holds the NameHeapString payload
// as an interned handle via HeapStr.
type Name struct {
	Kind    NameKind
	Str     string
	Index   uint32
	MagicID uint32
	HeapStr jmem.CPointer
}

// Equal normalizes uint-typed names to numeric comparison before falling
// back to exact kind+payload equality (§4.5).
func (n Name) Equal(o Name) bool {
	if n.Kind == NameUintIndex && o.Kind == NameUintIndex {
		return n.Index == o.Index
	}
	if n.Kind != o.Kind {
		return false
	}
	switch n.Kind {
	case NameDirectString, NameHeapString:
		return n.Str == o.Str
	case NameMagicID:
		return n.MagicID == o.MagicID
	case NameUintIndex:
		return n.Index == o.Index
	}
	return false
}

// Slot is one of the two property slots held by a PropertyPair.
type Slot struct {
	Kind SlotKind
	Name Name

	Writable     bool
	Enumerable   bool
	Configurable bool
	IsAccessor   bool

	Value  Value // SlotNamedData
	Getter Value // SlotNamedAccessor
	Setter Value // SlotNamedAccessor

	Internal uint32 // SlotInternal payload, e.g. a virtual-length marker
}

func (s *Slot) deleted() bool { return s.Kind == SlotDeleted }

// PropertyPair is the fixed two-slot record of §3.5. The pair list is
// singly linked, newest-first.
type PropertyPair struct {
	Slots        [2]Slot
	NextPairCP   jmem.CPointer
}

func (p *PropertyPair) bothDeleted() bool {
	return p.Slots[0].deleted() && p.Slots[1].deleted()
}

// newPropertyPair allocates a pair with both slots deleted (an empty pair
// ready to receive up to two properties).
func (s *Store) newPropertyPair(next jmem.CPointer) jmem.CPointer {
	pair := &PropertyPair{NextPairCP: next}
	pair.Slots[0].Kind = SlotDeleted
	pair.Slots[1].Kind = SlotDeleted
	return s.alloc(pair)
}

// FindProperty walks the property-pair chain from obj's PropertyListCP
// looking for name, using the hashmap accelerator when present (§8.4:
// lookup_via_chain must agree with lookup_via_hashmap). It returns the
// owning pair, the slot index within it, and whether it was found.
func (s *Store) FindProperty(objCP jmem.CPointer, name Name) (pairCP jmem.CPointer, slot int, found bool) {
	obj := s.Object(objCP)
	if hm := s.hashmapOf(obj); hm != nil {
		return s.hashmapFind(hm, name)
	}
	return s.findPropertyChain(obj.PropertyListCP, name)
}

func (s *Store) findPropertyChain(head jmem.CPointer, name Name) (jmem.CPointer, int, bool) {
	for cp := head; cp != jmem.NullPointer; {
		pair := s.PropertyPair(cp)
		for i := range pair.Slots {
			sl := &pair.Slots[i]
			if !sl.deleted() && sl.Kind != SlotInternal && sl.Name.Equal(name) {
				return cp, i, true
			}
		}
		cp = pair.NextPairCP
	}
	return jmem.NullPointer, 0, false
}

// DefineDataProperty creates or overwrites a named-data slot on obj. It
// reuses a deleted slot in the head pair when available, otherwise prepends
// a fresh pair (§4.5). Objects owning a hashmap have it updated coherently
// or flagged for a deferred rebuild.
func (s *Store) DefineDataProperty(objCP jmem.CPointer, name Name, v Value, writable, enumerable, configurable bool) {
	if pairCP, idx, ok := s.FindProperty(objCP, name); ok {
		sl := &s.PropertyPair(pairCP).Slots[idx]
		*sl = Slot{
			Kind: SlotNamedData, Name: name, Value: v,
			Writable: writable, Enumerable: enumerable, Configurable: configurable,
		}
		return
	}
	pairCP, idx := s.allocSlot(objCP, name)
	s.PropertyPair(pairCP).Slots[idx] = Slot{
		Kind: SlotNamedData, Name: name, Value: v,
		Writable: writable, Enumerable: enumerable, Configurable: configurable,
	}
}

// DefineAccessorProperty creates or overwrites a named-accessor slot
// (§4.5, §6.2's accessor-descriptor case).
func (s *Store) DefineAccessorProperty(objCP jmem.CPointer, name Name, getter, setter Value, enumerable, configurable bool) {
	if pairCP, idx, ok := s.FindProperty(objCP, name); ok {
		sl := &s.PropertyPair(pairCP).Slots[idx]
		*sl = Slot{
			Kind: SlotNamedAccessor, Name: name, IsAccessor: true,
			Getter: getter, Setter: setter, Enumerable: enumerable, Configurable: configurable,
		}
		return
	}
	pairCP, idx := s.allocSlot(objCP, name)
	s.PropertyPair(pairCP).Slots[idx] = Slot{
		Kind: SlotNamedAccessor, Name: name, IsAccessor: true,
		Getter: getter, Setter: setter, Enumerable: enumerable, Configurable: configurable,
	}
}

// allocSlot reserves a free slot for a brand-new property (no existing
// slot for name), registering it with obj's hashmap if it has one, and
// creating one once the property count crosses the creation threshold
// (§4.6). The caller fills in the slot's contents immediately after.
func (s *Store) allocSlot(objCP jmem.CPointer, name Name) (jmem.CPointer, int) {
	obj := s.Object(objCP)
	pairCP := s.headPairWithFreeSlot(obj)
	pair := s.PropertyPair(pairCP)
	idx := 0
	if !pair.Slots[0].deleted() {
		idx = 1
	}
	obj.PropertyCount++

	if hm := s.hashmapOf(obj); hm != nil {
		if obj.PropertyCount+uint32(hm.UnusedCount) >= uint32(hm.MaxPropertyCount) {
			// Out of cells even before the tombstone fraction would have
			// signalled a rebuild (e.g. steady insertion with few deletes).
			// The slot for name is still an empty reservation at this point
			// (the caller fills it in right after allocSlot returns), so a
			// rebuild's chain scan would not see it; rebuild first, sized
			// for the current live count, then insert this one explicitly
			// (§4.6).
			s.RebuildHashmap(objCP)
			s.hashmapInsert(s.hashmapOf(obj), name, pairCP, idx)
		} else {
			s.hashmapInsert(hm, name, pairCP, idx)
		}
	} else if obj.PropertyCount >= hashmapThreshold {
		s.CreateHashmap(objCP)
		s.hashmapInsert(s.hashmapOf(obj), name, pairCP, idx)
	}
	return pairCP, idx
}

// headPairWithFreeSlot returns the first real pair in obj's chain if it
// still has a deleted slot, prepending a fresh pair otherwise. It updates
// either obj.PropertyListCP or, when a hashmap sits in front, the
// hashmap's NextCP link - the hashmap's cells are unaffected since a fresh
// pair carries no properties yet.
func (s *Store) headPairWithFreeSlot(obj *Object) jmem.CPointer {
	head := s.chainHead(obj)
	if head != jmem.NullPointer {
		pair := s.PropertyPair(head)
		if pair.Slots[0].deleted() || pair.Slots[1].deleted() {
			return head
		}
	}
	cp := s.newPropertyPair(head)
	s.setChainHead(obj, cp)
	return cp
}

// setChainHead rewrites the pointer to the first real property pair,
// whether that pointer lives directly on the object or inside its
// hashmap header.
func (s *Store) setChainHead(obj *Object, cp jmem.CPointer) {
	if hm := s.HashMap(obj.PropertyListCP); hm != nil {
		hm.NextCP = cp
		return
	}
	obj.PropertyListCP = cp
}

// DeleteProperty marks the named slot deleted (tombstone) and frees the
// enclosing pair once both of its slots are deleted, rewriting the
// predecessor's NextPairCP link (§4.5, §3.12). It reports whether a
// property was actually present and configurable.
func (s *Store) DeleteProperty(objCP jmem.CPointer, name Name) bool {
	pairCP, idx, ok := s.FindProperty(objCP, name)
	if !ok {
		return false
	}
	pair := s.PropertyPair(pairCP)
	if !pair.Slots[idx].Configurable {
		return false
	}
	// The hashmap cell is matched by the slot's name, so it is tombstoned
	// before the slot itself is cleared.
	hm := s.hashmapOf(s.Object(objCP))
	if hm != nil {
		s.hashmapDelete(hm, name)
	}
	pair.Slots[idx] = Slot{Kind: SlotDeleted}
	s.Object(objCP).PropertyCount--

	if hm != nil && hm.NeedsRebuild() {
		s.RebuildHashmap(objCP)
	}

	if pair.bothDeleted() {
		s.unlinkPair(objCP, pairCP)
	}
	return true
}

func (s *Store) unlinkPair(objCP, pairCP jmem.CPointer) {
	obj := s.Object(objCP)
	head := s.chainHead(obj)
	if head == pairCP {
		s.setChainHead(obj, s.PropertyPair(pairCP).NextPairCP)
		s.free(pairCP)
		return
	}
	for cp := head; cp != jmem.NullPointer; {
		pair := s.PropertyPair(cp)
		if pair.NextPairCP == pairCP {
			pair.NextPairCP = s.PropertyPair(pairCP).NextPairCP
			s.free(pairCP)
			return
		}
		cp = pair.NextPairCP
	}
}

// OwnPropertyNames returns every enumerable-or-not own property name in
// insertion order: array indices first (numerically ascending), then
// string keys (§5's ordering guarantee). It walks the pair chain directly;
// the hashmap never affects enumeration order.
func (s *Store) OwnPropertyNames(objCP jmem.CPointer) []Name {
	obj := s.Object(objCP)
	var indices []Name
	var strs []Name
	var chain []Name
	for cp := s.chainHead(obj); cp != jmem.NullPointer; {
		pair := s.PropertyPair(cp)
		for i := len(pair.Slots) - 1; i >= 0; i-- {
			sl := pair.Slots[i]
			if sl.deleted() || sl.Kind == SlotInternal {
				continue
			}
			chain = append(chain, sl.Name)
		}
		cp = pair.NextPairCP
	}
	// chain is newest-first; walk it in reverse for insertion order, which
	// matters for string keys (indices get re-sorted numerically anyway).
	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i].Kind == NameUintIndex {
			indices = append(indices, chain[i])
		} else {
			strs = append(strs, chain[i])
		}
	}
	slices.SortFunc(indices, func(a, b Name) bool { return a.Index < b.Index })
	return append(indices, strs...)
}
