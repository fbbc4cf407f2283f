package ecma

import (
	"golang.org/x/crypto/blake2b"

	"github.com/jerryscript-project/jerryscript-sub010/internal/jmem"
)

// hashmapThreshold is the property count at which a hashmap accelerator is
// created (§4.6: "a configurable property count (>= 32)").
const hashmapThreshold = 32

// hashmapRebuildTombstoneFraction is the tombstone-to-capacity fraction
// above which a lookup signals RecreateHashmap instead of growing in place
// (§4.6).
const hashmapRebuildTombstoneFraction = 0.5

// slotFlag disambiguates a hashmap cell's cpointer per §3.6: when the
// cpointer is null, the flag tells null-vacant from tombstone; when
// non-null, it tells which of the pair's two slots the cell names.
type slotFlag uint8

const (
	flagNull      slotFlag = iota // cpointer is the real "never used" sentinel
	flagTombstone                 // cpointer is null but the slot was deleted
	flagFirstSlot                 // cpointer names Slots[0]
	flagSecondSlot                // cpointer names Slots[1]
)

type hashmapCell struct {
	pairCP jmem.CPointer
	flag   slotFlag
}

// PropertyHashMap is the open-addressing accelerator of §3.6/§4.6. It sits
// as a header node at the front of the property list; NextCP is the real
// first property pair it accelerates lookups into.
type PropertyHashMap struct {
	Cells            []hashmapCell
	MaxPropertyCount int // power of two
	NullCount        int
	UnusedCount      int
	NextCP           jmem.CPointer
}

func nameHash(n Name) uint32 {
	switch n.Kind {
	case NameUintIndex:
		return n.Index * 2654435761
	case NameMagicID:
		return n.MagicID * 2654435761
	default:
		return stringHash(n.Str)
	}
}

// stringHash hashes a name string using blake2b and truncates to 32 bits,
// matching the engine's choice of a cheap, well-distributed hash for the
// hashmap's probe stride (see SPEC_FULL.md's Open Question resolution on
// long-string hashing).
func stringHash(s string) uint32 {
	sum := blake2b.Sum256([]byte(s))
	return uint32(sum[0]) | uint32(sum[1])<<8 | uint32(sum[2])<<16 | uint32(sum[3])<<24
}

func stride(hash uint32, capacity int) uint32 {
	s := (hash >> 16) | 1 // odd stride guarantees full coverage of a power-of-two table
	return s % uint32(capacity)
}

// hashmapOf returns obj's hashmap accelerator if it has one.
func (s *Store) hashmapOf(obj *Object) *PropertyHashMap {
	if obj == nil || obj.PropertyListCP == jmem.NullPointer {
		return nil
	}
	return s.HashMap(obj.PropertyListCP)
}

// CreateHashmap builds a hashmap accelerator for obj by scanning its
// current property-pair chain, and splices it in as the new head of the
// property list (§4.6). Capacity is sized from obj's current live property
// count rather than a fixed constant, so a rebuild (whether triggered by
// the tombstone fraction or by running out of cells entirely) always has
// room for what the object actually holds.
func (s *Store) CreateHashmap(objCP jmem.CPointer) {
	obj := s.Object(objCP)
	chainHead := s.chainHead(obj)

	want := hashmapThreshold
	if int(obj.PropertyCount) > want {
		want = int(obj.PropertyCount)
	}
	capacity := nextPowerOfTwo(want * 2)
	hm := &PropertyHashMap{Cells: make([]hashmapCell, capacity), MaxPropertyCount: capacity, NextCP: chainHead}

	for cp := chainHead; cp != jmem.NullPointer; {
		pair := s.PropertyPair(cp)
		for i := range pair.Slots {
			if !pair.Slots[i].deleted() && pair.Slots[i].Kind != SlotInternal {
				insertCell(hm, nameHash(pair.Slots[i].Name), cp, slotFlagFor(i))
			}
		}
		cp = pair.NextPairCP
	}

	obj.PropertyListCP = s.alloc(hm)
}

// chainHead returns the head of obj's actual property-pair chain,
// transparently skipping a hashmap header if one is installed.
func (s *Store) chainHead(obj *Object) jmem.CPointer {
	if obj.PropertyListCP == jmem.NullPointer {
		return jmem.NullPointer
	}
	if hm := s.HashMap(obj.PropertyListCP); hm != nil {
		return hm.NextCP
	}
	return obj.PropertyListCP
}

func slotFlagFor(i int) slotFlag {
	if i == 0 {
		return flagFirstSlot
	}
	return flagSecondSlot
}

func insertCell(hm *PropertyHashMap, hash uint32, pairCP jmem.CPointer, flag slotFlag) {
	capacity := len(hm.Cells)
	idx := int(hash) % capacity
	st := stride(hash, capacity)
	for i := 0; i < capacity; i++ {
		c := &hm.Cells[idx]
		if c.flag == flagNull || c.flag == flagTombstone {
			if c.flag == flagTombstone {
				hm.UnusedCount--
			}
			*c = hashmapCell{pairCP: pairCP, flag: flag}
			return
		}
		idx = (idx + int(st)) % capacity
	}
}

func (s *Store) hashmapFind(hm *PropertyHashMap, name Name) (jmem.CPointer, int, bool) {
	hash := nameHash(name)
	capacity := len(hm.Cells)
	idx := int(hash) % capacity
	st := stride(hash, capacity)
	for i := 0; i < capacity; i++ {
		c := hm.Cells[idx]
		if c.flag == flagNull {
			return jmem.NullPointer, 0, false
		}
		if c.flag != flagTombstone {
			slotIdx := 0
			if c.flag == flagSecondSlot {
				slotIdx = 1
			}
			pair := s.PropertyPair(c.pairCP)
			if !pair.Slots[slotIdx].deleted() && pair.Slots[slotIdx].Name.Equal(name) {
				return c.pairCP, slotIdx, true
			}
		}
		idx = (idx + int(st)) % capacity
	}
	return jmem.NullPointer, 0, false
}

func (s *Store) hashmapInsert(hm *PropertyHashMap, name Name, pairCP jmem.CPointer, slotIdx int) {
	insertCell(hm, nameHash(name), pairCP, slotFlagFor(slotIdx))
}

// hashmapDelete clears the cell naming name, turning it into a tombstone.
// DeleteProperty checks NeedsRebuild right after calling this and rebuilds
// the accelerator in place once tombstones cross the rebuild fraction
// (§4.6's RECREATE_HASHMAP signal).
func (s *Store) hashmapDelete(hm *PropertyHashMap, name Name) {
	hash := nameHash(name)
	capacity := len(hm.Cells)
	idx := int(hash) % capacity
	st := stride(hash, capacity)
	for i := 0; i < capacity; i++ {
		c := &hm.Cells[idx]
		if c.flag == flagNull {
			return
		}
		if c.flag != flagTombstone {
			slotIdx := 0
			if c.flag == flagSecondSlot {
				slotIdx = 1
			}
			pair := s.PropertyPair(c.pairCP)
			if pair.Slots[slotIdx].Name.Equal(name) {
				*c = hashmapCell{flag: flagTombstone}
				hm.UnusedCount++
				return
			}
		}
		idx = (idx + int(st)) % capacity
	}
}

// NeedsRebuild reports whether hm's tombstone fraction has crossed the
// rebuild threshold (§4.6).
func (hm *PropertyHashMap) NeedsRebuild() bool {
	return float64(hm.UnusedCount) > hashmapRebuildTombstoneFraction*float64(hm.MaxPropertyCount)
}

// RebuildHashmap discards and recreates obj's hashmap from its current
// (post-mutation) property-pair chain, which stays reachable behind the
// hashmap head. DeleteProperty calls it once tombstones pass the rebuild
// threshold, and allocSlot calls it when the table has no room left (§4.6).
func (s *Store) RebuildHashmap(objCP jmem.CPointer) {
	s.CreateHashmap(objCP)
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
