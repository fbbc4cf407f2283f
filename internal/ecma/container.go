package ecma

import "github.com/jerryscript-project/jerryscript-sub010/internal/jmem"

// ContainerKind selects which of the four Map/Set/WeakMap/WeakSet flavors a
// Container implements (§3.10).
type ContainerKind uint8

const (
	ContainerMap ContainerKind = iota
	ContainerSet
	ContainerWeakMap
	ContainerWeakSet
)

func (k ContainerKind) isWeak() bool {
	return k == ContainerWeakMap || k == ContainerWeakSet
}

func (k ContainerKind) isMapLike() bool {
	return k == ContainerMap || k == ContainerWeakMap
}

// containerEntry is one slot of the flat collection backing a container
// (§3.10). A deleted entry is replaced in place by an `empty` sentinel
// rather than compacted, so iterator indices stay stable.
type containerEntry struct {
	deleted bool
	key     Value
	value   Value // meaningful only for map-like containers
}

// Container is the growable flat collection shared by Map/Set/WeakMap/
// WeakSet (§3.10). Find is a linear scan using SameValueZero; negative zero
// keys are normalized to positive on insertion.
type Container struct {
	Kind    ContainerKind
	Entries []containerEntry
	count   int

	// owner records the owning object's handle. Nothing reads it: the GC
	// marks a weak container's keys like any other container's, and
	// finalizing a key does not remove its entry.
	owner jmem.CPointer
}

// NewContainer creates an empty container of the given kind owned by
// ownerCP (the Map/Set object itself), for weak back-link registration.
func NewContainer(kind ContainerKind, ownerCP jmem.CPointer) *Container {
	return &Container{Kind: kind, owner: ownerCP}
}

// Size returns the number of live (non-deleted) entries.
func (c *Container) Size() int { return c.count }

func keyEquals(a, b Value) bool {
	if a.IsNumber() && b.IsNumber() {
		af, _ := ToNumber(a)
		bf, _ := ToNumber(b)
		return SameValueZero(af, bf)
	}
	return a.Equal(b)
}

func normalizeKey(v Value) Value {
	if v.IsFloat() {
		// Float records live on the heap; normalization of -0 happens at
		// the number layer before a Value is constructed, so there is
		// nothing further to do here for the handle-based representation.
		return v
	}
	if v.IsInt() && v.IntValue() == 0 {
		return Int(0)
	}
	return v
}

// find returns the index of the live entry matching key, or -1.
func (c *Container) find(key Value) int {
	key = normalizeKey(key)
	for i, e := range c.Entries {
		if !e.deleted && keyEquals(e.key, key) {
			return i
		}
	}
	return -1
}

// Set inserts or overwrites a map-like entry.
func (c *Container) Set(key, value Value) {
	key = normalizeKey(key)
	if i := c.find(key); i != -1 {
		c.Entries[i].value = value
		return
	}
	c.Entries = append(c.Entries, containerEntry{key: key, value: value})
	c.count++
}

// Add inserts a set-like entry if not already present.
func (c *Container) Add(key Value) {
	key = normalizeKey(key)
	if c.find(key) != -1 {
		return
	}
	c.Entries = append(c.Entries, containerEntry{key: key})
	c.count++
}

// Get returns a map-like entry's value, or (Undefined, false) if absent.
func (c *Container) Get(key Value) (Value, bool) {
	if i := c.find(key); i != -1 {
		return c.Entries[i].value, true
	}
	return Undefined, false
}

// Has reports whether key is present.
func (c *Container) Has(key Value) bool {
	return c.find(key) != -1
}

// Delete removes the entry for key in place (leaving an empty sentinel),
// returning whether anything was removed. A second Delete on the same key
// is idempotent and returns false (§8.7).
func (c *Container) Delete(key Value) bool {
	i := c.find(key)
	if i == -1 {
		return false
	}
	c.Entries[i] = containerEntry{deleted: true}
	c.count--
	return true
}

// ForEach walks live entries in insertion order.
func (c *Container) ForEach(fn func(key, value Value)) {
	for _, e := range c.Entries {
		if !e.deleted {
			fn(e.key, e.value)
		}
	}
}
