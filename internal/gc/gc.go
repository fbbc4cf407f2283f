// Package gc implements the mark-and-sweep collector of §4.11: a
// tri-color mark over the GC object chain maintained by internal/ecma,
// followed by a sweep that frees unmarked objects and runs kind-specific
// finalizers. It is registered with the underlying jmem.Heap as the
// severity-LOW/HIGH free-unused-memory callback (§4.1).
package gc

import (
	"github.com/jerryscript-project/jerryscript-sub010/internal/ecma"
	"github.com/jerryscript-project/jerryscript-sub010/internal/jmem"
)

// Roots supplies every GC root external to the object chain itself: the
// global lexical environment, the VM's active frames, any live error
// value, and engine-side immortal caches (§4.11). The core does not
// implement a VM, so Frames/LiveError are opaque root-value slices
// supplied by whatever embeds this package (see internal/engine).
type Roots struct {
	GlobalEnv jmem.CPointer
	Frames    []ecma.Value
	LiveError ecma.Value
}

// Collector runs mark-and-sweep over a Store's object chain.
type Collector struct {
	store *ecma.Store
	marked map[jmem.CPointer]bool
}

// New creates a collector bound to store.
func New(store *ecma.Store) *Collector {
	return &Collector{store: store}
}

// RegisterWithHeap installs this collector as the store's heap's
// free-unused-memory callback at both severities (§4.1/§4.11): a soft
// allocation-limit breach runs a cycle at LOW, and a failed retry runs one
// at HIGH. rootsFn is called fresh each time since roots (the active call
// frames, in particular) change between allocations.
func (c *Collector) RegisterWithHeap(heap *jmem.Heap, rootsFn func() Roots) {
	heap.OnFreeUnusedMemory(jmem.SeverityLow, func() { c.Run(rootsFn()) })
	heap.OnFreeUnusedMemory(jmem.SeverityHigh, func() { c.Run(rootsFn()) })
}

// Run performs one full GC cycle: mark from roots, then sweep (§4.11).
// It returns the number of objects freed.
func (c *Collector) Run(roots Roots) int {
	c.marked = make(map[jmem.CPointer]bool)

	if roots.GlobalEnv != jmem.NullPointer {
		c.mark(roots.GlobalEnv)
	}
	for _, v := range roots.Frames {
		c.markValue(v)
	}
	c.markValue(roots.LiveError)

	freed := c.sweep()
	c.store.Pool().CollectEmpty()
	return freed
}

func (c *Collector) markValue(v ecma.Value) {
	switch v.Tag() {
	case ecma.TagObject, ecma.TagString, ecma.TagFloat, ecma.TagSymbol, ecma.TagBigInt:
		if v.Handle() != jmem.NullPointer {
			c.mark(v.Handle())
		}
	}
}

// mark follows the kind-specific field-traversal tables of §4.11: object
// (prototype, property list chain including accessor pairs, container
// buffer, typed-array buffer, proxy target+handler), property pair (slot
// value cpointers and next-pair pointer), string (a symbol's descriptor
// string).
func (c *Collector) mark(cp jmem.CPointer) {
	if cp == jmem.NullPointer || c.marked[cp] {
		return
	}
	c.marked[cp] = true

	if obj := c.store.Object(cp); obj != nil {
		c.mark(obj.PrototypeCP)
		c.markPropertyListChain(obj)
		if obj.LexEnv == ecma.LexEnvObjectBound {
			c.mark(obj.Bound)
		}
		if obj.Proxy != nil {
			c.mark(obj.Proxy.Target)
			c.mark(obj.Proxy.Handler)
		}
		if obj.Container != nil {
			obj.Container.ForEach(func(k, v ecma.Value) {
				c.markValue(k)
				c.markValue(v)
			})
		}
		return
	}
	if str := c.store.String(cp); str != nil {
		c.mark(str.SymbolDescription)
	}
}

func (c *Collector) markPropertyListChain(obj *ecma.Object) {
	head := obj.PropertyListCP
	if head == jmem.NullPointer {
		return
	}
	if hm := c.store.HashMap(head); hm != nil {
		c.markPairs(hm.NextCP)
		return
	}
	c.markPairs(head)
}

func (c *Collector) markPairs(head jmem.CPointer) {
	for cp := head; cp != jmem.NullPointer; {
		pair := c.store.PropertyPair(cp)
		if pair == nil {
			return
		}
		for _, sl := range pair.Slots {
			switch sl.Kind {
			case ecma.SlotNamedData:
				c.markValue(sl.Value)
			case ecma.SlotNamedAccessor:
				c.markValue(sl.Getter)
				c.markValue(sl.Setter)
			}
		}
		cp = pair.NextPairCP
	}
}

// sweep walks the GC object chain rooted at the store's gcObjects link,
// freeing every unmarked object and unlinking it from the chain, calling
// kind-specific finalizers along the way (§4.11).
func (c *Collector) sweep() int {
	freed := 0
	head := c.store.GCObjects()

	var prevCP jmem.CPointer = jmem.NullPointer
	cur := head
	newHead := jmem.NullPointer
	first := true

	for cur != jmem.NullPointer {
		obj := c.store.Object(cur)
		next := obj.GCNext

		if c.marked[cur] {
			if first {
				newHead = cur
				first = false
			} else {
				c.store.Object(prevCP).GCNext = cur
			}
			prevCP = cur
		} else {
			c.finalize(cur, obj)
			c.store.FreeObject(cur)
			freed++
		}
		cur = next
	}
	if !first {
		c.store.Object(prevCP).GCNext = jmem.NullPointer
	}
	c.store.SetGCObjects(newHead)
	return freed
}

// finalize runs the kind-specific release logic of §4.11: freeing a fast
// array's flat buffer, a container's backing buffer, releasing a typed
// array's buffer reference, and (for weak containers) walking the
// finalized object's weak-reference back-list are all no-ops at the Go
// GC level here since these are ordinary Go values collected by the host
// runtime once unreachable; what matters is detaching them from any
// other live record so they do not keep this object's memory resident
// via the arena accounting.
func (c *Collector) finalize(cp jmem.CPointer, obj *ecma.Object) {
	if obj.Finalizer != nil {
		obj.Finalizer()
	}
	obj.Array = nil
	obj.Typed = nil
	obj.Proxy = nil
	obj.Container = nil
}
