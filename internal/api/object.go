package api

import (
	"strconv"

	"github.com/jerryscript-project/jerryscript-sub010/internal/ecma"
	"github.com/jerryscript-project/jerryscript-sub010/internal/jmem"
)

// Object is a handle to an object-type value, the receiver of every
// property-access operation in this file (§6.1's "object access" group).
type Object struct {
	ctx *Context
	cp  jmem.CPointer
}

// NewObject creates a plain object with the given prototype (jmem.NullPointer
// for none).
func (c *Context) NewObject(prototype jmem.CPointer) Object {
	return Object{ctx: c, cp: c.store().NewObject(ecma.TypeGeneral, prototype)}
}

// ObjectOf wraps an object-tagged Value for property access. Panics if v is
// not object-tagged, mirroring Value.Handle's own contract.
func (c *Context) ObjectOf(v Value) Object {
	if !v.IsObject() {
		panic("api: ObjectOf called on a non-object value")
	}
	return Object{ctx: c, cp: v.Handle()}
}

// Value returns the tagged Value referring to this object.
func (o Object) Value() Value { return ecma.FromHandle(ecma.TagObject, o.cp) }

// Handle returns the underlying cpointer, for callers (e.g. Callable
// implementations) that need to cross back into internal/ecma directly.
func (o Object) Handle() jmem.CPointer { return o.cp }

func nameOf(key string) ecma.Name {
	if n, err := strconv.ParseUint(key, 10, 32); err == nil && n < 0xFFFFFFFF && strconv.FormatUint(n, 10) == key {
		return ecma.Name{Kind: ecma.NameUintIndex, Index: uint32(n)}
	}
	return ecma.Name{Kind: ecma.NameDirectString, Str: key}
}

// Get implements [[Get]] for a string-keyed property (§6.1's get
// property). Returns Undefined if absent.
func (o Object) Get(key string) Value {
	pairCP, idx, ok := o.ctx.store().FindProperty(o.cp, nameOf(key))
	if !ok {
		return Undefined
	}
	sl := &o.ctx.store().PropertyPair(pairCP).Slots[idx]
	if sl.IsAccessor {
		return sl.Getter
	}
	return sl.Value
}

// Set implements [[Set]] for a string-keyed data property, creating it if
// absent (§6.1's set property). Non-writable existing data properties are
// left unchanged, matching non-strict [[Set]] failure semantics; calling
// through an existing accessor's setter requires Context.Call and is the
// caller's job (see Object.GetOwnPropertyDescriptor).
func (o Object) Set(key string, v Value) {
	if pairCP, idx, ok := o.ctx.store().FindProperty(o.cp, nameOf(key)); ok {
		sl := &o.ctx.store().PropertyPair(pairCP).Slots[idx]
		if sl.IsAccessor || !sl.Writable {
			return
		}
		sl.Value = v
		return
	}
	o.ctx.store().DefineDataProperty(o.cp, nameOf(key), v, true, true, true)
}

// Has implements [[HasProperty]] (§6.1's has property).
func (o Object) Has(key string) bool {
	_, _, ok := o.ctx.store().FindProperty(o.cp, nameOf(key))
	return ok
}

// Delete implements [[Delete]] (§6.1's delete property).
func (o Object) Delete(key string) bool {
	return o.ctx.store().DeleteProperty(o.cp, nameOf(key))
}

// DefineOwnProperty implements [[DefineOwnProperty]] from a Descriptor
// (§6.1's define-own-property, §6.2). Accessor and data attributes are
// mutually exclusive: d.IsAccessor selects which set of fields is used and
// the other set is ignored.
func (o Object) DefineOwnProperty(key string, d Descriptor) {
	if d.IsAccessor {
		o.ctx.store().DefineAccessorProperty(o.cp, nameOf(key), d.Getter, d.Setter, d.Enumerable, d.Configurable)
		return
	}
	o.ctx.store().DefineDataProperty(o.cp, nameOf(key), d.Value, d.Writable, d.Enumerable, d.Configurable)
}

// GetOwnPropertyDescriptor implements [[GetOwnProperty]] (§6.1's
// get-own-property-descriptor, §6.2).
func (o Object) GetOwnPropertyDescriptor(key string) (Descriptor, bool) {
	pairCP, idx, ok := o.ctx.store().FindProperty(o.cp, nameOf(key))
	if !ok {
		return Descriptor{}, false
	}
	sl := o.ctx.store().PropertyPair(pairCP).Slots[idx]
	d := Descriptor{
		Enumerable:   sl.Enumerable,
		Configurable: sl.Configurable,
		IsAccessor:   sl.IsAccessor,
	}
	if sl.IsAccessor {
		d.Getter, d.Setter = sl.Getter, sl.Setter
	} else {
		d.Value, d.Writable = sl.Value, sl.Writable
	}
	return d, true
}

// GetPrototypeOf returns the handle of the object's prototype
// (jmem.NullPointer for none).
func (o Object) GetPrototypeOf() jmem.CPointer {
	return o.ctx.store().GetPrototypeOf(o.cp)
}

// SetPrototypeOf rewires the object's prototype link.
func (o Object) SetPrototypeOf(proto jmem.CPointer) {
	o.ctx.store().SetPrototypeOf(o.cp, proto)
}

// Keys returns every own string-keyed and array-index property name, in
// the §5 ordering guarantee (indices ascending, then insertion order).
func (o Object) Keys() []string {
	names := o.ctx.store().OwnPropertyNames(o.cp)
	keys := make([]string, 0, len(names))
	for _, n := range names {
		keys = append(keys, nameString(n))
	}
	return keys
}

func nameString(n ecma.Name) string {
	switch n.Kind {
	case ecma.NameUintIndex:
		return ecma.FormatNumber(float64(n.Index))
	default:
		return n.Str
	}
}

// ForEach visits every own enumerable property in enumeration order
// (§6.1's foreach), stopping early if fn returns false.
func (o Object) ForEach(fn func(key string, v Value) bool) {
	names := o.ctx.store().OwnPropertyNames(o.cp)
	for _, n := range names {
		pairCP, idx, ok := o.ctx.store().FindProperty(o.cp, n)
		if !ok {
			continue
		}
		sl := o.ctx.store().PropertyPair(pairCP).Slots[idx]
		if !sl.Enumerable {
			continue
		}
		v := sl.Value
		if sl.IsAccessor {
			v = sl.Getter
		}
		if !fn(nameString(n), v) {
			return
		}
	}
}
