package api

import (
	"github.com/jerryscript-project/jerryscript-sub010/internal/ecma"
	"github.com/jerryscript-project/jerryscript-sub010/internal/jmem"
)

// NewArray creates a fast-laid-out array object (§6.1's make_array,
// §4.7). writable is stored as the fast array's Writable bit; SetIndex
// and FastArray.Put do not consult it.
func (c *Context) NewArray(writable bool) Object {
	cp := c.store().NewObject(ecma.TypeArray, jmem.NullPointer)
	c.store().Object(cp).Array = ecma.NewFastArray(writable)
	return Object{ctx: c, cp: cp}
}

// GetIndex reads an array element by index, returning Undefined for holes
// and out-of-range reads, and falling through to normal-layout property
// lookup once the array has converted (§4.7).
func (o Object) GetIndex(index uint32) Value {
	obj := o.ctx.store().Object(o.cp)
	if obj.Array != nil {
		if v, ok := obj.Array.Get(index); ok {
			return v
		}
		return Undefined
	}
	return o.Get(ecma.FormatNumber(float64(index)))
}

// SetIndex writes an array element by index, converting to normal
// property-list layout if the fast array's bounded hole budget would be
// exceeded (§4.7's fast_array_to_normal transition).
func (o Object) SetIndex(index uint32, v Value) {
	obj := o.ctx.store().Object(o.cp)
	if obj.Array != nil {
		if obj.Array.Put(index, v) == ecma.PutNeedsConversion {
			o.ctx.store().ConvertArrayToNormal(o.cp)
		} else {
			return
		}
	}
	o.Set(ecma.FormatNumber(float64(index)), v)
}

// Length returns the array's current length, from the fast-array header
// or, after conversion, as one past the highest own index property.
func (o Object) Length() uint32 {
	obj := o.ctx.store().Object(o.cp)
	if obj.Array != nil {
		return obj.Array.Length()
	}
	var length uint32
	for _, n := range o.ctx.store().OwnPropertyNames(o.cp) {
		if n.Kind == ecma.NameUintIndex && n.Index+1 > length {
			length = n.Index + 1
		}
	}
	return length
}
