package api

import (
	"github.com/jerryscript-project/jerryscript-sub010/internal/ecma"
	"github.com/jerryscript-project/jerryscript-sub010/internal/jmem"
)

// classFor maps a container kind to the class-id its owning TypeClass
// object carries (§3.4's "holds a class-id").
func classFor(kind ecma.ContainerKind) ecma.ClassID {
	switch kind {
	case ecma.ContainerMap:
		return ecma.ClassMap
	case ecma.ContainerSet:
		return ecma.ClassSet
	case ecma.ContainerWeakMap:
		return ecma.ClassWeakMap
	default:
		return ecma.ClassWeakSet
	}
}

// NewContainer creates a Map/Set/WeakMap/WeakSet object (§3.9, §4.9).
func (c *Context) NewContainer(kind ecma.ContainerKind) Object {
	cp := c.store().NewObject(ecma.TypeClass, jmem.NullPointer)
	obj := c.store().Object(cp)
	obj.Class = classFor(kind)
	obj.Container = ecma.NewContainer(kind, cp)
	return Object{ctx: c, cp: cp}
}

// ContainerSize returns the container's live entry count.
func (o Object) ContainerSize() int {
	return o.ctx.store().Object(o.cp).Container.Size()
}

// ContainerSet inserts or overwrites a Map/WeakMap entry.
func (o Object) ContainerSet(key, value Value) {
	o.ctx.store().Object(o.cp).Container.Set(key, value)
}

// ContainerAdd inserts a Set/WeakSet member.
func (o Object) ContainerAdd(value Value) {
	o.ctx.store().Object(o.cp).Container.Add(value)
}

// ContainerGet reads a Map/WeakMap entry, returning Undefined if absent.
func (o Object) ContainerGet(key Value) Value {
	v, _ := o.ctx.store().Object(o.cp).Container.Get(key)
	return v
}

// ContainerHas reports membership.
func (o Object) ContainerHas(key Value) bool {
	return o.ctx.store().Object(o.cp).Container.Has(key)
}

// ContainerDelete removes an entry, idempotently (§4.9, §8.7).
func (o Object) ContainerDelete(key Value) bool {
	return o.ctx.store().Object(o.cp).Container.Delete(key)
}

// NewContainerIterator creates a keys/values/entries iterator over the
// container (§3.10, §4.9).
func (o Object) NewContainerIterator(kind ecma.IterationKind) Object {
	cp := o.ctx.store().NewContainerIterator(o.ctx.store().Object(o.cp).Container, kind)
	return Object{ctx: o.ctx, cp: cp}
}

// IteratorNext advances an iterator object created by NewContainerIterator
// (§3.10's next(), §6.1).
func (o Object) IteratorNext() ecma.IterResult {
	return o.ctx.store().IteratorNext(o.cp)
}
