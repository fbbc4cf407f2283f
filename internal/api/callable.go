package api

import (
	"github.com/jerryscript-project/jerryscript-sub010/internal/ecma"
	"github.com/jerryscript-project/jerryscript-sub010/internal/errkind"
	"github.com/jerryscript-project/jerryscript-sub010/internal/jmem"
)

// Callable is implemented by the embedding VM for every function-type
// object it hands the core (§6.1's call-function/construct-object). The
// core never executes bytecode itself; it only validates shape and
// dispatches to this interface, the same forwarding model §4.10's Proxy
// traps use for their own out-of-core call()/construct() fallback.
type Callable interface {
	Call(ctx *Context, this Value, args []Value) (Value, error)
	Construct(ctx *Context, args []Value) (Value, error)
}

// Call invokes fn as a function (§6.1's call-function). fn must be a
// function-kind object with Callable state, which every object produced
// by ExternalFunction carries; non-callable objects report a TypeError.
func (c *Context) Call(fn Value, this Value, args []Value) (Value, error) {
	if !fn.IsObject() {
		return Value{}, errkind.New(errkind.Type, "value is not callable")
	}
	obj := c.store().Object(fn.Handle())
	if obj.Callable == nil {
		return Value{}, errkind.New(errkind.Type, "object is not callable")
	}
	return obj.Callable.Native(c.store(), this, args)
}

// Construct invokes ctor as a constructor (§6.1's construct-object). The
// native handler receives Undefined as `this`; external functions acting
// as constructors are expected to build and return their own object.
// Objects made by ExternalFunction dispatch here to cb.Call, not to
// Callable.Construct, which nothing in this package invokes.
func (c *Context) Construct(ctor Value, args []Value) (Value, error) {
	if !ctor.IsObject() {
		return Value{}, errkind.New(errkind.Type, "value is not a constructor")
	}
	obj := c.store().Object(ctor.Handle())
	if obj.Callable == nil {
		return Value{}, errkind.New(errkind.Type, "object is not a constructor")
	}
	return obj.Callable.Native(c.store(), Undefined, args)
}

// ExternalFunction registers cb as a native function-type object (§6.1's
// "register a native handler as a function object"). finalize, if
// non-nil, is called by the GC's sweep right before it frees the
// function's record.
func (c *Context) ExternalFunction(cb Callable, finalize func()) Value {
	cp := c.store().NewObject(ecma.TypeExternalFunction, jmem.NullPointer)
	obj := c.store().Object(cp)
	obj.Callable = &ecma.CallableState{
		Native: func(store *ecma.Store, this Value, args []Value) (Value, error) {
			return cb.Call(c, this, args)
		},
	}
	obj.Finalizer = finalize
	return ecma.FromHandle(ecma.TagObject, cp)
}
