package api

import (
	"github.com/jerryscript-project/jerryscript-sub010/internal/ecma"
	"github.com/jerryscript-project/jerryscript-sub010/internal/jmem"
)

// NewProxy creates a Proxy object forwarding to target through handler's
// traps (§3.7, §4.10).
func (c *Context) NewProxy(target, handler Object) Object {
	cp := c.store().NewProxy(target.cp, handler.cp)
	return Object{ctx: c, cp: cp}
}

// Revoke makes every subsequent trapped operation on this proxy fail with
// a TypeError (§4.10's revocation post-condition).
func (o Object) Revoke() {
	o.ctx.store().RevokeProxy(o.cp)
}

// callTrap adapts Context.Call to the func(jmem.CPointer, []Value)
// (Value, error) shape ecma's proxy forwarding expects, since traps are
// themselves function-type objects the core only dispatches to via
// Callable (§4.10).
func (o Object) callTrap() func(fn jmem.CPointer, args []Value) (Value, error) {
	return func(fn jmem.CPointer, args []Value) (Value, error) {
		return o.ctx.Call(ecma.FromHandle(ecma.TagObject, fn), Undefined, args)
	}
}

// ProxyGet implements [[Get]] through a proxy's get trap, falling back to
// forwarding to the target when the handler defines no trap (§4.10).
func (o Object) ProxyGet(key string) (Value, error) {
	return o.ctx.store().ProxyGet(o.cp, nameOf(key), o.callTrap())
}

// ProxyHas implements [[HasProperty]] through a proxy's has trap.
func (o Object) ProxyHas(key string) (bool, error) {
	return o.ctx.store().ProxyHas(o.cp, nameOf(key), o.callTrap())
}

// ProxyDelete implements [[Delete]] through a proxy's deleteProperty trap.
func (o Object) ProxyDelete(key string) (bool, error) {
	return o.ctx.store().ProxyDelete(o.cp, nameOf(key), o.callTrap())
}
