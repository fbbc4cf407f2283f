package api

import (
	"github.com/jerryscript-project/jerryscript-sub010/internal/ecma"
	"github.com/jerryscript-project/jerryscript-sub010/internal/jmem"
)

// ParsedScript is an opaque handle a Parser hands back to Run/Eval. Its
// concrete representation (a bytecode tree, a compiled function) is the
// embedding VM's business; the core never inspects it.
type ParsedScript any

// Parser is injected by the embedding VM to implement §6.1's
// parse(source, is_strict)/run(parsed)/eval(source, strict) group.
// Parsing and execution are explicitly out of this core's scope (§1); the
// core only calls through this interface when a host wires one in.
type Parser interface {
	Parse(ctx *Context, source []byte, strict bool) (ParsedScript, error)
	Run(ctx *Context, parsed ParsedScript) (Value, error)
	Eval(ctx *Context, source []byte, strict bool) (Value, error)
}

// SnapshotCodec is injected by the embedding VM to implement §6.1/§6.4's
// snapshot group: parse_and_save_snapshot, exec_snapshot,
// parse_and_save_literals. The byte layout itself (magic, version, option
// flags, literal table, bytecode bodies) is defined in §6.4 but producing
// and consuming those bytes requires a bytecode compiler/interpreter this
// core does not implement.
type SnapshotCodec interface {
	ParseAndSaveSnapshot(ctx *Context, source []byte, strict bool) ([]byte, error)
	ExecSnapshot(ctx *Context, snapshot []byte, copyBytes bool) (Value, error)
	ParseAndSaveLiterals(ctx *Context, source []byte) ([]byte, error)
}

// InstanceOf implements the instanceof abstract relation by walking v's
// prototype chain looking for ctorPrototype (§6.1's instanceof).
func (c *Context) InstanceOf(v Value, ctorPrototype Value) bool {
	if !v.IsObject() || !ctorPrototype.IsObject() {
		return false
	}
	target := ctorPrototype.Handle()
	for cp := c.store().GetPrototypeOf(v.Handle()); cp != jmem.NullPointer; cp = c.store().GetPrototypeOf(cp) {
		if cp == target {
			return true
		}
	}
	return false
}

// IsConstructor reports whether v is an object capable of acting as a
// constructor (§6.1's is_constructor): any function-kind object with
// native Callable state, except arrow functions, which ECMAScript never
// allows as constructors.
func (c *Context) IsConstructor(v Value) bool {
	if !v.IsObject() {
		return false
	}
	obj := c.store().Object(v.Handle())
	if obj == nil || obj.Callable == nil {
		return false
	}
	return obj.Type != ecma.TypeArrowFunction
}
