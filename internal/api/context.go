// Package api shapes spec.md §6.1-§6.5 as Go interfaces and structs over
// internal/engine and internal/ecma, the surface an embedding VM programs
// against. Parsing, bytecode execution, and the VM dispatch loop stay
// interfaces this package calls through but never implements (§1's
// Non-goals); everything else - value construction/inspection, property
// access, external functions, heap snapshot capture, context slots - is
// fully implemented here.
package api

import (
	"github.com/jerryscript-project/jerryscript-sub010/internal/ecma"
	"github.com/jerryscript-project/jerryscript-sub010/internal/engine"
	"github.com/jerryscript-project/jerryscript-sub010/internal/gcsnap"
	"github.com/jerryscript-project/jerryscript-sub010/internal/jmem"
)

// Config is the engine's construction-time configuration (§6.1's
// init(flags)).
type Config = engine.Config

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config { return engine.DefaultConfig() }

// Value is the tagged value every API call exchanges with the embedding.
type Value = ecma.Value

// Context is one embeddable engine instance (§5, §6.1's lifecycle group).
type Context struct {
	eng *engine.Context
}

// New creates a context with a private arena, per cfg (§6.1's init).
func New(cfg Config) (*Context, error) {
	eng, err := engine.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Context{eng: eng}, nil
}

// Close releases the context's arena (§6.1's cleanup). Every value/object
// handle obtained from this context is invalid afterwards.
func (c *Context) Close() error {
	return c.eng.Close()
}

// GC runs an explicit collection cycle (§6.1's gc()).
func (c *Context) GC() int {
	return c.eng.GC()
}

// SetHost installs the VM-side GC root supplier (active call frames, any
// in-flight exception) consulted by every GC cycle from here on.
func (c *Context) SetHost(h engine.Host) {
	c.eng.SetHost(h)
}

// GlobalEnv returns the context's global lexical environment, the root
// every top-level binding hangs off of.
func (c *Context) GlobalEnv() jmem.CPointer {
	return c.eng.GlobalEnv()
}

// Capture walks the live heap once, emitting one node event per live cell
// and one edge event per owning relationship (§6.1's capture, §4.12).
// Callbacks must not allocate; this package and gcsnap never call back
// into the context from inside onNode/onEdge.
func (c *Context) Capture(onNode gcsnap.NodeFunc, onEdge gcsnap.EdgeFunc) {
	c.eng.Snapshot(onNode, onEdge)
}

// Slot returns a registered context slot's current value (§6.5).
func (c *Context) Slot(index int) any { return c.eng.Slot(index) }

// SetSlot overwrites a registered context slot's value (§6.5).
func (c *Context) SetSlot(index int, value any) { c.eng.SetSlot(index, value) }

// store exposes the underlying ecma.Store to the rest of this package's
// files (value/object/callable helpers all need it; only Context itself
// constructs one).
func (c *Context) store() *ecma.Store { return c.eng.Store() }
