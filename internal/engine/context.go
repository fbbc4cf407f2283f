package engine

import (
	"github.com/google/uuid"

	"github.com/jerryscript-project/jerryscript-sub010/internal/ecma"
	"github.com/jerryscript-project/jerryscript-sub010/internal/gc"
	"github.com/jerryscript-project/jerryscript-sub010/internal/gcsnap"
	"github.com/jerryscript-project/jerryscript-sub010/internal/jmem"
)

// Host is the set of external collaborators a Context consults for GC
// roots beyond its own global environment: the VM's active call frames and
// any in-flight exception value (§4.11's root list). Parsing, bytecode
// execution, and the VM dispatcher are out of this core's scope (§1); Host
// is how an embedding VM supplies just enough information for the GC to
// do its job without the core depending on the VM.
type Host interface {
	ActiveFrameValues() []ecma.Value
	LiveError() ecma.Value
}

type noopHost struct{}

func (noopHost) ActiveFrameValues() []ecma.Value { return nil }
func (noopHost) LiveError() ecma.Value            { return ecma.Undefined }

// Context is one engine instance: a private arena-backed store, its GC,
// its snapshot walker, and the host-registered context-slot array (§5,
// §6.5). Every Context is identified by a UUID so multiple concurrently
// live contexts' heap snapshots never collide when merged by a host tool.
type Context struct {
	ID uuid.UUID

	cfg   Config
	store *ecma.Store
	coll  *gc.Collector
	snap  *gcsnap.Walker

	globalEnv jmem.CPointer
	host      Host

	slots []any
}

// New creates a context with its own arena, sized per cfg (or the default
// if cfg is the zero value).
func New(cfg Config) (*Context, error) {
	if cfg.ArenaSize == 0 {
		cfg = DefaultConfig()
	}
	if cfg.Logger == nil {
		cfg.Logger = NewStderrLogger()
	}

	store, err := ecma.NewStore(cfg.ArenaSize)
	if err != nil {
		return nil, err
	}

	ctx := &Context{
		ID:    uuid.New(),
		cfg:   cfg,
		store: store,
		host:  noopHost{},
	}
	ctx.globalEnv = store.NewDeclarativeEnv(jmem.NullPointer)
	ctx.coll = gc.New(store)
	ctx.snap = gcsnap.New(store)

	ctx.coll.RegisterWithHeap(store.Heap(), func() gc.Roots {
		return gc.Roots{
			GlobalEnv: ctx.globalEnv,
			Frames:    ctx.host.ActiveFrameValues(),
			LiveError: ctx.host.LiveError(),
		}
	})

	ctx.initSlots()

	return ctx, nil
}

// SetHost installs the VM-side root supplier. Contexts created without one
// report an empty frame stack and no live error, which is sufficient for
// tests and embeddings that never run bytecode.
func (c *Context) SetHost(h Host) { c.host = h }

// Store returns the context's ecma.Store for components (the api package,
// tests) that need direct access to objects/properties/values.
func (c *Context) Store() *ecma.Store { return c.store }

// GlobalEnv returns the context's global lexical environment.
func (c *Context) GlobalEnv() jmem.CPointer { return c.globalEnv }

// GC runs an explicit collection cycle (§4.11's "explicit gc() API"),
// logging the number of objects freed.
func (c *Context) GC() int {
	freed := c.coll.Run(gc.Roots{
		GlobalEnv: c.globalEnv,
		Frames:    c.host.ActiveFrameValues(),
		LiveError: c.host.LiveError(),
	})
	c.cfg.Logger.Printf("gc: freed %d objects, heap allocated=%s", freed, FormatBytes(uint64(c.store.Heap().AllocatedSize())))
	return freed
}

// Snapshot captures the heap snapshot (§4.12, §6.1's capture API).
func (c *Context) Snapshot(onNode gcsnap.NodeFunc, onEdge gcsnap.EdgeFunc) {
	c.snap.Capture(onNode, onEdge)
}

// Close tears down the context's slots in reverse registration order,
// then frees every remaining handle (the global environment included) and
// releases its arena.
func (c *Context) Close() error {
	c.deinitSlots()
	return c.store.Close()
}
