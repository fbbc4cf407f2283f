// Package gcsnap implements the heap snapshot walker of §4.12: for every
// live cell it emits one node event and, from each owning parent, one
// edge event, reusing the same field-traversal shape as internal/gc so the
// two never drift apart.
package gcsnap

import (
	"github.com/jerryscript-project/jerryscript-sub010/internal/ecma"
	"github.com/jerryscript-project/jerryscript-sub010/internal/jmem"
)

// NodeKind classifies a snapshot node (§4.12).
type NodeKind uint8

const (
	NodeHidden NodeKind = iota
	NodeArray
	NodeString
	NodeObject
	NodeCode
	NodeClosure
	NodeNative
)

// EdgeKind classifies a snapshot edge (§4.12).
type EdgeKind uint8

const (
	EdgePrototype EdgeKind = iota
	EdgeLexEnv
	EdgeBindArgs
	EdgeElements
	EdgeProperty
	EdgePropertyName
	EdgeAccessorGet
	EdgeAccessorSet
	EdgePromiseResult
	EdgePromiseFulfill
	EdgePromiseReject
	EdgeMapElement
	EdgeScope
)

// NodeEvent and EdgeEvent are the two callback payloads of §6.1's
// capture(node_cb, edge_cb, user_data). IDs are stable within one capture
// and derived from the cell's cpointer.
type NodeEvent struct {
	ID             uint64
	Kind           NodeKind
	Size           int
	Representation string
}

type EdgeEvent struct {
	ParentID uint64
	ChildID  uint64
	Kind     EdgeKind
	Name     string
}

// NodeFunc and EdgeFunc are the capture callbacks. Per §6.1, callbacks must
// not allocate - this package does not allocate on their behalf either; it
// only reads the already-built store and object graph.
type NodeFunc func(NodeEvent)
type EdgeFunc func(EdgeEvent)

func id(cp jmem.CPointer) uint64 { return uint64(cp) }

// Walker captures a heap snapshot by iterating a Store's GC object chain,
// synthesizing node/edge events without mutating any mark bits (§4.12).
// Records outside that chain (strings, numbers) get no node event of their
// own; they appear only as edge targets.
type Walker struct {
	store *ecma.Store
}

func New(store *ecma.Store) *Walker {
	return &Walker{store: store}
}

// Capture walks the live object graph once, in stable order (the GC
// object chain), emitting one node event per cell and one edge event per
// owning relationship.
func (w *Walker) Capture(onNode NodeFunc, onEdge EdgeFunc) {
	for cp := w.store.GCObjects(); cp != jmem.NullPointer; {
		obj := w.store.Object(cp)
		w.emitObject(cp, obj, onNode, onEdge)
		cp = obj.GCNext
	}
}

func (w *Walker) emitObject(cp jmem.CPointer, obj *ecma.Object, onNode NodeFunc, onEdge EdgeFunc) {
	onNode(NodeEvent{ID: id(cp), Kind: objectNodeKind(obj), Size: objectSize(obj)})

	if obj.PrototypeCP != jmem.NullPointer {
		onEdge(EdgeEvent{ParentID: id(cp), ChildID: id(obj.PrototypeCP), Kind: EdgePrototype})
	}

	w.walkPropertyList(cp, obj, onNode, onEdge)

	if obj.LexEnv == ecma.LexEnvObjectBound && obj.Bound != jmem.NullPointer {
		onEdge(EdgeEvent{ParentID: id(cp), ChildID: id(obj.Bound), Kind: EdgeScope})
	}
	if obj.Proxy != nil {
		if obj.Proxy.Target != jmem.NullPointer {
			onEdge(EdgeEvent{ParentID: id(cp), ChildID: id(obj.Proxy.Target), Kind: EdgeElements, Name: "target"})
		}
		if obj.Proxy.Handler != jmem.NullPointer {
			onEdge(EdgeEvent{ParentID: id(cp), ChildID: id(obj.Proxy.Handler), Kind: EdgeElements, Name: "handler"})
		}
	}
	if obj.Container != nil {
		obj.Container.ForEach(func(k, v ecma.Value) {
			if h := k.Handle(); k.Tag() == ecma.TagObject && h != jmem.NullPointer {
				onEdge(EdgeEvent{ParentID: id(cp), ChildID: id(h), Kind: EdgeMapElement})
			}
			if h := v.Handle(); v.Tag() == ecma.TagObject && h != jmem.NullPointer {
				onEdge(EdgeEvent{ParentID: id(cp), ChildID: id(h), Kind: EdgeMapElement})
			}
		})
	}
}

func (w *Walker) walkPropertyList(ownerCP jmem.CPointer, obj *ecma.Object, onNode NodeFunc, onEdge EdgeFunc) {
	head := obj.PropertyListCP
	if head == jmem.NullPointer {
		return
	}
	if hm := w.store.HashMap(head); hm != nil {
		head = hm.NextCP
	}
	for cp := head; cp != jmem.NullPointer; {
		pair := w.store.PropertyPair(cp)
		for _, sl := range pair.Slots {
			switch sl.Kind {
			case ecma.SlotNamedData:
				w.emitValueEdge(ownerCP, sl.Value, EdgeProperty, onEdge)
			case ecma.SlotNamedAccessor:
				w.emitValueEdge(ownerCP, sl.Getter, EdgeAccessorGet, onEdge)
				w.emitValueEdge(ownerCP, sl.Setter, EdgeAccessorSet, onEdge)
			}
		}
		cp = pair.NextPairCP
	}
}

func (w *Walker) emitValueEdge(ownerCP jmem.CPointer, v ecma.Value, kind EdgeKind, onEdge EdgeFunc) {
	switch v.Tag() {
	case ecma.TagObject, ecma.TagString, ecma.TagFloat, ecma.TagSymbol, ecma.TagBigInt:
		if h := v.Handle(); h != jmem.NullPointer {
			onEdge(EdgeEvent{ParentID: id(ownerCP), ChildID: id(h), Kind: kind})
		}
	}
}

func objectNodeKind(obj *ecma.Object) NodeKind {
	switch obj.Type {
	case ecma.TypeArray, ecma.TypePseudoArray:
		return NodeArray
	case ecma.TypeFunction, ecma.TypeArrowFunction, ecma.TypeBoundFunction, ecma.TypeExternalFunction:
		return NodeClosure
	default:
		return NodeObject
	}
}

func objectSize(obj *ecma.Object) int {
	size := 32 // nominal object-record size, matching ecma.recordSize
	if obj.Array != nil {
		size += len(obj.Array.Elements) * 8
	}
	if obj.Typed != nil && obj.Typed.Buffer != nil {
		size += len(obj.Typed.Buffer.Data)
	}
	return size
}
