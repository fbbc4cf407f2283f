package ecma

import "github.com/jerryscript-project/jerryscript-sub010/internal/jmem"

// ObjectType is the sealed object-type enumeration of §3.4.
type ObjectType uint8

const (
	TypeGeneral ObjectType = iota
	TypeArray
	TypeFunction
	TypeExternalFunction
	TypeBoundFunction
	TypeArrowFunction
	TypeClass
	TypePseudoArray // TypedArray
	TypeProxy
	TypeLexEnv
)

// ClassID further discriminates TypeClass objects (§3.4's "holds a class-id
// such as String/Number/Boolean/Arguments/Map/Set/.../Iterator").
type ClassID uint8

const (
	ClassNone ClassID = iota
	ClassString
	ClassNumber
	ClassBoolean
	ClassArguments
	ClassMap
	ClassSet
	ClassWeakMap
	ClassWeakSet
	ClassIterator
	ClassSymbol
	ClassBigInt
	ClassArrayBuffer
)

// LexEnvKind distinguishes the two lexical-environment sub-types (§3.11).
type LexEnvKind uint8

const (
	LexEnvDeclarative LexEnvKind = iota
	LexEnvObjectBound
)

// Object is the common object-record header shared by every object kind
// (§3.4). Extended per-kind state (class id, fast-array hole count, typed
// array buffer, proxy target/handler, lexenv kind) is carried in the
// matching Extra field; exactly one is populated for a given Type.
type Object struct {
	PrototypeCP jmem.CPointer
	Type        ObjectType
	Extensible  bool
	Refs        uint32
	PropertyListCP jmem.CPointer // first property pair, or hashmap header, or null
	PropertyCount  uint32        // live own-property count, tracked for the hashmap creation threshold (§4.6)
	GCNext      jmem.CPointer   // next object in the GC chain; owned by Store/GC

	Class  ClassID    // valid when Type == TypeClass
	LexEnv LexEnvKind // valid when Type == TypeLexEnv

	Array    *FastArray    // valid when Type == TypeArray and still fast-laid-out
	Typed    *TypedArray   // valid when Type == TypePseudoArray
	Proxy    *ProxyState   // valid when Type == TypeProxy
	Bound    jmem.CPointer // object-bound lexenv's bound object; valid when LexEnv == LexEnvObjectBound
	ProvideThis bool       // object-bound lexenv's provide-this flag
	Container *Container  // valid when Class is Map/Set/WeakMap/WeakSet
	Callable  *CallableState // valid for function-kind Types

	// Finalizer, if set, is run by the GC's sweep phase right before this
	// object's record is freed (§6.1's "optionally attach a native data
	// handle with a finalizer").
	Finalizer func()
}

// CallableState is a minimal native-callable record: the engine core does
// not implement bytecode execution, so external/native functions are
// modeled as a Go closure, matching how embedding "external functions" are
// specified in §6.1.
type CallableState struct {
	Native func(ctx *Store, this Value, args []Value) (Value, error)
}

// NewObject allocates a handle for a fresh object record, links it at the
// head of the GC chain, and returns its handle.
func (s *Store) NewObject(t ObjectType, prototype jmem.CPointer) jmem.CPointer {
	obj := &Object{
		PrototypeCP: prototype,
		Type:        t,
		Extensible:  true,
		GCNext:      s.gcObjects,
	}
	cp := s.alloc(obj)
	s.gcObjects = cp
	return cp
}

// FreeObject removes an object from the registry. The caller (the GC's
// sweep phase, or an explicit teardown path) is responsible for having
// already unlinked it from the GC chain.
func (s *Store) FreeObject(cp jmem.CPointer) {
	s.free(cp)
}

// GetPrototypeOf returns the prototype object handle, or jmem.NullPointer.
func (s *Store) GetPrototypeOf(cp jmem.CPointer) jmem.CPointer {
	return s.Object(cp).PrototypeCP
}

// SetPrototypeOf rewires an object's prototype link.
func (s *Store) SetPrototypeOf(cp, proto jmem.CPointer) {
	s.Object(cp).PrototypeCP = proto
}

// IsExtensible reports whether new own properties may be added to cp.
func (s *Store) IsExtensible(cp jmem.CPointer) bool {
	return s.Object(cp).Extensible
}

// PreventExtensions clears the extensible flag.
func (s *Store) PreventExtensions(cp jmem.CPointer) {
	s.Object(cp).Extensible = false
}
