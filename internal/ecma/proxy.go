package ecma

import (
	"github.com/jerryscript-project/jerryscript-sub010/internal/errkind"
	"github.com/jerryscript-project/jerryscript-sub010/internal/jmem"
)

// TrapName enumerates the internal methods a Proxy handler may intercept
// (§4.10).
type TrapName string

const (
	TrapGetPrototypeOf    TrapName = "getPrototypeOf"
	TrapSetPrototypeOf    TrapName = "setPrototypeOf"
	TrapIsExtensible      TrapName = "isExtensible"
	TrapPreventExtensions TrapName = "preventExtensions"
	TrapGetOwnProperty    TrapName = "getOwnPropertyDescriptor"
	TrapDefineOwnProperty TrapName = "defineProperty"
	TrapHas               TrapName = "has"
	TrapGet               TrapName = "get"
	TrapSet               TrapName = "set"
	TrapDelete            TrapName = "deleteProperty"
	TrapOwnKeys           TrapName = "ownKeys"
	TrapCall              TrapName = "apply"
	TrapConstruct         TrapName = "construct"
)

// ProxyState is a proxy-type object's (target, handler) pair (§3.4,
// §4.10). Revocation sets both to jmem.NullPointer; every subsequent
// internal method call must then raise a TypeError before touching either
// (§4.10, §8.8).
type ProxyState struct {
	Target  jmem.CPointer
	Handler jmem.CPointer
}

// NewProxy creates a proxy-type object forwarding to (target, handler).
func (s *Store) NewProxy(target, handler jmem.CPointer) jmem.CPointer {
	objCP := s.NewObject(TypeProxy, jmem.NullPointer)
	s.Object(objCP).Proxy = &ProxyState{Target: target, Handler: handler}
	return objCP
}

// RevokeProxy sets both target and handler to null (§4.10).
func (s *Store) RevokeProxy(proxyCP jmem.CPointer) {
	p := s.Object(proxyCP).Proxy
	p.Target = jmem.NullPointer
	p.Handler = jmem.NullPointer
}

var errRevoked = errkind.New(errkind.Type, "cannot perform operation on a revoked proxy")

// resolveTrap looks up the named trap on the handler, per (a) in §4.10.
// It reports whether the trap is present/callable; forwarding to Target
// is the caller's responsibility when it is not (§8.8's forward-identity
// property).
func (s *Store) resolveTrap(proxyCP jmem.CPointer, trap TrapName) (jmem.CPointer, bool, error) {
	p := s.Object(proxyCP).Proxy
	if p.Target == jmem.NullPointer && p.Handler == jmem.NullPointer {
		return jmem.NullPointer, false, errRevoked
	}
	pairCP, idx, ok := s.FindProperty(p.Handler, Name{Kind: NameDirectString, Str: string(trap)})
	if !ok {
		return jmem.NullPointer, false, nil
	}
	slot := s.PropertyPair(pairCP).Slots[idx]
	if slot.Kind != SlotNamedData || !slot.Value.IsObject() {
		return jmem.NullPointer, false, nil
	}
	return slot.Value.Handle(), true, nil
}

// ProxyGet dispatches the Get internal method: invoke the "get" trap if present,
// otherwise forward to target's Get (§4.10, §8.8).
func (s *Store) ProxyGet(proxyCP jmem.CPointer, name Name, call func(fn jmem.CPointer, args []Value) (Value, error)) (Value, error) {
	trapCP, has, err := s.resolveTrap(proxyCP, TrapGet)
	if err != nil {
		return Value{}, err
	}
	target := s.Object(proxyCP).Proxy.Target
	if !has {
		if pairCP, idx, ok := s.FindProperty(target, name); ok {
			return s.PropertyPair(pairCP).Slots[idx].Value, nil
		}
		return Undefined, nil
	}
	return call(trapCP, []Value{FromHandle(TagObject, target), nameAsValue(s, name)})
}

// ProxyHas dispatches the HasProperty internal method analogously to
// ProxyGet.
func (s *Store) ProxyHas(proxyCP jmem.CPointer, name Name, call func(fn jmem.CPointer, args []Value) (Value, error)) (bool, error) {
	trapCP, has, err := s.resolveTrap(proxyCP, TrapHas)
	if err != nil {
		return false, err
	}
	target := s.Object(proxyCP).Proxy.Target
	if !has {
		_, _, ok := s.FindProperty(target, name)
		return ok, nil
	}
	result, err := call(trapCP, []Value{FromHandle(TagObject, target), nameAsValue(s, name)})
	if err != nil {
		return false, err
	}
	b, _ := result.ToBooleanSimple()
	return b, nil
}

// ProxyDelete dispatches the Delete internal method analogously to
// ProxyGet/ProxyHas.
func (s *Store) ProxyDelete(proxyCP jmem.CPointer, name Name, call func(fn jmem.CPointer, args []Value) (Value, error)) (bool, error) {
	trapCP, has, err := s.resolveTrap(proxyCP, TrapDelete)
	if err != nil {
		return false, err
	}
	target := s.Object(proxyCP).Proxy.Target
	if !has {
		return s.DeleteProperty(target, name), nil
	}
	result, err := call(trapCP, []Value{FromHandle(TagObject, target), nameAsValue(s, name)})
	if err != nil {
		return false, err
	}
	b, _ := result.ToBooleanSimple()
	return b, nil
}

func nameAsValue(s *Store, n Name) Value {
	switch n.Kind {
	case NameUintIndex:
		return Int(int32(n.Index))
	default:
		return FromHandle(TagString, s.NewString(n.Str))
	}
}
