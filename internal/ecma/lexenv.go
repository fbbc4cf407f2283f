package ecma

import (
	"github.com/jerryscript-project/jerryscript-sub010/internal/errkind"
	"github.com/jerryscript-project/jerryscript-sub010/internal/jmem"
)

// NewDeclarativeEnv creates a declarative lexical environment chained to
// outer via the reused PrototypeCP link (§3.11).
func (s *Store) NewDeclarativeEnv(outer jmem.CPointer) jmem.CPointer {
	cp := s.NewObject(TypeLexEnv, outer)
	s.Object(cp).LexEnv = LexEnvDeclarative
	return cp
}

// NewObjectBoundEnv creates an object-bound lexical environment over
// boundObject, chained to outer (§3.11).
func (s *Store) NewObjectBoundEnv(outer, boundObject jmem.CPointer, provideThis bool) jmem.CPointer {
	cp := s.NewObject(TypeLexEnv, outer)
	obj := s.Object(cp)
	obj.LexEnv = LexEnvObjectBound
	obj.Bound = boundObject
	obj.ProvideThis = provideThis
	return cp
}

func bindingName(name string) Name { return Name{Kind: NameDirectString, Str: name} }

// HasBinding implements §4.13's has_binding.
func (s *Store) HasBinding(envCP jmem.CPointer, name string) bool {
	env := s.Object(envCP)
	if env.LexEnv == LexEnvObjectBound {
		_, _, ok := s.FindProperty(env.Bound, bindingName(name))
		return ok
	}
	_, _, ok := s.FindProperty(envCP, bindingName(name))
	return ok
}

// CreateMutableBinding implements §4.13's create_mutable_binding.
func (s *Store) CreateMutableBinding(envCP jmem.CPointer, name string, deletable bool) {
	env := s.Object(envCP)
	if env.LexEnv == LexEnvObjectBound {
		s.DefineDataProperty(env.Bound, bindingName(name), Undefined, true, true, deletable)
		return
	}
	s.DefineDataProperty(envCP, bindingName(name), Undefined, true, false, deletable)
}

// CreateImmutableBinding creates an uninitialized immutable binding: a
// non-writable slot holding Empty until initialized (§3.11).
func (s *Store) CreateImmutableBinding(envCP jmem.CPointer, name string) {
	s.DefineDataProperty(envCP, bindingName(name), Empty, false, false, false)
}

// InitializeBinding assigns a declarative binding's value for the first
// time, used both for mutable bindings right after creation and to
// transition an immutable binding out of its uninitialized state.
func (s *Store) InitializeBinding(envCP jmem.CPointer, name string, v Value) {
	pairCP, idx, ok := s.FindProperty(envCP, bindingName(name))
	if !ok {
		return
	}
	s.PropertyPair(pairCP).Slots[idx].Value = v
}

// SetMutableBinding implements §4.13's set_mutable_binding.
func (s *Store) SetMutableBinding(envCP jmem.CPointer, name string, v Value, strict bool) error {
	env := s.Object(envCP)
	if env.LexEnv == LexEnvObjectBound {
		s.DefineDataProperty(env.Bound, bindingName(name), v, true, true, true)
		return nil
	}
	pairCP, idx, ok := s.FindProperty(envCP, bindingName(name))
	if !ok {
		if strict {
			return errkind.Newf(errkind.Reference, "%s is not defined", name)
		}
		return nil
	}
	slot := &s.PropertyPair(pairCP).Slots[idx]
	if !slot.Writable {
		if strict {
			return errkind.Newf(errkind.Type, "assignment to constant variable %s", name)
		}
		return nil
	}
	slot.Value = v
	return nil
}

// GetBindingValue implements §4.13's get_binding_value: an uninitialized
// immutable binding (Empty value, non-writable) yields Undefined in loose
// mode and a ReferenceError in strict mode.
func (s *Store) GetBindingValue(envCP jmem.CPointer, name string, strict bool) (Value, error) {
	env := s.Object(envCP)
	if env.LexEnv == LexEnvObjectBound {
		if pairCP, idx, ok := s.FindProperty(env.Bound, bindingName(name)); ok {
			return s.PropertyPair(pairCP).Slots[idx].Value, nil
		}
		if strict {
			return Value{}, errkind.Newf(errkind.Reference, "%s is not defined", name)
		}
		return Undefined, nil
	}

	pairCP, idx, ok := s.FindProperty(envCP, bindingName(name))
	if !ok {
		if strict {
			return Value{}, errkind.Newf(errkind.Reference, "%s is not defined", name)
		}
		return Undefined, nil
	}
	slot := s.PropertyPair(pairCP).Slots[idx]
	if slot.Value.IsEmpty() && !slot.Writable {
		if strict {
			return Value{}, errkind.Newf(errkind.Reference, "cannot access %s before initialization", name)
		}
		return Undefined, nil
	}
	return slot.Value, nil
}

// DeleteBinding implements §4.13's delete_binding.
func (s *Store) DeleteBinding(envCP jmem.CPointer, name string) bool {
	env := s.Object(envCP)
	if env.LexEnv == LexEnvObjectBound {
		return s.DeleteProperty(env.Bound, bindingName(name))
	}
	return s.DeleteProperty(envCP, bindingName(name))
}

// ImplicitThisValue implements §4.13's implicit_this_value.
func (s *Store) ImplicitThisValue(envCP jmem.CPointer) Value {
	env := s.Object(envCP)
	if env.LexEnv == LexEnvObjectBound && env.ProvideThis {
		return FromHandle(TagObject, env.Bound)
	}
	return Undefined
}
