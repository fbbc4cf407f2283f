package ecma

import (
	"testing"

	"github.com/jerryscript-project/jerryscript-sub010/internal/jmem"
)

func TestDeclarativeEnvMutableBindingLifecycle(t *testing.T) {
	s := newTestStore(t)
	env := s.NewDeclarativeEnv(jmem.NullPointer)

	if s.HasBinding(env, "x") {
		t.Fatalf("expected no binding before creation")
	}
	s.CreateMutableBinding(env, "x", true)
	if !s.HasBinding(env, "x") {
		t.Fatalf("expected binding to exist after creation")
	}
	s.InitializeBinding(env, "x", Int(1))

	v, err := s.GetBindingValue(env, "x", true)
	if err != nil || v.IntValue() != 1 {
		t.Fatalf("GetBindingValue = %v, %v", v, err)
	}

	if err := s.SetMutableBinding(env, "x", Int(2), true); err != nil {
		t.Fatalf("SetMutableBinding: %v", err)
	}
	v, _ = s.GetBindingValue(env, "x", true)
	if v.IntValue() != 2 {
		t.Fatalf("got %v, want 2 after SetMutableBinding", v)
	}

	if !s.DeleteBinding(env, "x") {
		t.Fatalf("expected a deletable binding to delete successfully")
	}
	if s.HasBinding(env, "x") {
		t.Fatalf("expected binding to be gone after delete")
	}
}

// Strict-mode lookups against an undeclared binding must raise a
// ReferenceError; loose mode must yield Undefined (§4.13).
func TestGetBindingValueStrictVsLooseOnUndeclared(t *testing.T) {
	s := newTestStore(t)
	env := s.NewDeclarativeEnv(jmem.NullPointer)

	if _, err := s.GetBindingValue(env, "missing", true); err == nil {
		t.Fatalf("expected a ReferenceError in strict mode")
	}
	v, err := s.GetBindingValue(env, "missing", false)
	if err != nil {
		t.Fatalf("GetBindingValue: %v", err)
	}
	if !v.IsUndefined() {
		t.Fatalf("got %v, want Undefined in loose mode", v)
	}
}

// An immutable binding must read as a ReferenceError before
// initialization (temporal dead zone) and its value after.
func TestImmutableBindingTemporalDeadZone(t *testing.T) {
	s := newTestStore(t)
	env := s.NewDeclarativeEnv(jmem.NullPointer)
	s.CreateImmutableBinding(env, "c")

	if _, err := s.GetBindingValue(env, "c", true); err == nil {
		t.Fatalf("expected accessing an uninitialized immutable binding to error in strict mode")
	}
	s.InitializeBinding(env, "c", Int(42))
	v, err := s.GetBindingValue(env, "c", true)
	if err != nil || v.IntValue() != 42 {
		t.Fatalf("GetBindingValue after init = %v, %v", v, err)
	}

	if err := s.SetMutableBinding(env, "c", Int(43), true); err == nil {
		t.Fatalf("expected assigning to an immutable binding to error in strict mode")
	}
}

// An object-bound environment must proxy bindings to the bound object's
// own properties (§3.11, §4.13).
func TestObjectBoundEnvDelegatesToBoundObject(t *testing.T) {
	s := newTestStore(t)
	boundObj := s.NewObject(TypeGeneral, jmem.NullPointer)
	env := s.NewObjectBoundEnv(jmem.NullPointer, boundObj, true)

	s.CreateMutableBinding(env, "g", false)
	s.InitializeBinding(env, "g", Int(5))

	if _, _, ok := s.FindProperty(boundObj, Name{Kind: NameDirectString, Str: "g"}); !ok {
		t.Fatalf("expected the binding to have been created directly on the bound object")
	}

	if got := s.ImplicitThisValue(env); got.Handle() != boundObj {
		t.Fatalf("expected ImplicitThisValue to return the bound object when provideThis is set")
	}

	declEnv := s.NewDeclarativeEnv(jmem.NullPointer)
	if got := s.ImplicitThisValue(declEnv); !got.IsUndefined() {
		t.Fatalf("expected a declarative env's ImplicitThisValue to be Undefined")
	}
}
