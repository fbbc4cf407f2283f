package ecma

import (
	"math"
	"testing"

	"github.com/jerryscript-project/jerryscript-sub010/internal/jmem"
)

// Set/Get/Has/Delete must behave consistently for a Map-like container,
// with Delete idempotent on a second call (§4.9, §8.7).
func TestContainerMapSetGetDeleteIdempotent(t *testing.T) {
	c := NewContainer(ContainerMap, jmem.NullPointer)
	key := Int(1)

	if c.Has(key) {
		t.Fatalf("expected key absent before Set")
	}
	c.Set(key, Int(100))
	if !c.Has(key) {
		t.Fatalf("expected key present after Set")
	}
	if v, ok := c.Get(key); !ok || v.IntValue() != 100 {
		t.Fatalf("Get = %v, %v", v, ok)
	}
	c.Set(key, Int(200))
	if v, _ := c.Get(key); v.IntValue() != 200 {
		t.Fatalf("expected Set to overwrite, got %v", v)
	}
	if c.Size() != 1 {
		t.Fatalf("got size %d, want 1", c.Size())
	}

	if !c.Delete(key) {
		t.Fatalf("expected first Delete to succeed")
	}
	if c.Delete(key) {
		t.Fatalf("expected second Delete to be a no-op")
	}
	if c.Size() != 0 {
		t.Fatalf("got size %d, want 0", c.Size())
	}
}

// Positive and negative zero must collapse to the same key, matching
// SameValueZero (§4.9).
func TestContainerNormalizesNegativeZeroKey(t *testing.T) {
	s := newTestStore(t)
	c := NewContainer(ContainerMap, jmem.NullPointer)
	c.Set(s.NewNumber(math.Copysign(0, -1)), Int(1))
	if !c.Has(Int(0)) {
		t.Fatalf("expected zero key present")
	}
	if v, ok := c.Get(Int(0)); !ok || v.IntValue() != 1 {
		t.Fatalf("Get(0) = %v, %v", v, ok)
	}
}

// ForEach must visit live entries in insertion order and skip deleted
// ones (§4.9, §5's ordering guarantee extended to containers).
func TestContainerForEachInsertionOrderSkipsDeleted(t *testing.T) {
	c := NewContainer(ContainerSet, jmem.NullPointer)
	c.Add(Int(1))
	c.Add(Int(2))
	c.Add(Int(3))
	c.Delete(Int(2))

	var seen []int32
	c.ForEach(func(key, _ Value) { seen = append(seen, key.IntValue()) })
	want := []int32{1, 3}
	if len(seen) != len(want) {
		t.Fatalf("got %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("got %v, want %v", seen, want)
		}
	}
}

// A container iterator must skip deleted slots and yield Done once
// exhausted (§4.9).
func TestContainerIteratorSkipsDeletedAndTerminates(t *testing.T) {
	s := newTestStore(t)
	c := NewContainer(ContainerMap, jmem.NullPointer)
	c.Set(Int(1), Int(10))
	c.Set(Int(2), Int(20))
	c.Set(Int(3), Int(30))
	c.Delete(Int(2))

	iterCP := s.NewContainerIterator(c, IterateEntries)

	var keys []int32
	for {
		res := s.IteratorNext(iterCP)
		if res.Done {
			break
		}
		keys = append(keys, res.Key.IntValue())
	}
	want := []int32{1, 3}
	if len(keys) != len(want) {
		t.Fatalf("got %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("got %v, want %v", keys, want)
		}
	}

	if res := s.IteratorNext(iterCP); !res.Done {
		t.Fatalf("expected a further Next call to stay Done")
	}
}

// Map insertion order: inserting 'a','b','c','a' then deleting 'b' must
// yield keys 'a','c' in that order - re-insertion of an existing key does
// not move it, and deletion leaves the rest in place (§4.9, §5).
func TestMapInsertionOrderSurvivesReinsertAndDelete(t *testing.T) {
	s := newTestStore(t)
	c := NewContainer(ContainerMap, jmem.NullPointer)

	strKey := func(lit string) Value {
		return FromHandle(TagString, s.NewString(lit))
	}
	keyA, keyB, keyC := strKey("a"), strKey("b"), strKey("c")

	c.Set(keyA, Int(1))
	c.Set(keyB, Int(2))
	c.Set(keyC, Int(3))
	c.Set(keyA, Int(4)) // re-insertion of an existing key
	c.Delete(keyB)

	iterCP := s.NewContainerIterator(c, IterateKeys)
	var order []string
	for {
		res := s.IteratorNext(iterCP)
		if res.Done {
			break
		}
		str := s.String(res.Key.Handle())
		order = append(order, string(CESU8ToUTF8(str.Bytes)))
	}
	want := []string{"a", "c"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}
