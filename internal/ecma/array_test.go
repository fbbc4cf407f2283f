package ecma

import (
	"testing"

	"github.com/jerryscript-project/jerryscript-sub010/internal/jmem"
)

// Writing within bounds, then a bounded number of holes past the end,
// must stay fast-laid-out; Get must report holes as absent (§4.7).
func TestFastArrayPutGetRoundTrip(t *testing.T) {
	a := NewFastArray(true)
	if res := a.Put(0, Int(1)); res != PutOK {
		t.Fatalf("got %v, want PutOK", res)
	}
	if res := a.Put(2, Int(2)); res != PutOK {
		t.Fatalf("got %v, want PutOK", res)
	}
	if v, ok := a.Get(0); !ok || v.IntValue() != 1 {
		t.Fatalf("Get(0) = %v, %v", v, ok)
	}
	if _, ok := a.Get(1); ok {
		t.Fatalf("expected index 1 to read back as a hole")
	}
	if v, ok := a.Get(2); !ok || v.IntValue() != 2 {
		t.Fatalf("Get(2) = %v, %v", v, ok)
	}
	if a.HoleCount != 1 {
		t.Fatalf("got hole count %d, want 1", a.HoleCount)
	}
}

// Crossing either hole ceiling must signal a conversion instead of
// growing the flat buffer further (§4.7).
func TestFastArrayPutSignalsConversionPastHoleCeiling(t *testing.T) {
	a := NewFastArray(true)
	if res := a.Put(maxNewHoles+1, Int(1)); res != PutNeedsConversion {
		t.Fatalf("got %v, want PutNeedsConversion for a single huge jump", res)
	}

	b := NewFastArray(true)
	// Grow past the total hole ceiling via many small jumps, each within
	// the per-put ceiling.
	index := uint32(0)
	converted := false
	for b.HoleCount <= maxHoleCount {
		index += maxNewHoles
		if b.Put(index, Int(1)) == PutNeedsConversion {
			converted = true
			break
		}
	}
	if !converted {
		t.Fatalf("expected the total hole ceiling to eventually signal conversion")
	}
}

// ConvertArrayToNormal must materialize every non-hole element as an
// ordinary indexed property, in order, and detach the flat buffer (§4.7,
// §8.5).
func TestConvertArrayToNormalPreservesElements(t *testing.T) {
	s := newTestStore(t)
	objCP := s.NewObject(TypeArray, jmem.NullPointer)
	obj := s.Object(objCP)
	obj.Array = NewFastArray(true)
	obj.Array.Put(0, Int(10))
	obj.Array.Put(1, Int(20))
	obj.Array.Put(5, Int(50))

	s.ConvertArrayToNormal(objCP)

	if obj.Array != nil {
		t.Fatalf("expected Array to be detached after conversion")
	}
	for i, want := range map[uint32]int32{0: 10, 1: 20, 5: 50} {
		pairCP, idx, ok := s.FindProperty(objCP, Name{Kind: NameUintIndex, Index: i})
		if !ok {
			t.Fatalf("expected index %d to be a normal property after conversion", i)
		}
		if got := s.PropertyPair(pairCP).Slots[idx].Value.IntValue(); got != want {
			t.Fatalf("index %d: got %d, want %d", i, got, want)
		}
	}
	if _, _, ok := s.FindProperty(objCP, Name{Kind: NameUintIndex, Index: 2}); ok {
		t.Fatalf("expected hole at index 2 to not become a property")
	}
}

// SetLength shrinking then growing must adjust HoleCount consistently.
func TestFastArraySetLength(t *testing.T) {
	a := NewFastArray(true)
	a.Put(0, Int(1))
	a.Put(1, Int(2))
	a.Put(2, Int(3))

	a.SetLength(1)
	if a.Length() != 1 {
		t.Fatalf("got length %d, want 1", a.Length())
	}
	if _, ok := a.Get(1); ok {
		t.Fatalf("expected truncated index to be gone")
	}

	a.SetLength(4)
	if a.Length() != 4 {
		t.Fatalf("got length %d, want 4", a.Length())
	}
	if _, ok := a.Get(3); ok {
		t.Fatalf("expected newly extended index to be a hole")
	}
	if a.HoleCount != 3 {
		t.Fatalf("got hole count %d, want 3", a.HoleCount)
	}
}

// Fast-array hole collapse: a sparse write far past the end must convert
// to normal layout while every previously written element survives at
// its original index.
func TestFastArrayHoleCollapseConvertsAndPreserves(t *testing.T) {
	s := newTestStore(t)
	objCP := s.NewObject(TypeArray, jmem.NullPointer)
	obj := s.Object(objCP)
	obj.Array = NewFastArray(true)
	obj.Array.SetLength(5000)

	obj.Array.Put(4999, Int(1))
	obj.Array.Put(0, Int(2))
	if obj.Array == nil {
		t.Fatalf("expected the array to still be fast after two in-budget writes")
	}

	if res := obj.Array.Put(10000000, Int(3)); res != PutNeedsConversion {
		t.Fatalf("expected a far out-of-range write to signal conversion")
	}
	s.ConvertArrayToNormal(objCP)

	for idx, want := range map[uint32]int32{0: 2, 4999: 1} {
		pairCP, slotIdx, ok := s.FindProperty(objCP, Name{Kind: NameUintIndex, Index: idx})
		if !ok {
			t.Fatalf("expected index %d to survive conversion", idx)
		}
		if got := s.PropertyPair(pairCP).Slots[slotIdx].Value.IntValue(); got != want {
			t.Fatalf("index %d: got %d, want %d", idx, got, want)
		}
	}
	s.DefineDataProperty(objCP, Name{Kind: NameUintIndex, Index: 10000000}, Int(3), true, true, true)
	pairCP, slotIdx, ok := s.FindProperty(objCP, Name{Kind: NameUintIndex, Index: 10000000})
	if !ok || s.PropertyPair(pairCP).Slots[slotIdx].Value.IntValue() != 3 {
		t.Fatalf("expected index 10000000 to hold 3 after the converted write")
	}
}
