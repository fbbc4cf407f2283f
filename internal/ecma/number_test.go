package ecma

import (
	"math"
	"testing"
)

func TestToUint32WrapsAndHandlesNonFinite(t *testing.T) {
	cases := []struct {
		in   float64
		want uint32
	}{
		{0, 0},
		{1, 1},
		{-1, 4294967295},
		{4294967296, 0},
		{4294967297, 1},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
	}
	for _, c := range cases {
		if got := ToUint32(c.in); got != c.want {
			t.Fatalf("ToUint32(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSameValueDistinguishesSignedZeroAndEqualsNaN(t *testing.T) {
	if !SameValue(math.NaN(), math.NaN()) {
		t.Fatalf("expected SameValue(NaN, NaN) to be true")
	}
	if SameValue(0, math.Copysign(0, -1)) {
		t.Fatalf("expected SameValue(+0, -0) to be false")
	}
	if !SameValue(1, 1) {
		t.Fatalf("expected SameValue(1, 1) to be true")
	}
}

func TestSameValueZeroTreatsSignedZeroAsEqual(t *testing.T) {
	if !SameValueZero(0, math.Copysign(0, -1)) {
		t.Fatalf("expected SameValueZero(+0, -0) to be true")
	}
	if !SameValueZero(math.NaN(), math.NaN()) {
		t.Fatalf("expected SameValueZero(NaN, NaN) to be true")
	}
}

func TestNewNumberAndToNumberValueRoundTrip(t *testing.T) {
	s := newTestStore(t)
	v := s.NewNumber(3.5)
	if !v.IsFloat() {
		t.Fatalf("expected a float-tagged value")
	}
	if got := s.ToNumberValue(v); got != 3.5 {
		t.Fatalf("got %v, want 3.5", got)
	}
	if got := s.ToNumberValue(Int(7)); got != 7 {
		t.Fatalf("got %v, want 7 for a fast-int value", got)
	}
}

func TestFormatNumberSpecialValues(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{0, "0"},
		{3.5, "3.5"},
	}
	for _, c := range cases {
		if got := FormatNumber(c.in); got != c.want {
			t.Fatalf("FormatNumber(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
