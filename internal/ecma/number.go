package ecma

import (
	"math"
	"strconv"
)

// ToNumber converts a simple-tagged value to a float64, and reports
// whether the tag could be converted without the store (int, boolean,
// null and undefined; false for every other tag). Values requiring a heap
// dereference (strings, objects) are the caller's responsibility since
// only the Store can resolve a handle to its string bytes (§4.4).
func ToNumber(v Value) (float64, bool) {
	switch v.Tag() {
	case TagInt:
		return float64(v.IntValue()), true
	case TagTrue:
		return 1, true
	case TagFalse, TagNull:
		return 0, true
	case TagUndefined:
		return math.NaN(), true
	default:
		return 0, false
	}
}

// NewNumber boxes f as a TagFloat value, used whenever a number cannot be
// represented exactly by the int-tagged fast path (§3.3, §4.4).
func (s *Store) NewNumber(f float64) Value {
	boxed := f
	cp := s.alloc(&boxed)
	return FromHandle(TagFloat, cp)
}

// ToNumberValue resolves a tagged Value to its float64 number, dereferencing
// the store for TagFloat and TagString values (§4.4's ToNumber abstract
// operation, extended beyond the simple-tag cases ToNumber alone handles).
func (s *Store) ToNumberValue(v Value) float64 {
	switch v.Tag() {
	case TagFloat:
		if f := s.Number(v.Handle()); f != nil {
			return *f
		}
		return math.NaN()
	case TagString:
		str := s.String(v.Handle())
		if str == nil {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(string(CESU8ToUTF8(str.Bytes)), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		if f, ok := ToNumber(v); ok {
			return f
		}
		return math.NaN()
	}
}

// ToInt32 implements ToInt32: truncate toward zero, reduce modulo 2^32,
// then reinterpret as signed (§4.4).
func ToInt32(f float64) int32 {
	return int32(ToUint32(f))
}

// ToUint32 implements ToUint32: NaN/Infinity map to 0; otherwise truncate
// toward zero and reduce modulo 2^32 (§4.4, same rule as NumberToUint32).
func ToUint32(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	trunc := math.Trunc(f)
	m := math.Mod(trunc, 4294967296)
	if m < 0 {
		m += 4294967296
	}
	return uint32(m)
}

// NumberToUint32 is an alias matching the original engine's naming
// (§4.4): identical to ToUint32.
func NumberToUint32(f float64) uint32 { return ToUint32(f) }

// ToLength clamps a number to a valid array length: negative becomes 0,
// and the result saturates at 2^53-1 (§4.4).
func ToLength(f float64) float64 {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	const maxLength = 1<<53 - 1
	if f > maxLength {
		return maxLength
	}
	return math.Trunc(f)
}

// SameValue implements the ECMAScript SameValue algorithm: like ===, but
// NaN equals NaN and +0 is distinct from -0.
func SameValue(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	if a == 0 && b == 0 {
		return math.Signbit(a) == math.Signbit(b)
	}
	return a == b
}

// SameValueZero is SameValue except +0 and -0 compare equal (§4.4, used by
// container Find per §4.9).
func SameValueZero(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return a == b
}

// FormatNumber renders f the way ToString(number) does for the common
// cases this core needs to support for diagnostics and embedding
// round-trips: NaN/Infinity print their literal names, everything else
// uses the shortest decimal round-trip representation (§6.1's to_string).
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

// NormalizeNegativeZero returns +0 for -0 and f unchanged otherwise,
// matching container insertion's negative-zero normalization (§4.9).
func NormalizeNegativeZero(f float64) float64 {
	if f == 0 {
		return 0
	}
	return f
}
