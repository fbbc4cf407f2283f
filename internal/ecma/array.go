package ecma

import "github.com/jerryscript-project/jerryscript-sub010/internal/jmem"

// maxNewHoles bounds how many new holes a single Put may introduce when
// extending the buffer (§4.7's "per sub-iteration hole ceiling"). See
// SPEC_FULL.md's Open Question resolutions.
const maxNewHoles = 256

// maxHoleCount bounds the total number of holes a fast array may carry
// before any further hole growth converts it to normal layout (§4.7's
// "total hole ceiling"). See SPEC_FULL.md's Open Question resolutions.
const maxHoleCount = 8192

// FastArray is the flat-buffer layout backing an array-type object while it
// stays "fast" (§3.8). Elements holds Value.Hole for holes. Length is
// tracked separately from len(Elements) only conceptually here; in this
// implementation len(Elements) == Length always, since Go slices make a
// separate packed/virtual-length split unnecessary.
type FastArray struct {
	Elements     []Value
	Writable     bool
	HoleCount    int
}

// NewFastArray creates an empty fast array with the given writable bit.
func NewFastArray(writable bool) *FastArray {
	return &FastArray{Writable: writable}
}

// Length returns the virtual array length.
func (a *FastArray) Length() uint32 { return uint32(len(a.Elements)) }

// FastArrayPutResult tells the caller what Put did, since hole-ceiling
// violations require the object layer to convert to normal properties and
// re-issue the write (§4.7).
type FastArrayPutResult int

const (
	PutOK FastArrayPutResult = iota
	PutNeedsConversion
)

// Put implements the fast-array Put algorithm of §4.7: in-place store when
// index is within bounds, bounded hole growth when extending, and a signal
// to convert to normal layout when either ceiling is crossed.
func (a *FastArray) Put(index uint32, v Value) FastArrayPutResult {
	if index < uint32(len(a.Elements)) {
		if a.Elements[index].IsHole() {
			a.HoleCount--
		}
		a.Elements[index] = v
		return PutOK
	}

	newHoles := int(index) - len(a.Elements)
	if newHoles > maxNewHoles || a.HoleCount+newHoles > maxHoleCount {
		return PutNeedsConversion
	}

	for len(a.Elements) < int(index) {
		a.Elements = append(a.Elements, Hole)
	}
	a.Elements = append(a.Elements, v)
	a.HoleCount += newHoles
	return PutOK
}

// Get returns the element at index and whether it is present (not a hole
// and in range).
func (a *FastArray) Get(index uint32) (Value, bool) {
	if index >= uint32(len(a.Elements)) {
		return Undefined, false
	}
	v := a.Elements[index]
	if v.IsHole() {
		return Undefined, false
	}
	return v, true
}

// SetLength implements the virtual length-property write of §4.7: shrinking
// releases element references by truncation, growing appends holes.
func (a *FastArray) SetLength(newLength uint32) {
	cur := uint32(len(a.Elements))
	switch {
	case newLength < cur:
		for i := newLength; i < cur; i++ {
			if a.Elements[i].IsHole() {
				a.HoleCount--
			}
		}
		a.Elements = a.Elements[:newLength]
	case newLength > cur:
		for uint32(len(a.Elements)) < newLength {
			a.Elements = append(a.Elements, Hole)
		}
		a.HoleCount += int(newLength - cur)
	}
}

// ConvertArrayToNormal converts the fast array's non-hole elements into
// property pairs on objCP, in descending index order, and detaches the
// flat buffer (§4.7). Each resulting property is writable/enumerable/
// configurable: true, matching a plain array element. Callers reacting to
// Put's PutNeedsConversion signal must re-issue their write against the
// normal property list afterward.
func (s *Store) ConvertArrayToNormal(objCP jmem.CPointer) {
	obj := s.Object(objCP)
	a := obj.Array
	if a == nil {
		return
	}
	for i := len(a.Elements) - 1; i >= 0; i-- {
		if a.Elements[i].IsHole() {
			continue
		}
		s.DefineDataProperty(objCP, Name{Kind: NameUintIndex, Index: uint32(i)}, a.Elements[i], true, true, true)
	}
	obj.Array = nil
}
