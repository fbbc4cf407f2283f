package ecma

import (
	"encoding/binary"
	"math"

	"github.com/jerryscript-project/jerryscript-sub010/internal/errkind"
)

// ElementKind is the small enum of §3.9 selecting a typed array's element
// type, used to index the getter/setter/shift tables below.
type ElementKind uint8

const (
	KindInt8 ElementKind = iota
	KindUint8
	KindUint8Clamped
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindFloat32
	KindFloat64
)

// elementShift maps a kind to log2(element size in bytes), matching the
// `index << shift[kind]` addressing rule of §4.8.
var elementShift = [...]uint8{
	KindInt8: 0, KindUint8: 0, KindUint8Clamped: 0,
	KindInt16: 1, KindUint16: 1,
	KindInt32: 2, KindUint32: 2, KindFloat32: 2,
	KindFloat64: 3,
}

// ElementSize returns the byte width of one element of the given kind.
func ElementSize(k ElementKind) int { return 1 << elementShift[k] }

// TypedArray is a pseudo_array-type object's extra state (§3.9): a view
// over a shared ArrayBuffer, with an optional byte offset/length pair when
// the view does not span the whole buffer.
type TypedArray struct {
	Kind       ElementKind
	Buffer     *ArrayBuffer
	ByteOffset int
	Length     int // element count
}

// NewTypedArrayFromLength allocates a fresh backing buffer sized for
// length elements of kind (§4.8's "From length N" constructor).
func NewTypedArrayFromLength(kind ElementKind, length int) *TypedArray {
	return &TypedArray{Kind: kind, Buffer: NewArrayBuffer(length * ElementSize(kind)), Length: length}
}

// NewTypedArrayFromBuffer binds a view over an existing buffer, validating
// alignment and range per §4.8.
func NewTypedArrayFromBuffer(kind ElementKind, buf *ArrayBuffer, byteOffset int, length int) (*TypedArray, error) {
	elemSize := ElementSize(kind)
	if byteOffset%elemSize != 0 {
		return nil, errkind.New(errkind.Range, "typed array byteOffset must be a multiple of the element size")
	}
	if byteOffset+length*elemSize > len(buf.Data) {
		return nil, errkind.New(errkind.Range, "typed array view out of buffer range")
	}
	if buf.Detached {
		return nil, errkind.New(errkind.Type, "cannot construct a typed array over a detached buffer")
	}
	return &TypedArray{Kind: kind, Buffer: buf, ByteOffset: byteOffset, Length: length}, nil
}

// Get reads element i through the kind's getter table (§4.8).
func (t *TypedArray) Get(i int) float64 {
	off := t.ByteOffset + (i << elementShift[t.Kind])
	d := t.Buffer.Data
	switch t.Kind {
	case KindInt8:
		return float64(int8(d[off]))
	case KindUint8, KindUint8Clamped:
		return float64(d[off])
	case KindInt16:
		return float64(int16(binary.LittleEndian.Uint16(d[off:])))
	case KindUint16:
		return float64(binary.LittleEndian.Uint16(d[off:]))
	case KindInt32:
		return float64(int32(binary.LittleEndian.Uint32(d[off:])))
	case KindUint32:
		return float64(binary.LittleEndian.Uint32(d[off:]))
	case KindFloat32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(d[off:])))
	case KindFloat64:
		return math.Float64frombits(binary.LittleEndian.Uint64(d[off:]))
	}
	return 0
}

// Set writes element i, coercing x through the kind's setter rule: integer
// kinds truncate via NumberToUint32 and reinterpret to width, uint8-clamped
// saturates to [0,255], float kinds store the IEEE bits directly (§4.8,
// §8.6).
func (t *TypedArray) Set(i int, x float64) {
	off := t.ByteOffset + (i << elementShift[t.Kind])
	d := t.Buffer.Data
	switch t.Kind {
	case KindInt8:
		d[off] = byte(int8(int32(NumberToUint32(x))))
	case KindUint8:
		d[off] = byte(NumberToUint32(x))
	case KindUint8Clamped:
		d[off] = clampUint8(x)
	case KindInt16:
		binary.LittleEndian.PutUint16(d[off:], uint16(NumberToUint32(x)))
	case KindUint16:
		binary.LittleEndian.PutUint16(d[off:], uint16(NumberToUint32(x)))
	case KindInt32:
		binary.LittleEndian.PutUint32(d[off:], NumberToUint32(x))
	case KindUint32:
		binary.LittleEndian.PutUint32(d[off:], NumberToUint32(x))
	case KindFloat32:
		binary.LittleEndian.PutUint32(d[off:], math.Float32bits(float32(x)))
	case KindFloat64:
		binary.LittleEndian.PutUint64(d[off:], math.Float64bits(x))
	}
}

func clampUint8(x float64) byte {
	if math.IsNaN(x) || x <= 0 {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return byte(math.Round(x))
}

// CopyFrom implements the "from another typed array" constructor (§4.8):
// same-kind is a raw memcpy, otherwise an element-wise
// source-getter-then-target-setter conversion.
func (t *TypedArray) CopyFrom(src *TypedArray) {
	if src.Kind == t.Kind {
		srcOff := src.ByteOffset
		dstOff := t.ByteOffset
		n := src.Length * ElementSize(src.Kind)
		copy(t.Buffer.Data[dstOff:dstOff+n], src.Buffer.Data[srcOff:srcOff+n])
		return
	}
	for i := 0; i < src.Length && i < t.Length; i++ {
		t.Set(i, src.Get(i))
	}
}

// DefineOwnIntegerIndex implements the integer-indexed exotic object
// contract of §4.8: success iff index is in range, the descriptor is
// value-only (not accessor), and the resulting attributes are writable
// but not configurable. Enumerability is not an input and is not checked.
func (t *TypedArray) DefineOwnIntegerIndex(index int, isAccessor bool, writable, configurable bool) bool {
	if index < 0 || index >= t.Length {
		return false
	}
	return !isAccessor && writable && !configurable
}
