package jmem

// CPointer is a compressed pointer: an 8-byte-aligned offset into a Heap's
// arena, stored shifted down by AlignmentLog in a uint32 (§3.2). Only this
// arena-relative encoding is implemented.
// The zero value is the null sentinel.
type CPointer uint32

// NullPointer is the sentinel compressed-pointer value denoting null.
const NullPointer CPointer = 0

// AlignmentLog is the base-2 logarithm of the required alignment for every
// heap allocation; all offsets are multiples of 1<<AlignmentLog bytes.
const AlignmentLog = 3

// Alignment is the required alignment for allocated units/blocks.
const Alignment = 1 << AlignmentLog

// TagMask and the *TagBit constants implement the tagged-cpointer variant (§3.2, §4.3): the
// low 3 bits of a tagged cpointer carry caller-defined flags, and the
// remaining bits carry the shifted offset.
const (
	TagMask       = 0x7
	FirstTagBit   = 1 << 0
	SecondTagBit  = 1 << 1
	ThirdTagBit   = 1 << 2
)

// compress turns a byte offset within the arena into a CPointer. Offsets
// must already be Alignment-aligned; the offset is divided down by
// Alignment the same way jmem_compress_pointer shifts by JMEM_ALIGNMENT_LOG.
func compress(offset uint32) CPointer {
	if offset == 0 {
		return NullPointer
	}
	return CPointer(offset >> AlignmentLog)
}

// decompress reverses compress, returning the original byte offset.
func decompress(cp CPointer) uint32 {
	if cp == NullPointer {
		return 0
	}
	return uint32(cp) << AlignmentLog
}

// CompressTagged packs a cpointer plus up to 3 flag bits into a single
// word, mirroring JMEM_CP_SET_NON_NULL_POINTER_TAG. tag must be < Alignment.
func CompressTagged(cp CPointer, tag uint8) uint32 {
	return (uint32(cp) << AlignmentLog) | (uint32(tag) & TagMask)
}

// DecompressTagged splits a tagged word back into its cpointer and flag
// bits, mirroring JMEM_CP_GET_NON_NULL_POINTER_FROM_POINTER_TAG /
// JMEM_CP_GET_POINTER_TAG_BITS.
func DecompressTagged(word uint32) (CPointer, uint8) {
	tag := uint8(word & TagMask)
	cp := CPointer(word >> AlignmentLog)
	return cp, tag
}
