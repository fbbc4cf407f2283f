package ecma

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/jerryscript-project/jerryscript-sub010/internal/jmem"
)

// StringKind selects the storage form of a StringRecord (§3.7). The
// tagged-word-packed "direct" form (short ASCII, magic id, small uint) is a
// pure space optimization over the representation below; this
// implementation always routes strings through a StringRecord handle and
// preserves the Kind purely for diagnostic/snapshot fidelity, since Go
// offers no equivalent of packing bytes into a 32-bit tagged word's spare
// bits (see DESIGN.md).
type StringKind uint8

const (
	StringDirect StringKind = iota
	StringHeapShort
	StringLong
)

// directShortLimit mirrors the "short ASCII <= 5 chars" direct-packing
// threshold used to classify a record's Kind (§3.7).
const directShortLimit = 5

// heapShortLimit is the inline-bytes-after-header threshold separating
// StringHeapShort from StringLong.
const heapShortLimit = 255

// StringRecord is a CESU-8 encoded string (§3.7). Bytes holds the CESU-8
// encoding; Hash is computed lazily and cached.
type StringRecord struct {
	Kind  StringKind
	Bytes []byte
	Refs  uint32
	hash  uint32
	hashed bool

	// Symbol descriptor: populated only for the "extended" form attached
	// to a symbol (§3.7).
	SymbolDescription jmem.CPointer
}

func classifyStringKind(cesu8 []byte) StringKind {
	switch {
	case len(cesu8) <= directShortLimit && isASCII(cesu8):
		return StringDirect
	case len(cesu8) <= heapShortLimit:
		return StringHeapShort
	default:
		return StringLong
	}
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

// NewString interns s (given as UTF-8) into a StringRecord handle,
// re-encoding to CESU-8 at the boundary (§6.3).
func (st *Store) NewString(utf8Str string) jmem.CPointer {
	cesu8 := UTF8ToCESU8([]byte(utf8Str))
	rec := &StringRecord{Kind: classifyStringKind(cesu8), Bytes: cesu8, Refs: 1}
	return st.alloc(rec)
}

// Hash returns (and caches) the record's hash, using blake2b for long
// strings (see hashmap.go's stringHash) and an FNV-style rolling hash for
// short ones to avoid paying the full hash cost on strings unlikely to
// ever sit in a hashmap bucket with more than a few collisions.
func (r *StringRecord) Hash() uint32 {
	if r.hashed {
		return r.hash
	}
	if len(r.Bytes) > heapShortLimit {
		r.hash = stringHash(string(r.Bytes))
	} else {
		var h uint32 = 2166136261
		for _, b := range r.Bytes {
			h ^= uint32(b)
			h *= 16777619
		}
		r.hash = h
	}
	r.hashed = true
	return r.hash
}

// UTF8ToCESU8 re-encodes four-byte UTF-8 sequences (astral codepoints) as
// two three-byte surrogate sequences; everything else in UTF-8 is already
// valid CESU-8 (§6.3). Surrogate code units are not valid UTF-8 runes, so
// they are written out as raw three-byte sequences rather than through
// utf8.EncodeRune (which would reject them).
func UTF8ToCESU8(utf8Bytes []byte) []byte {
	out := make([]byte, 0, len(utf8Bytes))
	for i := 0; i < len(utf8Bytes); {
		r, size := utf8.DecodeRune(utf8Bytes[i:])
		if r == utf8.RuneError && size <= 1 {
			i++
			continue
		}
		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			out = appendSurrogateUnit(out, hi)
			out = appendSurrogateUnit(out, lo)
		} else {
			var buf [4]byte
			n := utf8.EncodeRune(buf[:], r)
			out = append(out, buf[:n]...)
		}
		i += size
	}
	return out
}

// appendSurrogateUnit writes a single UTF-16 code unit (possibly a
// surrogate half, 0xD800-0xDFFF) as a raw three-byte sequence in the shape
// of a UTF-8 three-byte encoding, matching CESU-8's definition.
func appendSurrogateUnit(out []byte, unit rune) []byte {
	return append(out,
		0xE0|byte(unit>>12),
		0x80|byte(unit>>6)&0x3F,
		0x80|byte(unit)&0x3F,
	)
}

// decodeCESU8Unit decodes one code unit from a CESU-8 byte stream. Unlike
// utf8.DecodeRune it does not reject three-byte sequences that encode a
// surrogate half, since CESU-8 uses exactly that to represent astral
// codepoints as two units.
func decodeCESU8Unit(b []byte) (r rune, size int) {
	if len(b) == 0 {
		return utf8.RuneError, 0
	}
	c0 := b[0]
	switch {
	case c0 < 0x80:
		return rune(c0), 1
	case c0&0xE0 == 0xC0 && len(b) >= 2:
		return rune(c0&0x1F)<<6 | rune(b[1]&0x3F), 2
	case c0&0xF0 == 0xE0 && len(b) >= 3:
		return rune(c0&0x0F)<<12 | rune(b[1]&0x3F)<<6 | rune(b[2]&0x3F), 3
	default:
		return utf8.RuneError, 1
	}
}

// CESU8ToUTF8 recombines CESU-8 surrogate pairs into proper four-byte UTF-8
// sequences (§6.3).
func CESU8ToUTF8(cesu8Bytes []byte) []byte {
	var units []rune
	for i := 0; i < len(cesu8Bytes); {
		r, size := decodeCESU8Unit(cesu8Bytes[i:])
		units = append(units, r)
		i += size
	}
	out := make([]byte, 0, len(cesu8Bytes))
	for i := 0; i < len(units); i++ {
		if utf16.IsSurrogate(units[i]) && i+1 < len(units) {
			if combined := utf16.DecodeRune(units[i], units[i+1]); combined != utf8.RuneError {
				var buf [4]byte
				n := utf8.EncodeRune(buf[:], combined)
				out = append(out, buf[:n]...)
				i++
				continue
			}
		}
		var buf [4]byte
		n := utf8.EncodeRune(buf[:], units[i])
		out = append(out, buf[:n]...)
	}
	return out
}

// SubstringToUTF8 truncates a CESU-8 byte slice to at most maxLen UTF-8
// output bytes, never splitting a surrogate pair across the boundary
// (§6.3).
func SubstringToUTF8(cesu8Bytes []byte, maxLen int) []byte {
	full := CESU8ToUTF8(cesu8Bytes)
	if len(full) <= maxLen {
		return full
	}
	end := maxLen
	for end > 0 && !utf8.RuneStart(full[end]) {
		end--
	}
	return full[:end]
}
