package api

import (
	"github.com/jerryscript-project/jerryscript-sub010/internal/ecma"
)

// Undefined, Null, True, and False are the simple-tagged singleton values
// (§6.1's make_undefined/make_null/make_bool).
var (
	Undefined = ecma.Undefined
	Null      = ecma.Null
	True      = ecma.True
	False     = ecma.False
)

// Bool constructs a boolean value (§6.1's make_bool).
func Bool(b bool) Value { return ecma.Bool(b) }

// Int constructs a fast-integer number value.
func Int(i int32) Value { return ecma.Int(i) }

// Number constructs a number value, boxing on the heap when it cannot be
// represented as a fast integer (§6.1's make_number).
func (c *Context) Number(f float64) Value {
	if i := int32(f); float64(i) == f {
		return ecma.Int(i)
	}
	return c.store().NewNumber(f)
}

// StringUTF8 constructs a string value from UTF-8 bytes, re-encoding to
// the core's internal CESU-8 representation (§6.1's make_string_utf8,
// §6.3).
func (c *Context) StringUTF8(s string) Value {
	cp := c.store().NewString(s)
	return ecma.FromHandle(ecma.TagString, cp)
}

// ToNumber implements the ToNumber abstract operation, dereferencing the
// store for tags that ecma.ToNumber alone cannot resolve (§6.1's
// to_number, §4.4).
func (c *Context) ToNumber(v Value) float64 {
	return c.store().ToNumberValue(v)
}

// ToString implements a minimal ToString: numbers print via their decimal
// form, strings round-trip their own UTF-8 bytes, and every other tag
// falls back to the ECMAScript literal its simple form denotes (§6.1's
// to_string).
func (c *Context) ToString(v Value) string {
	switch v.Tag() {
	case ecma.TagString:
		str := c.store().String(v.Handle())
		if str == nil {
			return ""
		}
		return string(ecma.CESU8ToUTF8(str.Bytes))
	case ecma.TagUndefined:
		return "undefined"
	case ecma.TagNull:
		return "null"
	case ecma.TagTrue:
		return "true"
	case ecma.TagFalse:
		return "false"
	case ecma.TagInt, ecma.TagFloat:
		return formatNumber(c.ToNumber(v))
	default:
		return ""
	}
}

// ToBoolean implements the ToBoolean abstract operation, dereferencing the
// store for numeric/string truthiness the value layer alone can't resolve
// (§6.1's to_boolean).
func (c *Context) ToBoolean(v Value) bool {
	if b, handled := v.ToBooleanSimple(); handled {
		return b
	}
	switch v.Tag() {
	case ecma.TagFloat:
		f := c.ToNumber(v)
		return f != 0 && f == f // false for 0 and NaN
	case ecma.TagString:
		str := c.store().String(v.Handle())
		return str != nil && len(str.Bytes) > 0
	default:
		return true
	}
}

func formatNumber(f float64) string {
	return ecma.FormatNumber(f)
}
