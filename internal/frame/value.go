// Package frame implements EntryCodec: the framing layer that turns an
// ordered sequence of key/value entries into the JSON-like byte stream the
// envelope codec transports, and the relaxed scanner that recovers entries
// from that stream on decode.
package frame

import (
	"strconv"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt64
	KindFloat64
	KindBool
	KindRaw
)

// Value is the tagged union accepted by Add and produced by Decode. Raw
// carries the canonical JSON text of anything that doesn't fit the other
// tags; its round-trip fidelity is not guaranteed.
type Value struct {
	Kind  Kind
	Str   string
	Int   int64
	Float float64
	Bool  bool
	Raw   string
}

func Null() Value                  { return Value{Kind: KindNull} }
func String(s string) Value        { return Value{Kind: KindString, Str: s} }
func Int(i int64) Value            { return Value{Kind: KindInt64, Int: i} }
func Float(f float64) Value        { return Value{Kind: KindFloat64, Float: f} }
func Bool(b bool) Value            { return Value{Kind: KindBool, Bool: b} }
func RawJSON(text string) Value    { return Value{Kind: KindRaw, Raw: text} }

// FromAny converts an arbitrary Go value into a Value the way Encoder.Add's
// heterogeneous contract requires. Unrecognised types fall back to Raw via
// the canonical JSON marshaller (§9's "Other" case).
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case float64:
		return Float(x), nil
	case float32:
		return Float(float64(x)), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return Value{}, err
		}
		return RawJSON(string(b)), nil
	}
}

// Stringify renders v the way the JS-style reference stringifier does:
// strings quoted and escaped, numbers in their shortest decimal form,
// booleans as true/false, null as the literal, and Raw passed through
// verbatim (it is already valid JSON text).
func Stringify(v Value) string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindString:
		return quoteString(v.Str)
	case KindInt64:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat64:
		// Plain decimal for magnitudes in [1e-6, 1e21), exponent form
		// outside it with no zero-padded exponent (1e-7, 1e+21).
		abs := v.Float
		if abs < 0 {
			abs = -abs
		}
		format := byte('f')
		if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
			format = 'e'
		}
		s := strconv.FormatFloat(v.Float, format, -1, 64)
		if n := len(s); format == 'e' && n >= 4 && s[n-4] == 'e' && s[n-3] == '-' && s[n-2] == '0' {
			s = s[:n-2] + s[n-1:]
		}
		return s
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindRaw:
		return v.Raw
	default:
		return "null"
	}
}

// quoteString JSON-escapes s per §4.6: at minimum " and \, plus the common
// control escapes, wrapped in double quotes.
func quoteString(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for _, r := range s {
		switch r {
		case '"':
			out = append(out, '\\', '"')
		case '\\':
			out = append(out, '\\', '\\')
		case '\n':
			out = append(out, '\\', 'n')
		case '\r':
			out = append(out, '\\', 'r')
		case '\t':
			out = append(out, '\\', 't')
		case '\b':
			out = append(out, '\\', 'b')
		case '\f':
			out = append(out, '\\', 'f')
		default:
			out = appendRune(out, r)
		}
	}
	out = append(out, '"')
	return string(out)
}

func appendRune(buf []byte, r rune) []byte {
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], r)
	return append(buf, tmp[:n]...)
}
