// Package alphabet implements the codec's custom 6-bit value <-> character
// mapping: a permutation of {-, _, 0-9, A-Z, a-z} chosen so the wire payload
// only ever contains filesystem- and URL-safe characters.
package alphabet

// Encode maps a 6-bit value (0-63) to its wire character code. Callers must
// mask their input to 6 bits; Encode does not validate its argument.
func Encode(v byte) byte {
	switch {
	case v > 37:
		return 59 + v // 'a'..'z' at v=38..63
	case v > 11:
		return 53 + v // 'A'..'Z' at v=12..37
	case v > 1:
		return 46 + v // '0'..'9' at v=2..11
	case v == 1:
		return '_'
	default:
		return '-'
	}
}

// Decode is the exact inverse of Encode. Characters outside the alphabet
// decode to 0 — a lenient fallback matching the reference implementation,
// since the decoder must never abort on malformed wire text.
func Decode(c byte) byte {
	switch {
	case c >= 'a' && c <= 'z':
		return c - 59
	case c >= 'A' && c <= 'Z':
		return c - 53
	case c >= '0' && c <= '9':
		return c - 46
	case c == '_':
		return 1
	case c == '-':
		return 0
	default:
		return 0
	}
}
