// Package signhash computes the deterministic 32-bit signed string hash
// used to fold a session's hash and cid strings into the two keystream
// seeds.
package signhash

// Fallback is returned whenever the natural hash of a string would be zero,
// including the empty string itself, so a zero hash never silently collapses
// a seed to zero.
const Fallback int32 = 1789537805

// Hash computes a Java/JS-style rolling hash of s: h = h*31 + c (expressed
// here as the equivalent h<<5 - h + c) over each UTF-16 code unit of s,
// truncating to a signed 32-bit value after every step — not only at the
// end. The empty string, and any string whose computed hash lands on zero,
// maps to Fallback instead.
func Hash(s string) int32 {
	if s == "" {
		return Fallback
	}

	var h int32
	for _, c := range utf16CodeUnits(s) {
		h = int32(h<<5) - h + int32(c)
	}

	if h == 0 {
		return Fallback
	}
	return h
}

// utf16CodeUnits re-encodes s as UTF-16 code units, matching the semantics
// of hashing "the code unit, not the code point" in a host whose native
// string type is UTF-16 (characters above the BMP contribute a surrogate
// pair, each hashed separately).
func utf16CodeUnits(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for _, r := range s {
		if r < 0x10000 {
			units = append(units, uint16(r))
			continue
		}
		r -= 0x10000
		hi := uint16(0xD800 + (r >> 10))
		lo := uint16(0xDC00 + (r & 0x3FF))
		units = append(units, hi, lo)
	}
	return units
}
