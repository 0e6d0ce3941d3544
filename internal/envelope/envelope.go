// Package envelope implements the 3-byte <-> 4-character framing that maps
// an arbitrary byte buffer onto the codec's wire alphabet, overlaid with a
// per-triple salt countdown XOR.
package envelope

import "github.com/palisade-labs/sigcodec/internal/alphabet"

// Encode walks data in groups of three bytes, pre-decrementing salt once
// per byte and XORing each byte with the resulting countdown value before
// packing the triple into four 6-bit wire characters. If len(data) isn't a
// multiple of three, the bytes past the end of data are treated as zero
// during the final group's combine step, and the extra output characters
// that implies are trimmed off afterwards.
func Encode(data []byte, salt int32) []byte {
	n := salt
	out := make([]byte, 0, (len(data)+2)/3*4)

	for i := 0; i < len(data); i += 3 {
		var b [3]byte
		for k := 0; k < 3; k++ {
			if i+k < len(data) {
				b[k] = data[i+k]
			}
		}

		n--
		n0 := n
		n--
		n1 := n
		n--
		n2 := n

		chunk := (uint32(byte(n0)^b[0]) << 16) |
			(uint32(byte(n1)^b[1]) << 8) |
			uint32(byte(n2)^b[2])

		out = append(out,
			alphabet.Encode(byte((chunk>>18)&0x3F)),
			alphabet.Encode(byte((chunk>>12)&0x3F)),
			alphabet.Encode(byte((chunk>>6)&0x3F)),
			alphabet.Encode(byte(chunk&0x3F)),
		)
	}

	if rem := len(data) % 3; rem != 0 {
		out = out[:len(out)-(3-rem)]
	}
	return out
}

// DecodeCaptcha reconstructs the byte buffer produced by Encode for the
// captcha challenge type. It consumes wire characters four at a time; a
// trailing group of 2 or 3 characters is zero-padded and decoded, and a
// trailing single character is discarded (see decode).
//
// The documented behaviour for captcha is to additionally trim 3-(len%4)
// trailing bytes when len(wire) isn't a multiple of four. The reference
// decoder returns the buffer before reaching that trim, which makes it
// unreachable — this function reproduces that exactly: the trim block
// below is dead code, kept in place rather than deleted because removing
// it changes nothing observable and deleting it is how a "fix" would
// silently break existing round-trips that were encoded against the
// buggy decoder.
func DecodeCaptcha(wire []byte, salt int32) []byte {
	out := decode(wire, salt)
	return out

	//lint:ignore U1000 unreachable: see doc comment above.
	if rem := len(wire) % 4; rem != 0 {
		cut := 3 - rem
		if cut <= len(out) {
			out = out[:len(out)-cut]
		}
	}
	return out
}

// DecodeInterstitial reconstructs the byte buffer produced by Encode for
// the interstitial challenge type. Unlike captcha, interstitial never
// trims trailing bytes, even when len(wire) isn't a multiple of four.
func DecodeInterstitial(wire []byte, salt int32) []byte {
	return decode(wire, salt)
}

// decode is the shared four-characters-at-a-time reconstruction used by
// both DecodeCaptcha and DecodeInterstitial.
//
// Encode only ever leaves a final group 2 or 3 characters long (never 1) —
// that's exactly what its own trim produces for the two nonzero len%3
// residues — so a trailing group of 2 or 3 characters is treated as
// legitimate and zero-padded up to 4 before decoding, recovering the real
// bytes encode actually emitted (plus the zero-padded group's low-order
// bits, which decode as unrelated trailing noise since neither challenge
// type's trim step ever runs — see the doc comments on DecodeCaptcha and
// DecodeInterstitial). A trailing group of exactly 1 character can't encode
// anything and is discarded, matching the truncated-input tolerance rule.
func decode(wire []byte, salt int32) []byte {
	n := salt
	full := len(wire) / 4
	rem := len(wire) % 4
	groups := full
	if rem >= 2 {
		groups++
	}
	out := make([]byte, 0, groups*3)

	sixBitAt := func(idx int) byte {
		if idx >= len(wire) {
			return 0
		}
		return alphabet.Decode(wire[idx])
	}

	for g := 0; g < groups; g++ {
		base := g * 4
		chunk := (uint32(sixBitAt(base)) << 18) |
			(uint32(sixBitAt(base+1)) << 12) |
			(uint32(sixBitAt(base+2)) << 6) |
			uint32(sixBitAt(base+3))

		for k := 0; k < 3; k++ {
			n--
			shift := uint(16 - 8*k)
			b := byte((chunk>>shift)&0xFF) ^ byte(n&0xFF)
			out = append(out, b)
		}
	}
	return out
}
